package domain

import "context"

// DepartmentRepository defines the interface for department data access.
// Lookups that match no row return ErrNotFound.
type DepartmentRepository interface {
	GetAll(ctx context.Context) ([]Department, error)
	GetPaged(ctx context.Context, offset, limit int) ([]Department, int, error)
	GetByID(ctx context.Context, id int) (*Department, error)
	GetByCode(ctx context.Context, code string) (*Department, error)
	Insert(ctx context.Context, d *Department) (int, error)
	Update(ctx context.Context, d Department) error
	Delete(ctx context.Context, id int) error
}

// EmployeeRepository defines the interface for employee data access.
// Lookups that match no row return ErrNotFound.
type EmployeeRepository interface {
	GetAll(ctx context.Context) ([]Employee, error)
	GetPaged(ctx context.Context, offset, limit int) ([]Employee, int, error)
	GetByID(ctx context.Context, id int) (*Employee, error)
	GetByEmail(ctx context.Context, email string) (*Employee, error)
	Insert(ctx context.Context, e *Employee) (int, error)
	Update(ctx context.Context, e Employee) error
	Delete(ctx context.Context, id int) error
}
