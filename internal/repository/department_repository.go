package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/locvowork/employee_management_backend/internal/domain"
	"github.com/locvowork/employee_management_backend/internal/repository/builder"
)

const departmentsTable = "departments"

var departmentColumns = []string{
	"department_id", "department_code", "department_name", "created_at", "updated_at",
}

type departmentRepository struct {
	db *sql.DB
}

// NewDepartmentRepository creates a new instance of DepartmentRepository
func NewDepartmentRepository(db *sql.DB) domain.DepartmentRepository {
	return &departmentRepository{db: db}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDepartment(s rowScanner, extra ...interface{}) (domain.Department, error) {
	var d domain.Department
	var updatedAt sql.NullTime
	dest := append([]interface{}{&d.DepartmentID, &d.DepartmentCode, &d.DepartmentName, &d.CreatedAt, &updatedAt}, extra...)
	if err := s.Scan(dest...); err != nil {
		return d, err
	}
	if updatedAt.Valid {
		d.UpdatedAt = &updatedAt.Time
	}
	return d, nil
}

func (r *departmentRepository) GetAll(ctx context.Context) ([]domain.Department, error) {
	query, args, err := builder.NewSQLBuilder().
		Select(departmentColumns...).
		From(departmentsTable).
		OrderBy("department_id").
		BuildSafe()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query departments: %w", err)
	}
	defer rows.Close()

	departments := []domain.Department{}
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return departments, nil
}

// GetPaged returns one page ordered by name together with the total row
// count, carried on every row by a window function.
func (r *departmentRepository) GetPaged(ctx context.Context, offset, limit int) ([]domain.Department, int, error) {
	cols := append(append([]string{}, departmentColumns...), "COUNT(*) OVER() AS total_count")
	query, args, err := builder.NewSQLBuilder().
		Select(cols...).
		From(departmentsTable).
		OrderBy("department_name").
		OrderBy("department_id").
		Limit(limit).
		Offset(offset).
		BuildSafe()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query department page: %w", err)
	}
	defer rows.Close()

	departments := []domain.Department{}
	total := 0
	for rows.Next() {
		d, err := scanDepartment(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("row iteration error: %w", err)
	}

	if len(departments) == 0 && offset > 0 {
		total, err = r.count(ctx)
		if err != nil {
			return nil, 0, err
		}
	}
	return departments, total, nil
}

func (r *departmentRepository) count(ctx context.Context) (int, error) {
	query, args, err := builder.NewSQLBuilder().Select("COUNT(*)").From(departmentsTable).BuildSafe()
	if err != nil {
		return 0, err
	}

	var total int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count departments: %w", err)
	}
	return total, nil
}

func (r *departmentRepository) GetByID(ctx context.Context, id int) (*domain.Department, error) {
	return r.getOne(ctx, "department_id = ?", id)
}

// GetByCode matches the code exactly, case included.
func (r *departmentRepository) GetByCode(ctx context.Context, code string) (*domain.Department, error) {
	return r.getOne(ctx, "department_code = ?", code)
}

func (r *departmentRepository) getOne(ctx context.Context, cond string, arg interface{}) (*domain.Department, error) {
	query, args, err := builder.NewSQLBuilder().
		Select(departmentColumns...).
		From(departmentsTable).
		Where(cond, arg).
		BuildSafe()
	if err != nil {
		return nil, err
	}

	d, err := scanDepartment(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get department: %w", err)
	}
	return &d, nil
}

// Insert writes the department and reads back the generated id and creation
// time in the same statement.
func (r *departmentRepository) Insert(ctx context.Context, d *domain.Department) (int, error) {
	query, args, err := builder.NewSQLBuilder().
		Insert(departmentsTable, "department_code", "department_name").
		Values(d.DepartmentCode, d.DepartmentName).
		Returning("department_id", "created_at").
		BuildSafe()
	if err != nil {
		return 0, err
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&d.DepartmentID, &d.CreatedAt); err != nil {
		if verr := mapWriteError(err, opInsert); verr != nil {
			return 0, verr
		}
		return 0, fmt.Errorf("failed to insert department: %w", err)
	}
	return d.DepartmentID, nil
}

func (r *departmentRepository) Update(ctx context.Context, d domain.Department) error {
	query, args, err := builder.NewSQLBuilder().
		Update(departmentsTable).
		Set("department_code", d.DepartmentCode).
		Set("department_name", d.DepartmentName).
		SetExpr("updated_at", "NOW()").
		Where("department_id = ?", d.DepartmentID).
		BuildSafe()
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if verr := mapWriteError(err, opUpdate); verr != nil {
			return verr
		}
		return fmt.Errorf("failed to update department: %w", err)
	}
	return requireAffected(result)
}

func (r *departmentRepository) Delete(ctx context.Context, id int) error {
	query, args, err := builder.NewSQLBuilder().
		Delete(departmentsTable).
		Where("department_id = ?", id).
		BuildSafe()
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if verr := mapDepartmentDeleteError(err); verr != nil {
			return verr
		}
		return fmt.Errorf("failed to delete department: %w", err)
	}
	return requireAffected(result)
}

// requireAffected reports ErrNotFound when a write matched no row.
func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
