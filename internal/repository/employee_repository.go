package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/locvowork/employee_management_backend/internal/domain"
	"github.com/locvowork/employee_management_backend/internal/repository/builder"
)

const employeesTable = "employees"

// employeeColumns selects an employee with its department's code and name
// denormalized through a LEFT JOIN.
var employeeColumns = []string{
	"e.employee_id", "e.first_name", "e.last_name", "e.email", "e.date_of_birth", "e.age",
	"e.salary", "e.department_id", "e.created_at", "e.updated_at",
	"d.department_code", "d.department_name",
}

type employeeRepository struct {
	db *sql.DB
}

// NewEmployeeRepository creates a new instance of EmployeeRepository
func NewEmployeeRepository(db *sql.DB) domain.EmployeeRepository {
	return &employeeRepository{db: db}
}

func selectEmployees(cols ...string) *builder.SQLBuilder {
	return builder.NewSQLBuilder().
		Select(cols...).
		From(employeesTable+" e").
		Join("LEFT", departmentsTable+" d", "e.department_id = d.department_id")
}

func scanEmployee(s rowScanner, extra ...interface{}) (domain.Employee, error) {
	var e domain.Employee
	var updatedAt sql.NullTime
	var deptCode, deptName sql.NullString

	dest := append([]interface{}{
		&e.EmployeeID, &e.FirstName, &e.LastName, &e.Email, &e.DateOfBirth, &e.Age,
		&e.Salary, &e.DepartmentID, &e.CreatedAt, &updatedAt, &deptCode, &deptName,
	}, extra...)
	if err := s.Scan(dest...); err != nil {
		return e, err
	}

	if updatedAt.Valid {
		e.UpdatedAt = &updatedAt.Time
	}
	if deptCode.Valid {
		e.DepartmentCode = &deptCode.String
	}
	if deptName.Valid {
		e.DepartmentName = &deptName.String
	}
	return e, nil
}

func (r *employeeRepository) GetAll(ctx context.Context) ([]domain.Employee, error) {
	query, args, err := selectEmployees(employeeColumns...).
		OrderBy("e.employee_id").
		BuildSafe()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	employees := []domain.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return employees, nil
}

// GetPaged returns one page ordered by last name then first name together
// with the total row count.
func (r *employeeRepository) GetPaged(ctx context.Context, offset, limit int) ([]domain.Employee, int, error) {
	cols := append(append([]string{}, employeeColumns...), "COUNT(*) OVER() AS total_count")
	query, args, err := selectEmployees(cols...).
		OrderBy("e.last_name").
		OrderBy("e.first_name").
		OrderBy("e.employee_id").
		Limit(limit).
		Offset(offset).
		BuildSafe()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query employee page: %w", err)
	}
	defer rows.Close()

	employees := []domain.Employee{}
	total := 0
	for rows.Next() {
		e, err := scanEmployee(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("row iteration error: %w", err)
	}

	// past the last page the window function has no row to ride on
	if len(employees) == 0 && offset > 0 {
		total, err = r.count(ctx)
		if err != nil {
			return nil, 0, err
		}
	}
	return employees, total, nil
}

func (r *employeeRepository) count(ctx context.Context) (int, error) {
	query, args, err := builder.NewSQLBuilder().Select("COUNT(*)").From(employeesTable).BuildSafe()
	if err != nil {
		return 0, err
	}

	var total int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}
	return total, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id int) (*domain.Employee, error) {
	return r.getOne(ctx, "e.employee_id = ?", id)
}

// GetByEmail compares case-insensitively after trimming.
func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	return r.getOne(ctx, "LOWER(e.email) = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *employeeRepository) getOne(ctx context.Context, cond string, arg interface{}) (*domain.Employee, error) {
	query, args, err := selectEmployees(employeeColumns...).
		Where(cond, arg).
		BuildSafe()
	if err != nil {
		return nil, err
	}

	e, err := scanEmployee(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return &e, nil
}

// Insert writes the employee and reads back the generated id and creation
// time in the same statement.
func (r *employeeRepository) Insert(ctx context.Context, e *domain.Employee) (int, error) {
	query, args, err := builder.NewSQLBuilder().
		Insert(employeesTable, "first_name", "last_name", "email", "date_of_birth", "age", "salary", "department_id").
		Values(e.FirstName, e.LastName, e.Email, e.DateOfBirth, e.Age, e.Salary, e.DepartmentID).
		Returning("employee_id", "created_at").
		BuildSafe()
	if err != nil {
		return 0, err
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&e.EmployeeID, &e.CreatedAt); err != nil {
		if verr := mapWriteError(err, opInsert); verr != nil {
			return 0, verr
		}
		return 0, fmt.Errorf("failed to insert employee: %w", err)
	}
	return e.EmployeeID, nil
}

func (r *employeeRepository) Update(ctx context.Context, e domain.Employee) error {
	query, args, err := builder.NewSQLBuilder().
		Update(employeesTable).
		Set("first_name", e.FirstName).
		Set("last_name", e.LastName).
		Set("email", e.Email).
		Set("date_of_birth", e.DateOfBirth).
		Set("age", e.Age).
		Set("salary", e.Salary).
		Set("department_id", e.DepartmentID).
		SetExpr("updated_at", "NOW()").
		Where("employee_id = ?", e.EmployeeID).
		BuildSafe()
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if verr := mapWriteError(err, opUpdate); verr != nil {
			return verr
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}
	return requireAffected(result)
}

func (r *employeeRepository) Delete(ctx context.Context, id int) error {
	query, args, err := builder.NewSQLBuilder().
		Delete(employeesTable).
		Where("employee_id = ?", id).
		BuildSafe()
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	return requireAffected(result)
}
