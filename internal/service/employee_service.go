package service

import (
	"context"
	"errors"
	"strings"

	"github.com/locvowork/employee_management_backend/internal/domain"
	"github.com/locvowork/employee_management_backend/internal/logger"
)

const (
	entityEmployee = "Employee"
	minimumAge     = 18
)

// EmployeeService handles business logic for employees
type EmployeeService interface {
	List(ctx context.Context) ([]domain.Employee, error)
	ListPaged(ctx context.Context, page, pageSize int) (domain.PagedResult[domain.Employee], error)
	GetByID(ctx context.Context, id int) (*domain.Employee, error)
	// Add inserts the employee and writes the generated id and computed age
	// back onto in.
	Add(ctx context.Context, in *domain.EmployeeInput) error
	Update(ctx context.Context, id int, in domain.EmployeeInput) error
	Delete(ctx context.Context, id int) error
}

type employeeService struct {
	repo     domain.EmployeeRepository
	deptRepo domain.DepartmentRepository
	opts     options
}

// NewEmployeeService creates a new EmployeeService instance
func NewEmployeeService(repo domain.EmployeeRepository, deptRepo domain.DepartmentRepository, opts ...Option) EmployeeService {
	return &employeeService{repo: repo, deptRepo: deptRepo, opts: newOptions(opts)}
}

func (s *employeeService) List(ctx context.Context) ([]domain.Employee, error) {
	employees, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	s.refreshAges(employees)
	return employees, nil
}

func (s *employeeService) ListPaged(ctx context.Context, page, pageSize int) (domain.PagedResult[domain.Employee], error) {
	page, pageSize = clampPage(page, pageSize)

	items, total, err := s.repo.GetPaged(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return domain.PagedResult[domain.Employee]{}, err
	}
	s.refreshAges(items)
	return domain.NewPagedResult(items, total, page, pageSize), nil
}

func (s *employeeService) GetByID(ctx context.Context, id int) (*domain.Employee, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, entityEmployee, id)
	}
	e.Age = domain.AgeOn(e.DateOfBirth, s.opts.clock())
	return e, nil
}

func (s *employeeService) Add(ctx context.Context, in *domain.EmployeeInput) error {
	age, err := s.validate(ctx, *in, 0)
	if err != nil {
		return s.reject(err)
	}

	e := toEmployee(*in, age)
	id, err := s.repo.Insert(ctx, e)
	if err != nil {
		return s.reject(err)
	}
	in.EmployeeID = id
	in.Age = age

	s.opts.recorder.RecordCreated(entityEmployee)
	logger.InfoLog(ctx, "created employee %d in department %d", id, e.DepartmentID)
	return nil
}

func (s *employeeService) Update(ctx context.Context, id int, in domain.EmployeeInput) error {
	if id != in.EmployeeID {
		return s.reject(domain.NewValidation(domain.GeneralField, "ID mismatch between route and request body."))
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return notFoundAs(err, entityEmployee, id)
	}

	age, err := s.validate(ctx, in, id)
	if err != nil {
		return s.reject(err)
	}

	e := toEmployee(in, age)
	e.EmployeeID = id
	if err := s.repo.Update(ctx, *e); err != nil {
		return s.reject(notFoundAs(err, entityEmployee, id))
	}
	return nil
}

func (s *employeeService) Delete(ctx context.Context, id int) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return notFoundAs(err, entityEmployee, id)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundAs(err, entityEmployee, id)
	}
	logger.InfoLog(ctx, "deleted employee %d", id)
	return nil
}

// validate applies the business rules in order: the department exists, the
// employee is an adult, the email is free. selfID is the employee being
// updated, or 0 on create. It returns the age as of today.
func (s *employeeService) validate(ctx context.Context, in domain.EmployeeInput, selfID int) (int, error) {
	if _, err := s.deptRepo.GetByID(ctx, in.DepartmentID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, domain.NewValidation("departmentId", "Selected department does not exist.")
		}
		return 0, err
	}

	age := domain.AgeOn(in.DateOfBirth, s.opts.clock())
	if age < minimumAge {
		return 0, domain.NewValidation("dateOfBirth", "Employee must be at least 18 years old.")
	}

	existing, err := s.repo.GetByEmail(ctx, normalizeEmail(in.Email))
	switch {
	case errors.Is(err, domain.ErrNotFound):
	case err != nil:
		return 0, err
	case selfID == 0:
		return 0, domain.NewValidation("email", "Email address already exists.")
	case existing.EmployeeID != selfID:
		return 0, domain.NewValidation("email", "Email address already exists for another employee.")
	}
	return age, nil
}

func (s *employeeService) refreshAges(employees []domain.Employee) {
	today := s.opts.clock()
	for i := range employees {
		employees[i].Age = domain.AgeOn(employees[i].DateOfBirth, today)
	}
}

func (s *employeeService) reject(err error) error {
	return recordRejection(s.opts.recorder, entityEmployee, err)
}

func toEmployee(in domain.EmployeeInput, age int) *domain.Employee {
	return &domain.Employee{
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        normalizeEmail(in.Email),
		DateOfBirth:  in.DateOfBirth,
		Age:          age,
		Salary:       in.Salary,
		DepartmentID: in.DepartmentID,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
