package service

import (
	"context"
	"errors"

	"github.com/locvowork/employee_management_backend/internal/domain"
	"github.com/locvowork/employee_management_backend/internal/logger"
)

const entityDepartment = "Department"

// DepartmentService handles business logic for departments
type DepartmentService interface {
	List(ctx context.Context) ([]domain.Department, error)
	ListPaged(ctx context.Context, page, pageSize int) (domain.PagedResult[domain.Department], error)
	GetByID(ctx context.Context, id int) (*domain.Department, error)
	// Add inserts the department and writes the generated id back onto in.
	Add(ctx context.Context, in *domain.DepartmentInput) error
	Update(ctx context.Context, id int, in domain.DepartmentInput) error
	Delete(ctx context.Context, id int) error
}

type departmentService struct {
	repo domain.DepartmentRepository
	opts options
}

// NewDepartmentService creates a new DepartmentService instance
func NewDepartmentService(repo domain.DepartmentRepository, opts ...Option) DepartmentService {
	return &departmentService{repo: repo, opts: newOptions(opts)}
}

func (s *departmentService) List(ctx context.Context) ([]domain.Department, error) {
	return s.repo.GetAll(ctx)
}

func (s *departmentService) ListPaged(ctx context.Context, page, pageSize int) (domain.PagedResult[domain.Department], error) {
	page, pageSize = clampPage(page, pageSize)

	items, total, err := s.repo.GetPaged(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return domain.PagedResult[domain.Department]{}, err
	}
	return domain.NewPagedResult(items, total, page, pageSize), nil
}

func (s *departmentService) GetByID(ctx context.Context, id int) (*domain.Department, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, entityDepartment, id)
	}
	return d, nil
}

func (s *departmentService) Add(ctx context.Context, in *domain.DepartmentInput) error {
	taken, err := s.codeTaken(ctx, in.DepartmentCode, 0)
	if err != nil {
		return err
	}
	if taken {
		return s.reject(domain.NewValidation("departmentCode", "Department code already exists."))
	}

	d := &domain.Department{
		DepartmentCode: in.DepartmentCode,
		DepartmentName: in.DepartmentName,
	}
	id, err := s.repo.Insert(ctx, d)
	if err != nil {
		return s.reject(err)
	}
	in.DepartmentID = id

	s.opts.recorder.RecordCreated(entityDepartment)
	logger.InfoLog(ctx, "created department %d (%s)", id, d.DepartmentCode)
	return nil
}

func (s *departmentService) Update(ctx context.Context, id int, in domain.DepartmentInput) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	taken, err := s.codeTaken(ctx, in.DepartmentCode, id)
	if err != nil {
		return err
	}
	if taken {
		return s.reject(domain.NewValidation("departmentCode", "Department code already exists."))
	}

	err = s.repo.Update(ctx, domain.Department{
		DepartmentID:   id,
		DepartmentCode: in.DepartmentCode,
		DepartmentName: in.DepartmentName,
	})
	if err != nil {
		return s.reject(notFoundAs(err, entityDepartment, id))
	}
	return nil
}

// Delete does not look for referencing employees first; the foreign key
// refuses the delete and the repository reports it as a validation error.
func (s *departmentService) Delete(ctx context.Context, id int) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.reject(notFoundAs(err, entityDepartment, id))
	}
	logger.InfoLog(ctx, "deleted department %d", id)
	return nil
}

// codeTaken reports whether a department other than exceptID owns code.
func (s *departmentService) codeTaken(ctx context.Context, code string, exceptID int) (bool, error) {
	existing, err := s.repo.GetByCode(ctx, code)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return existing.DepartmentID != exceptID, nil
}

func (s *departmentService) reject(err error) error {
	return recordRejection(s.opts.recorder, entityDepartment, err)
}

// ==================== helpers shared by both services ====================

// notFoundAs upgrades a bare repository ErrNotFound into a NotFoundError
// naming the entity. Other errors pass through untouched.
func notFoundAs(err error, entity string, id int) error {
	var nf *domain.NotFoundError
	if errors.Is(err, domain.ErrNotFound) && !errors.As(err, &nf) {
		return domain.NewNotFound(entity, id)
	}
	return err
}

func recordRejection(r Recorder, entity string, err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		r.RecordRejection(entity, ve.Field)
	}
	return err
}
