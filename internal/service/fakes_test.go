package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/locvowork/employee_management_backend/internal/domain"
)

// fixedClock pins "today" for age calculations.
func fixedClock(year int, month time.Month, day int) Clock {
	return func() time.Time { return time.Date(year, month, day, 10, 30, 0, 0, time.UTC) }
}

type fakeDepartmentRepo struct {
	mu     sync.Mutex
	rows   map[int]domain.Department
	nextID int
	writes int
}

func newFakeDepartmentRepo() *fakeDepartmentRepo {
	return &fakeDepartmentRepo{rows: map[int]domain.Department{}, nextID: 1}
}

func (r *fakeDepartmentRepo) seed(code, name string) int {
	d := &domain.Department{DepartmentCode: code, DepartmentName: name}
	id, _ := r.Insert(context.Background(), d)
	r.writes = 0
	return id
}

func (r *fakeDepartmentRepo) sorted(less func(a, b domain.Department) bool) []domain.Department {
	out := make([]domain.Department, 0, len(r.rows))
	for _, d := range r.rows {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func (r *fakeDepartmentRepo) GetAll(ctx context.Context) ([]domain.Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(func(a, b domain.Department) bool { return a.DepartmentID < b.DepartmentID }), nil
}

func (r *fakeDepartmentRepo) GetPaged(ctx context.Context, offset, limit int) ([]domain.Department, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.sorted(func(a, b domain.Department) bool {
		if a.DepartmentName != b.DepartmentName {
			return a.DepartmentName < b.DepartmentName
		}
		return a.DepartmentID < b.DepartmentID
	})
	return window(all, offset, limit), len(all), nil
}

func (r *fakeDepartmentRepo) GetByID(ctx context.Context, id int) (*domain.Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &d, nil
}

func (r *fakeDepartmentRepo) GetByCode(ctx context.Context, code string) (*domain.Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.rows {
		if d.DepartmentCode == code {
			return &d, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeDepartmentRepo) Insert(ctx context.Context, d *domain.Department) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	d.DepartmentID = r.nextID
	d.CreatedAt = time.Now()
	r.rows[d.DepartmentID] = *d
	r.nextID++
	return d.DepartmentID, nil
}

func (r *fakeDepartmentRepo) Update(ctx context.Context, d domain.Department) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	old, ok := r.rows[d.DepartmentID]
	if !ok {
		return domain.ErrNotFound
	}
	now := time.Now()
	d.CreatedAt, d.UpdatedAt = old.CreatedAt, &now
	r.rows[d.DepartmentID] = d
	return nil
}

func (r *fakeDepartmentRepo) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	if _, ok := r.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

type fakeEmployeeRepo struct {
	mu     sync.Mutex
	rows   map[int]domain.Employee
	nextID int
	calls  int
	writes int
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{rows: map[int]domain.Employee{}, nextID: 1}
}

func (r *fakeEmployeeRepo) GetAll(ctx context.Context) ([]domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	out := make([]domain.Employee, 0, len(r.rows))
	for _, e := range r.rows {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out, nil
}

func (r *fakeEmployeeRepo) GetPaged(ctx context.Context, offset, limit int) ([]domain.Employee, int, error) {
	all, _ := r.GetAll(ctx)
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].LastName != all[j].LastName {
			return all[i].LastName < all[j].LastName
		}
		return all[i].FirstName < all[j].FirstName
	})
	return window(all, offset, limit), len(all), nil
}

func (r *fakeEmployeeRepo) GetByID(ctx context.Context, id int) (*domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	e, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &e, nil
}

func (r *fakeEmployeeRepo) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	want := strings.ToLower(strings.TrimSpace(email))
	for _, e := range r.rows {
		if strings.ToLower(e.Email) == want {
			return &e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeEmployeeRepo) Insert(ctx context.Context, e *domain.Employee) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.writes++
	e.EmployeeID = r.nextID
	e.CreatedAt = time.Now()
	r.rows[e.EmployeeID] = *e
	r.nextID++
	return e.EmployeeID, nil
}

func (r *fakeEmployeeRepo) Update(ctx context.Context, e domain.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.writes++
	if _, ok := r.rows[e.EmployeeID]; !ok {
		return domain.ErrNotFound
	}
	r.rows[e.EmployeeID] = e
	return nil
}

func (r *fakeEmployeeRepo) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.writes++
	if _, ok := r.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func window[T any](all []T, offset, limit int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

type countingRecorder struct {
	created    map[string]int
	rejections map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{created: map[string]int{}, rejections: map[string]int{}}
}

func (c *countingRecorder) RecordCreated(entity string) { c.created[entity]++ }

func (c *countingRecorder) RecordRejection(entity, field string) {
	c.rejections[entity+"."+field]++
}
