package database

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync/atomic"
	"time"

	"github.com/locvowork/employee_management_backend/internal/domain"
	"github.com/locvowork/employee_management_backend/internal/logger"
	"github.com/locvowork/employee_management_backend/internal/service"
	"github.com/locvowork/employee_management_backend/pkg/dataflow"
	"github.com/shopspring/decimal"
)

// DataSeeder fills an empty directory with sample departments and employees.
// It writes through the services so every seeded row passes the same rules
// as an API request.
type DataSeeder struct {
	departments service.DepartmentService
	employees   service.EmployeeService
	rnd         *rand.Rand
	today       time.Time
	workers     int
}

// NewDataSeeder creates a seeder whose random names and dates derive from
// seed. Employees are created by up to workers concurrent calls.
func NewDataSeeder(departments service.DepartmentService, employees service.EmployeeService, seed int64, workers int) *DataSeeder {
	if workers < 1 {
		workers = 1
	}
	return &DataSeeder{
		departments: departments,
		employees:   employees,
		rnd:         rand.New(rand.NewSource(seed)),
		today:       time.Now(),
		workers:     workers,
	}
}

var (
	departmentNames = []string{"Engineering", "Finance", "Human Resources", "Marketing", "Operations", "Sales", "Legal", "Support", "Research", "Procurement"}
	firstNames      = []string{"Ada", "Alan", "Grace", "Linus", "Margaret", "Dennis", "Barbara", "Ken", "Frances", "Edsger", "Radia", "Donald"}
	lastNames       = []string{"Lovelace", "Turing", "Hopper", "Torvalds", "Hamilton", "Ritchie", "Liskov", "Thompson", "Allen", "Dijkstra", "Perlman", "Knuth"}
)

// SeedStats counts what one SeedData run created.
type SeedStats struct {
	Departments int
	Employees   int
}

// SeedData creates numDepartments departments and spreads numEmployees
// employees across them.
func (ds *DataSeeder) SeedData(ctx context.Context, numDepartments, numEmployees int) (SeedStats, error) {
	var stats SeedStats
	if numDepartments < 1 {
		return stats, fmt.Errorf("at least one department is required")
	}
	start := time.Now()

	deptIDs := make([]int, 0, numDepartments)
	for i := 0; i < numDepartments; i++ {
		name := departmentNames[i%len(departmentNames)]
		if i >= len(departmentNames) {
			name = fmt.Sprintf("%s %d", name, i/len(departmentNames)+1)
		}
		in := &domain.DepartmentInput{
			DepartmentCode: fmt.Sprintf("%s%03d", strings.ToUpper(name[:3]), i+1),
			DepartmentName: name,
		}
		if err := ds.departments.Add(ctx, in); err != nil {
			return stats, fmt.Errorf("failed to create department %s: %w", in.DepartmentCode, err)
		}
		deptIDs = append(deptIDs, in.DepartmentID)
		stats.Departments++
	}
	logger.InfoLog(ctx, "Created %d departments", stats.Departments)

	// inputs are drawn up front so a given seed yields the same rows
	// whatever the worker interleaving
	inputs := make([]*domain.EmployeeInput, numEmployees)
	for i := range inputs {
		inputs[i] = ds.randomEmployee(i, deptIDs)
	}

	streamCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var created atomic.Int64
	err := dataflow.ForEach(streamCtx, dataflow.From(streamCtx, inputs...), func(ctx context.Context, in *domain.EmployeeInput) error {
		if err := ds.employees.Add(ctx, in); err != nil {
			return fmt.Errorf("failed to create employee %s: %w", in.Email, err)
		}
		created.Add(1)
		return nil
	},
		dataflow.WithWorkers(ds.workers),
		dataflow.WithRetry(3, dataflow.ExponentialBackoff(100*time.Millisecond)),
		dataflow.WithRetryIf(isTransient),
	)
	stats.Employees = int(created.Load())
	if err != nil {
		return stats, err
	}
	logger.InfoLog(ctx, "Created %d employees in %v", stats.Employees, time.Since(start))

	return stats, nil
}

func (ds *DataSeeder) randomEmployee(n int, deptIDs []int) *domain.EmployeeInput {
	first := firstNames[ds.rnd.Intn(len(firstNames))]
	last := lastNames[ds.rnd.Intn(len(lastNames))]

	// comfortably past the minimum age, up to roughly 65
	minAgeDays := 18*366 + 1
	dob := ds.today.AddDate(0, 0, -(minAgeDays + ds.rnd.Intn(47*365)))

	// 30,000.00 to 150,000.00
	cents := 3_000_000 + ds.rnd.Int63n(12_000_001)

	return &domain.EmployeeInput{
		FirstName:    first,
		LastName:     last,
		Email:        fmt.Sprintf("%s.%s.%d@example.com", strings.ToLower(first), strings.ToLower(last), n+1),
		DateOfBirth:  domain.NewDate(dob.Year(), dob.Month(), dob.Day()),
		Salary:       decimal.New(cents, -2),
		DepartmentID: deptIDs[ds.rnd.Intn(len(deptIDs))],
	}
}

// isTransient reports errors worth retrying. Business rule rejections
// fail the same way every time.
func isTransient(err error) bool {
	var ve *domain.ValidationError
	var nf *domain.NotFoundError
	return !errors.As(err, &ve) && !errors.As(err, &nf) && !errors.Is(err, context.Canceled)
}

// ClearData removes every employee and then every department.
func (ds *DataSeeder) ClearData(ctx context.Context) error {
	employees, err := ds.employees.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list employees: %w", err)
	}
	for _, e := range employees {
		if err := ds.employees.Delete(ctx, e.EmployeeID); err != nil {
			return fmt.Errorf("failed to delete employee %d: %w", e.EmployeeID, err)
		}
	}

	departments, err := ds.departments.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list departments: %w", err)
	}
	for _, d := range departments {
		if err := ds.departments.Delete(ctx, d.DepartmentID); err != nil {
			return fmt.Errorf("failed to delete department %d: %w", d.DepartmentID, err)
		}
	}

	logger.InfoLog(ctx, "Removed %d employees and %d departments", len(employees), len(departments))
	return nil
}

// Presets
type SeedPreset string

const (
	PresetSmall  SeedPreset = "small"
	PresetMedium SeedPreset = "medium"
	PresetLarge  SeedPreset = "large"
)

// GetPresetConfig returns the department and employee counts of a preset.
func GetPresetConfig(preset SeedPreset) (numDepartments, numEmployees int) {
	switch preset {
	case PresetSmall:
		return 3, 20
	case PresetLarge:
		return 20, 2000
	default:
		return 8, 200
	}
}
