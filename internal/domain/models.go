package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// salaries go over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

// ==================== DEPARTMENTS ====================

// Department represents the departments table
type Department struct {
	DepartmentID   int        `json:"departmentId" db:"department_id"`
	DepartmentCode string     `json:"departmentCode" db:"department_code"`
	DepartmentName string     `json:"departmentName" db:"department_name"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt      *time.Time `json:"updatedAt" db:"updated_at"`
}

// DepartmentInput is the request body for creating or updating a department
type DepartmentInput struct {
	DepartmentID   int    `json:"departmentId"`
	DepartmentCode string `json:"departmentCode" validate:"required,max=50"`
	DepartmentName string `json:"departmentName" validate:"required,max=100"`
}

// ==================== EMPLOYEES ====================

// Employee represents the employees table. DepartmentCode and DepartmentName
// are filled from a LEFT JOIN and stay nil when the department row is gone.
type Employee struct {
	EmployeeID     int             `json:"employeeId" db:"employee_id"`
	FirstName      string          `json:"firstName" db:"first_name"`
	LastName       string          `json:"lastName" db:"last_name"`
	Email          string          `json:"email" db:"email"`
	DateOfBirth    Date            `json:"dateOfBirth" db:"date_of_birth"`
	Age            int             `json:"age" db:"age"`
	Salary         decimal.Decimal `json:"salary" db:"salary"`
	DepartmentID   int             `json:"departmentId" db:"department_id"`
	DepartmentCode *string         `json:"departmentCode" db:"department_code"`
	DepartmentName *string         `json:"departmentName" db:"department_name"`
	CreatedAt      time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt      *time.Time      `json:"updatedAt" db:"updated_at"`
}

// EmployeeInput is the request body for creating or updating an employee.
// Age is output only; it is recomputed from DateOfBirth.
type EmployeeInput struct {
	EmployeeID     int             `json:"employeeId"`
	FirstName      string          `json:"firstName" validate:"required,max=100"`
	LastName       string          `json:"lastName" validate:"required,max=100"`
	Email          string          `json:"email" validate:"required,email,max=255"`
	DateOfBirth    Date            `json:"dateOfBirth" validate:"required"`
	Age            int             `json:"age"`
	Salary         decimal.Decimal `json:"salary" validate:"gte=0.01"`
	DepartmentID   int             `json:"departmentId" validate:"min=1"`
	DepartmentName *string         `json:"departmentName,omitempty"`
	DepartmentCode *string         `json:"departmentCode,omitempty"`
}

// ==================== PAGING ====================

// PagedResult is one page of T plus the count metadata needed to page further
type PagedResult[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"totalCount"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// NewPagedResult builds a PagedResult and derives TotalPages = ceil(total / pageSize).
func NewPagedResult[T any](items []T, total, page, pageSize int) PagedResult[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return PagedResult[T]{
		Items:      items,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
