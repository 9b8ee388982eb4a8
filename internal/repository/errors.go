package repository

import (
	"errors"

	"github.com/lib/pq"
	"github.com/locvowork/employee_management_backend/internal/domain"
)

// Constraint names from internal/database/schema.sql.
const (
	constraintDepartmentCode     = "uq_department_code"
	constraintEmployeeEmail      = "uq_employee_email"
	constraintEmployeeDepartment = "fk_employee_department"
)

const (
	pqUniqueViolation     pq.ErrorCode = "23505"
	pqForeignKeyViolation pq.ErrorCode = "23503"
)

type writeOp int

const (
	opInsert writeOp = iota
	opUpdate
)

// mapWriteError turns constraint violations raised on INSERT/UPDATE into
// validation errors worded like the service checks they back up. The services
// check the same rules beforehand, so these only fire when two requests race.
// It returns nil for any other error.
func mapWriteError(err error, op writeOp) error {
	pqErr, ok := asPQError(err)
	if !ok {
		return nil
	}

	switch {
	case pqErr.Code == pqUniqueViolation && pqErr.Constraint == constraintDepartmentCode:
		return domain.NewValidation("departmentCode", "Department code already exists.")
	case pqErr.Code == pqUniqueViolation && pqErr.Constraint == constraintEmployeeEmail:
		if op == opUpdate {
			return domain.NewValidation("email", "Email address already exists for another employee.")
		}
		return domain.NewValidation("email", "Email address already exists.")
	case pqErr.Code == pqForeignKeyViolation && pqErr.Constraint == constraintEmployeeDepartment:
		return domain.NewValidation("departmentId", "Selected department does not exist.")
	}
	return nil
}

// mapDepartmentDeleteError reports a department that employees still point at.
func mapDepartmentDeleteError(err error) error {
	if pqErr, ok := asPQError(err); ok && pqErr.Code == pqForeignKeyViolation {
		return domain.NewValidation(domain.GeneralField, "Department is still referenced by employees.")
	}
	return nil
}

func asPQError(err error) (*pq.Error, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr, true
	}
	return nil, false
}
