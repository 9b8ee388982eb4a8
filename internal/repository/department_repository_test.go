package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/locvowork/employee_management_backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock
}

var departmentRowColumns = []string{"department_id", "department_code", "department_name", "created_at", "updated_at"}

func TestDepartmentRepository_GetAll(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDepartmentRepository(db)
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	updated := created.Add(time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT department_id, department_code, department_name, created_at, updated_at FROM departments ORDER BY department_id")).
		WillReturnRows(sqlmock.NewRows(departmentRowColumns).
			AddRow(1, "ENG", "Engineering", created, nil).
			AddRow(2, "FIN", "Finance", created, updated))

	got, err := repo.GetAll(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "ENG", got[0].DepartmentCode)
	assert.Nil(t, got[0].UpdatedAt)
	require.NotNil(t, got[1].UpdatedAt)
	assert.Equal(t, updated, *got[1].UpdatedAt)
}

func TestDepartmentRepository_GetPaged(t *testing.T) {
	created := time.Now()
	pagedCols := append(append([]string{}, departmentRowColumns...), "total_count")

	t.Run("window count", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewDepartmentRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("COUNT(*) OVER() AS total_count FROM departments ORDER BY department_name, department_id LIMIT $1 OFFSET $2")).
			WithArgs(10, 20).
			WillReturnRows(sqlmock.NewRows(pagedCols).
				AddRow(21, "D21", "Dept 21", created, nil, 25).
				AddRow(22, "D22", "Dept 22", created, nil, 25))

		items, total, err := repo.GetPaged(context.Background(), 20, 10)

		require.NoError(t, err)
		assert.Len(t, items, 2)
		assert.Equal(t, 25, total)
	})

	t.Run("first page has no offset", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewDepartmentRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("LIMIT $1")).
			WithArgs(10).
			WillReturnRows(sqlmock.NewRows(pagedCols))

		items, total, err := repo.GetPaged(context.Background(), 0, 10)

		require.NoError(t, err)
		assert.Empty(t, items)
		assert.Equal(t, 0, total)
	})

	t.Run("past the last page falls back to count", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewDepartmentRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("OFFSET $2")).
			WithArgs(10, 90).
			WillReturnRows(sqlmock.NewRows(pagedCols))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM departments")).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))

		items, total, err := repo.GetPaged(context.Background(), 90, 10)

		require.NoError(t, err)
		assert.Empty(t, items)
		assert.Equal(t, 25, total)
	})
}

func TestDepartmentRepository_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewDepartmentRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("FROM departments WHERE department_id = $1")).
			WithArgs(7).
			WillReturnRows(sqlmock.NewRows(departmentRowColumns).AddRow(7, "HR", "Human Resources", time.Now(), nil))

		d, err := repo.GetByID(context.Background(), 7)

		require.NoError(t, err)
		assert.Equal(t, 7, d.DepartmentID)
		assert.Equal(t, "Human Resources", d.DepartmentName)
	})

	t.Run("missing", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewDepartmentRepository(db)

		mock.ExpectQuery("FROM departments WHERE department_id").
			WithArgs(8).
			WillReturnRows(sqlmock.NewRows(departmentRowColumns))

		d, err := repo.GetByID(context.Background(), 8)

		assert.Nil(t, d)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("driver failure is wrapped", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewDepartmentRepository(db)
		boom := errors.New("connection reset")

		mock.ExpectQuery("FROM departments").WillReturnError(boom)

		_, err := repo.GetByID(context.Background(), 1)

		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestDepartmentRepository_GetByCode(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDepartmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE department_code = $1")).
		WithArgs("ENG").
		WillReturnRows(sqlmock.NewRows(departmentRowColumns).AddRow(3, "ENG", "Engineering", time.Now(), nil))

	d, err := repo.GetByCode(context.Background(), "ENG")

	require.NoError(t, err)
	assert.Equal(t, 3, d.DepartmentID)
}

func TestDepartmentRepository_Insert(t *testing.T) {
	t.Run("returns generated id in one round trip", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewDepartmentRepository(db)
		created := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO departments (department_code, department_name) VALUES ($1, $2) RETURNING department_id, created_at")).
			WithArgs("OPS", "Operations").
			WillReturnRows(sqlmock.NewRows([]string{"department_id", "created_at"}).AddRow(12, created))

		d := &domain.Department{DepartmentCode: "OPS", DepartmentName: "Operations"}
		id, err := repo.Insert(context.Background(), d)

		require.NoError(t, err)
		assert.Equal(t, 12, id)
		assert.Equal(t, 12, d.DepartmentID)
		assert.Equal(t, created, d.CreatedAt)
	})

	t.Run("unique violation becomes validation error", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewDepartmentRepository(db)

		mock.ExpectQuery("INSERT INTO departments").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_department_code"})

		_, err := repo.Insert(context.Background(), &domain.Department{DepartmentCode: "OPS", DepartmentName: "Operations"})

		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "departmentCode", ve.Field)
	})
}

func TestDepartmentRepository_Update(t *testing.T) {
	t.Run("touches updated_at", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewDepartmentRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE departments SET department_code = $1, department_name = $2, updated_at = NOW() WHERE department_id = $3")).
			WithArgs("FIN", "Finance", 4).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(context.Background(), domain.Department{DepartmentID: 4, DepartmentCode: "FIN", DepartmentName: "Finance"})

		assert.NoError(t, err)
	})

	t.Run("no row", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewDepartmentRepository(db)

		mock.ExpectExec("UPDATE departments").WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(context.Background(), domain.Department{DepartmentID: 99, DepartmentCode: "X", DepartmentName: "X"})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestDepartmentRepository_Delete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewDepartmentRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM departments WHERE department_id = $1")).
			WithArgs(5).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), 5))
	})

	t.Run("still referenced by employees", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewDepartmentRepository(db)

		mock.ExpectExec("DELETE FROM departments").
			WillReturnError(&pq.Error{Code: "23503", Constraint: "fk_employee_department"})

		err := repo.Delete(context.Background(), 5)

		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, domain.GeneralField, ve.Field)
	})

	t.Run("no row", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewDepartmentRepository(db)

		mock.ExpectExec("DELETE FROM departments").WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(context.Background(), 5), domain.ErrNotFound)
	})
}
