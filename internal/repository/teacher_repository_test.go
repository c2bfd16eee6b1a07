package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func teacherRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "org_id", "full_name", "display_name", "active", "created_at"})
}

func TestTeacherRepositoryListByOrg(t *testing.T) {
	db, mock, cleanup := newShiftMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	rows := teacherRows().
		AddRow("teacher-1", "org-1", "Aoi Tanaka", nil, true, time.Now()).
		AddRow("teacher-2", "org-1", "Ren Sato", "Ren", true, time.Now())

	mock.ExpectQuery("SELECT (.+) FROM teachers WHERE org_id").
		WithArgs("org-1").
		WillReturnRows(rows)

	teachers, err := repo.ListByOrg(context.Background(), "org-1")
	require.NoError(t, err)
	require.Len(t, teachers, 2)
	assert.Equal(t, "Aoi Tanaka", teachers[0].Name())
	assert.Equal(t, "Ren", teachers[1].Name())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryListByOrgEmptyOrg(t *testing.T) {
	db, mock, cleanup := newShiftMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	teachers, err := repo.ListByOrg(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, teachers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newShiftMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM teachers WHERE org_id").
		WithArgs("org-1", "teacher-1").
		WillReturnRows(teacherRows().AddRow("teacher-1", "org-1", "Aoi Tanaka", nil, true, time.Now()))

	teacher, err := repo.FindByID(context.Background(), "org-1", "teacher-1")
	require.NoError(t, err)
	assert.Equal(t, "teacher-1", teacher.ID)

	mock.ExpectQuery("SELECT (.+) FROM teachers WHERE org_id").
		WithArgs("org-1", "teacher-missing").
		WillReturnRows(teacherRows())

	_, err = repo.FindByID(context.Background(), "org-1", "teacher-missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	_, err = repo.FindByID(context.Background(), "", "teacher-1")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
