package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/luminedu/shift-planner-api/internal/models"
)

// TeacherRepository reads the organization's teacher roster. Teachers are
// owned by the onboarding subsystem; the planner never writes them.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs the repository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// ListByOrg returns the active roster for an organization.
func (r *TeacherRepository) ListByOrg(ctx context.Context, orgID string) ([]models.Teacher, error) {
	if orgID == "" {
		return nil, nil
	}
	const query = `SELECT id, org_id, full_name, display_name, active, created_at
FROM teachers WHERE org_id = $1 AND active = TRUE ORDER BY full_name ASC`
	var teachers []models.Teacher
	if err := r.db.SelectContext(ctx, &teachers, query, orgID); err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	return teachers, nil
}

// FindByID loads one teacher within the organization scope.
func (r *TeacherRepository) FindByID(ctx context.Context, orgID, id string) (*models.Teacher, error) {
	if orgID == "" {
		return nil, sql.ErrNoRows
	}
	const query = `SELECT id, org_id, full_name, display_name, active, created_at
FROM teachers WHERE org_id = $1 AND id = $2`
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, orgID, id); err != nil {
		return nil, err
	}
	return &teacher, nil
}
