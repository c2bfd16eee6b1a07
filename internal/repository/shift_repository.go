package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/luminedu/shift-planner-api/internal/models"
)

const shiftColumns = `id, teacher_id, org_id, scheduled_date, start_time, end_time, created_at, updated_at`

// ShiftRepository persists teacher shift assignments. Every operation is
// organization-scoped: an empty org id short-circuits to an empty result
// instead of degrading to an unscoped query.
type ShiftRepository struct {
	db *sqlx.DB
}

// NewShiftRepository constructs the repository.
func NewShiftRepository(db *sqlx.DB) *ShiftRepository {
	return &ShiftRepository{db: db}
}

// List returns assignments in the date range, optionally narrowed to a set
// of teachers.
func (r *ShiftRepository) List(ctx context.Context, filter models.ShiftFilter) ([]models.ShiftAssignment, error) {
	if filter.OrgID == "" {
		return nil, nil
	}

	query := `SELECT ` + shiftColumns + ` FROM shift_assignments
WHERE org_id = ? AND scheduled_date >= ? AND scheduled_date <= ?`
	args := []interface{}{filter.OrgID, filter.From, filter.To}

	if len(filter.TeacherIDs) > 0 {
		query += ` AND teacher_id IN (?)`
		expanded, expandedArgs, err := sqlx.In(query+` ORDER BY scheduled_date ASC, start_time ASC`, filter.OrgID, filter.From, filter.To, filter.TeacherIDs)
		if err != nil {
			return nil, fmt.Errorf("expand shift list query: %w", err)
		}
		var shifts []models.ShiftAssignment
		if err := r.db.SelectContext(ctx, &shifts, r.db.Rebind(expanded), expandedArgs...); err != nil {
			return nil, fmt.Errorf("list shifts: %w", err)
		}
		return shifts, nil
	}

	query += ` ORDER BY scheduled_date ASC, start_time ASC`
	var shifts []models.ShiftAssignment
	if err := r.db.SelectContext(ctx, &shifts, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	return shifts, nil
}

// InsertMany bulk-inserts assignments inside a transaction. It does not
// deduplicate; conflict detection happens upstream.
func (r *ShiftRepository) InsertMany(ctx context.Context, shifts []models.ShiftAssignment) error {
	if len(shifts) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin bulk insert shifts: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const query = `INSERT INTO shift_assignments (id, teacher_id, org_id, scheduled_date, start_time, end_time, created_at, updated_at)
VALUES (:id, :teacher_id, :org_id, :scheduled_date, :start_time, :end_time, :created_at, :updated_at)`

	now := time.Now().UTC()
	for i := range shifts {
		payload := shifts[i]
		if payload.ID == "" {
			payload.ID = uuid.NewString()
		}
		if payload.CreatedAt.IsZero() {
			payload.CreatedAt = now
		}
		payload.UpdatedAt = now
		if _, err = tx.NamedExecContext(ctx, query, payload); err != nil {
			return fmt.Errorf("insert shift for teacher %s: %w", payload.TeacherID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit bulk insert shifts: %w", err)
	}
	return nil
}

// DeleteByTeacherAndDate removes the single assignment for the pair.
// Deleting an absent pair is a no-op, which keeps the overwrite workflows
// idempotent.
func (r *ShiftRepository) DeleteByTeacherAndDate(ctx context.Context, orgID, teacherID string, date time.Time) error {
	if orgID == "" {
		return nil
	}
	const query = `DELETE FROM shift_assignments WHERE org_id = $1 AND teacher_id = $2 AND scheduled_date = $3`
	if _, err := r.db.ExecContext(ctx, query, orgID, teacherID, date); err != nil {
		return fmt.Errorf("delete shift: %w", err)
	}
	return nil
}

// DeleteByTeachersAndDateRange clears every assignment for the teachers in
// the range. Used as the first half of a month-wide commit.
func (r *ShiftRepository) DeleteByTeachersAndDateRange(ctx context.Context, orgID string, teacherIDs []string, from, to time.Time) error {
	if orgID == "" || len(teacherIDs) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM shift_assignments
WHERE org_id = ? AND scheduled_date >= ? AND scheduled_date <= ? AND teacher_id IN (?)`, orgID, from, to, teacherIDs)
	if err != nil {
		return fmt.Errorf("expand shift range delete: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("delete shifts in range: %w", err)
	}
	return nil
}

// UpdateTimes replaces the assignment's time range. Returns sql.ErrNoRows
// when the id does not exist within the organization.
func (r *ShiftRepository) UpdateTimes(ctx context.Context, orgID, id, start, end string) error {
	if orgID == "" {
		return sql.ErrNoRows
	}
	const query = `UPDATE shift_assignments SET start_time = $1, end_time = $2, updated_at = $3 WHERE id = $4 AND org_id = $5`
	result, err := r.db.ExecContext(ctx, query, start, end, time.Now().UTC(), id, orgID)
	if err != nil {
		return fmt.Errorf("update shift times: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check updated shift rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
