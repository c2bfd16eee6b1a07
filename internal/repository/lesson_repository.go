package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/luminedu/shift-planner-api/internal/models"
)

// LessonRepository reads the two upstream lesson feeds. Both tables belong
// to the enrollment subsystem and are never written from here.
type LessonRepository struct {
	db *sqlx.DB
}

// NewLessonRepository constructs the repository.
func NewLessonRepository(db *sqlx.DB) *LessonRepository {
	return &LessonRepository{db: db}
}

// ListByDateRange merges regular and trial lesson records for the range.
// Trial rows without a linked student use their own id as the student
// identity.
func (r *LessonRepository) ListByDateRange(ctx context.Context, orgID string, from, to time.Time) ([]models.LessonRecord, error) {
	if orgID == "" {
		return nil, nil
	}

	const regularQuery = `SELECT student_id AS student_identity, lesson_date, time_slot, course_label
FROM lessons WHERE org_id = $1 AND lesson_date >= $2 AND lesson_date <= $3`
	var regular []models.LessonRecord
	if err := r.db.SelectContext(ctx, &regular, regularQuery, orgID, from, to); err != nil {
		return nil, fmt.Errorf("list regular lessons: %w", err)
	}

	const trialQuery = `SELECT COALESCE(student_id, id) AS student_identity, lesson_date, time_slot, course_label
FROM trial_lessons WHERE org_id = $1 AND lesson_date >= $2 AND lesson_date <= $3`
	var trial []models.LessonRecord
	if err := r.db.SelectContext(ctx, &trial, trialQuery, orgID, from, to); err != nil {
		return nil, fmt.Errorf("list trial lessons: %w", err)
	}

	merged := make([]models.LessonRecord, 0, len(regular)+len(trial))
	for _, l := range regular {
		l.Source = models.LessonSourceRegular
		merged = append(merged, l)
	}
	for _, l := range trial {
		l.Source = models.LessonSourceTrial
		merged = append(merged, l)
	}
	return merged, nil
}
