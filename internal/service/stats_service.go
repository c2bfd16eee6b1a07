package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/luminedu/shift-planner-api/internal/models"
	"github.com/luminedu/shift-planner-api/internal/schedule"
	appErrors "github.com/luminedu/shift-planner-api/pkg/errors"
)

// StatsService derives aggregate statistics from committed assignments and
// the read-only lesson feeds.
type StatsService struct {
	shifts   shiftRepository
	teachers teacherReader
	lessons  lessonReader
	cache    *CacheService
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewStatsService constructs a stats service.
func NewStatsService(shifts shiftRepository, teachers teacherReader, lessons lessonReader, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *StatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{shifts: shifts, teachers: teachers, lessons: lessons, cache: cache, metrics: metrics, logger: logger}
}

// TeacherWorkload reports work-days and wall-clock work-hours for the
// teacher's committed assignments in the month.
func (s *StatsService) TeacherWorkload(ctx context.Context, orgID, teacherID string, year int, month time.Month) (*models.TeacherWorkload, error) {
	if _, err := s.teachers.FindByID(ctx, orgID, teacherID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}

	cacheKey := fmt.Sprintf("roster:workload:%s:%s:%04d-%02d", orgID, teacherID, year, int(month))
	var cached models.TeacherWorkload
	if s.cache != nil {
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	from, to := schedule.MonthRange(year, month)
	start := time.Now()
	shifts, err := s.shifts.List(ctx, models.ShiftFilter{OrgID: orgID, From: from, To: to, TeacherIDs: []string{teacherID}})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignments")
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("teacher_workload", time.Since(start))
	}

	workload := schedule.MonthlyWorkload(shifts, teacherID, year, month)
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, workload, 0); err != nil {
			s.logger.Warn("cache workload", zap.Error(err))
		}
	}
	return &workload, nil
}

// StudentCounts returns the per-date unique-student counts for the month,
// deduplicated across both lesson feeds.
func (s *StatsService) StudentCounts(ctx context.Context, orgID string, year int, month time.Month) (map[string]int, error) {
	from, to := schedule.MonthRange(year, month)
	start := time.Now()
	lessons, err := s.lessons.ListByDateRange(ctx, orgID, from, to)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load lesson feeds")
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("student_counts", time.Since(start))
	}
	return schedule.UniqueStudentCounts(lessons), nil
}
