package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/luminedu/shift-planner-api/internal/models"
	"github.com/luminedu/shift-planner-api/internal/schedule"
	appErrors "github.com/luminedu/shift-planner-api/pkg/errors"
)

type shiftRepository interface {
	List(ctx context.Context, filter models.ShiftFilter) ([]models.ShiftAssignment, error)
	InsertMany(ctx context.Context, shifts []models.ShiftAssignment) error
	DeleteByTeacherAndDate(ctx context.Context, orgID, teacherID string, date time.Time) error
	DeleteByTeachersAndDateRange(ctx context.Context, orgID string, teacherIDs []string, from, to time.Time) error
	UpdateTimes(ctx context.Context, orgID, id, start, end string) error
}

type teacherReader interface {
	ListByOrg(ctx context.Context, orgID string) ([]models.Teacher, error)
	FindByID(ctx context.Context, orgID, id string) (*models.Teacher, error)
}

type lessonReader interface {
	ListByDateRange(ctx context.Context, orgID string, from, to time.Time) ([]models.LessonRecord, error)
}

// AssignShiftRequest schedules a single teacher on one date, overwriting
// any assignment the teacher already holds there.
type AssignShiftRequest struct {
	TeacherID string `json:"teacher_id" validate:"required"`
	Date      string `json:"date" validate:"required"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// BatchAssignRequest schedules several teachers on one date with one time
// range, overwriting existing assignments for the targeted pairs.
type BatchAssignRequest struct {
	Date       string   `json:"date" validate:"required"`
	TeacherIDs []string `json:"teacher_ids" validate:"required,min=1,dive,required"`
	StartTime  string   `json:"start_time"`
	EndTime    string   `json:"end_time"`
}

// DraftEntryPayload is one entry of a month-wide draft commit.
type DraftEntryPayload struct {
	ID        string `json:"id"`
	TeacherID string `json:"teacher_id" validate:"required"`
	Date      string `json:"date" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
	IsNew     bool   `json:"is_new"`
	Confirmed bool   `json:"confirmed"`
}

// CommitDraftRequest reconciles a full edited month against the store.
type CommitDraftRequest struct {
	Year    int                 `json:"year" validate:"required"`
	Month   int                 `json:"month" validate:"required,min=1,max=12"`
	Entries []DraftEntryPayload `json:"entries" validate:"dive"`
}

// UpdateShiftTimesRequest edits an assignment's time range in place.
type UpdateShiftTimesRequest struct {
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

// ShiftService owns the scheduling workflows: single and batch assignment,
// month-wide draft commit, time edits, and the month calendar view.
type ShiftService struct {
	shifts       shiftRepository
	teachers     teacherReader
	lessons      lessonReader
	cache        *CacheService
	metrics      *MetricsService
	validator    *validator.Validate
	logger       *zap.Logger
	defaultStart string
	defaultEnd   string
}

// NewShiftService creates a service instance.
func NewShiftService(
	shifts shiftRepository,
	teachers teacherReader,
	lessons lessonReader,
	cache *CacheService,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
	defaultStart, defaultEnd string,
) *ShiftService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaultStart == "" {
		defaultStart = "09:00"
	}
	if defaultEnd == "" {
		defaultEnd = "18:00"
	}
	return &ShiftService{
		shifts:       shifts,
		teachers:     teachers,
		lessons:      lessons,
		cache:        cache,
		metrics:      metrics,
		validator:    validate,
		logger:       logger,
		defaultStart: defaultStart,
		defaultEnd:   defaultEnd,
	}
}

// List returns committed assignments in a date range, optionally narrowed
// to one teacher.
func (s *ShiftService) List(ctx context.Context, orgID, from, to, teacherID string) ([]models.ShiftAssignment, error) {
	fromDate, err := schedule.ParseDateKey(from)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid from date")
	}
	toDate, err := schedule.ParseDateKey(to)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid to date")
	}
	filter := models.ShiftFilter{OrgID: orgID, From: fromDate, To: toDate}
	if teacherID != "" {
		filter.TeacherIDs = []string{teacherID}
	}
	shifts, err := s.shifts.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list shifts")
	}
	return shifts, nil
}

// MonthView builds the derived month calendar: each date of the month with
// its assigned teachers and its unique-student count.
func (s *ShiftService) MonthView(ctx context.Context, orgID string, year int, month time.Month) (*models.MonthlyCalendar, bool, error) {
	cacheKey := monthCacheKey("calendar", orgID, year, month)
	var cached models.MonthlyCalendar
	if s.cache != nil {
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return &cached, true, nil
		}
	}

	from, to := schedule.MonthRange(year, month)

	start := time.Now()
	shifts, err := s.shifts.List(ctx, models.ShiftFilter{OrgID: orgID, From: from, To: to})
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load month assignments")
	}
	teachers, err := s.teachers.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher roster")
	}
	lessons, err := s.lessons.ListByDateRange(ctx, orgID, from, to)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load lesson feeds")
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("month_view", time.Since(start))
	}

	buckets := schedule.BucketByDate(shifts, teachers)
	counts := schedule.UniqueStudentCounts(lessons)

	calendar := &models.MonthlyCalendar{Year: year, Month: int(month)}
	for _, day := range schedule.DatesOfMonth(year, month) {
		key := schedule.DateKey(day)
		calendar.Days = append(calendar.Days, models.CalendarDay{
			Date:         key,
			Teachers:     buckets[key],
			StudentCount: counts[key],
		})
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, calendar, 0); err != nil {
			s.logger.Warn("cache month view", zap.Error(err))
		}
	}
	return calendar, false, nil
}

// Assign overwrites the teacher's assignment on the date: delete the pair,
// then insert the fresh entry (last write wins).
func (s *ShiftService) Assign(ctx context.Context, orgID string, req AssignShiftRequest) (*models.ShiftAssignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}
	date, startTime, endTime, err := s.resolveSlot(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if err := s.ensureTeacher(ctx, orgID, req.TeacherID); err != nil {
		return nil, err
	}

	if err := s.shifts.DeleteByTeacherAndDate(ctx, orgID, req.TeacherID, date); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear existing assignment")
	}
	assignment := models.ShiftAssignment{
		TeacherID: req.TeacherID,
		OrgID:     orgID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
	}
	if err := s.shifts.InsertMany(ctx, []models.ShiftAssignment{assignment}); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create assignment")
	}
	s.invalidate(ctx, orgID)
	return &assignment, nil
}

// BatchAssign schedules every selected teacher on the date with one time
// range. Existing assignments for the targeted pairs are overwritten.
func (s *ShiftService) BatchAssign(ctx context.Context, orgID string, req BatchAssignRequest) ([]models.ShiftAssignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid batch payload")
	}
	date, startTime, endTime, err := s.resolveSlot(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	roster, err := s.teachers.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher roster")
	}
	known := make(map[string]struct{}, len(roster))
	for _, t := range roster {
		known[t.ID] = struct{}{}
	}

	// reject the whole selection before touching the store, so a bad
	// teacher id cannot abort the batch after deletes have started
	for _, teacherID := range req.TeacherIDs {
		if _, ok := known[teacherID]; !ok {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("teacher %s not found", teacherID))
		}
	}

	assignments := make([]models.ShiftAssignment, 0, len(req.TeacherIDs))
	for _, teacherID := range req.TeacherIDs {
		if err := s.shifts.DeleteByTeacherAndDate(ctx, orgID, teacherID, date); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear existing assignment")
		}
		assignments = append(assignments, models.ShiftAssignment{
			TeacherID: teacherID,
			OrgID:     orgID,
			Date:      date,
			StartTime: startTime,
			EndTime:   endTime,
		})
	}

	if err := s.shifts.InsertMany(ctx, assignments); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create assignments")
	}
	s.invalidate(ctx, orgID)
	return assignments, nil
}

// CommitDraft reconciles a month-wide draft: delete every assignment for
// the union of teachers present in committed data and in the draft, then
// bulk-insert all draft entries. The delete+insert pair is not wrapped in
// a store transaction; retrying after a partial failure re-runs the full
// sequence, which is idempotent. Concurrent commits from two sessions race
// with last-write-wins semantics.
func (s *ShiftService) CommitDraft(ctx context.Context, orgID string, req CommitDraftRequest) ([]models.ShiftAssignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid draft payload")
	}
	month := time.Month(req.Month)
	from, to := schedule.MonthRange(req.Year, month)

	incoming := make([]models.ShiftAssignment, 0, len(req.Entries))
	for _, entry := range req.Entries {
		date, err := schedule.ParseDateKey(entry.Date)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid date %q in draft", entry.Date))
		}
		if date.Before(from) || date.After(to) {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("date %s is outside the committed month", entry.Date))
		}
		if err := schedule.ValidateTimeRange(entry.StartTime, entry.EndTime); err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid time range for teacher %s on %s", entry.TeacherID, entry.Date))
		}
		incoming = append(incoming, models.ShiftAssignment{
			ID:        entry.ID,
			TeacherID: entry.TeacherID,
			OrgID:     orgID,
			Date:      date,
			StartTime: entry.StartTime,
			EndTime:   entry.EndTime,
		})
	}
	if teacherID, date, dup := schedule.DuplicatePair(incoming); dup {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("teacher %s already scheduled on %s", teacherID, schedule.DateKey(date)))
	}

	committed, err := s.shifts.List(ctx, models.ShiftFilter{OrgID: orgID, From: from, To: to})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load committed month")
	}

	teacherIDs := schedule.TeacherIDs(committed, incoming)
	if err := s.shifts.DeleteByTeachersAndDateRange(ctx, orgID, teacherIDs, from, to); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear month assignments")
	}
	if err := s.shifts.InsertMany(ctx, incoming); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save draft, please retry")
	}
	s.invalidate(ctx, orgID)
	return incoming, nil
}

// UpdateTimes edits one assignment's time range.
func (s *ShiftService) UpdateTimes(ctx context.Context, orgID, id string, req UpdateShiftTimesRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid time payload")
	}
	if err := schedule.ValidateTimeRange(req.StartTime, req.EndTime); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "start time must be before end time")
	}
	if err := s.shifts.UpdateTimes(ctx, orgID, id, req.StartTime, req.EndTime); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update assignment times")
	}
	s.invalidate(ctx, orgID)
	return nil
}

// Remove deletes the teacher's assignment on the date.
func (s *ShiftService) Remove(ctx context.Context, orgID, teacherID, dateKey string) error {
	if teacherID == "" || dateKey == "" {
		return appErrors.Clone(appErrors.ErrValidation, "teacher and date are required")
	}
	date, err := schedule.ParseDateKey(dateKey)
	if err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "invalid date")
	}
	if err := s.shifts.DeleteByTeacherAndDate(ctx, orgID, teacherID, date); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete assignment")
	}
	s.invalidate(ctx, orgID)
	return nil
}

func (s *ShiftService) resolveSlot(dateKey, startTime, endTime string) (time.Time, string, string, error) {
	date, err := schedule.ParseDateKey(dateKey)
	if err != nil {
		return time.Time{}, "", "", appErrors.Clone(appErrors.ErrValidation, "invalid date")
	}
	if startTime == "" {
		startTime = s.defaultStart
	}
	if endTime == "" {
		endTime = s.defaultEnd
	}
	if err := schedule.ValidateTimeRange(startTime, endTime); err != nil {
		return time.Time{}, "", "", appErrors.Clone(appErrors.ErrValidation, "start time must be before end time")
	}
	return date, startTime, endTime, nil
}

func (s *ShiftService) ensureTeacher(ctx context.Context, orgID, teacherID string) error {
	teacher, err := s.teachers.FindByID(ctx, orgID, teacherID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	if !teacher.Active {
		return appErrors.Clone(appErrors.ErrValidation, "teacher inactive")
	}
	return nil
}

func (s *ShiftService) invalidate(ctx context.Context, orgID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, fmt.Sprintf("roster:*:%s:*", orgID)); err != nil {
		s.logger.Warn("invalidate roster cache", zap.String("org_id", orgID), zap.Error(err))
	}
}

func monthCacheKey(kind, orgID string, year int, month time.Month) string {
	return fmt.Sprintf("roster:%s:%s:%04d-%02d", kind, orgID, year, int(month))
}
