package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminedu/shift-planner-api/internal/models"
	appErrors "github.com/luminedu/shift-planner-api/pkg/errors"
)

func newTestStatsService(store *shiftStoreStub, lessons *lessonReaderStub) *StatsService {
	teachers := &teacherReaderStub{teachers: map[string]models.Teacher{
		"teacher-1": {ID: "teacher-1", OrgID: "org-1", FullName: "Aoi Tanaka", Active: true},
	}}
	return NewStatsService(store, teachers, lessons, nil, nil, nil)
}

func TestStatsServiceTeacherWorkload(t *testing.T) {
	store := &shiftStoreStub{store: []models.ShiftAssignment{
		{ID: "s1", TeacherID: "teacher-1", OrgID: "org-1", Date: mustDate(t, "2024-06-03"), StartTime: "09:00", EndTime: "12:00"},
		{ID: "s2", TeacherID: "teacher-1", OrgID: "org-1", Date: mustDate(t, "2024-06-04"), StartTime: "13:00", EndTime: "18:00"},
		{ID: "s3", TeacherID: "teacher-2", OrgID: "org-1", Date: mustDate(t, "2024-06-04"), StartTime: "09:00", EndTime: "17:00"},
	}}
	svc := newTestStatsService(store, &lessonReaderStub{})

	workload, err := svc.TeacherWorkload(context.Background(), "org-1", "teacher-1", 2024, time.June)
	require.NoError(t, err)
	assert.Equal(t, 2, workload.WorkDays)
	assert.InDelta(t, 8.0, workload.WorkHours, 0.001)
	assert.Equal(t, 2024, workload.Year)
	assert.Equal(t, 6, workload.Month)
}

func TestStatsServiceTeacherWorkloadUnknownTeacher(t *testing.T) {
	svc := newTestStatsService(&shiftStoreStub{}, &lessonReaderStub{})

	_, err := svc.TeacherWorkload(context.Background(), "org-1", "teacher-missing", 2024, time.June)
	requireAppError(t, err, appErrors.ErrNotFound.Code)
}

func TestStatsServiceStudentCountsDedupAcrossFeeds(t *testing.T) {
	lessons := &lessonReaderStub{lessons: []models.LessonRecord{
		{StudentIdentity: "stu-a", LessonDate: mustDate(t, "2024-06-10"), Source: models.LessonSourceRegular},
		{StudentIdentity: "stu-a", LessonDate: mustDate(t, "2024-06-10"), Source: models.LessonSourceTrial},
		{StudentIdentity: "stu-b", LessonDate: mustDate(t, "2024-06-10"), Source: models.LessonSourceTrial},
		{StudentIdentity: "stu-a", LessonDate: mustDate(t, "2024-06-11"), Source: models.LessonSourceRegular},
	}}
	svc := newTestStatsService(&shiftStoreStub{}, lessons)

	counts, err := svc.StudentCounts(context.Background(), "org-1", 2024, time.June)
	require.NoError(t, err)
	assert.Equal(t, 2, counts["2024-06-10"])
	assert.Equal(t, 1, counts["2024-06-11"])
}
