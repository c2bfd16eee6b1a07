package schedule

import (
	"time"

	"github.com/luminedu/shift-planner-api/internal/models"
)

// MonthlyWorkload derives a teacher's work-day count and wall-clock work
// hours from committed assignments in the given month. Entries with
// malformed time ranges still count as work-days but contribute no hours.
func MonthlyWorkload(assignments []models.ShiftAssignment, teacherID string, year int, month time.Month) models.TeacherWorkload {
	workload := models.TeacherWorkload{
		TeacherID: teacherID,
		Year:      year,
		Month:     int(month),
	}
	for _, a := range assignments {
		if a.TeacherID != teacherID {
			continue
		}
		if a.Date.Year() != year || a.Date.Month() != month {
			continue
		}
		workload.WorkDays++
		if hours, err := HoursBetween(a.StartTime, a.EndTime); err == nil {
			workload.WorkHours += hours
		}
	}
	return workload
}

// UniqueStudentCounts merges lesson records from both feeds and counts
// distinct student identities per date key. Course and time-slot
// multiplicities collapse: a student with three lessons on a date counts
// once, and an identity appearing in both feeds counts once.
func UniqueStudentCounts(lessons []models.LessonRecord) map[string]int {
	identities := make(map[string]map[string]struct{})
	for _, l := range lessons {
		if l.StudentIdentity == "" {
			continue
		}
		key := DateKey(l.LessonDate)
		if identities[key] == nil {
			identities[key] = make(map[string]struct{})
		}
		identities[key][l.StudentIdentity] = struct{}{}
	}

	counts := make(map[string]int, len(identities))
	for key, set := range identities {
		counts[key] = len(set)
	}
	return counts
}
