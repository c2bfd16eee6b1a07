// Package schedule holds the pure scheduling core: the calendar index,
// conflict detection, the draft staging reducer, and workload aggregation.
// Everything here is value in, value out; persistence and transport live
// in the repository and service layers.
package schedule

import (
	"time"

	"github.com/luminedu/shift-planner-api/internal/models"
)

const dateKeyLayout = "2006-01-02"

// DateKey normalises a timestamp to its calendar-date key.
func DateKey(t time.Time) string {
	return t.Format(dateKeyLayout)
}

// ParseDateKey parses a YYYY-MM-DD key into a local wall-clock midnight.
func ParseDateKey(key string) (time.Time, error) {
	return time.ParseInLocation(dateKeyLayout, key, time.Local)
}

// DatesOfMonth returns every calendar day of the month in ascending order,
// as local midnights. Length is always between 28 and 31.
func DatesOfMonth(year int, month time.Month) []time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	next := first.AddDate(0, 1, 0)

	days := make([]time.Time, 0, 31)
	for d := first; d.Before(next); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// MonthRange returns the first and last calendar day of the month.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	last := first.AddDate(0, 1, -1)
	return first, last
}

// BucketByDate groups assignments per date key, resolving teacher ids
// against the known teacher set. Assignments referencing an unknown
// teacher are dropped silently; they are stale or foreign-org noise, not
// an error.
func BucketByDate(assignments []models.ShiftAssignment, teachers []models.Teacher) map[string][]models.Teacher {
	byID := make(map[string]models.Teacher, len(teachers))
	for _, t := range teachers {
		byID[t.ID] = t
	}

	buckets := make(map[string][]models.Teacher)
	for _, a := range assignments {
		teacher, ok := byID[a.TeacherID]
		if !ok {
			continue
		}
		key := DateKey(a.Date)
		buckets[key] = append(buckets[key], teacher)
	}
	return buckets
}
