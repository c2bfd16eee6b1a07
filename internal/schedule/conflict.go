package schedule

import (
	"time"

	"github.com/luminedu/shift-planner-api/internal/models"
)

// HasAssignment reports whether the teacher already holds an assignment on
// the date in the given committed collection. Committed-side counterpart of
// Draft.HasEntry.
func HasAssignment(assignments []models.ShiftAssignment, teacherID string, date time.Time) bool {
	key := DateKey(date)
	for _, a := range assignments {
		if a.TeacherID == teacherID && DateKey(a.Date) == key {
			return true
		}
	}
	return false
}

// TeacherIDs returns the distinct teacher ids across the given assignment
// sets, in first-seen order. Commit uses the union of the committed month
// and the incoming draft as its delete scope.
func TeacherIDs(sets ...[]models.ShiftAssignment) []string {
	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for _, set := range sets {
		for _, a := range set {
			if _, ok := seen[a.TeacherID]; ok {
				continue
			}
			seen[a.TeacherID] = struct{}{}
			ids = append(ids, a.TeacherID)
		}
	}
	return ids
}

// DuplicatePair returns the first (teacher, date) pair appearing more than
// once in the set, if any. Commit payloads are rejected when one exists.
func DuplicatePair(assignments []models.ShiftAssignment) (teacherID string, date time.Time, found bool) {
	seen := make(map[string]struct{}, len(assignments))
	for _, a := range assignments {
		key := a.TeacherID + "|" + DateKey(a.Date)
		if _, ok := seen[key]; ok {
			return a.TeacherID, a.Date, true
		}
		seen[key] = struct{}{}
	}
	return "", time.Time{}, false
}
