package schedule

import (
	"errors"
	"time"

	"github.com/luminedu/shift-planner-api/internal/models"
)

var (
	// ErrTeacherAlreadyScheduled is returned when staging would create a
	// second entry for a (teacher, date) pair.
	ErrTeacherAlreadyScheduled = errors.New("teacher already scheduled on this date")
	// ErrInvalidTimeRange is returned when a start time does not precede
	// its end time.
	ErrInvalidTimeRange = errors.New("start time must be before end time")
	// ErrDraftEntryNotFound is returned when a transition targets a
	// (teacher, date) pair absent from the draft.
	ErrDraftEntryNotFound = errors.New("draft entry not found")
)

// Draft is the edit-mode working copy of a month's assignments. All
// operations return a new Draft and leave the receiver untouched, so a
// caller can discard an edit session by simply dropping the value.
type Draft struct {
	Entries []models.DraftAssignment
}

// NewDraft snapshots committed assignments into a draft. Snapshot entries
// carry IsNew=false and Confirmed=false.
func NewDraft(committed []models.ShiftAssignment) Draft {
	entries := make([]models.DraftAssignment, 0, len(committed))
	for _, a := range committed {
		entries = append(entries, models.DraftAssignment{ShiftAssignment: a})
	}
	return Draft{Entries: entries}
}

// HasEntry reports whether the draft already holds an entry for the
// teacher on the date.
func (d Draft) HasEntry(teacherID string, date time.Time) bool {
	key := DateKey(date)
	for _, e := range d.Entries {
		if e.TeacherID == teacherID && DateKey(e.Date) == key {
			return true
		}
	}
	return false
}

// StageAdd appends a newly dragged-in entry. It refuses with
// ErrTeacherAlreadyScheduled when the pair already exists; staging never
// overwrites.
func (d Draft) StageAdd(teacherID, orgID string, date time.Time, start, end string) (Draft, error) {
	if err := ValidateTimeRange(start, end); err != nil {
		return d, err
	}
	if d.HasEntry(teacherID, date) {
		return d, ErrTeacherAlreadyScheduled
	}
	entry := models.DraftAssignment{
		ShiftAssignment: models.ShiftAssignment{
			TeacherID: teacherID,
			OrgID:     orgID,
			Date:      date,
			StartTime: start,
			EndTime:   end,
		},
		IsNew: true,
	}
	return Draft{Entries: append(d.clone(), entry)}, nil
}

// Remove drops the entry for the pair, regardless of whether it was staged
// or snapshotted. Removing an absent pair is a no-op.
func (d Draft) Remove(teacherID string, date time.Time) Draft {
	key := DateKey(date)
	entries := make([]models.DraftAssignment, 0, len(d.Entries))
	for _, e := range d.Entries {
		if e.TeacherID == teacherID && DateKey(e.Date) == key {
			continue
		}
		entries = append(entries, e)
	}
	return Draft{Entries: entries}
}

// Confirm flags the entry as acknowledged. The flag is cosmetic: commit
// persists every entry whether confirmed or not.
func (d Draft) Confirm(teacherID string, date time.Time) (Draft, error) {
	return d.mutate(teacherID, date, func(e *models.DraftAssignment) error {
		e.Confirmed = true
		return nil
	})
}

// EditTime replaces the entry's time range.
func (d Draft) EditTime(teacherID string, date time.Time, start, end string) (Draft, error) {
	if err := ValidateTimeRange(start, end); err != nil {
		return d, err
	}
	return d.mutate(teacherID, date, func(e *models.DraftAssignment) error {
		e.StartTime = start
		e.EndTime = end
		return nil
	})
}

// TeacherIDs returns the distinct teachers present in the draft.
func (d Draft) TeacherIDs() []string {
	return TeacherIDs(d.Assignments())
}

// Assignments strips the staging flags for the commit bulk insert.
func (d Draft) Assignments() []models.ShiftAssignment {
	out := make([]models.ShiftAssignment, 0, len(d.Entries))
	for _, e := range d.Entries {
		out = append(out, e.ShiftAssignment)
	}
	return out
}

func (d Draft) mutate(teacherID string, date time.Time, apply func(*models.DraftAssignment) error) (Draft, error) {
	key := DateKey(date)
	entries := d.clone()
	for i := range entries {
		if entries[i].TeacherID == teacherID && DateKey(entries[i].Date) == key {
			if err := apply(&entries[i]); err != nil {
				return d, err
			}
			return Draft{Entries: entries}, nil
		}
	}
	return d, ErrDraftEntryNotFound
}

func (d Draft) clone() []models.DraftAssignment {
	entries := make([]models.DraftAssignment, len(d.Entries))
	copy(entries, d.Entries)
	return entries
}
