package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminedu/shift-planner-api/internal/models"
)

func day(d int) time.Time {
	return time.Date(2024, time.June, d, 0, 0, 0, 0, time.Local)
}

func TestNewDraftSnapshotsCommitted(t *testing.T) {
	committed := []models.ShiftAssignment{
		{ID: "s1", TeacherID: "t1", Date: day(10), StartTime: "09:00", EndTime: "12:00"},
		{ID: "s2", TeacherID: "t2", Date: day(11), StartTime: "13:00", EndTime: "18:00"},
	}
	draft := NewDraft(committed)
	require.Len(t, draft.Entries, 2)
	for _, e := range draft.Entries {
		assert.False(t, e.IsNew)
		assert.False(t, e.Confirmed)
	}
}

func TestStageAddAppendsNewEntry(t *testing.T) {
	draft := NewDraft(nil)
	next, err := draft.StageAdd("t3", "org-1", day(12), "09:00", "18:00")
	require.NoError(t, err)
	require.Len(t, next.Entries, 1)
	assert.True(t, next.Entries[0].IsNew)
	assert.Equal(t, "org-1", next.Entries[0].OrgID)

	// the original value is untouched; dropping it discards the edit
	assert.Empty(t, draft.Entries)
}

func TestStageAddRejectsConflict(t *testing.T) {
	draft := NewDraft([]models.ShiftAssignment{
		{ID: "s1", TeacherID: "t1", Date: day(10), StartTime: "09:00", EndTime: "12:00"},
	})
	next, err := draft.StageAdd("t1", "org-1", day(10), "13:00", "18:00")
	assert.ErrorIs(t, err, ErrTeacherAlreadyScheduled)
	assert.Len(t, next.Entries, 1)
}

func TestStageAddRejectsInvalidRange(t *testing.T) {
	draft := NewDraft(nil)
	_, err := draft.StageAdd("t1", "org-1", day(10), "18:00", "09:00")
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = draft.StageAdd("t1", "org-1", day(10), "9am", "18:00")
	assert.Error(t, err)
}

func TestRemoveDropsEntryRegardlessOfOrigin(t *testing.T) {
	draft := NewDraft([]models.ShiftAssignment{
		{ID: "s1", TeacherID: "t1", Date: day(10), StartTime: "09:00", EndTime: "12:00"},
	})
	draft, err := draft.StageAdd("t2", "org-1", day(10), "09:00", "18:00")
	require.NoError(t, err)

	draft = draft.Remove("t1", day(10))
	draft = draft.Remove("t2", day(10))
	assert.Empty(t, draft.Entries)

	// removing an absent pair is a no-op
	draft = draft.Remove("t9", day(10))
	assert.Empty(t, draft.Entries)
}

func TestConfirmIsCosmetic(t *testing.T) {
	draft := NewDraft([]models.ShiftAssignment{
		{ID: "s1", TeacherID: "t1", Date: day(10), StartTime: "09:00", EndTime: "12:00"},
	})
	confirmed, err := draft.Confirm("t1", day(10))
	require.NoError(t, err)
	assert.True(t, confirmed.Entries[0].Confirmed)

	// commit payloads are identical whether confirmed or not
	assert.Equal(t, draft.Assignments(), confirmed.Assignments())
}

func TestConfirmMissingEntry(t *testing.T) {
	draft := NewDraft(nil)
	_, err := draft.Confirm("t1", day(10))
	assert.ErrorIs(t, err, ErrDraftEntryNotFound)
}

func TestEditTime(t *testing.T) {
	draft := NewDraft([]models.ShiftAssignment{
		{ID: "s1", TeacherID: "t1", Date: day(10), StartTime: "09:00", EndTime: "12:00"},
	})
	edited, err := draft.EditTime("t1", day(10), "10:00", "15:30")
	require.NoError(t, err)
	assert.Equal(t, "10:00", edited.Entries[0].StartTime)
	assert.Equal(t, "15:30", edited.Entries[0].EndTime)

	// receiver keeps the old range
	assert.Equal(t, "09:00", draft.Entries[0].StartTime)

	_, err = draft.EditTime("t1", day(10), "15:00", "15:00")
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestTeacherIDsDeduplicates(t *testing.T) {
	draft := NewDraft([]models.ShiftAssignment{
		{ID: "s1", TeacherID: "t1", Date: day(10), StartTime: "09:00", EndTime: "12:00"},
		{ID: "s2", TeacherID: "t1", Date: day(11), StartTime: "09:00", EndTime: "12:00"},
		{ID: "s3", TeacherID: "t2", Date: day(11), StartTime: "09:00", EndTime: "12:00"},
	})
	assert.ElementsMatch(t, []string{"t1", "t2"}, draft.TeacherIDs())
}
