package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminedu/shift-planner-api/internal/models"
)

func TestDatesOfMonthLengths(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		days  int
	}{
		{2024, time.February, 29},
		{2023, time.February, 28},
		{2024, time.June, 30},
		{2024, time.December, 31},
		{2025, time.January, 31},
	}
	for _, tc := range cases {
		dates := DatesOfMonth(tc.year, tc.month)
		assert.Len(t, dates, tc.days, "%d-%d", tc.year, tc.month)
	}
}

func TestDatesOfMonthAscendingAndInMonth(t *testing.T) {
	dates := DatesOfMonth(2024, time.June)
	require.NotEmpty(t, dates)
	assert.Equal(t, "2024-06-01", DateKey(dates[0]))
	assert.Equal(t, "2024-06-30", DateKey(dates[len(dates)-1]))
	for i := 1; i < len(dates); i++ {
		assert.True(t, dates[i].After(dates[i-1]))
		assert.Equal(t, time.June, dates[i].Month())
	}
}

func TestMonthRange(t *testing.T) {
	from, to := MonthRange(2024, time.February)
	assert.Equal(t, "2024-02-01", DateKey(from))
	assert.Equal(t, "2024-02-29", DateKey(to))
}

func TestBucketByDateResolvesTeachers(t *testing.T) {
	teachers := []models.Teacher{
		{ID: "t1", FullName: "Teacher One"},
		{ID: "t2", FullName: "Teacher Two"},
	}
	date := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.Local)
	assignments := []models.ShiftAssignment{
		{TeacherID: "t1", Date: date},
		{TeacherID: "t2", Date: date},
		{TeacherID: "t1", Date: date.AddDate(0, 0, 1)},
	}

	buckets := BucketByDate(assignments, teachers)
	require.Len(t, buckets["2024-06-10"], 2)
	require.Len(t, buckets["2024-06-11"], 1)
	assert.Equal(t, "Teacher One", buckets["2024-06-11"][0].FullName)
}

func TestBucketByDateDropsUnknownTeachers(t *testing.T) {
	teachers := []models.Teacher{{ID: "t1", FullName: "Teacher One"}}
	date := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.Local)
	assignments := []models.ShiftAssignment{
		{TeacherID: "t1", Date: date},
		{TeacherID: "ghost", Date: date},
	}

	buckets := BucketByDate(assignments, teachers)
	assert.Len(t, buckets["2024-06-10"], 1)
}
