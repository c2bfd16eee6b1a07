package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminedu/shift-planner-api/internal/models"
	appErrors "github.com/luminedu/shift-planner-api/pkg/errors"
)

func TestExportServiceMonthlyRosterCSV(t *testing.T) {
	store := &shiftStoreStub{store: []models.ShiftAssignment{
		{ID: "s1", TeacherID: "teacher-1", OrgID: "org-1", Date: mustDate(t, "2024-06-10"), StartTime: "09:00", EndTime: "17:30"},
		{ID: "s2", TeacherID: "teacher-gone", OrgID: "org-1", Date: mustDate(t, "2024-06-11"), StartTime: "09:00", EndTime: "17:00"},
	}}
	teachers := &teacherReaderStub{teachers: map[string]models.Teacher{
		"teacher-1": {ID: "teacher-1", OrgID: "org-1", FullName: "Aoi Tanaka", Active: true},
	}}
	svc := NewExportService(store, teachers, nil, true)

	result, err := svc.MonthlyRoster(context.Background(), "org-1", 2024, time.June, ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "shift-roster-2024-06.csv", result.FileName)
	assert.Equal(t, "text/csv", result.ContentType)

	body := string(result.Payload)
	lines := strings.Split(strings.TrimSpace(body), "\n")
	// header plus one row, the assignment without a roster entry is skipped
	require.Len(t, lines, 2)
	assert.Equal(t, "Date,Teacher,Start,End,Hours", strings.TrimSpace(lines[0]))
	assert.Contains(t, lines[1], "2024-06-10")
	assert.Contains(t, lines[1], "Aoi Tanaka")
	assert.Contains(t, lines[1], "8.5")
}

func TestExportServiceMonthlyRosterPDF(t *testing.T) {
	store := &shiftStoreStub{store: []models.ShiftAssignment{
		{ID: "s1", TeacherID: "teacher-1", OrgID: "org-1", Date: mustDate(t, "2024-06-10"), StartTime: "09:00", EndTime: "17:00"},
	}}
	teachers := &teacherReaderStub{teachers: map[string]models.Teacher{
		"teacher-1": {ID: "teacher-1", OrgID: "org-1", FullName: "Aoi Tanaka", Active: true},
	}}
	svc := NewExportService(store, teachers, nil, true)

	result, err := svc.MonthlyRoster(context.Background(), "org-1", 2024, time.June, ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "shift-roster-2024-06.pdf", result.FileName)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasPrefix(string(result.Payload), "%PDF"))
}

func TestExportServiceDisabled(t *testing.T) {
	svc := NewExportService(&shiftStoreStub{}, &teacherReaderStub{}, nil, false)

	assert.False(t, svc.Enabled())
	_, err := svc.MonthlyRoster(context.Background(), "org-1", 2024, time.June, ExportFormatCSV)
	requireAppError(t, err, appErrors.ErrForbidden.Code)
}

func TestExportServiceUnsupportedFormat(t *testing.T) {
	svc := NewExportService(&shiftStoreStub{}, &teacherReaderStub{}, nil, true)

	_, err := svc.MonthlyRoster(context.Background(), "org-1", 2024, time.June, "xlsx")
	requireAppError(t, err, appErrors.ErrValidation.Code)
}
