package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/luminedu/shift-planner-api/internal/models"
	"github.com/luminedu/shift-planner-api/internal/schedule"
	appErrors "github.com/luminedu/shift-planner-api/pkg/errors"
	"github.com/luminedu/shift-planner-api/pkg/export"
)

// Export formats supported by the roster export.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

// ExportResult carries the rendered document.
type ExportResult struct {
	FileName    string
	ContentType string
	Payload     []byte
}

// ExportService renders a month's committed roster as CSV or PDF.
type ExportService struct {
	shifts   shiftRepository
	teachers teacherReader
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	logger   *zap.Logger
	enabled  bool
}

// NewExportService constructs an export service.
func NewExportService(shifts shiftRepository, teachers teacherReader, logger *zap.Logger, enabled bool) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		shifts:   shifts,
		teachers: teachers,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
		enabled:  enabled,
	}
}

// Enabled indicates whether roster export is switched on.
func (s *ExportService) Enabled() bool {
	return s != nil && s.enabled
}

// MonthlyRoster renders every committed assignment in the month, one row
// per assignment, ordered by date.
func (s *ExportService) MonthlyRoster(ctx context.Context, orgID string, year int, month time.Month, format string) (*ExportResult, error) {
	if !s.Enabled() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "roster export is disabled")
	}
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	from, to := schedule.MonthRange(year, month)
	shifts, err := s.shifts.List(ctx, models.ShiftFilter{OrgID: orgID, From: from, To: to})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load month assignments")
	}
	roster, err := s.teachers.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher roster")
	}
	names := make(map[string]string, len(roster))
	for _, t := range roster {
		names[t.ID] = t.Name()
	}

	dataset := export.Dataset{
		Headers: []string{"Date", "Teacher", "Start", "End", "Hours"},
	}
	for _, a := range shifts {
		name, ok := names[a.TeacherID]
		if !ok {
			continue
		}
		hours := ""
		if h, err := schedule.HoursBetween(a.StartTime, a.EndTime); err == nil {
			hours = fmt.Sprintf("%.1f", h)
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Date":    schedule.DateKey(a.Date),
			"Teacher": name,
			"Start":   a.StartTime,
			"End":     a.EndTime,
			"Hours":   hours,
		})
	}

	title := fmt.Sprintf("Shift roster %04d-%02d", year, int(month))
	base := fmt.Sprintf("shift-roster-%04d-%02d", year, int(month))

	switch format {
	case ExportFormatPDF:
		payload, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf roster")
		}
		return &ExportResult{FileName: base + ".pdf", ContentType: "application/pdf", Payload: payload}, nil
	default:
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv roster")
		}
		return &ExportResult{FileName: base + ".csv", ContentType: "text/csv", Payload: payload}, nil
	}
}
