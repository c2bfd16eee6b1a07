package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/luminedu/shift-planner-api/internal/models"
	"github.com/luminedu/shift-planner-api/internal/service"
	appErrors "github.com/luminedu/shift-planner-api/pkg/errors"
	"github.com/luminedu/shift-planner-api/pkg/response"
)

type shiftPlanner interface {
	List(ctx context.Context, orgID, from, to, teacherID string) ([]models.ShiftAssignment, error)
	MonthView(ctx context.Context, orgID string, year int, month time.Month) (*models.MonthlyCalendar, bool, error)
	Assign(ctx context.Context, orgID string, req service.AssignShiftRequest) (*models.ShiftAssignment, error)
	BatchAssign(ctx context.Context, orgID string, req service.BatchAssignRequest) ([]models.ShiftAssignment, error)
	CommitDraft(ctx context.Context, orgID string, req service.CommitDraftRequest) ([]models.ShiftAssignment, error)
	UpdateTimes(ctx context.Context, orgID, id string, req service.UpdateShiftTimesRequest) error
	Remove(ctx context.Context, orgID, teacherID, dateKey string) error
}

type rosterExporter interface {
	Enabled() bool
	MonthlyRoster(ctx context.Context, orgID string, year int, month time.Month, format string) (*service.ExportResult, error)
}

// ShiftHandler manages shift calendar endpoints.
type ShiftHandler struct {
	service  shiftPlanner
	exporter rosterExporter
}

// NewShiftHandler constructs handler.
func NewShiftHandler(svc shiftPlanner, exporter rosterExporter) *ShiftHandler {
	return &ShiftHandler{service: svc, exporter: exporter}
}

// List godoc
// @Summary List shift assignments in a date range
// @Tags Shifts
// @Produce json
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Param teacherId query string false "Filter by teacher"
// @Success 200 {object} response.Envelope
// @Router /shifts [get]
func (h *ShiftHandler) List(c *gin.Context) {
	shifts, err := h.service.List(c.Request.Context(), currentOrgID(c), c.Query("from"), c.Query("to"), c.Query("teacherId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, shifts, nil)
}

// Calendar godoc
// @Summary Month calendar with teacher buckets and student counts
// @Tags Shifts
// @Produce json
// @Param year query int false "Year"
// @Param month query int false "Month (1-12)"
// @Success 200 {object} response.Envelope
// @Router /shifts/calendar [get]
func (h *ShiftHandler) Calendar(c *gin.Context) {
	year, month, ok := yearMonthParams(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid year or month"))
		return
	}
	calendar, fromCache, err := h.service.MonthView(c.Request.Context(), currentOrgID(c), year, month)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, calendar, nil, map[string]interface{}{"cached": fromCache})
}

// Assign godoc
// @Summary Assign one teacher to a shift (overwrites the pair)
// @Tags Shifts
// @Accept json
// @Produce json
// @Param payload body service.AssignShiftRequest true "Assignment payload"
// @Success 201 {object} response.Envelope
// @Router /shifts [post]
func (h *ShiftHandler) Assign(c *gin.Context) {
	var req service.AssignShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	assignment, err := h.service.Assign(c.Request.Context(), currentOrgID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, assignment)
}

// BatchAssign godoc
// @Summary Assign several teachers to one date with one time range
// @Tags Shifts
// @Accept json
// @Produce json
// @Param payload body service.BatchAssignRequest true "Batch payload"
// @Success 200 {object} response.Envelope
// @Router /shifts/batch [post]
func (h *ShiftHandler) BatchAssign(c *gin.Context) {
	var req service.BatchAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	assignments, err := h.service.BatchAssign(c.Request.Context(), currentOrgID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assignments, nil)
}

// CommitDraft godoc
// @Summary Commit a month-wide draft (range delete + bulk insert)
// @Tags Shifts
// @Accept json
// @Produce json
// @Param payload body service.CommitDraftRequest true "Draft payload"
// @Success 200 {object} response.Envelope
// @Router /shifts/commit [post]
func (h *ShiftHandler) CommitDraft(c *gin.Context) {
	var req service.CommitDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	assignments, err := h.service.CommitDraft(c.Request.Context(), currentOrgID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assignments, nil)
}

// UpdateTimes godoc
// @Summary Edit an assignment's time range
// @Tags Shifts
// @Accept json
// @Produce json
// @Param id path string true "Assignment ID"
// @Param payload body service.UpdateShiftTimesRequest true "Time payload"
// @Success 204
// @Router /shifts/{id}/times [put]
func (h *ShiftHandler) UpdateTimes(c *gin.Context) {
	var req service.UpdateShiftTimesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.service.UpdateTimes(c.Request.Context(), currentOrgID(c), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Remove godoc
// @Summary Remove a teacher's assignment on a date
// @Tags Shifts
// @Produce json
// @Param teacherId query string true "Teacher ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 204
// @Router /shifts [delete]
func (h *ShiftHandler) Remove(c *gin.Context) {
	if err := h.service.Remove(c.Request.Context(), currentOrgID(c), c.Query("teacherId"), c.Query("date")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Export godoc
// @Summary Export the month's roster as CSV or PDF
// @Tags Shifts
// @Produce octet-stream
// @Param year query int false "Year"
// @Param month query int false "Month (1-12)"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Router /shifts/export [get]
func (h *ShiftHandler) Export(c *gin.Context) {
	if h.exporter == nil || !h.exporter.Enabled() {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "roster export is disabled"))
		return
	}
	year, month, ok := yearMonthParams(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid year or month"))
		return
	}
	result, err := h.exporter.MonthlyRoster(c.Request.Context(), currentOrgID(c), year, month, c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.FileName+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Payload)
}
