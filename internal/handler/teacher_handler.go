package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/luminedu/shift-planner-api/internal/models"
	appErrors "github.com/luminedu/shift-planner-api/pkg/errors"
	"github.com/luminedu/shift-planner-api/pkg/response"
)

type teacherRoster interface {
	ListByOrg(ctx context.Context, orgID string) ([]models.Teacher, error)
}

type workloadReader interface {
	TeacherWorkload(ctx context.Context, orgID, teacherID string, year int, month time.Month) (*models.TeacherWorkload, error)
}

// TeacherHandler exposes the roster and per-teacher statistics.
type TeacherHandler struct {
	roster teacherRoster
	stats  workloadReader
}

// NewTeacherHandler constructs handler.
func NewTeacherHandler(roster teacherRoster, stats workloadReader) *TeacherHandler {
	return &TeacherHandler{roster: roster, stats: stats}
}

// List godoc
// @Summary List the organization's active teachers
// @Tags Teachers
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /teachers [get]
func (h *TeacherHandler) List(c *gin.Context) {
	teachers, err := h.roster.ListByOrg(c.Request.Context(), currentOrgID(c))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teachers"))
		return
	}
	response.JSON(c, http.StatusOK, teachers, nil)
}

// Workload godoc
// @Summary Monthly work-days and work-hours for a teacher
// @Tags Teachers
// @Produce json
// @Param id path string true "Teacher ID"
// @Param year query int false "Year"
// @Param month query int false "Month (1-12)"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/workload [get]
func (h *TeacherHandler) Workload(c *gin.Context) {
	year, month, ok := yearMonthParams(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid year or month"))
		return
	}
	workload, err := h.stats.TeacherWorkload(c.Request.Context(), currentOrgID(c), c.Param("id"), year, month)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, workload, nil)
}
