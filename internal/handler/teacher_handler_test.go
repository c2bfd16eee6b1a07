package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminedu/shift-planner-api/internal/models"
	appErrors "github.com/luminedu/shift-planner-api/pkg/errors"
)

type teacherRosterMock struct {
	listFn func(ctx context.Context, orgID string) ([]models.Teacher, error)
}

func (m *teacherRosterMock) ListByOrg(ctx context.Context, orgID string) ([]models.Teacher, error) {
	return m.listFn(ctx, orgID)
}

type workloadReaderMock struct {
	workloadFn func(ctx context.Context, orgID, teacherID string, year int, month time.Month) (*models.TeacherWorkload, error)
}

func (m *workloadReaderMock) TeacherWorkload(ctx context.Context, orgID, teacherID string, year int, month time.Month) (*models.TeacherWorkload, error) {
	return m.workloadFn(ctx, orgID, teacherID, year, month)
}

func TestTeacherHandlerList(t *testing.T) {
	roster := &teacherRosterMock{
		listFn: func(_ context.Context, orgID string) ([]models.Teacher, error) {
			assert.Equal(t, "org-1", orgID)
			return []models.Teacher{{ID: "teacher-1", OrgID: orgID, FullName: "Aoi Tanaka", Active: true}}, nil
		},
	}
	h := NewTeacherHandler(roster, nil)

	c, recorder := testContext(t, http.MethodGet, "/teachers", nil, "org-1")
	h.List(c)

	assert.Equal(t, http.StatusOK, recorder.Code)
	envelope := decodeEnvelope(t, recorder)
	assert.Nil(t, envelope.Error)
	assert.NotNil(t, envelope.Data)
}

func TestTeacherHandlerWorkload(t *testing.T) {
	stats := &workloadReaderMock{
		workloadFn: func(_ context.Context, orgID, teacherID string, year int, month time.Month) (*models.TeacherWorkload, error) {
			assert.Equal(t, "org-1", orgID)
			assert.Equal(t, "teacher-1", teacherID)
			assert.Equal(t, 2024, year)
			assert.Equal(t, time.June, month)
			return &models.TeacherWorkload{TeacherID: teacherID, Year: year, Month: int(month), WorkDays: 2, WorkHours: 8}, nil
		},
	}
	h := NewTeacherHandler(nil, stats)

	c, recorder := testContext(t, http.MethodGet, "/teachers/teacher-1/workload?year=2024&month=6", nil, "org-1")
	c.Params = gin.Params{{Key: "id", Value: "teacher-1"}}
	h.Workload(c)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data models.TeacherWorkload `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, 2, envelope.Data.WorkDays)
	assert.InDelta(t, 8.0, envelope.Data.WorkHours, 0.001)
}

func TestTeacherHandlerWorkloadNotFound(t *testing.T) {
	stats := &workloadReaderMock{
		workloadFn: func(context.Context, string, string, int, time.Month) (*models.TeacherWorkload, error) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		},
	}
	h := NewTeacherHandler(nil, stats)

	c, recorder := testContext(t, http.MethodGet, "/teachers/teacher-x/workload?year=2024&month=6", nil, "org-1")
	c.Params = gin.Params{{Key: "id", Value: "teacher-x"}}
	h.Workload(c)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
