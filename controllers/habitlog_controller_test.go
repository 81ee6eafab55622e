package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helthtracer/backend/models"
	"github.com/helthtracer/backend/services"
	"github.com/helthtracer/backend/utils"
)

// stub stores: just enough surface to drive the service through the
// controller. err forces the dependency-failure path.

type stubHabitStore struct {
	habit *models.Habit
	err   error
}

func (s *stubHabitStore) FindByID(context.Context, uint) (*models.Habit, error) {
	return s.habit, s.err
}
func (s *stubHabitStore) ListByUser(context.Context, uint) ([]models.Habit, error) {
	return nil, s.err
}
func (s *stubHabitStore) CountByUser(context.Context, uint) (int64, error) { return 0, s.err }
func (s *stubHabitStore) Create(context.Context, *models.Habit) error     { return s.err }
func (s *stubHabitStore) Update(context.Context, *models.Habit) error     { return s.err }
func (s *stubHabitStore) Delete(context.Context, uint) error              { return s.err }

type stubHabitLogStore struct {
	log *models.HabitLog
	err error
}

func (s *stubHabitLogStore) FindByHabitAndDate(context.Context, uint, time.Time) (*models.HabitLog, error) {
	return s.log, s.err
}
func (s *stubHabitLogStore) FindByUserAndDateRange(context.Context, uint, time.Time, time.Time) ([]models.HabitLog, error) {
	return nil, s.err
}
func (s *stubHabitLogStore) CountCompletedInRange(context.Context, uint, time.Time, time.Time) (int64, error) {
	return 0, s.err
}
func (s *stubHabitLogStore) Upsert(_ context.Context, log *models.HabitLog) error {
	if s.err != nil {
		return s.err
	}
	log.ID = 1
	s.log = log
	return nil
}
func (s *stubHabitLogStore) DeleteByHabitAndDate(context.Context, uint, time.Time) error {
	return s.err
}

func newLogRouter(habits *stubHabitStore, logs *stubHabitLogStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := services.NewHabitLogService(habits, logs)
	controller := NewHabitLogController(svc)
	r := gin.New()
	r.POST("/habit-logs", controller.Upsert)
	r.DELETE("/habit-logs", controller.Delete)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, utils.JSONResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp utils.JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestHabitLogUpsertEndpoint_UnknownHabitIs404(t *testing.T) {
	r := newLogRouter(&stubHabitStore{}, &stubHabitLogStore{})

	w, resp := doJSON(t, r, http.MethodPost, "/habit-logs",
		`{"habit_id":42,"date":"2024-05-10","status":"COMPLETED"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 40410, resp.Code)
}

func TestHabitLogUpsertEndpoint_BadDateIs400(t *testing.T) {
	r := newLogRouter(&stubHabitStore{}, &stubHabitLogStore{})

	w, _ := doJSON(t, r, http.MethodPost, "/habit-logs",
		`{"habit_id":1,"date":"10/05/2024","status":"COMPLETED"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHabitLogUpsertEndpoint_StoreFailureIs503(t *testing.T) {
	habits := &stubHabitStore{habit: &models.Habit{ID: 1, UserID: 1}}
	logs := &stubHabitLogStore{err: errors.New("connection refused")}
	r := newLogRouter(habits, logs)

	w, resp := doJSON(t, r, http.MethodPost, "/habit-logs",
		`{"habit_id":1,"date":"2024-05-10","status":"COMPLETED"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, 50310, resp.Code)
}

func TestHabitLogUpsertEndpoint_Success(t *testing.T) {
	habits := &stubHabitStore{habit: &models.Habit{ID: 1, UserID: 1}}
	r := newLogRouter(habits, &stubHabitLogStore{})

	w, resp := doJSON(t, r, http.MethodPost, "/habit-logs",
		`{"habit_id":1,"date":"2024-05-10","status":"COMPLETED"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, resp.Code)
}

func TestHabitLogDeleteEndpoint_AbsentRowSucceeds(t *testing.T) {
	habits := &stubHabitStore{habit: &models.Habit{ID: 7, UserID: 1}}
	r := newLogRouter(habits, &stubHabitLogStore{})

	req := httptest.NewRequest(http.MethodDelete, "/habit-logs?habit_id=7&date=2024-03-01", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
