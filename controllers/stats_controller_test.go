package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helthtracer/backend/models"
	"github.com/helthtracer/backend/services"
)

type stubSleepStore struct {
	avg *float64
	err error
}

func (s *stubSleepStore) AverageDurationHours(context.Context, uint) (*float64, error) {
	return s.avg, s.err
}
func (s *stubSleepStore) Create(context.Context, *models.SleepSession) error { return s.err }
func (s *stubSleepStore) Update(context.Context, *models.SleepSession) error { return s.err }
func (s *stubSleepStore) FindByID(context.Context, uint) (*models.SleepSession, error) {
	return nil, s.err
}
func (s *stubSleepStore) ListByUser(context.Context, uint) ([]models.SleepSession, error) {
	return nil, s.err
}

func newStatsRouter(habits *stubHabitStore, logs *stubHabitLogStore, sleep *stubSleepStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := services.NewStatsService(habits, logs, sleep)
	controller := NewStatsController(nil, svc)
	r := gin.New()
	r.GET("/users/:id/stats", controller.GetUserStats)
	return r
}

func TestUserStatsEndpoint_EmptyUserHasZeroFields(t *testing.T) {
	r := newStatsRouter(&stubHabitStore{}, &stubHabitLogStore{}, &stubSleepStore{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/1/stats", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Code int                `json:"code"`
		Data services.UserStats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Code)
	assert.Equal(t, services.UserStats{}, resp.Data)
}

func TestUserStatsEndpoint_DependencyFailureIs503(t *testing.T) {
	habits := &stubHabitStore{err: errors.New("store unreachable")}
	r := newStatsRouter(habits, &stubHabitLogStore{}, &stubSleepStore{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/1/stats", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestUserStatsEndpoint_InvalidIDIs400(t *testing.T) {
	r := newStatsRouter(&stubHabitStore{}, &stubHabitLogStore{}, &stubSleepStore{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/abc/stats", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
