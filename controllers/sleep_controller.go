package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/helthtracer/backend/models"
	"github.com/helthtracer/backend/stores"
	"github.com/helthtracer/backend/utils"
)

// SleepController manages sleep session recording.
type SleepController struct {
	sleep stores.SleepStore
}

// NewSleepController creates a new SleepController instance.
func NewSleepController(sleep stores.SleepStore) *SleepController {
	return &SleepController{sleep: sleep}
}

// StartSession opens a sleep session. An explicit start_time may be
// provided; it defaults to now.
func (s *SleepController) StartSession(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		StartTime *time.Time `json:"start_time"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.Error(ctx, http.StatusBadRequest, 40090, "invalid request payload")
		return
	}

	start := time.Now()
	if req.StartTime != nil {
		start = *req.StartTime
	}

	session := models.SleepSession{UserID: userID, StartTime: start}
	if err := s.sleep.Create(ctx.Request.Context(), &session); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50090, "failed to start sleep session")
		return
	}
	utils.Success(ctx, gin.H{"session": session})
}

// EndSession closes an open session. Closed sessions become eligible for
// the sleep average; sessions are never reopened.
func (s *SleepController) EndSession(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40091, "invalid session id")
		return
	}

	var req struct {
		EndTime *time.Time `json:"end_time"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.Error(ctx, http.StatusBadRequest, 40090, "invalid request payload")
		return
	}

	session, err := s.sleep.FindByID(ctx.Request.Context(), id)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50091, "failed to load sleep session")
		return
	}
	if session == nil || session.UserID != userID {
		utils.Error(ctx, http.StatusNotFound, 40414, "sleep session not found")
		return
	}
	if session.EndTime != nil {
		utils.Error(ctx, http.StatusBadRequest, 40092, "sleep session already ended")
		return
	}

	end := time.Now()
	if req.EndTime != nil {
		end = *req.EndTime
	}
	if !end.After(session.StartTime) {
		utils.Error(ctx, http.StatusBadRequest, 40093, "end time must be after start time")
		return
	}

	session.EndTime = &end
	if err := s.sleep.Update(ctx.Request.Context(), session); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50092, "failed to end sleep session")
		return
	}
	utils.Success(ctx, gin.H{"session": session})
}

// ListSessions returns the authenticated user's sessions, newest first.
func (s *SleepController) ListSessions(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	sessions, err := s.sleep.ListByUser(ctx.Request.Context(), userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50093, "failed to list sleep sessions")
		return
	}
	utils.Success(ctx, gin.H{"items": sessions})
}
