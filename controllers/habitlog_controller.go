package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/helthtracer/backend/services"
	"github.com/helthtracer/backend/stores"
	"github.com/helthtracer/backend/utils"
)

// HabitLogController exposes the habit-log upsert/delete/list endpoints.
type HabitLogController struct {
	logs *services.HabitLogService
}

// NewHabitLogController creates a new HabitLogController instance.
func NewHabitLogController(logs *services.HabitLogService) *HabitLogController {
	return &HabitLogController{logs: logs}
}

// ListMonth returns the authenticated user's habit logs for a calendar
// month given by year and month query parameters.
func (h *HabitLogController) ListMonth(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	year, err := strconv.Atoi(ctx.Query("year"))
	if err != nil || year < 1 {
		utils.Error(ctx, http.StatusBadRequest, 40070, "invalid year")
		return
	}
	month, err := strconv.Atoi(ctx.Query("month"))
	if err != nil || month < 1 || month > 12 {
		utils.Error(ctx, http.StatusBadRequest, 40071, "invalid month")
		return
	}

	logs, err := h.logs.ListMonth(ctx.Request.Context(), userID, year, time.Month(month))
	if err != nil {
		serviceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"items": logs})
}

// Upsert records a day's status for a habit, creating the log or
// overwriting the existing status for the same (habit, date).
func (h *HabitLogController) Upsert(ctx *gin.Context) {
	var req struct {
		HabitID uint   `json:"habit_id" binding:"required"`
		Date    string `json:"date" binding:"required"`
		Status  string `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40072, "invalid request payload")
		return
	}

	date, err := time.ParseInLocation(stores.DateLayout, req.Date, time.Local)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40073, "invalid date, expected YYYY-MM-DD")
		return
	}

	log, err := h.logs.Upsert(ctx.Request.Context(), req.HabitID, date, req.Status)
	if err != nil {
		serviceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"habit_log": log})
}

// Delete removes a log by habit_id and date query parameters. Deleting an
// absent log succeeds.
func (h *HabitLogController) Delete(ctx *gin.Context) {
	habitID, err := strconv.ParseUint(ctx.Query("habit_id"), 10, 64)
	if err != nil || habitID == 0 {
		utils.Error(ctx, http.StatusBadRequest, 40074, "invalid habit_id")
		return
	}
	date, ok := parseDateQuery(ctx, "date")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40073, "invalid date, expected YYYY-MM-DD")
		return
	}

	if err := h.logs.Delete(ctx.Request.Context(), uint(habitID), date); err != nil {
		serviceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"message": "habit log deleted"})
}
