package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/helthtracer/backend/models"
	"github.com/helthtracer/backend/stores"
	"github.com/helthtracer/backend/utils"
)

// HabitController manages CRUD operations for habits.
type HabitController struct {
	db     *gorm.DB
	habits stores.HabitStore
}

// NewHabitController creates a new HabitController instance.
func NewHabitController(db *gorm.DB, habits stores.HabitStore) *HabitController {
	return &HabitController{db: db, habits: habits}
}

// ListMyHabits returns the authenticated user's habits, oldest first.
func (h *HabitController) ListMyHabits(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	habits, err := h.habits.ListByUser(ctx.Request.Context(), userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to list habits")
		return
	}
	utils.Success(ctx, gin.H{"items": habits})
}

// CreateHabit creates a habit owned by the authenticated user.
func (h *HabitController) CreateHabit(ctx *gin.Context) {
	var req struct {
		Title       string `json:"title" binding:"required,min=1"`
		Frequency   string `json:"frequency"`
		Description string `json:"description"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40041, "invalid request payload")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	// The owner must exist; a habit is never created against a dangling
	// user reference.
	var owner models.User
	if err := h.db.First(&owner, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40412, "user not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to load user")
		return
	}

	frequency := strings.TrimSpace(req.Frequency)
	if frequency == "" {
		frequency = "daily"
	}

	habit := models.Habit{
		UserID:      userID,
		Title:       strings.TrimSpace(req.Title),
		Frequency:   frequency,
		Description: req.Description,
	}
	if err := h.habits.Create(ctx.Request.Context(), &habit); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50042, "failed to create habit")
		return
	}
	utils.Success(ctx, gin.H{"habit": habit})
}

// UpdateHabit updates title, frequency and description of an owned habit.
// Habits are never re-parented.
func (h *HabitController) UpdateHabit(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40042, "invalid habit id")
		return
	}
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	habit, err := h.habits.FindByID(ctx.Request.Context(), id)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50043, "failed to load habit")
		return
	}
	if habit == nil || habit.UserID != userID {
		utils.Error(ctx, http.StatusNotFound, 40413, "habit not found")
		return
	}

	var req struct {
		Title       string `json:"title"`
		Frequency   string `json:"frequency"`
		Description string `json:"description"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40041, "invalid request payload")
		return
	}

	if v := strings.TrimSpace(req.Title); v != "" {
		habit.Title = v
	}
	if v := strings.TrimSpace(req.Frequency); v != "" {
		habit.Frequency = v
	}
	if req.Description != "" {
		habit.Description = req.Description
	}

	if err := h.habits.Update(ctx.Request.Context(), habit); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50044, "failed to update habit")
		return
	}
	utils.Success(ctx, gin.H{"habit": habit})
}

// DeleteHabit removes an owned habit together with its logs.
func (h *HabitController) DeleteHabit(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40042, "invalid habit id")
		return
	}
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	habit, err := h.habits.FindByID(ctx.Request.Context(), id)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50043, "failed to load habit")
		return
	}
	if habit == nil || habit.UserID != userID {
		utils.Error(ctx, http.StatusNotFound, 40413, "habit not found")
		return
	}

	if err := h.habits.Delete(ctx.Request.Context(), id); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50045, "failed to delete habit")
		return
	}
	utils.Success(ctx, gin.H{"message": "habit deleted"})
}
