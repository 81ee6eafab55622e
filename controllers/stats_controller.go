package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/helthtracer/backend/models"
	"github.com/helthtracer/backend/services"
	"github.com/helthtracer/backend/utils"
)

// StatsController serves derived statistics: the per-user snapshot and
// per-post like/comment counts.
type StatsController struct {
	db    *gorm.DB
	stats *services.StatsService
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(db *gorm.DB, stats *services.StatsService) *StatsController {
	return &StatsController{db: db, stats: stats}
}

// GetUserStats returns the statistics snapshot for a user. The snapshot is
// recomputed on every call; a user with no data gets zero-valued fields,
// while a store failure fails the whole request.
func (s *StatsController) GetUserStats(ctx *gin.Context) {
	userID, ok := parseUintParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40080, "invalid user id")
		return
	}

	stats, err := s.stats.GetUserStats(ctx.Request.Context(), userID)
	if err != nil {
		serviceError(ctx, err)
		return
	}
	utils.Success(ctx, stats)
}

// GetPostStats returns like and comment counts for a post.
func (s *StatsController) GetPostStats(ctx *gin.Context) {
	id := ctx.Param("id")

	var likeCount int64
	if err := s.db.Model(&models.Like{}).Where("post_id = ?", id).Count(&likeCount).Error; err != nil {
		likeCount = 0
	}

	var commentCount int64
	if err := s.db.Model(&models.Comment{}).Where("post_id = ?", id).Count(&commentCount).Error; err != nil {
		commentCount = 0
	}

	utils.Success(ctx, gin.H{
		"like_count":    likeCount,
		"comment_count": commentCount,
	})
}
