package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/helthtracer/backend/middleware"
	"github.com/helthtracer/backend/services"
	"github.com/helthtracer/backend/stores"
	"github.com/helthtracer/backend/utils"
)

func parsePagination(pageStr, sizeStr string) (int, int) {
	page := 1
	pageSize := 10
	if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
		page = p
	}
	if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 && s <= 100 {
		pageSize = s
	}
	return page, pageSize
}

func getUserID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		return uint(v), true
	case int64:
		return uint(v), true
	case float64:
		return uint(v), true
	default:
		return 0, false
	}
}

func parseUintParam(ctx *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}

func parseDateQuery(ctx *gin.Context, name string) (time.Time, bool) {
	t, err := time.ParseInLocation(stores.DateLayout, ctx.Query(name), time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// serviceError translates the services error taxonomy into the JSON
// envelope so callers can tell bad input from retryable infrastructure
// failures.
func serviceError(ctx *gin.Context, err error) {
	switch {
	case services.IsValidation(err):
		utils.Error(ctx, http.StatusBadRequest, 40010, err.Error())
	case services.IsNotFound(err):
		utils.Error(ctx, http.StatusNotFound, 40410, err.Error())
	case services.IsDependency(err):
		utils.Error(ctx, http.StatusServiceUnavailable, 50310, "temporary infrastructure failure, retry later")
	default:
		utils.Error(ctx, http.StatusInternalServerError, 50010, "internal error")
	}
}
