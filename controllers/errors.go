package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jaimelunalarcon/manglar-app/config"
	"github.com/jaimelunalarcon/manglar-app/services"
)

// respondServiceError 把业务错误映射为HTTP状态码。
// 容量/格子冲突在并发下属于正常结果，返回409让前端重新拉取看板。
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrCapacityExceeded),
		errors.Is(err, services.ErrCellOccupied),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrStaleWeek):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		config.Logger.Errorw("内部错误", "error", err, "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
	}
}
