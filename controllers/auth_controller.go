package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jaimelunalarcon/manglar-app/config"
	"github.com/jaimelunalarcon/manglar-app/models"
	"github.com/jaimelunalarcon/manglar-app/utils"
)

// AuthController 认证控制器。正式环境由外部身份服务签发令牌，
// 这里只保留开发/测试用的签发入口
type AuthController struct {
	Environment string
}

// IssueDevToken 签发测试令牌，生产环境禁用
func (ac *AuthController) IssueDevToken(c *gin.Context) {
	if ac.Environment == "production" {
		c.JSON(http.StatusForbidden, gin.H{"error": "生产环境不可用"})
		return
	}

	var req models.DevTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求"})
		return
	}

	displayName := req.DisplayName
	if displayName == "" {
		displayName = req.UserID
	}

	token, err := utils.GenerateToken(req.UserID, displayName, req.Role)
	if err != nil {
		config.Logger.Errorw("令牌生成失败", "error", err, "userID", req.UserID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "令牌生成失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":          req.UserID,
			"displayName": displayName,
			"role":        req.Role,
		},
	})
}
