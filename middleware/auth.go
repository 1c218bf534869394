package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jaimelunalarcon/manglar-app/utils"
)

// AuthMiddleware 认证中间件，把JWT声明中的身份信息放入上下文，
// 核心逻辑只认这里产生的唯一 uid，不做多字段回退
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "未提供认证信息"})
			return
		}

		// 解析 JWT
		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "无效的认证信息"})
			return
		}

		c.Set("uid", claims.UserID)
		c.Set("displayName", claims.DisplayName)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// AdminRequired 管理员角色校验，审批和目录维护接口使用
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "需要管理员权限"})
			return
		}
		c.Next()
	}
}
