package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/library_management/pkg/utils"
)

// JWTMiddleware 是一个Gin中间件，用于验证会话 Token。
// Token 从名为 token 的 Cookie 中提取，使用 `golang-jwt/jwt/v5` 库进行验证。
func JWTMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(TokenCookieName)
		if err != nil || tokenString == "" {
			utils.RespondUnauthorizedError(c)
			return
		}

		claims, err := ParseToken(tokenString)
		if err != nil {
			// 使用 errors.Is 来判断特定的JWT错误类型
			switch {
			case errors.Is(err, ErrTokenDenylisted):
				utils.RespondUnauthorizedError(c, "Token已被注销")
			case errors.Is(err, jwt.ErrTokenExpired), errors.Is(err, jwt.ErrTokenNotValidYet):
				utils.RespondUnauthorizedError(c, "Token已过期")
			default:
				utils.RespondUnauthorizedError(c, "无效的Token")
			}
			return
		}

		// 将声明和关键信息存储在Gin上下文中，以便后续处理程序使用
		c.Set("userID", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("role", claims.Role)
		c.Set("jti", claims.ID)
		if claims.ExpiresAt != nil {
			c.Set("exp", claims.ExpiresAt.Time)
		}

		c.Next()
	}
}

// AdminRequired 校验当前会话角色为 admin，需在 JWTMiddleware 之后使用。
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role != "admin" {
			utils.RespondForbiddenError(c)
			return
		}
		c.Next()
	}
}

// SetTokenCookie 将会话 Token 写入响应 Cookie（Path=/, SameSite=Lax）。
func SetTokenCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(TokenCookieName, token, maxAge, "/", "", false, true)
}

// ClearTokenCookie 通过设置已过期的 Cookie 清除客户端 Token。
func ClearTokenCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(TokenCookieName, "", -1, "/", "", false, true)
}
