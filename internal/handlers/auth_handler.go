package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/library_management/configs"
	"github.com/library_management/internal/auth"
	"github.com/library_management/internal/models"
	"github.com/library_management/internal/services"
	"github.com/library_management/pkg/utils"
)

// AuthHandler 封装了认证相关的 HTTP 处理逻辑
type AuthHandler struct {
	service services.AuthService
}

// NewAuthHandler 创建一个新的 AuthHandler 实例
func NewAuthHandler(service services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// LoginRequest 登录请求体
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest 注册请求体
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordRequest 修改密码请求体
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// UserInfo 会话用户信息
type UserInfo struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Login godoc
// @Summary 用户登录
// @Description 验证凭证并通过 Cookie 下发会话 Token
// @Tags auth
// @Accept  json
// @Produce  json
// @Param credentials body LoginRequest true "登录凭证"
// @Success 200 {object} utils.Response "登录成功"
// @Failure 400 {object} utils.Response "请求参数错误"
// @Failure 401 {object} utils.Response "用户名或密码错误"
// @Failure 403 {object} utils.Response "账户已被禁用"
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, "用户名和密码不能为空")
		return
	}

	user, err := h.service.Login(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			utils.RespondUnauthorizedError(c, err.Error())
		case errors.Is(err, services.ErrUserDisabled):
			utils.RespondForbiddenError(c, err.Error())
		default:
			utils.RespondInternalServerError(c, "")
		}
		return
	}

	token, _, err := auth.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		utils.RespondInternalServerError(c, "无法生成Token")
		return
	}

	auth.SetTokenCookie(c, token, int(configs.AppConfig.TokenExpiry.Seconds()))
	utils.RespondSuccess(c, nil, "登录成功")
}

// Register godoc
// @Summary 用户注册
// @Description 注册一个启用状态的普通用户
// @Tags auth
// @Accept  json
// @Produce  json
// @Param credentials body RegisterRequest true "注册信息"
// @Success 200 {object} utils.Response "注册成功"
// @Failure 400 {object} utils.Response "用户名已存在"
// @Router /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, "用户名和密码不能为空")
		return
	}

	if _, err := h.service.Register(req.Username, req.Password); err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			utils.RespondValidationError(c, err.Error())
			return
		}
		utils.RespondInternalServerError(c, "")
		return
	}
	utils.RespondSuccess(c, nil, "注册成功")
}

// ChangePassword godoc
// @Summary 修改当前用户密码
// @Tags auth
// @Accept  json
// @Produce  json
// @Param payload body ChangePasswordRequest true "旧密码与新密码"
// @Success 200 {object} utils.Response "密码修改成功"
// @Failure 400 {object} utils.Response "旧密码错误"
// @Router /change-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, "所有字段都不能为空")
		return
	}

	username := c.GetString("username")
	if err := h.service.ChangePassword(username, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, services.ErrOldPasswordMismatch):
			utils.RespondValidationError(c, err.Error())
		case errors.Is(err, services.ErrUserNotFound):
			utils.RespondNotFoundError(c, "用户")
		default:
			utils.RespondInternalServerError(c, "")
		}
		return
	}
	utils.RespondSuccess(c, nil, "密码修改成功")
}

// Logout godoc
// @Summary 用户注销
// @Description 将当前 Token 加入拒绝列表并清除 Cookie。
// 即使 Token 副本被窃取，注销后在原有效期内也无法继续使用。
// @Tags auth
// @Produce  json
// @Success 200 {object} utils.Response "注销成功"
// @Router /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	jti := c.GetString("jti")
	expVal, _ := c.Get("exp")
	if exp, ok := expVal.(time.Time); ok && jti != "" {
		auth.AddToDenylist(jti, exp)
	}
	auth.ClearTokenCookie(c)
	utils.RespondSuccess(c, nil, "注销成功")
}

// CurrentUser godoc
// @Summary 获取当前登录用户信息
// @Tags auth
// @Produce  json
// @Success 200 {object} utils.Response{data=UserInfo}
// @Failure 401 {object} utils.Response "未登录"
// @Failure 403 {object} utils.Response "账户已被禁用"
// @Router /current-user [get]
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	username := c.GetString("username")

	// Token 有效期内账户可能被禁用，读取时再校验一次当前状态
	user, err := h.service.GetUserByUsername(username)
	if err == nil && user.Status == models.UserStatusDisabled {
		utils.RespondForbiddenError(c, "账户已被禁用，请联系管理员")
		return
	}

	role := c.GetString("role")
	if role == "" {
		role = models.RoleUser
	}
	utils.RespondSuccess(c, UserInfo{Username: username, Role: role}, "")
}
