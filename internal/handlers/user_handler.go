package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/library_management/internal/models"
	"github.com/library_management/internal/services"
	"github.com/library_management/pkg/utils"
)

// UserHandler 封装了用户管理的 HTTP 处理逻辑（仅管理员可用）
type UserHandler struct {
	service services.UserService
}

// NewUserHandler 创建一个新的 UserHandler 实例
func NewUserHandler(service services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List godoc
// @Summary 用户列表
// @Tags users
// @Produce  json
// @Param search query string false "搜索关键字"
// @Param page query int false "页码" default(1)
// @Param pageSize query int false "每页数量" default(10)
// @Success 200 {object} utils.PaginatedResponse{data=[]models.User}
// @Failure 403 {object} utils.Response "权限不足"
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	search, page, pageSize := listParams(c)
	users, total, err := h.service.ListUsers(search, page, pageSize)
	if err != nil {
		utils.RespondInternalServerError(c, "")
		return
	}
	utils.RespondPaginated(c, users, utils.NewPagination(total, page, pageSize))
}

// Create godoc
// @Summary 新增用户
// @Tags users
// @Accept  json
// @Produce  json
// @Param user body models.UserPayload true "用户信息"
// @Success 200 {object} utils.Response "用户添加成功"
// @Failure 400 {object} utils.Response "用户名已存在或密码缺失"
// @Router /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var payload models.UserPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, "用户名、角色和状态不能为空")
		return
	}

	user, err := h.service.CreateUser(payload)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPasswordRequired), errors.Is(err, services.ErrUsernameTaken):
			utils.RespondValidationError(c, err.Error())
		default:
			utils.RespondInternalServerError(c, "")
		}
		return
	}
	utils.RespondSuccess(c, gin.H{"id": user.ID}, "用户添加成功")
}

// Update godoc
// @Summary 编辑用户
// @Tags users
// @Accept  json
// @Produce  json
// @Param id path int true "用户ID"
// @Param user body models.UserPayload true "用户信息"
// @Success 200 {object} utils.Response "用户更新成功"
// @Failure 404 {object} utils.Response "用户不存在"
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var payload models.UserPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, "用户名、角色和状态不能为空")
		return
	}

	if _, err := h.service.UpdateUser(id, payload); err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			utils.RespondNotFoundError(c, "用户")
		case errors.Is(err, services.ErrUsernameTaken):
			utils.RespondValidationError(c, err.Error())
		default:
			utils.RespondInternalServerError(c, "")
		}
		return
	}
	utils.RespondSuccess(c, nil, "用户更新成功")
}

// Delete godoc
// @Summary 删除用户（软删除）
// @Tags users
// @Produce  json
// @Param id path int true "用户ID"
// @Success 200 {object} utils.Response "用户删除成功"
// @Failure 404 {object} utils.Response "用户不存在"
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.service.DeleteUser(id); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.RespondNotFoundError(c, "用户")
			return
		}
		utils.RespondInternalServerError(c, "")
		return
	}
	utils.RespondSuccess(c, nil, "用户删除成功")
}
