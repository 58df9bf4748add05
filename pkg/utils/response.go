package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 定义了统一的 JSON 响应结构
// 所有变更类接口返回 { success, message?, data? }
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Pagination 定义了列表响应中的分页信息
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

// PaginatedResponse 定义了带分页信息的列表响应结构
type PaginatedResponse struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// NewPagination 根据总数和分页参数构造 Pagination
func NewPagination(total int64, page, pageSize int) Pagination {
	totalPages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		totalPages++
	}
	return Pagination{
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// RespondSuccess 发送一个标准的成功 JSON 响应
func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// RespondPaginated 发送带分页信息的列表响应
func RespondPaginated(c *gin.Context, data interface{}, pagination Pagination) {
	c.JSON(http.StatusOK, PaginatedResponse{
		Success:    true,
		Data:       data,
		Pagination: pagination,
	})
}

// RespondError 发送一个标准的错误 JSON 响应并中断后续处理
func RespondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Response{
		Success: false,
		Message: message,
	})
}

// RespondValidationError 发送参数校验错误响应
func RespondValidationError(c *gin.Context, message string) {
	RespondError(c, http.StatusBadRequest, message)
}

// RespondUnauthorizedError 发送未认证错误响应
func RespondUnauthorizedError(c *gin.Context, message ...string) {
	errMsg := "未登录"
	if len(message) > 0 && message[0] != "" {
		errMsg = message[0]
	}
	RespondError(c, http.StatusUnauthorized, errMsg)
}

// RespondForbiddenError 发送权限不足错误响应
func RespondForbiddenError(c *gin.Context, message ...string) {
	errMsg := "权限不足，需要管理员权限"
	if len(message) > 0 && message[0] != "" {
		errMsg = message[0]
	}
	RespondError(c, http.StatusForbidden, errMsg)
}

// RespondNotFoundError 发送资源未找到错误响应
func RespondNotFoundError(c *gin.Context, resourceName string) {
	RespondError(c, http.StatusNotFound, resourceName+"不存在")
}

// RespondInternalServerError 发送服务器内部错误响应
func RespondInternalServerError(c *gin.Context, message string) {
	if message == "" {
		message = "服务器错误"
	}
	RespondError(c, http.StatusInternalServerError, message)
}
