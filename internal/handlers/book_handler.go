package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/library_management/internal/models"
	"github.com/library_management/internal/services"
	"github.com/library_management/internal/ws"
	"github.com/library_management/pkg/utils"
)

// BookHandler 封装了图书相关的 HTTP 处理逻辑
type BookHandler struct {
	service services.BookService
	hub     *ws.Hub
}

// NewBookHandler 创建一个新的 BookHandler 实例
func NewBookHandler(service services.BookService, hub *ws.Hub) *BookHandler {
	return &BookHandler{service: service, hub: hub}
}

// StockInfo 库存查询响应
type StockInfo struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Stock int    `json:"stock"`
}

// List godoc
// @Summary 图书列表
// @Description 支持书名/作者/ISBN模糊查询和分页
// @Tags books
// @Produce  json
// @Param search query string false "搜索关键字"
// @Param page query int false "页码" default(1)
// @Param pageSize query int false "每页数量" default(10)
// @Success 200 {object} utils.PaginatedResponse{data=[]models.Book}
// @Router /books [get]
func (h *BookHandler) List(c *gin.Context) {
	search, page, pageSize := listParams(c)
	books, total, err := h.service.ListBooks(search, page, pageSize)
	if err != nil {
		utils.RespondInternalServerError(c, "")
		return
	}
	utils.RespondPaginated(c, books, utils.NewPagination(total, page, pageSize))
}

// Create godoc
// @Summary 新增图书
// @Tags books
// @Accept  json
// @Produce  json
// @Param book body models.BookPayload true "图书信息"
// @Success 200 {object} utils.Response{data=models.Book} "图书添加成功"
// @Failure 400 {object} utils.Response "参数错误"
// @Router /books [post]
func (h *BookHandler) Create(c *gin.Context) {
	var payload models.BookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, "书名、作者、出版社和出版日期不能为空")
		return
	}

	book, err := h.service.CreateBook(payload)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidDateFormat) || errors.Is(err, services.ErrInvalidStock) {
			utils.RespondValidationError(c, err.Error())
			return
		}
		utils.RespondInternalServerError(c, "")
		return
	}

	h.notify(c, "create", book.Title)
	utils.RespondSuccess(c, gin.H{"id": book.ID}, "图书添加成功")
}

// Update godoc
// @Summary 编辑图书
// @Tags books
// @Accept  json
// @Produce  json
// @Param id path int true "图书ID"
// @Param book body models.BookPayload true "图书信息"
// @Success 200 {object} utils.Response "图书更新成功"
// @Failure 404 {object} utils.Response "图书不存在"
// @Router /books/{id} [put]
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var payload models.BookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, "书名、作者、出版社和出版日期不能为空")
		return
	}

	book, err := h.service.UpdateBook(id, payload)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookNotFound):
			utils.RespondNotFoundError(c, "图书")
		case errors.Is(err, utils.ErrInvalidDateFormat), errors.Is(err, services.ErrInvalidStock):
			utils.RespondValidationError(c, err.Error())
		default:
			utils.RespondInternalServerError(c, "")
		}
		return
	}

	h.notify(c, "update", book.Title)
	utils.RespondSuccess(c, nil, "图书更新成功")
}

// Delete godoc
// @Summary 删除图书（软删除）
// @Tags books
// @Produce  json
// @Param id path int true "图书ID"
// @Success 200 {object} utils.Response "图书删除成功"
// @Failure 404 {object} utils.Response "图书不存在"
// @Router /books/{id} [delete]
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	// 删除前取书名用于通知
	book, err := h.service.GetBook(id)
	if err != nil {
		if errors.Is(err, services.ErrBookNotFound) {
			utils.RespondNotFoundError(c, "图书")
			return
		}
		utils.RespondInternalServerError(c, "")
		return
	}

	if err := h.service.DeleteBook(id); err != nil {
		if errors.Is(err, services.ErrBookNotFound) {
			utils.RespondNotFoundError(c, "图书")
			return
		}
		utils.RespondInternalServerError(c, "")
		return
	}

	h.notify(c, "delete", book.Title)
	utils.RespondSuccess(c, nil, "图书删除成功")
}

// GetStock godoc
// @Summary 查询图书库存
// @Tags books
// @Produce  json
// @Param id path int true "图书ID"
// @Success 200 {object} utils.Response{data=StockInfo}
// @Failure 404 {object} utils.Response "图书不存在"
// @Router /books/{id}/stock [get]
func (h *BookHandler) GetStock(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	book, err := h.service.GetStock(id)
	if err != nil {
		if errors.Is(err, services.ErrBookNotFound) {
			utils.RespondNotFoundError(c, "图书")
			return
		}
		utils.RespondInternalServerError(c, "")
		return
	}
	utils.RespondSuccess(c, StockInfo{ID: book.ID, Title: book.Title, Stock: book.Stock}, "")
}

// UpdateStock godoc
// @Summary 更新图书库存
// @Tags books
// @Accept  json
// @Produce  json
// @Param id path int true "图书ID"
// @Param payload body models.StockPayload true "新库存"
// @Success 200 {object} utils.Response "库存更新成功"
// @Failure 400 {object} utils.Response "库存数量必须是非负整数"
// @Failure 404 {object} utils.Response "图书不存在"
// @Router /books/{id}/stock [put]
func (h *BookHandler) UpdateStock(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var payload models.StockPayload
	if err := c.ShouldBindJSON(&payload); err != nil || payload.Stock == nil {
		utils.RespondValidationError(c, "库存数量必须是非负整数")
		return
	}

	if err := h.service.SetStock(id, *payload.Stock); err != nil {
		switch {
		case errors.Is(err, services.ErrBookNotFound):
			utils.RespondNotFoundError(c, "图书")
		case errors.Is(err, services.ErrInvalidStock):
			utils.RespondValidationError(c, err.Error())
		default:
			utils.RespondInternalServerError(c, "")
		}
		return
	}
	utils.RespondSuccess(c, gin.H{"stock": *payload.Stock}, "库存更新成功")
}

// notify 向其他在线用户推送图书变更通知
func (h *BookHandler) notify(c *gin.Context, action, title string) {
	operator := c.GetString("username")
	if operator == "" || h.hub == nil {
		return
	}
	h.hub.BroadcastToOthers(operator, ws.NotificationMessage(action, "book", title))
}
