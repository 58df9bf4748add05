package handlers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/library_management/internal/models"
	"github.com/library_management/internal/services"
	"github.com/library_management/internal/ws"
	"github.com/library_management/pkg/utils"
)

// BorrowHandler 封装了借阅相关的 HTTP 处理逻辑
type BorrowHandler struct {
	service services.BorrowService
	hub     *ws.Hub
}

// NewBorrowHandler 创建一个新的 BorrowHandler 实例
func NewBorrowHandler(service services.BorrowService, hub *ws.Hub) *BorrowHandler {
	return &BorrowHandler{service: service, hub: hub}
}

// List godoc
// @Summary 借阅列表
// @Description 支持书名/借阅人模糊查询和分页，状态在读取时重新计算
// @Tags borrows
// @Produce  json
// @Param search query string false "搜索关键字"
// @Param page query int false "页码" default(1)
// @Param pageSize query int false "每页数量" default(10)
// @Success 200 {object} utils.PaginatedResponse{data=[]models.Borrow}
// @Router /borrows [get]
func (h *BorrowHandler) List(c *gin.Context) {
	search, page, pageSize := listParams(c)
	borrows, total, err := h.service.ListBorrows(search, page, pageSize)
	if err != nil {
		utils.RespondInternalServerError(c, "")
		return
	}
	utils.RespondPaginated(c, borrows, utils.NewPagination(total, page, pageSize))
}

// Create godoc
// @Summary 新增借阅
// @Description 校验库存和借阅人逾期锁，成功后扣减1个库存
// @Tags borrows
// @Accept  json
// @Produce  json
// @Param borrow body models.BorrowPayload true "借阅信息"
// @Success 200 {object} utils.Response "借阅添加成功"
// @Failure 400 {object} utils.Response "库存不足或借阅人存在逾期图书"
// @Failure 404 {object} utils.Response "图书不存在"
// @Router /borrows [post]
func (h *BorrowHandler) Create(c *gin.Context) {
	var payload models.BorrowPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, "图书、借阅人、借阅日期和应还日期不能为空")
		return
	}

	borrow, err := h.service.CreateBorrow(payload, c.GetInt64("userID"))
	if err != nil {
		h.respondWorkflowError(c, err)
		return
	}

	h.notify(c, "create", fmt.Sprintf("%s 借阅《%s》", borrow.BorrowerName, borrow.BookTitle))
	utils.RespondSuccess(c, gin.H{"id": borrow.ID}, "借阅添加成功")
}

// Update godoc
// @Summary 编辑借阅
// @Description 归还日期从无到有恢复库存，从有到无重新扣减库存
// @Tags borrows
// @Accept  json
// @Produce  json
// @Param id path int true "借阅ID"
// @Param borrow body models.BorrowPayload true "借阅信息"
// @Success 200 {object} utils.Response "借阅更新成功"
// @Failure 400 {object} utils.Response "库存不足，无法取消归还"
// @Failure 404 {object} utils.Response "借阅记录不存在"
// @Router /borrows/{id} [put]
func (h *BorrowHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var payload models.BorrowPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, "图书、借阅人、借阅日期和应还日期不能为空")
		return
	}

	if err := h.service.UpdateBorrow(id, payload); err != nil {
		h.respondWorkflowError(c, err)
		return
	}

	h.notify(c, "update", fmt.Sprintf("%s 借阅《%s》", payload.BorrowerName, payload.BookTitle))
	utils.RespondSuccess(c, nil, "借阅更新成功")
}

// Delete godoc
// @Summary 删除借阅
// @Description 未归还的记录删除前恢复1个库存
// @Tags borrows
// @Produce  json
// @Param id path int true "借阅ID"
// @Success 200 {object} utils.Response "借阅记录删除成功"
// @Failure 404 {object} utils.Response "借阅记录不存在"
// @Router /borrows/{id} [delete]
func (h *BorrowHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.service.DeleteBorrow(id); err != nil {
		h.respondWorkflowError(c, err)
		return
	}
	h.notify(c, "delete", fmt.Sprintf("借阅记录 #%d", id))
	utils.RespondSuccess(c, nil, "借阅记录删除成功")
}

// Count godoc
// @Summary 当前用户的未归还借阅数量
// @Tags borrows
// @Produce  json
// @Success 200 {object} utils.Response
// @Router /borrows/count [get]
func (h *BorrowHandler) Count(c *gin.Context) {
	count, err := h.service.CountUnreturned(c.GetInt64("userID"))
	if err != nil {
		utils.RespondInternalServerError(c, "获取借阅数量失败")
		return
	}
	utils.RespondSuccess(c, gin.H{"count": count}, "")
}

// respondWorkflowError 把借阅工作流的错误映射为统一响应
func (h *BorrowHandler) respondWorkflowError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBookNotFound):
		utils.RespondNotFoundError(c, "图书")
	case errors.Is(err, services.ErrBorrowNotFound):
		utils.RespondNotFoundError(c, "借阅记录")
	case errors.Is(err, services.ErrStockInsufficient),
		errors.Is(err, services.ErrBorrowerOverdue),
		errors.Is(err, services.ErrBlankFields):
		utils.RespondValidationError(c, err.Error())
	default:
		utils.RespondInternalServerError(c, "")
	}
}

// notify 向其他在线用户推送借阅变更通知
func (h *BorrowHandler) notify(c *gin.Context, action, detail string) {
	operator := c.GetString("username")
	if operator == "" || h.hub == nil {
		return
	}
	h.hub.BroadcastToOthers(operator, ws.NotificationMessage(action, "borrow", detail))
}
