package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/library_management/internal/services"
	"github.com/library_management/pkg/utils"
)

// StatisticsHandler 封装了统计相关的 HTTP 处理逻辑
type StatisticsHandler struct {
	service services.StatisticsService
}

// NewStatisticsHandler 创建一个新的 StatisticsHandler 实例
func NewStatisticsHandler(service services.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{service: service}
}

// Borrow godoc
// @Summary 借阅统计
// @Description 按派生状态计数，附带至少30天的日维度借阅直方图
// @Tags statistics
// @Produce  json
// @Success 200 {object} utils.Response{data=models.BorrowStatistics}
// @Router /statistics/borrow [get]
func (h *StatisticsHandler) Borrow(c *gin.Context) {
	stats, err := h.service.BorrowStatistics()
	if err != nil {
		utils.RespondInternalServerError(c, "")
		return
	}
	utils.RespondSuccess(c, stats, "")
}

// Stock godoc
// @Summary 库存统计
// @Tags statistics
// @Produce  json
// @Success 200 {object} utils.Response{data=models.StockStatistics}
// @Router /statistics/stock [get]
func (h *StatisticsHandler) Stock(c *gin.Context) {
	stats, err := h.service.StockStatistics()
	if err != nil {
		utils.RespondInternalServerError(c, "")
		return
	}
	utils.RespondSuccess(c, stats, "")
}

// Return godoc
// @Summary 归还统计
// @Tags statistics
// @Produce  json
// @Success 200 {object} utils.Response{data=models.ReturnStatistics}
// @Router /statistics/return [get]
func (h *StatisticsHandler) Return(c *gin.Context) {
	stats, err := h.service.ReturnStatistics()
	if err != nil {
		utils.RespondInternalServerError(c, "")
		return
	}
	utils.RespondSuccess(c, stats, "")
}
