package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/library_management/internal/services"
	"github.com/library_management/pkg/utils"
)

// TaskHandler 封装了状态更新任务的管理接口
type TaskHandler struct {
	reconciler *services.StatusReconciler
}

// NewTaskHandler 创建一个新的 TaskHandler 实例
func NewTaskHandler(reconciler *services.StatusReconciler) *TaskHandler {
	return &TaskHandler{reconciler: reconciler}
}

// Status godoc
// @Summary 任务运行快照
// @Tags task
// @Produce  json
// @Success 200 {object} utils.Response{data=services.TaskStatus}
// @Router /task/status [get]
func (h *TaskHandler) Status(c *gin.Context) {
	utils.RespondSuccess(c, h.reconciler.Status(), "")
}

// Start godoc
// @Summary 启动任务
// @Tags task
// @Produce  json
// @Success 200 {object} utils.Response "任务启动成功/任务已在运行中"
// @Router /task/start [post]
func (h *TaskHandler) Start(c *gin.Context) {
	started := h.reconciler.Start()
	message := "任务启动成功"
	if !started {
		message = "任务已在运行中"
	}
	utils.RespondSuccess(c, gin.H{"started": started}, message)
}

// Stop godoc
// @Summary 停止任务
// @Tags task
// @Produce  json
// @Success 200 {object} utils.Response "任务停止成功/任务未在运行"
// @Router /task/stop [post]
func (h *TaskHandler) Stop(c *gin.Context) {
	stopped := h.reconciler.Stop()
	message := "任务停止成功"
	if !stopped {
		message = "任务未在运行"
	}
	utils.RespondSuccess(c, gin.H{"stopped": stopped}, message)
}

// Execute godoc
// @Summary 手动执行一轮任务
// @Tags task
// @Produce  json
// @Success 200 {object} utils.Response "手动执行完成"
// @Router /task/execute [post]
func (h *TaskHandler) Execute(c *gin.Context) {
	h.reconciler.Trigger()
	utils.RespondSuccess(c, nil, "手动执行完成")
}
