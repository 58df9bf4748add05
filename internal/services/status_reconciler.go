package services

import (
	"log"
	"sync"
	"time"

	"github.com/library_management/internal/models"
	"github.com/library_management/internal/repositories"
	"github.com/library_management/pkg/utils"
)

const reconcilerTaskName = "borrow-status-update"

// TaskStatus 是状态更新任务的运行快照
type TaskStatus struct {
	Name         string     `json:"name"`
	Running      bool       `json:"running"`
	Interval     float64    `json:"interval"` // 执行间隔，秒
	TotalRuns    int        `json:"totalRuns"`
	TotalUpdates int        `json:"totalUpdates"`
	LastRunTime  *time.Time `json:"lastRunTime"`
	LastError    string     `json:"lastError,omitempty"`
}

// StatusReconciler 定期扫描全部借阅记录，重新计算派生状态并把
// 与存储值不一致的记录回写。状态本质是读取时计算的派生值，
// 该任务只是把缓存列保持最新，供按状态过滤的查询使用。
type StatusReconciler struct {
	repo     repositories.BorrowRepository
	interval time.Duration
	now      func() time.Time

	mu           sync.Mutex
	running      bool
	stopCh       chan struct{}
	totalRuns    int
	totalUpdates int
	lastRunTime  *time.Time
	lastError    string
}

// NewStatusReconciler 创建状态更新任务。interval<=0 时使用60秒。
func NewStatusReconciler(repo repositories.BorrowRepository, interval time.Duration, now func() time.Time) *StatusReconciler {
	if interval <= 0 {
		interval = 60 * time.Second
	}
	if now == nil {
		now = time.Now
	}
	return &StatusReconciler{repo: repo, interval: interval, now: now}
}

// Start 启动后台任务。已在运行时返回 false。
func (r *StatusReconciler) Start() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return false
	}
	r.running = true
	r.stopCh = make(chan struct{})
	go r.runLoop(r.stopCh)
	log.Printf("状态更新任务已启动，间隔 %v", r.interval)
	return true
}

// Stop 停止后台任务。未在运行时返回 false。
func (r *StatusReconciler) Stop() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running {
		return false
	}
	close(r.stopCh)
	r.running = false
	log.Println("状态更新任务已停止")
	return true
}

// Trigger 手动执行一轮状态更新
func (r *StatusReconciler) Trigger() {
	r.runOnce()
}

// Status 返回任务运行快照
func (r *StatusReconciler) Status() TaskStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return TaskStatus{
		Name:         reconcilerTaskName,
		Running:      r.running,
		Interval:     r.interval.Seconds(),
		TotalRuns:    r.totalRuns,
		TotalUpdates: r.totalUpdates,
		LastRunTime:  r.lastRunTime,
		LastError:    r.lastError,
	}
}

func (r *StatusReconciler) runLoop(stopCh chan struct{}) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r.runOnce()
		case <-stopCh:
			return
		}
	}
}

// runOnce 执行一轮扫描：重新计算每条记录的状态，只回写有差异的行
func (r *StatusReconciler) runOnce() {
	runTime := r.now()
	r.mu.Lock()
	r.totalRuns++
	r.lastRunTime = &runTime
	r.mu.Unlock()

	borrows, err := r.repo.ListAll()
	if err != nil {
		r.recordError(err)
		log.Printf("状态更新任务失败: %v", err)
		return
	}

	today := utils.DateString(runTime)
	updateCount := 0
	for _, borrow := range borrows {
		derived := models.CalculateBorrowStatus(borrow.ReturnDate, borrow.DueDate, today)
		if borrow.Status == derived {
			continue
		}
		if err := r.repo.UpdateStatus(borrow.ID, derived); err != nil {
			r.recordError(err)
			log.Printf("回写借阅 %d 状态失败: %v", borrow.ID, err)
			return
		}
		updateCount++
	}

	r.mu.Lock()
	r.totalUpdates += updateCount
	r.lastError = ""
	r.mu.Unlock()
	log.Printf("状态更新任务完成: 检查了 %d 条记录，更新了 %d 条状态", len(borrows), updateCount)
}

func (r *StatusReconciler) recordError(err error) {
	r.mu.Lock()
	r.lastError = err.Error()
	r.mu.Unlock()
}
