package models

import (
	"time"
)

// 借阅状态枚举。status 是派生值的缓存：读取时总是重新计算，
// 后台任务会定期把计算结果回写到存储（见 services.StatusReconciler）。
const (
	BorrowStatusBorrowed = "borrowed" // 借阅中
	BorrowStatusReturned = "returned" // 已归还
	BorrowStatusOverdue  = "overdue"  // 超期未归还
)

// Borrow 对应于数据库中的 borrows 表。
// 日期字段以 YYYY-MM-DD 字符串存储，与前端交换格式一致。
type Borrow struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID       int64     `json:"userId" gorm:"column:user_id;not null"` // 创建该记录的用户
	BookID       int64     `json:"bookId" gorm:"column:book_id;not null;index"`
	BookTitle    string    `json:"bookTitle" gorm:"column:book_title;not null;size:255"` // 冗余书名，便于列表展示
	BorrowerName string    `json:"borrowerName" gorm:"column:borrower_name;not null;size:255;index"`
	BorrowDate   string    `json:"borrowDate" gorm:"column:borrow_date;not null;size:10"`
	DueDate      string    `json:"dueDate" gorm:"column:due_date;not null;size:10"`
	ReturnDate   *string   `json:"returnDate" gorm:"column:return_date;size:10"` // 为空表示未归还
	Status       string    `json:"status" gorm:"column:status;not null;default:'borrowed';size:20"`
	CreatedAt    time.Time `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt    time.Time `json:"updatedAt" gorm:"column:updated_at;not null;autoUpdateTime"`
}

// TableName 指定 Borrow 结构体对应的数据库表名
func (Borrow) TableName() string {
	return "borrows"
}

// CalculateBorrowStatus 根据归还日期、应还日期和"今天"计算借阅状态。
// 纯函数：有归还日期即为已归还，应还日期早于今天为超期，否则为借阅中。
// 日期均为 YYYY-MM-DD 字符串，按字典序比较即为日期序。
func CalculateBorrowStatus(returnDate *string, dueDate string, today string) string {
	if returnDate != nil && *returnDate != "" {
		return BorrowStatusReturned
	}
	if dueDate < today {
		return BorrowStatusOverdue
	}
	return BorrowStatusBorrowed
}

// DeriveStatus 以给定的"今天"重新计算该记录的状态
func (b *Borrow) DeriveStatus(today string) string {
	return CalculateBorrowStatus(b.ReturnDate, b.DueDate, today)
}

// BorrowPayload 定义了创建/更新借阅记录的请求体
type BorrowPayload struct {
	BookID       int64   `json:"bookId" binding:"required"`
	BookTitle    string  `json:"bookTitle" binding:"required"`
	BorrowerName string  `json:"borrowerName" binding:"required"`
	BorrowDate   string  `json:"borrowDate" binding:"required"`
	DueDate      string  `json:"dueDate" binding:"required"`
	ReturnDate   *string `json:"returnDate"`
	Status       string  `json:"status"`
	UserID       int64   `json:"userId"`
}
