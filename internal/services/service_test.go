package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/library_management/internal/models"
	"github.com/library_management/internal/repositories"
)

// 测试统一使用的固定时钟："今天"为 2026-03-15
var testClock = func() time.Time {
	return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
}

const testToday = "2026-03-15"

// newTestDB 为每个测试创建独立的内存数据库。
// 以测试名作为共享缓存的库名，避免连接池拿到不同的空库。
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Book{}, &models.Borrow{}))
	return db
}

// newBorrowFixture 构建借阅服务及其依赖的仓库
func newBorrowFixture(t *testing.T) (BorrowService, repositories.BookRepository, repositories.BorrowRepository, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	bookRepo := repositories.NewGormBookRepository(db)
	borrowRepo := repositories.NewGormBorrowRepository(db)
	service := NewBorrowService(borrowRepo, bookRepo, testClock)
	return service, bookRepo, borrowRepo, db
}

// seedBook 插入一本测试图书并返回
func seedBook(t *testing.T, db *gorm.DB, title string, stock int) *models.Book {
	t.Helper()
	book := &models.Book{
		Title:       title,
		Author:      "测试作者",
		Publisher:   "测试出版社",
		PublishDate: "2020-01-01",
		Stock:       stock,
	}
	require.NoError(t, db.Create(book).Error)
	return book
}

// seedBorrow 插入一条借阅记录并返回
func seedBorrow(t *testing.T, db *gorm.DB, book *models.Book, borrower, borrowDate, dueDate string, returnDate *string) *models.Borrow {
	t.Helper()
	borrow := &models.Borrow{
		UserID:       1,
		BookID:       book.ID,
		BookTitle:    book.Title,
		BorrowerName: borrower,
		BorrowDate:   borrowDate,
		DueDate:      dueDate,
		ReturnDate:   returnDate,
		Status:       models.CalculateBorrowStatus(returnDate, dueDate, testToday),
	}
	require.NoError(t, db.Create(borrow).Error)
	return borrow
}

// bookStock 读取图书当前库存
func bookStock(t *testing.T, db *gorm.DB, id int64) int {
	t.Helper()
	var book models.Book
	require.NoError(t, db.First(&book, id).Error)
	return book.Stock
}
