package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/library_management/internal/models"
	"github.com/library_management/internal/repositories"
)

func newStatisticsFixture(t *testing.T) (StatisticsService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	borrowRepo := repositories.NewGormBorrowRepository(db)
	bookRepo := repositories.NewGormBookRepository(db)
	return NewStatisticsService(borrowRepo, bookRepo, testClock), db
}

func TestBorrowStatisticsCountsByDerivedStatus(t *testing.T) {
	service, db := newStatisticsFixture(t)
	book := seedBook(t, db, "统计测试", 10)

	returned := "2026-03-10"
	seedBorrow(t, db, book, "张三", "2026-03-01", "2026-04-01", &returned) // returned
	seedBorrow(t, db, book, "李四", "2026-03-05", "2026-04-05", nil)       // borrowed
	seedBorrow(t, db, book, "王五", "2026-02-01", "2026-03-01", nil)       // overdue

	// 存储的状态故意与派生值不一致，统计应以派生值为准
	require.NoError(t, db.Model(&models.Borrow{}).
		Where("borrower_name = ?", "王五").
		Update("status", models.BorrowStatusBorrowed).Error)

	stats, err := service.BorrowStatistics()
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Borrowed)
	assert.Equal(t, 1, stats.Returned)
	assert.Equal(t, 1, stats.Overdue)
}

func TestBorrowStatisticsHistogramZeroFilled(t *testing.T) {
	service, db := newStatisticsFixture(t)
	book := seedBook(t, db, "直方图测试", 10)

	// 三条记录集中在两天，中间隔着无活动的日期
	seedBorrow(t, db, book, "张三", "2026-03-01", "2026-04-01", nil)
	seedBorrow(t, db, book, "李四", "2026-03-01", "2026-04-01", nil)
	seedBorrow(t, db, book, "王五", "2026-03-05", "2026-04-05", nil)

	stats, err := service.BorrowStatistics()
	require.NoError(t, err)

	// 不足30天时扩展到30天，首日为最早的借阅日期
	require.Len(t, stats.Days, 30)
	assert.Equal(t, "2026-03-01", stats.Days[0].Date)
	assert.Equal(t, 2, stats.Days[0].Count)

	counts := make(map[string]int)
	for i, day := range stats.Days {
		counts[day.Date] = day.Count
		if i > 0 {
			assert.Greater(t, day.Date, stats.Days[i-1].Date, "日期序列应严格递增")
		}
	}
	assert.Equal(t, 1, counts["2026-03-05"])
	assert.Equal(t, 0, counts["2026-03-03"], "无活动日期计数为0")
}

func TestBorrowStatisticsHistogramEmptyData(t *testing.T) {
	service, _ := newStatisticsFixture(t)

	stats, err := service.BorrowStatistics()
	require.NoError(t, err)

	// 没有数据时生成截止今天的最近30天空序列
	require.Len(t, stats.Days, 30)
	assert.Equal(t, testToday, stats.Days[29].Date)
	for _, day := range stats.Days {
		assert.Zero(t, day.Count)
	}
}

func TestBorrowStatisticsHistogramWideRange(t *testing.T) {
	service, db := newStatisticsFixture(t)
	book := seedBook(t, db, "跨度测试", 10)

	// 跨度超过30天时覆盖完整范围
	seedBorrow(t, db, book, "张三", "2026-01-01", "2026-02-01", nil)
	seedBorrow(t, db, book, "李四", "2026-02-15", "2026-03-15", nil)

	stats, err := service.BorrowStatistics()
	require.NoError(t, err)
	require.Len(t, stats.Days, 46)
	assert.Equal(t, "2026-01-01", stats.Days[0].Date)
	assert.Equal(t, "2026-02-15", stats.Days[45].Date)
}

func TestStockStatisticsGrouping(t *testing.T) {
	service, db := newStatisticsFixture(t)

	seedBook(t, db, "缺货的书", 0)
	seedBook(t, db, "库存紧张的书", 2)
	seedBook(t, db, "库存临界的书", 3)
	seedBook(t, db, "库存充足的书", 10)

	stats, err := service.StockStatistics()
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalBooks)
	assert.Equal(t, 15, stats.TotalStock)
	assert.Equal(t, 1, stats.OutOfStock)
	assert.Equal(t, 2, stats.LowStock)
	assert.Equal(t, 1, stats.NormalStock)

	require.Len(t, stats.StockStatus.OutOfStock, 1)
	assert.Equal(t, "缺货的书", stats.StockStatus.OutOfStock[0].Title)
	require.Len(t, stats.StockStatus.NormalStock, 1)
	assert.Equal(t, "库存充足的书", stats.StockStatus.NormalStock[0].Title)
}

func TestStockStatisticsEmptyGroupsNotNil(t *testing.T) {
	service, _ := newStatisticsFixture(t)

	stats, err := service.StockStatistics()
	require.NoError(t, err)

	// 空分组序列化为 [] 而不是 null
	assert.NotNil(t, stats.StockStatus.OutOfStock)
	assert.NotNil(t, stats.StockStatus.LowStock)
	assert.NotNil(t, stats.StockStatus.NormalStock)
}

func TestReturnStatistics(t *testing.T) {
	service, db := newStatisticsFixture(t)
	book := seedBook(t, db, "归还统计测试", 10)

	day1 := "2026-03-10"
	day2 := "2026-03-12"
	seedBorrow(t, db, book, "张三", "2026-03-01", "2026-04-01", &day1)
	seedBorrow(t, db, book, "李四", "2026-03-01", "2026-04-01", &day1)
	seedBorrow(t, db, book, "王五", "2026-03-01", "2026-04-01", &day2)
	seedBorrow(t, db, book, "赵六", "2026-03-01", "2026-04-01", nil) // 未归还不计入

	stats, err := service.ReturnStatistics()
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalReturns)
	assert.InDelta(t, 0.1, stats.AvgDailyReturns, 0.001)
	assert.Equal(t, 2, stats.MaxDailyReturns)
	require.Len(t, stats.Days, 30)
	assert.Equal(t, day1, stats.Days[0].Date)
}
