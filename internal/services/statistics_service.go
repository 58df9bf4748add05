package services

import (
	"log"
	"time"

	"github.com/library_management/internal/models"
	"github.com/library_management/internal/repositories"
	"github.com/library_management/pkg/utils"
)

// 日序列至少覆盖的天数
const minHistogramDays = 30

// 低库存阈值：0 < stock <= lowStockThreshold 视为库存不足
const lowStockThreshold = 3

// StatisticsService 定义了统计聚合服务的接口
type StatisticsService interface {
	BorrowStatistics() (*models.BorrowStatistics, error)
	StockStatistics() (*models.StockStatistics, error)
	ReturnStatistics() (*models.ReturnStatistics, error)
}

type statisticsService struct {
	borrowRepo repositories.BorrowRepository
	bookRepo   repositories.BookRepository
	now        func() time.Time
}

// NewStatisticsService 创建一个新的 statisticsService 实例
func NewStatisticsService(borrowRepo repositories.BorrowRepository, bookRepo repositories.BookRepository, now func() time.Time) StatisticsService {
	if now == nil {
		now = time.Now
	}
	return &statisticsService{borrowRepo: borrowRepo, bookRepo: bookRepo, now: now}
}

// BorrowStatistics 统计借阅记录：按派生状态计数 + 借阅日期的日维度直方图
func (s *statisticsService) BorrowStatistics() (*models.BorrowStatistics, error) {
	borrows, err := s.borrowRepo.ListAll()
	if err != nil {
		return nil, err
	}

	today := utils.DateString(s.now())
	stats := &models.BorrowStatistics{Total: len(borrows)}
	borrowDates := make([]string, 0, len(borrows))
	for _, b := range borrows {
		switch b.DeriveStatus(today) {
		case models.BorrowStatusReturned:
			stats.Returned++
		case models.BorrowStatusOverdue:
			stats.Overdue++
		default:
			stats.Borrowed++
		}
		borrowDates = append(borrowDates, b.BorrowDate)
	}
	stats.Days = s.buildDayHistogram(borrowDates)

	log.Printf("获取借阅统计: 总数=%d, 借阅中=%d, 已归还=%d, 逾期=%d",
		stats.Total, stats.Borrowed, stats.Returned, stats.Overdue)
	return stats, nil
}

// StockStatistics 统计未删除图书的库存分布
func (s *statisticsService) StockStatistics() (*models.StockStatistics, error) {
	books, err := s.bookRepo.ListAll()
	if err != nil {
		return nil, err
	}

	stats := &models.StockStatistics{
		TotalBooks: len(books),
		StockStatus: models.StockGroups{
			OutOfStock:  []models.Book{},
			LowStock:    []models.Book{},
			NormalStock: []models.Book{},
		},
	}
	for _, book := range books {
		stats.TotalStock += book.Stock
		switch {
		case book.Stock <= 0:
			stats.OutOfStock++
			stats.StockStatus.OutOfStock = append(stats.StockStatus.OutOfStock, book)
		case book.Stock <= lowStockThreshold:
			stats.LowStock++
			stats.StockStatus.LowStock = append(stats.StockStatus.LowStock, book)
		default:
			stats.NormalStock++
			stats.StockStatus.NormalStock = append(stats.StockStatus.NormalStock, book)
		}
	}

	log.Printf("获取库存统计: 图书总数=%d, 总库存=%d, 缺货=%d, 库存不足=%d",
		stats.TotalBooks, stats.TotalStock, stats.OutOfStock, stats.LowStock)
	return stats, nil
}

// ReturnStatistics 统计归还记录：总量、日均、单日峰值与归还日期直方图
func (s *statisticsService) ReturnStatistics() (*models.ReturnStatistics, error) {
	borrows, err := s.borrowRepo.ListAll()
	if err != nil {
		return nil, err
	}

	returnDates := make([]string, 0, len(borrows))
	for _, b := range borrows {
		if b.ReturnDate != nil && *b.ReturnDate != "" {
			returnDates = append(returnDates, *b.ReturnDate)
		}
	}

	stats := &models.ReturnStatistics{
		TotalReturns:    len(returnDates),
		AvgDailyReturns: float64(len(returnDates)) / float64(minHistogramDays),
		Days:            s.buildDayHistogram(returnDates),
	}
	for _, day := range stats.Days {
		if day.Count > stats.MaxDailyReturns {
			stats.MaxDailyReturns = day.Count
		}
	}

	log.Printf("获取归还统计: 总归还=%d, 日均归还=%.2f, 单日最高归还=%d",
		stats.TotalReturns, stats.AvgDailyReturns, stats.MaxDailyReturns)
	return stats, nil
}

// buildDayHistogram 把日期集合聚合成连续的日序列。
// 序列覆盖观测到的完整日期范围，不足30天时扩展到30天；
// 没有数据时生成截止今天的最近30天。无活动的日期计数为0。
func (s *statisticsService) buildDayHistogram(dates []string) []models.DayCount {
	countByDate := make(map[string]int)
	var minDate, maxDate time.Time
	for _, d := range dates {
		parsed, err := utils.ParseDate(d)
		if err != nil {
			continue
		}
		key := utils.DateString(parsed)
		countByDate[key]++
		if minDate.IsZero() || parsed.Before(minDate) {
			minDate = parsed
		}
		if maxDate.IsZero() || parsed.After(maxDate) {
			maxDate = parsed
		}
	}

	var start time.Time
	var totalDays int
	if len(countByDate) == 0 {
		// 没有数据，生成最近30天的空序列
		totalDays = minHistogramDays
		start = s.now().AddDate(0, 0, -(minHistogramDays - 1))
	} else {
		span := int(maxDate.Sub(minDate).Hours()/24) + 1
		totalDays = span
		if totalDays < minHistogramDays {
			totalDays = minHistogramDays
		}
		start = minDate
	}

	days := make([]models.DayCount, 0, totalDays)
	for i := 0; i < totalDays; i++ {
		dateStr := utils.DateString(start.AddDate(0, 0, i))
		days = append(days, models.DayCount{
			Date:  dateStr,
			Count: countByDate[dateStr],
		})
	}
	return days
}
