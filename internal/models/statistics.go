package models

// DayCount 日维度的计数，日期格式 YYYY-MM-DD。
// 无活动的日期也会出现在序列中，计数为0。
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// BorrowStatistics 借阅统计结果
type BorrowStatistics struct {
	Total    int        `json:"total"`
	Borrowed int        `json:"borrowed"`
	Returned int        `json:"returned"`
	Overdue  int        `json:"overdue"`
	Days     []DayCount `json:"days"`
}

// StockGroups 按库存状态分组的图书列表
type StockGroups struct {
	OutOfStock  []Book `json:"outOfStock"`
	LowStock    []Book `json:"lowStock"`
	NormalStock []Book `json:"normalStock"`
}

// StockStatistics 库存统计结果。
// 缺货: stock<=0；库存不足: 0<stock<=3；正常: stock>3。
type StockStatistics struct {
	TotalBooks  int         `json:"totalBooks"`
	TotalStock  int         `json:"totalStock"`
	OutOfStock  int         `json:"outOfStock"`
	LowStock    int         `json:"lowStock"`
	NormalStock int         `json:"normalStock"`
	StockStatus StockGroups `json:"stockStatus"`
}

// ReturnStatistics 归还统计结果
type ReturnStatistics struct {
	TotalReturns    int        `json:"totalReturns"`
	AvgDailyReturns float64    `json:"avgDailyReturns"`
	MaxDailyReturns int        `json:"maxDailyReturns"`
	Days            []DayCount `json:"days"`
}
