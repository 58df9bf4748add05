package utils

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

var (
	// ErrInvalidDateFormat 日期格式无效
	ErrInvalidDateFormat = errors.New("日期格式无效，请使用 YYYY-MM-DD 或类似格式")
)

var searchFolder = cases.Fold()

// ParseDate 解析日期字符串，支持多种常见格式。
// 支持 YYYY-MM-DD, YYYY/MM/DD, YYYY-M-D, YYYY/M/D 等及其变体。
func ParseDate(dateStr string) (time.Time, error) {
	trimmedDateStr := strings.TrimSpace(dateStr)
	if trimmedDateStr == "" {
		return time.Time{}, ErrInvalidDateFormat // 空日期字符串视为无效
	}

	normalizedDateStr := strings.ReplaceAll(trimmedDateStr, "/", "-")

	// 包含补零和不补零的情况
	dateLayouts := []string{
		"2006-01-02", // YYYY-MM-DD
		"2006-1-2",   // YYYY-M-D
		"2006-01-2",  // YYYY-MM-D
		"2006-1-02",  // YYYY-M-DD
	}

	for _, layout := range dateLayouts {
		if parsedDate, err := time.Parse(layout, normalizedDateStr); err == nil {
			return parsedDate, nil
		}
	}
	// 所有格式尝试完毕后仍失败
	return time.Time{}, ErrInvalidDateFormat
}

// DateString 以 YYYY-MM-DD 格式化日期
func DateString(t time.Time) string {
	return t.Format("2006-01-02")
}

// FoldSearchTerm 对搜索关键字做大小写折叠和首尾空白清理，
// 使模糊查询对大小写不敏感
func FoldSearchTerm(search string) string {
	return searchFolder.String(strings.TrimSpace(search))
}

// NormalizePageParams 规范分页参数，返回合法的 page/pageSize
func NormalizePageParams(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 1000 {
		pageSize = 1000
	}
	return page, pageSize
}
