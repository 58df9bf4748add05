package models

import (
	"time"

	"gorm.io/gorm"
)

// Book 对应于数据库中的 books 表
type Book struct {
	ID          int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string         `json:"title" gorm:"column:title;not null;size:255"`
	Author      string         `json:"author" gorm:"column:author;not null;size:255"`
	Publisher   string         `json:"publisher" gorm:"column:publisher;size:255"`
	ISBN        string         `json:"isbn" gorm:"column:isbn;size:50"`
	PublishDate string         `json:"publishDate" gorm:"column:publish_date;size:10"` // 出版日期，格式 YYYY-MM-DD
	Price       float64        `json:"price" gorm:"column:price"`
	Stock       int            `json:"stock" gorm:"column:stock;not null;default:0"` // 库存数量，非负
	Description string         `json:"description" gorm:"column:description;type:text"`
	Category    string         `json:"category" gorm:"column:category;size:100"`
	CreatedAt   time.Time      `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt   time.Time      `json:"updatedAt" gorm:"column:updated_at;not null;autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// TableName 指定 Book 结构体对应的数据库表名
func (Book) TableName() string {
	return "books"
}

// BookPayload 定义了创建/更新图书的请求体
type BookPayload struct {
	Title       string  `json:"title" binding:"required"`
	Author      string  `json:"author" binding:"required"`
	Publisher   string  `json:"publisher" binding:"required"`
	PublishDate string  `json:"publishDate" binding:"required"`
	ISBN        string  `json:"isbn"`
	Price       float64 `json:"price"`
	Stock       *int    `json:"stock"` // 缺省时使用默认库存
	Description string  `json:"description"`
	Category    string  `json:"category"`
}

// StockPayload 定义了更新库存的请求体
type StockPayload struct {
	Stock *int `json:"stock" binding:"required"`
}
