package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/library_management/internal/models"
	"github.com/library_management/internal/repositories"
	"github.com/library_management/pkg/utils"
)

const defaultBookStock = 10 // 新增图书时的默认库存数量

// ErrInvalidStock 表示库存数量不是非负整数
var ErrInvalidStock = errors.New("库存数量不能为负数")

// BookService 定义了图书服务的接口
type BookService interface {
	CreateBook(payload models.BookPayload) (*models.Book, error)
	GetBook(id int64) (*models.Book, error)
	ListBooks(search string, page, pageSize int) ([]models.Book, int64, error)
	UpdateBook(id int64, payload models.BookPayload) (*models.Book, error)
	DeleteBook(id int64) error
	GetStock(id int64) (*models.Book, error)
	SetStock(id int64, stock int) error
}

type bookService struct {
	repo repositories.BookRepository
}

// NewBookService 创建一个新的 bookService 实例
func NewBookService(repo repositories.BookRepository) BookService {
	return &bookService{repo: repo}
}

// CreateBook 处理新增图书的业务逻辑
func (s *bookService) CreateBook(payload models.BookPayload) (*models.Book, error) {
	if _, err := utils.ParseDate(payload.PublishDate); err != nil {
		return nil, err
	}

	stock := defaultBookStock
	if payload.Stock != nil {
		if *payload.Stock < 0 {
			return nil, ErrInvalidStock
		}
		stock = *payload.Stock
	}

	isbn := strings.TrimSpace(payload.ISBN)
	if isbn == "" {
		isbn = fmt.Sprintf("ISBN-%d", time.Now().UnixMilli()) // 生成默认ISBN
	}
	category := payload.Category
	if category == "" {
		category = "未分类"
	}

	book := &models.Book{
		Title:       strings.TrimSpace(payload.Title),
		Author:      strings.TrimSpace(payload.Author),
		Publisher:   strings.TrimSpace(payload.Publisher),
		PublishDate: payload.PublishDate,
		ISBN:        isbn,
		Price:       payload.Price,
		Stock:       stock,
		Description: payload.Description,
		Category:    category,
	}
	created, err := s.repo.Create(book)
	if err != nil {
		return nil, err
	}
	log.Printf("创建图书: %s (ID: %d, 库存: %d)", created.Title, created.ID, created.Stock)
	return created, nil
}

// GetBook 根据ID获取图书
func (s *bookService) GetBook(id int64) (*models.Book, error) {
	book, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

// ListBooks 获取图书列表
func (s *bookService) ListBooks(search string, page, pageSize int) ([]models.Book, int64, error) {
	return s.repo.List(search, page, pageSize)
}

// UpdateBook 处理编辑图书的业务逻辑。
// ISBN、价格、描述、分类缺省时保留原值。
func (s *bookService) UpdateBook(id int64, payload models.BookPayload) (*models.Book, error) {
	if _, err := utils.ParseDate(payload.PublishDate); err != nil {
		return nil, err
	}

	original, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	stock := original.Stock
	if payload.Stock != nil {
		if *payload.Stock < 0 {
			return nil, ErrInvalidStock
		}
		stock = *payload.Stock
	}

	updates := map[string]interface{}{
		"title":        strings.TrimSpace(payload.Title),
		"author":       strings.TrimSpace(payload.Author),
		"publisher":    strings.TrimSpace(payload.Publisher),
		"publish_date": payload.PublishDate,
		"stock":        stock,
	}
	if isbn := strings.TrimSpace(payload.ISBN); isbn != "" {
		updates["isbn"] = isbn
	}
	if payload.Price != 0 {
		updates["price"] = payload.Price
	}
	if payload.Description != "" {
		updates["description"] = payload.Description
	}
	if payload.Category != "" {
		updates["category"] = payload.Category
	}

	updated, err := s.repo.Update(id, updates)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	log.Printf("更新图书: %s (ID: %d)", updated.Title, id)
	return updated, nil
}

// DeleteBook 软删除图书
func (s *bookService) DeleteBook(id int64) error {
	if err := s.repo.SoftDelete(id); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return ErrBookNotFound
		}
		return err
	}
	log.Printf("删除图书 (ID: %d)", id)
	return nil
}

// GetStock 获取图书库存信息
func (s *bookService) GetStock(id int64) (*models.Book, error) {
	return s.GetBook(id)
}

// SetStock 管理员直接设置图书库存
func (s *bookService) SetStock(id int64, stock int) error {
	if stock < 0 {
		return ErrInvalidStock
	}
	if err := s.repo.UpdateStock(id, stock); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return ErrBookNotFound
		}
		return err
	}
	log.Printf("更新图书库存 (ID: %d, 库存: %d)", id, stock)
	return nil
}
