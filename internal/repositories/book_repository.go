package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/library_management/internal/models"
)

// ErrRecordNotFound 表示记录未找到，可以重用 gorm 的错误或自定义
var ErrRecordNotFound = gorm.ErrRecordNotFound

// ErrStockUnavailable 表示条件扣减库存时库存已为0
var ErrStockUnavailable = errors.New("库存不足")

// BookRepository 定义了图书数据仓库的接口
type BookRepository interface {
	Create(book *models.Book) (*models.Book, error)
	GetByID(id int64) (*models.Book, error)
	List(search string, page, pageSize int) ([]models.Book, int64, error)
	ListAll() ([]models.Book, error)
	Update(id int64, updates map[string]interface{}) (*models.Book, error)
	UpdateStock(id int64, stock int) error
	// DecrementStockIfAvailable 以单条条件更新扣减1个库存，
	// 仅当 stock > 0 时生效；库存已为0时返回 ErrStockUnavailable。
	DecrementStockIfAvailable(id int64) error
	IncrementStock(id int64) error
	SoftDelete(id int64) error
}

// gormBookRepository 是 BookRepository 的 GORM 实现
type gormBookRepository struct {
	db *gorm.DB
}

// NewGormBookRepository 创建一个新的 gormBookRepository 实例
func NewGormBookRepository(db *gorm.DB) BookRepository {
	return &gormBookRepository{db: db}
}

// Create 在数据库中创建一条图书记录
func (r *gormBookRepository) Create(book *models.Book) (*models.Book, error) {
	if err := r.db.Create(book).Error; err != nil {
		return nil, err
	}
	return book, nil
}

// GetByID 根据ID查询图书，软删除的记录视为不存在
func (r *gormBookRepository) GetByID(id int64) (*models.Book, error) {
	var book models.Book
	if err := r.db.First(&book, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &book, nil
}

// List 获取图书列表，支持模糊查询和分页。
// search 匹配书名、作者或ISBN，大小写不敏感。
func (r *gormBookRepository) List(search string, page, pageSize int) ([]models.Book, int64, error) {
	var books []models.Book
	var totalItems int64

	queryBuilder := r.db.Model(&models.Book{})
	if search != "" {
		searchTerm := "%" + search + "%"
		queryBuilder = queryBuilder.Where(
			"lower(title) LIKE ? OR lower(author) LIKE ? OR lower(isbn) LIKE ?",
			searchTerm, searchTerm, searchTerm,
		)
	}

	if err := queryBuilder.Count(&totalItems).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := queryBuilder.Order("created_at desc").Offset(offset).Limit(pageSize).Find(&books).Error; err != nil {
		return nil, 0, err
	}
	return books, totalItems, nil
}

// ListAll 获取全部未删除的图书（统计用）
func (r *gormBookRepository) ListAll() ([]models.Book, error) {
	var books []models.Book
	if err := r.db.Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// Update 更新数据库中指定ID的图书信息
// updates 是一个包含要更新字段及其新值的 map
func (r *gormBookRepository) Update(id int64, updates map[string]interface{}) (*models.Book, error) {
	var book models.Book
	// 首先，检查记录是否存在
	if err := r.db.First(&book, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	if err := r.db.Model(&models.Book{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}

	// 重新查询更新后的记录并返回
	if err := r.db.First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// UpdateStock 直接设置图书库存（管理员编辑）
func (r *gormBookRepository) UpdateStock(id int64, stock int) error {
	result := r.db.Model(&models.Book{}).Where("id = ?", id).Update("stock", stock)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// DecrementStockIfAvailable 条件扣减库存。
// 单条 UPDATE 配合 stock > 0 条件在存储层原子生效，
// 避免并发借阅把库存扣成负数。
func (r *gormBookRepository) DecrementStockIfAvailable(id int64) error {
	result := r.db.Model(&models.Book{}).
		Where("id = ? AND stock > 0", id).
		Update("stock", gorm.Expr("stock - 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStockUnavailable
	}
	return nil
}

// IncrementStock 归还/删除借阅时恢复1个库存
func (r *gormBookRepository) IncrementStock(id int64) error {
	result := r.db.Model(&models.Book{}).
		Where("id = ?", id).
		Update("stock", gorm.Expr("stock + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// SoftDelete 软删除图书（设置删除时间戳，不物理删除）
func (r *gormBookRepository) SoftDelete(id int64) error {
	result := r.db.Delete(&models.Book{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
