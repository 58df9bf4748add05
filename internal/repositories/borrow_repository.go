package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/library_management/internal/models"
)

// BorrowRepository 定义了借阅记录数据仓库的接口
type BorrowRepository interface {
	Create(borrow *models.Borrow) (*models.Borrow, error)
	GetByID(id int64) (*models.Borrow, error)
	List(search string, page, pageSize int) ([]models.Borrow, int64, error)
	ListAll() ([]models.Borrow, error)
	// ListUnreturnedByBorrower 查询指定借阅人的全部未归还记录（逾期锁检查用）
	ListUnreturnedByBorrower(borrowerName string) ([]models.Borrow, error)
	// CountUnreturnedByUser 统计指定用户创建的未归还借阅数量
	CountUnreturnedByUser(userID int64) (int64, error)
	Update(id int64, updates map[string]interface{}) error
	UpdateStatus(id int64, status string) error
	Delete(id int64) error
}

// gormBorrowRepository 是 BorrowRepository 的 GORM 实现
type gormBorrowRepository struct {
	db *gorm.DB
}

// NewGormBorrowRepository 创建一个新的 gormBorrowRepository 实例
func NewGormBorrowRepository(db *gorm.DB) BorrowRepository {
	return &gormBorrowRepository{db: db}
}

// Create 在数据库中创建一条借阅记录
func (r *gormBorrowRepository) Create(borrow *models.Borrow) (*models.Borrow, error) {
	if err := r.db.Create(borrow).Error; err != nil {
		return nil, err
	}
	return borrow, nil
}

// GetByID 根据ID查询借阅记录
func (r *gormBorrowRepository) GetByID(id int64) (*models.Borrow, error) {
	var borrow models.Borrow
	if err := r.db.First(&borrow, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &borrow, nil
}

// List 获取借阅列表，支持模糊查询和分页。
// search 匹配书名或借阅人，大小写不敏感。
func (r *gormBorrowRepository) List(search string, page, pageSize int) ([]models.Borrow, int64, error) {
	var borrows []models.Borrow
	var totalItems int64

	queryBuilder := r.db.Model(&models.Borrow{})
	if search != "" {
		searchTerm := "%" + search + "%"
		queryBuilder = queryBuilder.Where(
			"lower(book_title) LIKE ? OR lower(borrower_name) LIKE ?",
			searchTerm, searchTerm,
		)
	}

	if err := queryBuilder.Count(&totalItems).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := queryBuilder.Order("created_at desc").Offset(offset).Limit(pageSize).Find(&borrows).Error; err != nil {
		return nil, 0, err
	}
	return borrows, totalItems, nil
}

// ListAll 获取全部借阅记录（统计与状态更新任务用）
func (r *gormBorrowRepository) ListAll() ([]models.Borrow, error) {
	var borrows []models.Borrow
	if err := r.db.Find(&borrows).Error; err != nil {
		return nil, err
	}
	return borrows, nil
}

// ListUnreturnedByBorrower 查询指定借阅人的全部未归还记录
func (r *gormBorrowRepository) ListUnreturnedByBorrower(borrowerName string) ([]models.Borrow, error) {
	var borrows []models.Borrow
	err := r.db.
		Where("borrower_name = ? AND (return_date IS NULL OR return_date = '')", borrowerName).
		Find(&borrows).Error
	if err != nil {
		return nil, err
	}
	return borrows, nil
}

// CountUnreturnedByUser 统计指定用户创建的未归还借阅数量
func (r *gormBorrowRepository) CountUnreturnedByUser(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Borrow{}).
		Where("user_id = ? AND (return_date IS NULL OR return_date = '')", userID).
		Count(&count).Error
	return count, err
}

// Update 更新指定ID的借阅记录。
// updates 需包含全部可替换字段；return_date 为 nil 时会被置空。
func (r *gormBorrowRepository) Update(id int64, updates map[string]interface{}) error {
	result := r.db.Model(&models.Borrow{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// UpdateStatus 只回写状态字段（状态更新任务用）
func (r *gormBorrowRepository) UpdateStatus(id int64, status string) error {
	return r.db.Model(&models.Borrow{}).Where("id = ?", id).Update("status", status).Error
}

// Delete 物理删除借阅记录
func (r *gormBorrowRepository) Delete(id int64) error {
	result := r.db.Delete(&models.Borrow{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
