package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/library_management/internal/models"
)

// ErrUsernameConflict 表示该用户名已被占用
var ErrUsernameConflict = errors.New("用户名已存在")

// UserRepository 定义了用户数据仓库的接口
type UserRepository interface {
	Create(user *models.User) (*models.User, error)
	GetByID(id int64) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	List(search string, page, pageSize int) ([]models.User, int64, error)
	Update(id int64, updates map[string]interface{}) (*models.User, error)
	// UpdatePassword 只更新密码字段（明文迁移与修改密码用）
	UpdatePassword(id int64, hashedPassword string) error
	Delete(id int64) error
}

// gormUserRepository 是 UserRepository 的 GORM 实现
type gormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository 创建一个新的 gormUserRepository 实例
func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

// Create 在数据库中创建一个新用户
func (r *gormUserRepository) Create(user *models.User) (*models.User, error) {
	var existing models.User
	// 检查用户名是否已存在
	if err := r.db.Where("username = ?", user.Username).First(&existing).Error; err == nil {
		return nil, ErrUsernameConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := r.db.Create(user).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique constraint") {
			return nil, ErrUsernameConflict
		}
		return nil, err
	}
	return user, nil
}

// GetByID 根据ID查询用户
func (r *gormUserRepository) GetByID(id int64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByUsername 根据用户名查询用户
func (r *gormUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

// List 获取用户列表，支持模糊查询和分页。
// search 匹配用户名或角色，大小写不敏感。
func (r *gormUserRepository) List(search string, page, pageSize int) ([]models.User, int64, error) {
	var users []models.User
	var totalItems int64

	queryBuilder := r.db.Model(&models.User{})
	if search != "" {
		searchTerm := "%" + search + "%"
		queryBuilder = queryBuilder.Where(
			"lower(username) LIKE ? OR lower(role) LIKE ?",
			searchTerm, searchTerm,
		)
	}

	if err := queryBuilder.Count(&totalItems).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := queryBuilder.Order("created_at desc").Offset(offset).Limit(pageSize).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, totalItems, nil
}

// Update 更新数据库中指定ID的用户信息
func (r *gormUserRepository) Update(id int64, updates map[string]interface{}) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	if err := r.db.Model(&models.User{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique constraint") {
			return nil, ErrUsernameConflict
		}
		return nil, err
	}

	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdatePassword 只更新密码字段
func (r *gormUserRepository) UpdatePassword(id int64, hashedPassword string) error {
	result := r.db.Model(&models.User{}).Where("id = ?", id).Update("password", hashedPassword)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// Delete 软删除用户
func (r *gormUserRepository) Delete(id int64) error {
	result := r.db.Delete(&models.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
