package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/library_management/internal/models"
	"github.com/library_management/internal/repositories"
	"github.com/library_management/pkg/utils"
)

// ErrPasswordRequired 新增用户时密码为必填项
var ErrPasswordRequired = errors.New("新增用户时密码为必填项")

// UserService 定义了用户管理服务的接口（管理员功能）
type UserService interface {
	CreateUser(payload models.UserPayload) (*models.User, error)
	ListUsers(search string, page, pageSize int) ([]models.User, int64, error)
	UpdateUser(id int64, payload models.UserPayload) (*models.User, error)
	DeleteUser(id int64) error
}

type userService struct {
	repo repositories.UserRepository
}

// NewUserService 创建一个新的 userService 实例
func NewUserService(repo repositories.UserRepository) UserService {
	return &userService{repo: repo}
}

// CreateUser 处理管理员新增用户的业务逻辑
func (s *userService) CreateUser(payload models.UserPayload) (*models.User, error) {
	if payload.Password == "" {
		return nil, ErrPasswordRequired
	}

	username := strings.TrimSpace(payload.Username)
	email := payload.Email
	if email == "" {
		email = fmt.Sprintf("%s@example.com", username) // 生成默认邮箱
	}

	hash, err := utils.HashPassword(payload.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: hash,
		Role:     payload.Role,
		Status:   payload.Status,
	}
	created, err := s.repo.Create(user)
	if err != nil {
		return nil, err
	}
	log.Printf("管理员创建用户: %s (ID: %d)", username, created.ID)
	return created, nil
}

// ListUsers 获取用户列表
func (s *userService) ListUsers(search string, page, pageSize int) ([]models.User, int64, error) {
	return s.repo.List(search, page, pageSize)
}

// UpdateUser 处理管理员编辑用户的业务逻辑。
// 密码留空表示不修改；提供新密码时重新哈希。
func (s *userService) UpdateUser(id int64, payload models.UserPayload) (*models.User, error) {
	updates := map[string]interface{}{
		"username": strings.TrimSpace(payload.Username),
		"role":     payload.Role,
		"status":   payload.Status,
	}
	if payload.Email != "" {
		updates["email"] = payload.Email
	}
	if payload.Password != "" {
		hash, err := utils.HashPassword(payload.Password)
		if err != nil {
			return nil, err
		}
		updates["password"] = hash
	}

	updated, err := s.repo.Update(id, updates)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	log.Printf("管理员更新用户: %s (ID: %d)", updated.Username, id)
	return updated, nil
}

// DeleteUser 软删除用户
func (s *userService) DeleteUser(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	log.Printf("管理员删除用户 (ID: %d)", id)
	return nil
}
