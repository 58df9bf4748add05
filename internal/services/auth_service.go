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

// 认证相关错误定义
var (
	ErrInvalidCredentials  = errors.New("用户名或密码错误")
	ErrUserDisabled        = errors.New("账户已被禁用，请联系管理员")
	ErrUserNotFound        = errors.New("用户不存在")
	ErrOldPasswordMismatch = errors.New("旧密码错误")
)

// ErrUsernameTaken 复用仓库层的用户名冲突错误
var ErrUsernameTaken = repositories.ErrUsernameConflict

// AuthService 定义了认证服务的接口
type AuthService interface {
	// Login 验证凭证并返回登录用户。
	// 历史明文密码在首次成功登录时被透明迁移为 bcrypt 哈希。
	Login(username, password string) (*models.User, error)
	Register(username, password string) (*models.User, error)
	ChangePassword(username, oldPassword, newPassword string) error
	GetUserByUsername(username string) (*models.User, error)
}

type authService struct {
	repo repositories.UserRepository
}

// NewAuthService 创建一个新的 authService 实例
func NewAuthService(repo repositories.UserRepository) AuthService {
	return &authService{repo: repo}
}

// Login 处理登录的业务逻辑
func (s *authService) Login(username, password string) (*models.User, error) {
	user, err := s.repo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.Status == models.UserStatusDisabled {
		return nil, ErrUserDisabled
	}

	// 检查密码是否为明文，如果是则验证后立即迁移为哈希
	var passwordValid bool
	if utils.IsPlainPassword(user.Password) {
		passwordValid = user.Password == password
		if passwordValid {
			log.Printf("迁移用户 %s 的明文密码", username)
			hash, hashErr := utils.HashPassword(password)
			if hashErr != nil {
				return nil, hashErr
			}
			if err := s.repo.UpdatePassword(user.ID, hash); err != nil {
				return nil, err
			}
			user.Password = hash
		}
	} else {
		passwordValid = utils.VerifyPassword(password, user.Password)
	}

	if !passwordValid {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Register 处理注册的业务逻辑，新用户默认为启用的普通用户
func (s *authService) Register(username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username), // 生成默认邮箱
		Password: hash,
		Role:     models.RoleUser,
		Status:   models.UserStatusEnabled,
	}
	created, err := s.repo.Create(user)
	if err != nil {
		return nil, err
	}
	log.Printf("注册用户: %s (ID: %d)", username, created.ID)
	return created, nil
}

// ChangePassword 处理修改密码的业务逻辑。
// 旧密码校验与登录相同，兼容历史明文存储。
func (s *authService) ChangePassword(username, oldPassword, newPassword string) error {
	user, err := s.repo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	var oldValid bool
	if utils.IsPlainPassword(user.Password) {
		oldValid = user.Password == oldPassword
	} else {
		oldValid = utils.VerifyPassword(oldPassword, user.Password)
	}
	if !oldValid {
		return ErrOldPasswordMismatch
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(user.ID, hash); err != nil {
		return err
	}
	log.Printf("用户 %s 修改密码成功", username)
	return nil
}

// GetUserByUsername 根据用户名获取用户
func (s *authService) GetUserByUsername(username string) (*models.User, error) {
	user, err := s.repo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
