package models

import (
	"time"

	"gorm.io/gorm"
)

// 用户角色与状态枚举
const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	UserStatusEnabled  = "enabled"
	UserStatusDisabled = "disabled"
)

// User 对应于数据库中的 users 表
type User struct {
	ID        int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Username  string         `json:"username" gorm:"column:username;unique;not null;size:255"`
	Email     string         `json:"email" gorm:"column:email;size:255"`
	Password  string         `json:"-" gorm:"column:password;not null;size:255"` // bcrypt 哈希；历史数据可能仍是明文，登录时迁移
	Role      string         `json:"role" gorm:"column:role;not null;default:'user';size:50"`
	Status    string         `json:"status" gorm:"column:status;not null;default:'enabled';size:50"`
	CreatedAt time.Time      `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt time.Time      `json:"updatedAt" gorm:"column:updated_at;not null;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// TableName 指定 User 结构体对应的数据库表名
func (User) TableName() string {
	return "users"
}

// UserPayload 定义了管理员创建/更新用户的请求体
type UserPayload struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password"` // 新增时必填，编辑时留空表示不修改
	Email    string `json:"email"`
	Role     string `json:"role" binding:"required"`
	Status   string `json:"status" binding:"required"`
}
