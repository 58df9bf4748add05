package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/library_management/internal/models"
	"github.com/library_management/internal/repositories"
	"github.com/library_management/pkg/utils"
)

func newUserFixture(t *testing.T) (UserService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewUserService(repositories.NewGormUserRepository(db)), db
}

func TestCreateUserRequiresPassword(t *testing.T) {
	service, _ := newUserFixture(t)

	_, err := service.CreateUser(models.UserPayload{
		Username: "noPass",
		Role:     models.RoleUser,
		Status:   models.UserStatusEnabled,
	})
	assert.ErrorIs(t, err, ErrPasswordRequired)
}

func TestCreateUserHashesPassword(t *testing.T) {
	service, db := newUserFixture(t)

	user, err := service.CreateUser(models.UserPayload{
		Username: "staff",
		Password: "staff123",
		Role:     models.RoleAdmin,
		Status:   models.UserStatusEnabled,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.Equal(t, "staff@example.com", user.Email)

	stored := storedPassword(t, db, user.ID)
	assert.False(t, utils.IsPlainPassword(stored))
	assert.True(t, utils.VerifyPassword("staff123", stored))
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	service, _ := newUserFixture(t)

	payload := models.UserPayload{
		Username: "dup",
		Password: "pass",
		Role:     models.RoleUser,
		Status:   models.UserStatusEnabled,
	}
	_, err := service.CreateUser(payload)
	require.NoError(t, err)

	_, err = service.CreateUser(payload)
	assert.ErrorIs(t, err, repositories.ErrUsernameConflict)
}

func TestUpdateUserPasswordOptional(t *testing.T) {
	service, db := newUserFixture(t)
	user, err := service.CreateUser(models.UserPayload{
		Username: "someone",
		Password: "original",
		Role:     models.RoleUser,
		Status:   models.UserStatusEnabled,
	})
	require.NoError(t, err)
	before := storedPassword(t, db, user.ID)

	// 密码留空：仅更新其他字段，密码不变
	updated, err := service.UpdateUser(user.ID, models.UserPayload{
		Username: "someone",
		Role:     models.RoleUser,
		Status:   models.UserStatusDisabled,
	})
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusDisabled, updated.Status)
	assert.Equal(t, before, storedPassword(t, db, user.ID))

	// 提供新密码：重新哈希
	_, err = service.UpdateUser(user.ID, models.UserPayload{
		Username: "someone",
		Password: "renewed",
		Role:     models.RoleUser,
		Status:   models.UserStatusEnabled,
	})
	require.NoError(t, err)
	after := storedPassword(t, db, user.ID)
	assert.NotEqual(t, before, after)
	assert.True(t, utils.VerifyPassword("renewed", after))
}

func TestUpdateUserNotFound(t *testing.T) {
	service, _ := newUserFixture(t)
	_, err := service.UpdateUser(404, models.UserPayload{
		Username: "ghost",
		Role:     models.RoleUser,
		Status:   models.UserStatusEnabled,
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteUser(t *testing.T) {
	service, db := newUserFixture(t)
	user, err := service.CreateUser(models.UserPayload{
		Username: "doomed",
		Password: "pass",
		Role:     models.RoleUser,
		Status:   models.UserStatusEnabled,
	})
	require.NoError(t, err)

	require.NoError(t, service.DeleteUser(user.ID))
	assert.ErrorIs(t, service.DeleteUser(user.ID), ErrUserNotFound)

	// 软删除的记录仍在数据库中
	var count int64
	require.NoError(t, db.Unscoped().Model(&models.User{}).Where("id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
