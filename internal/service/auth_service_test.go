package service

import (
	"testing"
	"time"

	"lingo_edu_backend/internal/config"
	"lingo_edu_backend/internal/model"
	"lingo_edu_backend/internal/repository"
	"lingo_edu_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (*AuthService, *repository.UserRepository) {
	t.Helper()
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(userRepo, cfg), userRepo
}

func TestRegisterAndLogin(t *testing.T) {
	auth, _ := newAuthService(t)

	user := &model.User{Name: "小王", Email: "wang@example.com", Password: "password123", Role: model.RoleUser}
	require.NoError(t, auth.Register(user))
	assert.NotEqual(t, "password123", user.Password) // 落库的是哈希

	token, err := auth.Login("wang@example.com", "password123")
	require.NoError(t, err)

	claims, err := util.ParseJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, model.RoleUser, claims.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth, _ := newAuthService(t)

	require.NoError(t, auth.Register(&model.User{Name: "a", Email: "dup@example.com", Password: "password123"}))
	err := auth.Register(&model.User{Name: "b", Email: "dup@example.com", Password: "password456"})
	require.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestLoginWrongPassword(t *testing.T) {
	auth, _ := newAuthService(t)

	require.NoError(t, auth.Register(&model.User{Name: "a", Email: "a@example.com", Password: "password123"}))

	_, err := auth.Login("a@example.com", "wrong")
	require.Error(t, err)
	_, err = auth.Login("nobody@example.com", "password123")
	require.Error(t, err)
}

func TestLoginDisabledAccount(t *testing.T) {
	auth, userRepo := newAuthService(t)

	user := &model.User{Name: "a", Email: "a@example.com", Password: "password123"}
	require.NoError(t, auth.Register(user))

	user.Disabled = true
	require.NoError(t, userRepo.Update(user))

	_, err := auth.Login("a@example.com", "password123")
	require.Error(t, err)
}
