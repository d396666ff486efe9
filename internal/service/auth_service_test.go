package service

import (
	"context"
	"testing"
	"time"

	"piscopy/internal/dto"
	"piscopy/internal/repository"
	"piscopy/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthService(t *testing.T) (*fakeStore, *AuthService) {
	t.Helper()
	fake, client := newFakeStore(t)
	repo := repository.NewUserRepository(client, zap.NewNop())
	jwtManager := auth.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	return fake, NewAuthService(repo, jwtManager, zap.NewNop())
}

func registerStaff(t *testing.T, svc *AuthService) *dto.AuthResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "staff01",
		Email:    "staff@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	return resp
}

func TestRegisterAndLogin(t *testing.T) {
	_, svc := newAuthService(t)
	registered := registerStaff(t, svc)
	assert.NotEmpty(t, registered.AccessToken)
	assert.Equal(t, "staff01", registered.User.Username)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "staff@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	_, svc := newAuthService(t)
	registerStaff(t, svc)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "staff02",
		Email:    "staff@example.com",
		Password: "another-pass",
	})
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestLogin_WrongPassword(t *testing.T) {
	_, svc := newAuthService(t)
	registerStaff(t, svc)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "staff@example.com",
		Password: "wrong-pass",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	_, svc := newAuthService(t)
	registerStaff(t, svc)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "s3cret-pass",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_StoreOutageIsNotInvalidCredentials(t *testing.T) {
	fake, svc := newAuthService(t)
	registerStaff(t, svc)

	fake.setFail(true)
	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "staff@example.com",
		Password: "s3cret-pass",
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}
