package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/humzahanif/Advanced-Translation-Agent/internal/service"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc := service.NewAuthService(newSettingsRepoStub())
	ctx := context.Background()

	exists, err := svc.CheckUserExists(ctx)
	require.NoError(t, err)
	require.False(t, exists)

	resp, err := svc.Register(ctx, "alice", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "alice", resp.User.Username)

	exists, err = svc.CheckUserExists(ctx)
	require.NoError(t, err)
	require.True(t, exists)

	valid, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	require.True(t, valid)

	login, err := svc.Login(ctx, "alice", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, login.Token)

	user, err := svc.GetCurrentUser(ctx)
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := service.NewAuthService(newSettingsRepoStub())
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "secret123")
	require.ErrorIs(t, err, service.ErrUsernameRequired)

	_, err = svc.Register(ctx, "alice", "")
	require.ErrorIs(t, err, service.ErrPasswordRequired)

	_, err = svc.Register(ctx, "alice", "short")
	require.ErrorIs(t, err, service.ErrPasswordTooShort)
}

func TestAuthService_Register_OnlyOnce(t *testing.T) {
	svc := service.NewAuthService(newSettingsRepoStub())
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "secret123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "bob", "secret456")
	require.ErrorIs(t, err, service.ErrUserExists)
}

func TestAuthService_Login_Failures(t *testing.T) {
	svc := service.NewAuthService(newSettingsRepoStub())
	ctx := context.Background()

	_, err := svc.Login(ctx, "alice", "secret123")
	require.ErrorIs(t, err, service.ErrUserNotFound)

	_, err = svc.Register(ctx, "alice", "secret123")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice", "wrongpass")
	require.ErrorIs(t, err, service.ErrInvalidPassword)

	_, err = svc.Login(ctx, "mallory", "secret123")
	require.ErrorIs(t, err, service.ErrInvalidPassword)
}

func TestAuthService_ValidateToken_Garbage(t *testing.T) {
	svc := service.NewAuthService(newSettingsRepoStub())

	valid, err := svc.ValidateToken("not.a.token")
	require.Error(t, err)
	require.False(t, valid)

	_, err = svc.Register(context.Background(), "alice", "secret123")
	require.NoError(t, err)

	valid, err = svc.ValidateToken("still.not.valid")
	require.Error(t, err)
	require.False(t, valid)
}
