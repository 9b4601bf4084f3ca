// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendora/vendora-backend/internal/apperr"
	"github.com/vendora/vendora-backend/internal/models"
	"github.com/vendora/vendora-backend/internal/utils"
)

func TestRegisterCreatesUserWithWallet(t *testing.T) {
	env := newMarketplaceEnv(t)

	resp, err := env.auth.Register(&RegisterRequest{
		Username: "newseller",
		Email:    "newseller@example.com",
		Password: "TestPass123!",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.Equal(t, "newseller", resp.User.Username)
	assert.Equal(t, models.UserStatusActive, resp.User.Status)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)

	// Passwords are stored hashed.
	assert.NotEqual(t, "TestPass123!", resp.User.PasswordHash)
	assert.NoError(t, resp.User.CheckPassword("TestPass123!"))

	// A wallet exists from the start.
	assert.Zero(t, env.balance(t, resp.User.ID))

	// The issued token identifies the user.
	claims, err := utils.ValidateJWT(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID.String(), claims.UserID)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	env := newMarketplaceEnv(t)

	_, err := env.auth.Register(&RegisterRequest{
		Username: "taken",
		Email:    "taken@example.com",
		Password: "TestPass123!",
	})
	require.NoError(t, err)

	_, err = env.auth.Register(&RegisterRequest{
		Username: "someoneelse",
		Email:    "taken@example.com",
		Password: "TestPass123!",
	})
	assert.ErrorIs(t, err, apperr.ErrAlreadyExists)

	_, err = env.auth.Register(&RegisterRequest{
		Username: "taken",
		Email:    "other@example.com",
		Password: "TestPass123!",
	})
	assert.ErrorIs(t, err, apperr.ErrAlreadyExists)
}

func TestRegisterValidatesInput(t *testing.T) {
	env := newMarketplaceEnv(t)

	_, err := env.auth.Register(&RegisterRequest{
		Username: "weakling",
		Email:    "weak@example.com",
		Password: "short",
	})
	assert.Error(t, err)

	_, err = env.auth.Register(&RegisterRequest{
		Username: "bademail",
		Email:    "not-an-email",
		Password: "TestPass123!",
	})
	assert.Error(t, err)

	_, err = env.auth.Register(&RegisterRequest{
		Username: "x",
		Email:    "x@example.com",
		Password: "TestPass123!",
	})
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	env := newMarketplaceEnv(t)

	_, err := env.auth.Register(&RegisterRequest{
		Username: "returning",
		Email:    "returning@example.com",
		Password: "TestPass123!",
	})
	require.NoError(t, err)

	resp, err := env.auth.Login(&LoginRequest{Email: "returning@example.com", Password: "TestPass123!"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	require.NotNil(t, resp.User.LastLoginAt)

	_, err = env.auth.Login(&LoginRequest{Email: "returning@example.com", Password: "WrongPass123!"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.auth.Login(&LoginRequest{Email: "ghost@example.com", Password: "TestPass123!"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginBlockedWhileSuspended(t *testing.T) {
	env := newMarketplaceEnv(t)
	env.createOperator(t)

	resp, err := env.auth.Register(&RegisterRequest{
		Username: "troublemaker",
		Email:    "trouble@example.com",
		Password: "TestPass123!",
	})
	require.NoError(t, err)

	_, err = env.admin.SuspendUser(env.operatorID(), resp.User.ID)
	require.NoError(t, err)

	_, err = env.auth.Login(&LoginRequest{Email: "trouble@example.com", Password: "TestPass123!"})
	assert.ErrorIs(t, err, ErrAccountSuspended)

	_, err = env.admin.ReinstateUser(env.operatorID(), resp.User.ID)
	require.NoError(t, err)

	_, err = env.auth.Login(&LoginRequest{Email: "trouble@example.com", Password: "TestPass123!"})
	assert.NoError(t, err)
}

func TestRefreshToken(t *testing.T) {
	env := newMarketplaceEnv(t)

	resp, err := env.auth.Register(&RegisterRequest{
		Username: "refresher",
		Email:    "refresher@example.com",
		Password: "TestPass123!",
	})
	require.NoError(t, err)

	renewed, err := env.auth.RefreshToken(resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renewed.AccessToken)
	assert.Equal(t, resp.User.ID, renewed.User.ID)

	_, err = env.auth.RefreshToken("junk.token.value")
	assert.Error(t, err)
}

func TestGetProfile(t *testing.T) {
	env := newMarketplaceEnv(t)
	user := env.createUser(t, "profiled")

	got, err := env.auth.GetProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Username, got.Username)

	_, err = env.auth.GetProfile(uuid.New())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
