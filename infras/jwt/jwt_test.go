package jwt_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lodge/config"
	"lodge/infras/jwt"
	"lodge/infras/otel/mocks"
)

func newService(accessMin int) jwt.JWT {
	cfg := &config.Config{}
	cfg.App.Name = "lodge"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = accessMin
	cfg.JWT.RefreshExpireMin = 60

	return jwt.New(cfg, mocks.NewOtel())
}

func TestGenerateAndValidate(t *testing.T) {
	ctx := context.Background()
	svc := newService(15)

	pair, err := svc.GenerateTokenPair(ctx, "user-1", "a@b.c", "user")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	claims, err := svc.ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@b.c", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.NotEmpty(t, claims.TokenID)
	assert.NotNil(t, claims.ExpiresAt)

	_, err = svc.ValidateToken(ctx, pair.RefreshToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	_, err = svc.ValidateToken(ctx, "not-a-token", jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestExpiredToken(t *testing.T) {
	ctx := context.Background()
	svc := newService(-1)

	pair, err := svc.GenerateTokenPair(ctx, "user-1", "a@b.c", "user")
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrExpiredToken)
}

func TestRefreshTokens(t *testing.T) {
	ctx := context.Background()
	svc := newService(15)

	pair, err := svc.GenerateTokenPair(ctx, "user-1", "a@b.c", "admin")
	require.NoError(t, err)

	refreshed, err := svc.RefreshTokens(ctx, pair.RefreshToken)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(ctx, refreshed.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)

	_, err = svc.RefreshTokens(ctx, pair.AccessToken)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := jwt.ExtractTokenFromHeader("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	_, err = jwt.ExtractTokenFromHeader("Basic abc")
	assert.Error(t, err)

	_, err = jwt.ExtractTokenFromHeader("")
	assert.Error(t, err)
}

func TestValidateToken_Issuer(t *testing.T) {
	ctx := context.Background()

	pair, err := newService(15).GenerateTokenPair(ctx, "user-1", "a@b.c", "user")
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.App.Name = "another-service"
	cfg.JWT.AccessSecret = "access-secret"

	_, err = jwt.New(cfg, mocks.NewOtel()).ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestExtractTokenFromHeader_Errors(t *testing.T) {
	_, err := jwt.ExtractTokenFromHeader("")
	assert.ErrorIs(t, err, jwt.ErrMissingHeader)

	_, err = jwt.ExtractTokenFromHeader("Bearer ")
	assert.ErrorIs(t, err, jwt.ErrMalformedHeader)

	_, err = jwt.ExtractTokenFromHeader("Token abc")
	assert.ErrorIs(t, err, jwt.ErrMalformedHeader)
}
