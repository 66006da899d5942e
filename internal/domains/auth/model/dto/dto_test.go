package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"lodge/infras/jwt"
	"lodge/internal/domains/auth/model/dto"
	"lodge/shared/constant"
)

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.Equal(t, int64(900), response.ExpiresIn)
}

func TestRefreshTokenResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "new-access-token",
		RefreshToken: "new-refresh-token",
	}

	var response dto.RefreshTokenResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
}

func TestRegisterRequest_ToUserModel(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	req := dto.RegisterRequest{
		FirstName: " Grace ",
		LastName:  "Hopper",
		Email:     " Grace@Navy.MIL",
		Phone:     "08123456789 ",
	}
	req.Normalize()

	user := req.ToUserModel("hashed", now)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Grace", user.FirstName)
	assert.Equal(t, "grace@navy.mil", user.Email)
	assert.Equal(t, "08123456789", user.Phone)
	assert.Equal(t, "hashed", user.Password)
	assert.Equal(t, constant.RoleUser, user.Level)
	assert.True(t, user.Active)
	assert.Equal(t, user.ID, user.CreatedBy)
	assert.Equal(t, now, user.ModifiedAt)
	assert.Equal(t, "Grace Hopper", user.FullName())
}
