package dto

import (
	"lodge/infras/jwt"
	userModel "lodge/internal/domains/user/model"
	userDto "lodge/internal/domains/user/model/dto"
	"lodge/shared/constant"
	gModel "lodge/shared/model"
	"strings"
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	FirstName            string `json:"first_name"            validate:"required,max=100"`
	LastName             string `json:"last_name"             validate:"required,max=100"`
	Email                string `json:"email"                 validate:"required,email,max=255"`
	Phone                string `json:"phone"                 validate:"required,phone11"`
	Password             string `json:"password"              validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

// Normalize lower-cases the email so uniqueness does not depend on casing.
func (r *RegisterRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Phone = strings.TrimSpace(r.Phone)
}

func (r *RegisterRequest) ToUserModel(hashedPassword string, now time.Time) userModel.User {
	id := uuid.NewString()

	return userModel.User{
		ID:        id,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		Password:  hashedPassword,
		Level:     constant.RoleUser,
		Active:    true,
		Metadata:  gModel.NewMetadata(id, now),
	}
}

type RegisterResponse struct {
	User userDto.UserResponse `json:"user"`
	LoginResponse
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login" json:"last_login" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.TokenType = tokenPair.TokenType
	l.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *RefreshTokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.TokenType = tokenPair.TokenType
	r.ExpiresIn = tokenPair.ExpiresIn
}

type ChangePasswordRequest struct {
	CurrentPassword         string `json:"current_password"          validate:"required"`
	NewPassword             string `json:"new_password"              validate:"required,min=8,nefield=CurrentPassword"`
	NewPasswordConfirmation string `json:"new_password_confirmation" validate:"required,eqfield=NewPassword"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password" json:"password" validate:"required,min=8"`
}

type CheckEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type CheckPhoneRequest struct {
	Phone string `json:"phone" validate:"required,phone11"`
}

type AvailabilityResponse struct {
	Available bool `json:"available"`
}

// LogoutRequest carries the token being revoked, filled from the authenticated context.
type LogoutRequest struct {
	TokenID   string
	ExpiresAt time.Time
}

type ProfileResponse = userDto.UserResponse
