package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lodge/config"
	"lodge/infras/jwt"
	jwtMocks "lodge/infras/jwt/mocks"
	"lodge/infras/otel/mocks"
	"lodge/internal/domains/auth/model/dto"
	"lodge/internal/domains/auth/service"
	userMocks "lodge/internal/domains/user/mocks"
	userModel "lodge/internal/domains/user/model"
	"lodge/shared/cache"
	cacheMocks "lodge/shared/cache/mocks"
	clockMocks "lodge/shared/clock/mocks"
	"lodge/shared/constant"
	"lodge/shared/failure"
	gModel "lodge/shared/model"
)

// bcrypt hash of "password"
const passwordHash = "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi"

var now = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	userRepo *userMocks.MockUser
	jwt      *jwtMocks.MockJWT
	cache    *cacheMocks.MockRedisCache
	svc      service.Auth
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		userRepo: userMocks.NewMockUser(ctrl),
		jwt:      jwtMocks.NewMockJWT(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.JWT.AccessExpireMin = 15

	f.svc = service.New(f.userRepo, cfg, f.cache, mocks.NewOtel(), f.jwt, clockMocks.NewClock(now))

	// cache invalidation runs in a goroutine after register
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func activeUser() userModel.User {
	return userModel.User{
		ID:        "user-id-123",
		FirstName: "Test",
		LastName:  "User",
		Email:     "test@example.com",
		Phone:     "08123456789",
		Password:  passwordHash,
		Level:     constant.RoleUser,
		Active:    true,
		Metadata:  gModel.NewMetadata("system", now),
	}
}

func tokenPair() *jwt.TokenPair {
	return &jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token", TokenType: "Bearer", ExpiresIn: 900}
}

func TestAuthService_Register(t *testing.T) {
	req := dto.RegisterRequest{
		FirstName:            "Ada",
		LastName:             "Lovelace",
		Email:                " Ada@Example.com ",
		Phone:                "08123456789",
		Password:             "password123",
		PasswordConfirmation: "password123",
	}

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "successful registration",
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil).Times(2)
				f.userRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user userModel.User) error {
						assert.Equal(t, "ada@example.com", user.Email)
						assert.Equal(t, constant.RoleUser, user.Level)
						assert.True(t, user.Active)
						assert.NotEqual(t, "password123", user.Password)
						assert.Equal(t, now, user.CreatedAt)

						return nil
					})
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), "ada@example.com", constant.RoleUser).Return(tokenPair(), nil)
			},
		},
		{
			name: "email already registered",
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
			wantErr:  true,
		},
		{
			name: "phone already registered",
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
			wantErr:  true,
		},
		{
			name: "insert fails",
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil).Times(2)
				f.userRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Register(context.Background(), req)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "ada@example.com", res.User.Email)
			assert.Equal(t, "access-token", res.AccessToken)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	inactive := activeUser()
	inactive.Active = false

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(f fixture)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func(f fixture) {
				user := activeUser()
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), user.ID, user.Email, user.Level).Return(tokenPair(), nil)
				f.userRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "last login update failure does not block login",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeUser(), nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(tokenPair(), nil)
				f.userRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("timeout"))
			},
		},
		{
			name: "unknown email",
			req:  dto.LoginRequest{Email: "nobody@example.com", Password: "password"},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusUnauthorized,
			wantErr:  true,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "wrong-password"},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeUser(), nil)
			},
			wantCode: http.StatusUnauthorized,
			wantErr:  true,
		},
		{
			name: "inactive account",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactive, nil)
			},
			wantCode: http.StatusForbidden,
			wantErr:  true,
		},
		{
			name: "repository error",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Login(context.Background(), tt.req)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "access-token", res.AccessToken)
			assert.Equal(t, "refresh-token", res.RefreshToken)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	f := newFixture(t)

	f.jwt.EXPECT().RefreshTokens(gomock.Any(), "good").Return(tokenPair(), nil)
	f.jwt.EXPECT().RefreshTokens(gomock.Any(), "bad").Return(nil, jwt.ErrInvalidToken)

	res, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "good"})
	require.NoError(t, err)
	assert.Equal(t, "access-token", res.AccessToken)

	_, err = f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "bad"})
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
}

func TestAuthService_Logout(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.LogoutRequest
		setupMock func(f fixture)
		wantErr   bool
	}{
		{
			name: "revokes until expiry",
			req:  dto.LogoutRequest{TokenID: "tok-1", ExpiresAt: now.Add(10 * time.Minute)},
			setupMock: func(f fixture) {
				f.cache.EXPECT().Save(gomock.Any(), "auth:revoked:tok-1", "1", 600).Return(nil)
			},
		},
		{
			name: "falls back to access token lifetime",
			req:  dto.LogoutRequest{TokenID: "tok-2"},
			setupMock: func(f fixture) {
				f.cache.EXPECT().Save(gomock.Any(), "auth:revoked:tok-2", "1", 900).Return(nil)
			},
		},
		{
			name:      "already expired token needs no entry",
			req:       dto.LogoutRequest{TokenID: "tok-3", ExpiresAt: now.Add(-time.Minute)},
			setupMock: func(_ fixture) {},
		},
		{
			name:      "missing token id",
			req:       dto.LogoutRequest{},
			setupMock: func(_ fixture) {},
			wantErr:   true,
		},
		{
			name: "cache failure",
			req:  dto.LogoutRequest{TokenID: "tok-4", ExpiresAt: now.Add(time.Minute)},
			setupMock: func(f fixture) {
				f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Logout(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestAuthService_IsRevoked(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), "auth:revoked:gone", gomock.Any()).Return(nil)
	f.cache.EXPECT().Get(gomock.Any(), "auth:revoked:live", gomock.Any()).Return(cache.Nil)
	f.cache.EXPECT().Get(gomock.Any(), "auth:revoked:oops", gomock.Any()).Return(errors.New("redis down"))

	revoked, err := f.svc.IsRevoked(context.Background(), "gone")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = f.svc.IsRevoked(context.Background(), "live")
	require.NoError(t, err)
	assert.False(t, revoked)

	_, err = f.svc.IsRevoked(context.Background(), "oops")
	assert.Error(t, err)
}

func TestAuthService_Me(t *testing.T) {
	f := newFixture(t)

	f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeUser(), nil)
	f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)

	res, err := f.svc.Me(context.Background(), "user-id-123")
	require.NoError(t, err)
	assert.Equal(t, "Test", res.FirstName)
	assert.Equal(t, "08123456789", res.Phone)

	_, err = f.svc.Me(context.Background(), "missing")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestAuthService_CheckEmailAndPhone(t *testing.T) {
	f := newFixture(t)

	f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

	res, err := f.svc.CheckEmail(context.Background(), dto.CheckEmailRequest{Email: "test@example.com"})
	require.NoError(t, err)
	assert.False(t, res.Available)

	res, err = f.svc.CheckPhone(context.Background(), dto.CheckPhoneRequest{Phone: "08999999999"})
	require.NoError(t, err)
	assert.True(t, res.Available)
}

func TestAuthService_ChangePassword(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.ChangePasswordRequest
		setupMock func(f fixture)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "successful change",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "new-password", NewPasswordConfirmation: "new-password"},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeUser(), nil)
				f.userRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						assert.NotEqual(t, "new-password", fields["password"])
						assert.Equal(t, "user-id-123", fields[constant.FieldModifiedBy])

						return nil
					})
			},
		},
		{
			name: "wrong current password",
			req:  dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "new-password", NewPasswordConfirmation: "new-password"},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeUser(), nil)
			},
			wantCode: http.StatusBadRequest,
			wantErr:  true,
		},
		{
			name: "user not found",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "new-password", NewPasswordConfirmation: "new-password"},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusNotFound,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-id-123")
			err := f.svc.ChangePassword(ctx, tt.req, "user-id-123")

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}
