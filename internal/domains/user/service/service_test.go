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
	"lodge/infras/otel/mocks"
	userMocks "lodge/internal/domains/user/mocks"
	"lodge/internal/domains/user/model"
	"lodge/internal/domains/user/model/dto"
	"lodge/internal/domains/user/service"
	"lodge/shared/cache"
	cacheMocks "lodge/shared/cache/mocks"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	gModel "lodge/shared/model"
)

type fixture struct {
	repo  *userMocks.MockUser
	cache *cacheMocks.MockRedisCache
	svc   service.User
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:  userMocks.NewMockUser(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
	}

	f.svc = service.New(f.repo, &config.Config{}, f.cache, mocks.NewOtel())

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func adminContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-id")

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)
}

func TestUserService_Get(t *testing.T) {
	lastLogin := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "cache hit",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), "user:get:user-1", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						res, _ := value.(*dto.UserResponse)
						res.ID = "user-1"
						res.Email = "ada@example.com"

						return nil
					})
			},
		},
		{
			name: "loaded from repository",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{
					ID:        "user-1",
					Email:     "ada@example.com",
					LastLogin: &lastLogin,
					Metadata:  gModel.NewMetadata("system", lastLogin),
				}, nil)
			},
		},
		{
			name: "not found",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)
			},
			wantCode: http.StatusNotFound,
			wantErr:  true,
		},
		{
			name: "repository error",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Get(context.Background(), "user-1")

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "user-1", res.ID)
			assert.Equal(t, "ada@example.com", res.Email)
		})
	}
}

func TestUserService_GetAll(t *testing.T) {
	f := newFixture(t)

	params := gDto.QueryParams{Page: 1, Limit: 2}

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).Times(2)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return([]model.User{{ID: "a"}, {ID: "b"}}, nil)

	res, err := f.svc.GetAll(context.Background(), params, gDto.FilterGroup{})

	require.NoError(t, err)
	assert.Len(t, res.Users, 2)
	assert.Equal(t, 3, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
}

func TestUserService_Update(t *testing.T) {
	admin := constant.RoleAdmin
	superadmin := constant.RoleSuperAdmin
	inactive := false
	member := model.User{ID: "user-1", Level: constant.RoleUser}

	tests := []struct {
		name      string
		id        string
		req       dto.UpdateUserRequest
		setupMock func(f fixture)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "promote user",
			id:   "user-1",
			req:  dto.UpdateUserRequest{Level: &admin},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), model.FieldID, model.FieldLevel).Return(member, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, constant.RoleAdmin, fields[model.FieldLevel])
						assert.Equal(t, "admin-id", fields[constant.FieldModifiedBy])
						assert.NotContains(t, fields, model.FieldActive)

						return nil
					})
			},
		},
		{
			name:      "empty request",
			id:        "user-1",
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusBadRequest,
			wantErr:   true,
		},
		{
			name:      "deactivating own account",
			id:        "admin-id",
			req:       dto.UpdateUserRequest{Active: &inactive},
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusBadRequest,
			wantErr:   true,
		},
		{
			name: "user missing",
			id:   "user-1",
			req:  dto.UpdateUserRequest{Active: &inactive},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), model.FieldID, model.FieldLevel).Return(model.User{}, nil)
			},
			wantCode: http.StatusNotFound,
			wantErr:  true,
		},
		{
			name: "admin cannot grant superadmin",
			id:   "user-1",
			req:  dto.UpdateUserRequest{Level: &superadmin},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), model.FieldID, model.FieldLevel).Return(member, nil)
			},
			wantCode: http.StatusForbidden,
			wantErr:  true,
		},
		{
			name: "admin cannot deactivate a superadmin",
			id:   "root-1",
			req:  dto.UpdateUserRequest{Active: &inactive},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), model.FieldID, model.FieldLevel).
					Return(model.User{ID: "root-1", Level: constant.RoleSuperAdmin}, nil)
			},
			wantCode: http.StatusForbidden,
			wantErr:  true,
		},
		{
			name: "update fails",
			id:   "user-1",
			req:  dto.UpdateUserRequest{Active: &inactive},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), model.FieldID, model.FieldLevel).Return(member, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Update(adminContext(), tt.req, tt.id)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestUserService_UpdateAsSuperadmin(t *testing.T) {
	f := newFixture(t)

	superadmin := constant.RoleSuperAdmin
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "root-id")
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleSuperAdmin)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), model.FieldID, model.FieldLevel).Return(model.User{ID: "user-1", Level: constant.RoleAdmin}, nil)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, constant.RoleSuperAdmin, fields[model.FieldLevel])

			return nil
		})

	require.NoError(t, f.svc.Update(ctx, dto.UpdateUserRequest{Level: &superadmin}, "user-1"))
}
