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
	contactMocks "lodge/internal/domains/contact/mocks"
	"lodge/internal/domains/contact/model"
	"lodge/internal/domains/contact/model/dto"
	"lodge/internal/domains/contact/service"
	clockMocks "lodge/shared/clock/mocks"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
)

var now = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*contactMocks.MockContact, service.Contact) {
	ctrl := gomock.NewController(t)
	mockRepo := contactMocks.NewMockContact(ctrl)

	return mockRepo, service.New(mockRepo, &config.Config{}, mocks.NewOtel(), clockMocks.NewClock(now))
}

func TestContactService_Create(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *contactMocks.MockContact)
		wantErr   bool
	}{
		{
			name: "stored as new",
			setupMock: func(repo *contactMocks.MockContact) {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, contact model.Contact) error {
					assert.Equal(t, model.StatusNew, contact.Status)
					assert.Equal(t, "jane@example.com", contact.Email)
					assert.Equal(t, now, contact.SubmittedAt)
					assert.Equal(t, constant.ContextGuest, contact.CreatedBy)

					return nil
				})
			},
		},
		{
			name: "repository error",
			setupMock: func(repo *contactMocks.MockContact) {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo, svc := newService(t)
			tt.setupMock(mockRepo)

			res, err := svc.Create(context.Background(), dto.CreateContactRequest{
				Name:    "Jane",
				Email:   "Jane@Example.com",
				Subject: "Wedding enquiry",
				Message: "Is the garden free in August?",
			})

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			assert.Equal(t, "Wedding enquiry", res.Subject)
		})
	}
}

func TestContactService_GetAll(t *testing.T) {
	mockRepo, svc := newService(t)

	mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(11, nil)
	mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Contact{{ID: "c-1", Status: model.StatusRead, SubmittedAt: now}}, nil)

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalPage)
	require.Len(t, res.Contacts, 1)
	assert.Equal(t, "read", res.Contacts[0].Status)
	assert.Equal(t, "2025-06-01T09:00:00Z", res.Contacts[0].SubmittedAt)
}

func TestContactService_Get(t *testing.T) {
	mockRepo, svc := newService(t)

	mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Contact{}, nil)

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestContactService_UpdateStatus(t *testing.T) {
	t.Run("marked replied", func(t *testing.T) {
		mockRepo, svc := newService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, model.StatusReplied, fields[model.FieldStatus])
			assert.Equal(t, now, fields[constant.FieldModifiedAt])

			return nil
		})

		require.NoError(t, svc.UpdateStatus(context.Background(), dto.UpdateStatusRequest{Status: "replied"}, "c-1"))
	})

	t.Run("unknown status", func(t *testing.T) {
		_, svc := newService(t)

		err := svc.UpdateStatus(context.Background(), dto.UpdateStatusRequest{Status: "pending"}, "c-1")
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unknown contact", func(t *testing.T) {
		mockRepo, svc := newService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.UpdateStatus(context.Background(), dto.UpdateStatusRequest{Status: "read"}, "missing")
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestContactService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *contactMocks.MockContact)
		wantCode  int
	}{
		{
			name: "deleted",
			setupMock: func(repo *contactMocks.MockContact) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "not found",
			setupMock: func(repo *contactMocks.MockContact) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "delete error",
			setupMock: func(repo *contactMocks.MockContact) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo, svc := newService(t)
			tt.setupMock(mockRepo)

			err := svc.Delete(context.Background(), "c-1")
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
		})
	}
}
