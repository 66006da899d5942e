package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lodge/config"
	"lodge/infras/otel/mocks"
	s3Mocks "lodge/infras/s3/mocks"
	"lodge/internal/domains/media/model/dto"
	"lodge/internal/domains/media/service"
)

func newService(t *testing.T) (service.Media, *s3Mocks.MockS3) {
	ctrl := gomock.NewController(t)
	storage := s3Mocks.NewMockS3(ctrl)

	cfg := &config.Config{}
	cfg.External.S3.BucketName = "lodge"

	return service.New(cfg, mocks.NewOtel(), storage), storage
}

func TestMediaService_UploadImage(t *testing.T) {
	header := &multipart.FileHeader{Filename: "Suite.PNG", Size: 1024}

	tests := []struct {
		name      string
		setupMock func(storage *s3Mocks.MockS3)
		wantErr   bool
	}{
		{
			name: "stored under a generated name",
			setupMock: func(storage *s3Mocks.MockS3) {
				storage.EXPECT().
					UploadFile(gomock.Any(), "lodge", "rooms", gomock.Any(), header, gomock.Any()).
					DoAndReturn(func(_ context.Context, _, _ string, _ multipart.File, _ *multipart.FileHeader, name string) (string, error) {
						assert.True(t, strings.HasSuffix(name, ".png"))
						assert.NotEqual(t, "Suite.PNG", name)

						return "https://cdn.example.com/rooms/" + name, nil
					})
			},
		},
		{
			name: "upload fails",
			setupMock: func(storage *s3Mocks.MockS3) {
				storage.EXPECT().
					UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", errors.New("bucket unreachable"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, storage := newService(t)
			tt.setupMock(storage)

			res, err := svc.UploadImage(context.Background(), dto.UploadImageRequest{Directory: "rooms", Image: header})

			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(res.URL, "https://cdn.example.com/rooms/"))
			assert.Equal(t, "Suite.PNG", res.FileName)
		})
	}
}

func TestMediaService_DeleteImages(t *testing.T) {
	urls := []string{"https://cdn.example.com/rooms/a.png", "https://cdn.example.com/rooms/b.png", "https://elsewhere.com/c.png"}

	tests := []struct {
		name      string
		setupMock func(storage *s3Mocks.MockS3)
		wantErr   bool
	}{
		{
			name: "foreign urls are skipped",
			setupMock: func(storage *s3Mocks.MockS3) {
				storage.EXPECT().GetObjectNameFromURL("rooms", urls[0]).Return("a.png")
				storage.EXPECT().GetObjectNameFromURL("rooms", urls[1]).Return("b.png")
				storage.EXPECT().GetObjectNameFromURL("rooms", urls[2]).Return("")
				storage.EXPECT().DeleteFile(gomock.Any(), "lodge", "rooms", "a.png").Return(nil)
				storage.EXPECT().DeleteFile(gomock.Any(), "lodge", "rooms", "b.png").Return(nil)
			},
		},
		{
			name: "partial failure is reported",
			setupMock: func(storage *s3Mocks.MockS3) {
				storage.EXPECT().GetObjectNameFromURL("rooms", gomock.Any()).Return("a.png").Times(3)
				storage.EXPECT().DeleteFile(gomock.Any(), "lodge", "rooms", "a.png").Return(nil).Times(2)
				storage.EXPECT().DeleteFile(gomock.Any(), "lodge", "rooms", "a.png").Return(errors.New("denied"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, storage := newService(t)
			tt.setupMock(storage)

			err := svc.DeleteImages(context.Background(), dto.DeleteImagesRequest{Directory: "rooms", ImageURLs: urls})

			if tt.wantErr {
				require.ErrorIs(t, err, service.ErrDeleteImages)

				return
			}

			require.NoError(t, err)
		})
	}
}
