package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"lodge/config"
	"lodge/infras/otel"
	"lodge/infras/s3"
	"lodge/internal/domains/media/model/dto"
	"lodge/shared/constant"
	"mime/multipart"

	"github.com/rs/zerolog/log"
)

var ErrDeleteImages = errors.New("failed to delete images from object storage")

// Media stores catalogue photos in object storage. Room and venue records keep only the URLs.
type Media interface {
	UploadImage(ctx context.Context, req dto.UploadImageRequest) (dto.UploadImageResponse, error)
	DeleteImages(ctx context.Context, req dto.DeleteImagesRequest) error
	Store(ctx context.Context, directory string, file multipart.File, header *multipart.FileHeader) (string, error)
	Remove(ctx context.Context, directory, url string) error
}

type serviceImpl struct {
	cfg  *config.Config
	otel otel.Otel
	s3   s3.S3
}

func New(cfg *config.Config, otel otel.Otel, s3 s3.S3) Media {
	return &serviceImpl{
		cfg:  cfg,
		otel: otel,
		s3:   s3,
	}
}

func (s *serviceImpl) UploadImage(ctx context.Context, req dto.UploadImageRequest) (res dto.UploadImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	url, err := s.Store(ctx, req.Directory, req.ImageFile, req.Image)
	if err != nil {
		return res, err
	}

	res.FromUpload(url, req.Image.Filename)

	return res, nil
}

func (s *serviceImpl) DeleteImages(ctx context.Context, req dto.DeleteImagesRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteImages")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var failed int

	for _, imageURL := range req.ImageURLs {
		if err := s.Remove(ctx, req.Directory, imageURL); err != nil {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d images", ErrDeleteImages, failed)
	}

	return nil
}

// Store uploads a form file under directory with a generated name and returns its public URL.
func (s *serviceImpl) Store(ctx context.Context, directory string, file multipart.File, header *multipart.FileHeader) (url string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Store")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	url, err = s.s3.UploadFile(ctx, s.cfg.External.S3.BucketName, directory, file, header, s3.NewObjectName(header.Filename))
	if err != nil {
		log.Error().Err(err).Str("directory", directory).Msg("failed to upload image")

		return constant.Empty, fmt.Errorf("failed to upload image: %w", err)
	}

	return url, nil
}

// Remove deletes the object behind url. URLs outside directory are ignored.
func (s *serviceImpl) Remove(ctx context.Context, directory, url string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Remove")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	objectName := s.s3.GetObjectNameFromURL(directory, url)
	if objectName == constant.Empty {
		log.Warn().Str("url", url).Msg("failed to extract object name from URL")

		return nil
	}

	if err = s.s3.DeleteFile(ctx, s.cfg.External.S3.BucketName, directory, objectName); err != nil {
		log.Error().Err(err).Str("objectName", objectName).Msg("failed to delete image")

		return fmt.Errorf("failed to delete image: %w", err)
	}

	return nil
}
