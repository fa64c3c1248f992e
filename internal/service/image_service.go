package service

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"wanderlog/internal/config"
	"wanderlog/internal/domain"
)

// ImageService wraps the object store holding story photos. It never decides
// whether a delete failure is fatal; that call is left to the caller.
type ImageService interface {
	Upload(ctx context.Context, reader io.Reader, size int64, contentType string) (*domain.UploadedImage, error)
	Delete(ctx context.Context, objectKey string) error
	PublicURL(objectKey string) string
}

type imageService struct {
	minioClient *minio.Client
	cfg         *config.Config
}

func NewImageService(minioClient *minio.Client, cfg *config.Config) ImageService {
	return &imageService{
		minioClient: minioClient,
		cfg:         cfg,
	}
}

func (s *imageService) Upload(ctx context.Context, reader io.Reader, size int64, contentType string) (*domain.UploadedImage, error) {
	objectKey := fmt.Sprintf("stories/%s/%s", time.Now().Format("2006/01"), uuid.New().String())

	_, err := s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, objectKey, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	return &domain.UploadedImage{
		URL:       s.PublicURL(objectKey),
		ObjectKey: objectKey,
	}, nil
}

func (s *imageService) Delete(ctx context.Context, objectKey string) error {
	return s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, objectKey, minio.RemoveObjectOptions{})
}

func (s *imageService) PublicURL(objectKey string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, url.PathEscape(objectKey))
}
