package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"wanderlog/internal/domain"
)

type ImageService struct {
	mock.Mock
}

func (m *ImageService) Upload(ctx context.Context, reader io.Reader, size int64, contentType string) (*domain.UploadedImage, error) {
	args := m.Called(ctx, reader, size, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UploadedImage), args.Error(1)
}

func (m *ImageService) Delete(ctx context.Context, objectKey string) error {
	args := m.Called(ctx, objectKey)
	return args.Error(0)
}

func (m *ImageService) PublicURL(objectKey string) string {
	args := m.Called(objectKey)
	return args.String(0)
}
