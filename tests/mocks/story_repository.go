package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"wanderlog/internal/domain"
)

type StoryRepository struct {
	mock.Mock
}

func (m *StoryRepository) Create(ctx context.Context, story *domain.Story) error {
	args := m.Called(ctx, story)
	return args.Error(0)
}

func (m *StoryRepository) GetByOwnerAndID(ctx context.Context, ownerID, storyID uuid.UUID) (*domain.Story, error) {
	args := m.Called(ctx, ownerID, storyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Story), args.Error(1)
}

func (m *StoryRepository) Update(ctx context.Context, story *domain.Story) error {
	args := m.Called(ctx, story)
	return args.Error(0)
}

func (m *StoryRepository) Delete(ctx context.Context, ownerID, storyID uuid.UUID) error {
	args := m.Called(ctx, ownerID, storyID)
	return args.Error(0)
}

func (m *StoryRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Story, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Story), args.Error(1)
}

func (m *StoryRepository) Search(ctx context.Context, ownerID uuid.UUID, query string) ([]domain.Story, error) {
	args := m.Called(ctx, ownerID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Story), args.Error(1)
}

func (m *StoryRepository) FilterByVisitedDateRange(ctx context.Context, ownerID uuid.UUID, start, end time.Time) ([]domain.Story, error) {
	args := m.Called(ctx, ownerID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Story), args.Error(1)
}
