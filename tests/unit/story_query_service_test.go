package unit_test

import (
	"context"
	"testing"
	"time"

	"wanderlog/internal/domain"
	"wanderlog/internal/service"
	"wanderlog/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestStoryQueryService_ListAll(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("Returns Owner Snapshot", func(t *testing.T) {
		mockRepo := new(mocks.StoryRepository)
		svc := service.NewStoryQueryService(mockRepo, nil)

		expected := []domain.Story{*storyFixture(ownerID)}
		mockRepo.On("ListByOwner", ctx, ownerID).Return(expected, nil).Once()

		stories, err := svc.ListAll(ctx, ownerID)

		assert.NoError(t, err)
		assert.Len(t, stories, 1)
		assert.Equal(t, ownerID, stories[0].OwnerID)
		mockRepo.AssertExpectations(t)
	})
}

func TestStoryQueryService_Search(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("Query Required", func(t *testing.T) {
		mockRepo := new(mocks.StoryRepository)
		svc := service.NewStoryQueryService(mockRepo, nil)

		stories, err := svc.Search(ctx, ownerID, "   ")

		assert.ErrorIs(t, err, service.ErrSearchQueryRequired)
		assert.Nil(t, stories)
		mockRepo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Owner Scoped Pass Through", func(t *testing.T) {
		mockRepo := new(mocks.StoryRepository)
		svc := service.NewStoryQueryService(mockRepo, nil)

		expected := []domain.Story{*storyFixture(ownerID)}
		mockRepo.On("Search", ctx, ownerID, "wall").Return(expected, nil).Once()

		stories, err := svc.Search(ctx, ownerID, "wall")

		assert.NoError(t, err)
		assert.Equal(t, expected, stories)
		mockRepo.AssertExpectations(t)
	})
}

func TestStoryQueryService_FilterByDateRange(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("Millisecond Bounds Are Inclusive Times", func(t *testing.T) {
		mockRepo := new(mocks.StoryRepository)
		svc := service.NewStoryQueryService(mockRepo, nil)

		startMillis := int64(1714521600000)
		endMillis := int64(1717200000000)
		start := time.UnixMilli(startMillis).UTC()
		end := time.UnixMilli(endMillis).UTC()

		expected := []domain.Story{*storyFixture(ownerID)}
		mockRepo.On("FilterByVisitedDateRange", ctx, ownerID, start, end).Return(expected, nil).Once()

		stories, err := svc.FilterByDateRange(ctx, ownerID, startMillis, endMillis)

		assert.NoError(t, err)
		assert.Equal(t, expected, stories)
		mockRepo.AssertExpectations(t)
	})
}
