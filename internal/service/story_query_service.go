package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"wanderlog/internal/domain"
	"wanderlog/internal/repository"
)

// StoryQueryService exposes the read side of the journal: list, search and
// date-range filtering, all owner-scoped and sorted pinned-first.
type StoryQueryService interface {
	ListAll(ctx context.Context, ownerID uuid.UUID) ([]domain.Story, error)
	Search(ctx context.Context, ownerID uuid.UUID, query string) ([]domain.Story, error)
	FilterByDateRange(ctx context.Context, ownerID uuid.UUID, startMillis, endMillis int64) ([]domain.Story, error)
}

type storyQueryService struct {
	storyRepo repository.StoryRepository
	redis     *redis.Client
}

func NewStoryQueryService(storyRepo repository.StoryRepository, redisClient *redis.Client) StoryQueryService {
	return &storyQueryService{
		storyRepo: storyRepo,
		redis:     redisClient,
	}
}

func (s *storyQueryService) ListAll(ctx context.Context, ownerID uuid.UUID) ([]domain.Story, error) {
	cacheKey := storyListCacheKey(ownerID)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var stories []domain.Story
			if json.Unmarshal([]byte(cached), &stories) == nil {
				return stories, nil
			}
		}
	}

	stories, err := s.storyRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if storiesJSON, err := json.Marshal(stories); err == nil {
			_ = s.redis.Set(ctx, cacheKey, storiesJSON, 5*time.Minute).Err()
		}
	}

	return stories, nil
}

func (s *storyQueryService) Search(ctx context.Context, ownerID uuid.UUID, query string) ([]domain.Story, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrSearchQueryRequired
	}

	return s.storyRepo.Search(ctx, ownerID, query)
}

func (s *storyQueryService) FilterByDateRange(ctx context.Context, ownerID uuid.UUID, startMillis, endMillis int64) ([]domain.Story, error) {
	start := time.UnixMilli(startMillis).UTC()
	end := time.UnixMilli(endMillis).UTC()

	return s.storyRepo.FilterByVisitedDateRange(ctx, ownerID, start, end)
}
