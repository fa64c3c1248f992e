package service

import (
	"context"
	"errors"
	"io"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"wanderlog/internal/domain"
	"wanderlog/internal/repository"
)

var (
	ErrMissingStoryFields  = errors.New("title, story, visited locations, visited date and image are required")
	ErrInvalidVisitedDate  = errors.New("invalid visited date")
	ErrSearchQueryRequired = errors.New("search query is required")
)

// ImageUpload carries an inbound image payload from the transport layer.
type ImageUpload struct {
	Reader      io.Reader
	Size        int64
	ContentType string
}

// StoryService is the business-rule layer for the story lifecycle. All
// operations are scoped to the owning user, edits included; a story that
// exists under another owner is indistinguishable from one that does not
// exist.
type StoryService interface {
	Create(ctx context.Context, ownerID uuid.UUID, input domain.CreateStoryInput, image *ImageUpload) (*domain.Story, error)
	Update(ctx context.Context, ownerID, storyID uuid.UUID, input domain.UpdateStoryInput, image *ImageUpload) (*domain.Story, error)
	SetFavourite(ctx context.Context, ownerID, storyID uuid.UUID, isFavourite bool) (*domain.Story, error)
	Delete(ctx context.Context, ownerID, storyID uuid.UUID) error
	ClearImage(ctx context.Context, ownerID, storyID uuid.UUID) (*domain.Story, error)
}

type storyService struct {
	storyRepo repository.StoryRepository
	images    ImageService
	redis     *redis.Client
}

func NewStoryService(storyRepo repository.StoryRepository, images ImageService, redisClient *redis.Client) StoryService {
	return &storyService{
		storyRepo: storyRepo,
		images:    images,
		redis:     redisClient,
	}
}

func (s *storyService) Create(ctx context.Context, ownerID uuid.UUID, input domain.CreateStoryInput, image *ImageUpload) (*domain.Story, error) {
	if input.Title == "" || input.Body == "" || len(input.VisitedLocations) == 0 || input.VisitedDate == "" || image == nil {
		return nil, ErrMissingStoryFields
	}

	visitedDate, err := parseVisitedDate(input.VisitedDate)
	if err != nil {
		return nil, ErrInvalidVisitedDate
	}

	uploaded, err := s.images.Upload(ctx, image.Reader, image.Size, image.ContentType)
	if err != nil {
		return nil, err
	}

	story := &domain.Story{
		ID:               uuid.New(),
		OwnerID:          ownerID,
		Title:            input.Title,
		Body:             input.Body,
		VisitedLocations: input.VisitedLocations,
		VisitedDate:      visitedDate,
		ImageURL:         uploaded.URL,
		ImageObjectKey:   uploaded.ObjectKey,
	}

	if err := s.storyRepo.Create(ctx, story); err != nil {
		if delErr := s.images.Delete(ctx, uploaded.ObjectKey); delErr != nil {
			log.Printf("Warning: failed to remove image %s after aborted create: %v", uploaded.ObjectKey, delErr)
		}
		return nil, err
	}

	s.invalidateListCache(ctx, ownerID)
	return story, nil
}

func (s *storyService) Update(ctx context.Context, ownerID, storyID uuid.UUID, input domain.UpdateStoryInput, image *ImageUpload) (*domain.Story, error) {
	story, err := s.storyRepo.GetByOwnerAndID(ctx, ownerID, storyID)
	if err != nil {
		return nil, err
	}
	if story == nil {
		return nil, domain.ErrStoryNotFound
	}

	// Partial overwrite: empty fields keep their stored value.
	if input.Title != "" {
		story.Title = input.Title
	}
	if input.Body != "" {
		story.Body = input.Body
	}
	if len(input.VisitedLocations) > 0 {
		story.VisitedLocations = input.VisitedLocations
	}
	if input.VisitedDate != "" {
		visitedDate, err := parseVisitedDate(input.VisitedDate)
		if err != nil {
			return nil, ErrInvalidVisitedDate
		}
		story.VisitedDate = visitedDate
	}

	if image != nil {
		if story.ImageObjectKey != "" {
			if err := s.images.Delete(ctx, story.ImageObjectKey); err != nil {
				log.Printf("Warning: failed to delete replaced image %s: %v", story.ImageObjectKey, err)
			}
		}

		uploaded, err := s.images.Upload(ctx, image.Reader, image.Size, image.ContentType)
		if err != nil {
			return nil, err
		}
		story.ImageURL = uploaded.URL
		story.ImageObjectKey = uploaded.ObjectKey
	}

	if err := s.storyRepo.Update(ctx, story); err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx, ownerID)
	return story, nil
}

func (s *storyService) SetFavourite(ctx context.Context, ownerID, storyID uuid.UUID, isFavourite bool) (*domain.Story, error) {
	story, err := s.storyRepo.GetByOwnerAndID(ctx, ownerID, storyID)
	if err != nil {
		return nil, err
	}
	if story == nil {
		return nil, domain.ErrStoryNotFound
	}

	story.IsFavourite = isFavourite

	if err := s.storyRepo.Update(ctx, story); err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx, ownerID)
	return story, nil
}

func (s *storyService) Delete(ctx context.Context, ownerID, storyID uuid.UUID) error {
	story, err := s.storyRepo.GetByOwnerAndID(ctx, ownerID, storyID)
	if err != nil {
		return err
	}
	if story == nil {
		return domain.ErrStoryNotFound
	}

	// Cleanup of the hosted image is best-effort: an orphaned object is a
	// resource leak, not a reason to keep the document around.
	if story.ImageObjectKey != "" {
		if err := s.images.Delete(ctx, story.ImageObjectKey); err != nil {
			log.Printf("Warning: failed to delete image %s for story %s: %v", story.ImageObjectKey, story.ID, err)
		}
	}

	if err := s.storyRepo.Delete(ctx, ownerID, storyID); err != nil {
		return err
	}

	s.invalidateListCache(ctx, ownerID)
	return nil
}

func (s *storyService) ClearImage(ctx context.Context, ownerID, storyID uuid.UUID) (*domain.Story, error) {
	story, err := s.storyRepo.GetByOwnerAndID(ctx, ownerID, storyID)
	if err != nil {
		return nil, err
	}
	if story == nil {
		return nil, domain.ErrStoryNotFound
	}
	if story.ImageObjectKey == "" && story.ImageURL == "" {
		return story, nil
	}

	// Removing the image is the primary operation here, so a failed object
	// delete aborts before the document is touched.
	if story.ImageObjectKey != "" {
		if err := s.images.Delete(ctx, story.ImageObjectKey); err != nil {
			return nil, err
		}
	}

	story.ImageURL = ""
	story.ImageObjectKey = ""

	if err := s.storyRepo.Update(ctx, story); err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx, ownerID)
	return story, nil
}

func (s *storyService) invalidateListCache(ctx context.Context, ownerID uuid.UUID) {
	if s.redis != nil {
		_ = s.redis.Del(ctx, storyListCacheKey(ownerID)).Err()
	}
}

func storyListCacheKey(ownerID uuid.UUID) string {
	return "stories:all:" + ownerID.String()
}

// parseVisitedDate accepts the formats clients actually send: epoch
// milliseconds, RFC 3339, or a bare calendar date.
func parseVisitedDate(raw string) (time.Time, error) {
	if millis, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.UnixMilli(millis).UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
