package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"wanderlog/internal/domain"
)

// StoryRepository owns persistence and query execution for the stories
// collection. Every operation is scoped to the owning user; business rules
// live in the service layer.
type StoryRepository interface {
	Create(ctx context.Context, story *domain.Story) error
	GetByOwnerAndID(ctx context.Context, ownerID, storyID uuid.UUID) (*domain.Story, error)
	Update(ctx context.Context, story *domain.Story) error
	Delete(ctx context.Context, ownerID, storyID uuid.UUID) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Story, error)
	Search(ctx context.Context, ownerID uuid.UUID, query string) ([]domain.Story, error)
	FilterByVisitedDateRange(ctx context.Context, ownerID uuid.UUID, start, end time.Time) ([]domain.Story, error)
}

type storyRepository struct {
	db *sqlx.DB
}

func NewStoryRepository(db *sqlx.DB) StoryRepository {
	return &storyRepository{db: db}
}

func (r *storyRepository) Create(ctx context.Context, story *domain.Story) error {
	query := `
		INSERT INTO stories (story_id, owner_id, title, body, visited_locations, visited_date, image_url, image_object_key, is_favourite)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_on`

	return r.db.QueryRowxContext(ctx, query,
		story.ID, story.OwnerID, story.Title, story.Body,
		story.VisitedLocations, story.VisitedDate,
		story.ImageURL, story.ImageObjectKey, story.IsFavourite,
	).Scan(&story.CreatedOn)
}

func (r *storyRepository) GetByOwnerAndID(ctx context.Context, ownerID, storyID uuid.UUID) (*domain.Story, error) {
	var story domain.Story
	query := `SELECT * FROM stories WHERE story_id = $1 AND owner_id = $2`

	err := r.db.GetContext(ctx, &story, query, storyID, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &story, nil
}

func (r *storyRepository) Update(ctx context.Context, story *domain.Story) error {
	query := `
		UPDATE stories
		SET title = :title, body = :body, visited_locations = :visited_locations,
			visited_date = :visited_date, image_url = :image_url,
			image_object_key = :image_object_key, is_favourite = :is_favourite
		WHERE story_id = :story_id AND owner_id = :owner_id`

	_, err := r.db.NamedExecContext(ctx, query, story)
	return err
}

func (r *storyRepository) Delete(ctx context.Context, ownerID, storyID uuid.UUID) error {
	query := `DELETE FROM stories WHERE story_id = $1 AND owner_id = $2`

	result, err := r.db.ExecContext(ctx, query, storyID, ownerID)
	if err != nil {
		return err
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return domain.ErrStoryNotFound
	}
	return nil
}

func (r *storyRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Story, error) {
	var stories []domain.Story
	query := `
		SELECT * FROM stories
		WHERE owner_id = $1
		ORDER BY is_favourite DESC, created_on DESC`

	err := r.db.SelectContext(ctx, &stories, query, ownerID)
	return stories, err
}

func (r *storyRepository) Search(ctx context.Context, ownerID uuid.UUID, query string) ([]domain.Story, error) {
	var stories []domain.Story
	sqlQuery := `
		SELECT * FROM stories
		WHERE owner_id = $1
			AND (
				title ILIKE '%' || $2 || '%'
				OR body ILIKE '%' || $2 || '%'
				OR EXISTS (
					SELECT 1 FROM unnest(visited_locations) AS loc
					WHERE loc ILIKE '%' || $2 || '%'
				)
			)
		ORDER BY is_favourite DESC, created_on DESC`

	err := r.db.SelectContext(ctx, &stories, sqlQuery, ownerID, query)
	return stories, err
}

func (r *storyRepository) FilterByVisitedDateRange(ctx context.Context, ownerID uuid.UUID, start, end time.Time) ([]domain.Story, error) {
	var stories []domain.Story
	query := `
		SELECT * FROM stories
		WHERE owner_id = $1 AND visited_date BETWEEN $2 AND $3
		ORDER BY is_favourite DESC, created_on DESC`

	err := r.db.SelectContext(ctx, &stories, query, ownerID, start, end)
	return stories, err
}
