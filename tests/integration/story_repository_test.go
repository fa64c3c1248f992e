//go:build integration
// +build integration

package integration_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wanderlog/internal/domain"
	"wanderlog/internal/repository"
)

func seedStory(t *testing.T, repo repository.StoryRepository, ownerID uuid.UUID, title string, locations []string, visited time.Time, favourite bool) *domain.Story {
	t.Helper()
	story := &domain.Story{
		ID:               uuid.New(),
		OwnerID:          ownerID,
		Title:            title,
		Body:             "Some travel notes about " + title,
		VisitedLocations: locations,
		VisitedDate:      visited,
		ImageURL:         "https://cdn.example.com/wanderlog-images/stories/test",
		ImageObjectKey:   "stories/test/" + testObjectKey(title),
		IsFavourite:      favourite,
	}
	require.NoError(t, repo.Create(context.Background(), story))
	return story
}

func testObjectKey(title string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(title)).String()
}

func TestStoryRepository_SearchIsCaseInsensitive(t *testing.T) {
	env := SetupTestEnv(t)
	defer env.Teardown()

	repo := repository.NewStoryRepository(env.DB)
	ctx := context.Background()
	ownerID := uuid.New()
	visited := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	wall := seedStory(t, repo, ownerID, "A Day at the Great Wall", []string{"Beijing"}, visited, false)
	seedStory(t, repo, ownerID, "Beach Trip", []string{"Bali"}, visited, false)

	for _, query := range []string{"wall", "WALL"} {
		stories, err := repo.Search(ctx, ownerID, query)
		require.NoError(t, err)
		require.Len(t, stories, 1, "query %q", query)
		assert.Equal(t, wall.ID, stories[0].ID)
	}
}

func TestStoryRepository_SearchMatchesLocations(t *testing.T) {
	env := SetupTestEnv(t)
	defer env.Teardown()

	repo := repository.NewStoryRepository(env.DB)
	ctx := context.Background()
	ownerID := uuid.New()
	visited := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	bali := seedStory(t, repo, ownerID, "Beach Trip", []string{"Bali", "Uluwatu"}, visited, false)
	seedStory(t, repo, ownerID, "City Break", []string{"Lisbon"}, visited, false)

	stories, err := repo.Search(ctx, ownerID, "uluwatu")
	require.NoError(t, err)
	require.Len(t, stories, 1)
	assert.Equal(t, bali.ID, stories[0].ID)
}

func TestStoryRepository_SearchIsOwnerScoped(t *testing.T) {
	env := SetupTestEnv(t)
	defer env.Teardown()

	repo := repository.NewStoryRepository(env.DB)
	ctx := context.Background()
	owner := uuid.New()
	other := uuid.New()
	visited := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	seedStory(t, repo, other, "A Day at the Great Wall", []string{"Beijing"}, visited, false)

	stories, err := repo.Search(ctx, owner, "wall")
	require.NoError(t, err)
	assert.Empty(t, stories)
}

func TestStoryRepository_FilterByVisitedDateRangeIsInclusive(t *testing.T) {
	env := SetupTestEnv(t)
	defer env.Teardown()

	repo := repository.NewStoryRepository(env.DB)
	ctx := context.Background()
	ownerID := uuid.New()

	t0 := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	t1 := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	atStart := seedStory(t, repo, ownerID, "At Start", []string{"A"}, t0, false)
	atEnd := seedStory(t, repo, ownerID, "At End", []string{"B"}, t1, false)
	seedStory(t, repo, ownerID, "Before", []string{"C"}, t0.Add(-time.Hour), false)
	seedStory(t, repo, ownerID, "After", []string{"D"}, t1.Add(time.Hour), false)

	stories, err := repo.FilterByVisitedDateRange(ctx, ownerID, t0, t1)
	require.NoError(t, err)
	require.Len(t, stories, 2)

	found := map[uuid.UUID]bool{}
	for _, s := range stories {
		found[s.ID] = true
	}
	assert.True(t, found[atStart.ID])
	assert.True(t, found[atEnd.ID])
}

func TestStoryRepository_ListByOwnerSortsPinnedFirst(t *testing.T) {
	env := SetupTestEnv(t)
	defer env.Teardown()

	repo := repository.NewStoryRepository(env.DB)
	ctx := context.Background()
	ownerID := uuid.New()
	visited := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	first := seedStory(t, repo, ownerID, "Oldest", []string{"A"}, visited, false)
	pinned := seedStory(t, repo, ownerID, "Pinned", []string{"B"}, visited, true)
	last := seedStory(t, repo, ownerID, "Newest", []string{"C"}, visited, false)

	// Control created_on explicitly so the secondary order is deterministic.
	base := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	for i, s := range []*domain.Story{first, pinned, last} {
		_, err := env.DB.Exec("UPDATE stories SET created_on = $1 WHERE story_id = $2", base.Add(time.Duration(i)*time.Minute), s.ID)
		require.NoError(t, err)
	}

	stories, err := repo.ListByOwner(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, stories, 3)

	assert.Equal(t, pinned.ID, stories[0].ID)
	assert.Equal(t, last.ID, stories[1].ID)
	assert.Equal(t, first.ID, stories[2].ID)
}

func TestStoryRepository_DeleteIsOwnerScoped(t *testing.T) {
	env := SetupTestEnv(t)
	defer env.Teardown()

	repo := repository.NewStoryRepository(env.DB)
	ctx := context.Background()
	owner := uuid.New()
	other := uuid.New()
	visited := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	story := seedStory(t, repo, owner, "Mine", []string{"A"}, visited, false)

	err := repo.Delete(ctx, other, story.ID)
	assert.ErrorIs(t, err, domain.ErrStoryNotFound)

	require.NoError(t, repo.Delete(ctx, owner, story.ID))

	err = repo.Delete(ctx, owner, story.ID)
	assert.ErrorIs(t, err, domain.ErrStoryNotFound)
}
