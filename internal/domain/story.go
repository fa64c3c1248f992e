package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrStoryNotFound = errors.New("story not found")
)

// Story is a single travel-journal entry. Every story belongs to exactly
// one owner and carries at most one image hosted in the object store; the
// object key is stored alongside the URL so the image can be addressed
// without parsing the URL back apart.
type Story struct {
	ID               uuid.UUID      `json:"id" db:"story_id"`
	OwnerID          uuid.UUID      `json:"owner_id" db:"owner_id"`
	Title            string         `json:"title" db:"title"`
	Body             string         `json:"story" db:"body"`
	VisitedLocations pq.StringArray `json:"visited_locations" db:"visited_locations"`
	VisitedDate      time.Time      `json:"visited_date" db:"visited_date"`
	ImageURL         string         `json:"image_url" db:"image_url"`
	ImageObjectKey   string         `json:"-" db:"image_object_key"`
	IsFavourite      bool           `json:"is_favourite" db:"is_favourite"`
	CreatedOn        time.Time      `json:"created_on" db:"created_on"`
}

type CreateStoryInput struct {
	Title            string   `json:"title" form:"title"`
	Body             string   `json:"story" form:"story"`
	VisitedLocations []string `json:"visited_locations" form:"visited_locations"`
	VisitedDate      string   `json:"visited_date" form:"visited_date"`
}

// UpdateStoryInput carries the partial-edit payload. Empty fields leave the
// stored value untouched; there is no way to clear a field to empty through
// an edit.
type UpdateStoryInput struct {
	Title            string   `json:"title" form:"title"`
	Body             string   `json:"story" form:"story"`
	VisitedLocations []string `json:"visited_locations" form:"visited_locations"`
	VisitedDate      string   `json:"visited_date" form:"visited_date"`
}

// UploadedImage is what the image store hands back after a successful
// upload. ObjectKey addresses the object for later deletion.
type UploadedImage struct {
	URL       string `json:"image_url"`
	ObjectKey string `json:"object_key"`
}
