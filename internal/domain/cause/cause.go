package cause

import (
	"errors"
	"time"
)

type Cause struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	Goal        int64     `json:"goal"`
	Raised      int64     `json:"raised"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

var ErrNotFound = errors.New("cause not found")

type CreateCauseRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Goal        int64  `json:"goal"`
	Raised      int64  `json:"raised"`
}

// a full payload; PUT upserts, so the same shape serves updates.
type UpdateCauseRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Goal        int64  `json:"goal"`
	Raised      int64  `json:"raised"`
}
