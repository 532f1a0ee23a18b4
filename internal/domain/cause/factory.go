package cause

import (
	"time"

	"github.com/google/uuid"
)

// display date layout, e.g. "Aug 30, 2026"
const DateLayout = "Jan 2, 2006"

func NewFromCreateRequest(req CreateCauseRequest) Cause {
	now := time.Now().UTC()

	return Cause{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Goal:        req.Goal,
		Raised:      req.Raised,
		Date:        now.Format(DateLayout),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
