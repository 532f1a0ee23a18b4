package donation

import (
	"time"

	"github.com/google/uuid"
)

const DateLayout = "Jan 2, 2006"

// the server stamps the donation date; clients never supply it.
func NewFromCreateRequest(req CreateDonationRequest) Donation {
	now := time.Now().UTC()

	return Donation{
		ID:        uuid.NewString(),
		CauseID:   req.CauseID,
		Name:      req.Name,
		Email:     req.Email,
		Amount:    req.Amount,
		Date:      now.Format(DateLayout),
		CreatedAt: now,
	}
}
