package donation

import (
	"errors"
	"time"
)

type Donation struct {
	ID        string    `json:"id"`
	CauseID   string    `json:"causeId,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Amount    int64     `json:"amount"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}

var ErrNotFound = errors.New("donation not found")

type CreateDonationRequest struct {
	CauseID string `json:"causeId"`
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Amount  int64  `json:"amount" binding:"required"`
}
