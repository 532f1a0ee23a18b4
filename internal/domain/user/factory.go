package user

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout matches the human-readable creation date the frontend expects,
// e.g. "Aug 30, 2026".
const DateLayout = "Jan 2, 2006"

func NewFromSignUp(name, email, passwordHash string) User {
	now := time.Now().UTC()

	return User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         "user",
		Date:         now.Format(DateLayout),
		CreatedAt:    now,
	}
}
