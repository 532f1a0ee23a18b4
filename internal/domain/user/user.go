package user

import (
	"errors"
	"time"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never expose hash in JSON
	Role         string    `json:"role"`
	Date         string    `json:"date"`
	CreatedAt    time.Time `json:"createdAt"`
}

var ErrNotFound = errors.New("user not found")

// returned by the store when the unique email index rejects an insert
var ErrEmailTaken = errors.New("email already in use")

type SignUpRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// login has no presence checks; an absent email simply fails the lookup.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
