package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/charityhub/charityhub/internal/auth"
	"github.com/charityhub/charityhub/internal/config"
	"github.com/charityhub/charityhub/internal/domain/user"
	"github.com/charityhub/charityhub/internal/security"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// Small interfaces so tests can fake the store easily.

type UserReader interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

type UserWriter interface {
	Create(ctx context.Context, name, email, passwordHash string) (user.User, error)
}

type UserLister interface {
	ListAll(ctx context.Context) ([]user.User, error)
}

type AuthHandler struct {
	users  UserReader
	writer UserWriter
	lister UserLister
	jwt    *auth.Manager
	log    *slog.Logger
}

func NewAuthHandler(users UserReader, writer UserWriter, lister UserLister, jwtManager *auth.Manager, log *slog.Logger) *AuthHandler {
	return &AuthHandler{
		users:  users,
		writer: writer,
		lister: lister,
		jwt:    jwtManager,
		log:    log,
	}
}

// SignUp registers a new account.
//
// A duplicate email answers HTTP 200 with {"error":"User already exists"}.
// Existing clients branch on that exact payload, so it is kept even though a
// 409 would be the conventional choice.
func (h *AuthHandler) SignUp(ctx *gin.Context) {
	var req user.SignUpRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		// presence-only validation; nothing has touched the store yet
		RespondBadRequest(ctx, "All fields are required")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	_, err := h.users.GetByEmail(cctx, req.Email)

	if err == nil {
		RespondSoftConflict(ctx, "User already exists")
		return
	}

	if !errors.Is(err, user.ErrNotFound) {
		h.log.Error("signup lookup failed", "err", err)
		RespondInternal(ctx, "Internal server error")
		return
	}

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		h.log.Error("password hash failed", "err", err)
		RespondInternal(ctx, "Internal server error")
		return
	}

	u, err := h.writer.Create(cctx, req.Name, req.Email, hash)

	if err != nil {
		// the unique index is authoritative: a concurrent signup that slipped
		// past the read above still lands here
		if errors.Is(err, user.ErrEmailTaken) {
			RespondSoftConflict(ctx, "User already exists")
			return
		}

		h.log.Error("signup insert failed", "err", err)
		RespondInternal(ctx, "Internal server error")
		return
	}

	// mirrors the raw insertion-result shape the frontend already reads
	ctx.JSON(http.StatusOK, gin.H{
		"acknowledged": true,
		"insertedId":   u.ID,
	})
}

// Login checks credentials and issues a bearer token.
//
// Unknown email and wrong password answer the same message so the response
// does not leak which one failed.
func (h *AuthHandler) Login(ctx *gin.Context) {
	var req user.LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	// short timeout for the single DB lookup
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	foundUser, err := h.users.GetByEmail(cctx, req.Email)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondUnauthorized(ctx, "Invalid email or password")
			return
		}

		h.log.Error("login lookup failed", "err", err)
		RespondInternal(ctx, "Internal server error")
		return
	}

	err = security.CheckPassword(foundUser.PasswordHash, req.Password)

	if err != nil {
		// a malformed stored hash is our fault, not the caller's
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			h.log.Error("password check failed", "err", err)
			RespondInternal(ctx, "Internal server error")
			return
		}

		RespondUnauthorized(ctx, "Invalid email or password")
		return
	}

	token, err := h.jwt.GenerateToken(foundUser.ID, foundUser.Email)

	if err != nil {
		h.log.Error("token signing failed", "err", err)
		RespondInternal(ctx, "Internal server error")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
	})
}

// ListUsers returns every account sorted by creation date descending, as a
// bare array. Password hashes never serialize (json:"-").
func (h *AuthHandler) ListUsers(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	users, err := h.lister.ListAll(cctx)

	if err != nil {
		h.log.Error("user listing failed", "err", err)
		RespondInternal(ctx, "Internal server error")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, users)
}
