package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The frontend consumes flat {"error": "..."} payloads, so helpers here keep
// that shape instead of a structured error envelope.

func RespondError(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"error": message})
}

func RespondBadRequest(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusBadRequest, message)
}

func RespondUnauthorized(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusUnauthorized, message)
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusNotFound, message)
}

func RespondInternal(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusInternalServerError, message)
}

// RespondSoftConflict reports a duplicate with HTTP 200 and an error payload.
// Odd, but externally observable: existing clients branch on the body, not
// the status, so it stays.
func RespondSoftConflict(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusOK, message)
}
