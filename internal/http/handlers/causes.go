package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/charityhub/charityhub/internal/cache"
	"github.com/charityhub/charityhub/internal/config"
	"github.com/charityhub/charityhub/internal/domain/cause"
	"github.com/charityhub/charityhub/internal/observability"
	"github.com/gin-gonic/gin"
)

type CausesStore interface {
	Create(ctx context.Context, req cause.CreateCauseRequest) (cause.Cause, error)
	List(ctx context.Context) ([]cause.Cause, error)
	GetByID(ctx context.Context, id string) (cause.Cause, error)
	Upsert(ctx context.Context, id string, req cause.UpdateCauseRequest) (cause.Cause, error)
	Delete(ctx context.Context, id string) error
}

const causesListKey = "causes:list"

type CausesHandler struct {
	repo  CausesStore
	cache *cache.Cache // optional; nil means direct reads
	prom  *observability.Prom
	log   *slog.Logger
}

func NewCausesHandler(repo CausesStore, c *cache.Cache, prom *observability.Prom, log *slog.Logger) *CausesHandler {
	return &CausesHandler{
		repo:  repo,
		cache: c,
		prom:  prom,
		log:   log,
	}
}

func (h *CausesHandler) CreateCause(ctx *gin.Context) {
	var req cause.CreateCauseRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	c, err := h.repo.Create(cctx, req)

	if err != nil {
		h.log.Error("cause create failed", "err", err)
		RespondInternal(ctx, "Could not create cause")
		return
	}

	h.invalidateList(cctx)

	ctx.JSON(http.StatusCreated, c)
}

func (h *CausesHandler) ListCauses(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if h.cache != nil {
		var cached []cause.Cause

		err := h.cache.GetJSON(cctx, causesListKey, &cached)

		if err == nil {
			h.countCache(true)
			RespondJSONWithETag(ctx, http.StatusOK, cached)
			return
		}

		if !errors.Is(err, cache.ErrMiss) {
			h.log.Warn("cause list cache read failed", "err", err)
		}

		h.countCache(false)
	}

	causes, err := h.repo.List(cctx)

	if err != nil {
		h.log.Error("cause listing failed", "err", err)
		RespondInternal(ctx, "Could not list causes")
		return
	}

	if h.cache != nil {
		if err := h.cache.SetJSON(cctx, causesListKey, causes); err != nil {
			h.log.Warn("cause list cache write failed", "err", err)
		}
	}

	RespondJSONWithETag(ctx, http.StatusOK, causes)
}

func (h *CausesHandler) GetCauseByID(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	c, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, cause.ErrNotFound) {
			RespondNotFound(ctx, "Cause not found")
			return
		}

		h.log.Error("cause fetch failed", "err", err)
		RespondInternal(ctx, "Could not fetch cause")
		return
	}

	ctx.JSON(http.StatusOK, c)
}

// UpdateCause upserts: an unknown id inserts a new cause under that id,
// so PUT never answers 404.
func (h *CausesHandler) UpdateCause(ctx *gin.Context) {
	id := ctx.Param("id")

	var req cause.UpdateCauseRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	c, err := h.repo.Upsert(cctx, id, req)

	if err != nil {
		h.log.Error("cause upsert failed", "err", err)
		RespondInternal(ctx, "Could not update cause")
		return
	}

	h.invalidateList(cctx)

	ctx.JSON(http.StatusOK, c)
}

func (h *CausesHandler) DeleteCause(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	err := h.repo.Delete(cctx, id)

	if err != nil {
		if errors.Is(err, cause.ErrNotFound) {
			RespondNotFound(ctx, "Cause not found")
			return
		}

		h.log.Error("cause delete failed", "err", err)
		RespondInternal(ctx, "Could not delete cause")
		return
	}

	h.invalidateList(cctx)

	ctx.Status(http.StatusNoContent)
}

func (h *CausesHandler) invalidateList(ctx context.Context) {
	if h.cache == nil {
		return
	}

	if err := h.cache.Delete(ctx, causesListKey); err != nil {
		h.log.Warn("cause list cache invalidation failed", "err", err)
	}
}

func (h *CausesHandler) countCache(hit bool) {
	if h.prom == nil {
		return
	}

	if hit {
		h.prom.CacheHits.WithLabelValues(causesListKey).Inc()
		return
	}

	h.prom.CacheMisses.WithLabelValues(causesListKey).Inc()
}
