package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/charityhub/charityhub/internal/config"
	"github.com/charityhub/charityhub/internal/domain/donation"
	"github.com/gin-gonic/gin"
)

type DonationsStore interface {
	Create(ctx context.Context, req donation.CreateDonationRequest) (donation.Donation, error)
	List(ctx context.Context) ([]donation.Donation, error)
}

type DonationsHandler struct {
	repo DonationsStore
	log  *slog.Logger
}

func NewDonationsHandler(repo DonationsStore, log *slog.Logger) *DonationsHandler {
	return &DonationsHandler{
		repo: repo,
		log:  log,
	}
}

// CreateDonation records a donation; the server stamps the date.
func (h *DonationsHandler) CreateDonation(ctx *gin.Context) {
	var req donation.CreateDonationRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	d, err := h.repo.Create(cctx, req)

	if err != nil {
		h.log.Error("donation create failed", "err", err)
		RespondInternal(ctx, "Could not record donation")
		return
	}

	ctx.JSON(http.StatusCreated, d)
}

func (h *DonationsHandler) ListDonations(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	donations, err := h.repo.List(cctx)

	if err != nil {
		h.log.Error("donation listing failed", "err", err)
		RespondInternal(ctx, "Could not list donations")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, donations)
}
