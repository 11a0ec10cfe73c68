package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mineral-licensing-api/internal/auth"
	"github.com/noah-isme/mineral-licensing-api/internal/dto"
	"github.com/noah-isme/mineral-licensing-api/pkg/response"
)

type minerService interface {
	License(ctx context.Context, identity *auth.AuthContext) (*dto.LicenseSummary, error)
	Royalty(ctx context.Context, identity *auth.AuthContext) (*dto.RoyaltySummary, error)
	Announcements(ctx context.Context, identity *auth.AuthContext) (*dto.MinerAnnouncements, error)
}

// MinerHandler serves the licensed miner page.
type MinerHandler struct {
	service minerService
}

// NewMinerHandler constructs the handler.
func NewMinerHandler(service minerService) *MinerHandler {
	return &MinerHandler{service: service}
}

// License godoc
// @Summary License status and expiry
// @Tags Miner
// @Produce json
// @Success 200 {object} response.Envelope{data=dto.LicenseSummary}
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /miner/license [get]
func (h *MinerHandler) License(c *gin.Context) {
	summary, err := h.service.License(c.Request.Context(), identityFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, summary)
}

// Royalty godoc
// @Summary Royalty due
// @Tags Miner
// @Produce json
// @Success 200 {object} response.Envelope{data=dto.RoyaltySummary}
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /miner/royalty [get]
func (h *MinerHandler) Royalty(c *gin.Context) {
	summary, err := h.service.Royalty(c.Request.Context(), identityFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, summary)
}

// Announcements godoc
// @Summary Latest announcements
// @Tags Miner
// @Produce json
// @Success 200 {object} response.Envelope{data=dto.MinerAnnouncements}
// @Failure 401 {object} response.Envelope
// @Router /miner/announcements [get]
func (h *MinerHandler) Announcements(c *gin.Context) {
	feed, err := h.service.Announcements(c.Request.Context(), identityFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, feed)
}
