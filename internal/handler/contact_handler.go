package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mineral-licensing-api/internal/models"
	"github.com/noah-isme/mineral-licensing-api/internal/service"
	appErrors "github.com/noah-isme/mineral-licensing-api/pkg/errors"
	"github.com/noah-isme/mineral-licensing-api/pkg/response"
)

type contactService interface {
	Submit(ctx context.Context, req service.ContactRequest) ([]models.Record, error)
	List(ctx context.Context) ([]models.Record, error)
}

// ContactHandler serves the public contact form.
type ContactHandler struct {
	service contactService
}

// NewContactHandler constructs the handler.
func NewContactHandler(service contactService) *ContactHandler {
	return &ContactHandler{service: service}
}

// Submit godoc
// @Summary Submit a contact message
// @Tags Contact
// @Accept json
// @Produce json
// @Param payload body service.ContactRequest true "Contact message"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /contact/submit [post]
func (h *ContactHandler) Submit(c *gin.Context) {
	var req service.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.WithDetails(
			appErrors.Clone(appErrors.ErrValidation, "Missing required fields"),
			"Name, email, and message are required",
		))
		return
	}
	rows, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, rows, "Contact message submitted successfully!")
}

// List godoc
// @Summary List contact messages
// @Tags Contact
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /contact/get [get]
func (h *ContactHandler) List(c *gin.Context) {
	rows, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rows)
}
