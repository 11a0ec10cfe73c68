package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mineral-licensing-api/internal/auth"
	"github.com/noah-isme/mineral-licensing-api/internal/dto"
	"github.com/noah-isme/mineral-licensing-api/internal/service"
	appErrors "github.com/noah-isme/mineral-licensing-api/pkg/errors"
	"github.com/noah-isme/mineral-licensing-api/pkg/response"
)

type unlicensedMinerService interface {
	Status(ctx context.Context, identity *auth.AuthContext) (*dto.ApplicationStatus, error)
	Application(ctx context.Context, identity *auth.AuthContext) (*dto.ApplicationDetail, error)
	Documents(ctx context.Context, identity *auth.AuthContext) (*dto.DocumentList, error)
	UploadDocument(ctx context.Context, identity *auth.AuthContext, upload service.Upload, description string) (*dto.DocumentUploadResult, error)
	Announcements(ctx context.Context, identity *auth.AuthContext) (*dto.AnnouncementFeed, error)
}

// UnlicensedMinerHandler serves miners whose application is under review.
type UnlicensedMinerHandler struct {
	service unlicensedMinerService
}

// NewUnlicensedMinerHandler constructs the handler.
func NewUnlicensedMinerHandler(service unlicensedMinerService) *UnlicensedMinerHandler {
	return &UnlicensedMinerHandler{service: service}
}

// Status godoc
// @Summary Application status
// @Tags UnlicensedMiner
// @Produce json
// @Success 200 {object} response.Envelope{data=dto.ApplicationStatus}
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /unlicensedminer/status [get]
func (h *UnlicensedMinerHandler) Status(c *gin.Context) {
	status, err := h.service.Status(c.Request.Context(), identityFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, status)
}

// Application godoc
// @Summary Full application record
// @Tags UnlicensedMiner
// @Produce json
// @Success 200 {object} response.Envelope{data=dto.ApplicationDetail}
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /unlicensedminer/application [get]
func (h *UnlicensedMinerHandler) Application(c *gin.Context) {
	detail, err := h.service.Application(c.Request.Context(), identityFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, detail)
}

// Documents godoc
// @Summary Uploaded documents
// @Tags UnlicensedMiner
// @Produce json
// @Success 200 {object} response.Envelope{data=dto.DocumentList}
// @Failure 401 {object} response.Envelope
// @Router /unlicensedminer/documents [get]
func (h *UnlicensedMinerHandler) Documents(c *gin.Context) {
	list, err := h.service.Documents(c.Request.Context(), identityFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, list)
}

// UploadDocument godoc
// @Summary Upload a supporting document
// @Tags UnlicensedMiner
// @Accept mpfd
// @Produce json
// @Param file formData file true "Document"
// @Param description formData string false "Document type"
// @Success 200 {object} response.Envelope{data=dto.DocumentUploadResult}
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /unlicensedminer/upload-document [post]
func (h *UnlicensedMinerHandler) UploadDocument(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "No file uploaded"))
		return
	}
	headers := form.File["file"]
	if len(headers) == 0 {
		// A part named "file" without a filename is parsed as a plain value.
		if _, present := form.Value["file"]; present {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "No selected file"))
			return
		}
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "No file uploaded"))
		return
	}
	if headers[0].Filename == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "No selected file"))
		return
	}

	upload, src, err := openUpload(headers[0])
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open file"))
		return
	}
	defer src.Close()

	description, _ := firstValue(form.Value, "description")
	result, err := h.service.UploadDocument(c.Request.Context(), identityFromContext(c), upload, description)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, "Document uploaded successfully")
}

// Announcements godoc
// @Summary All announcements
// @Tags UnlicensedMiner
// @Produce json
// @Success 200 {object} response.Envelope{data=dto.AnnouncementFeed}
// @Failure 401 {object} response.Envelope
// @Router /unlicensedminer/announcements [get]
func (h *UnlicensedMinerHandler) Announcements(c *gin.Context) {
	feed, err := h.service.Announcements(c.Request.Context(), identityFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, feed)
}
