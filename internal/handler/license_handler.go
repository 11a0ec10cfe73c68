package handler

import (
	"context"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/noah-isme/mineral-licensing-api/internal/auth"
	"github.com/noah-isme/mineral-licensing-api/internal/dto"
	"github.com/noah-isme/mineral-licensing-api/internal/models"
	"github.com/noah-isme/mineral-licensing-api/internal/service"
	appErrors "github.com/noah-isme/mineral-licensing-api/pkg/errors"
	"github.com/noah-isme/mineral-licensing-api/pkg/response"
)

type licenseService interface {
	Submit(ctx context.Context, identity *auth.AuthContext, sub service.LicenseSubmission) (*dto.LicenseSubmitResult, error)
	List(ctx context.Context, identity *auth.AuthContext) ([]models.Record, error)
}

// LicenseHandler accepts license applications.
type LicenseHandler struct {
	service licenseService
}

// NewLicenseHandler constructs the handler.
func NewLicenseHandler(service licenseService) *LicenseHandler {
	return &LicenseHandler{service: service}
}

// Submit godoc
// @Summary Submit a mining license application
// @Description Accepts a JSON body, or a multipart form carrying supporting documents (pdf, png, jpg, jpeg).
// @Tags License
// @Accept json,mpfd
// @Produce json
// @Param X-User-ID header string false "Miner id when the userId cookie is absent"
// @Param mining_plan formData file false "Mining plan"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /license/submit [post]
func (h *LicenseHandler) Submit(c *gin.Context) {
	identity := identityFromContext(c)
	if identity == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "User ID not provided"))
		return
	}

	sub := service.LicenseSubmission{Fields: map[string]interface{}{}, Files: map[string]service.Upload{}}
	switch c.ContentType() {
	case binding.MIMEJSON:
		if err := c.ShouldBindJSON(&sub.Fields); err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid license payload"))
			return
		}
	case binding.MIMEMultipartPOSTForm:
		form, err := c.MultipartForm()
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid license form"))
			return
		}
		for key := range form.Value {
			value, _ := firstValue(form.Value, key)
			sub.Fields[key] = value
		}
		files, err := openLicenseFiles(form, sub.Files)
		defer closeAll(files)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open file"))
			return
		}
	default:
		if err := c.Request.ParseForm(); err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid license form"))
			return
		}
		for key := range c.Request.PostForm {
			sub.Fields[key] = c.Request.PostForm.Get(key)
		}
	}

	result, err := h.service.Submit(c.Request.Context(), identity, sub)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, result.Rows, "License submitted successfully!", map[string]interface{}{
		"user_id": result.MinerID,
	})
}

// List godoc
// @Summary List the caller's license applications
// @Tags License
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /license/get [get]
func (h *LicenseHandler) List(c *gin.Context) {
	rows, err := h.service.List(c.Request.Context(), identityFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rows)
}

func openLicenseFiles(form *multipart.Form, uploads map[string]service.Upload) ([]multipart.File, error) {
	opened := make([]multipart.File, 0, len(models.ApplicationFileFields))
	for _, field := range models.ApplicationFileFields {
		headers := form.File[field]
		if len(headers) == 0 {
			continue
		}
		upload, file, err := openUpload(headers[0])
		if err != nil {
			return opened, err
		}
		opened = append(opened, file)
		uploads[field] = upload
	}
	return opened, nil
}

func closeAll(files []multipart.File) {
	for _, file := range files {
		_ = file.Close()
	}
}
