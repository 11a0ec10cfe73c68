package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/mineral-licensing-api/internal/models"
	appErrors "github.com/noah-isme/mineral-licensing-api/pkg/errors"
)

// ContactRequest is the public contact form payload.
type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// ContactService stores contact form messages.
type ContactService struct {
	records   recordStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewContactService constructs the service.
func NewContactService(records recordStore, validate *validator.Validate, logger *zap.Logger) *ContactService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactService{records: records, validator: validate, logger: logger}
}

// Submit validates and stores a message, returning the inserted rows.
func (s *ContactService) Submit(ctx context.Context, req ContactRequest) ([]models.Record, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.WithDetails(
			appErrors.Clone(appErrors.ErrValidation, "Missing required fields"),
			"Name, email, and message are required",
		)
	}

	rows, err := s.records.Insert(ctx, models.TableContact, models.Record{
		models.ContactName:    req.Name,
		models.ContactEmail:   req.Email,
		models.ContactMessage: req.Message,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to submit contact message")
	}
	if len(rows) == 0 {
		s.logger.Error("contact insert returned no rows")
		return nil, appErrors.WithDetails(
			appErrors.Clone(appErrors.ErrNoData, "Failed to submit contact message"),
			"No data returned from database",
		)
	}
	return rows, nil
}

// List returns every stored contact message.
func (s *ContactService) List(ctx context.Context) ([]models.Record, error) {
	rows, err := s.records.Select(ctx, models.TableContact, models.SelectQuery{})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to fetch contacts")
	}
	return rows, nil
}
