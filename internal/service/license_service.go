package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/mineral-licensing-api/internal/auth"
	"github.com/noah-isme/mineral-licensing-api/internal/dto"
	"github.com/noah-isme/mineral-licensing-api/internal/models"
	appErrors "github.com/noah-isme/mineral-licensing-api/pkg/errors"
	"github.com/noah-isme/mineral-licensing-api/pkg/normalize"
)

type fileRelay interface {
	Check(upload Upload, opts RelayOptions) error
	Relay(ctx context.Context, upload Upload, opts RelayOptions) (*RelayedFile, error)
	Discard(ctx context.Context, files ...*RelayedFile)
}

// LicenseSubmission is an application as received from a JSON body or a
// multipart form. Files are only present for multipart submissions.
type LicenseSubmission struct {
	Fields map[string]interface{}
	Files  map[string]Upload
}

var licenseUploadOptions = RelayOptions{EnforceAllowList: true}

// LicenseService accepts and lists mining license applications.
type LicenseService struct {
	records recordStore
	relay   fileRelay
	logger  *zap.Logger
	now     func() time.Time
}

// NewLicenseService constructs the service.
func NewLicenseService(records recordStore, relay fileRelay, logger *zap.Logger) *LicenseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LicenseService{records: records, relay: relay, logger: logger, now: time.Now}
}

// Submit validates the application, uploads its documents, stores the row
// and marks the miner's license as pending.
func (s *LicenseService) Submit(ctx context.Context, identity *auth.AuthContext, sub LicenseSubmission) (*dto.LicenseSubmitResult, error) {
	if identity == nil || identity.MinerID == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "User ID not provided")
	}

	if missing := missingFields(sub.Fields); len(missing) > 0 {
		s.logger.Warn("license submission missing fields", zap.Strings("fields", missing))
		return nil, appErrors.WithDetails(
			appErrors.Clone(appErrors.ErrValidation, "Missing or invalid fields: "+strings.Join(missing, ", ")),
			map[string]interface{}{"missing_fields": missing},
		)
	}

	for _, field := range models.ApplicationFileFields {
		upload, ok := sub.Files[field]
		if !ok {
			continue
		}
		if err := s.relay.Check(upload, licenseUploadOptions); err != nil {
			return nil, err
		}
	}

	row := buildApplicationRow(identity.MinerID, sub.Fields)
	relayed := make([]*RelayedFile, 0, len(sub.Files))
	for _, field := range models.ApplicationFileFields {
		upload, ok := sub.Files[field]
		if !ok {
			row[field] = nil
			continue
		}
		file, err := s.relay.Relay(ctx, upload, licenseUploadOptions)
		if err != nil {
			// The application is still stored; the document column stays empty.
			s.logger.Error("license document upload failed",
				zap.String("miner_id", identity.MinerID),
				zap.String("field", field),
				zap.String("filename", upload.Filename),
				zap.Error(err))
			row[field] = nil
			continue
		}
		relayed = append(relayed, file)
		row[field] = file.URL
	}

	rows, err := s.records.Insert(ctx, models.TableApplication, row)
	if err != nil {
		s.relay.Discard(ctx, relayed...)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Database operation failed")
	}
	if len(rows) == 0 {
		s.relay.Discard(ctx, relayed...)
		return nil, appErrors.Clone(appErrors.ErrNoData, "Database operation failed")
	}

	updated, err := s.records.Update(ctx, models.TableUsers,
		[]models.Filter{models.Eq(models.UserID, identity.MinerID)},
		models.Record{
			models.UserLicenseStatus: models.LicenseStatusPending,
			models.UserActiveDate:    s.now().UTC(),
		})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Database operation failed")
	}
	if len(updated) == 0 {
		s.logger.Warn("no user row updated after license submission", zap.String("miner_id", identity.MinerID))
	}

	s.logger.Info("license application stored", zap.String("miner_id", identity.MinerID), zap.Int("files", len(relayed)))
	return &dto.LicenseSubmitResult{Rows: rows, MinerID: identity.MinerID}, nil
}

// List returns every application of the miner.
func (s *LicenseService) List(ctx context.Context, identity *auth.AuthContext) ([]models.Record, error) {
	if identity == nil || identity.MinerID == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "User ID not provided")
	}
	rows, err := s.records.Select(ctx, models.TableApplication, models.SelectQuery{
		Filters: []models.Filter{models.Eq(models.ApplicationMinerID, identity.MinerID)},
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to retrieve applications")
	}
	return rows, nil
}

// missingFields lists required fields that are absent, null or blank.
func missingFields(fields map[string]interface{}) []string {
	missing := make([]string, 0)
	for _, field := range models.ApplicationRequiredFields {
		value, ok := fields[field]
		if !ok || value == nil {
			missing = append(missing, field)
			continue
		}
		if text, isText := value.(string); isText && strings.TrimSpace(text) == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

func buildApplicationRow(minerID string, fields map[string]interface{}) models.Record {
	row := models.Record{
		models.ApplicationMinerID: minerID,
		models.ApplicationStatus:  models.ApplicationStatusPending,
	}
	for _, field := range models.ApplicationTextFields {
		row[field] = textValue(fields[field])
	}
	for _, field := range models.ApplicationNumericFields {
		if value, ok := normalize.CleanNumericValue(fields[field]); ok {
			row[field] = value
		} else {
			row[field] = nil
		}
	}
	return row
}

func textValue(value interface{}) interface{} {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
