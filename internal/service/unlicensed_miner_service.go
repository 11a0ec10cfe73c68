package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/mineral-licensing-api/internal/auth"
	"github.com/noah-isme/mineral-licensing-api/internal/dto"
	"github.com/noah-isme/mineral-licensing-api/internal/models"
	appErrors "github.com/noah-isme/mineral-licensing-api/pkg/errors"
)

// Supporting documents are accepted in any format.
var documentUploadOptions = RelayOptions{EnforceAllowList: false}

// UnlicensedMinerService backs the page of miners whose application is still
// under review.
type UnlicensedMinerService struct {
	records recordStore
	relay   fileRelay
	logger  *zap.Logger
	now     func() time.Time
}

// NewUnlicensedMinerService constructs the service.
func NewUnlicensedMinerService(records recordStore, relay fileRelay, logger *zap.Logger) *UnlicensedMinerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UnlicensedMinerService{records: records, relay: relay, logger: logger, now: time.Now}
}

func errApplicationNotFound() error {
	return appErrors.WithDetails(
		appErrors.Clone(appErrors.ErrNotFound, "Application not found"),
		map[string]string{"solution": "Please submit an application first"},
	)
}

func requireMiner(identity *auth.AuthContext) error {
	if identity == nil || identity.MinerID == "" {
		return appErrors.Clone(appErrors.ErrUnauthorized, "Authentication required")
	}
	return nil
}

// Status reports the status of the miner's latest application.
func (s *UnlicensedMinerService) Status(ctx context.Context, identity *auth.AuthContext) (*dto.ApplicationStatus, error) {
	if err := requireMiner(identity); err != nil {
		return nil, err
	}
	rows, err := s.latestApplication(ctx, identity.MinerID, models.ApplicationStatus)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		s.logger.Warn("no application found", zap.String("miner_id", identity.MinerID))
		return nil, errApplicationNotFound()
	}
	return &dto.ApplicationStatus{Status: rows[0][models.ApplicationStatus], MinerID: identity.MinerID}, nil
}

// Application returns the miner's latest application row.
func (s *UnlicensedMinerService) Application(ctx context.Context, identity *auth.AuthContext) (*dto.ApplicationDetail, error) {
	if err := requireMiner(identity); err != nil {
		return nil, err
	}
	rows, err := s.latestApplication(ctx, identity.MinerID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "Application not found")
	}
	return &dto.ApplicationDetail{Application: rows[0]}, nil
}

// Documents lists the documents uploaded by the miner.
func (s *UnlicensedMinerService) Documents(ctx context.Context, identity *auth.AuthContext) (*dto.DocumentList, error) {
	if err := requireMiner(identity); err != nil {
		return nil, err
	}
	rows, err := s.records.Select(ctx, models.TableDocuments, models.SelectQuery{
		Filters: []models.Filter{models.Eq(models.DocumentMinerID, identity.MinerID)},
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load documents")
	}
	return &dto.DocumentList{Documents: rows}, nil
}

// UploadDocument stores a supporting document and records it for review.
// description is saved as the document type.
func (s *UnlicensedMinerService) UploadDocument(ctx context.Context, identity *auth.AuthContext, upload Upload, description string) (*dto.DocumentUploadResult, error) {
	if err := requireMiner(identity); err != nil {
		return nil, err
	}
	if upload.Filename == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "No selected file")
	}

	file, err := s.relay.Relay(ctx, upload, documentUploadOptions)
	if err != nil {
		return nil, err
	}

	_, err = s.records.Insert(ctx, models.TableDocuments, models.Record{
		models.DocumentMinerID:    identity.MinerID,
		models.DocumentName:       upload.Filename,
		models.DocumentType:       description,
		models.DocumentURL:        file.URL,
		models.DocumentUploadDate: s.now().UTC(),
		models.DocumentStatus:     models.DocumentStatusPendingReview,
	})
	if err != nil {
		s.relay.Discard(ctx, file)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save document metadata")
	}

	s.logger.Info("document uploaded", zap.String("miner_id", identity.MinerID), zap.String("url", file.URL))
	return &dto.DocumentUploadResult{DocumentURL: file.URL}, nil
}

// Announcements returns every comment addressed to the miner, newest first.
func (s *UnlicensedMinerService) Announcements(ctx context.Context, identity *auth.AuthContext) (*dto.AnnouncementFeed, error) {
	if err := requireMiner(identity); err != nil {
		return nil, err
	}
	items, err := listAnnouncements(ctx, s.records, identity.MinerID, 0, "")
	if err != nil {
		return nil, err
	}
	return &dto.AnnouncementFeed{Announcements: items}, nil
}

func (s *UnlicensedMinerService) latestApplication(ctx context.Context, minerID string, columns ...string) ([]models.Record, error) {
	rows, err := s.records.Select(ctx, models.TableApplication, models.SelectQuery{
		Columns: columns,
		Filters: []models.Filter{models.Eq(models.ApplicationMinerID, minerID)},
		Order:   &models.Order{Column: models.ApplicationCreatedAt, Desc: true},
		Limit:   1,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load application")
	}
	return rows, nil
}
