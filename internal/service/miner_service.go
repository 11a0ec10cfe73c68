package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/noah-isme/mineral-licensing-api/internal/auth"
	"github.com/noah-isme/mineral-licensing-api/internal/dto"
	"github.com/noah-isme/mineral-licensing-api/internal/models"
	appErrors "github.com/noah-isme/mineral-licensing-api/pkg/errors"
	"github.com/noah-isme/mineral-licensing-api/pkg/normalize"
)

const minerAnnouncementLimit = 5

// MinerService backs the licensed miner page.
type MinerService struct {
	records      recordStore
	royaltyDueBy string
	logger       *zap.Logger
}

// NewMinerService constructs the service. royaltyDueBy is reported verbatim
// as the royalty due date.
func NewMinerService(records recordStore, royaltyDueBy string, logger *zap.Logger) *MinerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MinerService{records: records, royaltyDueBy: royaltyDueBy, logger: logger}
}

// License reports the license status and computes its expiry from the
// activation date and the application's validity period.
func (s *MinerService) License(ctx context.Context, identity *auth.AuthContext) (*dto.LicenseSummary, error) {
	if identity == nil || identity.MinerID == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "User ID not provided")
	}

	users, err := s.records.Select(ctx, models.TableUsers, models.SelectQuery{
		Columns: []string{models.UserLicenseStatus, models.UserActiveDate},
		Filters: []models.Filter{models.Eq(models.UserID, identity.MinerID)},
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	if len(users) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "User not found")
	}
	user := users[0]

	activeDate, ok := normalize.ParseDate(user[models.UserActiveDate])
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid or missing active date")
	}

	apps, err := s.records.Select(ctx, models.TableApplication, models.SelectQuery{
		Columns: []string{models.ApplicationExplorationLicenseNo, models.ApplicationPeriodOfValidity},
		Filters: []models.Filter{models.Eq(models.ApplicationMinerID, identity.MinerID)},
		Order:   &models.Order{Column: models.ApplicationCreatedAt, Desc: true},
		Limit:   1,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load application")
	}
	if len(apps) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "No application found")
	}
	app := apps[0]

	period := app[models.ApplicationPeriodOfValidity]
	expires, err := normalize.ExpiryDate(activeDate, periodText(period))
	if err != nil {
		s.logger.Error("license expiry out of range", zap.String("miner_id", identity.MinerID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Internal server error")
	}

	return &dto.LicenseSummary{
		LicenseStatus:    user[models.UserLicenseStatus],
		LicenseNumber:    app[models.ApplicationExplorationLicenseNo],
		ActiveDate:       activeDate.Format(normalize.ISODateLayout),
		PeriodOfValidity: period,
		Expires:          expires.Format(normalize.ISODateLayout),
	}, nil
}

// Royalty reports the royalty owed by the miner.
func (s *MinerService) Royalty(ctx context.Context, identity *auth.AuthContext) (*dto.RoyaltySummary, error) {
	if identity == nil || identity.MinerID == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "User ID not provided")
	}
	rows, err := s.records.Select(ctx, models.TableRoyalty, models.SelectQuery{
		Columns: []string{models.RoyaltyTotalAmount},
		Filters: []models.Filter{models.Eq(models.RoyaltyMinerID, identity.MinerID)},
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load royalty")
	}
	if len(rows) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "No royalty data found")
	}
	return &dto.RoyaltySummary{
		RoyaltyAmountDue: amountValue(rows[0][models.RoyaltyTotalAmount]),
		DueBy:            s.royaltyDueBy,
	}, nil
}

// Announcements returns the five newest comments addressed to the miner.
func (s *MinerService) Announcements(ctx context.Context, identity *auth.AuthContext) (*dto.MinerAnnouncements, error) {
	if identity == nil || identity.MinerID == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "User ID not provided")
	}
	items, err := listAnnouncements(ctx, s.records, identity.MinerID, minerAnnouncementLimit, "No text")
	if err != nil {
		return nil, err
	}
	return &dto.MinerAnnouncements{
		Announcements:    items,
		StatusCategories: models.StatusCategories,
	}, nil
}

func listAnnouncements(ctx context.Context, records recordStore, minerID string, limit int, emptyText string) ([]dto.AnnouncementItem, error) {
	rows, err := records.Select(ctx, models.TableComments, models.SelectQuery{
		Columns: []string{models.CommentText, models.CommentCreatedAt},
		Filters: []models.Filter{models.Eq(models.CommentMinerID, minerID)},
		Order:   &models.Order{Column: models.CommentCreatedAt, Desc: true},
		Limit:   limit,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load announcements")
	}

	items := make([]dto.AnnouncementItem, 0, len(rows))
	for _, row := range rows {
		item := dto.AnnouncementItem{Text: emptyText}
		// emptyText only fills in a missing column; a stored null stays null.
		if text, present := row[models.CommentText]; present {
			item.Text = nil
			if text != nil {
				item.Text = fmt.Sprint(text)
			}
		}
		if created, ok := normalize.ParseDate(row[models.CommentCreatedAt]); ok {
			item.Date = normalize.FormatDisplayDate(created)
		}
		items = append(items, item)
	}
	return items, nil
}

// periodText renders a stored validity period for parsing. Null counts as empty.
func periodText(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// amountValue turns NUMERIC columns, which the driver reports as text, back
// into numbers.
func amountValue(value interface{}) interface{} {
	text, ok := value.(string)
	if !ok {
		return value
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return f
	}
	return text
}
