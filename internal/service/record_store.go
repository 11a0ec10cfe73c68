package service

import (
	"context"

	"github.com/noah-isme/mineral-licensing-api/internal/models"
)

// recordStore is the subset of the record gateway the services rely on.
type recordStore interface {
	Select(ctx context.Context, table string, q models.SelectQuery) ([]models.Record, error)
	Insert(ctx context.Context, table string, row models.Record) ([]models.Record, error)
	Update(ctx context.Context, table string, filters []models.Filter, patch models.Record) ([]models.Record, error)
}
