package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mineral-licensing-api/internal/models"
)

type queryLabels struct {
	labels []string
}

func (q *queryLabels) ObserveDBQuery(label string, _ time.Duration) {
	q.labels = append(q.labels, label)
}

func newGateway(t *testing.T) (*RecordGateway, sqlmock.Sqlmock, *queryLabels) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	observer := &queryLabels{}
	return NewRecordGateway(sqlx.NewDb(db, "postgres"), observer), mock, observer
}

func TestRecordGatewaySelect(t *testing.T) {
	gateway, mock, observer := newGateway(t)
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT text, created_at FROM comments WHERE miner_id = $1 ORDER BY created_at DESC LIMIT 5")).
		WithArgs("miner-1").
		WillReturnRows(sqlmock.NewRows([]string{"text", "created_at"}).
			AddRow([]byte("Inspection scheduled"), created))

	rows, err := gateway.Select(context.Background(), "comments", models.SelectQuery{
		Columns: []string{"text", "created_at"},
		Filters: []models.Filter{models.Eq("miner_id", "miner-1")},
		Order:   &models.Order{Column: "created_at", Desc: true},
		Limit:   5,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Inspection scheduled", rows[0]["text"])
	assert.Equal(t, created, rows[0]["created_at"])
	assert.Equal(t, []string{"select:comments"}, observer.labels)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordGatewaySelectAllEmpty(t *testing.T) {
	gateway, mock, _ := newGateway(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM contact_data")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	rows, err := gateway.Select(context.Background(), "contact_data", models.SelectQuery{})
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordGatewayInsertSortsColumns(t *testing.T) {
	gateway, mock, observer := newGateway(t)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO contact_data (email, message, name) VALUES ($1, $2, $3) RETURNING *")).
		WithArgs("ada@example.com", "Hello", "Ada").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "message"}).
			AddRow(int64(1), "Ada", "ada@example.com", "Hello"))

	rows, err := gateway.Insert(context.Background(), "contact_data", models.Record{
		"name":    "Ada",
		"email":   "ada@example.com",
		"message": "Hello",
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1), rows[0]["id"])
	assert.Equal(t, []string{"insert:contact_data"}, observer.labels)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordGatewayUpdate(t *testing.T) {
	gateway, mock, _ := newGateway(t)
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET active_date = $1, license_status = $2 WHERE id = $3 RETURNING *")).
		WithArgs("2024-05-01T10:00:00Z", "pending", "miner-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "license_status"}).AddRow("miner-1", "pending"))

	rows, err := gateway.Update(context.Background(), "users",
		[]models.Filter{models.Eq("id", "miner-1")},
		models.Record{"license_status": "pending", "active_date": "2024-05-01T10:00:00Z"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "pending", rows[0]["license_status"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordGatewayUpdateRequiresFilter(t *testing.T) {
	gateway, mock, _ := newGateway(t)
	_, err := gateway.Update(context.Background(), "users", nil, models.Record{"license_status": "pending"})
	assert.ErrorIs(t, err, ErrEmptyUpdate)
	_, err = gateway.Update(context.Background(), "users", []models.Filter{models.Eq("id", "1")}, models.Record{})
	assert.ErrorIs(t, err, ErrEmptyUpdate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordGatewayRejectsIdentifiers(t *testing.T) {
	gateway, mock, _ := newGateway(t)
	ctx := context.Background()

	_, err := gateway.Select(ctx, "users; DROP TABLE users", models.SelectQuery{})
	assert.ErrorIs(t, err, ErrInvalidIdentifier)
	_, err = gateway.Select(ctx, "users", models.SelectQuery{Filters: []models.Filter{models.Eq("id = id OR 1", 1)}})
	assert.ErrorIs(t, err, ErrInvalidIdentifier)
	_, err = gateway.Select(ctx, "users", models.SelectQuery{Order: &models.Order{Column: "1"}})
	assert.ErrorIs(t, err, ErrInvalidIdentifier)
	_, err = gateway.Insert(ctx, "documents", models.Record{"bad-column": 1})
	assert.ErrorIs(t, err, ErrInvalidIdentifier)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordGatewayWrapsDriverErrors(t *testing.T) {
	gateway, mock, observer := newGateway(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM royalty WHERE miner_id = $1")).
		WithArgs("miner-1").
		WillReturnError(errors.New("connection reset"))

	_, err := gateway.Select(context.Background(), "royalty", models.SelectQuery{
		Filters: []models.Filter{models.Eq("miner_id", "miner-1")},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "select royalty")
	assert.Equal(t, []string{"select:royalty"}, observer.labels)
	assert.NoError(t, mock.ExpectationsWereMet())
}
