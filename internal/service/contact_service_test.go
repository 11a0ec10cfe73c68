package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/mineral-licensing-api/internal/models"
	appErrors "github.com/noah-isme/mineral-licensing-api/pkg/errors"
)

func TestContactServiceSubmit(t *testing.T) {
	store := &recordStoreStub{}
	svc := NewContactService(store, validator.New(), zap.NewNop())

	rows, err := svc.Submit(context.Background(), ContactRequest{Name: "Ada", Email: "ada@example.com", Message: "Hello"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Len(t, store.inserts, 1)
	assert.Equal(t, models.TableContact, store.inserts[0].table)
	assert.Equal(t, models.Record{"name": "Ada", "email": "ada@example.com", "message": "Hello"}, store.inserts[0].row)
}

func TestContactServiceSubmitMissingEmail(t *testing.T) {
	store := &recordStoreStub{}
	svc := NewContactService(store, nil, nil)

	_, err := svc.Submit(context.Background(), ContactRequest{Name: "Ada", Message: "Hello"})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, "Missing required fields", appErr.Message)
	assert.Equal(t, "Name, email, and message are required", appErr.Details)
	assert.Empty(t, store.inserts)
}

func TestContactServiceSubmitNoData(t *testing.T) {
	store := &recordStoreStub{insertRows: []models.Record{}}
	svc := NewContactService(store, nil, nil)

	_, err := svc.Submit(context.Background(), ContactRequest{Name: "Ada", Email: "a@b.c", Message: "Hi"})
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.Equal(t, "Failed to submit contact message", appErr.Message)
}

func TestContactServiceSubmitInsertError(t *testing.T) {
	svc := NewContactService(&recordStoreStub{insertErr: errBoom}, nil, nil)
	_, err := svc.Submit(context.Background(), ContactRequest{Name: "Ada", Email: "a@b.c", Message: "Hi"})
	assert.ErrorIs(t, err, errBoom)
}

func TestContactServiceList(t *testing.T) {
	store := &recordStoreStub{selectRows: map[string][]models.Record{
		models.TableContact: {{"id": int64(1), "name": "Ada"}},
	}}
	svc := NewContactService(store, nil, nil)

	rows, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	empty, err := NewContactService(&recordStoreStub{}, nil, nil).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, empty)
}
