package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/noah-isme/mineral-licensing-api/internal/auth"
	"github.com/noah-isme/mineral-licensing-api/internal/models"
	"github.com/noah-isme/mineral-licensing-api/pkg/config"
	"github.com/noah-isme/mineral-licensing-api/pkg/storage"
)

type selectCall struct {
	table string
	query models.SelectQuery
}

type insertCall struct {
	table string
	row   models.Record
}

type updateCall struct {
	table   string
	filters []models.Filter
	patch   models.Record
}

// recordStoreStub answers selects per table and records every call.
type recordStoreStub struct {
	selectRows map[string][]models.Record
	selectErr  error
	insertRows []models.Record
	insertErr  error
	updateRows []models.Record
	updateErr  error

	selects []selectCall
	inserts []insertCall
	updates []updateCall
}

func (s *recordStoreStub) Select(ctx context.Context, table string, q models.SelectQuery) ([]models.Record, error) {
	s.selects = append(s.selects, selectCall{table: table, query: q})
	if s.selectErr != nil {
		return nil, s.selectErr
	}
	rows := s.selectRows[table]
	if rows == nil {
		rows = []models.Record{}
	}
	return rows, nil
}

func (s *recordStoreStub) Insert(ctx context.Context, table string, row models.Record) ([]models.Record, error) {
	s.inserts = append(s.inserts, insertCall{table: table, row: row})
	if s.insertErr != nil {
		return nil, s.insertErr
	}
	if s.insertRows != nil {
		return s.insertRows, nil
	}
	stored := models.Record{"id": int64(len(s.inserts))}
	for k, v := range row {
		stored[k] = v
	}
	return []models.Record{stored}, nil
}

func (s *recordStoreStub) Update(ctx context.Context, table string, filters []models.Filter, patch models.Record) ([]models.Record, error) {
	s.updates = append(s.updates, updateCall{table: table, filters: filters, patch: patch})
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	if s.updateRows != nil {
		return s.updateRows, nil
	}
	return []models.Record{patch}, nil
}

// memoryStore is an in-memory object store.
type memoryStore struct {
	objects map[string]storage.PutObjectInput
	bodies  map[string]string
	putErr  error
	// failPutAt fails only the n-th Put (1-based) with errBoom.
	failPutAt int
	puts      int
	deleted []string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: map[string]storage.PutObjectInput{}, bodies: map[string]string{}}
}

func (m *memoryStore) Put(ctx context.Context, in storage.PutObjectInput) error {
	m.puts++
	if m.putErr != nil {
		return m.putErr
	}
	if m.puts == m.failPutAt {
		return errBoom
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return err
	}
	m.objects[in.Key] = in
	m.bodies[in.Key] = string(body)
	return nil
}

func (m *memoryStore) Delete(ctx context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	delete(m.objects, key)
	return nil
}

func (m *memoryStore) PublicURL(key string) string {
	return "https://storage.example/documents/" + key
}

type relayCounter struct {
	results []string
}

func (r *relayCounter) RecordRelay(result string) {
	r.results = append(r.results, result)
}

func newTestRelay(store objectStore, metrics relayRecorder) *FileRelay {
	return NewFileRelay(store, config.StorageConfig{
		CacheControl:      "max-age=3600",
		MaxFileSizeBytes:  1 << 20,
		AllowedExtensions: []string{"pdf", "png", "jpg", "jpeg"},
	}, metrics, nil)
}

func upload(name, content, contentType string) Upload {
	return Upload{
		Filename:    name,
		ContentType: contentType,
		Size:        int64(len(content)),
		Content:     strings.NewReader(content),
	}
}

func miner(id string) *auth.AuthContext {
	return &auth.AuthContext{MinerID: id, Source: auth.SourceHeader}
}

func fixedClock() time.Time {
	return time.Date(2024, time.May, 1, 10, 30, 0, 0, time.UTC)
}

var errBoom = errors.New("boom")
