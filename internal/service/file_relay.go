package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/mineral-licensing-api/pkg/config"
	appErrors "github.com/noah-isme/mineral-licensing-api/pkg/errors"
	"github.com/noah-isme/mineral-licensing-api/pkg/storage"
)

type objectStore interface {
	Put(ctx context.Context, in storage.PutObjectInput) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

type relayRecorder interface {
	RecordRelay(result string)
}

// Upload is a file received from a client.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.ReadSeeker
}

// RelayOptions tunes a single relay call.
type RelayOptions struct {
	EnforceAllowList bool
}

// RelayedFile identifies a stored object.
type RelayedFile struct {
	Key string
	URL string
}

// FileRelay forwards uploads to the document bucket under a random name.
type FileRelay struct {
	store        objectStore
	allowed      map[string]struct{}
	cacheControl string
	maxSize      int64
	metrics      relayRecorder
	logger       *zap.Logger
}

// NewFileRelay constructs a relay from the storage configuration.
func NewFileRelay(store objectStore, cfg config.StorageConfig, metrics relayRecorder, logger *zap.Logger) *FileRelay {
	if logger == nil {
		logger = zap.NewNop()
	}
	allowed := make(map[string]struct{}, len(cfg.AllowedExtensions))
	for _, ext := range cfg.AllowedExtensions {
		allowed[strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))] = struct{}{}
	}
	if len(allowed) == 0 {
		for _, ext := range []string{"pdf", "png", "jpg", "jpeg"} {
			allowed[ext] = struct{}{}
		}
	}
	return &FileRelay{
		store:        store,
		allowed:      allowed,
		cacheControl: cfg.CacheControl,
		maxSize:      cfg.MaxFileSizeBytes,
		metrics:      metrics,
		logger:       logger,
	}
}

// Check validates an upload without touching storage.
func (r *FileRelay) Check(upload Upload, opts RelayOptions) error {
	if upload.Content == nil {
		return appErrors.Clone(appErrors.ErrValidation, "file reader missing")
	}
	if r.maxSize > 0 && upload.Size > r.maxSize {
		return appErrors.Clone(appErrors.ErrFileTooLarge, fmt.Sprintf("file exceeds %d bytes limit", r.maxSize))
	}
	if opts.EnforceAllowList {
		ext := strings.ToLower(extension(upload.Filename))
		if _, ok := r.allowed[ext]; !ok || ext == "" {
			return appErrors.WithDetails(
				appErrors.Clone(appErrors.ErrFileNotAllowed, fmt.Sprintf("file type not allowed: %s", upload.Filename)),
				map[string]interface{}{"allowed_extensions": r.allowedList()},
			)
		}
	}
	return nil
}

// Relay stores the upload and returns its key and public URL.
func (r *FileRelay) Relay(ctx context.Context, upload Upload, opts RelayOptions) (*RelayedFile, error) {
	if err := r.Check(upload, opts); err != nil {
		r.record(RelayResultRejected)
		r.logger.Warn("upload rejected", zap.String("filename", upload.Filename), zap.Error(err))
		return nil, err
	}

	contentType, err := detectContentType(upload)
	if err != nil {
		r.record(RelayResultFailed)
		return nil, err
	}

	key := uuid.NewString()
	if ext := extension(upload.Filename); ext != "" {
		key += "." + ext
	}
	err = r.store.Put(ctx, storage.PutObjectInput{
		Key:          key,
		Body:         upload.Content,
		Size:         upload.Size,
		ContentType:  contentType,
		CacheControl: r.cacheControl,
	})
	if err != nil {
		r.record(RelayResultFailed)
		r.logger.Error("upload failed", zap.String("filename", upload.Filename), zap.String("key", key), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrRelayFailed.Code, appErrors.ErrRelayFailed.Status, appErrors.ErrRelayFailed.Message)
	}

	r.record(RelayResultStored)
	url := r.store.PublicURL(key)
	r.logger.Info("file uploaded", zap.String("key", key), zap.String("content_type", contentType), zap.String("url", url))
	return &RelayedFile{Key: key, URL: url}, nil
}

// Discard removes stored objects after a later step failed. Errors are only logged.
func (r *FileRelay) Discard(ctx context.Context, files ...*RelayedFile) {
	for _, file := range files {
		if file == nil {
			continue
		}
		if err := r.store.Delete(ctx, file.Key); err != nil {
			r.logger.Warn("failed to discard uploaded file", zap.String("key", file.Key), zap.Error(err))
		}
	}
}

func (r *FileRelay) record(result string) {
	if r.metrics != nil {
		r.metrics.RecordRelay(result)
	}
}

func (r *FileRelay) allowedList() []string {
	list := make([]string, 0, len(r.allowed))
	for ext := range r.allowed {
		list = append(list, ext)
	}
	sort.Strings(list)
	return list
}

// extension returns the text after the last dot, keeping its case.
func extension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return ""
	}
	return filename[idx+1:]
}

func detectContentType(upload Upload) (string, error) {
	if upload.ContentType != "" {
		return upload.ContentType, nil
	}
	header := make([]byte, 512)
	n, err := upload.Content.Read(header)
	if err != nil && err != io.EOF {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to inspect file")
	}
	if _, err := upload.Content.Seek(0, io.SeekStart); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reset upload stream")
	}
	return http.DetectContentType(header[:n]), nil
}
