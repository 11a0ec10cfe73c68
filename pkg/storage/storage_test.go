package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mineral-licensing-api/pkg/config"
)

func TestLocalStoragePutAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir, "http://localhost:5000/uploads/")
	require.NoError(t, err)

	err = store.Put(context.Background(), PutObjectInput{Key: "abc.pdf", Body: strings.NewReader("%PDF-1.4")})
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "abc.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(content))
	assert.Equal(t, "http://localhost:5000/uploads/abc.pdf", store.PublicURL("abc.pdf"))

	require.NoError(t, store.Delete(context.Background(), "abc.pdf"))
	_, err = os.Stat(filepath.Join(dir, "abc.pdf"))
	assert.True(t, os.IsNotExist(err))
	require.NoError(t, store.Delete(context.Background(), "abc.pdf"))
}

func TestLocalStorageKeepsKeysInsideBaseDir(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(filepath.Join(dir, "uploads"), "")
	require.NoError(t, err)

	require.NoError(t, store.Put(context.Background(), PutObjectInput{Key: "../escape.txt", Body: strings.NewReader("x")}))
	_, err = os.Stat(filepath.Join(dir, "uploads", "escape.txt"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "escape.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorageRejectsDuplicateKey(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)
	in := PutObjectInput{Key: "dup.png", Body: strings.NewReader("a")}
	require.NoError(t, store.Put(context.Background(), in))
	in.Body = strings.NewReader("b")
	assert.Error(t, store.Put(context.Background(), in))
}

func TestLocalStoragePing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := NewLocalStorage(dir, "")
	require.NoError(t, err)
	require.NoError(t, store.Ping(context.Background()))

	require.NoError(t, os.RemoveAll(dir))
	assert.Error(t, store.Ping(context.Background()))
}

type fakeS3 struct {
	putInput  *s3.PutObjectInput
	putBody   []byte
	putErr    error
	putNilOut bool
	deleted   []string
	headErr   error
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.putInput = params
	if params.Body != nil {
		f.putBody, _ = io.ReadAll(params.Body)
	}
	if f.putErr != nil {
		return nil, f.putErr
	}
	if f.putNilOut {
		return nil, nil
	}
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleted = append(f.deleted, aws.ToString(params.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) HeadBucket(ctx context.Context, params *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	if f.headErr != nil {
		return nil, f.headErr
	}
	return &s3.HeadBucketOutput{}, nil
}

func TestS3StorePutBuffersStreams(t *testing.T) {
	fake := &fakeS3{}
	store := &S3Store{client: fake, bucket: "documents"}

	body := io.NopCloser(bytes.NewBufferString("hello"))
	err := store.Put(context.Background(), PutObjectInput{
		Key:          "k.png",
		Body:         body,
		ContentType:  "image/png",
		CacheControl: "max-age=3600",
	})
	require.NoError(t, err)

	require.NotNil(t, fake.putInput)
	assert.Equal(t, "documents", aws.ToString(fake.putInput.Bucket))
	assert.Equal(t, "k.png", aws.ToString(fake.putInput.Key))
	assert.Equal(t, "image/png", aws.ToString(fake.putInput.ContentType))
	assert.Equal(t, "max-age=3600", aws.ToString(fake.putInput.CacheControl))
	assert.Equal(t, int64(5), aws.ToInt64(fake.putInput.ContentLength))
	assert.Equal(t, "hello", string(fake.putBody))
}

func TestS3StorePutFailures(t *testing.T) {
	fake := &fakeS3{putErr: errors.New("denied")}
	store := &S3Store{client: fake, bucket: "documents"}
	err := store.Put(context.Background(), PutObjectInput{Key: "a", Body: strings.NewReader("x")})
	assert.ErrorContains(t, err, "denied")

	fake = &fakeS3{putNilOut: true}
	store = &S3Store{client: fake, bucket: "documents"}
	err = store.Put(context.Background(), PutObjectInput{Key: "a", Body: strings.NewReader("x")})
	assert.ErrorContains(t, err, "no response")

	assert.Error(t, store.Put(context.Background(), PutObjectInput{Key: "", Body: strings.NewReader("x")}))
}

func TestS3StoreDeleteAndPing(t *testing.T) {
	fake := &fakeS3{}
	store := &S3Store{client: fake, bucket: "documents"}
	require.NoError(t, store.Delete(context.Background(), "old.pdf"))
	assert.Equal(t, []string{"old.pdf"}, fake.deleted)
	require.NoError(t, store.Ping(context.Background()))

	fake.headErr = errors.New("not found")
	assert.ErrorContains(t, store.Ping(context.Background()), "documents")
}

func TestS3StorePublicURL(t *testing.T) {
	store := &S3Store{bucket: "documents", region: "eu-west-1"}
	assert.Equal(t, "https://documents.s3.eu-west-1.amazonaws.com/a.pdf", store.PublicURL("a.pdf"))

	store.endpoint = "https://proj.supabase.co/storage/v1/s3"
	assert.Equal(t, "https://proj.supabase.co/storage/v1/s3/documents/a.pdf", store.PublicURL("a.pdf"))

	store.publicBaseURL = "https://proj.supabase.co/storage/v1/object/public/documents"
	assert.Equal(t, "https://proj.supabase.co/storage/v1/object/public/documents/a.pdf", store.PublicURL("a.pdf"))
}

func TestNewS3StoreAgainstEndpoint(t *testing.T) {
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(t.TempDir(), "config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(t.TempDir(), "credentials"))

	var (
		mu       sync.Mutex
		requests []string
		uploaded []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		requests = append(requests, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodPut {
			uploaded, _ = io.ReadAll(r.Body)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store, err := NewS3Store(context.Background(), config.StorageConfig{
		Bucket:          "documents",
		Region:          "us-east-1",
		Endpoint:        srv.URL,
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
	})
	require.NoError(t, err)

	require.NoError(t, store.Ping(context.Background()))
	require.NoError(t, store.Put(context.Background(), PutObjectInput{Key: "file.pdf", Body: strings.NewReader("pdf")}))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"HEAD /documents", "PUT /documents/file.pdf"}, requests)
	assert.Equal(t, "pdf", string(uploaded))
	assert.Equal(t, srv.URL+"/documents/file.pdf", store.PublicURL("file.pdf"))
}

func TestNewS3StoreRequiresBucket(t *testing.T) {
	_, err := NewS3Store(context.Background(), config.StorageConfig{Region: "us-east-1"})
	assert.Error(t, err)
}
