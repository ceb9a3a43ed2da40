package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Object identifies an uploaded file. Key is the host's object key; callers
// persist it next to the URL so deletion never parses the URL.
type Object struct {
	Key string
	URL string
}

// Host is the external media host the content service uploads to.
type Host interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (Object, error)
	Destroy(ctx context.Context, key string) error
}

// MinioHost implements Host for MinIO/S3 compatible storage. Uploaded objects
// are addressed by stable public URLs under baseURL.
type MinioHost struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewMinioHost connects to MinIO and ensures the bucket exists. baseURL is the
// public prefix the website serves media from; when empty, URLs are built from
// the endpoint and bucket.
func NewMinioHost(endpoint, accessKey, secretKey, bucket, baseURL string, useSSL bool) (*MinioHost, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}
	if baseURL == "" {
		scheme := "http"
		if useSSL {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s/%s", scheme, endpoint, bucket)
	}
	return &MinioHost{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Upload stores an object under key.
func (m *MinioHost) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (Object, error) {
	if _, err := m.client.PutObject(ctx, m.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType}); err != nil {
		return Object{}, fmt.Errorf("put object: %w", err)
	}
	return Object{Key: key, URL: m.baseURL + "/" + key}, nil
}

// Destroy removes an object.
func (m *MinioHost) Destroy(ctx context.Context, key string) error {
	if err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

// KeyFromURL recovers a deletable identifier from a stored URL: the last path
// segment with its extension stripped. Only rows written before object keys
// were stored need this; the extraction rule matches what those rows' host
// expected and must not change.
func KeyFromURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return ""
	}
	if i := strings.IndexAny(rawURL, "?#"); i >= 0 {
		rawURL = rawURL[:i]
	}
	segment := path.Base(rawURL)
	if segment == "." || segment == "/" {
		return ""
	}
	return strings.TrimSuffix(segment, path.Ext(segment))
}
