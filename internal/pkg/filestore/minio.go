// Package filestore stores uploaded documents in an S3-compatible object
// store. Uploads degrade to a marked placeholder URL when the store is
// unreachable so a document failure never sinks the owning workflow.
package filestore

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"

	"github.com/stellarion/backend/internal/config"
)

// PlaceholderPrefix marks URLs produced while the object store was
// unavailable. Such URLs are stored verbatim and never dereferenced.
const PlaceholderPrefix = "placeholder://"

// DocumentStore uploads application documents and images.
type DocumentStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
	logger  zerolog.Logger
}

// NewDocumentStore connects to the configured object store. A nil client
// (connection failure) is tolerated; every upload then degrades to a
// placeholder URL.
func NewDocumentStore(cfg config.StorageConfig, logger zerolog.Logger) *DocumentStore {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		logger.Warn().Err(err).Str("endpoint", cfg.Endpoint).
			Msg("Object store unavailable, uploads will use placeholder URLs")
		client = nil
	}
	return &DocumentStore{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		logger:  logger,
	}
}

// Upload stores a document under {category}/{ownerID}/{field}_{filename}
// and returns its public URL. Failures are logged and reported through a
// placeholder URL rather than an error.
func (s *DocumentStore) Upload(ctx context.Context, category string, ownerID int64, field, filename string, r io.Reader, size int64) string {
	objectName := fmt.Sprintf("%s/%d/%s_%s", category, ownerID, field, sanitizeFilename(filename))
	if s.client == nil {
		return PlaceholderPrefix + objectName
	}

	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, s.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("object", objectName).Msg("Document upload failed")
		return PlaceholderPrefix + objectName
	}
	return fmt.Sprintf("%s/%s/%s", s.baseURL, s.bucket, objectName)
}

// Remove deletes a stored object. Placeholder URLs are ignored.
func (s *DocumentStore) Remove(ctx context.Context, url string) error {
	if s.client == nil || strings.HasPrefix(url, PlaceholderPrefix) {
		return nil
	}
	prefix := fmt.Sprintf("%s/%s/", s.baseURL, s.bucket)
	objectName := strings.TrimPrefix(url, prefix)
	return s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{})
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
}
