package storage

import (
	"context"
	"fmt"
	"io"
)

// Storage abstracts the blob store holding uploaded verification documents.
type Storage interface {
	// Save writes the document under the given key.
	Save(ctx context.Context, path string, reader io.Reader, contentType string) error

	// Get opens the document for reading. Caller closes.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the document. Missing documents are not an error.
	Delete(ctx context.Context, path string) error

	// Exists reports whether a document is stored under the key.
	Exists(ctx context.Context, path string) (bool, error)

	// GetURL returns a URL the document can be fetched from.
	GetURL(ctx context.Context, path string) (string, error)
}

// Config holds blob store settings.
type Config struct {
	Type      string // "local" or "cloudflare_r2"
	BasePath  string // local: directory for files
	BaseURL   string // public URL prefix
	Bucket    string // r2: bucket name
	Endpoint  string // r2: account endpoint
	AccessKey string
	SecretKey string
}

// NewStorage creates the backend named by cfg.Type.
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local", "":
		return NewLocalStorage(cfg.BasePath, cfg.BaseURL)
	case "cloudflare_r2":
		return NewCloudflareR2Storage(cfg)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
