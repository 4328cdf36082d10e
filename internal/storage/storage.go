package storage

import (
	"context"
	"emogo-service/internal/config"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

var (
	ErrNotFound    = errors.New("file not found")
	ErrInvalidName = errors.New("invalid file name")
)

// Object is an opened stored file. Size is -1 when unknown.
type Object struct {
	Body        io.ReadCloser
	Size        int64
	ContentType string
}

// FileStore keeps uploaded videos keyed by their original file name.
// Save overwrites an existing file of the same name.
type FileStore interface {
	Save(ctx context.Context, name string, r io.Reader) error
	Exists(ctx context.Context, name string) (bool, error)
	Open(ctx context.Context, name string) (*Object, error)
}

// New builds the FileStore selected by storage.driver.
func New(ctx context.Context, cfg *config.Config) (FileStore, error) {
	switch cfg.Storage.Driver {
	case "local":
		return NewLocalStore(cfg.Storage.Dir)
	case "s3":
		return NewS3Store(ctx, cfg.AWS.Region, cfg.AWS.Bucket, cfg.AWS.Endpoint, cfg.S3.Prefix)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// CleanName accepts only a plain file name, never a path.
func CleanName(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return name, nil
}

// ContentType guesses a MIME type from the file extension.
func ContentType(name string) string {
	if ct := utils.GetMIME(filepath.Ext(name)); ct != "" {
		return ct
	}
	return fiber.MIMEOctetStream
}
