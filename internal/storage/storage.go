package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store persists product images and returns their public URL.
type Store interface {
	Save(ctx context.Context, img Image) (string, error)
}

// Image is an uploaded product image.
type Image struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// objectName returns a collision-free name that keeps the upload's extension.
func objectName(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return uuid.NewString() + ext
}
