package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// fileStore implements Store on the local file system. Files are served from baseURL.
type fileStore struct {
	dir     string
	baseURL string
	logger  zerolog.Logger
}

// NewFileStore creates a store writing into dir. The directory is created if missing.
func NewFileStore(dir, baseURL string, logger zerolog.Logger) (Store, error) {
	logger = logger.With().Str("component", "file-image-store").Logger()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Error().Err(err).Str("dir", dir).Msg("failed to create upload directory")
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}

	return &fileStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}, nil
}

// Save writes the image under a generated name.
func (s *fileStore) Save(ctx context.Context, img Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := objectName(img.Filename)
	path := filepath.Join(s.dir, name)

	file, err := os.Create(path)
	if err != nil {
		s.logger.Error().Err(err).Str("path", path).Msg("failed to create image file")
		return "", fmt.Errorf("failed to create image file %s: %w", path, err)
	}

	written, err := io.Copy(file, img.Body)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		s.logger.Error().Err(err).Str("path", path).Msg("failed to write image file")
		return "", fmt.Errorf("failed to write image file %s: %w", path, err)
	}

	s.logger.Info().
		Str("path", path).
		Int64("bytes", written).
		Msg("image stored on local file system")

	return s.baseURL + "/" + name, nil
}
