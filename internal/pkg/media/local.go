package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Local stores files on the local filesystem. The public ID is the path relative to the base directory.
type Local struct {
	basePath string
	baseURL  string
	logger   zerolog.Logger
}

// NewLocal creates the base directory if needed. baseURL prefixes returned URLs.
func NewLocal(basePath, baseURL string, logger zerolog.Logger) (*Local, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	if baseURL == "" {
		baseURL = "/uploads"
	}
	return &Local{basePath: basePath, baseURL: strings.TrimRight(baseURL, "/"), logger: logger}, nil
}

// BasePath returns the directory files are written to
func (l *Local) BasePath() string {
	return l.basePath
}

func (l *Local) Upload(ctx context.Context, filename string, r io.Reader, folder string) (Asset, error) {
	key := objectName(folder, filename)
	dstPath := filepath.Join(l.basePath, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return Asset{}, fmt.Errorf("failed to create subdirectory: %w", err)
	}

	dst, err := os.Create(dstPath)
	if err != nil {
		return Asset{}, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		_ = os.Remove(dstPath)
		return Asset{}, fmt.Errorf("failed to save file content: %w", err)
	}

	l.logger.Debug().Str("filename", filename).Str("publicId", key).Msg("File saved")
	return Asset{URL: l.baseURL + "/" + key, PublicID: key}, nil
}

func (l *Local) Delete(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}

	clean := filepath.Clean(filepath.FromSlash(publicID))
	if filepath.IsAbs(clean) || clean == "." || strings.HasPrefix(clean, "..") {
		return fmt.Errorf("invalid file path: %s", publicID)
	}

	err := os.Remove(filepath.Join(l.basePath, clean))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
