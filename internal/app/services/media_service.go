package services

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/rs/zerolog"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/apperrors"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/media"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/metrics"
)

// Upload folders below the configured root folder
const (
	FolderStudents = "students"
	FolderTeachers = "teachers"
	FolderNews     = "news"
	FolderGeneral  = "uploads"
)

var allowedExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true, ".pdf": true,
}

// MediaService uploads files to the media host
type MediaService interface {
	Upload(ctx context.Context, filename string, r io.Reader, folder string) (models.MediaAsset, error)
	Delete(ctx context.Context, publicID string) error
	// DeleteQuietly removes assets and logs failures instead of returning them
	DeleteQuietly(ctx context.Context, assets ...models.MediaAsset)
}

type mediaService struct {
	storage    media.Storage
	rootFolder string
	metrics    *metrics.Metrics
	logger     zerolog.Logger
}

// NewMediaService creates a MediaService storing files below rootFolder
func NewMediaService(storage media.Storage, rootFolder string, m *metrics.Metrics, logger zerolog.Logger) MediaService {
	return &mediaService{
		storage:    storage,
		rootFolder: strings.Trim(rootFolder, "/"),
		metrics:    m,
		logger:     logger.With().Str("service", "media").Logger(),
	}
}

func (s *mediaService) folder(sub string) string {
	sub = strings.Trim(sub, "/")
	if strings.Contains(sub, "..") {
		sub = FolderGeneral
	}
	switch {
	case s.rootFolder == "":
		return sub
	case sub == "":
		return s.rootFolder
	default:
		return s.rootFolder + "/" + sub
	}
}

func (s *mediaService) Upload(ctx context.Context, filename string, r io.Reader, folder string) (models.MediaAsset, error) {
	if strings.TrimSpace(filename) == "" {
		return models.MediaAsset{}, apperrors.NewValidationError("file is required")
	}
	ext := strings.ToLower(path.Ext(filename))
	if !allowedExtensions[ext] {
		return models.MediaAsset{}, apperrors.NewValidationError("unsupported file type " + ext)
	}

	asset, err := s.storage.Upload(ctx, filename, r, s.folder(folder))
	s.metrics.ObserveExternal("media", err)
	if err != nil {
		s.logger.Error().Err(err).Str("filename", filename).Msg("Upload failed")
		return models.MediaAsset{}, apperrors.NewUpstreamError("failed to upload file", err)
	}

	s.logger.Info().Str("publicId", asset.PublicID).Msg("File uploaded")
	return models.MediaAsset{URL: asset.URL, PublicID: asset.PublicID}, nil
}

func (s *mediaService) Delete(ctx context.Context, publicID string) error {
	if strings.TrimSpace(publicID) == "" {
		return apperrors.NewValidationError("publicId is required")
	}

	err := s.storage.Delete(ctx, publicID)
	s.metrics.ObserveExternal("media", err)
	if err != nil {
		s.logger.Error().Err(err).Str("publicId", publicID).Msg("Delete failed")
		return apperrors.NewUpstreamError("failed to delete file", err)
	}
	return nil
}

func (s *mediaService) DeleteQuietly(ctx context.Context, assets ...models.MediaAsset) {
	for _, asset := range assets {
		if asset.PublicID == "" {
			continue
		}
		if err := s.Delete(ctx, asset.PublicID); err != nil {
			s.logger.Warn().Err(err).Str("publicId", asset.PublicID).Msg("Failed to delete media asset, leaving it orphaned")
		}
	}
}
