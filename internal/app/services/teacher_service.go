package services

import (
	"context"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models/dto"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/repositories"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/apperrors"
)

// TeacherService defines teacher operations
type TeacherService interface {
	List(ctx context.Context) ([]*models.Teacher, error)
	Get(ctx context.Context, id string) (*models.Teacher, error)
	Search(ctx context.Context, term string) ([]*models.Teacher, error)
	Create(ctx context.Context, req *dto.CreateTeacherRequest) (*models.Teacher, error)
	Update(ctx context.Context, id string, req *dto.UpdateTeacherRequest) (*models.Teacher, error)
	// Delete leaves classes that reference the teacher untouched
	Delete(ctx context.Context, id string) error
	UploadAvatar(ctx context.Context, id, filename string, r io.Reader) (*models.Teacher, error)
}

type teacherService struct {
	teachers repositories.TeacherRepository
	media    MediaService
	logger   zerolog.Logger
}

// NewTeacherService creates a TeacherService
func NewTeacherService(repos *repositories.Repositories, media MediaService, logger zerolog.Logger) TeacherService {
	return &teacherService{
		teachers: repos.Teachers,
		media:    media,
		logger:   logger.With().Str("service", "teacher").Logger(),
	}
}

func (s *teacherService) List(ctx context.Context) ([]*models.Teacher, error) {
	return s.teachers.FindAll(ctx)
}

func (s *teacherService) Get(ctx context.Context, id string) (*models.Teacher, error) {
	return s.teachers.FindByID(ctx, id)
}

func (s *teacherService) Search(ctx context.Context, term string) ([]*models.Teacher, error) {
	if strings.TrimSpace(term) == "" {
		return s.teachers.FindAll(ctx)
	}
	return s.teachers.Search(ctx, term)
}

func (s *teacherService) ensureUniqueTeacherID(ctx context.Context, teacherID, selfID string) error {
	existing, err := s.teachers.FindByTeacherID(ctx, teacherID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return apperrors.NewConflictError("a teacher with this teacherID already exists")
	}
	return nil
}

func (s *teacherService) Create(ctx context.Context, req *dto.CreateTeacherRequest) (*models.Teacher, error) {
	teacher := req.ToModel()
	if err := teacher.Validate(); err != nil {
		return nil, err
	}
	if err := s.ensureUniqueTeacherID(ctx, teacher.TeacherID, ""); err != nil {
		return nil, err
	}

	if err := s.teachers.Create(ctx, teacher); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", teacher.ID).Str("teacherID", teacher.TeacherID).Msg("Teacher created")
	return teacher, nil
}

func (s *teacherService) Update(ctx context.Context, id string, req *dto.UpdateTeacherRequest) (*models.Teacher, error) {
	teacher, err := s.teachers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previousTeacherID := teacher.TeacherID
	req.ApplyTo(teacher)
	if err := teacher.Validate(); err != nil {
		return nil, err
	}
	if teacher.TeacherID != previousTeacherID {
		if err := s.ensureUniqueTeacherID(ctx, teacher.TeacherID, teacher.ID); err != nil {
			return nil, err
		}
	}

	if err := s.teachers.Update(ctx, teacher); err != nil {
		return nil, err
	}
	return teacher, nil
}

func (s *teacherService) Delete(ctx context.Context, id string) error {
	teacher, err := s.teachers.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.teachers.Delete(ctx, id); err != nil {
		return err
	}

	s.media.DeleteQuietly(ctx, teacher.Avatar)
	s.logger.Info().Str("id", id).Msg("Teacher deleted")
	return nil
}

func (s *teacherService) UploadAvatar(ctx context.Context, id, filename string, r io.Reader) (*models.Teacher, error) {
	teacher, err := s.teachers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	asset, err := s.media.Upload(ctx, filename, r, FolderTeachers)
	if err != nil {
		return nil, err
	}

	previous := teacher.Avatar
	teacher.Avatar = asset
	if err := s.teachers.Update(ctx, teacher); err != nil {
		s.media.DeleteQuietly(ctx, asset)
		return nil, err
	}

	s.media.DeleteQuietly(ctx, previous)
	return teacher, nil
}
