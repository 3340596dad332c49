package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models/dto"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/repositories"
)

// SemesterService defines semester operations
type SemesterService interface {
	List(ctx context.Context) ([]*models.Semester, error)
	Get(ctx context.Context, id string) (*models.Semester, error)
	Create(ctx context.Context, req *dto.SemesterRequest) (*models.Semester, error)
	Update(ctx context.Context, id string, req *dto.SemesterRequest) (*models.Semester, error)
	// Delete leaves classes that reference the semester untouched
	Delete(ctx context.Context, id string) error
}

type semesterService struct {
	semesters repositories.SemesterRepository
	logger    zerolog.Logger
}

// NewSemesterService creates a SemesterService
func NewSemesterService(repos *repositories.Repositories, logger zerolog.Logger) SemesterService {
	return &semesterService{
		semesters: repos.Semesters,
		logger:    logger.With().Str("service", "semester").Logger(),
	}
}

func (s *semesterService) List(ctx context.Context) ([]*models.Semester, error) {
	return s.semesters.FindAll(ctx)
}

func (s *semesterService) Get(ctx context.Context, id string) (*models.Semester, error) {
	return s.semesters.FindByID(ctx, id)
}

func (s *semesterService) Create(ctx context.Context, req *dto.SemesterRequest) (*models.Semester, error) {
	semester := req.ToModel()
	if err := semester.Validate(); err != nil {
		return nil, err
	}
	if err := s.semesters.Create(ctx, semester); err != nil {
		return nil, err
	}
	s.logger.Info().Str("id", semester.ID).Str("name", semester.SemesterName).Msg("Semester created")
	return semester, nil
}

func (s *semesterService) Update(ctx context.Context, id string, req *dto.SemesterRequest) (*models.Semester, error) {
	current, err := s.semesters.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	semester := req.ToModel()
	semester.ID = current.ID
	semester.CreatedAt = current.CreatedAt
	if err := semester.Validate(); err != nil {
		return nil, err
	}
	if err := s.semesters.Update(ctx, semester); err != nil {
		return nil, err
	}
	return semester, nil
}

func (s *semesterService) Delete(ctx context.Context, id string) error {
	return s.semesters.Delete(ctx, id)
}
