package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models/dto"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/repositories"
)

// ClassService defines class document operations. Roster changes go through RosterService.
type ClassService interface {
	List(ctx context.Context) ([]*models.Class, error)
	Get(ctx context.Context, id string) (*models.Class, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]*models.Class, error)
	ListBySemester(ctx context.Context, semesterID string) ([]*models.Class, error)
	Create(ctx context.Context, req *dto.ClassRequest) (*models.Class, error)
	// Replace overwrites every client-editable field of the class
	Replace(ctx context.Context, id string, req *dto.ClassRequest) (*models.Class, error)
	Delete(ctx context.Context, id string) error
}

type classService struct {
	classes   repositories.ClassRepository
	teachers  repositories.TeacherRepository
	semesters repositories.SemesterRepository
	tx        repositories.TxManager
	roster    RosterService
	logger    zerolog.Logger
}

// NewClassService creates a ClassService
func NewClassService(repos *repositories.Repositories, roster RosterService, logger zerolog.Logger) ClassService {
	return &classService{
		classes:   repos.Classes,
		teachers:  repos.Teachers,
		semesters: repos.Semesters,
		tx:        repos.Tx,
		roster:    roster,
		logger:    logger.With().Str("service", "class").Logger(),
	}
}

func (s *classService) List(ctx context.Context) ([]*models.Class, error) {
	return s.classes.FindAll(ctx)
}

func (s *classService) Get(ctx context.Context, id string) (*models.Class, error) {
	return s.classes.FindByID(ctx, id)
}

func (s *classService) ListByTeacher(ctx context.Context, teacherID string) ([]*models.Class, error) {
	if _, err := s.teachers.FindByID(ctx, teacherID); err != nil {
		return nil, err
	}
	return s.classes.FindByTeacherID(ctx, teacherID)
}

func (s *classService) ListBySemester(ctx context.Context, semesterID string) ([]*models.Class, error) {
	if _, err := s.semesters.FindByID(ctx, semesterID); err != nil {
		return nil, err
	}
	return s.classes.FindBySemesterID(ctx, semesterID)
}

// checkReferences verifies the teacher (when set) and the semester exist
func (s *classService) checkReferences(ctx context.Context, class *models.Class) error {
	if err := class.Validate(); err != nil {
		return err
	}
	if class.TeacherID != "" {
		if _, err := s.teachers.FindByID(ctx, class.TeacherID); err != nil {
			return err
		}
	}
	_, err := s.semesters.FindByID(ctx, class.SemesterID)
	return err
}

func (s *classService) Create(ctx context.Context, req *dto.ClassRequest) (*models.Class, error) {
	class := req.ToModel()
	if err := s.checkReferences(ctx, class); err != nil {
		return nil, err
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.roster.CheckAssignable(ctx, "", class.Students); err != nil {
			return err
		}
		return s.classes.Create(ctx, class)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("classID", class.ID).Str("className", class.ClassName).Msg("Class created")
	return class, nil
}

func (s *classService) Replace(ctx context.Context, id string, req *dto.ClassRequest) (*models.Class, error) {
	replacement := req.ToModel()
	if err := s.checkReferences(ctx, replacement); err != nil {
		return nil, err
	}

	var class *models.Class
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.classes.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := s.roster.CheckAssignable(ctx, id, replacement.Students); err != nil {
			return err
		}

		replacement.ID = current.ID
		replacement.CreatedAt = current.CreatedAt
		if err := s.classes.Update(ctx, replacement); err != nil {
			return err
		}
		class = replacement
		return nil
	})
	if err != nil {
		return nil, err
	}
	return class, nil
}

func (s *classService) Delete(ctx context.Context, id string) error {
	if err := s.classes.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("classID", id).Msg("Class deleted")
	return nil
}
