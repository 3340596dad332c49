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

// StudentService defines student operations
type StudentService interface {
	List(ctx context.Context) ([]*models.Student, error)
	Get(ctx context.Context, id string) (*models.Student, error)
	Search(ctx context.Context, term string) ([]*models.Student, error)
	Create(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error)
	Update(ctx context.Context, id string, req *dto.UpdateStudentRequest) (*models.Student, error)
	// Delete removes the student from every roster, deletes the document and then
	// tries to delete its uploaded files
	Delete(ctx context.Context, id string) error
	// UploadDocument stores a file in one of the student's document slots, replacing
	// the previous file
	UploadDocument(ctx context.Context, id string, kind models.DocumentKind, filename string, r io.Reader) (*models.Student, error)
}

type studentService struct {
	students repositories.StudentRepository
	tx       repositories.TxManager
	roster   RosterService
	media    MediaService
	logger   zerolog.Logger
}

// NewStudentService creates a StudentService
func NewStudentService(repos *repositories.Repositories, roster RosterService, media MediaService, logger zerolog.Logger) StudentService {
	return &studentService{
		students: repos.Students,
		tx:       repos.Tx,
		roster:   roster,
		media:    media,
		logger:   logger.With().Str("service", "student").Logger(),
	}
}

func (s *studentService) List(ctx context.Context) ([]*models.Student, error) {
	return s.students.FindAll(ctx)
}

func (s *studentService) Get(ctx context.Context, id string) (*models.Student, error) {
	return s.students.FindByID(ctx, id)
}

func (s *studentService) Search(ctx context.Context, term string) ([]*models.Student, error) {
	if strings.TrimSpace(term) == "" {
		return s.students.FindAll(ctx)
	}
	return s.students.Search(ctx, term)
}

// ensureUniqueStudentID fails with Conflict when another student already uses studentID
func (s *studentService) ensureUniqueStudentID(ctx context.Context, studentID, selfID string) error {
	existing, err := s.students.FindByStudentID(ctx, studentID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return apperrors.NewConflictError("a student with this studentID already exists")
	}
	return nil
}

func (s *studentService) Create(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	student := req.ToModel()
	if err := student.Validate(); err != nil {
		return nil, err
	}
	if err := s.ensureUniqueStudentID(ctx, student.StudentID, ""); err != nil {
		return nil, err
	}

	if err := s.students.Create(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", student.ID).Str("studentID", student.StudentID).Msg("Student created")
	return student, nil
}

func (s *studentService) Update(ctx context.Context, id string, req *dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.students.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previousStudentID := student.StudentID
	req.ApplyTo(student)
	if err := student.Validate(); err != nil {
		return nil, err
	}
	if student.StudentID != previousStudentID {
		if err := s.ensureUniqueStudentID(ctx, student.StudentID, student.ID); err != nil {
			return nil, err
		}
	}

	if err := s.students.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

func (s *studentService) Delete(ctx context.Context, id string) error {
	student, err := s.students.FindByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.roster.DetachStudent(ctx, id); err != nil {
			return err
		}
		return s.students.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.media.DeleteQuietly(ctx, student.Documents()...)
	s.logger.Info().Str("id", id).Str("studentID", student.StudentID).Msg("Student deleted")
	return nil
}

func (s *studentService) UploadDocument(ctx context.Context, id string, kind models.DocumentKind, filename string, r io.Reader) (*models.Student, error) {
	student, err := s.students.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	slot := student.Document(kind)
	if slot == nil {
		return nil, apperrors.NewValidationError("unknown document kind " + string(kind))
	}

	asset, err := s.media.Upload(ctx, filename, r, FolderStudents)
	if err != nil {
		return nil, err
	}

	previous := *slot
	*slot = asset
	if err := s.students.Update(ctx, student); err != nil {
		s.media.DeleteQuietly(ctx, asset)
		return nil, err
	}

	s.media.DeleteQuietly(ctx, previous)
	return student, nil
}
