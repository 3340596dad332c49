package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/repositories"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/apperrors"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/metrics"
)

// RosterService keeps class rosters consistent: a student belongs to at most one class,
// transfers move students atomically, and teacher/semester changes leave the roster alone.
type RosterService interface {
	AddStudents(ctx context.Context, classID string, studentIDs []string) (*models.Class, error)
	RemoveStudents(ctx context.Context, classID string, studentIDs []string) (*models.Class, error)
	TransferStudents(ctx context.Context, sourceClassID, targetClassID string, studentIDs []string) (source, target *models.Class, err error)
	// UpdateClassTeacher assigns teacherID, or clears the teacher when it is nil or empty
	UpdateClassTeacher(ctx context.Context, classID string, teacherID *string) (*models.Class, error)
	ChangeSemester(ctx context.Context, classID, semesterID string) (*models.Class, error)
	GetRoster(ctx context.Context, classID string) (*models.Class, []*models.Student, error)
	FindClassOfStudent(ctx context.Context, studentID string) (*models.Class, error)

	// CheckAssignable verifies that every student exists and is on no roster other than
	// exceptClassID's. Class create and replace use it.
	CheckAssignable(ctx context.Context, exceptClassID string, studentIDs []string) error
	// DetachStudent removes a student from every roster
	DetachStudent(ctx context.Context, studentID string) error
}

type rosterService struct {
	classes   repositories.ClassRepository
	students  repositories.StudentRepository
	teachers  repositories.TeacherRepository
	semesters repositories.SemesterRepository
	tx        repositories.TxManager
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

// NewRosterService creates a RosterService
func NewRosterService(repos *repositories.Repositories, m *metrics.Metrics, logger zerolog.Logger) RosterService {
	return &rosterService{
		classes:   repos.Classes,
		students:  repos.Students,
		teachers:  repos.Teachers,
		semesters: repos.Semesters,
		tx:        repos.Tx,
		metrics:   m,
		logger:    logger.With().Str("service", "roster").Logger(),
	}
}

// loadStudents resolves ids and fails with NotFound naming the IDs that do not exist
func (s *rosterService) loadStudents(ctx context.Context, ids []string) ([]*models.Student, error) {
	found, err := s.students.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(found) == len(ids) {
		return found, nil
	}

	present := make(map[string]bool, len(found))
	for _, st := range found {
		present[st.ID] = true
	}
	var missing []string
	for _, id := range ids {
		if !present[id] {
			missing = append(missing, id)
		}
	}
	return nil, apperrors.NewNotFoundError("students not found: " + strings.Join(missing, ", "))
}

// checkOtherClasses fails with Conflict when any student is on a roster other than exceptClassID's
func (s *rosterService) checkOtherClasses(ctx context.Context, exceptClassID string, ids []string, students []*models.Student) error {
	holders, err := s.classes.FindContainingStudents(ctx, ids)
	if err != nil {
		return err
	}

	var clashes []string
	for _, holder := range holders {
		if holder.ID == exceptClassID {
			continue
		}
		var assigned []string
		for _, id := range ids {
			if holder.HasStudent(id) {
				assigned = append(assigned, id)
			}
		}
		if len(assigned) > 0 {
			clashes = append(clashes, fmt.Sprintf("%s (%s)", studentNames(assigned, students), holder.ClassName))
		}
	}
	if len(clashes) > 0 {
		return apperrors.NewRosterConflictError("students already assigned to another class: " + strings.Join(clashes, "; "))
	}
	return nil
}

// AddStudents appends students to a class roster after checking that none of them is
// already on this or any other roster
func (s *rosterService) AddStudents(ctx context.Context, classID string, studentIDs []string) (class *models.Class, err error) {
	defer func() { s.metrics.ObserveRoster("add", err) }()

	ids := dedupe(studentIDs)
	if len(ids) == 0 {
		return nil, apperrors.NewValidationError("studentIds must contain at least one student")
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		c, err := s.classes.FindByIDForUpdate(ctx, classID)
		if err != nil {
			return err
		}

		students, err := s.loadStudents(ctx, ids)
		if err != nil {
			return err
		}

		var already []string
		for _, id := range ids {
			if c.HasStudent(id) {
				already = append(already, id)
			}
		}
		if len(already) > 0 {
			return apperrors.NewRosterConflictError("students already in this class: " + studentNames(already, students))
		}

		if err := s.checkOtherClasses(ctx, c.ID, ids, students); err != nil {
			return err
		}

		c.Students = append(c.Students, ids...)
		if err := s.classes.Update(ctx, c); err != nil {
			return err
		}
		class = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("classID", classID).Int("added", len(ids)).Msg("Students added to class")
	return class, nil
}

// RemoveStudents drops the given IDs from a roster. IDs not on the roster are ignored.
func (s *rosterService) RemoveStudents(ctx context.Context, classID string, studentIDs []string) (class *models.Class, err error) {
	defer func() { s.metrics.ObserveRoster("remove", err) }()

	ids := dedupe(studentIDs)
	if len(ids) == 0 {
		return nil, apperrors.NewValidationError("studentIds must contain at least one student")
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		c, err := s.classes.FindByIDForUpdate(ctx, classID)
		if err != nil {
			return err
		}

		remaining := without(c.Students, ids)
		if len(remaining) != len(c.Students) {
			c.Students = remaining
			if err := s.classes.Update(ctx, c); err != nil {
				return err
			}
		}
		class = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("classID", classID).Strs("studentIDs", ids).Msg("Students removed from class")
	return class, nil
}

// TransferStudents moves students from source to target in one transaction. All checks
// run before the first write; a failed write leaves both rosters unchanged.
func (s *rosterService) TransferStudents(ctx context.Context, sourceClassID, targetClassID string, studentIDs []string) (source, target *models.Class, err error) {
	defer func() { s.metrics.ObserveRoster("transfer", err) }()

	ids := dedupe(studentIDs)
	if len(ids) == 0 {
		return nil, nil, apperrors.NewValidationError("studentIds must contain at least one student")
	}
	if sourceClassID == targetClassID {
		return nil, nil, apperrors.NewValidationError("source and target class must be different")
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		src, dst, err := s.lockPair(ctx, sourceClassID, targetClassID)
		if err != nil {
			return err
		}

		students, err := s.students.FindByIDs(ctx, ids)
		if err != nil {
			return err
		}

		var notInSource, inTarget []string
		for _, id := range ids {
			if !src.HasStudent(id) {
				notInSource = append(notInSource, id)
			}
			if dst.HasStudent(id) {
				inTarget = append(inTarget, id)
			}
		}
		if len(notInSource) > 0 {
			return apperrors.NewValidationError("students not in source class: " + studentNames(notInSource, students))
		}
		if len(inTarget) > 0 {
			return apperrors.NewRosterConflictError("students already in target class: " + studentNames(inTarget, students))
		}

		src.Students = without(src.Students, ids)
		if err := s.classes.Update(ctx, src); err != nil {
			return err
		}
		dst.Students = append(dst.Students, ids...)
		if err := s.classes.Update(ctx, dst); err != nil {
			return err
		}

		source, target = src, dst
		return nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("sourceClassID", sourceClassID).Str("targetClassID", targetClassID).Msg("Transfer aborted")
		return nil, nil, err
	}

	s.logger.Info().Str("sourceClassID", sourceClassID).Str("targetClassID", targetClassID).Int("moved", len(ids)).Msg("Students transferred")
	return source, target, nil
}

// lockPair locks both classes in ID order so concurrent transfers in opposite directions
// cannot deadlock
func (s *rosterService) lockPair(ctx context.Context, sourceID, targetID string) (*models.Class, *models.Class, error) {
	firstID, secondID := sourceID, targetID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}

	first, err := s.classes.FindByIDForUpdate(ctx, firstID)
	if err != nil {
		return nil, nil, err
	}
	second, err := s.classes.FindByIDForUpdate(ctx, secondID)
	if err != nil {
		return nil, nil, err
	}

	if first.ID == sourceID {
		return first, second, nil
	}
	return second, first, nil
}

// UpdateClassTeacher changes only the teacher of a class
func (s *rosterService) UpdateClassTeacher(ctx context.Context, classID string, teacherID *string) (class *models.Class, err error) {
	defer func() { s.metrics.ObserveRoster("update_teacher", err) }()

	newTeacherID := ""
	if teacherID != nil {
		newTeacherID = strings.TrimSpace(*teacherID)
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		c, err := s.classes.FindByIDForUpdate(ctx, classID)
		if err != nil {
			return err
		}

		if newTeacherID != "" {
			if _, err := s.teachers.FindByID(ctx, newTeacherID); err != nil {
				return err
			}
		}

		c.TeacherID = newTeacherID
		if err := s.classes.Update(ctx, c); err != nil {
			return err
		}
		class = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return class, nil
}

// ChangeSemester changes only the semester of a class
func (s *rosterService) ChangeSemester(ctx context.Context, classID, semesterID string) (class *models.Class, err error) {
	defer func() { s.metrics.ObserveRoster("change_semester", err) }()

	semesterID = strings.TrimSpace(semesterID)
	if semesterID == "" {
		return nil, apperrors.NewValidationError("semesterID is required")
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		c, err := s.classes.FindByIDForUpdate(ctx, classID)
		if err != nil {
			return err
		}
		if _, err := s.semesters.FindByID(ctx, semesterID); err != nil {
			return err
		}

		c.SemesterID = semesterID
		if err := s.classes.Update(ctx, c); err != nil {
			return err
		}
		class = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return class, nil
}

// GetRoster returns a class and its students in roster order. IDs of deleted students are skipped.
func (s *rosterService) GetRoster(ctx context.Context, classID string) (*models.Class, []*models.Student, error) {
	c, err := s.classes.FindByID(ctx, classID)
	if err != nil {
		return nil, nil, err
	}

	students, err := s.students.FindByIDs(ctx, c.Students)
	if err != nil {
		return nil, nil, err
	}
	return c, students, nil
}

// FindClassOfStudent returns the class whose roster holds studentID
func (s *rosterService) FindClassOfStudent(ctx context.Context, studentID string) (*models.Class, error) {
	if _, err := s.students.FindByID(ctx, studentID); err != nil {
		return nil, err
	}

	holders, err := s.classes.FindContainingStudents(ctx, []string{studentID})
	if err != nil {
		return nil, err
	}
	if len(holders) == 0 {
		return nil, apperrors.NewNotFoundError("student is not assigned to any class")
	}
	if len(holders) > 1 {
		s.logger.Error().Str("studentID", studentID).Int("classes", len(holders)).Msg("Student found on more than one roster")
	}
	return holders[0], nil
}

func (s *rosterService) CheckAssignable(ctx context.Context, exceptClassID string, studentIDs []string) error {
	ids := dedupe(studentIDs)
	if len(ids) == 0 {
		return nil
	}
	if len(ids) != len(studentIDs) {
		return apperrors.NewValidationError("students must not contain blank or repeated IDs")
	}

	students, err := s.loadStudents(ctx, ids)
	if err != nil {
		return err
	}
	return s.checkOtherClasses(ctx, exceptClassID, ids, students)
}

func (s *rosterService) DetachStudent(ctx context.Context, studentID string) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		holders, err := s.classes.FindContainingStudents(ctx, []string{studentID})
		if err != nil {
			return err
		}
		for _, holder := range holders {
			c, err := s.classes.FindByIDForUpdate(ctx, holder.ID)
			if err != nil {
				return err
			}
			c.Students = without(c.Students, []string{studentID})
			if err := s.classes.Update(ctx, c); err != nil {
				return err
			}
			s.logger.Info().Str("classID", c.ID).Str("studentID", studentID).Msg("Student detached from class")
		}
		return nil
	})
}
