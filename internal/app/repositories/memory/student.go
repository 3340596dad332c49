package memory

import (
	"context"

	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/repositories"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/apperrors"
)

type studentRepository struct {
	db *DB
}

// NewStudentRepository creates an in-memory StudentRepository
func NewStudentRepository(db *DB) repositories.StudentRepository {
	return &studentRepository{db: db}
}

func byStudentName(a, b *models.Student) bool {
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.ID < b.ID
}

func (r *studentRepository) FindAll(ctx context.Context) ([]*models.Student, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()
	return collect(r.db.data.students, nil, byStudentName), nil
}

func (r *studentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	if s, ok := r.db.data.students[id]; ok {
		return &s, nil
	}
	return nil, notFound("student")
}

func (r *studentRepository) FindByIDs(ctx context.Context, ids []string) ([]*models.Student, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	seen := map[string]bool{}
	out := []*models.Student{}
	for _, id := range ids {
		if s, ok := r.db.data.students[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, &s)
		}
	}
	return out, nil
}

func (r *studentRepository) FindByStudentID(ctx context.Context, studentID string) (*models.Student, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	for _, s := range r.db.data.students {
		if s.StudentID == studentID {
			return &s, nil
		}
	}
	return nil, notFound("student")
}

func (r *studentRepository) Search(ctx context.Context, term string) ([]*models.Student, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	return collect(r.db.data.students, func(s *models.Student) bool {
		return contains(s.Name, term) || contains(s.StudentID, term)
	}, byStudentName), nil
}

func (r *studentRepository) uniqueStudentID(s *models.Student) error {
	for _, other := range r.db.data.students {
		if other.StudentID == s.StudentID && other.ID != s.ID {
			return apperrors.NewConflictError("a student with this studentID already exists")
		}
	}
	return nil
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	if err := student.Validate(); err != nil {
		return err
	}

	defer r.db.lockWrite(ctx)()

	if student.ID == "" {
		student.ID = repositories.NewID()
	}
	if err := r.uniqueStudentID(student); err != nil {
		return err
	}
	repositories.Timestamp(&student.CreatedAt, &student.UpdatedAt)
	put(ctx, r.db.data.students, student.ID, *student)
	return nil
}

func (r *studentRepository) Update(ctx context.Context, student *models.Student) error {
	if err := student.Validate(); err != nil {
		return err
	}

	defer r.db.lockWrite(ctx)()

	stored, ok := r.db.data.students[student.ID]
	if !ok {
		return notFound("student")
	}
	if err := r.uniqueStudentID(student); err != nil {
		return err
	}
	student.CreatedAt = stored.CreatedAt
	repositories.Timestamp(&student.CreatedAt, &student.UpdatedAt)
	put(ctx, r.db.data.students, student.ID, *student)
	return nil
}

func (r *studentRepository) Delete(ctx context.Context, id string) error {
	defer r.db.lockWrite(ctx)()

	if _, ok := r.db.data.students[id]; !ok {
		return notFound("student")
	}
	remove(ctx, r.db.data.students, id)
	return nil
}
