package memory

import (
	"context"

	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/repositories"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/apperrors"
)

type teacherRepository struct {
	db *DB
}

// NewTeacherRepository creates an in-memory TeacherRepository
func NewTeacherRepository(db *DB) repositories.TeacherRepository {
	return &teacherRepository{db: db}
}

func byTeacherName(a, b *models.Teacher) bool {
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.ID < b.ID
}

func (r *teacherRepository) FindAll(ctx context.Context) ([]*models.Teacher, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()
	return collect(r.db.data.teachers, nil, byTeacherName), nil
}

func (r *teacherRepository) FindByID(ctx context.Context, id string) (*models.Teacher, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	if t, ok := r.db.data.teachers[id]; ok {
		return &t, nil
	}
	return nil, notFound("teacher")
}

func (r *teacherRepository) FindByTeacherID(ctx context.Context, teacherID string) (*models.Teacher, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	for _, t := range r.db.data.teachers {
		if t.TeacherID == teacherID {
			return &t, nil
		}
	}
	return nil, notFound("teacher")
}

func (r *teacherRepository) FindByName(ctx context.Context, name string) ([]*models.Teacher, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	return collect(r.db.data.teachers, func(t *models.Teacher) bool { return t.Name == name }, byTeacherName), nil
}

func (r *teacherRepository) Search(ctx context.Context, term string) ([]*models.Teacher, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	return collect(r.db.data.teachers, func(t *models.Teacher) bool {
		return contains(t.Name, term) || contains(t.TeacherID, term) || contains(t.Phone, term)
	}, byTeacherName), nil
}

func (r *teacherRepository) uniqueTeacherID(t *models.Teacher) error {
	for _, other := range r.db.data.teachers {
		if other.TeacherID == t.TeacherID && other.ID != t.ID {
			return apperrors.NewConflictError("a teacher with this teacherID already exists")
		}
	}
	return nil
}

func (r *teacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	if err := teacher.Validate(); err != nil {
		return err
	}

	defer r.db.lockWrite(ctx)()

	if teacher.ID == "" {
		teacher.ID = repositories.NewID()
	}
	if err := r.uniqueTeacherID(teacher); err != nil {
		return err
	}
	repositories.Timestamp(&teacher.CreatedAt, &teacher.UpdatedAt)
	put(ctx, r.db.data.teachers, teacher.ID, *teacher)
	return nil
}

func (r *teacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	if err := teacher.Validate(); err != nil {
		return err
	}

	defer r.db.lockWrite(ctx)()

	stored, ok := r.db.data.teachers[teacher.ID]
	if !ok {
		return notFound("teacher")
	}
	if err := r.uniqueTeacherID(teacher); err != nil {
		return err
	}
	teacher.CreatedAt = stored.CreatedAt
	repositories.Timestamp(&teacher.CreatedAt, &teacher.UpdatedAt)
	put(ctx, r.db.data.teachers, teacher.ID, *teacher)
	return nil
}

func (r *teacherRepository) Delete(ctx context.Context, id string) error {
	defer r.db.lockWrite(ctx)()

	if _, ok := r.db.data.teachers[id]; !ok {
		return notFound("teacher")
	}
	remove(ctx, r.db.data.teachers, id)
	return nil
}
