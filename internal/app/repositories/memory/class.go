package memory

import (
	"context"

	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/repositories"
)

type classRepository struct {
	db *DB
}

// NewClassRepository creates an in-memory ClassRepository
func NewClassRepository(db *DB) repositories.ClassRepository {
	return &classRepository{db: db}
}

func byClassName(a, b *models.Class) bool {
	if a.ClassName != b.ClassName {
		return a.ClassName < b.ClassName
	}
	return a.ID < b.ID
}

// classes copies the matching classes so callers never share a roster slice with the store
func (r *classRepository) classes(keep func(*models.Class) bool) []*models.Class {
	out := collect(r.db.data.classes, keep, byClassName)
	for i, c := range out {
		out[i] = c.Clone()
	}
	return out
}

func (r *classRepository) FindAll(ctx context.Context) ([]*models.Class, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()
	return r.classes(nil), nil
}

func (r *classRepository) FindByID(ctx context.Context, id string) (*models.Class, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	if c, ok := r.db.data.classes[id]; ok {
		return c.Clone(), nil
	}
	return nil, notFound("class")
}

// FindByIDForUpdate reads like FindByID. Roster writers are serialized by the
// transaction lock instead of row locks.
func (r *classRepository) FindByIDForUpdate(ctx context.Context, id string) (*models.Class, error) {
	return r.FindByID(ctx, id)
}

func (r *classRepository) FindByName(ctx context.Context, name string) ([]*models.Class, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()
	return r.classes(func(c *models.Class) bool { return c.ClassName == name }), nil
}

func (r *classRepository) FindByTeacherID(ctx context.Context, teacherID string) ([]*models.Class, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()
	return r.classes(func(c *models.Class) bool { return c.TeacherID == teacherID }), nil
}

func (r *classRepository) FindBySemesterID(ctx context.Context, semesterID string) ([]*models.Class, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()
	return r.classes(func(c *models.Class) bool { return c.SemesterID == semesterID }), nil
}

func (r *classRepository) FindContainingStudents(ctx context.Context, studentIDs []string) ([]*models.Class, error) {
	if len(studentIDs) == 0 {
		return []*models.Class{}, nil
	}

	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()
	return r.classes(func(c *models.Class) bool {
		for _, id := range studentIDs {
			if c.HasStudent(id) {
				return true
			}
		}
		return false
	}), nil
}

func (r *classRepository) store(ctx context.Context, class *models.Class) {
	stored := class.Clone()
	if stored.Students == nil {
		stored.Students = []string{}
	}
	put(ctx, r.db.data.classes, class.ID, *stored)
}

func (r *classRepository) Create(ctx context.Context, class *models.Class) error {
	if err := class.Validate(); err != nil {
		return err
	}

	defer r.db.lockWrite(ctx)()

	if class.ID == "" {
		class.ID = repositories.NewID()
	}
	if class.Students == nil {
		class.Students = []string{}
	}
	repositories.Timestamp(&class.CreatedAt, &class.UpdatedAt)
	r.store(ctx, class)
	return nil
}

func (r *classRepository) Update(ctx context.Context, class *models.Class) error {
	if err := class.Validate(); err != nil {
		return err
	}

	defer r.db.lockWrite(ctx)()

	stored, ok := r.db.data.classes[class.ID]
	if !ok {
		return notFound("class")
	}
	class.CreatedAt = stored.CreatedAt
	repositories.Timestamp(&class.CreatedAt, &class.UpdatedAt)
	r.store(ctx, class)
	return nil
}

func (r *classRepository) Delete(ctx context.Context, id string) error {
	defer r.db.lockWrite(ctx)()

	if _, ok := r.db.data.classes[id]; !ok {
		return notFound("class")
	}
	remove(ctx, r.db.data.classes, id)
	return nil
}
