package memory

import (
	"context"

	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/repositories"
)

type semesterRepository struct {
	db *DB
}

// NewSemesterRepository creates an in-memory SemesterRepository
func NewSemesterRepository(db *DB) repositories.SemesterRepository {
	return &semesterRepository{db: db}
}

func newestSemesterFirst(a, b *models.Semester) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID < b.ID
}

func (r *semesterRepository) FindAll(ctx context.Context) ([]*models.Semester, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()
	return collect(r.db.data.semesters, nil, newestSemesterFirst), nil
}

func (r *semesterRepository) FindByID(ctx context.Context, id string) (*models.Semester, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	if s, ok := r.db.data.semesters[id]; ok {
		return &s, nil
	}
	return nil, notFound("semester")
}

func (r *semesterRepository) FindByName(ctx context.Context, name string) ([]*models.Semester, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()
	return collect(r.db.data.semesters, func(s *models.Semester) bool { return s.SemesterName == name }, newestSemesterFirst), nil
}

func (r *semesterRepository) Create(ctx context.Context, semester *models.Semester) error {
	if err := semester.Validate(); err != nil {
		return err
	}

	defer r.db.lockWrite(ctx)()

	if semester.ID == "" {
		semester.ID = repositories.NewID()
	}
	repositories.Timestamp(&semester.CreatedAt, &semester.UpdatedAt)
	put(ctx, r.db.data.semesters, semester.ID, *semester)
	return nil
}

func (r *semesterRepository) Update(ctx context.Context, semester *models.Semester) error {
	if err := semester.Validate(); err != nil {
		return err
	}

	defer r.db.lockWrite(ctx)()

	stored, ok := r.db.data.semesters[semester.ID]
	if !ok {
		return notFound("semester")
	}
	semester.CreatedAt = stored.CreatedAt
	repositories.Timestamp(&semester.CreatedAt, &semester.UpdatedAt)
	put(ctx, r.db.data.semesters, semester.ID, *semester)
	return nil
}

func (r *semesterRepository) Delete(ctx context.Context, id string) error {
	defer r.db.lockWrite(ctx)()

	if _, ok := r.db.data.semesters[id]; !ok {
		return notFound("semester")
	}
	remove(ctx, r.db.data.semesters, id)
	return nil
}
