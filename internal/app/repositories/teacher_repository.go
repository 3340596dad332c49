package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/apperrors"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/dberrors"
)

var teacherColumns = []string{
	"id", "teacher_id", "name", "gender", "phone", "date_of_birth",
	"avatar_url", "avatar_public_id", "created_at", "updated_at",
}

// PgTeacherRepository handles teacher database operations
type PgTeacherRepository struct {
	base
}

// NewTeacherRepository creates a new PgTeacherRepository
func NewTeacherRepository(pool *pgxpool.Pool) *PgTeacherRepository {
	return &PgTeacherRepository{base: newBase(pool)}
}

func scanTeacher(row pgx.Row) (*models.Teacher, error) {
	t := &models.Teacher{}
	err := row.Scan(&t.ID, &t.TeacherID, &t.Name, &t.Gender, &t.Phone, &t.DateOfBirth,
		&t.Avatar.URL, &t.Avatar.PublicID, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r *PgTeacherRepository) list(ctx context.Context, op string, q squirrel.SelectBuilder) ([]*models.Teacher, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, opError(op, err)
	}

	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, opError(op, err)
	}
	defer rows.Close()

	teachers := []*models.Teacher{}
	for rows.Next() {
		t, err := scanTeacher(rows)
		if err != nil {
			return nil, opError(op, err)
		}
		teachers = append(teachers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, opError(op, err)
	}
	return teachers, nil
}

func (r *PgTeacherRepository) one(ctx context.Context, op string, q squirrel.SelectBuilder) (*models.Teacher, error) {
	sql, args, err := q.Limit(1).ToSql()
	if err != nil {
		return nil, opError(op, err)
	}

	t, err := scanTeacher(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("teacher")
		}
		return nil, opError(op, err)
	}
	return t, nil
}

// FindAll retrieves all teachers ordered by name
func (r *PgTeacherRepository) FindAll(ctx context.Context) ([]*models.Teacher, error) {
	return r.list(ctx, "find all teachers", r.sb.Select(teacherColumns...).From("teachers").OrderBy("name ASC"))
}

// FindByID retrieves a teacher by document ID
func (r *PgTeacherRepository) FindByID(ctx context.Context, id string) (*models.Teacher, error) {
	return r.one(ctx, "find teacher", r.sb.Select(teacherColumns...).From("teachers").Where(squirrel.Eq{"id": id}))
}

// FindByTeacherID retrieves a teacher by business key
func (r *PgTeacherRepository) FindByTeacherID(ctx context.Context, teacherID string) (*models.Teacher, error) {
	return r.one(ctx, "find teacher by teacherID", r.sb.Select(teacherColumns...).From("teachers").Where(squirrel.Eq{"teacher_id": teacherID}))
}

// FindByName retrieves teachers with exactly this name
func (r *PgTeacherRepository) FindByName(ctx context.Context, name string) ([]*models.Teacher, error) {
	return r.list(ctx, "find teachers by name", r.sb.Select(teacherColumns...).From("teachers").Where(squirrel.Eq{"name": name}))
}

// Search matches term against name, teacherID and phone
func (r *PgTeacherRepository) Search(ctx context.Context, term string) ([]*models.Teacher, error) {
	pattern := likePattern(term)
	q := r.sb.Select(teacherColumns...).From("teachers").
		Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"teacher_id": pattern},
			squirrel.ILike{"phone": pattern},
		}).
		OrderBy("name ASC")
	return r.list(ctx, "search teachers", q)
}

// Create inserts a new teacher and assigns its ID
func (r *PgTeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	if err := teacher.Validate(); err != nil {
		return err
	}
	if teacher.ID == "" {
		teacher.ID = NewID()
	}
	Timestamp(&teacher.CreatedAt, &teacher.UpdatedAt)

	sql, args, err := r.sb.Insert("teachers").Columns(teacherColumns...).
		Values(teacher.ID, teacher.TeacherID, teacher.Name, teacher.Gender, teacher.Phone, teacher.DateOfBirth,
			teacher.Avatar.URL, teacher.Avatar.PublicID, teacher.CreatedAt, teacher.UpdatedAt).
		ToSql()
	if err != nil {
		return opError("create teacher", err)
	}

	if _, err := r.conn(ctx).Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "teachers_teacher_id_key") {
			return apperrors.NewConflictError("a teacher with this teacherID already exists")
		}
		return opError("create teacher", err)
	}
	return nil
}

// Update replaces the stored teacher document
func (r *PgTeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	if err := teacher.Validate(); err != nil {
		return err
	}
	Timestamp(&teacher.CreatedAt, &teacher.UpdatedAt)

	sql, args, err := r.sb.Update("teachers").
		SetMap(map[string]interface{}{
			"teacher_id":       teacher.TeacherID,
			"name":             teacher.Name,
			"gender":           teacher.Gender,
			"phone":            teacher.Phone,
			"date_of_birth":    teacher.DateOfBirth,
			"avatar_url":       teacher.Avatar.URL,
			"avatar_public_id": teacher.Avatar.PublicID,
			"updated_at":       teacher.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": teacher.ID}).
		ToSql()
	if err != nil {
		return opError("update teacher", err)
	}

	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "teachers_teacher_id_key") {
			return apperrors.NewConflictError("a teacher with this teacherID already exists")
		}
		return opError("update teacher", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("teacher")
	}
	return nil
}

// Delete removes a teacher document
func (r *PgTeacherRepository) Delete(ctx context.Context, id string) error {
	sql, args, err := r.sb.Delete("teachers").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return opError("delete teacher", err)
	}

	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return opError("delete teacher", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("teacher")
	}
	return nil
}
