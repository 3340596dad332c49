package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models"
)

var classColumns = []string{"id", "class_name", "teacher_id", "semester_id", "students", "created_at", "updated_at"}

// PgClassRepository handles class database operations
type PgClassRepository struct {
	base
}

// NewClassRepository creates a new PgClassRepository
func NewClassRepository(pool *pgxpool.Pool) *PgClassRepository {
	return &PgClassRepository{base: newBase(pool)}
}

func scanClass(row pgx.Row) (*models.Class, error) {
	c := &models.Class{}
	err := row.Scan(&c.ID, &c.ClassName, &c.TeacherID, &c.SemesterID, &c.Students, &c.CreatedAt, &c.UpdatedAt)
	if c.Students == nil {
		c.Students = []string{}
	}
	return c, err
}

func (r *PgClassRepository) list(ctx context.Context, op string, q squirrel.SelectBuilder) ([]*models.Class, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, opError(op, err)
	}

	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, opError(op, err)
	}
	defer rows.Close()

	classes := []*models.Class{}
	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			return nil, opError(op, err)
		}
		classes = append(classes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, opError(op, err)
	}
	return classes, nil
}

func (r *PgClassRepository) one(ctx context.Context, op string, q squirrel.SelectBuilder) (*models.Class, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, opError(op, err)
	}

	c, err := scanClass(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("class")
		}
		return nil, opError(op, err)
	}
	return c, nil
}

func (r *PgClassRepository) selectClasses() squirrel.SelectBuilder {
	return r.sb.Select(classColumns...).From("classes")
}

// FindAll retrieves all classes ordered by name
func (r *PgClassRepository) FindAll(ctx context.Context) ([]*models.Class, error) {
	return r.list(ctx, "find all classes", r.selectClasses().OrderBy("class_name ASC"))
}

// FindByID retrieves a class by document ID
func (r *PgClassRepository) FindByID(ctx context.Context, id string) (*models.Class, error) {
	return r.one(ctx, "find class", r.selectClasses().Where(squirrel.Eq{"id": id}))
}

// FindByIDForUpdate retrieves a class and locks its row until the transaction ends.
// Outside a transaction the lock is released immediately.
func (r *PgClassRepository) FindByIDForUpdate(ctx context.Context, id string) (*models.Class, error) {
	return r.one(ctx, "lock class", r.selectClasses().Where(squirrel.Eq{"id": id}).Suffix("FOR UPDATE"))
}

// FindByName retrieves classes with exactly this name
func (r *PgClassRepository) FindByName(ctx context.Context, name string) ([]*models.Class, error) {
	return r.list(ctx, "find classes by name", r.selectClasses().Where(squirrel.Eq{"class_name": name}))
}

// FindByTeacherID retrieves classes taught by a teacher
func (r *PgClassRepository) FindByTeacherID(ctx context.Context, teacherID string) ([]*models.Class, error) {
	return r.list(ctx, "find classes by teacher", r.selectClasses().Where(squirrel.Eq{"teacher_id": teacherID}).OrderBy("class_name ASC"))
}

// FindBySemesterID retrieves classes of a semester
func (r *PgClassRepository) FindBySemesterID(ctx context.Context, semesterID string) ([]*models.Class, error) {
	return r.list(ctx, "find classes by semester", r.selectClasses().Where(squirrel.Eq{"semester_id": semesterID}).OrderBy("class_name ASC"))
}

// FindContainingStudents retrieves classes whose roster overlaps studentIDs
func (r *PgClassRepository) FindContainingStudents(ctx context.Context, studentIDs []string) ([]*models.Class, error) {
	if len(studentIDs) == 0 {
		return []*models.Class{}, nil
	}
	return r.list(ctx, "find classes containing students", r.selectClasses().Where(squirrel.Expr("students && ?::text[]", studentIDs)))
}

// Create inserts a new class and assigns its ID
func (r *PgClassRepository) Create(ctx context.Context, class *models.Class) error {
	if err := class.Validate(); err != nil {
		return err
	}
	if class.ID == "" {
		class.ID = NewID()
	}
	if class.Students == nil {
		class.Students = []string{}
	}
	Timestamp(&class.CreatedAt, &class.UpdatedAt)

	sql, args, err := r.sb.Insert("classes").Columns(classColumns...).
		Values(class.ID, class.ClassName, class.TeacherID, class.SemesterID, class.Students, class.CreatedAt, class.UpdatedAt).
		ToSql()
	if err != nil {
		return opError("create class", err)
	}

	if _, err := r.conn(ctx).Exec(ctx, sql, args...); err != nil {
		return opError("create class", err)
	}
	return nil
}

// Update replaces the stored class document, roster included
func (r *PgClassRepository) Update(ctx context.Context, class *models.Class) error {
	if err := class.Validate(); err != nil {
		return err
	}
	if class.Students == nil {
		class.Students = []string{}
	}
	Timestamp(&class.CreatedAt, &class.UpdatedAt)

	sql, args, err := r.sb.Update("classes").
		SetMap(map[string]interface{}{
			"class_name":  class.ClassName,
			"teacher_id":  class.TeacherID,
			"semester_id": class.SemesterID,
			"students":    class.Students,
			"updated_at":  class.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": class.ID}).
		ToSql()
	if err != nil {
		return opError("update class", err)
	}

	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return opError("update class", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("class")
	}
	return nil
}

// Delete removes a class document
func (r *PgClassRepository) Delete(ctx context.Context, id string) error {
	sql, args, err := r.sb.Delete("classes").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return opError("delete class", err)
	}

	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return opError("delete class", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("class")
	}
	return nil
}
