package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models"
)

var semesterColumns = []string{"id", "semester_name", "start_date", "end_date", "created_at", "updated_at"}

// PgSemesterRepository handles semester database operations
type PgSemesterRepository struct {
	base
}

// NewSemesterRepository creates a new PgSemesterRepository
func NewSemesterRepository(pool *pgxpool.Pool) *PgSemesterRepository {
	return &PgSemesterRepository{base: newBase(pool)}
}

func scanSemester(row pgx.Row) (*models.Semester, error) {
	s := &models.Semester{}
	err := row.Scan(&s.ID, &s.SemesterName, &s.StartDate, &s.EndDate, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (r *PgSemesterRepository) list(ctx context.Context, op string, q squirrel.SelectBuilder) ([]*models.Semester, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, opError(op, err)
	}

	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, opError(op, err)
	}
	defer rows.Close()

	semesters := []*models.Semester{}
	for rows.Next() {
		s, err := scanSemester(rows)
		if err != nil {
			return nil, opError(op, err)
		}
		semesters = append(semesters, s)
	}
	if err := rows.Err(); err != nil {
		return nil, opError(op, err)
	}
	return semesters, nil
}

// FindAll retrieves all semesters, most recently created first
func (r *PgSemesterRepository) FindAll(ctx context.Context) ([]*models.Semester, error) {
	return r.list(ctx, "find all semesters", r.sb.Select(semesterColumns...).From("semesters").OrderBy("created_at DESC"))
}

// FindByID retrieves a semester by document ID
func (r *PgSemesterRepository) FindByID(ctx context.Context, id string) (*models.Semester, error) {
	sql, args, err := r.sb.Select(semesterColumns...).From("semesters").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, opError("find semester", err)
	}

	s, err := scanSemester(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("semester")
		}
		return nil, opError("find semester", err)
	}
	return s, nil
}

// FindByName retrieves semesters with exactly this name
func (r *PgSemesterRepository) FindByName(ctx context.Context, name string) ([]*models.Semester, error) {
	return r.list(ctx, "find semesters by name", r.sb.Select(semesterColumns...).From("semesters").Where(squirrel.Eq{"semester_name": name}))
}

// Create inserts a new semester and assigns its ID
func (r *PgSemesterRepository) Create(ctx context.Context, semester *models.Semester) error {
	if err := semester.Validate(); err != nil {
		return err
	}
	if semester.ID == "" {
		semester.ID = NewID()
	}
	Timestamp(&semester.CreatedAt, &semester.UpdatedAt)

	sql, args, err := r.sb.Insert("semesters").Columns(semesterColumns...).
		Values(semester.ID, semester.SemesterName, semester.StartDate, semester.EndDate, semester.CreatedAt, semester.UpdatedAt).
		ToSql()
	if err != nil {
		return opError("create semester", err)
	}

	if _, err := r.conn(ctx).Exec(ctx, sql, args...); err != nil {
		return opError("create semester", err)
	}
	return nil
}

// Update replaces the stored semester document
func (r *PgSemesterRepository) Update(ctx context.Context, semester *models.Semester) error {
	if err := semester.Validate(); err != nil {
		return err
	}
	Timestamp(&semester.CreatedAt, &semester.UpdatedAt)

	sql, args, err := r.sb.Update("semesters").
		Set("semester_name", semester.SemesterName).
		Set("start_date", semester.StartDate).
		Set("end_date", semester.EndDate).
		Set("updated_at", semester.UpdatedAt).
		Where(squirrel.Eq{"id": semester.ID}).
		ToSql()
	if err != nil {
		return opError("update semester", err)
	}

	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return opError("update semester", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("semester")
	}
	return nil
}

// Delete removes a semester document
func (r *PgSemesterRepository) Delete(ctx context.Context, id string) error {
	sql, args, err := r.sb.Delete("semesters").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return opError("delete semester", err)
	}

	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return opError("delete semester", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("semester")
	}
	return nil
}
