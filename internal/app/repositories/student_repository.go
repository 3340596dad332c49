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

var studentColumns = []string{
	"id", "student_id", "name", "date_of_birth", "gender",
	"father_name", "father_occupation", "mother_name", "mother_occupation",
	"guardian_name", "guardian_occupation", "grade", "school", "class_name", "education_system",
	"photo_url", "photo_public_id",
	"birth_certificate_url", "birth_certificate_public_id",
	"household_registration_url", "household_registration_public_id",
	"created_at", "updated_at",
}

// PgStudentRepository handles student database operations
type PgStudentRepository struct {
	base
}

// NewStudentRepository creates a new PgStudentRepository
func NewStudentRepository(pool *pgxpool.Pool) *PgStudentRepository {
	return &PgStudentRepository{base: newBase(pool)}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	s := &models.Student{}
	err := row.Scan(
		&s.ID, &s.StudentID, &s.Name, &s.DateOfBirth, &s.Gender,
		&s.FatherName, &s.FatherOccupation, &s.MotherName, &s.MotherOccupation,
		&s.GuardianName, &s.GuardianOccupation, &s.Grade, &s.School, &s.ClassName, &s.EducationSystem,
		&s.Photo.URL, &s.Photo.PublicID,
		&s.BirthCertificate.URL, &s.BirthCertificate.PublicID,
		&s.HouseholdRegistration.URL, &s.HouseholdRegistration.PublicID,
		&s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

func studentValues(s *models.Student) []interface{} {
	return []interface{}{
		s.ID, s.StudentID, s.Name, s.DateOfBirth, s.Gender,
		s.FatherName, s.FatherOccupation, s.MotherName, s.MotherOccupation,
		s.GuardianName, s.GuardianOccupation, s.Grade, s.School, s.ClassName, s.EducationSystem,
		s.Photo.URL, s.Photo.PublicID,
		s.BirthCertificate.URL, s.BirthCertificate.PublicID,
		s.HouseholdRegistration.URL, s.HouseholdRegistration.PublicID,
		s.CreatedAt, s.UpdatedAt,
	}
}

func (r *PgStudentRepository) list(ctx context.Context, op string, q squirrel.SelectBuilder) ([]*models.Student, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, opError(op, err)
	}

	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, opError(op, err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, opError(op, err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, opError(op, err)
	}
	return students, nil
}

func (r *PgStudentRepository) one(ctx context.Context, op string, q squirrel.SelectBuilder) (*models.Student, error) {
	sql, args, err := q.Limit(1).ToSql()
	if err != nil {
		return nil, opError(op, err)
	}

	s, err := scanStudent(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("student")
		}
		return nil, opError(op, err)
	}
	return s, nil
}

// FindAll retrieves all students ordered by name
func (r *PgStudentRepository) FindAll(ctx context.Context) ([]*models.Student, error) {
	return r.list(ctx, "find all students", r.sb.Select(studentColumns...).From("students").OrderBy("name ASC"))
}

// FindByID retrieves a student by document ID
func (r *PgStudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	return r.one(ctx, "find student", r.sb.Select(studentColumns...).From("students").Where(squirrel.Eq{"id": id}))
}

// FindByIDs retrieves the existing students among ids, in the order of ids
func (r *PgStudentRepository) FindByIDs(ctx context.Context, ids []string) ([]*models.Student, error) {
	if len(ids) == 0 {
		return []*models.Student{}, nil
	}

	found, err := r.list(ctx, "find students by ids", r.sb.Select(studentColumns...).From("students").Where(squirrel.Eq{"id": ids}))
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*models.Student, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}
	ordered := make([]*models.Student, 0, len(found))
	for _, id := range ids {
		if s, ok := byID[id]; ok {
			ordered = append(ordered, s)
			delete(byID, id)
		}
	}
	return ordered, nil
}

// FindByStudentID retrieves a student by business key
func (r *PgStudentRepository) FindByStudentID(ctx context.Context, studentID string) (*models.Student, error) {
	return r.one(ctx, "find student by studentID", r.sb.Select(studentColumns...).From("students").Where(squirrel.Eq{"student_id": studentID}))
}

// Search matches term against name and studentID, case-insensitively
func (r *PgStudentRepository) Search(ctx context.Context, term string) ([]*models.Student, error) {
	pattern := likePattern(term)
	q := r.sb.Select(studentColumns...).From("students").
		Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"student_id": pattern},
		}).
		OrderBy("name ASC")
	return r.list(ctx, "search students", q)
}

// Create inserts a new student and assigns its ID
func (r *PgStudentRepository) Create(ctx context.Context, student *models.Student) error {
	if err := student.Validate(); err != nil {
		return err
	}
	if student.ID == "" {
		student.ID = NewID()
	}
	Timestamp(&student.CreatedAt, &student.UpdatedAt)

	sql, args, err := r.sb.Insert("students").Columns(studentColumns...).Values(studentValues(student)...).ToSql()
	if err != nil {
		return opError("create student", err)
	}

	if _, err := r.conn(ctx).Exec(ctx, sql, args...); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewConflictError("a student with this studentID already exists")
		}
		return opError("create student", err)
	}
	return nil
}

// Update replaces the stored student document
func (r *PgStudentRepository) Update(ctx context.Context, student *models.Student) error {
	if err := student.Validate(); err != nil {
		return err
	}
	Timestamp(&student.CreatedAt, &student.UpdatedAt)

	values := studentValues(student)
	q := r.sb.Update("students").Where(squirrel.Eq{"id": student.ID})
	// Skip id and created_at
	for i, col := range studentColumns {
		if col == "id" || col == "created_at" {
			continue
		}
		q = q.Set(col, values[i])
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return opError("update student", err)
	}

	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewConflictError("a student with this studentID already exists")
		}
		return opError("update student", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("student")
	}
	return nil
}

// Delete removes a student document
func (r *PgStudentRepository) Delete(ctx context.Context, id string) error {
	sql, args, err := r.sb.Delete("students").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return opError("delete student", err)
	}

	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return opError("delete student", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("student")
	}
	return nil
}
