package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/db"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/apperrors"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/logger"
)

// StudentRepository persists student documents
type StudentRepository interface {
	FindAll(ctx context.Context) ([]*models.Student, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
	// FindByIDs returns the students that exist, in the order of ids
	FindByIDs(ctx context.Context, ids []string) ([]*models.Student, error)
	FindByStudentID(ctx context.Context, studentID string) (*models.Student, error)
	Search(ctx context.Context, term string) ([]*models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id string) error
}

// TeacherRepository persists teacher documents
type TeacherRepository interface {
	FindAll(ctx context.Context) ([]*models.Teacher, error)
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
	FindByTeacherID(ctx context.Context, teacherID string) (*models.Teacher, error)
	FindByName(ctx context.Context, name string) ([]*models.Teacher, error)
	Search(ctx context.Context, term string) ([]*models.Teacher, error)
	Create(ctx context.Context, teacher *models.Teacher) error
	Update(ctx context.Context, teacher *models.Teacher) error
	Delete(ctx context.Context, id string) error
}

// ClassRepository persists class documents and their rosters
type ClassRepository interface {
	FindAll(ctx context.Context) ([]*models.Class, error)
	FindByID(ctx context.Context, id string) (*models.Class, error)
	// FindByIDForUpdate reads a class and locks it until the surrounding transaction ends
	FindByIDForUpdate(ctx context.Context, id string) (*models.Class, error)
	FindByName(ctx context.Context, name string) ([]*models.Class, error)
	FindByTeacherID(ctx context.Context, teacherID string) ([]*models.Class, error)
	FindBySemesterID(ctx context.Context, semesterID string) ([]*models.Class, error)
	// FindContainingStudents returns every class whose roster holds any of studentIDs
	FindContainingStudents(ctx context.Context, studentIDs []string) ([]*models.Class, error)
	Create(ctx context.Context, class *models.Class) error
	Update(ctx context.Context, class *models.Class) error
	Delete(ctx context.Context, id string) error
}

// SemesterRepository persists semester documents
type SemesterRepository interface {
	FindAll(ctx context.Context) ([]*models.Semester, error)
	FindByID(ctx context.Context, id string) (*models.Semester, error)
	FindByName(ctx context.Context, name string) ([]*models.Semester, error)
	Create(ctx context.Context, semester *models.Semester) error
	Update(ctx context.Context, semester *models.Semester) error
	Delete(ctx context.Context, id string) error
}

// NewsRepository persists news articles
type NewsRepository interface {
	FindAll(ctx context.Context) ([]*models.News, error)
	FindByID(ctx context.Context, id string) (*models.News, error)
	Search(ctx context.Context, term string) ([]*models.News, error)
	Create(ctx context.Context, news *models.News) error
	Update(ctx context.Context, news *models.News) error
	Delete(ctx context.Context, id string) error
}

// AccountRepository persists admin accounts
type AccountRepository interface {
	FindAll(ctx context.Context) ([]*models.Account, error)
	FindByID(ctx context.Context, id string) (*models.Account, error)
	FindByUsername(ctx context.Context, username string) (*models.Account, error)
	FindByPhoneNumber(ctx context.Context, phone string) (*models.Account, error)
	Create(ctx context.Context, account *models.Account) error
	// Update writes profile fields; the password hash is left untouched
	Update(ctx context.Context, account *models.Account) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
}

// VerificationCodeRepository stores pending password-reset codes keyed by phone number
type VerificationCodeRepository interface {
	// Save replaces any previous code for the phone number
	Save(ctx context.Context, code *models.VerificationCode) error
	Find(ctx context.Context, phone string) (*models.VerificationCode, error)
	Delete(ctx context.Context, phone string) error
	// DeleteExpired removes codes that expired before now and returns how many were removed
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// TxManager runs a function atomically. Repository calls made with the context passed
// to fn take part in the transaction.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Repositories holds all the repository instances
type Repositories struct {
	Students          StudentRepository
	Teachers          TeacherRepository
	Classes           ClassRepository
	Semesters         SemesterRepository
	News              NewsRepository
	Accounts          AccountRepository
	VerificationCodes VerificationCodeRepository
	Tx                TxManager
}

// NewRepositories initializes the PostgreSQL repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		Students:          NewStudentRepository(database.Pool),
		Teachers:          NewTeacherRepository(database.Pool),
		Classes:           NewClassRepository(database.Pool),
		Semesters:         NewSemesterRepository(database.Pool),
		News:              NewNewsRepository(database.Pool),
		Accounts:          NewAccountRepository(database.Pool),
		VerificationCodes: NewVerificationCodeRepository(database.Pool),
		Tx:                database,
	}
}

// base carries the pool and statement builder shared by the PostgreSQL repositories
type base struct {
	pool *pgxpool.Pool
	sb   squirrel.StatementBuilderType
}

func newBase(pool *pgxpool.Pool) base {
	return base{
		pool: pool,
		sb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// conn returns the transaction bound to ctx, or the pool
func (b base) conn(ctx context.Context) db.Querier {
	return db.Conn(ctx, b.pool)
}

// NewID generates a document ID
func NewID() string {
	return uuid.NewString()
}

// Timestamp sets the audit fields of a document about to be written
func Timestamp(createdAt, updatedAt *time.Time) {
	now := time.Now().UTC()
	if createdAt.IsZero() {
		*createdAt = now
	}
	*updatedAt = now
}

func notFound(entity string) error {
	return apperrors.NewNotFoundError(entity + " not found")
}

// opError logs a persistence failure and wraps it as "error performing <op>"
func opError(op string, err error) error {
	logger.Error().Err(err).Str("op", op).Msg("Repository operation failed")
	return apperrors.NewInternalError(op, err)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a substring pattern for ILIKE with wildcards in term escaped
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(strings.TrimSpace(term)) + "%"
}
