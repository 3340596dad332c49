package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/apperrors"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/dberrors"
)

var accountColumns = []string{"id", "username", "password", "role", "full_name", "phone_number", "actor", "created_at", "updated_at"}

// PgAccountRepository handles account database operations
type PgAccountRepository struct {
	base
}

// NewAccountRepository creates a new PgAccountRepository
func NewAccountRepository(pool *pgxpool.Pool) *PgAccountRepository {
	return &PgAccountRepository{base: newBase(pool)}
}

func scanAccount(row pgx.Row) (*models.Account, error) {
	a := &models.Account{}
	err := row.Scan(&a.ID, &a.Username, &a.Password, &a.Role, &a.FullName, &a.PhoneNumber, &a.Actor, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r *PgAccountRepository) one(ctx context.Context, op string, where squirrel.Sqlizer) (*models.Account, error) {
	sql, args, err := r.sb.Select(accountColumns...).From("accounts").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, opError(op, err)
	}

	a, err := scanAccount(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("account")
		}
		return nil, opError(op, err)
	}
	return a, nil
}

// FindAll retrieves all accounts ordered by username
func (r *PgAccountRepository) FindAll(ctx context.Context) ([]*models.Account, error) {
	sql, args, err := r.sb.Select(accountColumns...).From("accounts").OrderBy("username ASC").ToSql()
	if err != nil {
		return nil, opError("find all accounts", err)
	}

	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, opError("find all accounts", err)
	}
	defer rows.Close()

	accounts := []*models.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, opError("find all accounts", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, opError("find all accounts", err)
	}
	return accounts, nil
}

// FindByID retrieves an account by document ID
func (r *PgAccountRepository) FindByID(ctx context.Context, id string) (*models.Account, error) {
	return r.one(ctx, "find account", squirrel.Eq{"id": id})
}

// FindByUsername retrieves an account by exact, case-sensitive username
func (r *PgAccountRepository) FindByUsername(ctx context.Context, username string) (*models.Account, error) {
	return r.one(ctx, "find account by username", squirrel.Eq{"username": username})
}

// FindByPhoneNumber retrieves the account registered with phone
func (r *PgAccountRepository) FindByPhoneNumber(ctx context.Context, phone string) (*models.Account, error) {
	return r.one(ctx, "find account by phone number", squirrel.Eq{"phone_number": phone})
}

// Create inserts an account. Password must already be hashed.
func (r *PgAccountRepository) Create(ctx context.Context, account *models.Account) error {
	if err := account.Validate(); err != nil {
		return err
	}
	if account.ID == "" {
		account.ID = NewID()
	}
	Timestamp(&account.CreatedAt, &account.UpdatedAt)

	sql, args, err := r.sb.Insert("accounts").Columns(accountColumns...).
		Values(account.ID, account.Username, account.Password, account.Role, account.FullName,
			account.PhoneNumber, account.Actor, account.CreatedAt, account.UpdatedAt).
		ToSql()
	if err != nil {
		return opError("create account", err)
	}

	if _, err := r.conn(ctx).Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "accounts_username_key") {
			return apperrors.NewConflictError("username already exists")
		}
		return opError("create account", err)
	}
	return nil
}

// Update writes the profile fields of an account
func (r *PgAccountRepository) Update(ctx context.Context, account *models.Account) error {
	if err := account.Validate(); err != nil {
		return err
	}
	Timestamp(&account.CreatedAt, &account.UpdatedAt)

	sql, args, err := r.sb.Update("accounts").
		Set("role", account.Role).
		Set("full_name", account.FullName).
		Set("phone_number", account.PhoneNumber).
		Set("actor", account.Actor).
		Set("updated_at", account.UpdatedAt).
		Where(squirrel.Eq{"id": account.ID}).
		ToSql()
	if err != nil {
		return opError("update account", err)
	}

	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return opError("update account", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("account")
	}
	return nil
}

// UpdatePassword stores a new password hash
func (r *PgAccountRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	sql, args, err := r.sb.Update("accounts").
		Set("password", passwordHash).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return opError("update password", err)
	}

	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return opError("update password", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("account")
	}
	return nil
}

// Delete removes an account
func (r *PgAccountRepository) Delete(ctx context.Context, id string) error {
	sql, args, err := r.sb.Delete("accounts").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return opError("delete account", err)
	}

	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return opError("delete account", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("account")
	}
	return nil
}
