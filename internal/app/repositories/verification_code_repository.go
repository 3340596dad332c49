package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models"
)

// PgVerificationCodeRepository stores verification codes in the verification_codes table
type PgVerificationCodeRepository struct {
	base
}

// NewVerificationCodeRepository creates a new PgVerificationCodeRepository
func NewVerificationCodeRepository(pool *pgxpool.Pool) *PgVerificationCodeRepository {
	return &PgVerificationCodeRepository{base: newBase(pool)}
}

// Save upserts the code for its phone number
func (r *PgVerificationCodeRepository) Save(ctx context.Context, code *models.VerificationCode) error {
	if code.CreatedAt.IsZero() {
		code.CreatedAt = time.Now().UTC()
	}

	sql, args, err := r.sb.Insert("verification_codes").
		Columns("phone_number", "code_hash", "expires_at", "created_at").
		Values(code.PhoneNumber, code.CodeHash, code.ExpiresAt, code.CreatedAt).
		Suffix("ON CONFLICT (phone_number) DO UPDATE SET code_hash = EXCLUDED.code_hash, expires_at = EXCLUDED.expires_at, created_at = EXCLUDED.created_at").
		ToSql()
	if err != nil {
		return opError("save verification code", err)
	}

	if _, err := r.conn(ctx).Exec(ctx, sql, args...); err != nil {
		return opError("save verification code", err)
	}
	return nil
}

// Find retrieves the pending code for phone
func (r *PgVerificationCodeRepository) Find(ctx context.Context, phone string) (*models.VerificationCode, error) {
	sql, args, err := r.sb.Select("phone_number", "code_hash", "expires_at", "created_at").
		From("verification_codes").
		Where(squirrel.Eq{"phone_number": phone}).
		ToSql()
	if err != nil {
		return nil, opError("find verification code", err)
	}

	code := &models.VerificationCode{}
	err = r.conn(ctx).QueryRow(ctx, sql, args...).Scan(&code.PhoneNumber, &code.CodeHash, &code.ExpiresAt, &code.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("verification code")
		}
		return nil, opError("find verification code", err)
	}
	return code, nil
}

// Delete removes the code for phone. Deleting a missing code is not an error.
func (r *PgVerificationCodeRepository) Delete(ctx context.Context, phone string) error {
	sql, args, err := r.sb.Delete("verification_codes").Where(squirrel.Eq{"phone_number": phone}).ToSql()
	if err != nil {
		return opError("delete verification code", err)
	}

	if _, err := r.conn(ctx).Exec(ctx, sql, args...); err != nil {
		return opError("delete verification code", err)
	}
	return nil
}

// DeleteExpired removes every code whose expiry is not after now
func (r *PgVerificationCodeRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	sql, args, err := r.sb.Delete("verification_codes").Where(squirrel.LtOrEq{"expires_at": now}).ToSql()
	if err != nil {
		return 0, opError("purge verification codes", err)
	}

	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, opError("purge verification codes", err)
	}
	return tag.RowsAffected(), nil
}
