package memory

import (
	"context"
	"time"

	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/repositories"
)

type verificationCodeRepository struct {
	db *DB
}

// NewVerificationCodeRepository creates an in-memory VerificationCodeRepository
func NewVerificationCodeRepository(db *DB) repositories.VerificationCodeRepository {
	return &verificationCodeRepository{db: db}
}

func (r *verificationCodeRepository) Save(ctx context.Context, code *models.VerificationCode) error {
	defer r.db.lockWrite(ctx)()

	if code.CreatedAt.IsZero() {
		code.CreatedAt = time.Now().UTC()
	}
	put(ctx, r.db.data.codes, code.PhoneNumber, *code)
	return nil
}

func (r *verificationCodeRepository) Find(ctx context.Context, phone string) (*models.VerificationCode, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	if c, ok := r.db.data.codes[phone]; ok {
		return &c, nil
	}
	return nil, notFound("verification code")
}

func (r *verificationCodeRepository) Delete(ctx context.Context, phone string) error {
	defer r.db.lockWrite(ctx)()

	remove(ctx, r.db.data.codes, phone)
	return nil
}

func (r *verificationCodeRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	defer r.db.lockWrite(ctx)()

	var removed int64
	for phone, c := range r.db.data.codes {
		if c.Expired(now) {
			remove(ctx, r.db.data.codes, phone)
			removed++
		}
	}
	return removed, nil
}
