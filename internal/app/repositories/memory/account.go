package memory

import (
	"context"
	"time"

	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/repositories"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/apperrors"
)

type accountRepository struct {
	db *DB
}

// NewAccountRepository creates an in-memory AccountRepository
func NewAccountRepository(db *DB) repositories.AccountRepository {
	return &accountRepository{db: db}
}

func byUsername(a, b *models.Account) bool {
	return a.Username < b.Username
}

func (r *accountRepository) find(keep func(*models.Account) bool) (*models.Account, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	for _, a := range r.db.data.accounts {
		if keep(&a) {
			return &a, nil
		}
	}
	return nil, notFound("account")
}

func (r *accountRepository) FindAll(ctx context.Context) ([]*models.Account, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()
	return collect(r.db.data.accounts, nil, byUsername), nil
}

func (r *accountRepository) FindByID(ctx context.Context, id string) (*models.Account, error) {
	return r.find(func(a *models.Account) bool { return a.ID == id })
}

func (r *accountRepository) FindByUsername(ctx context.Context, username string) (*models.Account, error) {
	return r.find(func(a *models.Account) bool { return a.Username == username })
}

func (r *accountRepository) FindByPhoneNumber(ctx context.Context, phone string) (*models.Account, error) {
	return r.find(func(a *models.Account) bool { return a.PhoneNumber == phone })
}

func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	if err := account.Validate(); err != nil {
		return err
	}

	defer r.db.lockWrite(ctx)()

	for _, other := range r.db.data.accounts {
		if other.Username == account.Username {
			return apperrors.NewConflictError("username already exists")
		}
	}
	if account.ID == "" {
		account.ID = repositories.NewID()
	}
	repositories.Timestamp(&account.CreatedAt, &account.UpdatedAt)
	put(ctx, r.db.data.accounts, account.ID, *account)
	return nil
}

func (r *accountRepository) Update(ctx context.Context, account *models.Account) error {
	if err := account.Validate(); err != nil {
		return err
	}

	defer r.db.lockWrite(ctx)()

	stored, ok := r.db.data.accounts[account.ID]
	if !ok {
		return notFound("account")
	}
	stored.Role = account.Role
	stored.FullName = account.FullName
	stored.PhoneNumber = account.PhoneNumber
	stored.Actor = account.Actor
	stored.UpdatedAt = time.Now().UTC()
	put(ctx, r.db.data.accounts, account.ID, stored)

	account.Username = stored.Username
	account.CreatedAt = stored.CreatedAt
	account.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *accountRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	defer r.db.lockWrite(ctx)()

	stored, ok := r.db.data.accounts[id]
	if !ok {
		return notFound("account")
	}
	stored.Password = passwordHash
	stored.UpdatedAt = time.Now().UTC()
	put(ctx, r.db.data.accounts, id, stored)
	return nil
}

func (r *accountRepository) Delete(ctx context.Context, id string) error {
	defer r.db.lockWrite(ctx)()

	if _, ok := r.db.data.accounts[id]; !ok {
		return notFound("account")
	}
	remove(ctx, r.db.data.accounts, id)
	return nil
}
