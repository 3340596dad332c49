// Package redisstore keeps verification codes in Redis with a TTL matching their expiry.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/repositories"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/apperrors"
)

// NewClient connects to redis with short timeouts
func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,
	})
}

// VerificationCodeStore implements repositories.VerificationCodeRepository on Redis
type VerificationCodeStore struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

var _ repositories.VerificationCodeRepository = (*VerificationCodeStore)(nil)

// NewVerificationCodeStore creates a store whose keys start with prefix
func NewVerificationCodeStore(client *redis.Client, prefix string) *VerificationCodeStore {
	return &VerificationCodeStore{client: client, prefix: prefix, now: time.Now}
}

func (s *VerificationCodeStore) key(phone string) string {
	return s.prefix + "verification:" + phone
}

// Save writes the code with a TTL that ends at its expiry
func (s *VerificationCodeStore) Save(ctx context.Context, code *models.VerificationCode) error {
	if code.CreatedAt.IsZero() {
		code.CreatedAt = s.now().UTC()
	}
	ttl := code.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return s.Delete(ctx, code.PhoneNumber)
	}

	payload, err := json.Marshal(storedCode{CodeHash: code.CodeHash, ExpiresAt: code.ExpiresAt, CreatedAt: code.CreatedAt})
	if err != nil {
		return apperrors.NewInternalError("save verification code", err)
	}
	if err := s.client.Set(ctx, s.key(code.PhoneNumber), payload, ttl).Err(); err != nil {
		return apperrors.NewInternalError("save verification code", err)
	}
	return nil
}

// Find retrieves the pending code for phone
func (s *VerificationCodeStore) Find(ctx context.Context, phone string) (*models.VerificationCode, error) {
	raw, err := s.client.Get(ctx, s.key(phone)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.NewNotFoundError("verification code not found")
		}
		return nil, apperrors.NewInternalError("find verification code", err)
	}

	var stored storedCode
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, apperrors.NewInternalError("find verification code", fmt.Errorf("decode: %w", err))
	}
	return &models.VerificationCode{
		PhoneNumber: phone,
		CodeHash:    stored.CodeHash,
		ExpiresAt:   stored.ExpiresAt,
		CreatedAt:   stored.CreatedAt,
	}, nil
}

// Delete removes the code for phone
func (s *VerificationCodeStore) Delete(ctx context.Context, phone string) error {
	if err := s.client.Del(ctx, s.key(phone)).Err(); err != nil {
		return apperrors.NewInternalError("delete verification code", err)
	}
	return nil
}

// DeleteExpired is a no-op; Redis evicts codes when their TTL ends
func (s *VerificationCodeStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

type storedCode struct {
	CodeHash  string    `json:"codeHash"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}
