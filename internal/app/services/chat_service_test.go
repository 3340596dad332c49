package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/apperrors"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/metrics"
)

type generatorFunc func(ctx context.Context, prompt string) (string, error)

func (f generatorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

func TestChatReply(t *testing.T) {
	var prompt string
	svc := NewChatService(generatorFunc(func(ctx context.Context, p string) (string, error) {
		prompt = p
		return "Use the transfer screen.", nil
	}), metrics.New(), testLogger)

	reply, err := svc.Reply(context.Background(), "  How do I move a student?  ")
	require.NoError(t, err)
	assert.Equal(t, "Use the transfer screen.", reply)
	assert.True(t, strings.Contains(prompt, "How do I move a student?"))
}

func TestChatErrors(t *testing.T) {
	failing := NewChatService(generatorFunc(func(ctx context.Context, p string) (string, error) {
		return "", errors.New("timeout")
	}), metrics.New(), testLogger)

	_, err := failing.Reply(context.Background(), "hi")
	assert.True(t, apperrors.Is(err, apperrors.ErrUpstream))

	_, err = failing.Reply(context.Background(), "   ")
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))

	empty := NewChatService(generatorFunc(func(ctx context.Context, p string) (string, error) {
		return "", nil
	}), metrics.New(), testLogger)
	_, err = empty.Reply(context.Background(), "hi")
	assert.True(t, apperrors.Is(err, apperrors.ErrUpstream))
}
