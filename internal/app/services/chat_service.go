package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/apperrors"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/metrics"
)

const chatPreamble = "You are an assistant for kindergarten administrators. " +
	"Answer briefly and politely.\n\nQuestion: "

var errEmptyReply = errors.New("empty reply")

// TextGenerator produces a completion for a prompt
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ChatService answers administrator questions with a hosted text-generation model
type ChatService interface {
	Reply(ctx context.Context, message string) (string, error)
}

type chatService struct {
	generator TextGenerator
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

// NewChatService creates a ChatService
func NewChatService(generator TextGenerator, m *metrics.Metrics, logger zerolog.Logger) ChatService {
	return &chatService{
		generator: generator,
		metrics:   m,
		logger:    logger.With().Str("service", "chat").Logger(),
	}
}

func (s *chatService) Reply(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", apperrors.NewValidationError("message is required")
	}

	reply, err := s.generator.Generate(ctx, chatPreamble+message+"\nAnswer:")
	s.metrics.ObserveExternal("inference", err)
	if err != nil {
		s.logger.Error().Err(err).Msg("Chat completion failed")
		return "", apperrors.NewUpstreamError("chat assistant is unavailable", err)
	}
	if reply == "" {
		return "", apperrors.NewUpstreamError("chat assistant returned an empty reply", errEmptyReply)
	}
	return reply, nil
}
