// Package sms sends text messages through Twilio, or to the log when Twilio is not configured.
package sms

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Sender delivers a text message to a phone number
type Sender interface {
	Send(ctx context.Context, to, body string) error
}

type messageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// TwilioSender sends messages with the Twilio Messaging API
type TwilioSender struct {
	api    messageCreator
	from   string
	logger zerolog.Logger
}

// NewTwilioSender creates a sender authenticated with the account SID and auth token
func NewTwilioSender(accountSID, authToken, from string, logger zerolog.Logger) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioSender{api: client.Api, from: from, logger: logger}
}

func (s *TwilioSender) Send(ctx context.Context, to, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	msg, err := s.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio: send message: %w", err)
	}

	sid := ""
	if msg != nil && msg.Sid != nil {
		sid = *msg.Sid
	}
	s.logger.Info().Str("to", to).Str("sid", sid).Msg("SMS sent")
	return nil
}

// ConsoleSender writes messages to the log instead of sending them
type ConsoleSender struct {
	logger zerolog.Logger
}

// NewConsoleSender creates a ConsoleSender
func NewConsoleSender(logger zerolog.Logger) *ConsoleSender {
	return &ConsoleSender{logger: logger}
}

func (s *ConsoleSender) Send(ctx context.Context, to, body string) error {
	s.logger.Warn().Str("to", to).Str("body", body).Msg("SMS provider not configured, message logged only")
	return nil
}
