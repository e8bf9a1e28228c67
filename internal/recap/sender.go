package recap

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrz1836/postmark"
	"go.uber.org/zap"

	"github.com/willowgate/transcriptd/internal/config"
	"github.com/willowgate/transcriptd/internal/logging"
)

// ErrSendFailed wraps any delivery failure so callers can branch on it.
var ErrSendFailed = errors.New("failed to send recap email")

// Sender delivers a rendered recap to one recipient.
type Sender interface {
	Send(ctx context.Context, to string, email Email) error
}

type postmarkSender struct {
	client  *postmark.Client
	from    string
	replyTo string
}

// NewPostmarkSender creates a Postmark-backed sender from recap config.
func NewPostmarkSender(cfg config.RecapConfig) (Sender, error) {
	if !cfg.PostmarkToken.IsSet() {
		return nil, fmt.Errorf("postmark token is required")
	}
	if cfg.FromAddress == "" {
		return nil, fmt.Errorf("from address is required")
	}
	return &postmarkSender{
		client:  postmark.NewClient(cfg.PostmarkToken.Value(), ""),
		from:    cfg.FromAddress,
		replyTo: cfg.ReplyTo,
	}, nil
}

func (s *postmarkSender) Send(ctx context.Context, to string, email Email) error {
	resp, err := s.client.SendEmail(ctx, postmark.Email{
		From:       s.from,
		ReplyTo:    s.replyTo,
		To:         to,
		Subject:    email.Subject,
		TextBody:   email.Body,
		Tag:        email.Tag,
		TrackOpens: true,
	})
	if err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(ErrSendFailed,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message))
	}
	return nil
}

// logSender logs recaps instead of delivering them. Used when recap email
// is disabled so the rest of the pipeline behaves identically in dev.
type logSender struct {
	logger *logging.Logger
}

// NewLogSender returns a sender that only logs.
func NewLogSender(logger *logging.Logger) Sender {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &logSender{logger: logger.Named("recap")}
}

func (s *logSender) Send(ctx context.Context, to string, email Email) error {
	s.logger.Info(ctx, "recap email suppressed (sending disabled)",
		zap.String("to", to),
		zap.String("subject", email.Subject))
	return nil
}
