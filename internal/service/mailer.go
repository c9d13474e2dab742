package service

import (
	"context"

	"go.uber.org/zap"
)

// Mailer dispatches sign-in links. The actual delivery channel is owned by
// whoever deploys the service.
type Mailer interface {
	SendLoginLink(ctx context.Context, email, link string) error
}

// LogMailer writes sign-in links to the log instead of sending mail. It is
// the default in development and demo deployments.
type LogMailer struct {
	logger *zap.Logger
}

// NewLogMailer constructs a LogMailer.
func NewLogMailer(logger *zap.Logger) *LogMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogMailer{logger: logger}
}

// SendLoginLink logs the link at info level.
func (m *LogMailer) SendLoginLink(ctx context.Context, email, link string) error {
	m.logger.Info("magic link issued", zap.String("email", email), zap.String("link", link))
	return nil
}
