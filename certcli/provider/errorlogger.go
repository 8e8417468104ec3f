package provider

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type ErrorLogger interface {
	CaptureException(exception error)

	// DisplayException displays an error to the user. This is useful for custom error that certcli
	// would otherwise not know how to display in a user-friendly way. Returns true if the error
	// is displayed. If true, the caller can continue without doing further error handling.
	DisplayException(err error) bool
}

type NoOpLogger struct{}

var _ ErrorLogger = (*NoOpLogger)(nil)

func (l *NoOpLogger) CaptureException(err error) {}
func (l *NoOpLogger) DisplayException(err error) bool {
	return false
}

// SentryLogger reports errors to the Sentry project behind its hub and logs
// them at debug level, so --debug shows errors that were later handled. With
// no DSN the hub has no transport and only the debug log remains.
type SentryLogger struct {
	hub *sentry.Hub
}

var _ ErrorLogger = (*SentryLogger)(nil)

const sentryFlushTimeout = 2 * time.Second

func NewSentryLogger(options sentry.ClientOptions) (*SentryLogger, error) {
	client, err := sentry.NewClient(options)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create sentry client")
	}
	return &SentryLogger{hub: sentry.NewHub(client, sentry.NewScope())}, nil
}

// Hub is attached to the command context so spans are recorded on it.
func (l *SentryLogger) Hub() *sentry.Hub {
	return l.hub
}

func (l *SentryLogger) CaptureException(err error) {
	logrus.WithError(err).Debug("command failed")
	l.hub.CaptureException(err)
	l.hub.Flush(sentryFlushTimeout)
}

func (l *SentryLogger) DisplayException(err error) bool {
	return false
}
