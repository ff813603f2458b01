package sqlite

import (
	"time"

	"go.uber.org/zap"
)

// Option configures a Manager.
type Option func(opts *options)

type options struct {
	logger       *zap.Logger
	busyTimeout  time.Duration
	busyRetries  uint64
	retryBackoff time.Duration
}

var defaultOptions = options{
	logger:       zap.NewNop(),
	busyTimeout:  5 * time.Second,
	busyRetries:  5,
	retryBackoff: 10 * time.Millisecond,
}

// WithLogger sets the logger used to report failing statements.
func WithLogger(logger *zap.Logger) Option {
	return func(opts *options) {
		if logger != nil {
			opts.logger = logger
		}
	}
}

// WithBusyTimeout sets SQLite's busy_timeout pragma.
func WithBusyTimeout(d time.Duration) Option {
	return func(opts *options) {
		opts.busyTimeout = d
	}
}

// WithBusyRetries bounds how many times a statement that failed with
// SQLITE_BUSY is retried, and the initial backoff between attempts.
func WithBusyRetries(retries uint64, initial time.Duration) Option {
	return func(opts *options) {
		opts.busyRetries = retries
		opts.retryBackoff = initial
	}
}
