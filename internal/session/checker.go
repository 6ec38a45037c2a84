package session

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/mboehm/tix/internal/store"
	"github.com/mboehm/tix/internal/xslog"
)

// Checker runs one periodic session validation. The call itself publishes the
// expiry signal on 401 (that lives in the API client), so the checker's only
// jobs are to skip silently when no token is stored and to swallow
// unreachability errors, which say nothing about expiry.
//
// Overlapping ticks are collapsed through singleflight; a slow response never
// queues up duplicate "who am I" calls.
type Checker struct {
	tokens   store.TokenStore
	validate func(ctx context.Context) error
	group    singleflight.Group
	logger   *slog.Logger
}

func NewChecker(tokens store.TokenStore, validate func(ctx context.Context) error, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Checker{
		tokens:   tokens,
		validate: validate,
		logger:   logger,
	}
}

// Check performs one validation pass. It never returns an error: expiry is
// signaled through the bus by the underlying call, and every other failure is
// ignored by design of the revocation check.
func (c *Checker) Check(ctx context.Context) {
	if _, err := c.tokens.Token(ctx); err != nil {
		if !errors.Is(err, store.ErrNoToken) {
			c.logger.Warn("session check skipped", xslog.Error(err))
		}
		return
	}

	_, err, _ := c.group.Do("whoami", func() (any, error) {
		return nil, c.validate(ctx)
	})
	if err != nil {
		// Unreachability, 5xx, and expiry all land here; the expiry case has
		// already been published by the client.
		c.logger.Debug("session check failed", xslog.Error(err))
	}
}
