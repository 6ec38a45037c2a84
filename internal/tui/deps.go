package tui

import (
	"context"
	"log/slog"

	"github.com/mboehm/tix/internal/biometric"
	"github.com/mboehm/tix/internal/client/api"
	"github.com/mboehm/tix/internal/session"
	"github.com/mboehm/tix/internal/store"
)

type Deps struct {
	Ctx     context.Context
	Logger  *slog.Logger
	Store   store.Store
	API     *api.Client
	Bus     *session.Bus
	Gate    biometric.Gate
	Checker *session.Checker
}
