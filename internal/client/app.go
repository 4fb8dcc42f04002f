package client

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/go-exam-admin/internal/logger"
	"github.com/MKhiriev/go-exam-admin/internal/workers"
)

var ErrNoConsole = errors.New("client: console is not configured")

type App struct {
	console Console
	backend *MockBackend
	closers []io.Closer
	logger  *logger.Logger
}

// NewApp builds the console application. backend may be nil; closers are
// closed in order after the console exits.
func NewApp(console Console, backend *MockBackend, logger *logger.Logger, closers ...io.Closer) (*App, error) {
	if console == nil {
		return nil, ErrNoConsole
	}

	return &App{
		console: console,
		backend: backend,
		closers: closers,
		logger:  logger,
	}, nil
}

// Run shows the console until the user quits. The embedded backend, if
// any, is stopped when the console returns.
func (a *App) Run(ctx context.Context) error {
	group := workers.New(workers.Func(a.console.Run))
	if a.backend != nil {
		group.Add(a.backend)
	}

	runErr := group.Run(ctx)

	var closeErr error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Err(err).Msg("error closing resource")
			closeErr = errors.Join(closeErr, err)
		}
	}

	if runErr != nil {
		return fmt.Errorf("console run: %w", runErr)
	}
	return closeErr
}
