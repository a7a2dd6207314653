// Package bootstrap manages process lifecycle and graceful shutdown.
package bootstrap

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
)

// App runs a long-lived process and tears it down cleanly on interrupt.
type App struct {
	mu    sync.Mutex
	hooks []func(ctx context.Context) error
}

func New() *App {
	return &App{}
}

// AddShutdownHook registers a hook to run during shutdown. Hooks run in
// reverse registration order.
func (a *App) AddShutdownHook(fn func(ctx context.Context) error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hooks = append(a.hooks, fn)
}

// Run executes run until it returns or the process receives an interrupt,
// at which point registered shutdown hooks run in LIFO order.
func (a *App) Run(ctx context.Context, run func(ctx context.Context) error) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		if err := run(ctx); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		return a.shutdown(context.Background())
	case err := <-errCh:
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return a.shutdown(context.Background())
		}
		return nil
	}
}

func (a *App) shutdown(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	var errs []error
	for i := len(a.hooks) - 1; i >= 0; i-- {
		if err := a.hooks[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
