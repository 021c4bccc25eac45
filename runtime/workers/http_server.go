package workers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HTTPServerWorker serves the echo router until the context ends, then
// shuts it down and runs the onShutdown hooks (e.g. closing websockets).
type HTTPServerWorker struct {
	log             *slog.Logger
	echo            *echo.Echo
	address         string
	shutdownTimeout time.Duration
	onShutdown      []func()
}

func NewHTTPServerWorker(log *slog.Logger, e *echo.Echo, address string,
	shutdownTimeout time.Duration, onShutdown ...func()) *HTTPServerWorker {
	return &HTTPServerWorker{
		log:             log,
		echo:            e,
		address:         address,
		shutdownTimeout: shutdownTimeout,
		onShutdown:      onShutdown,
	}
}

func (w *HTTPServerWorker) Run(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		w.log.Info("Starting HTTP server", "address", w.address)
		errChan <- w.echo.Start(w.address)
	}()

	select {
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	for _, hook := range w.onShutdown {
		hook()
	}
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.shutdownTimeout)
	defer cancel()
	if err := w.echo.Shutdown(shutdownCtx); err != nil {
		w.log.Warn("HTTP server shutdown", "error", err)
	}
	<-errChan
	w.log.Info("HTTP server stopped")
	return nil
}
