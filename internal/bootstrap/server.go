package bootstrap

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/bondifuzz/api-gateway/internal/launcher"
	"github.com/bondifuzz/api-gateway/pkg/mlog"
)

// Server runs the gateway's fiber.App, grounded on the teacher's
// service.Server (components/ledger/internal/service/server.go): a thin
// App wrapping fiber's Listen, extended with ShutdownWithContext since the
// launcher here drives shutdown from a cancellable context rather than the
// teacher's signal-naive version.
type Server struct {
	app     *fiber.App
	address string
	logger  mlog.Logger
}

// NewServer builds a Server listening on address.
func NewServer(address string, app *fiber.App, logger mlog.Logger) *Server {
	return &Server{app: app, address: address, logger: logger}
}

// Run serves HTTP until l.Context is cancelled, then drains in-flight
// requests for up to 10 seconds before returning.
func (s *Server) Run(l *launcher.Launcher) error {
	errCh := make(chan error, 1)

	go func() {
		errCh <- s.app.Listen(s.address)
	}()

	select {
	case err := <-errCh:
		return err
	case <-l.Context.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.logger.Info("server: shutting down")

		return s.app.ShutdownWithContext(shutdownCtx)
	}
}
