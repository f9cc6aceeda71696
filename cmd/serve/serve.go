// Package serve runs the settlement HTTP API
package serve

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fjacquet/debtsolver/cmd/root"
	"fjacquet/debtsolver/internal/api"
	"fjacquet/debtsolver/internal/logging"

	"github.com/spf13/cobra"
)

// ShutdownTimeout bounds how long in-flight requests may take once a
// shutdown signal arrives.
const ShutdownTimeout = 15 * time.Second

var addr string

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the settlement engine over HTTP",
	Long: `Start an HTTP server exposing POST /api/v1/settle, POST /api/v1/balances
and GET /healthz. The server stops gracefully on SIGINT or SIGTERM.`,
	RunE: serveFunc,
}

func init() {
	Cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default: server.addr from config)")
}

func serveFunc(cmd *cobra.Command, args []string) error {
	c, err := root.RequireContainer()
	if err != nil {
		return err
	}

	cfg := c.GetConfig().Server
	if addr != "" {
		cfg.Addr = addr
	}
	timeout := time.Duration(cfg.ReadTimeoutSeconds) * time.Second

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.NewRouter(c),
		ReadTimeout:       timeout,
		ReadHeaderTimeout: timeout,
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return Run(ctx, srv, c.GetLogger())
}

// Run serves srv until ctx is cancelled, then shuts it down gracefully. It
// returns the listener error if the server fails to start.
func Run(ctx context.Context, srv *http.Server, logger logging.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Listening", logging.F(logging.FieldAddr, srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("Server stopped")
	return nil
}
