package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/richxcame/ride-hailing-web/pkg/logger"
)

// DefaultShutdownTimeout bounds graceful shutdown
const DefaultShutdownTimeout = 30 * time.Second

// Serve runs every server until one fails, ctx is cancelled or the process
// receives SIGINT/SIGTERM, then shuts them all down gracefully.
func Serve(ctx context.Context, shutdownTimeout time.Duration, servers ...*http.Server) error {
	if shutdownTimeout <= 0 {
		shutdownTimeout = DefaultShutdownTimeout
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		srv := srv
		g.Go(func() error {
			logger.Info("HTTP server listening", zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server %s: %w", srv.Addr, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down HTTP servers")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("graceful shutdown failed, forcing close", zap.String("addr", srv.Addr), zap.Error(err))
				errs = append(errs, srv.Close())
			}
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}
