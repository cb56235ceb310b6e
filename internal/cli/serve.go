package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/mazewalk"
	httpadapter "github.com/aretw0/mazewalk/pkg/adapters/http"
	"github.com/aretw0/mazewalk/pkg/observability"
	"github.com/aretw0/mazewalk/pkg/runner"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// shutdownTimeout bounds the graceful HTTP shutdown.
const shutdownTimeout = 5 * time.Second

// Serve runs the engine headless and exposes its frames and metrics over HTTP
// until ctx is cancelled.
func Serve(ctx context.Context, opts RunOptions) error {
	cfg := opts.config()
	logger := createLogger(cfg, opts.Debug)

	stores, err := setupStore(ctx, cfg.Redis, logger)
	if err != nil {
		return err
	}
	defer stores.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec := observability.NewPrometheusRecorder(reg)

	engine, err := createEngine(cfg, logger, rec)
	if err != nil {
		return err
	}

	handler := httpadapter.NewHandler(stores.Store, cfg.Runner.SessionID,
		httpadapter.WithMetrics(observability.HTTPHandler(reg)),
		httpadapter.WithAllowedOrigins(cfg.HTTP.CORSOrigins...),
		httpadapter.WithVersion(mazewalk.Version),
		httpadapter.WithLogger(logger),
	)
	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("HTTP feed listening", "addr", srv.Addr, "session_id", cfg.Runner.SessionID)
		serverErrors <- srv.ListenAndServe()
	}()

	runnerErrors := make(chan error, 1)
	go func() {
		rOpts := createRunnerOptions(cfg.Runner.SessionID, stores, logger, rec)
		rOpts = append(rOpts, runner.WithInterval(cfg.FrameInterval()), runner.WithPublishEvery(cfg.Runner.PublishEvery))
		runnerErrors <- runner.NewRunner(rOpts...).Run(ctx, engine)
	}()

	printSystemMessage(opts.out(), "Serving session '%s' on %s", cfg.Runner.SessionID, cfg.HTTP.Addr)

	var runErr error
	select {
	case err := <-serverErrors:
		cancel()
		<-runnerErrors
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case runErr = <-runnerErrors:
	case <-ctx.Done():
		runErr = <-runnerErrors
	}

	// Give outstanding requests a deadline for completion.
	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
		_ = srv.Close()
	}
	logger.Info("HTTP feed stopped")

	if runErr != nil {
		return fmt.Errorf("engine stopped: %w", runErr)
	}
	return nil
}
