package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/mazewalk/internal/config"
	"github.com/aretw0/mazewalk/internal/logging"
	"github.com/aretw0/mazewalk/pkg/adapters/memory"
	"github.com/aretw0/mazewalk/pkg/adapters/redis"
	"github.com/aretw0/mazewalk/pkg/ports"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
				// Context cancelled elsewhere
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// createLogger configures the application logger.
// It writes to Stderr (to separate from the frames on Stdout); --debug forces debug level.
func createLogger(cfg *config.Config, debug bool) *slog.Logger {
	level := logging.ParseLevel(cfg.Log.Level)
	if debug {
		level = slog.LevelDebug
	}
	return logging.New(level, logging.Format(cfg.Log.Format))
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// storeSet bundles the snapshot store with its optional locker.
type storeSet struct {
	Store  ports.SnapshotStore
	Locker ports.DistributedLocker
	Close  func() error
}

// setupStore picks the snapshot store: Redis when an address is configured,
// memory otherwise.
func setupStore(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) (*storeSet, error) {
	if cfg.Addr == "" {
		logger.Debug("Using in-memory snapshot store")
		return &storeSet{Store: memory.NewStore(), Close: func() error { return nil }}, nil
	}

	store := redis.New(cfg.Addr, cfg.Password, cfg.DB,
		redis.WithPrefix(cfg.Prefix),
		redis.WithTTL(cfg.TTL),
	)
	if err := store.Ping(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	logger.Info("Using redis snapshot store", "addr", cfg.Addr, "prefix", cfg.Prefix, "ttl", cfg.TTL)
	return &storeSet{Store: store, Locker: store.Locker(redis.WithLockerLogger(logger)), Close: store.Close}, nil
}
