package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aretw0/mazewalk"
	"github.com/aretw0/mazewalk/pkg/adapters/mcp"
)

// MCPOptions selects the MCP transport.
type MCPOptions struct {
	RunOptions
	Transport string
	Addr      string
}

// ServeMCP exposes maze generation, and the frames of the configured session,
// to MCP clients.
func ServeMCP(ctx context.Context, opts MCPOptions) error {
	cfg := opts.config()
	logger := createLogger(cfg, opts.Debug)

	stores, err := setupStore(ctx, cfg.Redis, logger)
	if err != nil {
		return err
	}
	defer stores.Close()

	srv := mcp.NewServer(mazewalk.Version, stores.Store, cfg.Runner.SessionID,
		mcp.WithLogger(logger),
		mcp.WithDefaultDimensions(cfg.Maze.Width, cfg.Maze.Height),
	)

	switch opts.Transport {
	case "stdio", "":
		// Logs go to Stderr so they never corrupt JSON-RPC on Stdout.
		logger.Info("Starting MCP Server (Stdio)")
		return srv.ServeStdio()
	case "sse":
		baseURL := "http://localhost" + opts.Addr
		logger.Info("Starting MCP Server (SSE)", "addr", opts.Addr)
		if err := srv.ServeSSE(ctx, opts.Addr, baseURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		logger.Info("MCP Server stopped gracefully")
		return nil
	default:
		return fmt.Errorf("unknown transport %q: supported stdio, sse", opts.Transport)
	}
}
