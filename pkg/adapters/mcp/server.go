// Package mcp exposes maze generation and the published frames of a session
// as Model Context Protocol tools and resources.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/aretw0/mazewalk/internal/logging"
	"github.com/aretw0/mazewalk/internal/presentation/graph"
	"github.com/aretw0/mazewalk/pkg/domain"
	"github.com/aretw0/mazewalk/pkg/maze"
	"github.com/aretw0/mazewalk/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MazeResourceURI is the resource holding the maze of the default session.
const MazeResourceURI = "mazewalk://maze"

// GenerateArgs are the arguments of the generate_maze tool.
type GenerateArgs struct {
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	Seed        *int64 `json:"seed,omitempty"`
	DetailCells *int   `json:"detail_cells,omitempty"`
	Format      string `json:"format,omitempty"`
}

// GenerateResponse is the structured result of generate_maze.
type GenerateResponse struct {
	Width   int              `json:"width" jsonschema_description:"Grid width in cells"`
	Height  int              `json:"height" jsonschema_description:"Grid height in cells"`
	Start   domain.CellKey   `json:"start" jsonschema_description:"Key of the start cell (width*y + x)"`
	End     domain.CellKey   `json:"end" jsonschema_description:"Key of the end cell"`
	Stats   maze.Stats       `json:"stats" jsonschema_description:"Shape statistics of the maze"`
	Render  string           `json:"render,omitempty" jsonschema_description:"ASCII or Mermaid rendering"`
	Graph   *domain.Graph    `json:"graph,omitempty" jsonschema_description:"Full graph when format is json"`
	Details []domain.CellKey `json:"details,omitempty" jsonschema_description:"Highlighted detail cells"`
}

// SnapshotArgs are the arguments of the get_snapshot tool.
type SnapshotArgs struct {
	Session string `json:"session,omitempty"`
}

// Server exposes mazewalk as an MCP server.
type Server struct {
	store     ports.SnapshotStore
	sessionID string
	logger    *slog.Logger
	mcpServer *server.MCPServer

	defaultWidth, defaultHeight int
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithDefaultDimensions sets the grid used when generate_maze omits them.
func WithDefaultDimensions(width, height int) Option {
	return func(s *Server) { s.defaultWidth, s.defaultHeight = width, height }
}

// NewServer creates a new MCP Server instance. store may be nil, in which case
// only generate_maze is registered.
func NewServer(version string, store ports.SnapshotStore, sessionID string, opts ...Option) *Server {
	s := &Server{
		store:         store,
		sessionID:     sessionID,
		logger:        logging.NewNop(),
		mcpServer:     server.NewMCPServer("mazewalk-mcp", version),
		defaultWidth:  20,
		defaultHeight: 20,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the MCP SSE transport on addr until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{Addr: addr, Handler: mux}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	// TOOL: generate_maze
	generateTool := mcp.NewTool("generate_maze",
		mcp.WithDescription("Generate a perfect maze (a spanning tree over a grid) and return its layout and statistics."),
		mcp.WithNumber("width", mcp.Description("Grid width in cells (optional)")),
		mcp.WithNumber("height", mcp.Description("Grid height in cells (optional)")),
		mcp.WithNumber("seed", mcp.Description("Random seed; the same seed always yields the same maze (optional)")),
		mcp.WithNumber("detail_cells", mcp.Description("Number of highlighted detail cells (optional, default 1)")),
		mcp.WithString("format", mcp.Description("Rendering: ascii (default), mermaid or json")),
		mcp.WithOutputSchema[GenerateResponse](),
	)
	s.mcpServer.AddTool(generateTool, mcp.NewStructuredToolHandler(s.handleGenerate))

	if s.store == nil {
		return
	}

	// TOOL: get_snapshot
	s.mcpServer.AddTool(mcp.NewTool("get_snapshot",
		mcp.WithDescription("Get the latest published frame of a running session: phase, reveal amount, camera pose and waypoints."),
		mcp.WithString("session", mcp.Description("Session ID (optional)")),
		mcp.WithOutputSchema[domain.Snapshot](),
	), mcp.NewStructuredToolHandler(s.handleSnapshot))
}

func (s *Server) handleGenerate(ctx context.Context, request mcp.CallToolRequest, args GenerateArgs) (GenerateResponse, error) {
	width, height := args.Width, args.Height
	if width == 0 {
		width = s.defaultWidth
	}
	if height == 0 {
		height = s.defaultHeight
	}

	seed := rand.Uint64()
	if args.Seed != nil {
		seed = uint64(*args.Seed)
	}

	var opts []maze.Option
	if args.DetailCells != nil {
		opts = append(opts, maze.WithDetailCells(*args.DetailCells))
	}

	g, err := maze.Generate(width, height, rand.New(rand.NewPCG(seed, 0)), opts...)
	if err != nil {
		return GenerateResponse{}, fmt.Errorf("generate failed: %w", err)
	}
	stats, err := maze.Analyze(g)
	if err != nil {
		return GenerateResponse{}, fmt.Errorf("analyze failed: %w", err)
	}

	resp := GenerateResponse{
		Width:   g.Width,
		Height:  g.Height,
		Start:   g.Start,
		End:     g.End,
		Details: g.Details,
		Stats:   stats,
	}

	switch args.Format {
	case "", "ascii":
		resp.Render = graph.RenderASCII(g, nil)
	case "mermaid":
		resp.Render = graph.GenerateMermaid(g, nil)
	case "json":
		resp.Graph = g
	default:
		return GenerateResponse{}, fmt.Errorf("unknown format %q: want ascii, mermaid or json", args.Format)
	}

	s.logger.Debug("MCP: Maze generated", "width", width, "height", height, "seed", seed)
	return resp, nil
}

func (s *Server) handleSnapshot(ctx context.Context, request mcp.CallToolRequest, args SnapshotArgs) (domain.Snapshot, error) {
	id := args.Session
	if id == "" {
		id = s.sessionID
	}

	snap, err := s.store.Load(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrSnapshotNotFound) {
			return domain.Snapshot{}, fmt.Errorf("session %q has no published frame: %w", id, err)
		}
		s.logger.Error("MCP Snapshot: Load failed", "session_id", id, "error", err)
		return domain.Snapshot{}, fmt.Errorf("load failed: %w", err)
	}
	return snap.WithoutGraph(), nil
}

func (s *Server) registerResources() {
	if s.store == nil {
		return
	}

	// EXPOSE: mazewalk://maze
	s.mcpServer.AddResource(mcp.NewResource(MazeResourceURI, "Current Maze",
		mcp.WithResourceDescription("Graph of the maze on display in the default session"),
		mcp.WithMIMEType("application/json"),
	), s.readMaze)
}

func (s *Server) readMaze(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	snap, err := s.store.Load(ctx, s.sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session %q: %w", s.sessionID, err)
	}
	if snap.Graph == nil {
		return nil, fmt.Errorf("maze %s has expired", snap.MazeID)
	}

	jsonBytes, err := json.Marshal(snap.Graph)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      MazeResourceURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
