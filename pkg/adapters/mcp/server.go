package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/easel"
	"github.com/aretw0/easel/internal/logging"
	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/scheduler"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const statusURI = "easel://status"

// Host is the part of an engine the MCP server needs.
type Host interface {
	Debug() (scheduler.Controls, error)
	Status() scheduler.Status
}

// StatusResponse is returned by every tool.
type StatusResponse struct {
	Status scheduler.Status `json:"status" jsonschema_description:"Scheduler snapshot after the command"`
	Broke  *bool            `json:"broke,omitempty" jsonschema_description:"Set by break_when: whether the loop broke"`
}

type noArgs struct{}

type resizeArgs struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type breakWhenArgs struct {
	Frame int `json:"frame"`
}

// Server exposes the debug controls of an engine as MCP tools.
type Server struct {
	host      Host
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(host Host, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		host:      host,
		logger:    logger,
		mcpServer: server.NewMCPServer("easel-mcp", strings.TrimSpace(easel.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("MCP server shutting down")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("status",
		mcp.WithDescription("Report the loop state, frame counter, fps and last draw data. Works with debug disabled."),
		mcp.WithOutputSchema[StatusResponse](),
	), mcp.NewStructuredToolHandler(s.handleStatus))

	commands := []struct {
		name, description string
		run               func(scheduler.Controls)
	}{
		{"start", "Switch the frame loop to free-running.", scheduler.Controls.Start},
		{"break", "Stop producing frames until start or step.", scheduler.Controls.Break},
		{"pause", "Alias of break.", scheduler.Controls.Pause},
		{"step", "Produce exactly one frame on the next tick, then break.", scheduler.Controls.Step},
		{"reset", "Return to idle and run the init hook again on the next frame.", scheduler.Controls.Reset},
	}
	for _, c := range commands {
		s.mcpServer.AddTool(mcp.NewTool(c.name,
			mcp.WithDescription(c.description),
			mcp.WithOutputSchema[StatusResponse](),
		), mcp.NewStructuredToolHandler(s.command(c.name, c.run)))
	}

	s.mcpServer.AddTool(mcp.NewTool("resize",
		mcp.WithDescription("Queue a surface resize applied at the start of the next tick."),
		mcp.WithNumber("width", mcp.Required(), mcp.Description("Backing width in pixels")),
		mcp.WithNumber("height", mcp.Required(), mcp.Description("Backing height in pixels")),
		mcp.WithOutputSchema[StatusResponse](),
	), mcp.NewStructuredToolHandler(s.handleResize))

	s.mcpServer.AddTool(mcp.NewTool("break_when",
		mcp.WithDescription("Break if the last produced frame number is at least frame."),
		mcp.WithNumber("frame", mcp.Required(), mcp.Description("Frame number threshold")),
		mcp.WithOutputSchema[StatusResponse](),
	), mcp.NewStructuredToolHandler(s.handleBreakWhen))
}

func (s *Server) handleStatus(ctx context.Context, request mcp.CallToolRequest, args noArgs) (StatusResponse, error) {
	return StatusResponse{Status: s.host.Status()}, nil
}

func (s *Server) command(name string, run func(scheduler.Controls)) func(context.Context, mcp.CallToolRequest, noArgs) (StatusResponse, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args noArgs) (StatusResponse, error) {
		controls, err := s.host.Debug()
		if err != nil {
			s.logger.Warn("MCP command rejected", "tool", name, "error", err)
			return StatusResponse{}, err
		}
		run(controls)
		return StatusResponse{Status: controls.Status()}, nil
	}
}

func (s *Server) handleResize(ctx context.Context, request mcp.CallToolRequest, args resizeArgs) (StatusResponse, error) {
	controls, err := s.host.Debug()
	if err != nil {
		return StatusResponse{}, err
	}
	if err := controls.Resize(args.Width, args.Height); err != nil {
		s.logger.Warn("MCP resize rejected", "error", err)
		return StatusResponse{}, err
	}
	return StatusResponse{Status: controls.Status()}, nil
}

func (s *Server) handleBreakWhen(ctx context.Context, request mcp.CallToolRequest, args breakWhenArgs) (StatusResponse, error) {
	controls, err := s.host.Debug()
	if err != nil {
		return StatusResponse{}, err
	}
	if args.Frame < 0 {
		return StatusResponse{}, fmt.Errorf("frame %d: %w", args.Frame, domain.ErrInvalidOption)
	}
	broke := controls.BreakWhen(func(d domain.DrawData) bool {
		return d.Frame >= args.Frame
	})
	return StatusResponse{Status: controls.Status(), Broke: &broke}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(statusURI, "Scheduler Status",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.host.Status())
		if err != nil {
			return nil, fmt.Errorf("failed to encode status: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      statusURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
