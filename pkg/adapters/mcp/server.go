package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/docent"
	"github.com/aretw0/docent/internal/logging"
	"github.com/aretw0/docent/pkg/catalog"
	"github.com/aretw0/docent/pkg/domain"
	"github.com/aretw0/docent/pkg/input"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
)

// CatalogURI addresses the exhibit catalog resource.
const CatalogURI = "docent://catalog"

// Engine defines the conversation operations exposed as tools.
type Engine interface {
	Start(ctx context.Context, sessionID string) (string, error)
	Turn(ctx context.Context, sessionID, text string) (*docent.Reply, error)
	Catalog() *domain.Catalog
}

// StartArgs are the arguments of the start_session tool.
type StartArgs struct {
	SessionID string `mapstructure:"session_id"`
}

// ChatArgs are the arguments of the chat tool.
type ChatArgs struct {
	SessionID string `mapstructure:"session_id"`
	UserText  string `mapstructure:"user_text"`
}

// ChatResult is the structured output of start_session and chat.
type ChatResult struct {
	ReplyText string `json:"reply_text" jsonschema_description:"What the docent says next"`
	StepID    string `json:"step_id,omitempty" jsonschema_description:"Question the reply pursues"`
	Exhibit   string `json:"exhibit,omitempty" jsonschema_description:"Exhibit under discussion"`
	Closed    bool   `json:"closed" jsonschema_description:"True when the conversation has ended"`
}

// Server wraps the engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, opts ...Option) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("docent-mcp", docent.Version),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx
// is cancelled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
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

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("start_session",
		mcp.WithDescription("Start (or restart) a visitor conversation and return the greeting."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Opaque visitor session id")),
		mcp.WithOutputSchema[ChatResult](),
	), s.handleStart)

	s.mcpServer.AddTool(mcp.NewTool("chat",
		mcp.WithDescription("Send one visitor utterance and return the docent's reply."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Opaque visitor session id")),
		mcp.WithString("user_text", mcp.Required(), mcp.Description("What the visitor said")),
		mcp.WithOutputSchema[ChatResult](),
	), s.handleChat)

	s.mcpServer.AddTool(mcp.NewTool("list_exhibits",
		mcp.WithDescription("List the exhibits of the loaded catalog with their one-line descriptions."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(catalog.KnowledgeBase(s.engine.Catalog())), nil
	})
}

func decodeArgs(request mcp.CallToolRequest, target any) error {
	return mapstructure.Decode(request.GetArguments(), target)
}

func (s *Server) handleStart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args StartArgs
	if err := decodeArgs(request, &args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to bind arguments: %v", err)), nil
	}
	id, err := input.ValidateSessionID(args.SessionID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("session_id %v", err)), nil
	}

	greeting, err := s.engine.Start(ctx, id)
	if err != nil {
		s.logger.Error("MCP Start failed", "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("start failed: %v", err)), nil
	}
	res := ChatResult{ReplyText: greeting}
	return mcp.NewToolResultStructured(res, greeting), nil
}

func (s *Server) handleChat(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args ChatArgs
	if err := decodeArgs(request, &args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to bind arguments: %v", err)), nil
	}

	id, err := input.ValidateSessionID(args.SessionID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("session_id %v", err)), nil
	}
	text, err := input.ValidateUtterance(args.UserText)
	if err != nil {
		s.logger.Warn("MCP Chat: Input rejected", "error", err, "size", len(args.UserText))
		return mcp.NewToolResultError(fmt.Sprintf("user_text %v", err)), nil
	}

	reply, err := s.engine.Turn(ctx, id, text)
	if err != nil {
		s.logger.Error("MCP Chat failed", "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("turn failed: %v", err)), nil
	}
	res := ChatResult{
		ReplyText: reply.Text,
		StepID:    reply.StepID,
		Exhibit:   reply.Exhibit,
		Closed:    reply.Closed,
	}
	return mcp.NewToolResultStructured(res, reply.Text), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(CatalogURI, "Exhibit Catalog",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		cat := s.engine.Catalog()
		exhibits := make([]domain.Exhibit, 0, cat.Len())
		for _, name := range cat.Names() {
			ex, _ := cat.Lookup(name)
			exhibits = append(exhibits, ex)
		}
		jsonBytes, err := json.Marshal(exhibits)
		if err != nil {
			return nil, fmt.Errorf("failed to encode catalog: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      CatalogURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
