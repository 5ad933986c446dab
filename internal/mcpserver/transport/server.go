package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/mark3labs/mcp-go/server"
	"github.com/nsqlite/nsqlite-mcp/internal/log"
	"github.com/nsqlite/nsqlite-mcp/internal/util/httputil"
)

// Pinger checks the database answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config represents the configuration for the HTTP transport.
type Config struct {
	// Logger is the shared logger.
	Logger log.Logger
	// MCPServer is the tool server to expose.
	MCPServer *server.MCPServer
	// Gateway is pinged by the health endpoint.
	Gateway Pinger
	// ListenHost is the host to listen on.
	ListenHost string
	// ListenPort is the port to listen on.
	ListenPort string
	// AuthTokenAlgorithm is one of plaintext, argon2 or bcrypt.
	AuthTokenAlgorithm string
	// AuthToken is the expected bearer token; empty disables authentication.
	AuthToken string
}

// Server serves the tools over streamable HTTP.
type Server struct {
	conf          Config
	isInitialized bool
	server        *http.Server
}

// NewServer creates a new HTTP transport.
func NewServer(config Config) (*Server, error) {
	if !config.Logger.IsInitialized() {
		return nil, errors.New("logger is required")
	}
	if config.MCPServer == nil {
		return nil, errors.New("mcp server is required")
	}
	if config.Gateway == nil {
		return nil, errors.New("gateway is required")
	}
	if config.ListenHost == "" {
		config.ListenHost = "127.0.0.1"
	}
	if config.ListenPort == "" {
		config.ListenPort = "9877"
	}
	if config.AuthTokenAlgorithm == "" {
		config.AuthTokenAlgorithm = "plaintext"
	}

	s := &Server{
		conf:          config,
		isInitialized: true,
	}
	s.server = &http.Server{
		Addr:    net.JoinHostPort(config.ListenHost, config.ListenPort),
		Handler: s.Handler(),
	}
	return s, nil
}

// IsInitialized returns true if the server is initialized.
func (s *Server) IsInitialized() bool {
	return s.isInitialized
}

// Handler returns the routes of the transport.
func (s *Server) Handler() http.Handler {
	hb := httputil.CreateHandlerFuncBuilder(s.errorHandler)
	streamable := server.NewStreamableHTTPServer(s.conf.MCPServer)

	mux := http.NewServeMux()
	mux.HandleFunc("/mcp", hb(
		func(w http.ResponseWriter, r *http.Request) error {
			streamable.ServeHTTP(w, r)
			return nil
		},
		s.authMiddleware,
	))
	mux.HandleFunc("GET /health", hb(s.healthHandler))
	mux.HandleFunc("GET /version", hb(s.versionHandler))
	return mux
}

// Start starts the server and blocks until it stops.
func (s *Server) Start() error {
	localAddr := fmt.Sprintf("http://%s:%s/mcp", "localhost", s.conf.ListenPort)

	s.conf.Logger.InfoNs(log.NsServer, "http transport started at "+localAddr, log.KV{
		"listen_host": s.conf.ListenHost,
		"listen_port": s.conf.ListenPort,
		"auth":        s.conf.AuthToken != "",
	})

	err := s.server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// Stop gracefully stops the server. It is safe to call before or while
// Start runs; a Start after Stop returns immediately.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
