// Package gateway is the HTTP/WebSocket front of switchboard. It upgrades
// connections, enforces the login-first protocol, and feeds decoded
// envelopes into the hub.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/calliof/switchboard/internal/config"
	"github.com/calliof/switchboard/internal/domain"
	"github.com/calliof/switchboard/internal/hub"
	"github.com/calliof/switchboard/internal/logging"
	"github.com/calliof/switchboard/internal/protocol"
)

// maxMessageSize caps a single inbound websocket payload.
const maxMessageSize = 64 * 1024

// Server is the switchboard HTTP + WebSocket server.
type Server struct {
	cfg config.Config
	log *logging.Logger
	hub *hub.Hub

	startedAt  time.Time
	httpServer *http.Server
	upgrader   websocket.Upgrader
}

// New creates a gateway server in front of the given hub.
func New(cfg config.Config, h *hub.Hub, log *logging.Logger) *Server {
	return &Server{
		cfg: cfg,
		log: log.Sub("gateway"),
		hub: h,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     checkWebSocketOrigin(cfg.Server.AllowedOrigins),
		},
	}
}

// checkWebSocketOrigin returns a function that validates WebSocket Origin
// headers. With no configured origins every origin is accepted, matching
// anonymous widget embeds; configured origins form an allowlist.
func checkWebSocketOrigin(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}
}

// resolveBindAddr computes the listen address from config.
func resolveBindAddr(cfg config.ServerConfig) string {
	switch cfg.Bind {
	case "all":
		return fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	case "custom":
		host := cfg.CustomBindHost
		if host == "" {
			host = "0.0.0.0"
		}
		return fmt.Sprintf("%s:%d", host, cfg.Port)
	default:
		return fmt.Sprintf("127.0.0.1:%d", cfg.Port)
	}
}

// routes builds the HTTP handler tree wrapped in the middleware chain.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	mux.HandleFunc("/", handleNotFound)
	return withMiddleware(mux, s.log, s.cfg.Server.AllowedOrigins)
}

// Start begins listening for HTTP and WebSocket connections.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Start(ctx context.Context) error {
	addr := resolveBindAddr(s.cfg.Server)

	s.httpServer = &http.Server{
		Addr:        addr,
		Handler:     s.routes(),
		IdleTimeout: 120 * time.Second,
		BaseContext: func(l net.Listener) context.Context { return ctx },
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s.startedAt = time.Now()
	s.log.Info().
		Str("addr", ln.Addr().String()).
		Str("bind", s.cfg.Server.Bind).
		Msg("server ready")

	// Shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		s.log.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.hub.Shutdown()
		s.httpServer.Shutdown(shutdownCtx)
	}()

	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Addr returns the server's listen address, or empty string if not started.
func (s *Server) Addr() string {
	if s.httpServer != nil {
		return s.httpServer.Addr
	}
	return ""
}

// handleWebSocket upgrades HTTP to WebSocket and runs the connection loop.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	socket, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	socket.SetReadLimit(maxMessageSize)

	s.log.Debug().Str("remote", r.RemoteAddr).Msg("new websocket connection")
	s.readLoop(r.Context(), newWSConn(socket, s.log.Sub("ws")))
}

// readLoop decodes inbound envelopes and hands them to the hub. The first
// accepted login binds the connection to an identity; everything else on
// this connection speaks for that identity until it closes.
func (s *Server) readLoop(ctx context.Context, conn *wsConn) {
	var (
		boundID   string
		boundRole domain.Role
	)
	defer func() {
		conn.Close()
		if boundID != "" {
			s.hub.HandleDisconnect(boundID, boundRole, conn)
		}
	}()

	for {
		_, raw, err := conn.socket.ReadMessage()
		if err != nil {
			if conn.isClosed() {
				// A newer login took over this identity; the hub already
				// rebound it, so this loop just winds down.
				s.log.Debug().Str("id", boundID).Msg("connection superseded")
				boundID = ""
				return
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Debug().Str("id", boundID).Msg("connection closed")
				return
			}
			s.log.Warn().Err(err).Str("id", boundID).Msg("read error")
			s.hub.RecordConnectionFailure(boundID)
			return
		}

		env, err := protocol.Decode(raw)
		if err != nil {
			s.log.Warn().Err(err).Str("id", boundID).Msg("rejecting envelope")
			conn.Send(protocol.NewError("Invalid message format."))
			continue
		}

		switch env.Type {
		case protocol.TypeLogin:
			id, role, ok := s.hub.HandleLogin(ctx, conn, env)
			if !ok {
				// Rejected login; keep the socket so the client can
				// retry once the cooldown passes.
				continue
			}
			boundID, boundRole = id, role
		case protocol.TypePrivateMessage:
			s.hub.HandlePrivateMessage(ctx, conn, boundID, boundRole, env)
		case protocol.TypeFormSubmission:
			s.hub.HandleFormSubmission(ctx, conn, env)
		}
	}
}
