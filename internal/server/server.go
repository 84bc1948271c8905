package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/lox/concentration/internal/deck"
	"github.com/lox/concentration/internal/game"
	"github.com/lox/concentration/internal/randutil"
	"github.com/lox/concentration/internal/sessionid"
	"golang.org/x/sync/errgroup"
)

// Config holds the game settings applied to every session
type Config struct {
	Size           int
	Alphabet       deck.Alphabet
	NotifyDuration time.Duration
	Container      string
	MaxSessions    int
	// Seed makes every session's deal reproducible: session n is seeded
	// with Seed+n. Nil uses the process-wide generator.
	Seed *int64
}

// DefaultConfig returns the default server configuration
func DefaultConfig() Config {
	return Config{
		Size:           game.DefaultSize,
		Alphabet:       deck.DefaultAlphabet(),
		NotifyDuration: game.DefaultNotifyDuration,
		Container:      game.DefaultContainer,
		MaxSessions:    256,
	}
}

// Option configures a Server
type Option func(*Server)

// WithConfig replaces the server configuration
func WithConfig(cfg Config) Option {
	return func(s *Server) {
		s.config = cfg
	}
}

// WithClock sets the clock used for session IDs
func WithClock(clock quartz.Clock) Option {
	return func(s *Server) {
		s.clock = clock
	}
}

// Server hosts one independent game per WebSocket connection
type Server struct {
	config   Config
	clock    quartz.Clock
	logger   *log.Logger
	upgrader websocket.Upgrader
	ids      *sessionid.Generator

	mu       sync.RWMutex
	sessions map[string]*Session
	counter  atomic.Int64
}

// New creates a new WebSocket server
func New(logger *log.Logger, opts ...Option) *Server {
	s := &Server{
		config: DefaultConfig(),
		clock:  quartz.NewReal(),
		logger: logger.WithPrefix("server"),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		sessions: make(map[string]*Session),
	}

	for _, opt := range opts {
		opt(s)
	}
	s.ids = sessionid.New(s.clock, nil)

	return s
}

// Handler returns the HTTP handler serving /ws and /health
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Run listens on addr and serves until ctx is cancelled
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then closes every
// session and shuts the HTTP server down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("Starting WebSocket server", "addr", ln.Addr().String())
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("Shutting down server...")

		s.closeSessions()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// SessionCount returns the number of live sessions
func (s *Server) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if limit := s.config.MaxSessions; limit > 0 && s.SessionCount() >= limit {
		s.logger.Warn("Rejecting connection, session limit reached", "max", limit)
		http.Error(w, "too many sessions", http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	n := s.counter.Add(1) - 1
	session := newSession(s.ids.Generate(), conn, s, s.sessionRand(n))

	s.register(session)
	session.Start()

	go func() {
		<-session.Done()
		s.unregister(session)
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

func (s *Server) sessionRand(n int64) randutil.Source {
	if s.config.Seed == nil {
		return randutil.Global()
	}
	return randutil.New(*s.config.Seed + n)
}

func (s *Server) register(session *Session) {
	s.mu.Lock()
	s.sessions[session.ID()] = session
	total := len(s.sessions)
	s.mu.Unlock()

	s.logger.Info("Client connected", "session", session.ID(), "total", total)
}

func (s *Server) unregister(session *Session) {
	s.mu.Lock()
	delete(s.sessions, session.ID())
	total := len(s.sessions)
	s.mu.Unlock()

	s.logger.Info("Client disconnected", "session", session.ID(), "total", total)
}

func (s *Server) closeSessions() {
	s.mu.RLock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	s.mu.RUnlock()

	for _, session := range sessions {
		_ = session.Close() // Ignore close errors during shutdown
	}
}
