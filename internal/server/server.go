// Package server exposes blackjack sessions over WebSocket. Each connection
// plays its own game against the dealer.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
)

// Config holds server settings
type Config struct {
	Addr            string
	IdleTimeout     time.Duration
	DefaultBankroll float64
	Seed            int64
	Clock           quartz.Clock
	Logger          *log.Logger
	GameOptions     []game.Option
}

// Server represents the WebSocket server
type Server struct {
	cfg         Config
	upgrader    websocket.Upgrader
	connections map[*Connection]bool
	sessions    int
	logger      *log.Logger
	mu          sync.RWMutex
	httpServer  *http.Server
}

// NewServer creates a new WebSocket server
func NewServer(cfg Config) *Server {
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.DefaultBankroll <= 0 {
		cfg.DefaultBankroll = 100
	}

	return &Server{
		cfg: cfg,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections: make(map[*Connection]bool),
		logger:      cfg.Logger.WithPrefix("server"),
	}
}

// Handler returns the HTTP handler serving /ws and /health
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Start serves until ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv := s.httpServer
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting WebSocket server", "addr", s.cfg.Addr, "idle_timeout", s.cfg.IdleTimeout)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down server")
		return s.Stop()
	}
}

// Stop closes every connection and the listener
func (s *Server) Stop() error {
	s.mu.Lock()
	conns := make([]*Connection, 0, len(s.connections))
	for conn := range s.connections {
		conns = append(conns, conn)
	}
	srv := s.httpServer
	s.mu.Unlock()

	for _, conn := range conns {
		_ = conn.Close()
	}

	if srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// ConnectionCount returns the number of open connections
func (s *Server) ConnectionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.connections)
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	s.mu.Lock()
	n := s.sessions
	s.sessions++
	s.mu.Unlock()

	rng := randutil.New(randutil.Derive(s.cfg.Seed, n))
	session := NewSession(rng, s.cfg.DefaultBankroll, s.cfg.Logger, s.cfg.GameOptions...)
	client := NewConnection(ws, session, s.cfg.Clock, s.cfg.IdleTimeout, s.cfg.Logger)

	s.mu.Lock()
	s.connections[client] = true
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info("Client connected", "session", session.ID(), "total", total)

	client.Start()

	go func() {
		<-client.Done()
		s.mu.Lock()
		delete(s.connections, client)
		total := len(s.connections)
		s.mu.Unlock()

		s.logger.Info("Client disconnected", "session", session.ID(), "total", total)
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}
