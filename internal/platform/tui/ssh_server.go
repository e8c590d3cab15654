package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/rocks-arcade/internal/core"
	"github.com/vovakirdan/rocks-arcade/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the host key file. Empty means ~/.arcade/host_key,
	// generated on first start.
	HostKeyPath string

	// DBPath is the scores database: a SQLite file path or a postgres:// DSN.
	DBPath string

	IdleTimeout time.Duration

	// TickRate is the simulation rate for every session.
	TickRate int

	// MaxSessions caps concurrent players. Zero means no limit.
	MaxSessions int

	// Logger receives server and session logs. Defaults to stderr.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.arcade/rocks.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
	}
}

type sessionIDKey struct{}

// sessionGate counts players and turns away the ones over the limit.
type sessionGate struct {
	mu     sync.Mutex
	active int
	limit  int
}

func (g *sessionGate) enter() (int, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.limit > 0 && g.active >= g.limit {
		return g.active, false
	}
	g.active++
	return g.active, true
}

func (g *sessionGate) leave() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.active > 0 {
		g.active--
	}
	return g.active
}

// SSHServer hosts independent single-player sessions over SSH. Every
// connection gets its own menu, level picker and game, keyed on the SSH user.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
	gate   *sessionGate
}

// NewSSHServer opens the scores database and prepares the listener. A
// database that cannot be opened only costs the sessions their scores and
// progress.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "rocks-ssh"})
	}

	hostKey, err := hostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	srv := &SSHServer{
		config: cfg,
		logger: logger,
		gate:   &sessionGate{limit: cfg.MaxSessions},
	}
	if store, err := storage.Open(cfg.DBPath); err != nil {
		logger.Warn("playing without scores", "db", cfg.DBPath, "error", err)
	} else {
		srv.store = store
		logger.Debug("scores database open", "driver", store.Driver())
	}

	srv.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKey),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.admit,
		),
	)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	return srv, nil
}

func hostKeyPath(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot get home directory: %w", err)
		}
		path = filepath.Join(home, ".arcade", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("cannot create host key directory: %w", err)
	}
	return path, nil
}

// admit runs before the program starts: it enforces MaxSessions, tags the
// connection with a session ID and logs how long the player stayed.
func (s *SSHServer) admit(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		logger := s.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())

		active, ok := s.gate.enter()
		if !ok {
			logger.Warn("session refused, server full", "active", active)
			wish.Fatalln(sess, "Server is full, try again later.")
			return
		}
		id := uuid.NewString()[:8]
		sess.Context().SetValue(sessionIDKey{}, id)
		logger.Info("session started", "session", id, "active", active)

		start := time.Now()
		next(sess)

		logger.Info("session ended",
			"session", id,
			"duration", time.Since(start).Round(time.Second),
			"active", s.gate.leave(),
		)
	}
}

// teaHandler builds the session model. The SSH user name is the progress
// and scoreboard profile.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	id, _ := sess.Context().Value(sessionIDKey{}).(string)
	logger := s.logger.With("user", sess.User(), "session", id)

	pty, _, ok := sess.Pty()
	if !ok {
		logger.Warn("no PTY requested")
		wish.Fatalln(sess, "A terminal is required: connect with ssh -t.")
		return nil, nil
	}
	logger.Debug("terminal", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}
	return NewSessionModel(s.store, cfg, sess.User(), logger), []tea.ProgramOption{tea.WithAltScreen()}
}

// ListenAndServe serves until SIGINT or SIGTERM, then shuts down.
func (s *SSHServer) ListenAndServe() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "address", s.config.Address, "max_sessions", s.config.MaxSessions)
		errc <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		s.closeStore()
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	s.logger.Info("shutting down")
	return s.Shutdown()
}

// Shutdown stops accepting players and waits up to ten seconds for open
// sessions to finish.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeStore()
	return err
}

func (s *SSHServer) closeStore() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn("closing scores database", "error", err)
	}
	s.store = nil
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
