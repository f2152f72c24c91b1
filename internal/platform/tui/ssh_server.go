package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-towerdefense/internal/app"
	"github.com/vovakirdan/tui-towerdefense/internal/config"
	"github.com/vovakirdan/tui-towerdefense/internal/selection"
	"github.com/vovakirdan/tui-towerdefense/internal/session"
	"github.com/vovakirdan/tui-towerdefense/internal/storage"
)

const shutdownGrace = 10 * time.Second

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key is generated at ~/.towerdef/host_key.
	HostKeyPath string

	// DBPath is the run history database shared by all players.
	DBPath string

	IdleTimeout time.Duration
	FPS         int

	// Game is the level and tower catalog every session plays with.
	Game config.Config

	// Difficulty is preselected for new sessions.
	Difficulty selection.Difficulty

	// Logger receives server and per-session logs. Defaults to stderr.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23235",
		DBPath:      "~/.towerdef/runs.db",
		IdleTimeout: 30 * time.Minute,
		FPS:         DefaultFPS,
		Game:        config.Default(),
		Difficulty:  selection.Normal,
	}
}

// SSHServer serves the game over SSH. Every connection gets its own
// session.Context, so selection, event bus and running level stay private
// to that player. Only the run store is shared.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
	active atomic.Int64
}

// NewSSHServer creates a new SSH server with the given configuration.
// A run database that cannot be opened disables history instead of failing.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "towerdef-ssh",
		})
	}

	srv := &SSHServer{config: cfg, logger: logger}

	keyPath, err := resolveHostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.trackSessions,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	srv.server = server

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("run history disabled", "db", cfg.DBPath, "error", err)
	} else {
		srv.store = store
	}
	return srv, nil
}

// resolveHostKeyPath returns the key path to use and makes sure its
// directory exists.
func resolveHostKeyPath(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot get home directory: %w", err)
		}
		path = filepath.Join(home, ".towerdef", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("cannot create host key directory: %w", err)
	}
	return path, nil
}

// newSession builds the app for one connection.
func (s *SSHServer) newSession(user string) (*app.App, Options) {
	ctx := session.New(s.config.Game,
		session.WithLogger(s.logger),
		session.WithUser(user),
		session.WithDifficulty(s.config.Difficulty),
	)

	opts := Options{FPS: s.config.FPS}
	// A nil *storage.Store must not end up inside the interfaces.
	var recorder app.RunRecorder
	if s.store != nil {
		recorder = s.store
		opts.History = s.store
	}
	return app.New(ctx, recorder), opts
}

func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		wish.Fatalln(sess, "towerdef needs an interactive terminal: connect with ssh -t")
		return nil, nil
	}

	a, opts := s.newSession(sess.User())
	opts.Width = pty.Window.Width
	opts.Height = pty.Window.Height

	return NewAppModel(a, opts), []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// trackSessions logs connects and disconnects with the live player count.
func (s *SSHServer) trackSessions(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		started := time.Now()
		s.logger.Info("player connected",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"players", s.active.Add(1),
		)
		defer func() {
			s.logger.Info("player disconnected",
				"user", sess.User(),
				"played", time.Since(started).Round(time.Second),
				"players", s.active.Add(-1),
			)
		}()
		next(sess)
	}
}

// Players returns the number of connected sessions.
func (s *SSHServer) Players() int64 {
	return s.active.Load()
}

// ListenAndServe starts the SSH server and blocks until SIGINT or SIGTERM.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case <-done:
		s.logger.Info("shutting down", "players", s.Players())
	case err := <-errc:
		s.logger.Error("server error", "error", err)
		_ = s.Shutdown()
		return err
	}
	return s.Shutdown()
}

// Shutdown stops accepting players, waits for open sessions up to a grace
// period and then closes the run store.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	err := s.server.Shutdown(ctx)
	if s.store != nil {
		err = errors.Join(err, s.store.Close())
		s.store = nil
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
