// Package session defines the per-player context shared by every screen.
//
// One Context is created when a player session starts (a local run of the
// binary or one SSH connection) and passed to each screen constructor. It
// replaces process-wide singletons: two SSH players never share a selection.
package session

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-towerdefense/internal/config"
	"github.com/vovakirdan/tui-towerdefense/internal/event"
	"github.com/vovakirdan/tui-towerdefense/internal/selection"
)

// Context carries the session-scoped state and services.
type Context struct {
	Config    config.Config
	Selection *selection.State
	Bus       *event.Bus
	Log       *log.Logger
	User      string
}

// Option customises a new Context.
type Option func(*Context)

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Context) {
		if l != nil {
			c.Log = l
		}
	}
}

// WithUser records the player name, used in logs and run history.
func WithUser(user string) Option {
	return func(c *Context) {
		c.User = user
	}
}

// WithDifficulty preselects a difficulty.
func WithDifficulty(d selection.Difficulty) Option {
	return func(c *Context) {
		c.Selection.SetDifficulty(d)
	}
}

// New creates a session with default selection and a fresh event bus.
// Without WithLogger, log output is discarded.
func New(cfg config.Config, opts ...Option) *Context {
	c := &Context{
		Config:    cfg,
		Selection: selection.New(),
		Bus:       event.NewBus(),
		Log:       log.New(io.Discard),
		User:      "local",
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Log = c.Log.With("user", c.User)
	return c
}
