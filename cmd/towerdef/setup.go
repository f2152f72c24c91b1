package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-towerdefense/internal/config"
	"github.com/vovakirdan/tui-towerdefense/internal/selection"
)

// loadGameConfig loads the config and the --difficulty preset.
func loadGameConfig(difficulty string) (config.Config, selection.Difficulty, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, 0, err
	}
	d, err := selection.ParseDifficulty(difficulty)
	if err != nil {
		return config.Config{}, 0, err
	}
	return cfg, d, nil
}

// newFileLogger returns a logger writing to --log, or a discarding logger.
// The terminal belongs to the UI, so logs never go to stderr here.
func newFileLogger() (*log.Logger, io.Closer, error) {
	if flagLogPath == "" {
		return log.New(io.Discard), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "towerdef",
		Level:           log.DebugLevel,
	})
	return logger, f, nil
}

// terminalSize returns the size of stdout, or 80x24.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}
