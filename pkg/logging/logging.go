// Package logging builds the zap logger shared by the store, the service and
// the terminal UI.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects level, encoding and destination.
type Options struct {
	// Level is a zap level name; empty means "warn".
	Level string
	// Format is "json" or "console".
	Format string
	// File receives the log; empty means stderr.
	File string
	// Discard drops everything, used while the TUI owns the terminal and no
	// file was configured.
	Discard bool
}

// New builds a sugared logger for opts.
func New(opts Options) (*zap.SugaredLogger, error) {
	if opts.Discard && opts.File == "" {
		return zap.NewNop().Sugar(), nil
	}

	var cfg zap.Config
	if strings.EqualFold(opts.Format, "json") {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.DisableStacktrace = true
	}

	levelName := opts.Level
	if levelName == "" {
		levelName = "warn"
	}
	level, err := zapcore.ParseLevel(levelName)
	if err != nil {
		return nil, fmt.Errorf("logging: invalid level: %w", err)
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	if opts.File != "" {
		cfg.OutputPaths = []string{opts.File}
		cfg.ErrorOutputPaths = []string{opts.File}
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	} else {
		cfg.OutputPaths = []string{"stderr"}
		cfg.ErrorOutputPaths = []string{"stderr"}
	}

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build logger: %w", err)
	}
	return l.Sugar(), nil
}
