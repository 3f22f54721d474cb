package commands

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"tableflip.dev/timelined/pkg/app"
	"tableflip.dev/timelined/pkg/logging"
	"tableflip.dev/timelined/pkg/store"
)

type env struct {
	Config  *store.FileConfig
	Log     *zap.SugaredLogger
	Service *app.Service

	persistence store.Persistence
}

// Close releases the storage backend and flushes the logger.
func (e *env) Close() {
	if err := store.Close(e.persistence); err != nil {
		e.Log.Warnw("closing storage", "error", err)
	}
	_ = e.Log.Sync()
}

// openEnv loads configuration, builds the logger and opens the configured
// storage. When tui is set, logs go nowhere unless a log file is configured so
// they do not draw over the screen.
func openEnv(ctx context.Context, tui bool) (*env, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	if logOpts.Level != "" {
		cfg.LogLevel = logOpts.Level
	}
	if logOpts.File != "" {
		cfg.LogFile = logOpts.File
	}

	log, err := logging.New(logging.Options{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		File:    cfg.LogFile,
		Discard: tui,
	})
	if err != nil {
		return nil, err
	}

	p, err := store.Open(cfg)
	if err != nil {
		return nil, err
	}
	log.Debugw("storage opened", "backend", cfg.Backend(), "path", cfg.BasePath())

	return &env{
		Config:      cfg,
		Log:         log,
		Service:     app.Open(ctx, p, app.WithLogger(log)),
		persistence: p,
	}, nil
}

// interactive reports whether both stdin and stdout are terminals.
func interactive() bool {
	in := os.Stdin.Fd()
	out := os.Stdout.Fd()
	return (isatty.IsTerminal(in) || isatty.IsCygwinTerminal(in)) &&
		(isatty.IsTerminal(out) || isatty.IsCygwinTerminal(out))
}
