package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/taskboard/internal/config"
	"github.com/sandeepkv93/taskboard/internal/logging"
	"github.com/sandeepkv93/taskboard/internal/storage"
	"github.com/sandeepkv93/taskboard/internal/store"
)

// app is everything a command needs to reach the task store.
type app struct {
	cfg     config.Config
	logger  zerolog.Logger
	backend storage.Backend
	store   *store.Store
	closers []io.Closer
}

type appOptions struct {
	// logToFile sends logs to the data directory when no log file is
	// configured, for commands that own the terminal.
	logToFile bool
	storeOpts []store.Option
}

func (o *rootOptions) configFile() string {
	if strings.TrimSpace(o.configPath) != "" {
		return o.configPath
	}
	return config.DefaultPath()
}

func openApp(ctx context.Context, cmd *cobra.Command, opts *rootOptions, ao appOptions) (*app, error) {
	cfg, err := config.Load(opts.configFile())
	if err != nil {
		return nil, err
	}
	if opts.verbose {
		cfg.Log.Level = zerolog.DebugLevel.String()
	}
	if ao.logToFile && cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(config.DataDir(), "taskboard.log")
	}

	logger, logCloser, err := logging.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, logger: logger, closers: []io.Closer{logCloser}}

	backend, err := storage.Open(storage.Kind(cfg.Storage.Backend), cfg.Storage.Path)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage.Backend, err)
	}
	a.backend = backend

	storeOpts := append([]store.Option{
		store.WithKey(cfg.Storage.Key),
		store.WithLogger(logger),
	}, ao.storeOpts...)
	s, err := store.Open(ctx, backend, storeOpts...)
	if err != nil {
		_ = backend.Close()
		a.Close()
		return nil, err
	}
	a.store = s
	a.closers = append([]io.Closer{s}, a.closers...)

	logger.Debug().
		Str("backend", cfg.Storage.Backend).
		Str("path", cfg.Storage.Path).
		Str("key", cfg.Storage.Key).
		Msg("store opened")
	return a, nil
}

// Close releases the store (and with it the backend) before the log file.
func (a *app) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
