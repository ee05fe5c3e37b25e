package cli

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/taskboard/internal/store"
	"github.com/sandeepkv93/taskboard/internal/update"
	"github.com/sandeepkv93/taskboard/internal/watch"
)

const watchInterval = time.Second

func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// The watcher needs the backend, which only exists once the app is open,
	// so the change hook looks it up lazily.
	var w *watch.Watcher
	a, err := openApp(ctx, cmd, opts, appOptions{
		logToFile: true,
		storeOpts: []store.Option{store.WithOnChange(func() {
			if w != nil {
				w.Touch(ctx)
			}
		})},
	})
	if err != nil {
		return err
	}
	defer a.Close()

	w, err = watch.New(a.backend, a.cfg.Storage.Key, watchInterval, 8)
	if err != nil {
		return err
	}
	w.Start(ctx)
	defer w.Stop()

	cfg := update.RuntimeConfigFromUI(update.DefaultRuntimeConfig(), a.cfg.UI)
	model := update.NewModelWithConfig(ctx, a.store, w, cfg)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		a.logger.Error().Err(err).Msg("tui failed")
		return err
	}
	return nil
}
