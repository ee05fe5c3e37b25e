package update

import (
	"time"

	"github.com/sandeepkv93/taskboard/internal/config"
)

type RuntimeConfig struct {
	RecentLimit  int
	PreviewLimit int
	ToastTTL     time.Duration
	Now          func() time.Time
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		RecentLimit:  3,
		PreviewLimit: 2,
		ToastTTL:     4 * time.Second,
		Now:          time.Now,
	}
}

// RuntimeConfigFromUI applies the ui section of the app config on top of
// base. Non-positive limits keep the base value.
func RuntimeConfigFromUI(base RuntimeConfig, ui config.UIConfig) RuntimeConfig {
	cfg := base
	if ui.RecentLimit > 0 {
		cfg.RecentLimit = ui.RecentLimit
	}
	if ui.PreviewLimit > 0 {
		cfg.PreviewLimit = ui.PreviewLimit
	}
	return cfg
}
