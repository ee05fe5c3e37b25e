package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"

	FormatJSON    = "json"
	FormatConsole = "console"
)

var ErrExists = errors.New("config: file already exists")

type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Web     WebConfig     `yaml:"web"`
	UI      UIConfig      `yaml:"ui"`
}

type StorageConfig struct {
	Backend string `yaml:"backend" env:"TASKBOARD_STORAGE_BACKEND" env-description:"sqlite, file or memory"`
	Path    string `yaml:"path" env:"TASKBOARD_STORAGE_PATH" env-description:"database file (sqlite) or slot directory (file)"`
	Key     string `yaml:"key" env:"TASKBOARD_STORAGE_KEY" env-description:"slot holding the task collection"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"TASKBOARD_LOG_LEVEL" env-description:"trace, debug, info, warn or error"`
	Format string `yaml:"format" env:"TASKBOARD_LOG_FORMAT" env-description:"json or console"`
	File   string `yaml:"file" env:"TASKBOARD_LOG_FILE" env-description:"log file; stderr when empty"`
}

type WebConfig struct {
	Addr string `yaml:"addr" env:"TASKBOARD_WEB_ADDR" env-description:"listen address for the JSON API"`
}

type UIConfig struct {
	RecentLimit  int `yaml:"recent_limit" env:"TASKBOARD_UI_RECENT_LIMIT" env-description:"recent tasks on the dashboard"`
	PreviewLimit int `yaml:"preview_limit" env:"TASKBOARD_UI_PREVIEW_LIMIT" env-description:"titles per category in the category menu"`
}

func Default() Config {
	return Config{
		Storage: StorageConfig{
			Backend: BackendSQLite,
			Key:     "savedTasks",
		},
		Log: LogConfig{
			Level:  "info",
			Format: FormatConsole,
		},
		Web: WebConfig{Addr: "127.0.0.1:8787"},
		UI: UIConfig{
			RecentLimit:  3,
			PreviewLimit: 2,
		},
	}
}

// DataDir is where taskboard keeps its database, slots and logs.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taskboard"
	}
	return filepath.Join(home, ".taskboard")
}

// DefaultPath returns the config file location used when --config is not
// given.
func DefaultPath() string {
	return filepath.Join(DataDir(), "config.yaml")
}

// Load reads path when it exists and then applies TASKBOARD_* environment
// overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	path = expandHome(strings.TrimSpace(path))

	var err error
	if path != "" && fileExists(path) {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	def := Default()
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if c.Storage.Backend == "" {
		c.Storage.Backend = def.Storage.Backend
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		c.Storage.Key = def.Storage.Key
	}
	c.Storage.Path = expandHome(strings.TrimSpace(c.Storage.Path))
	if c.Storage.Path == "" {
		c.Storage.Path = defaultStoragePath(c.Storage.Backend)
	}
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	c.Log.File = expandHome(strings.TrimSpace(c.Log.File))
	if c.UI.RecentLimit <= 0 {
		c.UI.RecentLimit = def.UI.RecentLimit
	}
	if c.UI.PreviewLimit <= 0 {
		c.UI.PreviewLimit = def.UI.PreviewLimit
	}
	if strings.TrimSpace(c.Web.Addr) == "" {
		c.Web.Addr = def.Web.Addr
	}
}

func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite, BackendFile, BackendMemory:
	default:
		return fmt.Errorf("config: unknown storage backend %q", c.Storage.Backend)
	}
	switch c.Log.Format {
	case "", FormatJSON, FormatConsole:
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}
	return nil
}

func defaultStoragePath(backend string) string {
	switch backend {
	case BackendSQLite:
		return filepath.Join(DataDir(), "taskboard.db")
	case BackendFile:
		return filepath.Join(DataDir(), "slots")
	default:
		return ""
	}
}

// Usage describes every environment override.
func Usage() string {
	var cfg Config
	text, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return err.Error()
	}
	return text
}

const header = `# taskboard configuration
# Every key can be overridden with a TASKBOARD_* environment variable.
# Run "taskboard config env" to list them.
`

// WriteDefault writes the default configuration to path. An existing file is
// left alone unless overwrite is set.
func WriteDefault(path string, overwrite bool) error {
	path = expandHome(strings.TrimSpace(path))
	if path == "" {
		return errors.New("config: empty path")
	}
	if !overwrite && fileExists(path) {
		return fmt.Errorf("%w: %s", ErrExists, path)
	}
	body, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append([]byte(header), body...), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
