package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lu-zhengda/mailpane/internal/domain"
)

// Preference store backends.
const (
	PrefsSQLite = "sqlite"
	PrefsMemory = "memory"
)

// Config holds all mailpane configuration.
type Config struct {
	API      APIConfig       `toml:"api"`
	UI       UIConfig        `toml:"ui"`
	Prefs    PrefsConfig     `toml:"prefs"`
	Accounts []AccountConfig `toml:"accounts"`
}

// APIConfig points at the mail API.
type APIConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout string `toml:"timeout"`
}

// UIConfig holds TUI display settings.
type UIConfig struct {
	DefaultFolder     string `toml:"default_folder"`
	NavCollapsedWidth int    `toml:"nav_collapsed_width"`
}

// PrefsConfig selects where the pane layout is remembered.
type PrefsConfig struct {
	Backend string `toml:"backend"`
}

// AccountConfig is one entry of the account switcher.
type AccountConfig struct {
	Label string `toml:"label"`
	Email string `toml:"email"`
}

func defaults() Config {
	return Config{
		API: APIConfig{
			BaseURL: "http://localhost:3000",
			Timeout: "10s",
		},
		UI: UIConfig{
			DefaultFolder:     string(domain.FolderInbox),
			NavCollapsedWidth: 4,
		},
		Prefs: PrefsConfig{
			Backend: PrefsSQLite,
		},
	}
}

// Load reads config from path. If path is empty, returns defaults.
// MAILPANE_API_URL, when set, overrides api.base_url.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err == nil {
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}
	if url := os.Getenv("MAILPANE_API_URL"); url != "" {
		cfg.API.BaseURL = url
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cannot be defaulted silently.
func (c *Config) Validate() error {
	if _, err := c.FetchTimeout(); err != nil {
		return err
	}
	if _, ok := domain.ParseFolder(c.UI.DefaultFolder); !ok {
		return fmt.Errorf("invalid ui.default_folder %q", c.UI.DefaultFolder)
	}
	switch c.Prefs.Backend {
	case PrefsSQLite, PrefsMemory:
	default:
		return fmt.Errorf("invalid prefs.backend %q (use %s or %s)", c.Prefs.Backend, PrefsSQLite, PrefsMemory)
	}
	if c.UI.NavCollapsedWidth < 0 {
		return fmt.Errorf("invalid ui.nav_collapsed_width %d", c.UI.NavCollapsedWidth)
	}
	return nil
}

// FetchTimeout parses api.timeout. An empty value means no timeout.
func (c *Config) FetchTimeout() (time.Duration, error) {
	if c.API.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid api.timeout %q: %w", c.API.Timeout, err)
	}
	return d, nil
}

// StartFolder returns the folder the navigation opens on.
func (c *Config) StartFolder() domain.Folder {
	f, _ := domain.ParseFolder(c.UI.DefaultFolder)
	return f
}

// AccountList converts the configured accounts to domain values.
func (c *Config) AccountList() []domain.Account {
	out := make([]domain.Account, 0, len(c.Accounts))
	for _, a := range c.Accounts {
		out = append(out, domain.Account{Label: a.Label, Email: a.Email})
	}
	return out
}

// ConfigDir returns the mailpane config directory path.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mailpane")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "mailpane")
}

// DataDir returns the mailpane data directory path.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "mailpane")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "mailpane")
}
