package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/lu-zhengda/mailpane/internal/app"
	"github.com/lu-zhengda/mailpane/internal/config"
	"github.com/lu-zhengda/mailpane/internal/domain"
	"github.com/lu-zhengda/mailpane/internal/layout"
	"github.com/lu-zhengda/mailpane/internal/provider/httpapi"
	"github.com/lu-zhengda/mailpane/internal/store"
	"github.com/lu-zhengda/mailpane/internal/store/sqlite"
	"github.com/lu-zhengda/mailpane/internal/tui"
)

var (
	// version is set via ldflags at build time.
	version = "dev"
	cfgFile string

	// jsonFlag enables JSON output for all commands.
	jsonFlag bool

	baseURLFlag string
	prefsFlag   string
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "mailpane",
		Short:   "Three-pane terminal mail client",
		Long:    "A terminal mail client with folder/category navigation, a message list and a detail pane.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if shell, _ := cmd.Flags().GetString("generate-completion"); shell != "" {
				switch shell {
				case "bash":
					return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
				case "zsh":
					return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
				case "fish":
					return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
				default:
					return fmt.Errorf("unsupported shell: %s (use bash, zsh, or fish)", shell)
				}
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			prefs, err := openPrefs(cfg)
			if err != nil {
				return err
			}
			defer prefs.Close()

			src, err := newSource(cfg)
			if err != nil {
				return err
			}

			// Bubble Tea owns the terminal; keep log output off the screen.
			logFile, err := openLog()
			if err != nil {
				return err
			}
			defer logFile.Close()

			msgs := store.NewMessages()
			return tui.Run(cmd.Context(), tui.Options{
				Messages:          msgs,
				Loader:            app.NewLoader(msgs, src),
				Layout:            layout.New(prefs),
				Accounts:          accountsOrDefault(cfg),
				StartFolder:       cfg.StartFolder(),
				NavCollapsedWidth: cfg.UI.NavCollapsedWidth,
			})
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("mailpane %s\n", version))
	root.CompletionOptions.DisableDefaultCmd = true
	root.Flags().String("generate-completion", "", "Generate shell completion (bash, zsh, fish)")
	root.Flags().MarkHidden("generate-completion")
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	root.PersistentFlags().BoolVar(&jsonFlag, "json", false, "output in JSON format")
	root.PersistentFlags().StringVar(&baseURLFlag, "base-url", "", "mail API base URL (overrides api.base_url)")
	root.PersistentFlags().StringVar(&prefsFlag, "prefs", "", "layout preference store: sqlite or memory (overrides prefs.backend)")
	root.AddCommand(newListCmd())
	root.AddCommand(newCategoriesCmd())
	root.AddCommand(newAccountsCmd())
	root.AddCommand(newLayoutCmd())
	return root
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// loadConfig loads the config file and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		path = filepath.Join(config.ConfigDir(), "config.toml")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if baseURLFlag != "" {
		cfg.API.BaseURL = baseURLFlag
	}
	if prefsFlag != "" {
		cfg.Prefs.Backend = prefsFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// openPrefs opens the layout preference store selected by the config.
func openPrefs(cfg *config.Config) (store.KV, error) {
	if cfg.Prefs.Backend == config.PrefsMemory {
		return store.NewMemoryKV(), nil
	}

	dataDir := config.DataDir()
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	db, err := sqlite.New(filepath.Join(dataDir, "mailpane.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open preferences: %w", err)
	}
	return db, nil
}

// openLog redirects the standard logger to mailpane.log in the data directory.
func openLog() (*os.File, error) {
	dataDir := config.DataDir()
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	f, err := tea.LogToFile(filepath.Join(dataDir, "mailpane.log"), "mailpane")
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

func newSource(cfg *config.Config) (*httpapi.Client, error) {
	timeout, err := cfg.FetchTimeout()
	if err != nil {
		return nil, err
	}
	return httpapi.New(cfg.API.BaseURL, httpapi.WithHTTPClient(&http.Client{Timeout: timeout})), nil
}

// accountsOrDefault returns the configured accounts, or a single anonymous
// one so the navigation pane always has a header.
func accountsOrDefault(cfg *config.Config) []domain.Account {
	if accounts := cfg.AccountList(); len(accounts) > 0 {
		return accounts
	}
	return []domain.Account{{Label: "mailpane"}}
}
