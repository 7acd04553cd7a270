package cmd

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/petpost/petpost/internal/app"
	"github.com/petpost/petpost/internal/auth"
	"github.com/petpost/petpost/internal/clipboard"
	"github.com/petpost/petpost/internal/config"
	"github.com/petpost/petpost/internal/logger"
	"github.com/petpost/petpost/internal/media"
	"github.com/petpost/petpost/internal/publish"
	"github.com/petpost/petpost/internal/storage"
	"github.com/petpost/petpost/internal/ui"
)

var (
	debugMode             bool
	quietMode             bool
	apiURL                string
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "petpost",
	Short: "Post lost and found pets from the terminal",
	Long: `Petpost is a terminal client for a lost-and-found pet board.
Sign in, describe the animal, attach up to four photos and publish.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend base URL (overrides config and "+config.APIURLEnv+")")
}

func initConfig() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("petpost %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("petpost %s\n", version)
}

// loadConfig loads the config file and applies --api-url.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	if err := cfg.OverrideAPIURL(apiURL); err != nil {
		return nil, fmt.Errorf("invalid --api-url: %w", err)
	}
	return cfg, nil
}

// services bundles what every command talks to.
type services struct {
	cfg      *config.Config
	store    storage.Store
	provider *auth.Provider
}

// newServices wires the session store and provider against cfg's backend.
func newServices(cfg *config.Config) (*services, error) {
	path, err := storage.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("error locating session storage: %w", err)
	}
	store := storage.NewFile(path)
	return &services{
		cfg:      cfg,
		store:    store,
		provider: auth.NewProvider(store, auth.NewHTTPAuthenticator(cfg.GetAPIURL())),
	}, nil
}

// pipeline returns a submission pipeline for the configured backend.
func (s *services) pipeline() *publish.Pipeline {
	return publish.NewPipeline(s.cfg.GetAPIURL(), s.store, media.NewURILoader(), s.cfg.GetServerDefaults())
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	svc, err := newServices(cfg)
	if err != nil {
		return err
	}

	defer logger.Close()

	ui.SetThemeByName(cfg.GetTheme())

	deps := app.Deps{
		Config:    cfg,
		Session:   svc.provider,
		Submitter: svc.pipeline(),
		Version:   version,
	}
	if err := clipboard.Init(); err == nil {
		if dir, err := config.CacheDir(); err == nil {
			deps.Paste = app.DefaultPaste
			deps.PasteDir = dir
		}
	}

	m := app.New(deps)
	defer m.Close()
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
