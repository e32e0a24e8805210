package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/five82/apolice/internal/config"
	"github.com/five82/apolice/internal/logging"
	"github.com/five82/apolice/internal/metrics"
	"github.com/five82/apolice/internal/prefs"
	"github.com/five82/apolice/internal/search"
	"github.com/five82/apolice/internal/state"
	"github.com/five82/apolice/internal/ui"
)

// Options configure the application. Zero values keep the config file's
// settings.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/apolice/prefs.toml
	BaseURL    string // overrides base_url
	Refresh    time.Duration
	// RefreshSet reports whether Refresh overrides refresh_interval; it
	// allows disabling the refresh with 0.
	RefreshSet bool
}

// Run boots the TUI until the user exits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyOverrides(&cfg, opts)

	logger, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, _ := prefs.Load(prefsPath)

	client, err := search.NewClient(cfg.BaseURL, cfg.Timeout, search.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("init search client: %w", err)
	}

	metrics.Register()
	if cfg.MetricsAddr != "" {
		addr, err := StartMetricsServer(ctx, cfg.MetricsAddr, logger)
		if err != nil {
			return fmt.Errorf("start metrics server: %w", err)
		}
		logger.Info("metrics server listening", zap.String("addr", addr))
	}

	logger.Info("starting",
		zap.String("base_url", client.BaseURL()),
		zap.Duration("timeout", cfg.Timeout),
		zap.Bool("require_criteria", cfg.RequireCriteria),
		zap.Duration("refresh_interval", cfg.RefreshInterval),
	)

	uiOpts := ui.Options{
		Context:         ctx,
		Client:          client,
		Store:           &state.Store{},
		Logger:          logger,
		BaseURL:         client.BaseURL(),
		ThemeName:       userPrefs.Theme,
		PrefsPath:       prefsPath,
		LogPath:         cfg.LogFile,
		RequireCriteria: cfg.RequireCriteria,
		RefreshInterval: cfg.RefreshInterval,
		InitialCriteria: userPrefs.LastCriteria,
	}
	err = ui.Run(uiOpts)
	logger.Info("exiting", zap.Error(err))
	return err
}

func applyOverrides(cfg *config.Config, opts Options) {
	if v := strings.TrimSpace(opts.BaseURL); v != "" {
		cfg.BaseURL = v
	}
	if opts.RefreshSet {
		cfg.RefreshInterval = opts.Refresh
		if cfg.RefreshInterval < 0 {
			cfg.RefreshInterval = 0
		}
	}
}
