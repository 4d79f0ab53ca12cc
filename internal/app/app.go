package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/stanza-tui/stanza/internal/api"
	"github.com/stanza-tui/stanza/internal/cache"
	"github.com/stanza-tui/stanza/internal/config"
	"github.com/stanza-tui/stanza/internal/logging"
	"github.com/stanza-tui/stanza/internal/prefs"
	"github.com/stanza-tui/stanza/internal/ui"
)

// Options configure the stanza application. Non-empty values override the
// corresponding config file fields.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/stanza/prefs.toml
	Server     string
	Token      string
	UserID     string
	Verbose    bool
}

// Run boots the stanza TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if s := strings.TrimSpace(opts.Server); s != "" {
		cfg.Server = s
	}
	if t := strings.TrimSpace(opts.Token); t != "" {
		cfg.Token = t
	}
	if u := strings.TrimSpace(opts.UserID); u != "" {
		cfg.UserID = u
	}

	logger, err := logging.New(cfg.LogFile, opts.Verbose)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	userPrefs, _ := prefs.Load(opts.PrefsPath)
	themeName := cfg.Theme
	if themeName == "" {
		themeName = userPrefs.Theme
	}

	client, err := api.NewClient(cfg.Server, cfg.Token)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	registry := cache.NewRegistry()

	uiOpts := ui.Options{
		Context:   ctx,
		Client:    client,
		Registry:  registry,
		Logger:    logger,
		UserID:    cfg.UserID,
		UserName:  cfg.UserName,
		Admin:     cfg.Admin,
		PageSize:  cfg.PageSize,
		ThemeName: themeName,
		PrefsPath: opts.PrefsPath,
		Genre:     userPrefs.Genre,
		StartView: userPrefs.View,
	}
	return ui.Run(uiOpts)
}
