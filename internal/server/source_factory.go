package server

import (
	"log/slog"
	"strings"

	"github.com/preston-bernstein/qb-rankings-service/internal/config"
	"github.com/preston-bernstein/qb-rankings-service/internal/logging"
	"github.com/preston-bernstein/qb-rankings-service/internal/metrics"
	"github.com/preston-bernstein/qb-rankings-service/internal/providers"
	"github.com/preston-bernstein/qb-rankings-service/internal/providers/fixture"
	"github.com/preston-bernstein/qb-rankings-service/internal/providers/gsheets"
)

// sourceFactory assembles the tab source with the shared retry wrapper.
type sourceFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// builtSource is a wrapped tab source plus whether it can yield data at all.
type builtSource struct {
	source     providers.TabSource
	name       string
	configured bool
}

func newSourceFactory(logger *slog.Logger, recorder *metrics.Recorder) sourceFactory {
	return sourceFactory{logger: logger, metrics: recorder}
}

func (f sourceFactory) build(cfg config.Config) builtSource {
	name, base, configured := selectSource(cfg, f.logger)
	return f.wrap(cfg, name, base, configured)
}

func (f sourceFactory) wrap(cfg config.Config, name string, base providers.TabSource, configured bool) builtSource {
	return builtSource{
		source:     providers.NewRetryingSource(base, f.logger, f.metrics, name, cfg.Sheets.FetchRetries, 0),
		name:       name,
		configured: configured,
	}
}

func selectSource(cfg config.Config, logger *slog.Logger) (string, providers.TabSource, bool) {
	tabs := tabsFromConfig(cfg.Sheets.Tabs)
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case config.ProviderSheets, "":
		client := gsheets.NewClient(gsheets.Config{
			SheetID: cfg.Sheets.SheetID,
			BaseURL: cfg.Sheets.BaseURL,
			Timeout: cfg.Sheets.FetchTimeout,
		})
		return config.ProviderSheets, client, client.Configured()
	case config.ProviderFixture:
		return config.ProviderFixture, fixture.New(tabs), true
	default:
		logging.Warn(logger, "unknown provider, falling back to fixture", slog.String(logging.FieldSource, cfg.Provider))
		return config.ProviderFixture, fixture.New(tabs), true
	}
}

func tabsFromConfig(t config.Tabs) providers.Tabs {
	tabs := providers.Tabs{
		Rankings: t.Rankings,
		Dropped:  t.Dropped,
		Worst:    t.Worst,
		Log:      t.Log,
	}
	defaults := providers.DefaultTabs()
	if tabs.Rankings == "" {
		tabs.Rankings = defaults.Rankings
	}
	if tabs.Dropped == "" {
		tabs.Dropped = defaults.Dropped
	}
	if tabs.Worst == "" {
		tabs.Worst = defaults.Worst
	}
	if tabs.Log == "" {
		tabs.Log = defaults.Log
	}
	return tabs
}
