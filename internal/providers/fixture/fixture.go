package fixture

import (
	"context"
	"embed"
	"fmt"

	"github.com/preston-bernstein/qb-rankings-service/internal/providers"
)

//go:embed data/*.csv
var files embed.FS

// Source serves a small bundled sheet, useful for local runs without a published sheet.
type Source struct {
	tabs map[string]string
}

// New maps the configured tab names onto the bundled CSV files.
func New(tabs providers.Tabs) *Source {
	return &Source{
		tabs: map[string]string{
			tabs.Rankings: "data/rankings.csv",
			tabs.Dropped:  "data/dropped.csv",
			tabs.Worst:    "data/worst.csv",
			tabs.Log:      "data/log.csv",
		},
	}
}

// FetchTab returns the bundled CSV for tab.
func (s *Source) FetchTab(ctx context.Context, tab string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name, ok := s.tabs[tab]
	if !ok {
		return "", &providers.StatusError{Source: "fixture", Tab: tab, StatusCode: 404, Body: "unknown tab"}
	}
	data, err := files.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("fixture: tab %q: %w", tab, err)
	}
	return string(data), nil
}
