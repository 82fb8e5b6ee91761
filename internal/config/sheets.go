package config

import "strings"

// SheetsConfig controls how the published Google Sheet is reached.
type SheetsConfig struct {
	SheetID      string
	BaseURL      string
	Tabs         Tabs
	CacheTTL     Duration
	FetchTimeout Duration
	FetchRetries int
}

// Tabs names the four sheet tabs.
type Tabs struct {
	Rankings string
	Dropped  string
	Worst    string
	Log      string
}

// Configured reports whether a real sheet id has been supplied.
func (c SheetsConfig) Configured() bool {
	id := strings.TrimSpace(c.SheetID)
	return id != "" && id != UnconfiguredSheetID
}

func loadSheets() SheetsConfig {
	return SheetsConfig{
		SheetID: envOrDefault(envSheetID, UnconfiguredSheetID),
		BaseURL: envOrDefault(envSheetsBaseURL, defaultSheetsBaseURL),
		Tabs: Tabs{
			Rankings: envOrDefault(envTabRankings, defaultTabRankings),
			Dropped:  envOrDefault(envTabDropped, defaultTabDropped),
			Worst:    envOrDefault(envTabWorst, defaultTabWorst),
			Log:      envOrDefault(envTabLog, defaultTabLog),
		},
		CacheTTL:     durationEnvOrDefault(envCacheTTL, defaultCacheTTL),
		FetchTimeout: durationEnvOrDefault(envFetchTimeout, defaultFetchTimeout),
		FetchRetries: intEnvOrDefault(envFetchRetries, defaultFetchRetries),
	}
}
