package config

import "time"

const (
	envPort           = "PORT"
	envPollInterval   = "POLL_INTERVAL"
	envProvider       = "PROVIDER"
	envSheetID        = "SHEET_ID"
	envSheetsBaseURL  = "SHEETS_BASE_URL"
	envTabRankings    = "SHEET_TAB_RANKINGS"
	envTabDropped     = "SHEET_TAB_DROPPED"
	envTabWorst       = "SHEET_TAB_WORST"
	envTabLog         = "SHEET_TAB_LOG"
	envCacheTTL       = "CACHE_TTL"
	envFetchTimeout   = "FETCH_TIMEOUT"
	envFetchRetries   = "FETCH_RETRIES"
	envStaticDataPath = "STATIC_DATA_PATH"
	envAdminToken     = "ADMIN_TOKEN"
	envMetricsPort    = "METRICS_PORT"
	envMetricsOn      = "METRICS_ENABLED"
	envOtelEndpoint   = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService    = "OTEL_SERVICE_NAME"
	envOtelInsecure   = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort = "4000"
	// The presentation layer refreshes every two minutes.
	defaultPollInterval = 2 * Duration(time.Minute)
	defaultProvider     = ProviderSheets
	defaultMetricsPort  = "9090"
	defaultServiceName  = "qb-rankings-service"

	// UnconfiguredSheetID is the placeholder shipped in example env files.
	UnconfiguredSheetID = "YOUR_SHEET_ID_HERE"

	defaultSheetsBaseURL = "https://docs.google.com/spreadsheets/d"
	defaultTabRankings   = "Rankings"
	defaultTabDropped    = "Dropped Out"
	defaultTabWorst      = "Worst QB"
	defaultTabLog        = "Log"
	defaultCacheTTL      = 60 * Duration(time.Second)
	defaultFetchTimeout  = 10 * Duration(time.Second)
	defaultFetchRetries  = 3
)

// Provider names accepted in PROVIDER.
const (
	ProviderSheets  = "sheets"
	ProviderFixture = "fixture"
)
