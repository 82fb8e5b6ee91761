package gsheets

import "time"

const (
	defaultBaseURL     = "https://docs.google.com/spreadsheets/d"
	defaultHTTPTimeout = 10 * time.Second
	unconfiguredID     = "YOUR_SHEET_ID_HERE"
	sourceName         = "sheets"
	// Sheet exports are small; anything larger is not a rankings sheet.
	maxBodyBytes  = 4 << 20
	maxErrorBytes = 512
)
