package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Duration wraps time.Duration for clearer type usage in Config.
type Duration = time.Duration

// envValue returns the trimmed value of key. Blank values count as unset.
func envValue(key string) (string, bool) {
	val := strings.TrimSpace(os.Getenv(key))
	return val, val != ""
}

func envOrDefault(key, defaultValue string) string {
	if val, ok := envValue(key); ok {
		return val
	}
	return defaultValue
}

func durationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	raw, ok := envValue(key)
	if !ok {
		return defaultValue
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return defaultValue
	}
	return parsed
}

func intEnvOrDefault(key string, defaultValue int) int {
	raw, ok := envValue(key)
	if !ok {
		return defaultValue
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		return defaultValue
	}
	return val
}

var boolWords = map[string]bool{
	"1": true, "true": true, "yes": true, "on": true,
	"0": false, "false": false, "no": false, "off": false,
}

func boolEnvOrDefault(key string, defaultValue bool) bool {
	raw, ok := envValue(key)
	if !ok {
		return defaultValue
	}
	if val, known := boolWords[strings.ToLower(raw)]; known {
		return val
	}
	return defaultValue
}
