package config

// StaticConfig points at an optional on-disk replacement for the bundled dataset.
type StaticConfig struct {
	Path string
}

func loadStatic() StaticConfig {
	return StaticConfig{Path: envOrDefault(envStaticDataPath, "")}
}
