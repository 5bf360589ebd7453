package config

import (
	"os"
	"path/filepath"
	"strconv"

	"goeda/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Paths    PathConfig
	Analysis AnalysisConfig
	Server   ServerConfig
	History  HistoryConfig
}

// PathConfig holds file system paths
type PathConfig struct {
	ReportsDir string
	RawDataDir string
}

// AnalysisConfig holds the tunable knobs of the analysis pipeline
type AnalysisConfig struct {
	SampleSize        int
	MissingThreshold  float64
	MaxBarCardinality int
	HistogramBins     int
	TopValues         int
}

// ServerConfig holds dashboard server settings
type ServerConfig struct {
	Port string
}

// HistoryConfig holds run-history ledger settings
type HistoryConfig struct {
	Path    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Paths: PathConfig{
			ReportsDir: getEnvOrDefault("REPORTS_DIR", "reports"),
			RawDataDir: getEnvOrDefault("RAW_DATA_DIR", filepath.Join("data", "raw")),
		},
		Analysis: AnalysisConfig{
			SampleSize:        getEnvIntOrDefault("SAMPLE_SIZE", 500),
			MissingThreshold:  getEnvFloatOrDefault("MISSING_THRESHOLD", 0.3),
			MaxBarCardinality: getEnvIntOrDefault("MAX_BAR_CARDINALITY", 20),
			HistogramBins:     getEnvIntOrDefault("HISTOGRAM_BINS", 30),
			TopValues:         getEnvIntOrDefault("TOP_VALUES", 20),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
	}

	historyPath := getEnvOrDefault("HISTORY_DB", filepath.Join(config.Paths.ReportsDir, "history.db"))
	config.History = HistoryConfig{
		Path:    historyPath,
		Enabled: historyPath != "off",
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Paths.ReportsDir == "" {
		return errors.ConfigInvalid("REPORTS_DIR must not be empty")
	}
	if config.Analysis.SampleSize <= 0 {
		return errors.ConfigInvalid("SAMPLE_SIZE must be positive")
	}
	if config.Analysis.MissingThreshold < 0 || config.Analysis.MissingThreshold >= 1 {
		return errors.ConfigInvalid("MISSING_THRESHOLD must be in [0,1)")
	}
	if config.Analysis.MaxBarCardinality <= 0 {
		return errors.ConfigInvalid("MAX_BAR_CARDINALITY must be positive")
	}
	if config.Analysis.HistogramBins <= 0 {
		return errors.ConfigInvalid("HISTOGRAM_BINS must be positive")
	}
	if config.Analysis.TopValues <= 0 {
		return errors.ConfigInvalid("TOP_VALUES must be positive")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
