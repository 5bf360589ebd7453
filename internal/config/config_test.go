package config

import (
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	config, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if config.Paths.ReportsDir != "reports" {
		t.Errorf("ReportsDir = %q, want reports", config.Paths.ReportsDir)
	}
	if config.Paths.RawDataDir != filepath.Join("data", "raw") {
		t.Errorf("RawDataDir = %q, want data/raw", config.Paths.RawDataDir)
	}
	if config.Analysis.SampleSize != 500 {
		t.Errorf("SampleSize = %d, want 500", config.Analysis.SampleSize)
	}
	if config.Analysis.MissingThreshold != 0.3 {
		t.Errorf("MissingThreshold = %v, want 0.3", config.Analysis.MissingThreshold)
	}
	if config.Analysis.MaxBarCardinality != 20 {
		t.Errorf("MaxBarCardinality = %d, want 20", config.Analysis.MaxBarCardinality)
	}
	if config.Analysis.HistogramBins != 30 {
		t.Errorf("HistogramBins = %d, want 30", config.Analysis.HistogramBins)
	}
	if !config.History.Enabled {
		t.Error("history should be enabled by default")
	}
	if config.History.Path != filepath.Join("reports", "history.db") {
		t.Errorf("History.Path = %q, want reports/history.db", config.History.Path)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SAMPLE_SIZE", "100")
	t.Setenv("MISSING_THRESHOLD", "0.5")
	t.Setenv("PORT", "9090")

	config, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if config.Analysis.SampleSize != 100 {
		t.Errorf("SampleSize = %d, want 100", config.Analysis.SampleSize)
	}
	if config.Analysis.MissingThreshold != 0.5 {
		t.Errorf("MissingThreshold = %v, want 0.5", config.Analysis.MissingThreshold)
	}
	if config.Server.Port != "9090" {
		t.Errorf("Port = %q, want 9090", config.Server.Port)
	}
}

func TestLoad_HistoryOff(t *testing.T) {
	t.Setenv("HISTORY_DB", "off")

	config, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if config.History.Enabled {
		t.Error("HISTORY_DB=off should disable the ledger")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{"negative sample size", "SAMPLE_SIZE", "-1"},
		{"threshold at one", "MISSING_THRESHOLD", "1"},
		{"negative threshold", "MISSING_THRESHOLD", "-0.1"},
		{"zero bins", "HISTOGRAM_BINS", "0"},
		{"zero cardinality", "MAX_BAR_CARDINALITY", "0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Errorf("expected validation error for %s=%s", tc.key, tc.value)
			}
		})
	}
}

func TestLoad_MalformedNumbersFallBack(t *testing.T) {
	t.Setenv("SAMPLE_SIZE", "not-a-number")

	config, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if config.Analysis.SampleSize != 500 {
		t.Errorf("SampleSize = %d, want default 500", config.Analysis.SampleSize)
	}
}
