package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config represents the complete application configuration
type Config struct {
	Data     DataConfig `validate:"required"`
	Cleaning CleaningConfig
	Charts   ChartConfig
	Output   OutputConfig
}

// DataConfig holds input file settings
type DataConfig struct {
	File            string
	TimestampColumn string   // empty means auto-detect
	TargetColumns   []string // columns treated for missing values and outliers
	SampleRows      int      // rows sampled for column type analysis
}

// CleaningConfig holds cleaning pipeline settings
type CleaningConfig struct {
	ZThreshold float64
}

// ChartConfig holds chart rendering settings
type ChartConfig struct {
	WidthInches   float64
	HeightInches  float64
	HistogramBins int
}

// OutputConfig holds output artifact settings
type OutputConfig struct {
	Dir         string
	CleanedName string // empty derives "<input>_clean.csv"
	ReportHTML  bool
	Workbook    bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Data:     loadDataConfig(),
		Cleaning: loadCleaningConfig(),
		Charts:   loadChartConfig(),
		Output:   loadOutputConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadDataConfig() DataConfig {
	return DataConfig{
		File:            getEnvOrDefault("DATA_FILE", ""),
		TimestampColumn: getEnvOrDefault("TIMESTAMP_COLUMN", ""),
		TargetColumns:   splitColumns(getEnvOrDefault("TARGET_COLUMNS", "GHI,DNI,DHI")),
		SampleRows:      getEnvIntOrDefault("TYPE_SAMPLE_ROWS", 1000),
	}
}

func loadCleaningConfig() CleaningConfig {
	return CleaningConfig{
		ZThreshold: getEnvFloatOrDefault("Z_THRESHOLD", 3.0),
	}
}

func loadChartConfig() ChartConfig {
	return ChartConfig{
		WidthInches:   getEnvFloatOrDefault("CHART_WIDTH_IN", 12),
		HeightInches:  getEnvFloatOrDefault("CHART_HEIGHT_IN", 6),
		HistogramBins: getEnvIntOrDefault("HISTOGRAM_BINS", 40),
	}
}

func loadOutputConfig() OutputConfig {
	return OutputConfig{
		Dir:         getEnvOrDefault("OUTPUT_DIR", "out"),
		CleanedName: getEnvOrDefault("CLEANED_FILE", ""),
		ReportHTML:  getEnvBoolOrDefault("REPORT_HTML", true),
		Workbook:    getEnvBoolOrDefault("REPORT_WORKBOOK", true),
	}
}

func validateConfig(config *Config) error {
	if config.Cleaning.ZThreshold <= 0 {
		return fmt.Errorf("Z_THRESHOLD must be positive, got %v", config.Cleaning.ZThreshold)
	}
	if config.Data.SampleRows <= 0 {
		return fmt.Errorf("TYPE_SAMPLE_ROWS must be positive, got %d", config.Data.SampleRows)
	}
	if config.Charts.WidthInches <= 0 || config.Charts.HeightInches <= 0 {
		return fmt.Errorf("chart dimensions must be positive")
	}
	if config.Charts.HistogramBins <= 0 {
		return fmt.Errorf("HISTOGRAM_BINS must be positive, got %d", config.Charts.HistogramBins)
	}
	return nil
}

// splitColumns parses a comma-separated column list, dropping empty entries
func splitColumns(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
