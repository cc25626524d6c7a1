package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/banshee-data/nav.report/internal/units"
)

// AnalyzerConfig holds tuning parameters for the analysis pipeline.
// Fields are pointers so a partial config file only overrides what it
// names; the Get* accessors supply defaults for everything else.
type AnalyzerConfig struct {
	// Clustering params
	ClusterRadius  *float64 `json:"cluster_radius,omitempty"`
	DwellIncrement *float64 `json:"dwell_increment,omitempty"`
	TopK           *int     `json:"top_k,omitempty"`

	// Watch params
	PollInterval *string `json:"poll_interval,omitempty"` // duration string like "2s"

	// Report params
	Units *string `json:"units,omitempty"`
}

// EmptyAnalyzerConfig returns an AnalyzerConfig with all fields set to nil,
// so every accessor falls back to its default.
func EmptyAnalyzerConfig() *AnalyzerConfig {
	return &AnalyzerConfig{}
}

// LoadAnalyzerConfig loads an AnalyzerConfig from a JSON file. The file is
// validated to have a .json extension and to be under the max file size.
// Fields omitted from the JSON retain their defaults, so partial configs
// are safe.
func LoadAnalyzerConfig(path string) (*AnalyzerConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyAnalyzerConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *AnalyzerConfig) Validate() error {
	if c.ClusterRadius != nil && *c.ClusterRadius <= 0 {
		return fmt.Errorf("cluster_radius must be positive, got %f", *c.ClusterRadius)
	}

	if c.DwellIncrement != nil && *c.DwellIncrement <= 0 {
		return fmt.Errorf("dwell_increment must be positive, got %f", *c.DwellIncrement)
	}

	if c.TopK != nil && *c.TopK < 0 {
		return fmt.Errorf("top_k must be non-negative, got %d", *c.TopK)
	}

	if c.PollInterval != nil && *c.PollInterval != "" {
		if _, err := time.ParseDuration(*c.PollInterval); err != nil {
			return fmt.Errorf("invalid poll_interval '%s': %w", *c.PollInterval, err)
		}
	}

	if c.Units != nil && !units.IsValid(*c.Units) {
		return fmt.Errorf("invalid units %q, expected one of %s", *c.Units, units.GetValidUnitsString())
	}

	return nil
}

// GetClusterRadius returns the cluster_radius value or the default.
func (c *AnalyzerConfig) GetClusterRadius() float64 {
	if c.ClusterRadius == nil {
		return 5.0
	}
	return *c.ClusterRadius
}

// GetDwellIncrement returns the dwell_increment value or the default.
func (c *AnalyzerConfig) GetDwellIncrement() float64 {
	if c.DwellIncrement == nil {
		return 5.0 // seconds per sample, the recorder's cadence
	}
	return *c.DwellIncrement
}

// GetTopK returns the top_k value or the default.
func (c *AnalyzerConfig) GetTopK() int {
	if c.TopK == nil {
		return 10
	}
	return *c.TopK
}

// GetPollInterval parses and returns the PollInterval as a time.Duration.
func (c *AnalyzerConfig) GetPollInterval() time.Duration {
	if c.PollInterval == nil || *c.PollInterval == "" {
		return 2 * time.Second // default
	}
	d, err := time.ParseDuration(*c.PollInterval)
	if err != nil {
		return 2 * time.Second // default on parse error
	}
	return d
}

// GetUnits returns the units value or the default.
func (c *AnalyzerConfig) GetUnits() string {
	if c.Units == nil {
		return units.UPS
	}
	return *c.Units
}
