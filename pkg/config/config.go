// Package config loads and saves the YAML configuration used by the
// radarcompose CLI and the composite generation library's default parameters.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Log       LogConfig       `yaml:"log"`
	Geometry  GeometryConfig  `yaml:"geometry"`
	Generator GeneratorConfig `yaml:"generator"`
	Odim      OdimConfig      `yaml:"odim"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// GeometryConfig holds defaults for the 4/3-Earth beam propagation model.
type GeometryConfig struct {
	BeamWidthDeg float64 `yaml:"beam_width_deg"` // half-power beam width, degrees
}

// GeneratorConfig holds default composite-generation parameters, which the
// radarcompose CLI applies to the CompositeGenerator it builds.
// NewCompositeGenerator itself does not read them.
type GeneratorConfig struct {
	Product          string   `yaml:"product"`          // PPI, CAPPI, PCAPPI, PMAX
	SelectionMethod  string   `yaml:"selection_method"` // NEAREST, HEIGHT
	Height           Distance `yaml:"height"`           // CAPPI/PCAPPI/PMAX altitude
	ElevationAngle   float64  `yaml:"elevation_angle"`  // PPI elevation, degrees
	Range            Distance `yaml:"range"`            // PMAX vertical-max threshold
	OutputGain       float64  `yaml:"output_gain"`
	OutputOffset     float64  `yaml:"output_offset"`
	QualityFieldTask []string `yaml:"quality_fields"` // how/task identifiers to propagate
}

// OdimConfig holds settings for the ODIM-HDF5 boundary unit conversions.
type OdimConfig struct {
	FileVersion float64 `yaml:"file_version"` // conversions apply only for >= 2.4
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Path:  "./logs/radarcompose.log",
			Level: "INFO",
		},
		Geometry: GeometryConfig{
			BeamWidthDeg: 1.0,
		},
		Generator: GeneratorConfig{
			Product:         "PCAPPI",
			SelectionMethod: "NEAREST",
			Height:          Distance(1000),
			ElevationAngle:  0.5,
			Range:           Distance(60000),
			OutputGain:      0.4,
			OutputOffset:    -30.0,
		},
		Odim: OdimConfig{
			FileVersion: 2.4,
		},
	}
}

// Load reads the configuration at path, creating it with defaults if it does
// not yet exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		return cfg, nil
	}

	if err := Save(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to save config file: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# radarcompose configuration
# ---------------------
# Supported Units:
#   Distance: m (meters), km (kilometers), nm (nautical miles)

`)
	data = append(header, data...)

	reProduct := regexp.MustCompile(`(?m)^(\s+)product:`)
	data = reProduct.ReplaceAll(data, []byte("${1}# Options: PPI, CAPPI, PCAPPI, PMAX\n${1}product:"))

	reSelection := regexp.MustCompile(`(?m)^(\s+)selection_method:`)
	data = reSelection.ReplaceAll(data, []byte("${1}# Options: NEAREST, HEIGHT\n${1}selection_method:"))

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GenerateDefault creates a default config file at the given path.
// Returns nil if the file already exists.
func GenerateDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return Save(path, DefaultConfig())
}
