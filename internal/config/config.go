package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the application configuration
type Config struct {
	Carver CarverConfig `json:"carver"`
	Face   FaceConfig   `json:"face"`
	Output OutputConfig `json:"output"`
}

// CarverConfig holds the energy map and resize options
type CarverConfig struct {
	Aperture       int     `json:"aperture"`
	SobelThreshold int     `json:"sobel_threshold"`
	BlurRadius     float64 `json:"blur_radius"`
	Filter         string  `json:"filter"`
	Mode           string  `json:"mode"`
	PPI            int     `json:"ppi"`
}

// FaceConfig holds the face detection options
type FaceConfig struct {
	Cascade   string  `json:"cascade"`
	Angle     float64 `json:"angle"`
	MinSize   int     `json:"min_size"`
	Threshold float32 `json:"threshold"`
	IoU       float64 `json:"iou"`
	MaxDim    int     `json:"max_dim"`
}

// OutputConfig holds configuration for output generation
type OutputConfig struct {
	Quality    int    `json:"quality"`
	Background string `json:"background"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Carver: CarverConfig{
			Aperture:       3,
			SobelThreshold: 0,
			BlurRadius:     0,
			Filter:         "lanczos",
			Mode:           "seam",
			PPI:            300,
		},
		Face: FaceConfig{
			MinSize:   20,
			Threshold: 5.0,
			IoU:       0.2,
			MaxDim:    1000,
		},
		Output: OutputConfig{
			Quality:    100,
			Background: "#000000",
		},
	}
}

// Load reads the JSON configuration file. The values missing from the file
// keep their defaults.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to a JSON file
func (c *Config) Save(filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Carver.Aperture {
	case 1, 3, 5, 7:
	default:
		return fmt.Errorf("carver.aperture must be one of 1, 3, 5, 7")
	}
	if c.Carver.SobelThreshold < 0 {
		return fmt.Errorf("carver.sobel_threshold must not be negative")
	}
	if c.Carver.BlurRadius < 0 {
		return fmt.Errorf("carver.blur_radius must not be negative")
	}
	if c.Carver.PPI <= 0 {
		return fmt.Errorf("carver.ppi must be positive")
	}
	if c.Output.Quality < 1 || c.Output.Quality > 100 {
		return fmt.Errorf("output.quality must be between 1 and 100")
	}
	if c.Face.MinSize <= 0 || c.Face.MaxDim <= 0 {
		return fmt.Errorf("face.min_size and face.max_dim must be positive")
	}
	if c.Face.IoU < 0 || c.Face.IoU > 1 {
		return fmt.Errorf("face.iou must be between 0 and 1")
	}
	return nil
}
