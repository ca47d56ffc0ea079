// Package config loads and validates makampitch settings from TOML.
//
// Extractor parameters mirror the analysis front end that produced the
// contours; only hop size, sample rate, bin resolution and the pitch filter
// knobs change the selection output. The rest are carried into the result
// settings so a pitch file records how it was made.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Extractor contains the analysis parameters.
type Extractor struct {
	HopSize                   int     `toml:"hop_size"`
	FrameSize                 int     `toml:"frame_size"`
	SampleRate                int     `toml:"sample_rate"`
	BinResolution             float64 `toml:"bin_resolution"`
	MinFrequency              float64 `toml:"min_frequency"`
	MaxFrequency              float64 `toml:"max_frequency"`
	MagnitudeThreshold        float64 `toml:"magnitude_threshold"`
	PeakDistributionThreshold float64 `toml:"peak_distribution_threshold"`
	FilterPitch               bool    `toml:"filter_pitch"`
	ConfidenceThreshold       float64 `toml:"confidence_threshold"`
	MinChunkSize              int     `toml:"min_chunk_size"`

	// MaxFrames caps the output track length of one recording.
	MaxFrames int `toml:"max_frames"`
}

// FrameRate is the number of analysis frames per second.
func (e Extractor) FrameRate() float64 {
	return float64(e.SampleRate) / float64(e.HopSize)
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// Server contains configuration for the HTTP API.
type Server struct {
	Bind           string   `toml:"bind"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// Batch contains configuration for directory processing.
type Batch struct {
	Workers      int    `toml:"workers"`
	OutputFormat string `toml:"output_format"`
	WatchDelayMS int    `toml:"watch_delay_ms"`
}

type Config struct {
	Extractor Extractor `toml:"extractor"`
	Logging   Logging   `toml:"logging"`
	Server    Server    `toml:"server"`
	Batch     Batch     `toml:"batch"`
}

// Load reads the file at path on top of Default. A missing file is not an
// error; the second return value reports whether it existed.
func Load(path string) (*Config, bool, error) {
	cfg := Default()

	exists := false
	if path != "" {
		file, err := os.Open(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, false, fmt.Errorf("open config: %w", err)
		default:
			defer file.Close()
			exists = true
			if err := toml.NewDecoder(file).DisallowUnknownFields().Decode(&cfg); err != nil {
				return nil, false, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, exists, err
	}
	return &cfg, exists, nil
}

// Encode renders cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

func (c *Config) normalize() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Dir = strings.TrimSpace(c.Logging.Dir)
	c.Batch.OutputFormat = strings.ToLower(strings.TrimSpace(c.Batch.OutputFormat))
	c.Server.Bind = strings.TrimSpace(c.Server.Bind)
}
