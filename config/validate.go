package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateExtractor(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return c.validateBatch()
}

func (c *Config) validateExtractor() error {
	e := c.Extractor
	if e.HopSize <= 0 {
		return errors.New("extractor.hop_size must be positive")
	}
	if e.FrameSize <= 0 {
		return errors.New("extractor.frame_size must be positive")
	}
	if e.SampleRate <= 0 {
		return errors.New("extractor.sample_rate must be positive")
	}
	if e.BinResolution <= 0 {
		return errors.New("extractor.bin_resolution must be positive")
	}
	if e.MinFrequency <= 0 || e.MaxFrequency <= e.MinFrequency {
		return fmt.Errorf("extractor frequency range [%v, %v] is invalid", e.MinFrequency, e.MaxFrequency)
	}
	if e.ConfidenceThreshold < 0 {
		return errors.New("extractor.confidence_threshold must not be negative")
	}
	if e.MinChunkSize < 0 {
		return errors.New("extractor.min_chunk_size must not be negative")
	}
	if e.MaxFrames <= 0 {
		return errors.New("extractor.max_frames must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateBatch() error {
	if c.Batch.Workers <= 0 {
		return errors.New("batch.workers must be positive")
	}
	switch c.Batch.OutputFormat {
	case "json", "tsv", "midi":
	default:
		return fmt.Errorf("batch.output_format: unsupported value %q", c.Batch.OutputFormat)
	}
	if c.Batch.WatchDelayMS < 0 {
		return errors.New("batch.watch_delay_ms must not be negative")
	}
	return nil
}
