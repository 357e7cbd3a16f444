package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable. A failure here is fatal to a
// run before it starts.
func (c *Config) Validate() error {
	if err := c.validateScan(); err != nil {
		return err
	}
	if err := c.validateClassifier(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateScan() error {
	if c.Scan.ChunkSize < 1 {
		return errors.New("scan.chunk_size must be at least 1")
	}
	if c.Scan.MaxConcurrency < 1 {
		return errors.New("scan.max_concurrency must be at least 1")
	}
	if c.Scan.RetentionYears < 1 {
		return errors.New("scan.retention_years must be a positive number of years")
	}
	if c.Scan.MaxContextLines < 1 {
		return errors.New("scan.max_context_lines must be at least 1")
	}
	if c.Scan.MaxContextChars < 1 {
		return errors.New("scan.max_context_chars must be at least 1")
	}
	if c.Scan.AgeBasis != "modified" {
		return fmt.Errorf("scan.age_basis: unsupported value %q (only \"modified\" is available)", c.Scan.AgeBasis)
	}
	return nil
}

func (c *Config) validateClassifier() error {
	switch c.Classifier.Backend {
	case "ollama":
		if c.Classifier.BaseURL == "" {
			return errors.New("classifier.base_url must be set when classifier.backend is \"ollama\"")
		}
		if c.Classifier.Model == "" {
			return errors.New("classifier.model must be set when classifier.backend is \"ollama\"")
		}
	case "heuristic":
	default:
		return fmt.Errorf("classifier.backend: unsupported value %q", c.Classifier.Backend)
	}
	if c.Classifier.Temperature < 0 || c.Classifier.Temperature > 2 {
		return errors.New("classifier.temperature must be between 0 and 2")
	}
	if c.Classifier.TimeoutSeconds < 0 {
		return errors.New("classifier.timeout_seconds must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
		return nil
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
}
