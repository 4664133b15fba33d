package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadAnalyzerConfig reads an analyzer configuration from a YAML file
func LoadAnalyzerConfig(filename string) (*AnalyzerConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read analyzer config: %w", err)
	}
	return ParseAnalyzerConfig(data)
}

// ParseAnalyzerConfig decodes YAML over the defaults, so keys missing from
// the document keep their default values. The result is sanitized.
func ParseAnalyzerConfig(data []byte) (*AnalyzerConfig, error) {
	cfg := DefaultAnalyzerConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse analyzer config: %w", err)
	}
	return cfg.Sanitize(), nil
}
