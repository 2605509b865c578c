package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults for the adapter heuristics. The text-heading thresholds are
// deliberately tunable because the upstream behavior was heuristic.
const (
	DefaultHeadingMaxWords   = 10
	DefaultReadingWPM        = 200
	DefaultPDFBackendTimeout = 5 * time.Second
	DefaultTopKeywordCount   = 10
)

// AdapterConfig holds the runtime knobs for the adapter layer. The zero value
// is not usable; start from DefaultAdapterConfig or LoadConfig.
type AdapterConfig struct {
	// HeadingMaxWords is the maximum word count for a plain-text line to be
	// considered a heading candidate.
	HeadingMaxWords int `yaml:"heading_max_words"`

	// ReadingWPM is the words-per-minute rate behind read_time.
	ReadingWPM int `yaml:"reading_wpm"`

	// PDFBackendTimeout bounds each PDF extraction backend attempt.
	PDFBackendTimeout time.Duration `yaml:"pdf_backend_timeout"`

	// TopKeywordCount limits the top_keywords metadata list.
	TopKeywordCount int `yaml:"top_keyword_count"`

	// DetectLanguage enables lingua-based language metadata. Off by default
	// because building the detector is expensive.
	DetectLanguage bool `yaml:"detect_language"`
}

// DefaultAdapterConfig returns the built-in defaults.
func DefaultAdapterConfig() AdapterConfig {
	return AdapterConfig{
		HeadingMaxWords:   DefaultHeadingMaxWords,
		ReadingWPM:        DefaultReadingWPM,
		PDFBackendTimeout: DefaultPDFBackendTimeout,
		TopKeywordCount:   DefaultTopKeywordCount,
	}
}

// LoadConfig reads an adapter config from a YAML file. Absent fields fall
// back to the defaults; an empty path or a missing file yields the defaults
// unchanged.
func LoadConfig(path string) (AdapterConfig, error) {
	cfg := DefaultAdapterConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	var fileCfg AdapterConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	if fileCfg.HeadingMaxWords > 0 {
		cfg.HeadingMaxWords = fileCfg.HeadingMaxWords
	}
	if fileCfg.ReadingWPM > 0 {
		cfg.ReadingWPM = fileCfg.ReadingWPM
	}
	if fileCfg.PDFBackendTimeout > 0 {
		cfg.PDFBackendTimeout = fileCfg.PDFBackendTimeout
	}
	if fileCfg.TopKeywordCount > 0 {
		cfg.TopKeywordCount = fileCfg.TopKeywordCount
	}
	cfg.DetectLanguage = fileCfg.DetectLanguage

	return cfg, nil
}
