package configuration

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AppConfig represents the complete application configuration.
type AppConfig struct {
	// Logger — logger component configuration
	Logger LoggerConfig `mapstructure:"logger"`
	// Server — HTTP server configuration
	Server ServerConfig `mapstructure:"server"`
	// Scoring — normalization ceilings and default weights
	Scoring ScoringConfig `mapstructure:"scoring"`
	// Suggestions — suggestion rule table configuration
	Suggestions SuggestionsConfig `mapstructure:"suggestions"`
	// Generator — external text-generation service configuration
	Generator GeneratorConfig `mapstructure:"generator"`
	// History — scored-product history configuration
	History HistoryConfig `mapstructure:"history"`
}

// LoggerConfig defines logging settings.
type LoggerConfig struct {
	// Level — log level: debug, info, warn, warning, error.
	// Value is case-insensitive but checked in lowercase.
	Level string `mapstructure:"level"`
}

// ServerConfig contains HTTP server parameters.
type ServerConfig struct {
	// Address — address and port where the server will listen (e.g., ":8080").
	Address string `mapstructure:"address"`
	// Static — path to directory with static files served by the server.
	// Can be empty if static serving is not required.
	Static string `mapstructure:"static"`
}

// WeightsConfig holds the process-wide default scoring weights.
type WeightsConfig struct {
	Gwp         float64 `mapstructure:"gwp"`
	Circularity float64 `mapstructure:"circularity"`
	Cost        float64 `mapstructure:"cost"`
}

// ScoringConfig defines normalization ceilings and default weights for
// the composite score.
type ScoringConfig struct {
	// GwpMax — worst-case GWP value; higher raw values saturate at score 0.
	GwpMax float64 `mapstructure:"gwp_max"`
	// CostMax — worst-case cost value.
	CostMax float64 `mapstructure:"cost_max"`
	// CircularityMax — best-case circularity value.
	CircularityMax float64 `mapstructure:"circularity_max"`
	// Weights — default metric weights, overridable per request.
	Weights WeightsConfig `mapstructure:"weights"`
}

// SuggestionsConfig defines the suggestion rule table source.
type SuggestionsConfig struct {
	// Rules — path to a YAML rule table. Empty means the built-in table.
	Rules string `mapstructure:"rules"`
}

// GeneratorConfig defines the optional external suggestion generator.
type GeneratorConfig struct {
	// Provider — generator provider name (e.g., "openai").
	// Empty disables the generator entirely.
	Provider string `mapstructure:"provider"`
	// Url — base URL of the chat-completions service.
	Url string `mapstructure:"url"`
	// ApiKey — bearer token for the service, may be empty.
	ApiKey string `mapstructure:"api_key"`
	// Model — model name passed to the service.
	Model string `mapstructure:"model"`
	// Timeout — per-request timeout (time.Duration). Example: "5s".
	Timeout time.Duration `mapstructure:"timeout"`
	// MaxSuggestions — cap on generated suggestions per request.
	MaxSuggestions int `mapstructure:"max_suggestions"`
}

// HistoryConfig defines scored-product history parameters.
type HistoryConfig struct {
	// Length — size of the in-memory recent-entries window (default 100).
	Length int `mapstructure:"length"`
	// File — journal file path (optional; empty disables the journal).
	File string `mapstructure:"file"`
	// Size — maximal journal file size in MB (default 100)
	Size int `mapstructure:"size"`
	// Backups — number of rotated journal files to keep (default 20)
	Backups int `mapstructure:"backups"`
}

// Validate checks the correctness of the entire application configuration.
// Calls validation for each nested structure and returns the first detected error.
// Returns nil if the configuration is valid.
func (c *AppConfig) Validate() error {
	if err := c.Logger.Validate(); err != nil {
		return err
	}

	if err := c.Server.Validate(); err != nil {
		return err
	}

	if err := c.Scoring.Validate(); err != nil {
		return err
	}

	if err := c.Generator.Validate(); err != nil {
		return err
	}

	return c.History.Validate()
}

// Validate checks the correctness of the logger configuration.
// Verifies that the log level is set and is one of the supported values.
// Supported values: debug, info, warn, warning, error (case-insensitive).
func (l *LoggerConfig) Validate() error {
	if l.Level == "" {
		return errors.New("logger.level: must be specified")
	}

	valid := map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	if !valid[strings.ToLower(l.Level)] {
		return fmt.Errorf("logger.level: unsupported level '%s'", l.Level)
	}

	return nil
}

// Validate checks the correctness of the server configuration.
// Verifies that the server address is set.
func (n *ServerConfig) Validate() error {
	if n.Address == "" {
		return errors.New("server.address: must be specified")
	}

	return nil
}

// Validate substitutes the stock defaults for unset scoring values and
// rejects negative ones. A weights block where all three values are zero
// gets the stock 0.5/0.3/0.2 distribution.
func (s *ScoringConfig) Validate() error {
	if s.GwpMax < 0 || s.CostMax < 0 || s.CircularityMax < 0 {
		return errors.New("scoring: ceilings must be >= 0")
	}

	if s.GwpMax == 0 {
		s.GwpMax = 50
	}
	if s.CostMax == 0 {
		s.CostMax = 100
	}
	if s.CircularityMax == 0 {
		s.CircularityMax = 100
	}

	if s.Weights.Gwp < 0 || s.Weights.Circularity < 0 || s.Weights.Cost < 0 {
		return errors.New("scoring.weights: must be >= 0")
	}
	if s.Weights.Gwp == 0 && s.Weights.Circularity == 0 && s.Weights.Cost == 0 {
		s.Weights = WeightsConfig{Gwp: 0.5, Circularity: 0.3, Cost: 0.2}
	}

	return nil
}

// Validate checks the generator configuration. An empty provider means
// the generator is disabled and the remaining fields are ignored.
func (g *GeneratorConfig) Validate() error {
	if g.Provider == "" {
		return nil
	}

	if g.Url == "" {
		return errors.New("generator.url: must be specified")
	}
	if _, err := url.Parse(g.Url); err != nil {
		return fmt.Errorf("generator.url: %w", err)
	}
	if g.Model == "" {
		return errors.New("generator.model: must be specified")
	}

	if g.Timeout == 0 {
		g.Timeout = 10 * time.Second
	}
	if g.MaxSuggestions == 0 {
		g.MaxSuggestions = 3
	}

	return nil
}

// Validate substitutes defaults for unset history parameters.
func (h *HistoryConfig) Validate() error {
	if h.Length == 0 {
		h.Length = 100
	}
	if h.Size == 0 {
		h.Size = 100
	}
	if h.Backups == 0 {
		h.Backups = 20
	}

	return nil
}

// LoadConfig loads configuration from the specified file using Viper.
// Supports YAML format. Also includes environment variable loading (AutomaticEnv),
// which can override values from the file.
//
// Parameter configPath — path to the configuration file.
//
// Returns a pointer to AppConfig or an error if:
// - the file is not found or inaccessible
// - the configuration has invalid format
// - one of the sections fails validation
func LoadConfig(configPath string) (*AppConfig, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config AppConfig
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}
