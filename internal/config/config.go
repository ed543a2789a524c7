package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/un1queA/LETHIMCOOK/internal/listing"
	"github.com/un1queA/LETHIMCOOK/internal/score"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// Providers holds credentials for the commercial sources. Empty values fall
// back to environment variables; absence means the provider is skipped.
type Providers struct {
	FoursquareKey string `yaml:"foursquare_key"`
	GoogleKey     string `yaml:"google_key"`
}

type Config struct {
	CountryCode     string `yaml:"country_code"`
	Region          string `yaml:"region"`
	DefaultRadiusKm int    `yaml:"default_radius_km"`
	MinRadiusKm     int    `yaml:"min_radius_km"`
	MaxRadiusKm     int    `yaml:"max_radius_km"`
	ProviderTimeout string `yaml:"provider_timeout"`
	Retention       string `yaml:"retention"`
	HistorySize     int    `yaml:"history_size,omitempty"`

	Providers Providers    `yaml:"providers"`
	Scoring   score.Policy `yaml:"scoring"`
}

// Credentials resolves the provider keys: config value first, environment
// variable second.
func (c *Config) Credentials() listing.Credentials {
	fsq := c.Providers.FoursquareKey
	if fsq == "" {
		fsq = os.Getenv("FOURSQUARE_API_KEY")
	}
	google := c.Providers.GoogleKey
	if google == "" {
		google = os.Getenv("GOOGLE_PLACES_API_KEY")
	}
	return listing.Credentials{Foursquare: fsq, Google: google}
}

// ProviderTimeoutDuration returns the per-provider fetch budget.
func (c *Config) ProviderTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.ProviderTimeout)
	if err != nil {
		return 20 * time.Second
	}
	return d
}

// RetentionDuration parses the retention period, supporting "Nd" day syntax.
func (c *Config) RetentionDuration() time.Duration {
	if c.Retention == "" {
		return 90 * 24 * time.Hour
	}
	if len(c.Retention) > 1 && c.Retention[len(c.Retention)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(c.Retention, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour
		}
	}
	d, err := time.ParseDuration(c.Retention)
	if err != nil {
		return 90 * 24 * time.Hour
	}
	return d
}

// ClampRadiusKm bounds a requested radius to the configured range.
func (c *Config) ClampRadiusKm(km int) int {
	if km < c.MinRadiusKm {
		return c.MinRadiusKm
	}
	if km > c.MaxRadiusKm {
		return c.MaxRadiusKm
	}
	return km
}

// GetHistorySize returns the history page size, defaulting to 20.
func (c *Config) GetHistorySize() int {
	if c.HistorySize <= 0 {
		return 20
	}
	return c.HistorySize
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "lethimcook", "config.yaml")
}

func CachePath() string {
	return filepath.Join(xdg.CacheHome, "lethimcook", "lethimcook.db")
}

// newWithDefaults returns a Config whose scoring policy starts from the
// package defaults so a user file only has to override what it changes.
func newWithDefaults() Config {
	return Config{Scoring: score.DefaultPolicy()}
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	cfg := newWithDefaults()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config at path (or the default path), writing the embedded
// defaults there on first run. A .env file in the working directory is
// loaded first so credentials can live outside the config file.
func Load(path string) (*Config, error) {
	godotenv.Load()

	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return defaults, nil
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := newWithDefaults()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	if cfg.MinRadiusKm < 1 {
		return fmt.Errorf("min_radius_km must be at least 1, got %d", cfg.MinRadiusKm)
	}
	if cfg.MaxRadiusKm < cfg.MinRadiusKm {
		return fmt.Errorf("max_radius_km (%d) must be >= min_radius_km (%d)",
			cfg.MaxRadiusKm, cfg.MinRadiusKm)
	}
	if cfg.DefaultRadiusKm < cfg.MinRadiusKm || cfg.DefaultRadiusKm > cfg.MaxRadiusKm {
		return fmt.Errorf("default_radius_km (%d) must be within %d..%d",
			cfg.DefaultRadiusKm, cfg.MinRadiusKm, cfg.MaxRadiusKm)
	}
	if cfg.Scoring.WithTermThreshold < cfg.Scoring.NoTermThreshold {
		return fmt.Errorf("with_term_threshold (%d) must be >= no_term_threshold (%d)",
			cfg.Scoring.WithTermThreshold, cfg.Scoring.NoTermThreshold)
	}
	return nil
}
