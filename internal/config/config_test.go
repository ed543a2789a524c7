package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := loadDefaults()
	if err != nil {
		t.Fatalf("loadDefaults: %v", err)
	}
	if cfg.CountryCode != "sg" {
		t.Errorf("CountryCode = %q, want sg", cfg.CountryCode)
	}
	if cfg.Region != "Singapore" {
		t.Errorf("Region = %q, want Singapore", cfg.Region)
	}
	if cfg.DefaultRadiusKm != 3 {
		t.Errorf("DefaultRadiusKm = %d, want 3", cfg.DefaultRadiusKm)
	}
	if cfg.Scoring.WithTermThreshold != 50 || cfg.Scoring.NoTermThreshold != 40 {
		t.Errorf("thresholds = %d/%d, want 50/40",
			cfg.Scoring.WithTermThreshold, cfg.Scoring.NoTermThreshold)
	}
	// Values absent from the yaml keep the built-in policy defaults.
	if cfg.Scoring.Baseline != 50 {
		t.Errorf("Baseline = %d, want 50", cfg.Scoring.Baseline)
	}
	if err := validate(cfg); err != nil {
		t.Errorf("embedded defaults failed validation: %v", err)
	}
}

func TestLoadUserOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
country_code: "sg"
region: "Singapore"
default_radius_km: 5
min_radius_km: 2
max_radius_km: 8
provider_timeout: "10s"
scoring:
  baseline: 60
  with_term_threshold: 55
  no_term_threshold: 45
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultRadiusKm != 5 {
		t.Errorf("DefaultRadiusKm = %d, want 5", cfg.DefaultRadiusKm)
	}
	if cfg.ProviderTimeoutDuration() != 10*time.Second {
		t.Errorf("ProviderTimeoutDuration = %v, want 10s", cfg.ProviderTimeoutDuration())
	}
	if cfg.Scoring.Baseline != 60 {
		t.Errorf("Baseline = %d, want 60", cfg.Scoring.Baseline)
	}
	if cfg.Scoring.WithTermThreshold != 55 {
		t.Errorf("WithTermThreshold = %d, want 55", cfg.Scoring.WithTermThreshold)
	}
	// An override file that touches scoring keeps untouched policy fields.
	if cfg.Scoring.NameMatchBonus != 35 {
		t.Errorf("NameMatchBonus = %d, want default 35", cfg.Scoring.NameMatchBonus)
	}
}

func TestLoadFirstRunWritesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CountryCode != "sg" {
		t.Errorf("CountryCode = %q, want sg", cfg.CountryCode)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("default config was not written out: %v", err)
	}
}

func TestValidateRejectsBadRadius(t *testing.T) {
	cfg := newWithDefaults()
	cfg.MinRadiusKm = 5
	cfg.MaxRadiusKm = 2
	cfg.DefaultRadiusKm = 3
	if err := validate(&cfg); err == nil {
		t.Error("expected error for max < min radius")
	}
}

func TestValidateRejectsInvertedThresholds(t *testing.T) {
	cfg := newWithDefaults()
	cfg.MinRadiusKm = 1
	cfg.MaxRadiusKm = 10
	cfg.DefaultRadiusKm = 3
	cfg.Scoring.WithTermThreshold = 30
	cfg.Scoring.NoTermThreshold = 40
	if err := validate(&cfg); err == nil {
		t.Error("expected error for with-term threshold below no-term threshold")
	}
}

func TestClampRadiusKm(t *testing.T) {
	cfg := newWithDefaults()
	cfg.MinRadiusKm = 1
	cfg.MaxRadiusKm = 10
	for _, tc := range []struct{ in, want int }{
		{0, 1}, {1, 1}, {5, 5}, {10, 10}, {50, 10},
	} {
		if got := cfg.ClampRadiusKm(tc.in); got != tc.want {
			t.Errorf("ClampRadiusKm(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestRetentionDuration(t *testing.T) {
	cfg := newWithDefaults()
	cfg.Retention = "30d"
	if got := cfg.RetentionDuration(); got != 30*24*time.Hour {
		t.Errorf("RetentionDuration = %v, want 720h", got)
	}
	cfg.Retention = "48h"
	if got := cfg.RetentionDuration(); got != 48*time.Hour {
		t.Errorf("RetentionDuration = %v, want 48h", got)
	}
	cfg.Retention = ""
	if got := cfg.RetentionDuration(); got != 90*24*time.Hour {
		t.Errorf("RetentionDuration default = %v, want 2160h", got)
	}
}

func TestCredentialsEnvFallback(t *testing.T) {
	t.Setenv("FOURSQUARE_API_KEY", "env-fsq")
	t.Setenv("GOOGLE_PLACES_API_KEY", "env-google")

	cfg := newWithDefaults()
	creds := cfg.Credentials()
	if creds.Foursquare != "env-fsq" {
		t.Errorf("Foursquare = %q, want env-fsq", creds.Foursquare)
	}
	if creds.Google != "env-google" {
		t.Errorf("Google = %q, want env-google", creds.Google)
	}

	cfg.Providers.FoursquareKey = "file-fsq"
	if got := cfg.Credentials().Foursquare; got != "file-fsq" {
		t.Errorf("Foursquare = %q, config value should win", got)
	}
}
