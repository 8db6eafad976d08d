package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.EnvVars.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.EnvVars.Port)
	}
	if cfg.EnvVars.MealDBAPIURL != "https://www.themealdb.com/api/json/v1/1" {
		t.Errorf("MealDBAPIURL = %q", cfg.EnvVars.MealDBAPIURL)
	}
	if cfg.EnvVars.MealDBTimeout != 10*time.Second {
		t.Errorf("MealDBTimeout = %v, want 10s", cfg.EnvVars.MealDBTimeout)
	}
	if cfg.EnvVars.DiscardStaleResponses {
		t.Error("DiscardStaleResponses should default to false")
	}
	if err := cfg.CheckConfigEnvFields(); err != nil {
		t.Errorf("defaults should pass CheckConfigEnvFields, got %v", err)
	}
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("DISCARD_STALE_RESPONSES", "true")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.EnvVars.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.EnvVars.Port)
	}
	if len(cfg.EnvVars.AllowedOrigins) != 2 || cfg.EnvVars.AllowedOrigins[1] != "http://b.test" {
		t.Errorf("AllowedOrigins = %v", cfg.EnvVars.AllowedOrigins)
	}
	if !cfg.EnvVars.DiscardStaleResponses {
		t.Error("DiscardStaleResponses should be true")
	}
}

func TestCheckConfigEnvFields_InvalidURL(t *testing.T) {
	t.Setenv("MEALDB_API_URL", "not a url")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if err := cfg.CheckConfigEnvFields(); err == nil {
		t.Error("CheckConfigEnvFields should reject a malformed MEALDB_API_URL")
	}
}

func TestCheckConfigEnvFields_MissingField(t *testing.T) {
	cfg := &Config{EnvVars: EnvVars{Port: "8080"}}
	if err := cfg.CheckConfigEnvFields(); err == nil {
		t.Error("CheckConfigEnvFields should fail when required fields are empty")
	}
}

func TestLoadPalettes_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")
	data := []byte("dark:\n  toggle: \"#123456\"\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write theme file: %v", err)
	}

	palettes, err := LoadPalettes(path)
	if err != nil {
		t.Fatalf("LoadPalettes() error: %v", err)
	}
	if palettes.Dark.Toggle != "#123456" {
		t.Errorf("Dark.Toggle = %q, want #123456", palettes.Dark.Toggle)
	}
	if palettes.Light.Toggle != DefaultPalettes().Light.Toggle {
		t.Errorf("Light.Toggle = %q, want default", palettes.Light.Toggle)
	}
}

func TestLoadPalettes_MissingFile(t *testing.T) {
	if _, err := LoadPalettes(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadPalettes should fail for a missing file")
	}
}

func TestPalettesSelect(t *testing.T) {
	p := DefaultPalettes()
	if p.Select(true) != p.Dark {
		t.Error("Select(true) should return the dark palette")
	}
	if p.Select(false) != p.Light {
		t.Error("Select(false) should return the light palette")
	}
}
