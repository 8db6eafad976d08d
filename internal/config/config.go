package config

import (
	"fmt"
	"reflect"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration.
type Config struct {
	EnvVars EnvVars   `json:"env"`
	Theme   *Palettes `json:"-"`
}

// EnvVars holds environment variables read by the application.
// Fields tagged `optional:"true"` are skipped by CheckConfigEnvFields.
// Fields tagged `url:"true"` must hold an absolute http(s) URL.
type EnvVars struct {
	Port                  string        `env:"PORT" envDefault:"8080"`
	MealDBAPIURL          string        `env:"MEALDB_API_URL" envDefault:"https://www.themealdb.com/api/json/v1/1" url:"true"`
	MealDBSiteURL         string        `env:"MEALDB_SITE_URL" envDefault:"https://www.themealdb.com" url:"true"`
	MealDBTimeout         time.Duration `env:"MEALDB_TIMEOUT" envDefault:"10s"`
	RateLimitRPS          int           `env:"RATE_LIMIT_RPS" envDefault:"5"`
	SessionIdleTimeout    time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"30m"`
	DiscardStaleResponses bool          `env:"DISCARD_STALE_RESPONSES" envDefault:"false" optional:"true"`
	AllowedOrigins        []string      `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:8080" envSeparator:","`
	ThemeFile             string        `env:"THEME_FILE" optional:"true"`
}

// LoadConfig parses environment variables into the Config struct.
func LoadConfig() (*Config, error) {
	var config Config
	if err := env.Parse(&config.EnvVars); err != nil {
		return nil, err
	}
	return &config, nil
}

// CheckConfigEnvFields validates that all required EnvVars fields are set
// and that URL fields are well formed.
func (c *Config) CheckConfigEnvFields() error {
	return checkFieldsRecursive(reflect.ValueOf(c.EnvVars))
}

func checkFieldsRecursive(v reflect.Value) error {
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := v.Type().Field(i)
		if fieldType.Tag.Get("optional") == "true" {
			continue
		}
		if field.IsZero() {
			return fmt.Errorf("$%s must be set", fieldType.Tag.Get("env"))
		}
		if fieldType.Tag.Get("url") == "true" {
			if !govalidator.IsRequestURL(field.String()) {
				return fmt.Errorf("$%s must be an absolute URL, got %q", fieldType.Tag.Get("env"), field.String())
			}
		}
		if field.Kind() == reflect.Struct {
			if err := checkFieldsRecursive(field); err != nil {
				return err
			}
		}
	}
	return nil
}
