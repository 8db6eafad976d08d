package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Palette holds the colors applied to the page for one theme.
type Palette struct {
	Background string `yaml:"background" json:"background"`
	Foreground string `yaml:"foreground" json:"foreground"`
	Card       string `yaml:"card" json:"card"`
	Accent     string `yaml:"accent" json:"accent"`
	Toggle     string `yaml:"toggle" json:"toggle"`
}

// Palettes holds the dark and light palettes.
type Palettes struct {
	Dark  Palette `yaml:"dark" json:"dark"`
	Light Palette `yaml:"light" json:"light"`
}

// DefaultPalettes returns the built-in palettes.
func DefaultPalettes() *Palettes {
	return &Palettes{
		Dark: Palette{
			Background: "#0f172a",
			Foreground: "#e2e8f0",
			Card:       "#1e293b",
			Accent:     "#38bdf8",
			Toggle:     "#64748b",
		},
		Light: Palette{
			Background: "#f8fafc",
			Foreground: "#0f172a",
			Card:       "#ffffff",
			Accent:     "#0284c7",
			Toggle:     "#0f172a",
		},
	}
}

// LoadPalettes reads palettes from a YAML file. Colors missing from the
// file keep their built-in values.
func LoadPalettes(path string) (*Palettes, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	palettes := DefaultPalettes()
	if err := yaml.Unmarshal(data, palettes); err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}
	return palettes, nil
}

// Select returns the palette for the given theme flag.
func (p *Palettes) Select(dark bool) Palette {
	if dark {
		return p.Dark
	}
	return p.Light
}
