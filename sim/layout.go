// Typed facility layout configuration, loaded from YAML and validated at
// construction time. Replaces permissive dictionary-style layout access with
// named fields.

package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SpotTypeWeights holds the relative frequency of each spot type stamped onto
// non-aisle cells at facility build time. Weights need not be pre-normalized;
// they are normalized by their sum during validation.
type SpotTypeWeights struct {
	Standard float64 `yaml:"standard"`
	Handicap float64 `yaml:"handicap"`
	Electric float64 `yaml:"electric"`
}

// Sum returns the total weight.
func (w SpotTypeWeights) Sum() float64 {
	return w.Standard + w.Handicap + w.Electric
}

// LayoutConfig describes the facility geometry consumed at initialization.
type LayoutConfig struct {
	Name    string `yaml:"name"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Floors  int    `yaml:"floors"`

	SpotTypes SpotTypeWeights `yaml:"spot_types"`

	// Entrances double as the default routing start and as the inter-floor
	// connector cells. Exits and aisles are excluded from spot placement.
	Entrances []Location `yaml:"entrances"`
	Exits     []Location `yaml:"exits"`
	Aisles    []Location `yaml:"aisles"`
}

// DefaultLayout returns the stock 20x15 single-floor facility: one entrance,
// one exit, three horizontal aisle rows, and an 80/10/10 spot-type split.
func DefaultLayout() LayoutConfig {
	aisles := make([]Location, 0, 60)
	for x := 0; x < 20; x++ {
		for _, y := range []int{3, 7, 11} {
			aisles = append(aisles, Location{X: x, Y: y})
		}
	}
	return LayoutConfig{
		Name:      "default",
		Width:     20,
		Height:    15,
		Floors:    1,
		SpotTypes: SpotTypeWeights{Standard: 0.8, Handicap: 0.1, Electric: 0.1},
		Entrances: []Location{{X: 0, Y: 7}},
		Exits:     []Location{{X: 19, Y: 7}},
		Aisles:    aisles,
	}
}

// LayoutPreset returns a built-in named layout. Available presets:
//
//	default — the stock 20x15 single-floor facility
//	compact — a 10x8 street-level lot with a single aisle row
//	garage  — a 12x10 three-floor garage with two entrance ramps
func LayoutPreset(name string) (LayoutConfig, error) {
	switch name {
	case "default":
		return DefaultLayout(), nil
	case "compact":
		aisles := make([]Location, 0, 10)
		for x := 0; x < 10; x++ {
			aisles = append(aisles, Location{X: x, Y: 4})
		}
		return LayoutConfig{
			Name:      "compact",
			Width:     10,
			Height:    8,
			Floors:    1,
			SpotTypes: SpotTypeWeights{Standard: 0.9, Handicap: 0.05, Electric: 0.05},
			Entrances: []Location{{X: 0, Y: 4}},
			Exits:     []Location{{X: 9, Y: 4}},
			Aisles:    aisles,
		}, nil
	case "garage":
		aisles := make([]Location, 0, 24)
		for x := 0; x < 12; x++ {
			for _, y := range []int{3, 6} {
				aisles = append(aisles, Location{X: x, Y: y})
			}
		}
		return LayoutConfig{
			Name:      "garage",
			Width:     12,
			Height:    10,
			Floors:    3,
			SpotTypes: SpotTypeWeights{Standard: 0.7, Handicap: 0.15, Electric: 0.15},
			Entrances: []Location{{X: 0, Y: 3}, {X: 11, Y: 6}},
			Exits:     []Location{{X: 0, Y: 6}},
			Aisles:    aisles,
		}, nil
	}
	return LayoutConfig{}, fmt.Errorf("unknown layout preset %q (available: default, compact, garage)", name)
}

// Validate checks the layout for construction-time faults. A fault here is
// fatal for facility construction: nothing is built from an invalid layout.
func (c *LayoutConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("dimensions must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Floors < 1 {
		return fmt.Errorf("floors must be at least 1, got %d", c.Floors)
	}
	if len(c.Entrances) == 0 {
		return fmt.Errorf("layout needs at least one entrance: entrances are the default routing start and, on multi-floor layouts, the inter-floor connectors")
	}
	if c.SpotTypes.Sum() <= 0 {
		return fmt.Errorf("spot type weights must sum to a positive value, got %v", c.SpotTypes.Sum())
	}
	for _, e := range c.Entrances {
		if !c.inBounds(e) {
			return fmt.Errorf("entrance %v outside %dx%d grid", e, c.Width, c.Height)
		}
	}
	for _, e := range c.Exits {
		if !c.inBounds(e) {
			return fmt.Errorf("exit %v outside %dx%d grid", e, c.Width, c.Height)
		}
	}
	for _, a := range c.Aisles {
		if !c.inBounds(a) {
			return fmt.Errorf("aisle cell %v outside %dx%d grid", a, c.Width, c.Height)
		}
	}
	return nil
}

func (c *LayoutConfig) inBounds(l Location) bool {
	return l.X >= 0 && l.X < c.Width && l.Y >= 0 && l.Y < c.Height
}

// isBlocked reports whether the cell is excluded from spot placement
// (aisle, entrance or exit cells stay routable but hold no spot).
func (c *LayoutConfig) isBlocked(l Location) bool {
	for _, a := range c.Aisles {
		if a == l {
			return true
		}
	}
	for _, e := range c.Entrances {
		if e == l {
			return true
		}
	}
	for _, e := range c.Exits {
		if e == l {
			return true
		}
	}
	return false
}

// LoadLayoutConfig reads and validates a layout YAML file.
func LoadLayoutConfig(path string) (LayoutConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LayoutConfig{}, fmt.Errorf("failed to read layout file: %w", err)
	}
	var cfg LayoutConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return LayoutConfig{}, fmt.Errorf("failed to parse layout file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return LayoutConfig{}, fmt.Errorf("invalid layout: %w", err)
	}
	return cfg, nil
}
