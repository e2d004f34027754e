// Package levels loads YAML level documents: solid geometry, hazard volumes,
// collectibles, and the player spawn.
package levels

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var LevelsFS embed.FS

type SpawnSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type SolidSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type HazardSpec struct {
	Kind   string  `yaml:"kind"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	// Script names an optional tengo phase script driving this hazard.
	Script string `yaml:"script"`
}

type CollectibleSpec struct {
	Kind   string  `yaml:"kind"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Points int     `yaml:"points"`
}

type Level struct {
	Name   string  `yaml:"name"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	Spawn        SpawnSpec         `yaml:"spawn"`
	Solids       []SolidSpec       `yaml:"solids"`
	Hazards      []HazardSpec      `yaml:"hazards"`
	Collectibles []CollectibleSpec `yaml:"collectibles"`
}

// Load reads a level by file name, preferring the on-disk copy under levels/
// so edits show up without a rebuild, falling back to the embedded copy.
func Load(name string) (*Level, error) {
	data, err := os.ReadFile(filepath.Join("levels", name))
	if err != nil {
		data, err = LevelsFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("levels: read %s: %w", name, err)
		}
	}

	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal %s: %w", name, err)
	}

	if lvl.Width <= 0 || lvl.Height <= 0 {
		return nil, fmt.Errorf("levels: %s: bounds must be positive, got %gx%g", name, lvl.Width, lvl.Height)
	}
	for i := range lvl.Collectibles {
		c := &lvl.Collectibles[i]
		if c.Width <= 0 {
			c.Width = 16
		}
		if c.Height <= 0 {
			c.Height = 16
		}
	}
	return &lvl, nil
}
