package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
)

//go:embed *.json
var LevelsFS embed.FS

// Level describes a rectangular arena on the X/Z plane centered on the
// origin. Width runs along X and Depth along Z.
type Level struct {
	Name     string   `json:"name"`
	Width    float64  `json:"width"`
	Depth    float64  `json:"depth"`
	Border   bool     `json:"border"`
	Entities []Entity `json:"entities,omitempty"`
}

type Entity struct {
	Type string  `json:"type"`
	Name string  `json:"name,omitempty"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
	Yaw  float64 `json:"yaw,omitempty"`
	// Width and Depth size walls and box hazards.
	Width    float64                `json:"width,omitempty"`
	Depth    float64                `json:"depth,omitempty"`
	Props    map[string]interface{} `json:"props,omitempty"`
	Children []Child                `json:"children,omitempty"`
}

// Child is a named node placed relative to its parent entity.
type Child struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
}

// LoadLevelFromFS reads an embedded level. The .json extension is optional.
func LoadLevelFromFS(name string) (*Level, error) {
	if path.Ext(name) == "" {
		name += ".json"
	}
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	return &lvl, nil
}

// Names lists the embedded level files.
func Names() ([]string, error) {
	return fs.Glob(LevelsFS, "*.json")
}
