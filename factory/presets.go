/*
presets.go - Built-in calculator presets

PURPOSE:
  Ships a handful of ready-made assumption sets so the calculator is
  useful before anyone saves a scenario: the civil-service defaults,
  a final-salary scheme, and a couple of instructive extremes.

  Presets live in an embedded YAML file so tweaking the numbers never
  touches Go code.

SEE ALSO:
  - presets.yaml: The data
  - assumptions.go: The AssumptionsJSON schema the YAML maps onto
*/
package factory

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetsYAML []byte

// Preset is a built-in, read-only scenario.
type Preset struct {
	ID          string          `yaml:"id" json:"id"`
	Name        string          `yaml:"name" json:"name"`
	Description string          `yaml:"description" json:"description"`
	Assumptions AssumptionsJSON `yaml:"assumptions" json:"assumptions"`
}

// LoadPresets parses the embedded preset file.
func LoadPresets() ([]Preset, error) {
	var doc struct {
		Presets []Preset `yaml:"presets"`
	}
	if err := yaml.Unmarshal(presetsYAML, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse embedded presets: %w", err)
	}
	return doc.Presets, nil
}
