package balancer

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Manifest is a balance request loaded from a TOML file:
//
//	[balancer]
//	inputs  = [480, 480, 480]
//	outputs = [45, 45, 45]
//
// Order matters in both lists; it determines node numbering and the greedy
// matching, exactly as when calling [Design] directly.
type Manifest struct {
	Inputs  []int `toml:"inputs"`
	Outputs []int `toml:"outputs"`
}

type manifestFile struct {
	Balancer Manifest `toml:"balancer"`
}

// LoadManifest reads and validates a balance manifest.
// Flows must be non-negative and both lists non-empty; the input/output
// total check is left to [Design] so the error carries both totals.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file manifestFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	m := file.Balancer
	if len(m.Inputs) == 0 {
		return nil, fmt.Errorf("%s: balancer manifest has no inputs", path)
	}
	if len(m.Outputs) == 0 {
		return nil, fmt.Errorf("%s: balancer manifest has no outputs", path)
	}
	for _, f := range m.Inputs {
		if f < 0 {
			return nil, fmt.Errorf("%s: negative input flow %d", path, f)
		}
	}
	for _, f := range m.Outputs {
		if f < 0 {
			return nil, fmt.Errorf("%s: negative output flow %d", path, f)
		}
	}
	return &m, nil
}
