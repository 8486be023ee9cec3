// pkg/manifest/manifest.go - the package sets the bootstrap installs.

package manifest

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed packages.yaml
var defaultPackages []byte

// PackageSet lists the system and Python packages a bootstrap run installs.
type PackageSet struct {
	Pacman []string `yaml:"pacman"`
	Pip    []string `yaml:"pip"`
}

// Default returns the built-in package set.
func Default() (PackageSet, error) {
	var set PackageSet
	if err := yaml.Unmarshal(defaultPackages, &set); err != nil {
		return PackageSet{}, fmt.Errorf("failed to parse embedded package set: %w", err)
	}
	return set, nil
}

// Merge returns a copy of the set with non-empty override lists applied.
// An empty override list keeps the corresponding default.
func (s PackageSet) Merge(pacman, pip []string) PackageSet {
	merged := s
	if len(pacman) > 0 {
		merged.Pacman = pacman
	}
	if len(pip) > 0 {
		merged.Pip = pip
	}
	return merged
}
