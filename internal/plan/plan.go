package plan

import (
	"fmt"
	"os"

	"github.com/containerd/errdefs"
	"gopkg.in/yaml.v3"
)

// NoToolchain is the explicit toolchain name marking a build target compiled
// without a toolchain. Targets without a toolchain carry this marker rather
// than an empty name, so "no toolchain" is never confused with an unset
// field.
const NoToolchain = "dummy"

// Compiler toolchain a build target was resolved against.
type Toolchain struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// A single resolved build spec from the build plan.
type Spec struct {
	Name           string         `yaml:"name"`
	Version        string         `yaml:"version"`
	VersionSuffix  string         `yaml:"versionsuffix"`
	Toolchain      Toolchain      `yaml:"toolchain"`
	OSDependencies []OSDependency `yaml:"osdependencies"`
}

// Returns true if the target was resolved against a real toolchain.
func (s Spec) HasToolchain() bool {
	return s.Toolchain.Name != NoToolchain
}

// An ordered list of resolved build specs.
type Plan []Spec

// Returns the primary build target: the first entry of the plan. The
// remaining entries are dependencies resolved on its behalf and do not feed
// recipe generation.
func (p Plan) Target() Spec {
	return p[0]
}

// Reads and decodes a build plan file.
//
// The plan must contain at least one entry. Entries without a toolchain are
// normalized to the [NoToolchain] marker.
func Load(path string) (Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("build plan %s does not exist: %w", path, errdefs.ErrNotFound)
		}
		return nil, fmt.Errorf("reading build plan %s: %w", path, err)
	}

	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("decoding build plan %s: %v: %w", path, err, errdefs.ErrInvalidArgument)
	}

	if len(plan) == 0 {
		return nil, fmt.Errorf("build plan %s is empty: %w", path, errdefs.ErrInvalidArgument)
	}

	for i := range plan {
		if plan[i].Toolchain.Name == "" {
			plan[i].Toolchain = Toolchain{Name: NoToolchain}
		}
	}

	return plan, nil
}
