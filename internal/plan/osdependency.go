package plan

import (
	"fmt"

	"github.com/containerd/errdefs"
	"gopkg.in/yaml.v3"
)

// An OS-level package requirement of a build target.
//
// A requirement is either a single package name or a group of alternative
// names to try in order (the same package under different distribution
// names). Both YAML shapes are accepted:
//
//	osdependencies:
//	  - libibverbs-dev
//	  - [libibverbs-dev, libibverbs-devel, rdma-core-devel]
type OSDependency struct {
	Names []string // Package names to try in order; a single name for the flat shape.
}

// Decodes either a scalar package name or a sequence of alternatives.
func (d *OSDependency) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var name string
		if err := value.Decode(&name); err != nil {
			return err
		}
		d.Names = []string{name}
		return nil

	case yaml.SequenceNode:
		return value.Decode(&d.Names)
	}

	return fmt.Errorf("os dependency must be a package name or a list of alternatives (line %d): %w",
		value.Line, errdefs.ErrInvalidArgument)
}
