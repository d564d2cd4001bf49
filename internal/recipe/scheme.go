package recipe

import (
	"fmt"

	"github.com/containerd/errdefs"
)

// ModuleScheme is the module naming scheme active for the build: the policy
// governing module file layout and load statements inside the container.
type ModuleScheme int

const (
	// EasyBuildMNS is the flat default scheme, one module per full name.
	EasyBuildMNS ModuleScheme = iota

	// HierarchicalMNS partitions the module tree by toolchain, so the
	// toolchain module must be loaded before the target module becomes
	// visible.
	HierarchicalMNS
)

// Scheme identifier as passed verbatim to the build tool's
// --module-naming-scheme flag.
func (s ModuleScheme) String() string {
	if s == HierarchicalMNS {
		return "HierarchicalMNS"
	}
	return "EasyBuildMNS"
}

// Parses a module naming scheme identifier.
//
// Unknown identifiers are rejected rather than silently treated as flat.
func ParseModuleScheme(name string) (ModuleScheme, error) {
	switch name {
	case EasyBuildMNS.String():
		return EasyBuildMNS, nil
	case HierarchicalMNS.String():
		return HierarchicalMNS, nil
	}
	return 0, fmt.Errorf("unknown module naming scheme %q, must be %s or %s: %w",
		name, EasyBuildMNS, HierarchicalMNS, errdefs.ErrInvalidArgument)
}

// Module search path baked into the container image for this scheme. The
// hierarchical scheme exposes only the core tree; everything else lives under
// the flat "all modules" tree.
func (s ModuleScheme) modulePath() string {
	if s == HierarchicalMNS {
		return "/app/modules/all/Core"
	}
	return "/app/modules/all/"
}
