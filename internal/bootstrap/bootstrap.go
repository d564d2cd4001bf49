// Package bootstrap parses bootstrap option strings into structured
// bootstrap source descriptors.
//
// A bootstrap source is the base image a container build starts from:
// an image file on the local filesystem, an image hosted on a Singularity
// hub, or an image hosted on a Docker registry.
package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/containerd/errdefs"
)

// Kind of bootstrap source a recipe starts from.
type Kind int

const (
	LocalImage Kind = iota // Existing image file on the local filesystem.
	Shub                   // Image hosted on a Singularity hub.
	Docker                 // Image hosted on a Docker registry.
)

// Agent name as it appears in option strings and recipe text.
func (k Kind) String() string {
	switch k {
	case LocalImage:
		return "localimage"
	case Shub:
		return "shub"
	case Docker:
		return "docker"
	}
	return "unknown"
}

// Describes the base image a container build starts from.
//
// A Spec is immutable once parsed.LocalImage specs never carry a tag and
// their location always references an existing image file.
type Spec struct {
	Kind     Kind
	Location string // Image path (localimage) or image reference (shub, docker).
	Tag      string // Optional tag (shub, docker).
}

// Accepted option forms, quoted verbatim in format errors.
const acceptedForms = "localimage:<path>, shub:<image>[:<tag>], docker:<image>[:<tag>]"

// Parses and validates a bootstrap option string.
//
// The string must take one of three forms: "localimage:<path>",
// "shub:<image>[:<tag>]", or "docker:<image>[:<tag>]". For local images the
// path must end in ".img" or ".simg" and must exist; this existence check is
// the only filesystem access performed. Remote sources are not contacted.
func Resolve(raw string) (Spec, error) {
	fields := strings.Split(raw, ":")
	if len(fields) < 2 || len(fields) > 3 {
		return Spec{}, fmt.Errorf("invalid bootstrap spec %q, must be one of %s: %w", raw, acceptedForms, errdefs.ErrInvalidArgument)
	}

	switch fields[0] {
	case LocalImage.String():
		if len(fields) != 2 {
			return Spec{}, fmt.Errorf("invalid bootstrap spec %q, a local image takes no tag, must be one of %s: %w", raw, acceptedForms, errdefs.ErrInvalidArgument)
		}
		return resolveLocalImage(fields[1])

	case Shub.String():
		return resolveHosted(Shub, fields), nil

	case Docker.String():
		return resolveHosted(Docker, fields), nil
	}

	return Spec{}, fmt.Errorf("unknown bootstrap type %q, must be %s, %s, or %s: %w",
		fields[0], LocalImage, Shub, Docker, errdefs.ErrInvalidArgument)
}

// Validates a local base image path.
//
// The image format is recognized by its suffix; anything other than ".img"
// or ".simg" is rejected before the filesystem is consulted.
func resolveLocalImage(path string) (Spec, error) {
	if ext := filepath.Ext(path); ext != ".img" && ext != ".simg" {
		return Spec{}, fmt.Errorf("invalid base image extension %q for %s, must be .img or .simg: %w", ext, path, errdefs.ErrInvalidArgument)
	}

	if _, err := os.Stat(path); err != nil {
		return Spec{}, fmt.Errorf("base image at specified path does not exist: %s: %w", path, errdefs.ErrNotFound)
	}

	return Spec{Kind: LocalImage, Location: path}, nil
}

// Builds a Spec for a hub- or registry-hosted image, with an optional tag.
func resolveHosted(kind Kind, fields []string) Spec {
	spec := Spec{Kind: kind, Location: fields[1]}
	if len(fields) == 3 {
		spec.Tag = fields[2]
	}
	return spec
}
