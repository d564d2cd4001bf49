package builder

import (
	"fmt"

	"github.com/containerd/errdefs"
)

// Format of the image the external builder produces.
type Format int

const (
	Squashfs Format = iota // Compressed read-only image (default).
	Ext3                   // Writable ext3 image.
	Sandbox                // Chroot-style directory.
)

func (f Format) String() string {
	switch f {
	case Ext3:
		return "ext3"
	case Sandbox:
		return "sandbox"
	}
	return "squashfs"
}

// Filename suffix appended to the image stem for this format. Sandbox images
// are directories and carry no suffix.
func (f Format) Suffix() string {
	switch f {
	case Squashfs:
		return ".simg"
	case Ext3:
		return ".img"
	}
	return ""
}

// Parses an image format name.
func ParseFormat(name string) (Format, error) {
	switch name {
	case Squashfs.String():
		return Squashfs, nil
	case Ext3.String():
		return Ext3, nil
	case Sandbox.String():
		return Sandbox, nil
	}
	return 0, fmt.Errorf("unknown image format %q, must be %s, %s, or %s: %w",
		name, Squashfs, Ext3, Sandbox, errdefs.ErrInvalidArgument)
}

// Target names the image the external builder should produce.
type Target struct {
	Stem   string // Image filename without the format suffix.
	Format Format
}

// The image path the builder will create, relative to the recipe directory.
func (t Target) FinalPath() string {
	return t.Stem + t.Format.Suffix()
}
