package builder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/containerd/errdefs"
)

// Name of the external builder executable.
const command = "singularity"

// CommandRunner executes an external command, surfacing its exit status as
// the returned error. It is the invocation boundary, injectable for tests.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// Builder materializes container images by invoking the external singularity
// tool.
type Builder struct {
	Run CommandRunner
}

// Creates a [Builder] backed by the real invocation boundary.
func New() *Builder {
	return &Builder{Run: runCommand}
}

// Runs an external command with its output attached to the process streams.
func runCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Builds the target image from a definition file already written to the
// current directory.
//
// Fails before any invocation if the final image path already exists; no
// cleanup of the conflicting path is attempted. The external tool requires
// elevated privileges, so the invocation runs under sudo. The call blocks
// until the tool exits: image builds legitimately run for a long time, so
// no deadline is applied beyond the caller's context.
func (b *Builder) Build(ctx context.Context, recipePath string, target Target) error {
	final := target.FinalPath()
	if _, err := os.Stat(final); err == nil {
		return fmt.Errorf("image already exists at %s: %w", final, errdefs.ErrAlreadyExists)
	}

	args := []string{command, "build"}
	switch target.Format {
	case Ext3:
		args = append(args, "--writable")
	case Sandbox:
		args = append(args, "--sandbox")
	}
	args = append(args, final, recipePath)

	slog.Info("building image", "path", final, "format", target.Format.String(), "recipe", recipePath)

	if err := b.Run(ctx, "sudo", args...); err != nil {
		return fmt.Errorf("singularity build of %s failed: %w", final, err)
	}

	slog.Info("image built", "path", final)
	return nil
}
