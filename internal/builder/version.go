package builder

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/blang/semver/v4"
	"github.com/containerd/errdefs"
)

// Minimum supported version of the external builder. Recipe-driven builds
// need the 2.4 definition-file semantics.
var minVersion = semver.MustParse("2.4.0")

// Verifies the external builder is installed and recent enough, returning
// the detected version.
//
// The check must run before any recipe composition when an image build was
// requested, so a missing or outdated tool fails the run before anything is
// written.
func (b *Builder) Check(ctx context.Context) (string, error) {
	path, err := exec.LookPath(command)
	if err != nil {
		return "", fmt.Errorf("%s not found on the search path: %w", command, errdefs.ErrNotFound)
	}
	slog.Debug("builder located", "path", path)

	out, err := exec.CommandContext(ctx, command, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("querying %s version: %w", command, err)
	}

	v, err := parseVersion(string(out))
	if err != nil {
		return "", err
	}

	slog.Debug("builder version ok", "version", v.String())
	return v.String(), nil
}

// Extracts and gates the numeric version from the tool's version output.
//
// Singularity 2.3.1 and later report "x.y-dist"; the text before the first
// "-" is the version. Unparseable version text is a hard error, never a
// silent pass.
func parseVersion(out string) (semver.Version, error) {
	raw, _, _ := strings.Cut(strings.TrimSpace(out), "-")

	v, err := semver.ParseTolerant(raw)
	if err != nil {
		return semver.Version{}, fmt.Errorf("cannot parse %s version %q: %w", command, raw, errdefs.ErrFailedPrecondition)
	}

	if v.LT(minVersion) {
		return semver.Version{}, fmt.Errorf("%s version %s is below the minimum supported %s: %w",
			command, v, minVersion, errdefs.ErrFailedPrecondition)
	}

	return v, nil
}
