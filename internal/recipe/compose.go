package recipe

import (
	"path"
	"strings"

	"github.com/alessio/shellescape"
	"github.com/hpcforge/singen/internal/bootstrap"
	"github.com/hpcforge/singen/internal/plan"
)

// Install path for modules built inside the container.
const installPath = "/app/"

// Scratch prefix for build artifacts inside the container, cleaned up before
// the image is finalized.
const scratchPath = "/scratch"

// Composes the definition file for the given build target.
//
// The document's sections, recipe filename, and image stem are all derived
// deterministically from the inputs. Compose performs no I/O; persisting the
// document and invoking the image builder are the caller's responsibility.
func Compose(target plan.Spec, scheme ModuleScheme, bs bootstrap.Spec) Document {
	easyconfig, recipeName := filenames(target)

	// The leading "Singularity" token is dropped for the image name.
	_, imageStem, _ := strings.Cut(recipeName, ".")

	return Document{
		Bootstrap:      bootstrapSection(bs),
		Post:           postSection(target, scheme, easyconfig),
		Runscript:      runscriptSection(),
		Environment:    environmentSection(target, scheme),
		Labels:         labelsSection(),
		RecipeFilename: recipeName,
		ImageStem:      imageStem,
	}
}

// Derives the easyconfig filename the container build invokes and the
// definition-file name.
//
// Targets with a toolchain embed the toolchain name and version:
// "<name>-<version>-<tcname>-<tcversion><suffix>". Targets without one use
// "<name>-<version><suffix>".
func filenames(target plan.Spec) (easyconfig, recipeName string) {
	base := target.Name + "-" + target.Version
	if target.HasToolchain() {
		base += "-" + target.Toolchain.Name + "-" + target.Toolchain.Version
	}
	base += target.VersionSuffix

	return base + ".eb", "Singularity." + base
}

// The two-line header selecting the base image.
func bootstrapSection(bs bootstrap.Spec) string {
	from := bs.Location
	if bs.Tag != "" {
		from += ":" + bs.Tag
	}
	return "Bootstrap: " + bs.Kind.String() + "\n" + "From: " + from + "\n"
}

// The %post section: OS package installs, build tool upgrade, and the build
// invocation itself.
//
// Package installs are best-effort; each generated line tolerates failure of
// the underlying install command so that a package known under a different
// name on this distribution does not abort the container build.
func postSection(target plan.Spec, scheme ModuleScheme, easyconfig string) string {
	lines := []string{"%post"}

	for _, pkg := range installPackages(target.OSDependencies) {
		lines = append(lines, "yum install -y "+shellescape.Quote(pkg)+" || true")
	}

	lines = append(lines,
		"pip install -U easybuild",
		"su - easybuild",
		buildCommand(easyconfig, scheme),
		"rm -rf /scratch/tmp/* /scratch/build /scratch/sources /scratch/ebfiles_repo",
		"exit",
	)

	return "\n" + strings.Join(lines, "\n") + "\n"
}

// Flattens osdependencies into the ordered list of packages to attempt.
//
// A flat dependency list contributes one package per entry. A nested group
// of alternative names contributes every alternative of the group, each
// installed best-effort so that whichever name this distribution knows wins.
func installPackages(deps []plan.OSDependency) []string {
	if len(deps) == 0 {
		return nil
	}

	if len(deps[0].Names) > 1 {
		return deps[0].Names
	}

	pkgs := make([]string, 0, len(deps))
	for _, dep := range deps {
		if len(dep.Names) > 0 {
			pkgs = append(pkgs, dep.Names[0])
		}
	}
	return pkgs
}

// The build tool invocation for the derived easyconfig.
func buildCommand(easyconfig string, scheme ModuleScheme) string {
	return strings.Join([]string{
		"eb", shellescape.Quote(easyconfig),
		"--robot",
		"--installpath=" + installPath,
		"--prefix=" + scratchPath,
		"--tmpdir=" + scratchPath + "/tmp",
		"--module-naming-scheme=" + scheme.String(),
	}, " ")
}

// The fixed %runscript section: forward all container arguments to a shell
// evaluation.
func runscriptSection() string {
	return "\n%runscript\neval \"$@\"\n"
}

// The %environment section: module search path and the load statements that
// bring the target (and, for hierarchical layouts, its toolchain) into scope
// when the container runs.
func environmentSection(target plan.Spec, scheme ModuleScheme) string {
	lines := []string{
		"%environment",
		"source /etc/profile",
		"module use " + scheme.modulePath(),
	}

	switch {
	case target.HasToolchain() && scheme == HierarchicalMNS:
		// The toolchain module must be loaded first to expose the target.
		lines = append(lines,
			"module load "+path.Join(target.Toolchain.Name, target.Toolchain.Version),
			"module load "+path.Join(target.Name, target.Version+target.VersionSuffix),
		)

	case target.HasToolchain():
		full := target.Version + "-" + target.Toolchain.Name + "-" + target.Toolchain.Version + target.VersionSuffix
		lines = append(lines, "module load "+path.Join(target.Name, full))

	default:
		// Without a toolchain the load statement is scheme-independent.
		lines = append(lines, "module load "+path.Join(target.Name, target.Version+target.VersionSuffix))
	}

	return "\n" + strings.Join(lines, "\n") + "\n"
}

// The %labels section header. The body is intentionally empty.
func labelsSection() string {
	return "\n%labels\n"
}
