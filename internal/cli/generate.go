package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/containerd/errdefs"
	"github.com/hpcforge/singen/internal/bootstrap"
	"github.com/hpcforge/singen/internal/builder"
	"github.com/hpcforge/singen/internal/paths"
	"github.com/hpcforge/singen/internal/plan"
	"github.com/hpcforge/singen/internal/recipe"
)

// Represents the 'singen generate' command.
type GenerateCmd struct {
	Plan string `arg:"" help:"Path to the resolved build plan (YAML)." placeholder:"PLAN"`

	Bootstrap    string `required:"" help:"Bootstrap source: localimage:<path>, shub:<image>[:<tag>], or docker:<image>[:<tag>]." placeholder:"SPEC"`
	RecipePath   string `help:"Directory the definition file is written to." placeholder:"DIR"`
	ModuleScheme string `default:"EasyBuildMNS" help:"Active module naming scheme." placeholder:"NAME"`
	BuildImage   bool   `help:"Build the container image after writing the definition file."`
	ImageFormat  string `default:"squashfs" help:"Image format: squashfs, ext3, or sandbox."`
	ImageName    string `help:"Override the derived image filename." placeholder:"NAME"`
}

// Executes the generate command.
//
// Processes the primary build target of the plan to completion: validate the
// recipe directory, gate on the external builder when an image build was
// requested, resolve the bootstrap source, compose the definition file,
// persist it, and optionally build the image. Any failure aborts the run;
// nothing is written before validation passes.
func (c *GenerateCmd) Run(ctx context.Context) error {
	scheme, err := recipe.ParseModuleScheme(c.ModuleScheme)
	if err != nil {
		return err
	}

	format, err := builder.ParseFormat(c.ImageFormat)
	if err != nil {
		return err
	}

	recipeDir, err := c.recipeDir()
	if err != nil {
		return err
	}

	// The capability check runs strictly before any composition, so a
	// missing or outdated builder fails the run before anything is written.
	bld := builder.New()
	if c.BuildImage {
		version, err := bld.Check(ctx)
		if err != nil {
			return err
		}
		slog.Info("singularity version is supported", "version", version)
	}

	bs, err := bootstrap.Resolve(c.Bootstrap)
	if err != nil {
		return err
	}

	buildPlan, err := plan.Load(c.Plan)
	if err != nil {
		return err
	}

	doc := recipe.Compose(buildPlan.Target(), scheme, bs)

	if err := writeRecipe(recipeDir, doc); err != nil {
		return err
	}

	if !c.BuildImage {
		return nil
	}

	stem := doc.ImageStem
	if c.ImageName != "" {
		stem = c.ImageName
	}

	return bld.Build(ctx, doc.RecipeFilename, builder.Target{Stem: stem, Format: format})
}

// Returns the validated directory the recipe is written to.
//
// An explicitly supplied path must already exist and be a directory. The
// default location is created on demand.
func (c *GenerateCmd) recipeDir() (string, error) {
	if c.RecipePath == "" {
		dir := paths.Recipes()
		if err := os.MkdirAll(dir, paths.DefaultDirMode); err != nil {
			return "", fmt.Errorf("creating recipe directory %s: %w", dir, err)
		}
		return dir, nil
	}

	info, err := os.Stat(c.RecipePath)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("invalid recipe path %q, must be an existing directory: %w",
			c.RecipePath, errdefs.ErrInvalidArgument)
	}
	return c.RecipePath, nil
}

// Serializes recipe persistence: changing into the recipe directory mutates
// process-wide state, so concurrent generations must not interleave.
var workdirMu sync.Mutex

// Changes into the recipe directory and writes the definition file there.
//
// The image builder runs relative to the same directory, which is why the
// directory change persists past the write.
func writeRecipe(dir string, doc recipe.Document) error {
	workdirMu.Lock()
	defer workdirMu.Unlock()

	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("changing into recipe directory %s: %w", dir, err)
	}

	if err := os.WriteFile(doc.RecipeFilename, []byte(doc.Render()), paths.DefaultFileMode); err != nil {
		return fmt.Errorf("writing definition file %s: %w", doc.RecipeFilename, err)
	}

	slog.Info("wrote definition file",
		"path", filepath.Join(dir, doc.RecipeFilename),
		"digest", doc.Digest().String(),
	)
	return nil
}
