package recipe

import "github.com/opencontainers/go-digest"

// Document is a composed definition file, held as ordered named sections.
//
// Sections are rendered in the fixed order Bootstrap, Post, Runscript,
// Environment, Labels regardless of the inputs that produced them. Absent
// content yields a section header with an empty body, never an omitted
// header.
type Document struct {
	Bootstrap   string
	Post        string
	Runscript   string
	Environment string
	Labels      string

	// RecipeFilename is the derived definition-file name, e.g.
	// "Singularity.R-3.3.1-intel-2017a".
	RecipeFilename string

	// ImageStem is the image filename without a format suffix: the recipe
	// filename with the leading "Singularity" token dropped.
	ImageStem string
}

// Returns the full definition-file text.
func (d Document) Render() string {
	return d.Bootstrap + d.Post + d.Runscript + d.Environment + d.Labels
}

// Returns the content digest of the rendered document. Useful for asserting
// that regeneration reproduced the same recipe.
func (d Document) Digest() digest.Digest {
	return digest.FromString(d.Render())
}
