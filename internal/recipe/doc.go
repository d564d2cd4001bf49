// Package recipe composes Singularity definition files.
//
// A definition file (the recipe) describes how to build a container image
// for a single build target: which base image to bootstrap from, which OS
// packages to install, how to invoke the build tool inside the container,
// and which modules the container loads at runtime. Composition is pure:
// identical inputs yield byte-identical documents, and all filesystem and
// process side effects are left to the caller.
//
// Sections always appear in the same fixed order: Bootstrap, %post,
// %runscript, %environment, %labels.
//
// Example usage:
//
//	doc := recipe.Compose(target, recipe.HierarchicalMNS, bs)
//	err := os.WriteFile(doc.RecipeFilename, []byte(doc.Render()), 0644)
package recipe
