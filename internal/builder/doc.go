// Package builder drives the external singularity tool to materialize
// container images from definition files.
//
// A [Builder] wraps the invocation boundary: the capability check locates
// the tool on the search path and gates on its reported version, and Build
// invokes it with the argument shape matching the requested image format.
// The builder's output is surfaced verbatim; only its exit status is
// interpreted.
//
// Example usage:
//
//	b := builder.New()
//	if _, err := b.Check(ctx); err != nil {
//	    return err
//	}
//
//	err := b.Build(ctx, "Singularity.R-3.3.1-intel-2017a", builder.Target{
//	    Stem:   "R-3.3.1-intel-2017a",
//	    Format: builder.Squashfs,
//	})
package builder
