package cli

import (
	"context"
	"fmt"

	"github.com/hpcforge/singen/internal/builder"
)

// Represents the 'singen check' command.
type CheckCmd struct{}

// Executes the check command.
//
// Runs the builder capability check on its own and prints the detected
// version.
func (c *CheckCmd) Run(ctx context.Context) error {
	version, err := builder.New().Check(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("singularity %s\n", version)
	return nil
}
