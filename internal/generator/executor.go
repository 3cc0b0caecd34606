package generator

import (
	"context"
	"fmt"
	"io"
	"os"
)

// dirCreator is implemented by operations that create parent directories.
type dirCreator interface {
	MissingDirs() ([]string, error)
}

// ExecuteOptions configures execution behavior
type ExecuteOptions struct {
	DryRun bool
	Force  bool
	Writer io.Writer // Where to write progress lines (defaults to os.Stdout)
}

// Execute validates every operation, then runs them in order. Nothing is
// executed when any validation fails.
func Execute(ctx context.Context, ops []Operation, opts ExecuteOptions) error {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	for _, op := range ops {
		if err := op.Validate(ctx, opts.Force); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}

	for _, op := range ops {
		if opts.DryRun {
			fmt.Fprintf(opts.Writer, "✓ [DRY RUN] %s\n", op.Description())
			reportMissingDirs(opts.Writer, op)
			continue
		}
		if err := op.Execute(ctx); err != nil {
			return fmt.Errorf("execution failed: %w", err)
		}
		fmt.Fprintf(opts.Writer, "✓ %s\n", op.Description())
	}

	return nil
}

// reportMissingDirs lists, shallowest first, the directories a dry run
// would have created.
func reportMissingDirs(w io.Writer, op Operation) {
	dc, ok := op.(dirCreator)
	if !ok {
		return
	}
	dirs, err := dc.MissingDirs()
	if err != nil {
		return
	}
	for i := len(dirs) - 1; i >= 0; i-- {
		fmt.Fprintf(w, "  + mkdir %s\n", dirs[i])
	}
}
