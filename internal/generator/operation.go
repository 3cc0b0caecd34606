package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Operation represents a file system operation that can be validated and executed.
//
// Validate checks if the operation would succeed without executing it.
// force=true allows replacing a file that already exists.
//
// Execute performs the actual operation. This should only be called after Validate succeeds.
//
// Description returns a human-readable description for output (e.g., "Write outer0/inner1/model.properties (812 bytes)").
type Operation interface {
	Validate(ctx context.Context, force bool) error
	Execute(ctx context.Context) error
	Description() string
}

// WriteFileOp writes a file with content.
//
// Validation behavior (nothing on disk changes):
//   - Requires the nearest existing ancestor of Path to be a directory
//   - Rejects a path that is a directory
//   - Rejects an existing file unless force=true
//   - Allows empty content (zero bytes) but rejects nil content
//
// Execution behavior:
//   - Creates missing parent directories
//   - Writes to a temp file in the target directory, then renames it over Path
type WriteFileOp struct {
	Path    string      // File path to write
	Content []byte      // File content (can be empty, must not be nil)
	Mode    fs.FileMode // File permissions (e.g., 0644)
}

func (op *WriteFileOp) Validate(ctx context.Context, force bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := op.MissingDirs(); err != nil {
		return err
	}

	if info, err := os.Stat(op.Path); err == nil {
		if info.IsDir() {
			return fmt.Errorf("path is a directory: %s", op.Path)
		}
		if !force {
			return fmt.Errorf("file already exists: %s", op.Path)
		}
	}

	if op.Content == nil {
		return fmt.Errorf("content is nil for file: %s", op.Path)
	}

	return nil
}

func (op *WriteFileOp) Execute(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(op.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return writeAtomic(op.Path, op.Content, op.mode())
}

// MissingDirs lists the parent directories Execute would create, deepest
// first. It fails when an existing ancestor is not a directory or cannot be
// inspected. Write permission is only checked by Execute.
func (op *WriteFileOp) MissingDirs() ([]string, error) {
	var missing []string
	dir := filepath.Dir(op.Path)
	for {
		info, err := os.Stat(dir)
		if err == nil {
			if !info.IsDir() {
				return nil, fmt.Errorf("cannot create directory under %s: not a directory", dir)
			}
			return missing, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("cannot check directory %s: %w", dir, err)
		}
		missing = append(missing, dir)

		parent := filepath.Dir(dir)
		if parent == dir {
			return missing, nil
		}
		dir = parent
	}
}

func (op *WriteFileOp) Description() string {
	return fmt.Sprintf("Write %s (%d bytes)", op.Path, len(op.Content))
}

func (op *WriteFileOp) mode() fs.FileMode {
	if op.Mode == 0 {
		return 0644
	}
	return op.Mode
}

// writeAtomic replaces path with content via a sibling temp file
func writeAtomic(path string, content []byte, mode fs.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	cleanup := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	if _, err := tmp.Write(content); err != nil {
		return cleanup(err)
	}
	if err := tmp.Chmod(mode); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
