package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Transaction stages file writes and commits them together. If any write
// fails, every file touched so far is put back the way it was.
type Transaction struct {
	ops       []*WriteFileOp
	snapshots []snapshot
	committed bool
}

// snapshot records a file's state before the transaction replaced it,
// and the parent directories the write created, deepest first.
type snapshot struct {
	path        string
	existed     bool
	content     []byte
	mode        fs.FileMode
	createdDirs []string
}

// NewTransaction creates a new file operation transaction
func NewTransaction() *Transaction {
	return &Transaction{
		ops: make([]*WriteFileOp, 0),
	}
}

// Add stages a write operation (doesn't write yet)
func (t *Transaction) Add(op *WriteFileOp) {
	t.ops = append(t.ops, op)
}

// Len returns the number of staged writes
func (t *Transaction) Len() int {
	return len(t.ops)
}

// Operations returns the staged writes as operations, for dry-run reporting
func (t *Transaction) Operations() []Operation {
	ops := make([]Operation, len(t.ops))
	for i, op := range t.ops {
		ops[i] = op
	}
	return ops
}

// Commit writes all staged files, replacing existing ones.
// If any write fails, previously written files are restored.
func (t *Transaction) Commit(ctx context.Context) error {
	if t.committed {
		return fmt.Errorf("transaction already committed")
	}

	for _, op := range t.ops {
		if err := op.Validate(ctx, true); err != nil {
			t.restore()
			return fmt.Errorf("failed to write file %s: %w", op.Path, err)
		}

		snap, err := takeSnapshot(op.Path)
		if err != nil {
			t.restore()
			return fmt.Errorf("failed to read existing file %s: %w", op.Path, err)
		}
		if snap.createdDirs, err = op.MissingDirs(); err != nil {
			t.restore()
			return fmt.Errorf("failed to write file %s: %w", op.Path, err)
		}
		t.snapshots = append(t.snapshots, snap)

		if err := op.Execute(ctx); err != nil {
			t.restore()
			return fmt.Errorf("failed to write file %s: %w", op.Path, err)
		}
	}

	t.committed = true
	t.snapshots = nil
	return nil
}

// Rollback restores touched files unless the transaction committed (for use in defer)
func (t *Transaction) Rollback() {
	if !t.committed {
		t.restore()
	}
}

// restore undoes snapshots newest first, removing created directories
// once their file is gone. Best effort, errors are ignored.
func (t *Transaction) restore() {
	for i := len(t.snapshots) - 1; i >= 0; i-- {
		s := t.snapshots[i]
		if s.existed {
			_ = writeAtomic(s.path, s.content, s.mode)
		} else {
			os.Remove(s.path)
		}
		for _, dir := range s.createdDirs {
			os.Remove(dir)
		}
	}
	t.snapshots = nil
}

func takeSnapshot(path string) (snapshot, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return snapshot{path: path}, nil
	}
	if err != nil {
		return snapshot{}, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return snapshot{}, err
	}
	return snapshot{path: path, existed: true, content: content, mode: info.Mode().Perm()}, nil
}
