package commands

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/samber/oops"

	"github.com/simonhull/firebird-suite/wren/internal/generator"
	"github.com/simonhull/firebird-suite/wren/internal/output"
)

// pathData is the data available to output path and hook argument templates
type pathData struct {
	Outer    string
	Inner    string
	BasePath string
}

// parseSets turns repeated --set key=value flags into an override map.
// The value may itself contain '='.
func parseSets(sets []string) (map[string]string, error) {
	overrides := make(map[string]string, len(sets))
	for _, s := range sets {
		key, value, ok := strings.Cut(s, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, oops.Errorf("invalid --set %q: want key=value", s)
		}
		overrides[strings.TrimSpace(key)] = value
	}
	return overrides, nil
}

// showDiff prints the change op would make to the file on disk
func showDiff(op *generator.WriteFileOp) error {
	old, err := os.ReadFile(op.Path)
	oldName := op.Path
	if errors.Is(err, fs.ErrNotExist) {
		old = nil
		oldName = "/dev/null"
	} else if err != nil {
		return oops.Wrapf(err, "reading %s", op.Path)
	}

	diff := generator.Diff(oldName, op.Path, old, op.Content, nil)
	if diff == "" {
		output.Step("unchanged: " + op.Path)
		return nil
	}
	output.Raw(diff)
	return nil
}

// shownError marks an error already printed for the user
type shownError struct {
	err error
}

func (e *shownError) Error() string { return e.err.Error() }
func (e *shownError) Unwrap() error { return e.err }

// fail prints err for the user and hands it back for cobra
func fail(err error) error {
	output.Error(err.Error())
	return &shownError{err: err}
}

// report prints errors raised by cobra itself, such as a missing flag
func report(err error) {
	var shown *shownError
	if err != nil && !errors.As(err, &shown) {
		output.Error(err.Error())
	}
}
