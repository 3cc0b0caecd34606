package propgen

import "fmt"

// ResourceError reports a template that cannot be read or an output path
// that cannot be written.
type ResourceError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("cannot %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

// FormatError reports a template line that is not a key/value pair
type FormatError struct {
	Path string // Template path (empty when parsing in-memory lines)
	Line int    // 1-based line number
	Text string // Offending line without its terminator
}

func (e *FormatError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s:%d: missing '=' in %q", e.Path, e.Line, e.Text)
	}
	return fmt.Sprintf("line %d: missing '=' in %q", e.Line, e.Text)
}

// ConfigurationError reports caller input that makes substitution impossible
type ConfigurationError struct {
	Field   string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
