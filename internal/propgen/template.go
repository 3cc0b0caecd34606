package propgen

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
)

// Template is a loaded properties template. It is never modified after load.
type Template struct {
	Path     string
	Lines    []string      // Raw lines including terminators
	Defaults *ParameterSet // Key/value pairs in file order
}

// LoadTemplate reads and parses a template file
func LoadTemplate(path string) (*Template, error) {
	lines, err := ReadTemplate(path)
	if err != nil {
		return nil, err
	}

	params, err := parseParameters(path, lines)
	if err != nil {
		return nil, err
	}

	return &Template{
		Path:     path,
		Lines:    lines,
		Defaults: params,
	}, nil
}

// ReadTemplate returns every line of the template verbatim, including the
// trailing newline.
func ReadTemplate(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ResourceError{Op: "read", Path: path, Err: err}
	}
	defer f.Close()

	var lines []string
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			lines = append(lines, line)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ResourceError{Op: "read", Path: path, Err: err}
		}
	}

	return lines, nil
}

// ParseParameters builds the ordered key/value mapping for template lines.
//
// Each line is split on its first '='. The key keeps any whitespace before
// the '=' so that "a = b" yields the key "a ". The value drops the line
// terminator and the single space that follows the '='.
func ParseParameters(lines []string) (*ParameterSet, error) {
	return parseParameters("", lines)
}

func parseParameters(path string, lines []string) (*ParameterSet, error) {
	params := NewParameterSet()
	for i, line := range lines {
		text := stripTerminator(line)
		sep := strings.IndexByte(text, '=')
		if sep < 0 {
			return nil, &FormatError{Path: path, Line: i + 1, Text: text}
		}
		params.Set(text[:sep], strings.TrimPrefix(text[sep+1:], " "))
	}
	return params, nil
}

func stripTerminator(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
