package generator

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"text/template"
)

// Renderer renders small templates such as output path patterns, caching
// parsed templates by name.
type Renderer struct {
	funcMap template.FuncMap
	cache   map[string]*template.Template
	mu      sync.RWMutex
}

// NewRenderer creates a renderer with built-in helper functions
func NewRenderer() *Renderer {
	return &Renderer{
		funcMap: defaultFuncMap(),
		cache:   make(map[string]*template.Template),
	}
}

// RenderString renders a template from a string.
// The name is used in error messages; parsed templates are cached by their
// text. Missing map keys are errors.
func (r *Renderer) RenderString(name, templateStr string, data any) ([]byte, error) {
	r.mu.RLock()
	tmpl, ok := r.cache[templateStr]
	r.mu.RUnlock()

	if !ok {
		parsed, err := template.New(name).Funcs(r.funcMap).Option("missingkey=error").Parse(templateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template '%s': %w", name, err)
		}
		r.mu.Lock()
		r.cache[templateStr] = parsed
		r.mu.Unlock()
		tmpl = parsed
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render template '%s': %w", name, err)
	}
	return buf.Bytes(), nil
}

// RenderPath renders a path pattern and cleans the result
func (r *Renderer) RenderPath(pattern string, data any) (string, error) {
	out, err := r.RenderString("output path", pattern, data)
	if err != nil {
		return "", err
	}
	path := strings.TrimSpace(string(out))
	if path == "" {
		return "", fmt.Errorf("path pattern %q rendered an empty path", pattern)
	}
	return filepath.Clean(path), nil
}

func defaultFuncMap() template.FuncMap {
	return template.FuncMap{
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
		"trim":  strings.TrimSpace,
		"join":  joinPath,
		"base":  filepath.Base,
		"dir":   filepath.Dir,
		"pad":   Pad,
	}
}

// Pad left-pads a numeric string with zeros to width.
// Example: {{ pad 3 .Inner }} → 007
func Pad(width int, s string) (string, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return "", fmt.Errorf("pad: %q is not a number", s)
	}
	return fmt.Sprintf("%0*d", width, n), nil
}

func joinPath(elem ...string) string {
	return filepath.Join(elem...)
}
