// Package output prints styled terminal messages for the wren CLI.
//
//	output.Success("Wrote outer0/inner1/model.properties")
//	output.Info("Plan: 2 outer x 3 inner")
//	output.Step("outer0/inner0")
//	output.Error("template not found")
//
// Verbose messages print only after SetVerbose(true).
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	keyStyle     = lipgloss.NewStyle().Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)

	mu          sync.Mutex
	out         io.Writer = os.Stdout
	verboseMode bool
)

// SetOutput redirects all messages to w and returns the previous writer.
// A nil w restores stdout.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	if w == nil {
		w = os.Stdout
	}
	out = w
	return prev
}

// SetVerbose enables or disables Verbose messages. The CLI calls it for --verbose.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verboseMode = v
}

func emit(s string) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintln(out, s)
}

// Success prints a completed operation in green
func Success(msg string) {
	emit(successStyle.Render("✓ " + msg))
}

// Error prints a failure in red
func Error(msg string) {
	emit(errorStyle.Render("✗ " + msg))
}

// Warn prints something the user should look at but that did not fail
func Warn(msg string) {
	emit(warnStyle.Render("! " + msg))
}

// Info prints a status update in cyan
func Info(msg string) {
	emit(infoStyle.Render("ℹ  " + msg))
}

// Step prints an indented sub-item in gray
func Step(msg string) {
	emit(stepStyle.Render("   " + msg))
}

// Verbose prints a debug message when verbose mode is enabled
func Verbose(msg string) {
	mu.Lock()
	enabled := verboseMode
	mu.Unlock()
	if enabled {
		emit(stepStyle.Render("· " + msg))
	}
}

// Header prints a section title
func Header(title string) {
	emit(headerStyle.Render(title))
}

// KeyValues prints aligned key/value rows. Keys are shown trimmed.
func KeyValues(rows [][2]string) {
	width := 0
	for _, r := range rows {
		if w := len(strings.TrimSpace(r[0])); w > width {
			width = w
		}
	}
	for _, r := range rows {
		key := strings.TrimSpace(r[0])
		pad := strings.Repeat(" ", width-len(key))
		emit("   " + keyStyle.Render(key) + pad + "  " + r[1])
	}
}

// Raw writes s unstyled, for content such as diffs that carry their own styling
func Raw(s string) {
	mu.Lock()
	defer mu.Unlock()
	_, _ = io.WriteString(out, s)
}
