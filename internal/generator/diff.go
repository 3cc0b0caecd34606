package generator

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("green"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("red"))
	hunkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
)

// DiffOptions configures how diffs are generated and displayed.
type DiffOptions struct {
	// ContextLines is the number of unchanged lines to show around changes.
	// Default: 2
	ContextLines int

	// Width truncates long lines. Default: terminal width, or 80.
	Width int
}

type diffOp int

const (
	opEqual diffOp = iota
	opAdded
	opRemoved
)

type diffLine struct {
	op     diffOp
	text   string
	oldPos int // old lines consumed before this line
	newPos int // new lines consumed before this line
}

// Diff returns a unified diff between old and newer, or "" when they are
// identical. Lines are compared whole, which suits properties files where
// each line is one key.
func Diff(oldPath, newPath string, old, newer []byte, opts *DiffOptions) string {
	if opts == nil {
		opts = &DiffOptions{}
	}
	context := opts.ContextLines
	if context <= 0 {
		context = 2
	}
	width := opts.Width
	if width <= 0 {
		width = terminalWidth()
	}

	script := editScript(splitLines(string(old)), splitLines(string(newer)))

	var changed []int
	for i, l := range script {
		if l.op != opEqual {
			changed = append(changed, i)
		}
	}
	if len(changed) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("--- "+oldPath) + "\n")
	b.WriteString(headerStyle.Render("+++ "+newPath) + "\n")

	for _, h := range hunkRanges(changed, context, len(script)) {
		writeHunk(&b, script[h[0]:h[1]], width)
	}
	return b.String()
}

// editScript computes a shortest edit script from the longest common subsequence
func editScript(a, b []string) []diffLine {
	n, m := len(a), len(b)
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	script := make([]diffLine, 0, n+m)
	i, j := 0, 0
	for i < n || j < m {
		switch {
		case i < n && j < m && a[i] == b[j]:
			script = append(script, diffLine{op: opEqual, text: a[i], oldPos: i, newPos: j})
			i++
			j++
		case j >= m || (i < n && lcs[i+1][j] >= lcs[i][j+1]):
			script = append(script, diffLine{op: opRemoved, text: a[i], oldPos: i, newPos: j})
			i++
		default:
			script = append(script, diffLine{op: opAdded, text: b[j], oldPos: i, newPos: j})
			j++
		}
	}
	return script
}

// hunkRanges groups changed script indexes into [start, end) windows with
// context, merging windows that touch.
func hunkRanges(changed []int, context, total int) [][2]int {
	var ranges [][2]int
	for _, idx := range changed {
		start := max(0, idx-context)
		end := min(total, idx+context+1)
		if n := len(ranges); n > 0 && start <= ranges[n-1][1] {
			ranges[n-1][1] = max(ranges[n-1][1], end)
			continue
		}
		ranges = append(ranges, [2]int{start, end})
	}
	return ranges
}

func writeHunk(b *strings.Builder, lines []diffLine, width int) {
	oldCount, newCount := 0, 0
	for _, l := range lines {
		if l.op != opAdded {
			oldCount++
		}
		if l.op != opRemoved {
			newCount++
		}
	}
	oldStart, newStart := lines[0].oldPos, lines[0].newPos
	if oldCount > 0 {
		oldStart++
	}
	if newCount > 0 {
		newStart++
	}

	header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", oldStart, oldCount, newStart, newCount)
	b.WriteString(hunkStyle.Render(header) + "\n")

	for _, l := range lines {
		text := truncateLine(l.text, width-2)
		switch l.op {
		case opAdded:
			b.WriteString(addedStyle.Render("+"+text) + "\n")
		case opRemoved:
			b.WriteString(removedStyle.Render("-"+text) + "\n")
		default:
			b.WriteString(" " + text + "\n")
		}
	}
}

// splitLines splits content into lines, dropping the empty tail after a final newline
func splitLines(s string) []string {
	if s == "" {
		return []string{}
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// truncateLine truncates a line if it's too long, adding "..." indicator
func truncateLine(s string, maxWidth int) string {
	if maxWidth < 3 {
		maxWidth = 3
	}
	if utf8.RuneCountInString(s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxWidth-3]) + "..."
}

// terminalWidth returns the terminal width, defaulting to 80 if unable to detect
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
