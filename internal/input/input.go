// Package input asks the user for values interactively. wren init uses it;
// every other command is driven by flags and wren.yml.
package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("red"))
)

// Prompter reads answers from one reader and writes prompts to one writer.
// A single bufio.Reader is kept so buffered input is not lost between questions.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a prompter. Nil arguments default to stdin and stdout.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Prompter{in: bufio.NewReader(in), out: out}
}

func (p *Prompter) ask(message, hint string) (string, bool) {
	if hint != "" {
		fmt.Fprint(p.out, promptStyle.Render(message)+" "+hintStyle.Render(hint)+": ")
	} else {
		fmt.Fprint(p.out, promptStyle.Render(message)+": ")
	}

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSpace(line), true
}

// Prompt asks for text. An empty answer or closed input returns defaultValue.
//
//	basePath := p.Prompt("Base path", "/data/run/")
//	// Displays: Base path (/data/run/): _
func (p *Prompter) Prompt(message, defaultValue string) string {
	hint := ""
	if defaultValue != "" {
		hint = "(" + defaultValue + ")"
	}
	answer, ok := p.ask(message, hint)
	if !ok || answer == "" {
		return defaultValue
	}
	return answer
}

// PromptInt asks for a positive integer, repeating the question until the
// answer parses. Closed input returns defaultValue.
func (p *Prompter) PromptInt(message string, defaultValue int) int {
	for {
		answer, ok := p.ask(message, "("+strconv.Itoa(defaultValue)+")")
		if !ok || answer == "" {
			return defaultValue
		}
		n, err := strconv.Atoi(answer)
		if err == nil && n > 0 {
			return n
		}
		fmt.Fprintln(p.out, errStyle.Render("   enter a whole number greater than 0"))
	}
}

// Confirm asks a yes/no question. y and yes (any case) mean true; an empty
// answer or closed input returns defaultYes.
func (p *Prompter) Confirm(message string, defaultYes bool) bool {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	answer, ok := p.ask(message, hint)
	if !ok || answer == "" {
		return defaultYes
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}
