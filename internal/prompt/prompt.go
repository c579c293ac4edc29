// Package prompt reads operator answers from a terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/starford/codevault/internal/filter"
)

var (
	questionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	accentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
)

// Prompter asks questions on out and reads answers from in.
// It blocks until a full line (or EOF) is available.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a Prompter.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Confirm asks a yes/no question. Only "y" or "yes" (any case) approves.
func (p *Prompter) Confirm(question string) (bool, error) {
	answer, err := p.ReadLine(question + " (" + accentStyle.Render("y/N") + ")")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// ChooseID lists candidates and reads one ID. Non-numeric input fails with
// an invalid-input error; membership is checked by the caller.
func (p *Prompter) ChooseID(candidates []uint32) (uint32, error) {
	fmt.Fprintln(p.out, questionStyle.Render("Multiple snippets match, choose an ID from the list:"))
	fmt.Fprintln(p.out)
	for _, id := range candidates {
		fmt.Fprintf(p.out, "  » %s\n", accentStyle.Render(fmt.Sprintf("ID %d", id)))
	}
	fmt.Fprintln(p.out)
	answer, err := p.ReadLine("Type the ID of the snippet you want to modify:")
	if err != nil {
		return 0, err
	}
	return filter.ParseID(answer)
}

// ReadLine prints question and returns the trimmed answer line. EOF with
// no input yields an empty answer.
func (p *Prompter) ReadLine(question string) (string, error) {
	fmt.Fprint(p.out, questionStyle.Render(question)+" ")
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("prompt: read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// ReadAll prints banner and consumes input until EOF, returned verbatim.
func (p *Prompter) ReadAll(banner string) (string, error) {
	if banner != "" {
		fmt.Fprintln(p.out, questionStyle.Render(banner))
	}
	data, err := io.ReadAll(p.in)
	if err != nil {
		return "", fmt.Errorf("prompt: read input: %w", err)
	}
	return string(data), nil
}
