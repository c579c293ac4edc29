// Package render lays snippets out as bordered terminal boxes whose visible
// width stays constant across lines regardless of embedded color sequences.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/starford/codevault/internal/ansi"
	"github.com/starford/codevault/internal/models"
)

// Mode selects how much of a snippet is rendered.
type Mode int

const (
	// Full renders metadata and the code body.
	Full Mode = iota
	// Summary renders metadata only.
	Summary
)

const (
	tabWidth = 4
	// inset is the left padding inside the border; the same amount is the
	// minimum right padding.
	inset = "  "
)

// Highlighter colors code for a language hint.
type Highlighter interface {
	Highlight(code, language string) string
}

// Theme holds the styles applied to box elements.
type Theme struct {
	Border lipgloss.Style
	Label  lipgloss.Style
	Value  lipgloss.Style
}

// DefaultTheme mirrors the classic blue border, yellow label, magenta value look.
func DefaultTheme() Theme {
	return Theme{
		Border: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		Label:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		Value:  lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true),
	}
}

// PlainTheme applies no styling.
func PlainTheme() Theme {
	return Theme{Border: lipgloss.NewStyle(), Label: lipgloss.NewStyle(), Value: lipgloss.NewStyle()}
}

// Renderer builds snippet boxes.
type Renderer struct {
	hl    Highlighter
	theme Theme
}

// New creates a Renderer. hl may be nil, in which case code is left plain.
func New(hl Highlighter, theme Theme) *Renderer {
	return &Renderer{hl: hl, theme: theme}
}

// Render returns the display lines for one snippet.
func (r *Renderer) Render(s models.Snippet, mode Mode) []string {
	var labels []string
	labels = append(labels, r.field("ID:", strconv.FormatUint(uint64(s.ID), 10))...)
	labels = append(labels, r.field("Tag:", s.Tag)...)
	labels = append(labels, r.field("Created:", s.Timestamp)...)
	if d := s.DescriptionOrEmpty(); d != "" {
		labels = append(labels, r.field("Description:", d)...)
	}

	var code []string
	if mode == Full {
		code = append([]string{r.theme.Label.Render("Code:")}, r.codeLines(s)...)
	}

	width := 0
	for _, l := range labels {
		width = max(width, ansi.VisibleWidth(l))
	}
	for _, l := range code {
		width = max(width, ansi.VisibleWidth(l))
	}
	width += 2 * len(inset)

	out := make([]string, 0, len(labels)+len(code)+3)
	out = append(out, r.rule("╔", "═", "╗", width))
	for _, l := range labels {
		out = append(out, r.row(l, width))
	}
	if mode == Full {
		out = append(out, r.rule("╟", "─", "╢", width))
		for _, l := range code {
			out = append(out, r.row(l, width))
		}
	}
	out = append(out, r.rule("╚", "═", "╝", width))
	return out
}

// Write renders each snippet to w, separated by blank lines.
func (r *Renderer) Write(w io.Writer, snippets []models.Snippet, mode Mode) error {
	for _, s := range snippets {
		for _, line := range r.Render(s, mode) {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// Code returns the snippet body, highlighted when a language is set.
func (r *Renderer) Code(s models.Snippet) string {
	if r.hl == nil || s.Language == nil {
		return s.Code
	}
	return r.hl.Highlight(s.Code, *s.Language)
}

// field renders a label row. A multi-line value continues on extra rows
// aligned under its first line.
func (r *Renderer) field(label, value string) []string {
	parts := splitLines(expandTabs(value))
	if len(parts) == 0 {
		parts = []string{""}
	}
	out := make([]string, len(parts))
	out[0] = r.theme.Label.Render(label) + " " + r.theme.Value.Render(parts[0])
	hang := strings.Repeat(" ", ansi.VisibleWidth(label)+1)
	for i, p := range parts[1:] {
		out[i+1] = hang + r.theme.Value.Render(p)
	}
	return out
}

func (r *Renderer) rule(left, fill, right string, width int) string {
	return r.theme.Border.Render(left + strings.Repeat(fill, width) + right)
}

func (r *Renderer) row(content string, width int) string {
	bar := r.theme.Border.Render("║")
	return bar + ansi.PadRight(inset+content, width) + bar
}

// codeLines splits the (optionally highlighted) body into display lines.
// The line count follows the raw code so lexer-added trailing newlines do
// not produce extra rows.
func (r *Renderer) codeLines(s models.Snippet) []string {
	raw := splitLines(expandTabs(s.Code))
	if len(raw) == 0 {
		return nil
	}
	if r.hl == nil || s.Language == nil {
		return raw
	}
	colored := splitLines(r.hl.Highlight(expandTabs(s.Code), *s.Language))
	out := make([]string, len(raw))
	for i := range raw {
		if i >= len(colored) {
			out[i] = raw[i]
			continue
		}
		line := colored[i]
		if strings.Contains(line, "\x1b[") {
			line += "\x1b[0m"
		}
		out[i] = line
	}
	return out
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

// splitLines splits on newlines, dropping a final terminator and any
// trailing carriage returns.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
