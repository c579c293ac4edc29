package internal

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/starford/codevault/internal/apperr"
)

var (
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Report prints err for the operator and returns the process exit code.
// A cancelled operation is not a failure.
func Report(w io.Writer, err error) int {
	if err == nil {
		return 0
	}

	var e *apperr.Error
	if !errors.As(err, &e) {
		fmt.Fprintln(w, errorStyle.Render("Error: "+err.Error()))
		return 1
	}

	switch e.Kind {
	case apperr.KindCancelled:
		fmt.Fprintln(w, noticeStyle.Render(capitalize(e.Message)+"."))
		return 0
	case apperr.KindStoreMissing:
		fmt.Fprintln(w, errorStyle.Render(capitalize(e.Message)+"."))
		fmt.Fprintln(w, hintStyle.Render("Capture a snippet first: codevault capture --tag <tag>"))
	case apperr.KindAmbiguousSelector:
		fmt.Fprintln(w, errorStyle.Render(capitalize(e.Message)+": "+apperr.JoinIDs(e.Candidates)))
		fmt.Fprintln(w, hintStyle.Render("Select one with --id."))
	case apperr.KindStoreUnreadable:
		fmt.Fprintln(w, errorStyle.Render(capitalize(e.Error())))
		fmt.Fprintln(w, hintStyle.Render("Fix or move the file; codevault never overwrites an unreadable store."))
	default:
		fmt.Fprintln(w, errorStyle.Render(capitalize(e.Message)))
	}
	return 1
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] -= 'a' - 'A'
	}
	return string(r)
}
