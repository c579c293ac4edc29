package internal

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/starford/codevault/internal/apperr"
	"github.com/starford/codevault/internal/filter"
	"github.com/starford/codevault/internal/models"
	"github.com/starford/codevault/internal/render"
	"github.com/starford/codevault/internal/resolve"
	"github.com/starford/codevault/internal/snippetservice"
	"github.com/starford/codevault/internal/store"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// CaptureArgs are the capture command flags. Empty Code is read from input.
type CaptureArgs struct {
	Tag         string
	Description string
	Language    string
	Code        string
}

// Capture stores a new snippet.
func (a *App) Capture(ctx context.Context, args CaptureArgs) error {
	code := args.Code
	if code == "" {
		var err error
		code, err = a.prompter.ReadAll("Enter the code (finish with Ctrl-D):")
		if err != nil {
			return err
		}
	}
	sn, err := a.svc.Capture(ctx, snippetservice.CaptureInput{
		Tag:         args.Tag,
		Description: args.Description,
		Language:    args.Language,
		Code:        code,
	})
	if err != nil {
		return err
	}
	a.success("Snippet captured with ID %d", sn.ID)
	return nil
}

// View renders the snippets matching q.
func (a *App) View(ctx context.Context, q filter.Query, summary bool) error {
	snippets, err := a.svc.List(ctx, q)
	if err != nil {
		return err
	}
	if len(snippets) == 0 {
		if q.Narrows() {
			return apperr.NotFoundf("no snippets match the given filters")
		}
		a.notice("The collection is empty.")
		return nil
	}
	mode := render.Full
	if summary {
		mode = render.Summary
	}
	return a.renderer.Write(a.out, snippets, mode)
}

// Copy prints the code of one snippet, without the box, for piping.
func (a *App) Copy(ctx context.Context, id uint32) error {
	sn, err := a.svc.Get(ctx, id)
	if err != nil {
		return err
	}
	code := a.renderer.Code(sn)
	if !strings.HasSuffix(code, "\n") {
		code += "\n"
	}
	_, err = fmt.Fprint(a.out, code)
	return err
}

// Edit interactively replaces the selected snippet.
func (a *App) Edit(ctx context.Context, sel resolve.Selector) error {
	sn, err := a.svc.Edit(ctx, sel, a.prompter)
	if err != nil {
		return err
	}
	a.success("Snippet updated, it is now ID %d", sn.ID)
	return nil
}

// Delete removes snippets by ID. yes skips the confirmation.
func (a *App) Delete(ctx context.Context, ids []uint32, yes bool) error {
	n, err := a.svc.Delete(ctx, ids, a.confirmer(yes))
	if err != nil {
		return err
	}
	a.success("Deleted %d %s", n, plural(n, "snippet", "snippets"))
	return nil
}

// Export writes matching snippets below dir (the configured directory when empty).
func (a *App) Export(ctx context.Context, q filter.Query, dir string, yes bool) error {
	if dir == "" {
		dir = a.config.Export.Dir
	}
	results, err := a.svc.Export(ctx, q, dir, a.confirmer(yes))
	if err != nil {
		return err
	}
	var written int
	for _, r := range results {
		switch {
		case r.Err != nil:
			a.notice("ID %d: export failed: %v", r.ID, r.Err)
		case r.Skipped:
			a.notice("ID %d: %s already exists, skipped", r.ID, r.Path)
		default:
			written++
			fmt.Fprintf(a.out, "ID %d → %s\n", r.ID, r.Path)
		}
	}
	a.success("Exported %d of %d %s", written, len(results), plural(len(results), "snippet", "snippets"))
	return nil
}

// Languages lists the language names the highlighter recognizes.
func (a *App) Languages(_ context.Context) error {
	for _, name := range a.svc.Languages() {
		if _, err := fmt.Fprintln(a.out, name); err != nil {
			return err
		}
	}
	return nil
}

// Search runs a full-text query and renders the hits as summaries,
// best match first.
func (a *App) Search(ctx context.Context, query string, limit int) error {
	svc, err := a.indexed()
	if err != nil {
		return err
	}
	results, err := svc.Search(ctx, query, limit)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		a.notice("No snippets match %q.", query)
		return nil
	}

	all, err := svc.List(ctx, filter.Query{})
	if err != nil {
		return err
	}
	byID := make(map[uint32]models.Snippet, len(all))
	for _, sn := range all {
		byID[sn.ID] = sn
	}
	hits := make([]models.Snippet, 0, len(results))
	for _, r := range results {
		if sn, ok := byID[r.ID]; ok {
			hits = append(hits, sn)
		}
	}
	return a.renderer.Write(a.out, hits, render.Summary)
}

func (a *App) confirmer(yes bool) store.Confirmer {
	if yes {
		return nil
	}
	return a.prompter
}

func (a *App) success(format string, args ...any) {
	fmt.Fprintln(a.out, successStyle.Render(fmt.Sprintf(format, args...)))
}

func (a *App) notice(format string, args ...any) {
	fmt.Fprintln(a.out, noticeStyle.Render(fmt.Sprintf(format, args...)))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
