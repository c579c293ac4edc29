// Package export writes snippet bodies to individual files.
package export

import (
	"log/slog"
	"strconv"

	"github.com/starford/codevault/internal/models"
	"github.com/starford/codevault/internal/storage"
)

// Result describes the outcome for one snippet.
type Result struct {
	ID      uint32
	Path    string
	Skipped bool
	Err     error
}

// Exporter writes snippets below a destination directory.
type Exporter struct {
	logger *slog.Logger
}

// New creates an Exporter. A nil logger uses slog.Default().
func New(logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{logger: logger}
}

// Export writes each snippet's code verbatim to <dir>/<id>.<ext>. Existing
// files are skipped, never overwritten. Failures are recorded per item and
// do not stop the batch; only an unusable directory aborts the call.
func (e *Exporter) Export(dir string, snippets []models.Snippet) ([]Result, error) {
	dest, err := storage.EnsureFS(dir)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(snippets))
	for _, s := range snippets {
		name := FileName(s)
		res := Result{ID: s.ID}
		res.Path, _ = dest.Abs(name)

		exists, err := dest.Exists(name)
		switch {
		case err != nil:
			res.Err = err
		case exists:
			res.Skipped = true
			e.logger.Debug("export: skipped existing file", slog.String("path", res.Path))
		default:
			if err := dest.Write(name, []byte(s.Code)); err != nil {
				res.Err = err
			} else {
				e.logger.Debug("export: wrote file", slog.String("path", res.Path))
			}
		}
		if res.Err != nil {
			e.logger.Warn("export: write failed",
				slog.String("path", res.Path),
				slog.String("error", res.Err.Error()))
		}
		results = append(results, res)
	}
	return results, nil
}

func formatUint(v uint32) string {
	return strconv.FormatUint(uint64(v), 10)
}
