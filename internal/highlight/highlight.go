// Package highlight colors code for the terminal.
//
// A Highlighter is built once from the configured style and formatter and
// shared by every caller; it holds no per-call state.
package highlight

import (
	"slices"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Defaults used when the configuration leaves them empty.
const (
	DefaultStyle     = "monokai"
	DefaultFormatter = "terminal16m"
)

// Highlighter renders code with embedded ANSI color sequences.
type Highlighter struct {
	style     *chroma.Style
	formatter chroma.Formatter
}

// New creates a Highlighter. Unknown style or formatter names fall back to
// chroma's defaults.
func New(style, formatter string) *Highlighter {
	if style == "" {
		style = DefaultStyle
	}
	if formatter == "" {
		formatter = DefaultFormatter
	}
	return &Highlighter{
		style:     styles.Get(style),
		formatter: formatters.Get(formatter),
	}
}

// Highlight returns code colored for language. An unrecognized or empty
// language, or any tokenizer failure, returns code unchanged.
func (h *Highlighter) Highlight(code, language string) string {
	lexer := lookup(language)
	if lexer == nil {
		return code
	}
	it, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return code
	}
	var b strings.Builder
	if err := h.formatter.Format(&b, h.style, it); err != nil {
		return code
	}
	return b.String()
}

// Supported reports whether language selects a lexer.
func Supported(language string) bool {
	return lookup(language) != nil
}

// Languages returns the names of every language the highlighter knows, sorted.
func Languages() []string {
	names := lexers.Names(false)
	slices.SortFunc(names, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	return names
}

// StyleNames returns the registered style names.
func StyleNames() []string {
	return styles.Names()
}

// FormatterNames returns the registered formatter names.
func FormatterNames() []string {
	return formatters.Names()
}

func lookup(language string) chroma.Lexer {
	language = strings.TrimSpace(language)
	if language == "" {
		return nil
	}
	return lexers.Get(language)
}
