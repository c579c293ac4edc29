package export

import (
	"strings"

	"github.com/starford/codevault/internal/models"
)

// DefaultExtension is used for absent or unrecognized languages.
const DefaultExtension = "txt"

// extensions maps lower-cased language names to file extensions.
var extensions = map[string]string{
	"applescript":                      "applescript",
	"asp":                              "asp",
	"batch file":                       "bat",
	"bibtex":                           "bib",
	"bourne again shell (bash)":        "sh",
	"bash":                             "sh",
	"c":                                "c",
	"c#":                               "cs",
	"c++":                              "cpp",
	"cargo build results":              "log",
	"clojure":                          "clj",
	"commands-builtin-shell-bash":      "sh",
	"css":                              "css",
	"d":                                "d",
	"diff":                             "diff",
	"erlang":                           "erl",
	"go":                               "go",
	"graphviz (dot)":                   "dot",
	"groovy":                           "groovy",
	"haml":                             "haml",
	"haskell":                          "hs",
	"html":                             "html",
	"java":                             "java",
	"java properties":                  "properties",
	"javascript":                       "js",
	"json":                             "json",
	"latex":                            "tex",
	"latex log":                        "log",
	"lisp":                             "lisp",
	"lua":                              "lua",
	"make output":                      "mak",
	"makefile":                         "mak",
	"markdown":                         "md",
	"matlab":                           "m",
	"multimarkdown":                    "mmd",
	"nant build file":                  "build",
	"objective-c":                      "m",
	"objective-c++":                    "mm",
	"ocaml":                            "ml",
	"ocamllex":                         "mll",
	"ocamlyacc":                        "mly",
	"pascal":                           "pas",
	"perl":                             "pl",
	"php":                              "php",
	"python":                           "py",
	"r":                                "R",
	"r console":                        "Rout",
	"rd (r documentation)":             "Rd",
	"regular expression":               "regex",
	"regular expressions (javascript)": "js",
	"regular expressions (python)":     "py",
	"restructuredtext":                 "rst",
	"ruby":                             "rb",
	"ruby on rails":                    "rb",
	"rust":                             "rs",
	"scala":                            "scala",
	"shell-unix-generic":               "sh",
	"sql":                              "sql",
	"tcl":                              "tcl",
	"tex":                              "tex",
	"textile":                          "textile",
	"typescript":                       "ts",
	"xml":                              "xml",
	"yaml":                             "yaml",
}

// Extension returns the export file extension for a snippet language.
func Extension(language *string) string {
	if language == nil {
		return DefaultExtension
	}
	if ext, ok := extensions[strings.ToLower(strings.TrimSpace(*language))]; ok {
		return ext
	}
	return DefaultExtension
}

// FileName returns the export file name for s: "<id>.<ext>".
func FileName(s models.Snippet) string {
	return formatUint(s.ID) + "." + Extension(s.Language)
}
