package internal

import (
	"os"

	"github.com/mattn/go-isatty"
)

// ColorEnabled reports whether output to out should be styled. The
// --no-color flag, a non-empty NO_COLOR, or a non-terminal out disable it.
func ColorEnabled(out *os.File, noColorFlag bool, noColorEnv string) bool {
	if noColorFlag || noColorEnv != "" || out == nil {
		return false
	}
	fd := out.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
