package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	reset = "\033[0m"
	bold  = "\033[1m"

	fgRed    = "\033[31m"
	fgGreen  = "\033[32m"
	fgYellow = "\033[33m"
	fgBlue   = "\033[34m"
	fgGray   = "\033[90m"
)

// Stdout and Stderr receive everything the helpers print.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// Set from --color / --no-color. Themes never touch these.
var forceColor, disableColor bool

func SetColorForcing(force, disable bool) {
	forceColor, disableColor = force, disable
}

func terminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// Colorful reports whether output to Stdout should carry escape codes right
// now. --no-color and a plain theme turn it off; --color turns it on for
// pipes.
func Colorful() bool {
	if disableColor || current.Plain {
		return false
	}
	return forceColor || terminal(Stdout)
}

// C wraps s in color when output is colourful.
func C(color, s string) string {
	if color == "" || !Colorful() {
		return s
	}
	return color + s + reset
}

func OK(msg string)   { fmt.Fprintln(Stdout, C(current.Success, current.SymDone+" "+msg)) }
func Fail(msg string) { fmt.Fprintln(Stderr, C(current.Error, current.SymFail+" "+msg)) }

// Hint prints a dimmed follow-up line under a failure.
func Hint(msg string) { fmt.Fprintln(Stderr, C(current.Muted, msg)) }
