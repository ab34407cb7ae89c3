// Package terminal provides terminal detection utilities.
package terminal

import (
	"os"

	"golang.org/x/term"
)

// fdFile is the part of *os.File used for terminal detection.
type fdFile interface {
	Fd() uintptr
}

// IsInteractive reports whether stdin and stdout are both interactive terminals.
func IsInteractive() bool {
	return isInteractive(os.Stdin, os.Stdout)
}

func isInteractive(in, out fdFile) bool {
	return term.IsTerminal(int(in.Fd())) && term.IsTerminal(int(out.Fd()))
}
