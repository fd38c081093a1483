// Package terminal reports whether the installer can prompt the operator.
package terminal

import (
	"os"

	"golang.org/x/term"
)

var isTerminal = term.IsTerminal

// IsInteractive reports whether stdin and stdout are both terminals, which the
// prompts and the progress view need.
func IsInteractive() bool {
	return Interactive(os.Stdin, os.Stdout)
}

// Interactive reports whether in and out are both terminals.
func Interactive(in *os.File, out *os.File) bool {
	if in == nil || out == nil {
		return false
	}
	return isTerminal(int(in.Fd())) && isTerminal(int(out.Fd()))
}
