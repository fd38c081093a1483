package terminal

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInteractiveRequiresBothEnds(t *testing.T) {
	orig := isTerminal
	t.Cleanup(func() { isTerminal = orig })

	in, out := os.Stdin, os.Stdout
	isTerminal = func(fd int) bool { return fd == int(in.Fd()) }
	assert.False(t, Interactive(in, out))

	isTerminal = func(int) bool { return true }
	assert.True(t, Interactive(in, out))
	assert.False(t, Interactive(nil, out))
}

func TestIsInteractiveUnderTest(t *testing.T) {
	orig := isTerminal
	t.Cleanup(func() { isTerminal = orig })
	isTerminal = func(int) bool { return false }
	assert.False(t, IsInteractive())
}
