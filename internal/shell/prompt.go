package shell

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/planarally/pa-installer/internal/messages"
	"github.com/planarally/pa-installer/internal/terminal"
)

// ErrAborted is returned when the operator leaves a prompt with Esc or Ctrl+C.
var ErrAborted = errors.New(messages.ShellAborted)

// Prompter collects the install directory from the operator.
type Prompter interface {
	InstallDir(defaultDir string) (string, error)
	ConfirmStart(dir string) (bool, error)
}

// HuhPrompter implements Prompter with charmbracelet/huh forms.
type HuhPrompter struct {
	isTerminal func() bool
}

var runFormFunc = func(form *huh.Form) error { return form.Run() }

// NewHuhPrompter returns a prompter that requires an interactive terminal.
func NewHuhPrompter() *HuhPrompter {
	return &HuhPrompter{isTerminal: terminal.IsInteractive}
}

func promptKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit"))
	return km
}

func (p *HuhPrompter) runForm(form *huh.Form) error {
	checker := p.isTerminal
	if checker == nil {
		checker = terminal.IsInteractive
	}
	if !checker() {
		return errors.New(messages.ShellRequiresTerminal)
	}
	form.WithKeyMap(promptKeyMap())
	form.WithProgramOptions(tea.WithOutput(os.Stderr))
	err := runFormFunc(form)
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrAborted
	}
	return err
}

// InstallDir asks for the install directory, prefilled with defaultDir.
// Input is validated inline, so the returned path already passed ResolveInstallDir.
func (p *HuhPrompter) InstallDir(defaultDir string) (string, error) {
	value := defaultDir
	err := p.runForm(huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(messages.ShellInstallDirTitle).
				Description(messages.ShellInstallDirHint).
				Value(&value).
				Validate(func(s string) error {
					_, err := ResolveInstallDir(s)
					return err
				}),
		),
	))
	if err != nil {
		return "", err
	}
	return ResolveInstallDir(value)
}

// ConfirmStart asks whether to install into dir.
func (p *HuhPrompter) ConfirmStart(dir string) (bool, error) {
	confirmed := true
	err := p.runForm(huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf(messages.ShellConfirmStartFmt, dir)).
				Value(&confirmed),
		),
	))
	if err != nil {
		return false, err
	}
	return confirmed, nil
}
