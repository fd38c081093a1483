package shell

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/planarally/pa-installer/internal/messages"
)

type stepStartedMsg struct {
	index int
	total int
	desc  string
}

type stepFinishedMsg struct {
	desc string
	err  error
}

type downloadedMsg struct {
	size int64
}

type finishedMsg struct {
	err error
}

// programObserver forwards run events into the bubbletea program.
type programObserver struct {
	send func(tea.Msg)
}

func (o *programObserver) StepStarted(index int, total int, description string) {
	o.send(stepStartedMsg{index: index, total: total, desc: description})
}

func (o *programObserver) StepFinished(_ int, _ int, description string, err error) {
	o.send(stepFinishedMsg{desc: description, err: err})
}

func (o *programObserver) Downloaded(_ string, size int64) {
	o.send(downloadedMsg{size: size})
}

func (o *programObserver) Finished() {}

type progressModel struct {
	spinner    spinner.Model
	start      tea.Cmd
	cancel     context.CancelFunc
	lines      []string
	current    string
	index      int
	total      int
	cancelling bool
	done       bool
	aborted    bool
	err        error
}

func newProgressModel(start tea.Cmd, cancel context.CancelFunc) progressModel {
	return progressModel{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		start:   start,
		cancel:  cancel,
	}
}

func (m progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.start)
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type != tea.KeyCtrlC {
			return m, nil
		}
		if m.cancelling {
			m.aborted = true
			return m, tea.Quit
		}
		m.cancelling = true
		if m.cancel != nil {
			m.cancel()
		}
		return m, nil
	case stepStartedMsg:
		m.current, m.index, m.total = msg.desc, msg.index, msg.total
		return m, nil
	case stepFinishedMsg:
		format := messages.ShellStepDoneFmt
		if msg.err != nil {
			format = messages.ShellStepFailedFmt
		}
		m.lines = append(m.lines, strings.TrimSuffix(fmt.Sprintf(format, msg.desc), "\n"))
		m.current = ""
		return m, nil
	case downloadedMsg:
		m.lines = append(m.lines, strings.TrimSuffix(fmt.Sprintf(messages.ShellDownloadedFmt, humanize.IBytes(uint64(msg.size))), "\n"))
		return m, nil
	case finishedMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m progressModel) View() string {
	var b strings.Builder
	b.WriteString(messages.ShellTitle + "\n\n")
	for _, line := range m.lines {
		b.WriteString(line + "\n")
	}
	if m.current != "" && !m.done {
		b.WriteString(m.spinner.View() + " " + fmt.Sprintf(messages.ShellStepRunningFmt, m.current, m.index, m.total) + "\n")
	}
	if !m.done {
		b.WriteString("\n")
		if m.cancelling {
			b.WriteString(messages.ShellCancelRequested + "\n")
		} else {
			b.WriteString(messages.ShellQuitHint + "\n")
		}
	}
	return b.String()
}

var programOptions = func(out io.Writer) []tea.ProgramOption {
	return []tea.ProgramOption{tea.WithOutput(out)}
}

// RunInteractive runs task on a worker goroutine while a bubbletea program
// renders progress. The first Ctrl+C cancels the run after the current step;
// a second one stops waiting for the render loop.
func RunInteractive(ctx context.Context, task Task, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	obs := &programObserver{}
	done := make(chan error, 1)
	var claimed atomic.Bool
	start := func() tea.Msg {
		if !claimed.CompareAndSwap(false, true) {
			return nil
		}
		err := task(ctx, obs)
		done <- err
		return finishedMsg{err: err}
	}

	program := tea.NewProgram(newProgressModel(start, cancel), programOptions(out)...)
	obs.send = program.Send

	final, err := program.Run()
	if err != nil {
		cancel()
		if claimed.CompareAndSwap(false, true) {
			// The render loop failed before the run started.
			return err
		}
		return <-done
	}
	if m, ok := final.(progressModel); ok && m.aborted {
		cancel()
	}
	if claimed.CompareAndSwap(false, true) {
		return ErrAborted
	}
	return <-done
}
