package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/stopwatch"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
)

type timerModel struct {
	stopwatch stopwatch.Model
	spinner   spinner.Model
	cancelled bool
}

func newTimerModel() timerModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return timerModel{
		stopwatch: stopwatch.NewWithInterval(time.Second),
		spinner:   sp,
	}
}

func (m timerModel) Init() tea.Cmd {
	return tea.Batch(m.stopwatch.Init(), m.spinner.Tick)
}

func (m timerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			return m, tea.Quit
		case tea.KeyCtrlC:
			m.cancelled = true
			return m, tea.Quit
		}
	}
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.stopwatch, cmd = m.stopwatch.Update(msg)
	cmds = append(cmds, cmd)
	m.spinner, cmd = m.spinner.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m timerModel) View() string {
	return fmt.Sprintf(
		"%sTracking time... %s %s\n",
		m.spinner.View(),
		pterm.Bold.Sprint(m.stopwatch.View()),
		pterm.Gray("(press Enter when you're done working)"),
	)
}

// RunTimer shows a running stopwatch and blocks until the user presses
// Enter. It returns the wall-clock time between start and stop; the
// stopwatch display is cosmetic. An interrupt surfaces as
// huh.ErrUserAborted so timer cancellation unwinds like any prompt.
func RunTimer() (time.Duration, error) {
	start := time.Now()
	program := tea.NewProgram(newTimerModel())
	finalModel, err := program.Run()
	if err != nil {
		return 0, err
	}
	if finalModel.(timerModel).cancelled {
		return 0, huh.ErrUserAborted
	}
	return time.Since(start), nil
}
