package progress

import (
	"errors"
	"io"

	"github.com/ZhugeBane/parnaso-v6/internal/application"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	draw   func() string
	output string
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = m.draw()
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

// Render draws the dashboard once through a headless bubbletea program and returns the frame.
func Render(report Report, opts RenderOptions) (string, error) {
	return run(func() string { return Dashboard(report, opts) })
}

// RenderSessions draws only the session list.
func RenderSessions(state application.State, opts RenderOptions) (string, error) {
	return run(func() string { return Sessions(state, opts) })
}

func run(draw func() string) (string, error) {
	p := tea.NewProgram(
		model{draw: draw},
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}
