package tui

import (
	"github.com/ZhugeBane/parnaso-v6/internal/application"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	authEmail = iota
	authPassword
	authName
)

// authPage collects credentials for sign-in or, in register mode, sign-up.
type authPage struct {
	inputs   []textinput.Model
	focused  int
	register bool
	busy     bool
}

func newAuthPage() authPage {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Prompt = "email:    "
	email.CharLimit = 254

	password := textinput.New()
	password.Placeholder = "at least 6 characters"
	password.Prompt = "password: "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	name := textinput.New()
	name.Placeholder = "optional"
	name.Prompt = "name:     "
	name.CharLimit = 80

	page := authPage{inputs: []textinput.Model{email, password, name}}
	page.inputs[authEmail].Focus()
	return page
}

func (p authPage) fieldCount() int {
	if p.register {
		return len(p.inputs)
	}
	return authName
}

func (p authPage) moveFocus(delta int) authPage {
	p.inputs[p.focused].Blur()
	p.focused = (p.focused + delta + p.fieldCount()) % p.fieldCount()
	p.inputs[p.focused].Focus()
	return p
}

func (p authPage) toggleMode() authPage {
	p.register = !p.register
	if p.focused >= p.fieldCount() {
		p = p.moveFocus(-p.focused)
	}
	return p
}

func (p authPage) update(msg tea.Msg) (authPage, tea.Cmd) {
	var cmd tea.Cmd
	p.inputs[p.focused], cmd = p.inputs[p.focused].Update(msg)
	return p, cmd
}

func (p authPage) loginCommand() application.LoginCommand {
	return application.LoginCommand{
		Email:    p.inputs[authEmail].Value(),
		Password: p.inputs[authPassword].Value(),
	}
}

func (p authPage) registerCommand() application.RegisterCommand {
	return application.RegisterCommand{
		Email:       p.inputs[authEmail].Value(),
		Password:    p.inputs[authPassword].Value(),
		DisplayName: p.inputs[authName].Value(),
	}
}

func (p authPage) view(keys keyMap) string {
	title := "Sign in"
	if p.register {
		title = "Create an account"
	}

	lines := []string{titleStyle.Render("parnaso · " + title), ""}
	for i := 0; i < p.fieldCount(); i++ {
		lines = append(lines, p.inputs[i].View())
	}
	if p.busy {
		lines = append(lines, "", faintStyle.Render("checking credentials..."))
	}

	lines = append(lines, "", helpLine(keys.Submit, keys.NextField, keys.ToggleMode, keys.Quit))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
