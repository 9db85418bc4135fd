package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Quit       key.Binding
	Submit     key.Binding
	Back       key.Binding
	NextField  key.Binding
	PrevField  key.Binding
	ToggleMode key.Binding
	Save       key.Binding
	Multitask  key.Binding
	NewSession key.Binding
	Focus      key.Binding
	Social     key.Binding
	Admin      key.Binding
	NewProject key.Binding
	DailyGoal  key.Binding
	Refresh    key.Binding
	Retry      key.Binding
	Discard    key.Binding
	Reset      key.Binding
	Logout     key.Binding
	QuitOnIdle key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		NextField:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
		ToggleMode: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "sign in / sign up")),
		Save:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Multitask:  key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "multitasking")),
		NewSession: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new session")),
		Focus:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "focus")),
		Social:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "writers")),
		Admin:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "admin")),
		NewProject: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "new project")),
		DailyGoal:  key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "daily goal")),
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Retry:      key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "retry failed")),
		Discard:    key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "discard failed")),
		Reset:      key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "erase data")),
		Logout:     key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "log out")),
		QuitOnIdle: key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return helpStyle.Render(strings.Join(parts, "  "))
}
