package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
	frameStyle   = lipgloss.NewStyle().Padding(1, 2)
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
)
