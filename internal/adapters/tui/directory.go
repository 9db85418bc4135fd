package tui

import (
	"fmt"

	"github.com/ZhugeBane/parnaso-v6/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// directoryPage lists users for the admin dashboard and the social hub.
type directoryPage struct {
	admin   bool
	loading bool
	users   []domain.User
	err     error
}

func (p directoryPage) view(keys keyMap) string {
	title, empty := "Writers", "No other writers yet."
	if p.admin {
		title, empty = "Admin · registered users", "No users registered."
	}

	lines := []string{titleStyle.Render(title), ""}
	switch {
	case p.loading:
		lines = append(lines, faintStyle.Render("loading..."))
	case p.err != nil:
		lines = append(lines, errorStyle.Render(p.err.Error()))
	case len(p.users) == 0:
		lines = append(lines, faintStyle.Render(empty))
	default:
		for _, user := range p.users {
			lines = append(lines, p.userLine(user))
		}
	}

	lines = append(lines, "", helpLine(keys.Back))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (p directoryPage) userLine(user domain.User) string {
	if !p.admin {
		return user.Name()
	}

	joined := "unknown"
	if !user.CreatedAt.IsZero() {
		joined = user.CreatedAt.Format("2006-01-02")
	}

	return fmt.Sprintf("%-28s %-32s %-7s joined %s", user.Name(), user.Email, user.Role, joined)
}
