package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/ZhugeBane/parnaso-v6/internal/domain"
	"github.com/charmbracelet/bubbles/stopwatch"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// focusPage is a distraction-free writing run timed against the user's focus length.
type focusPage struct {
	watch   stopwatch.Model
	text    textarea.Model
	started time.Time
	target  time.Duration
}

func newFocusPage(now time.Time, target time.Duration) focusPage {
	text := textarea.New()
	text.Placeholder = "Write."
	text.ShowLineNumbers = false
	text.SetWidth(72)
	text.SetHeight(14)
	text.CharLimit = 0
	text.Focus()

	return focusPage{
		watch:   stopwatch.NewWithInterval(time.Second),
		text:    text,
		started: now,
		target:  target,
	}
}

func (p focusPage) init() tea.Cmd {
	return p.watch.Init()
}

func (p focusPage) update(msg tea.Msg) (focusPage, tea.Cmd) {
	var watchCmd, textCmd tea.Cmd
	p.watch, watchCmd = p.watch.Update(msg)
	if _, isKey := msg.(tea.KeyMsg); isKey {
		p.text, textCmd = p.text.Update(msg)
	}
	return p, tea.Batch(watchCmd, textCmd)
}

// result is what the run hands back on exit. Nil means nothing was written.
func (p focusPage) result(now time.Time) *domain.FocusResult {
	text := p.text.Value()
	if strings.TrimSpace(text) == "" {
		return nil
	}

	return &domain.FocusResult{
		StartTime: p.started,
		EndTime:   now,
		Text:      text,
		WordCount: domain.CountWords(text),
	}
}

func (p focusPage) view(keys keyMap) string {
	elapsed := p.watch.Elapsed()
	remaining := p.target - elapsed
	clock := fmt.Sprintf("%s elapsed", formatClock(elapsed))
	if p.target > 0 {
		if remaining > 0 {
			clock += fmt.Sprintf(" · %s left", formatClock(remaining))
		} else {
			clock += " · " + infoStyle.Render("focus time reached")
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Focus"),
		labelStyle.Render(clock),
		"",
		p.text.View(),
		faintStyle.Render(fmt.Sprintf("%d words", domain.CountWords(p.text.Value()))),
		"",
		helpLine(keys.Save, keys.Back),
	)
}

func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Truncate(time.Second)
	return fmt.Sprintf("%02d:%02d", int(d/time.Minute), int((d%time.Minute)/time.Second))
}
