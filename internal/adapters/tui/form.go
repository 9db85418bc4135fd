package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ZhugeBane/parnaso-v6/internal/domain"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const timeLayout = "2006-01-02 15:04"

const (
	formStart = iota
	formEnd
	formProject
	formContent
	formFields
)

var errEndBeforeStart = errors.New("end time is before start time")

// formPage edits one writing session. It starts from the view's prefill.
type formPage struct {
	inputs       []textinput.Model
	content      textarea.Model
	focused      int
	multitasking bool
	loc          *time.Location
}

func newFormPage(draft domain.SessionDraft, now time.Time, focusLength time.Duration) formPage {
	loc := now.Location()
	if draft.IsZero() {
		draft.EndTime = now
		draft.StartTime = now.Add(-focusLength)
	}

	start := newFormInput("start:   ", timeLayout)
	start.SetValue(formatFormTime(draft.StartTime, loc))
	end := newFormInput("end:     ", timeLayout)
	end.SetValue(formatFormTime(draft.EndTime, loc))
	project := newFormInput("project: ", "name (optional)")

	content := textarea.New()
	content.Placeholder = "What did you write?"
	content.ShowLineNumbers = false
	content.SetWidth(72)
	content.SetHeight(8)
	content.CharLimit = 0
	content.SetValue(draft.Content)

	page := formPage{
		inputs:       []textinput.Model{start, end, project},
		content:      content,
		multitasking: draft.WasMultitasking,
		loc:          loc,
	}
	page.inputs[formStart].Focus()
	return page
}

func newFormInput(prompt, placeholder string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.Placeholder = placeholder
	input.CharLimit = 120
	return input
}

func formatFormTime(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format(timeLayout)
}

func (p formPage) moveFocus(delta int) formPage {
	p.blur()
	p.focused = (p.focused + delta + formFields) % formFields
	if p.focused == formContent {
		p.content.Focus()
	} else {
		p.inputs[p.focused].Focus()
	}
	return p
}

func (p *formPage) blur() {
	if p.focused == formContent {
		p.content.Blur()
		return
	}
	p.inputs[p.focused].Blur()
}

func (p formPage) update(msg tea.Msg) (formPage, tea.Cmd) {
	var cmd tea.Cmd
	if p.focused == formContent {
		p.content, cmd = p.content.Update(msg)
	} else {
		p.inputs[p.focused], cmd = p.inputs[p.focused].Update(msg)
	}
	return p, cmd
}

// session builds the session to save, resolving the project by id or name.
func (p formPage) session(projects []domain.Project) (domain.WritingSession, error) {
	start, err := parseFormTime("start", p.inputs[formStart].Value(), p.loc)
	if err != nil {
		return domain.WritingSession{}, err
	}
	end, err := parseFormTime("end", p.inputs[formEnd].Value(), p.loc)
	if err != nil {
		return domain.WritingSession{}, err
	}
	if end.Before(start) {
		return domain.WritingSession{}, errEndBeforeStart
	}

	projectID, err := domain.ResolveProject(projects, p.inputs[formProject].Value())
	if err != nil {
		return domain.WritingSession{}, err
	}

	content := p.content.Value()
	return domain.WritingSession{
		ProjectID:       projectID,
		StartTime:       start,
		EndTime:         end,
		Content:         content,
		WordCount:       domain.CountWords(content),
		WasMultitasking: p.multitasking,
	}, nil
}

func parseFormTime(field, raw string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(timeLayout, strings.TrimSpace(raw), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s time must look like %s", field, timeLayout)
	}
	return t, nil
}

func (p formPage) view(keys keyMap) string {
	multitask := "no"
	if p.multitasking {
		multitask = "yes"
	}

	lines := []string{titleStyle.Render("New writing session"), ""}
	for _, input := range p.inputs {
		lines = append(lines, input.View())
	}
	lines = append(lines,
		labelStyle.Render("multitasking: ")+multitask,
		"",
		p.content.View(),
		faintStyle.Render(fmt.Sprintf("%d words", domain.CountWords(p.content.Value()))),
		"",
		helpLine(keys.Save, keys.NextField, keys.Multitask, keys.Back),
	)

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
