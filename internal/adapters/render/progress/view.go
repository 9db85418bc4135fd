package progress

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ZhugeBane/parnaso-v6/internal/application"
	"github.com/ZhugeBane/parnaso-v6/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const (
	barWidth         = 24
	unassignedLabel  = "No project"
	contentPreviewAt = 48
)

type RenderOptions struct {
	Now time.Time
	// Limit caps how many sessions the session list shows. Zero shows all.
	Limit int
}

// Report is everything the progress screen draws.
type Report struct {
	State    application.State
	Progress domain.Progress
}

// Dashboard renders the progress summary followed by the recent sessions.
func Dashboard(report Report, opts RenderOptions) string {
	s := newStyles()
	return lipgloss.JoinVertical(lipgloss.Left,
		renderSummary(report, s),
		s.section.Render(renderSessions(report.State, opts, s)),
	)
}

// Summary renders only the progress figures.
func Summary(report Report) string {
	return renderSummary(report, newStyles())
}

// Sessions renders the session list with each entry's sync status.
func Sessions(state application.State, opts RenderOptions) string {
	return renderSessions(state, opts, newStyles())
}

func renderSummary(report Report, s styles) string {
	p := report.Progress
	lines := []string{s.title.Render("Writing progress")}
	if report.State.User != nil {
		lines = append(lines, s.header.Render("writer: "+report.State.User.Name()))
	}

	lines = append(lines,
		goalLine(p, s),
		s.label.Render("streak:")+" "+s.detail.Render(plural(p.StreakDays, "day")),
		s.label.Render("total:")+" "+s.detail.Render(fmt.Sprintf("%s in %s (%s)",
			plural(p.TotalWords, "word"), plural(p.TotalSessions, "session"), formatDuration(p.TotalDuration))),
	)

	if len(p.Projects) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	projectLines := []string{s.title.Render("Projects")}
	for _, total := range p.Projects {
		projectLines = append(projectLines, projectLine(total, report.State.Projects, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinVertical(lipgloss.Left, lines...),
		s.section.Render(lipgloss.JoinVertical(lipgloss.Left, projectLines...)),
	)
}

func goalLine(p domain.Progress, s styles) string {
	label := s.label.Render("today:")
	if p.DailyGoal <= 0 {
		return label + " " + s.detail.Render(plural(p.TodayWords, "word")) + " " + s.meta.Render("(no daily goal)")
	}

	percentStyle := lipgloss.NewStyle().Foreground(interpolateColor(p.GoalPercent, 0, 100))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		label,
		" ",
		s.detail.Render(fmt.Sprintf("%d/%d words", p.TodayWords, p.DailyGoal)),
		" ",
		renderProgressBar(p.GoalPercent, barWidth, s),
		" ",
		percentStyle.Render(fmt.Sprintf("%3.0f%%", p.GoalPercent)),
	)
}

func projectLine(total domain.ProjectTotal, projects []domain.Project, s styles) string {
	name, target := unassignedLabel, 0
	if total.ProjectID != "" {
		name = string(total.ProjectID)
		for _, project := range projects {
			if project.ID == total.ProjectID {
				name, target = project.Name, project.TargetWords
				break
			}
		}
	}

	line := s.project.Render(name) + " " + s.detail.Render(fmt.Sprintf("%s, %s",
		plural(total.Words, "word"), plural(total.Sessions, "session")))
	if target <= 0 {
		return line
	}

	percent := clampPercent(float64(total.Words) * 100 / float64(target))
	return lipgloss.JoinHorizontal(lipgloss.Top,
		line,
		" ",
		renderProgressBar(percent, barWidth/2, s),
		" ",
		s.meta.Render(fmt.Sprintf("%.0f%% of %d", percent, target)),
	)
}

func renderSessions(state application.State, opts RenderOptions, s styles) string {
	lines := []string{s.title.Render("Sessions")}
	if len(state.Sessions) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, append(lines, s.empty.Render("No sessions recorded yet."))...)
	}

	sessions := state.Sessions
	if opts.Limit > 0 && len(sessions) > opts.Limit {
		sessions = sessions[:opts.Limit]
	}

	for _, session := range sessions {
		lines = append(lines, sessionLine(state, session, opts, s))
	}
	if hidden := len(state.Sessions) - len(sessions); hidden > 0 {
		lines = append(lines, s.empty.Render(fmt.Sprintf("... %d more", hidden)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func sessionLine(state application.State, session domain.WritingSession, opts RenderOptions, s styles) string {
	parts := []string{
		s.label.Render(formatWhen(session.StartTime, opts.Now)),
		s.detail.Render(fmt.Sprintf("%5d words", session.WordCount)),
		s.meta.Render(formatDuration(session.Duration())),
	}

	if name := state.ProjectName(session.ProjectID); name != "" {
		parts = append(parts, s.project.Render(name))
	}
	if session.WasMultitasking {
		parts = append(parts, s.meta.Render("multitasking"))
	}

	switch state.SaveStatusOf(session) {
	case application.SavePending:
		parts = append(parts, s.pending.Render("[saving]"))
	case application.SaveFailed:
		parts = append(parts, s.failed.Render("[not saved: "+session.ClientRef+"]"))
	}

	if preview := previewContent(session.Content); preview != "" {
		parts = append(parts, s.empty.Render(preview))
	}

	return strings.Join(parts, "  ")
}

func previewContent(content string) string {
	flat := strings.Join(strings.Fields(content), " ")
	runes := []rune(flat)
	if len(runes) <= contentPreviewAt {
		return flat
	}

	return string(runes[:contentPreviewAt-3]) + "..."
}

func formatWhen(t, now time.Time) string {
	if t.IsZero() {
		return "undated         "
	}
	if !now.IsZero() {
		t = t.In(now.Location())
		yearA, monthA, dayA := now.Date()
		yearB, monthB, dayB := t.Date()
		if yearA == yearB && monthA == monthB && dayA == dayB {
			return "today " + t.Format("15:04") + "     "
		}
	}

	return t.Format("2006-01-02 15:04")
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "0m"
	}

	d = d.Round(time.Minute)
	hours := int(d / time.Hour)
	minutes := int((d % time.Hour) / time.Minute)
	if hours == 0 {
		return fmt.Sprintf("%dm", minutes)
	}

	return fmt.Sprintf("%dh%02dm", hours, minutes)
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}

	return fmt.Sprintf("%d %ss", n, unit)
}

func renderProgressBar(percent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(percent) / 100))
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// interpolateColor maps value onto the 240..255 greyscale ramp.
func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	return lipgloss.Color(fmt.Sprintf("%d", int(240+15*normalized)))
}
