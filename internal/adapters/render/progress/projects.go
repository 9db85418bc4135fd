package progress

import (
	"strconv"

	"github.com/ZhugeBane/parnaso-v6/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Projects renders the project table with the words written for each project.
func Projects(report Report) string {
	s := newStyles()
	if len(report.State.Projects) == 0 {
		return s.empty.Render("No projects yet.")
	}

	words := make(map[domain.ProjectID]int, len(report.Progress.Projects))
	for _, total := range report.Progress.Projects {
		words[total.ProjectID] = total.Words
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		Headers("ID", "NAME", "WORDS", "TARGET").
		StyleFunc(func(row, col int) lipgloss.Style {
			cell := lipgloss.NewStyle().PaddingRight(2)
			switch {
			case row == table.HeaderRow:
				return cell.Inherit(s.title)
			case col == 1:
				return cell.Inherit(s.project)
			default:
				return cell.Inherit(s.detail)
			}
		})

	for _, project := range report.State.Projects {
		target := "-"
		if project.TargetWords > 0 {
			target = strconv.Itoa(project.TargetWords)
		}
		t.Row(string(project.ID), project.Name, strconv.Itoa(words[project.ID]), target)
	}

	return t.String()
}
