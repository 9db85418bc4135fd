package toml

import (
	"fmt"
	"strings"
	"time"

	"github.com/ZhugeBane/parnaso-v6/internal/domain"
)

const currentSchemaVersion = 1

type userFileSchema struct {
	Version  int             `toml:"version"`
	Settings *settingsSchema `toml:"settings,omitempty"`
	Projects []projectSchema `toml:"projects"`
	Sessions []sessionSchema `toml:"sessions"`
}

func (s *userFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s userFileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported user data schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type sessionSchema struct {
	ID              string `toml:"id"`
	ClientRef       string `toml:"client_ref,omitempty"`
	ProjectID       string `toml:"project_id,omitempty"`
	StartTime       string `toml:"start_time"`
	EndTime         string `toml:"end_time"`
	Content         string `toml:"content"`
	WordCount       int    `toml:"word_count"`
	WasMultitasking bool   `toml:"was_multitasking"`
}

type projectSchema struct {
	ID          string `toml:"id"`
	Name        string `toml:"name"`
	Description string `toml:"description,omitempty"`
	TargetWords int    `toml:"target_words,omitempty"`
	CreatedAt   string `toml:"created_at"`
}

type settingsSchema struct {
	DailyWordGoal int    `toml:"daily_word_goal"`
	FocusMinutes  int    `toml:"focus_minutes"`
	WeekStartsOn  string `toml:"week_starts_on"`
}

func toSessionSchema(session domain.WritingSession) sessionSchema {
	return sessionSchema{
		ID:              string(session.ID),
		ClientRef:       session.ClientRef,
		ProjectID:       string(session.ProjectID),
		StartTime:       FormatTime(session.StartTime),
		EndTime:         FormatTime(session.EndTime),
		Content:         session.Content,
		WordCount:       session.WordCount,
		WasMultitasking: session.WasMultitasking,
	}
}

func fromSessionSchema(session sessionSchema) domain.WritingSession {
	return domain.WritingSession{
		ID:              domain.SessionID(session.ID),
		ClientRef:       session.ClientRef,
		ProjectID:       domain.ProjectID(session.ProjectID),
		StartTime:       ParseTime(session.StartTime),
		EndTime:         ParseTime(session.EndTime),
		Content:         session.Content,
		WordCount:       session.WordCount,
		WasMultitasking: session.WasMultitasking,
	}
}

func toProjectSchema(project domain.Project) projectSchema {
	return projectSchema{
		ID:          string(project.ID),
		Name:        project.Name,
		Description: project.Description,
		TargetWords: project.TargetWords,
		CreatedAt:   FormatTime(project.CreatedAt),
	}
}

func fromProjectSchema(project projectSchema) domain.Project {
	return domain.Project{
		ID:          domain.ProjectID(project.ID),
		Name:        project.Name,
		Description: project.Description,
		TargetWords: project.TargetWords,
		CreatedAt:   ParseTime(project.CreatedAt),
	}
}

func toSettingsSchema(settings domain.UserSettings) *settingsSchema {
	return &settingsSchema{
		DailyWordGoal: settings.DailyWordGoal,
		FocusMinutes:  settings.FocusMinutes,
		WeekStartsOn:  strings.ToLower(settings.WeekStartsOn.String()),
	}
}

func fromSettingsSchema(settings *settingsSchema) domain.UserSettings {
	if settings == nil {
		return domain.InitialSettings()
	}

	return domain.UserSettings{
		DailyWordGoal: settings.DailyWordGoal,
		FocusMinutes:  settings.FocusMinutes,
		WeekStartsOn:  parseWeekday(settings.WeekStartsOn),
	}
}

func parseWeekday(raw string) time.Weekday {
	for day := time.Sunday; day <= time.Saturday; day++ {
		if strings.EqualFold(day.String(), raw) {
			return day
		}
	}

	return time.Monday
}
