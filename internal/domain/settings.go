package domain

import "time"

type UserSettings struct {
	DailyWordGoal int
	FocusMinutes  int
	WeekStartsOn  time.Weekday
}

const (
	DefaultDailyWordGoal = 500
	DefaultFocusMinutes  = 25
)

// InitialSettings is what a user sees before anything is stored and after a data reset.
func InitialSettings() UserSettings {
	return UserSettings{
		DailyWordGoal: DefaultDailyWordGoal,
		FocusMinutes:  DefaultFocusMinutes,
		WeekStartsOn:  time.Monday,
	}
}

func (s UserSettings) FocusDuration() time.Duration {
	if s.FocusMinutes <= 0 {
		return DefaultFocusMinutes * time.Minute
	}

	return time.Duration(s.FocusMinutes) * time.Minute
}
