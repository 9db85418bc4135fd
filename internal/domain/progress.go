package domain

import (
	"sort"
	"time"
)

type ProjectTotal struct {
	ProjectID ProjectID
	Words     int
	Sessions  int
}

type Progress struct {
	TotalWords    int
	TotalSessions int
	TotalDuration time.Duration
	TodayWords    int
	DailyGoal     int
	GoalPercent   float64
	StreakDays    int
	Projects      []ProjectTotal
}

func ComputeProgress(sessions []WritingSession, settings UserSettings, now time.Time) Progress {
	progress := Progress{
		TotalSessions: len(sessions),
		DailyGoal:     settings.DailyWordGoal,
	}

	today := dayOf(now, now.Location())
	days := make(map[time.Time]struct{}, len(sessions))
	perProject := map[ProjectID]*ProjectTotal{}

	for _, session := range sessions {
		progress.TotalWords += session.WordCount
		progress.TotalDuration += session.Duration()

		day := dayOf(sessionTime(session), now.Location())
		days[day] = struct{}{}
		if day.Equal(today) {
			progress.TodayWords += session.WordCount
		}

		total, ok := perProject[session.ProjectID]
		if !ok {
			total = &ProjectTotal{ProjectID: session.ProjectID}
			perProject[session.ProjectID] = total
		}
		total.Words += session.WordCount
		total.Sessions++
	}

	if progress.DailyGoal > 0 {
		progress.GoalPercent = clampPercent(float64(progress.TodayWords) * 100 / float64(progress.DailyGoal))
	}

	progress.StreakDays = streak(days, today)

	progress.Projects = make([]ProjectTotal, 0, len(perProject))
	for _, total := range perProject {
		progress.Projects = append(progress.Projects, *total)
	}
	sort.Slice(progress.Projects, func(i, j int) bool {
		if progress.Projects[i].Words != progress.Projects[j].Words {
			return progress.Projects[i].Words > progress.Projects[j].Words
		}
		return progress.Projects[i].ProjectID < progress.Projects[j].ProjectID
	})

	return progress
}

// streak counts consecutive writing days ending today, or yesterday if nothing was written yet today.
func streak(days map[time.Time]struct{}, today time.Time) int {
	cursor := today
	if _, ok := days[cursor]; !ok {
		cursor = cursor.AddDate(0, 0, -1)
	}

	count := 0
	for {
		if _, ok := days[cursor]; !ok {
			return count
		}
		count++
		cursor = cursor.AddDate(0, 0, -1)
	}
}

func sessionTime(session WritingSession) time.Time {
	if !session.EndTime.IsZero() {
		return session.EndTime
	}

	return session.StartTime
}

func dayOf(t time.Time, loc *time.Location) time.Time {
	year, month, day := t.In(loc).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
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
