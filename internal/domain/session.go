package domain

import (
	"sort"
	"strings"
	"time"
)

type SessionID string

type WritingSession struct {
	ID              SessionID
	ClientRef       string
	ProjectID       ProjectID
	StartTime       time.Time
	EndTime         time.Time
	Content         string
	WordCount       int
	WasMultitasking bool
}

func (s WritingSession) Duration() time.Duration {
	if s.StartTime.IsZero() || s.EndTime.Before(s.StartTime) {
		return 0
	}

	return s.EndTime.Sub(s.StartTime)
}

// Normalized fills in the word count from the content when the caller left it unset.
func (s WritingSession) Normalized() WritingSession {
	if s.WordCount <= 0 {
		s.WordCount = CountWords(s.Content)
	}

	return s
}

// SessionDraft is the partial session the form starts from. The zero value is an empty form.
type SessionDraft struct {
	StartTime       time.Time
	EndTime         time.Time
	Content         string
	WordCount       int
	WasMultitasking bool
}

func (d SessionDraft) IsZero() bool {
	return d == SessionDraft{}
}

func (d SessionDraft) Session() WritingSession {
	return WritingSession{
		StartTime:       d.StartTime,
		EndTime:         d.EndTime,
		Content:         d.Content,
		WordCount:       d.WordCount,
		WasMultitasking: d.WasMultitasking,
	}
}

// FocusResult is what a focus run hands back when the writer leaves it with recorded text.
type FocusResult struct {
	StartTime time.Time
	EndTime   time.Time
	Text      string
	WordCount int
}

// Draft converts the result into a form prefill. Focus runs are never multitasked.
func (r FocusResult) Draft() SessionDraft {
	return SessionDraft{
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		Content:         r.Text,
		WordCount:       r.WordCount,
		WasMultitasking: false,
	}
}

// SortSessionsNewestFirst orders sessions by start time, latest first. Ties keep their order.
func SortSessionsNewestFirst(sessions []WritingSession) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].StartTime.After(sessions[j].StartTime)
	})
}

func CountWords(text string) int {
	return len(strings.Fields(text))
}
