// Package calendar lays out month grids and the meetings shown on them.
package calendar

import (
	"time"
)

// Grid dimensions: six weeks of seven days.
const (
	WeeksPerGrid = 6
	DaysPerWeek  = 7
)

// Meeting is a scheduled meeting.
type Meeting struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Time         string   `json:"time"`
	Participants []string `json:"participants"`
}

// MeetingSource returns the meetings held on a given day.
type MeetingSource interface {
	MeetingsOn(day time.Time) []Meeting
}

// Day is one cell of a month grid.
type Day struct {
	Date           time.Time
	Meetings       []Meeting
	IsToday        bool
	IsCurrentMonth bool
}

// Month is a six-week grid starting on the Sunday on or before the first of the month.
type Month struct {
	Title string
	First time.Time
	Prev  time.Time
	Next  time.Time
	Weeks [][]Day
}

// Grid lays out the month containing month. Days matching today are flagged.
// A nil src yields a grid without meetings.
func Grid(month, today time.Time, src MeetingSource) Month {
	first := FirstOfMonth(month)
	start := first.AddDate(0, 0, -int(first.Weekday()))

	weeks := make([][]Day, WeeksPerGrid)
	for w := range weeks {
		week := make([]Day, DaysPerWeek)
		for d := range week {
			date := start.AddDate(0, 0, w*DaysPerWeek+d)
			day := Day{
				Date:           date,
				IsToday:        SameDay(date, today),
				IsCurrentMonth: date.Month() == first.Month() && date.Year() == first.Year(),
			}
			if src != nil {
				day.Meetings = src.MeetingsOn(date)
			}
			week[d] = day
		}
		weeks[w] = week
	}

	return Month{
		Title: first.Format("January 2006"),
		First: first,
		Prev:  first.AddDate(0, -1, 0),
		Next:  first.AddDate(0, 1, 0),
		Weeks: weeks,
	}
}

// FirstOfMonth returns midnight on the first day of t's month, in t's location.
func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ParseMonth reads a YYYY-MM month, returning the first of fallback's month when s is
// empty or malformed.
func ParseMonth(s string, fallback time.Time) time.Time {
	t, err := time.ParseInLocation("2006-01", s, fallback.Location())
	if err != nil {
		return FirstOfMonth(fallback)
	}
	return t
}

// MonthParam formats t as the YYYY-MM value accepted by ParseMonth.
func MonthParam(t time.Time) string {
	return t.Format("2006-01")
}

// SampleMeetings is a fixed demonstration schedule relative to Today.
type SampleMeetings struct {
	Today time.Time
}

// MeetingsOn returns two meetings today and one tomorrow.
func (s SampleMeetings) MeetingsOn(day time.Time) []Meeting {
	switch {
	case SameDay(day, s.Today):
		return []Meeting{
			{ID: "1", Title: "Team Standup", Time: "10:00 AM", Participants: []string{"Alice", "Bob", "Charlie"}},
			{ID: "2", Title: "Client Sync", Time: "2:00 PM", Participants: []string{"Alice", "Dana"}},
		}
	case SameDay(day, s.Today.AddDate(0, 0, 1)):
		return []Meeting{
			{ID: "3", Title: "Project Planning", Time: "11:00 AM", Participants: []string{"Bob", "Charlie"}},
		}
	default:
		return nil
	}
}

// Upcoming returns the meetings from today through the next days days, in order.
func Upcoming(src MeetingSource, today time.Time, days int) []Day {
	var out []Day
	for i := range days {
		date := today.AddDate(0, 0, i)
		if meetings := src.MeetingsOn(date); len(meetings) > 0 {
			out = append(out, Day{Date: date, Meetings: meetings, IsToday: i == 0, IsCurrentMonth: true})
		}
	}
	return out
}
