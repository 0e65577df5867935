package domain

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// DateOf strips the clock from t and pins it to UTC midnight so calendar
// dates compare and sort consistently whatever the driver returned.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, err
	}
	return DateOf(t), nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func isBusinessDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// BusinessDays counts Monday to Friday dates in [start, end]. Holidays are not
// considered. An inverted range counts zero.
func BusinessDays(start, end time.Time) int {
	start, end = DateOf(start), DateOf(end)
	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if isBusinessDay(d) {
			count++
		}
	}
	return count
}

// ProjectWindow is the configured [Start, End] period of the project. Task
// dates must fall inside it and the Gantt and timeline views are drawn over it.
type ProjectWindow struct {
	Start time.Time
	End   time.Time
}

func NewProjectWindow(start, end time.Time) (ProjectWindow, error) {
	start, end = DateOf(start), DateOf(end)
	if start.After(end) {
		return ProjectWindow{}, fmt.Errorf("project window start %s is after end %s", FormatDate(start), FormatDate(end))
	}
	return ProjectWindow{Start: start, End: end}, nil
}

func (w ProjectWindow) Contains(t time.Time) bool {
	t = DateOf(t)
	return !t.Before(w.Start) && !t.After(w.End)
}

// WorkDays lists every business day of the window, both ends included.
func (w ProjectWindow) WorkDays() []time.Time {
	days := make([]time.Time, 0, BusinessDays(w.Start, w.End))
	for d := w.Start; !d.After(w.End); d = d.AddDate(0, 0, 1) {
		if isBusinessDay(d) {
			days = append(days, d)
		}
	}
	return days
}
