// Package dates turns typed dates ("yesterday", "2025-03-14", "3 days ago")
// into calendar dates for the form and for history filters.
package dates

import (
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"github.com/neilberkman/rinselog/internal/core/models"
)

var formats = []string{
	models.DateLayout,
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"2006.01.02",
	"01/02/2006",
}

func newParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

// Parse reads an absolute date in one of the accepted layouts or a natural
// language expression relative to now.
func Parse(input string, now time.Time) (time.Time, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, false
	}

	for _, format := range formats {
		if t, err := time.ParseInLocation(format, input, now.Location()); err == nil {
			return t, true
		}
	}

	// "last-week" reads better on a command line than "last week"
	phrase := strings.ReplaceAll(input, "-", " ")
	result, err := newParser().Parse(phrase, now)
	if err == nil && result != nil {
		return result.Time, true
	}
	return time.Time{}, false
}

// Normalize returns input as YYYY-MM-DD. Input that cannot be read as a
// date is returned unchanged with ok false.
func Normalize(input string, now time.Time) (string, bool) {
	t, ok := Parse(input, now)
	if !ok {
		return input, false
	}
	return t.Format(models.DateLayout), true
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last instant of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// Filter is a parsed history query.
type Filter struct {
	Text   string
	After  time.Time
	Before time.Time
}

// IsZero reports whether the filter matches everything.
func (f Filter) IsZero() bool {
	return f.Text == "" && f.After.IsZero() && f.Before.IsZero()
}

// ParseFilter splits a query into free text and date bounds.
// Supports:
//   - date:<when> - only that calendar day
//   - after:<when>, before:<when> - open ranges, inclusive of the day named
//
// Unreadable dates are kept as text so the user can see nothing matched.
func ParseFilter(query string, now time.Time) Filter {
	var f Filter
	var text []string

	for _, token := range strings.Fields(query) {
		prefix, value, found := strings.Cut(token, ":")
		if !found {
			text = append(text, token)
			continue
		}

		t, ok := Parse(value, now)
		switch {
		case !ok:
			text = append(text, token)
		case prefix == "date":
			f.After = StartOfDay(t)
			f.Before = EndOfDay(t)
		case prefix == "after":
			f.After = StartOfDay(t)
		case prefix == "before":
			f.Before = EndOfDay(t)
		default:
			text = append(text, token)
		}
	}

	f.Text = strings.Join(text, " ")
	return f
}

// Match reports whether an entry saved at savedAt for a session dated
// sessionDate passes the filter. Text matches the session date or notes,
// case-insensitively.
func (f Filter) Match(savedAt time.Time, sessionDate, notes string) bool {
	if !f.After.IsZero() && savedAt.Before(f.After) {
		return false
	}
	if !f.Before.IsZero() && savedAt.After(f.Before) {
		return false
	}
	if f.Text == "" {
		return true
	}
	needle := strings.ToLower(f.Text)
	return strings.Contains(strings.ToLower(sessionDate), needle) ||
		strings.Contains(strings.ToLower(notes), needle)
}
