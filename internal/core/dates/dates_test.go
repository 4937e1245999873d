package dates

import (
	"testing"
	"time"
)

var now = time.Date(2025, 3, 14, 22, 30, 0, 0, time.UTC)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{"2025-03-01", "2025-03-01", true},
		{"2025/03/01", "2025-03-01", true},
		{"2025.03.01", "2025-03-01", true},
		{"03/01/2025", "2025-03-01", true},
		{"2025-03-01T08:00:00", "2025-03-01", true},
		{"yesterday", "2025-03-13", true},
		{"today", "2025-03-14", true},
		{"", "", false},
		{"not a date", "not a date", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := Normalize(tt.input, now)
			if ok != tt.wantOK {
				t.Fatalf("Normalize(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDayBounds(t *testing.T) {
	start := StartOfDay(now)
	end := EndOfDay(now)
	if start.Hour() != 0 || start.Day() != 14 {
		t.Errorf("StartOfDay = %v", start)
	}
	if end.Day() != 14 || end.Hour() != 23 || !end.Add(time.Nanosecond).Equal(start.AddDate(0, 0, 1)) {
		t.Errorf("EndOfDay = %v", end)
	}
}

func TestParseFilter(t *testing.T) {
	f := ParseFilter("after:2025-03-01 before:2025-03-10 cramping", now)
	if f.Text != "cramping" {
		t.Errorf("Text = %q", f.Text)
	}
	if !f.After.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("After = %v", f.After)
	}
	if !f.Before.Equal(EndOfDay(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))) {
		t.Errorf("Before = %v", f.Before)
	}

	day := ParseFilter("date:2025-03-05", now)
	if day.Text != "" || day.After.Day() != 5 || day.Before.Day() != 5 {
		t.Errorf("date: filter = %+v", day)
	}

	bad := ParseFilter("after:someday", now)
	if bad.Text != "after:someday" || !bad.After.IsZero() {
		t.Errorf("unreadable date should stay as text, got %+v", bad)
	}

	if !ParseFilter("   ", now).IsZero() {
		t.Error("blank query should match everything")
	}
}

func TestFilterMatch(t *testing.T) {
	f := ParseFilter("after:2025-03-01 guide", now)
	inRange := time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)
	tooEarly := time.Date(2025, 2, 28, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		savedAt time.Time
		notes   string
		want    bool
	}{
		{"match", inRange, "Guide water helped", true},
		{"wrong text", inRange, "nothing special", false},
		{"too early", tooEarly, "guide water", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Match(tt.savedAt, "2025-03-02", tt.notes); got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}

	if !ParseFilter("2025-03", now).Match(inRange, "2025-03-02", "") {
		t.Error("text should match the session date")
	}
}
