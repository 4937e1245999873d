package logform

import (
	"errors"
	"testing"
	"time"

	"github.com/neilberkman/rinselog/internal/core/i18n"
	"github.com/neilberkman/rinselog/internal/core/models"
)

var day = time.Date(2025, 3, 14, 21, 0, 0, 0, time.UTC)

func apply(t *testing.T, s State, cmds ...Command) (State, []Effect) {
	t.Helper()
	var effects []Effect
	for _, c := range cmds {
		var eff []Effect
		s, eff = Reduce(s, c)
		effects = append(effects, eff...)
	}
	return s, effects
}

// runTicks feeds back every ScheduleTick the reducer asks for, n times.
func runTicks(s State, n int) State {
	for i := 0; i < n; i++ {
		s, _ = Reduce(s, Tick{Gen: s.Stopwatch.Gen})
	}
	return s
}

func TestTimerCommit(t *testing.T) {
	s, eff := apply(t, New(day), StartTimer{})
	if len(eff) != 1 {
		t.Fatalf("StartTimer effects = %v, want one ScheduleTick", eff)
	}
	if tick, ok := eff[0].(ScheduleTick); !ok || tick.Gen != s.Stopwatch.Gen {
		t.Fatalf("effect = %#v", eff[0])
	}

	s = runTicks(s, 125)
	s, _ = apply(t, s, CommitTimer{})

	if s.Session.TotalTimeMin != "2.1" {
		t.Errorf("TotalTimeMin = %q, want 2.1", s.Session.TotalTimeMin)
	}
	if !s.Stopwatch.Running {
		t.Error("commit should not stop the stopwatch")
	}
	if s.Stopwatch.Seconds != 125 {
		t.Errorf("Seconds = %d", s.Stopwatch.Seconds)
	}

	// Exact halves round up.
	ties := []struct {
		seconds int
		want    string
	}{
		{15, "0.3"},
		{75, "1.3"},
		{135, "2.3"},
		{9, "0.1"},
	}
	for _, tt := range ties {
		s, _ := apply(t, New(day), StartTimer{})
		s = runTicks(s, tt.seconds)
		s, _ = apply(t, s, CommitTimer{})
		if s.Session.TotalTimeMin != tt.want {
			t.Errorf("commit after %ds: TotalTimeMin = %q, want %q", tt.seconds, s.Session.TotalTimeMin, tt.want)
		}
	}
}

func TestTimerPauseStopsTicks(t *testing.T) {
	s, _ := apply(t, New(day), StartTimer{})
	s = runTicks(s, 10)
	gen := s.Stopwatch.Gen

	s, eff := apply(t, s, PauseTimer{}, Tick{Gen: gen})
	if len(eff) != 0 {
		t.Errorf("tick after pause scheduled %v", eff)
	}
	if s.Stopwatch.Seconds != 10 {
		t.Errorf("Seconds = %d after pause, want 10", s.Stopwatch.Seconds)
	}

	// Resuming keeps the count but invalidates ticks from the first run
	s, _ = apply(t, s, StartTimer{})
	s, _ = apply(t, s, Tick{Gen: gen})
	if s.Stopwatch.Seconds != 10 {
		t.Error("stale generation tick was counted")
	}
	s, _ = apply(t, s, Tick{Gen: s.Stopwatch.Gen})
	if s.Stopwatch.Seconds != 11 {
		t.Errorf("Seconds = %d, want 11", s.Stopwatch.Seconds)
	}
}

func TestStartTwiceSchedulesOnce(t *testing.T) {
	s, eff := apply(t, New(day), StartTimer{}, StartTimer{})
	if len(eff) != 1 {
		t.Errorf("effects = %d, want 1", len(eff))
	}
	s, eff = apply(t, s, ToggleTimer{})
	if s.Stopwatch.Running || len(eff) != 0 {
		t.Error("toggle should pause a running stopwatch")
	}
}

func TestResetTimer(t *testing.T) {
	s, _ := apply(t, New(day), StartTimer{})
	s = runTicks(s, 30)
	gen := s.Stopwatch.Gen
	s, _ = apply(t, s, ResetTimer{}, Tick{Gen: gen})

	if s.Stopwatch.Seconds != 0 || s.Stopwatch.Running {
		t.Errorf("stopwatch after reset = %+v", s.Stopwatch)
	}
	if s.Stopwatch.Clock() != "00:00" {
		t.Errorf("Clock() = %q", s.Stopwatch.Clock())
	}
}

func TestSaveEmitsIndependentCopy(t *testing.T) {
	s, eff := apply(t, New(day), SetRoundField{Position: 1, Field: models.RoundFieldDepth, Value: "15"}, SaveSession{At: day})
	if len(eff) != 1 {
		t.Fatalf("effects = %v", eff)
	}
	persist, ok := eff[0].(PersistEntry)
	if !ok {
		t.Fatalf("effect = %#v, want PersistEntry", eff[0])
	}

	s, _ = apply(t, s, SetRoundField{Position: 1, Field: models.RoundFieldDepth, Value: "30"})
	if persist.Session.Rounds[0].DepthCm != "15" {
		t.Error("saved snapshot follows later edits")
	}
	if s.Session.Rounds[0].DepthCm != "30" {
		t.Error("save should not clear the form")
	}
	if !s.LastSaved.Equal(day) {
		t.Errorf("LastSaved = %v", s.LastSaved)
	}
}

func TestSaveDoneNotices(t *testing.T) {
	s, _ := apply(t, New(day), SaveDone{})
	if s.Notice == nil || s.Notice.Key != i18n.LogSaveSuccess {
		t.Errorf("notice = %+v", s.Notice)
	}
	s, _ = apply(t, s, SaveDone{Err: errors.New("disk full")})
	if s.Notice == nil || !s.Notice.Error || s.Notice.Repl["error"] != "disk full" {
		t.Errorf("notice = %+v", s.Notice)
	}
	s, _ = apply(t, s, DismissNotice{})
	if s.Notice != nil {
		t.Error("notice not dismissed")
	}
}

func TestResetConfirmation(t *testing.T) {
	edited, _ := apply(t, New(day),
		AddRound{Type: models.RoundDeep},
		SetField{Field: models.FieldNotes, Value: "slow fill"},
	)

	t.Run("cancel leaves state", func(t *testing.T) {
		s, _ := apply(t, edited, RequestReset{}, Cancel{})
		if len(s.Session.Rounds) != 4 || s.Session.Notes != "slow fill" {
			t.Error("cancelled reset changed the form")
		}
		if s.Pending.Kind != ConfirmNone {
			t.Error("pending request left behind")
		}
	})

	t.Run("confirm replaces form", func(t *testing.T) {
		next := day.Add(24 * time.Hour)
		s, _ := apply(t, edited, RequestReset{}, Confirm{At: next})
		if len(s.Session.Rounds) != 3 || s.Session.Notes != "" {
			t.Errorf("form after reset = %+v", s.Session)
		}
		if s.Session.Date != "2025-03-15" {
			t.Errorf("Date = %q", s.Session.Date)
		}
	})

	t.Run("edits while pending are ignored", func(t *testing.T) {
		s, _ := apply(t, edited, RequestReset{}, AddRound{Type: models.RoundShallow}, Cancel{})
		if len(s.Session.Rounds) != 4 {
			t.Error("edit applied while confirmation was pending")
		}
	})

	t.Run("confirm without request", func(t *testing.T) {
		s, eff := apply(t, edited, Confirm{At: day})
		if len(eff) != 0 || len(s.Session.Rounds) != 4 {
			t.Error("stray confirm had an effect")
		}
	})
}

func TestDeleteConfirmation(t *testing.T) {
	s, eff := apply(t, New(day), RequestDelete{ID: 42})
	if len(eff) != 0 || s.Pending.Kind != ConfirmDelete {
		t.Fatalf("request should only set pending, got %v", eff)
	}
	if s.Pending.Prompt() != i18n.HistoryDeleteConfirm {
		t.Errorf("Prompt() = %q", s.Pending.Prompt())
	}

	_, eff = apply(t, s, Cancel{})
	if len(eff) != 0 {
		t.Error("cancel produced a delete")
	}

	_, eff = apply(t, s, Confirm{})
	if len(eff) != 1 {
		t.Fatalf("effects = %v", eff)
	}
	if del, ok := eff[0].(DeleteEntry); !ok || del.ID != 42 {
		t.Errorf("effect = %#v", eff[0])
	}
}

func TestExportReentrancy(t *testing.T) {
	s, eff := apply(t, New(day), BeginExport{}, BeginExport{})
	if len(eff) != 1 {
		t.Fatalf("two begins produced %d exports, want 1", len(eff))
	}
	if !s.Exporting {
		t.Fatal("Exporting not set")
	}

	s, _ = apply(t, s, ExportDone{Err: errors.New("boom")})
	if s.Exporting {
		t.Error("flag not cleared after failure")
	}
	if s.Notice == nil || s.Notice.Key != i18n.LogExportError {
		t.Errorf("notice = %+v", s.Notice)
	}

	s, eff = apply(t, s, BeginExport{}, ExportDone{Path: "/tmp/rinse-log_2025-03-14.pdf"})
	if len(eff) != 1 || s.Exporting {
		t.Error("retry after failure should run again and clear the flag")
	}
	if s.Notice.Repl["path"] != "/tmp/rinse-log_2025-03-14.pdf" {
		t.Errorf("notice = %+v", s.Notice)
	}
}

func TestLoadSession(t *testing.T) {
	saved := models.InsertRound(models.NewSession(day), models.RoundFinisher)
	entry := models.HistoryEntry{ID: 1710000000000, Data: saved}

	s, _ := apply(t, New(day), LoadSession{Entry: entry})
	if len(s.Session.Rounds) != 4 {
		t.Fatalf("rounds = %d", len(s.Session.Rounds))
	}
	s, _ = apply(t, s, SetRoundField{Position: 4, Field: models.RoundFieldDepth, Value: "9"})
	if entry.Data.Rounds[3].DepthCm != "" {
		t.Error("editing the loaded form changed the history entry")
	}
	if s.Notice.Repl["id"] != "1710000000000" {
		t.Errorf("notice = %+v", s.Notice)
	}
}

func TestStopwatchClock(t *testing.T) {
	tests := []struct {
		seconds int
		clock   string
		minutes string
	}{
		{0, "00:00", "0.0"},
		{59, "00:59", "1.0"},
		{15, "00:15", "0.3"},
		{75, "01:15", "1.3"},
		{125, "02:05", "2.1"},
		{135, "02:15", "2.3"},
		{3725, "1:02:05", "62.1"},
	}
	for _, tt := range tests {
		sw := Stopwatch{Seconds: tt.seconds}
		if got := sw.Clock(); got != tt.clock {
			t.Errorf("Clock(%d) = %q, want %q", tt.seconds, got, tt.clock)
		}
		if got := sw.Minutes(); got != tt.minutes {
			t.Errorf("Minutes(%d) = %q, want %q", tt.seconds, got, tt.minutes)
		}
	}
}
