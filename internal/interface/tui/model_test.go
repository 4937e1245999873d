package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/neilberkman/rinselog/internal/core/db"
	"github.com/neilberkman/rinselog/internal/core/history"
	"github.com/neilberkman/rinselog/internal/core/i18n"
	"github.com/neilberkman/rinselog/internal/core/logform"
	"github.com/neilberkman/rinselog/internal/core/models"
)

var testNow = time.Date(2025, 3, 14, 21, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T) (Model, *history.Store) {
	t.Helper()
	database, err := db.New(filepath.Join(t.TempDir(), "tui.db"))
	if err != nil {
		t.Fatalf("db.New() error = %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	store := history.NewStore(database)
	m := New(Options{
		Store:    store,
		Resolver: i18n.MustNew(i18n.English),
		Lang:     i18n.English,
		Now:      func() time.Time { return testNow },
	})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model), store
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends keys and returns the final model with the last command.
func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyPress(k))
		m = next.(Model)
	}
	return m, cmd
}

// drain runs cmd and feeds every resulting message back into the model.
// Ticks are not followed so a running stopwatch does not loop forever.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			m = drain(t, m, c)
		}
		return m
	}
	if fm, ok := msg.(formMsg); ok {
		if _, isTick := fm.cmd.(logform.Tick); isTick {
			return m
		}
	}
	next, follow := m.Update(msg)
	return drain(t, next.(Model), follow)
}

func tickFor(m Model) logform.Command {
	return logform.Tick{Gen: m.form.Stopwatch.Gen}
}

func TestViewSwitchKeepsForm(t *testing.T) {
	m, _ := newTestModel(t)
	if m.mode != logView {
		t.Fatalf("initial view = %v, want log", m.mode)
	}

	m, _ = press(t, m, "2")
	if len(m.form.Session.Rounds) != 4 {
		t.Fatalf("rounds = %d after adding one", len(m.form.Session.Rounds))
	}

	m, _ = press(t, m, "]")
	if m.mode != historyView {
		t.Errorf("view = %v, want history", m.mode)
	}
	m, _ = press(t, m, "]")
	if m.mode != checklistView {
		t.Errorf("view = %v, want checklist", m.mode)
	}
	m, _ = press(t, m, "]")
	if m.mode != logView {
		t.Errorf("view = %v, want log", m.mode)
	}
	if len(m.form.Session.Rounds) != 4 || m.form.Session.Rounds[3].Type != models.RoundDeep {
		t.Error("form lost its rounds while switching views")
	}
}

func TestResetNeedsConfirmation(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(t, m, "1", "1", "R")
	if !strings.Contains(m.View(), "Are you sure you want to reset the form?") {
		t.Error("confirmation prompt not shown")
	}

	// Other keys are ignored while the question is open
	m, _ = press(t, m, "1", "n")
	if len(m.form.Session.Rounds) != 5 {
		t.Fatalf("rounds = %d after declining, want 5", len(m.form.Session.Rounds))
	}

	m, _ = press(t, m, "R", "y")
	if len(m.form.Session.Rounds) != 3 {
		t.Errorf("rounds = %d after reset, want 3", len(m.form.Session.Rounds))
	}
}

func TestSaveThenDeleteFromHistory(t *testing.T) {
	m, store := newTestModel(t)

	m, cmd := press(t, m, "s")
	m = drain(t, m, cmd)
	if got := len(store.Entries()); got != 1 {
		t.Fatalf("store has %d entries after save", got)
	}
	if len(m.entries) != 1 {
		t.Fatalf("history view has %d entries", len(m.entries))
	}
	if m.form.Notice == nil || m.form.Notice.Key != i18n.LogSaveSuccess {
		t.Errorf("notice = %+v", m.form.Notice)
	}

	m, _ = press(t, m, "]")
	m, cmd = press(t, m, "d")
	if cmd != nil {
		t.Error("delete should wait for confirmation")
	}
	m, cmd = press(t, m, "y")
	m = drain(t, m, cmd)

	if got := len(store.Entries()); got != 0 {
		t.Errorf("store has %d entries after delete", got)
	}
	if len(m.entries) != 0 {
		t.Errorf("history view has %d entries after delete", len(m.entries))
	}
}

func TestEditTextField(t *testing.T) {
	m, _ := newTestModel(t)

	// Row 0 starts on the date; tab to hours since last BM
	m, _ = press(t, m, "tab", "enter")
	if !m.editing {
		t.Fatal("enter on a text field should start editing")
	}
	m, _ = press(t, m, "1", "2", "enter")
	if m.editing {
		t.Error("enter should apply the edit")
	}
	if m.form.Session.LastBMHours != "12" {
		t.Errorf("LastBMHours = %q", m.form.Session.LastBMHours)
	}

	// Choice fields cycle instead of opening an input
	m, _ = press(t, m, "tab", "enter")
	if m.editing {
		t.Error("choice field opened a text input")
	}
	if m.form.Session.LastBMType != models.LastBMLoose {
		t.Errorf("LastBMType = %q", m.form.Session.LastBMType)
	}
}

func TestEditDateNormalizes(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(t, m, "enter")
	m.input.SetValue("yesterday")
	m, _ = press(t, m, "enter")
	if m.form.Session.Date != "2025-03-13" {
		t.Errorf("Date = %q, want 2025-03-13", m.form.Session.Date)
	}
}

func TestExportIgnoredWhileRunning(t *testing.T) {
	m, _ := newTestModel(t)
	m, first := press(t, m, "e")
	if first == nil || !m.form.Exporting {
		t.Fatal("first export did not start")
	}
	m, second := press(t, m, "e")
	if second != nil {
		t.Error("second export should be ignored while the first runs")
	}

	// No exporter configured: the attempt fails and releases the flag
	m = drain(t, m, first)
	if m.form.Exporting {
		t.Error("export flag still set")
	}
	if m.form.Notice == nil || !m.form.Notice.Error {
		t.Errorf("notice = %+v", m.form.Notice)
	}
}

func TestLanguageToggle(t *testing.T) {
	m, _ := newTestModel(t)
	if !strings.Contains(m.View(), "Deep Rinse Companion") {
		t.Fatal("expected English title")
	}
	m, _ = press(t, m, "L")
	if m.lang != i18n.Chinese {
		t.Fatalf("lang = %q", m.lang)
	}
	if !strings.Contains(m.View(), "深層灌腸教學與實踐日誌") {
		t.Error("expected Chinese title after toggle")
	}
}

func TestChecklistMarkdown(t *testing.T) {
	md := checklistMarkdown(i18n.MustNew(i18n.English).For(i18n.English))
	for _, want := range []string{"Important Safety Notice", "## 0. Preparation", "    - Water temperature", "## 6. Recovery"} {
		if !strings.Contains(md, want) {
			t.Errorf("checklist missing %q", want)
		}
	}
}

func TestTimerKeys(t *testing.T) {
	m, _ := newTestModel(t)
	m, cmd := press(t, m, "t")
	if cmd == nil || !m.form.Stopwatch.Running {
		t.Fatal("t should start the stopwatch and schedule a tick")
	}

	// Deliver ticks by hand
	for i := 0; i < 125; i++ {
		next, _ := m.Update(formMsg{cmd: tickFor(m)})
		m = next.(Model)
	}
	m, _ = press(t, m, "m")
	if m.form.Session.TotalTimeMin != "2.1" {
		t.Errorf("TotalTimeMin = %q, want 2.1", m.form.Session.TotalTimeMin)
	}
	m, _ = press(t, m, "T")
	if m.form.Stopwatch.Seconds != 0 || m.form.Stopwatch.Running {
		t.Errorf("stopwatch after reset = %+v", m.form.Stopwatch)
	}
}
