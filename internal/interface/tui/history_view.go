package tui

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/neilberkman/rinselog/internal/core/dates"
	"github.com/neilberkman/rinselog/internal/core/export"
	"github.com/neilberkman/rinselog/internal/core/i18n"
	"github.com/neilberkman/rinselog/internal/core/logform"
	"github.com/neilberkman/rinselog/internal/core/models"
)

const linesPerEntry = 3 // Title, summary, blank

func humanTime(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}

// applyFilter recomputes the visible entries and keeps the selection in
// range.
func (m Model) applyFilter() Model {
	visible := make([]models.HistoryEntry, 0, len(m.entries))
	for _, e := range m.entries {
		if m.filter.Match(e.SavedAt(), e.Data.Date, e.Data.Notes) {
			visible = append(visible, e)
		}
	}
	m.visible = visible
	if m.selected >= len(m.visible) {
		m.selected = len(m.visible) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	return m.adjustHistoryViewport()
}

// adjustHistoryViewport ensures the selected entry is visible.
func (m Model) adjustHistoryViewport() Model {
	maxVisible := m.bodyHeight() / linesPerEntry
	if m.preview {
		maxVisible = 1
	}
	if maxVisible < 1 {
		maxVisible = 1
	}

	// Scroll down if selected item is below visible window
	if m.selected >= m.offset+maxVisible {
		m.offset = m.selected - maxVisible + 1
	}
	// Scroll up if selected item is above visible window
	if m.selected < m.offset {
		m.offset = m.selected
	}
	return m
}

func (m Model) selectedEntry() (models.HistoryEntry, bool) {
	if m.selected < 0 || m.selected >= len(m.visible) {
		return models.HistoryEntry{}, false
	}
	return m.visible[m.selected], true
}

func (m Model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m.adjustHistoryViewport(), nil

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.visible)-1 {
			m.selected++
		}
		return m.adjustHistoryViewport(), nil

	case key.Matches(msg, m.keys.Edit):
		m.preview = !m.preview
		return m.adjustHistoryViewport(), nil

	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.filterText.Placeholder = m.loc().T(i18n.TUIFilter)
		cmd := m.filterText.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Cancel):
		if !m.filter.IsZero() {
			m.filter = dates.Filter{}
			m.filterText.SetValue("")
			return m.applyFilter(), nil
		}
		m.preview = false
		return m, nil
	}

	entry, ok := m.selectedEntry()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Load):
		var cmd tea.Cmd
		m, cmd = m.dispatch(logform.LoadSession{Entry: entry})
		m.mode = logView
		m.row, m.col = 0, 0
		return m, cmd

	case key.Matches(msg, m.keys.Copy):
		return m, copyJSON(entry)

	case key.Matches(msg, m.keys.Delete):
		var cmd tea.Cmd
		m, cmd = m.dispatch(logform.RequestDelete{ID: entry.ID})
		return m, cmd
	}
	return m, nil
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filtering = false
		m.filterText.Blur()
		return m, nil
	case "esc", "ctrl+c":
		m.filtering = false
		m.filterText.Blur()
		m.filterText.SetValue("")
		m.filter = dates.Filter{}
		return m.applyFilter(), nil
	}

	var cmd tea.Cmd
	m.filterText, cmd = m.filterText.Update(msg)
	// Live filtering as the user types
	m.filter = dates.ParseFilter(m.filterText.Value(), m.now())
	return m.applyFilter(), cmd
}

func (m Model) viewHistory() string {
	loc := m.loc()
	width := m.width
	if width <= 0 {
		width = 100
	}

	var b strings.Builder
	if m.filtering || !m.filter.IsZero() {
		b.WriteString(m.filterText.View() + "\n")
	}

	if len(m.entries) == 0 {
		b.WriteString(titleStyle.Render(loc.T(i18n.HistoryNoHistory)) + "\n")
		b.WriteString(metaStyle.Render(loc.T(i18n.HistoryNoHistorySub)))
		return b.String()
	}
	if len(m.visible) == 0 {
		b.WriteString(metaStyle.Render(loc.T(i18n.TUINoMatches)))
		return b.String()
	}

	maxVisible := m.bodyHeight() / linesPerEntry
	if m.preview {
		maxVisible = 1
	}
	if maxVisible < 1 {
		maxVisible = 1
	}
	end := m.offset + maxVisible
	if end > len(m.visible) {
		end = len(m.visible)
	}

	now := m.now()
	for i := m.offset; i < end; i++ {
		e := m.visible[i]
		title := fmt.Sprintf("%s  %s %d · %s", e.Data.Date, loc.T(i18n.HistoryID), e.ID, humanTime(e.SavedAt(), now))
		summary := ansi.Truncate(export.Summary(e.Data, loc), width-4, "…")

		if i == m.selected {
			b.WriteString(selectedItemStyle.Render("▸ "+title) + "\n")
			b.WriteString(itemStyle.Render(metaStyle.Render(summary)) + "\n\n")
		} else {
			b.WriteString(itemStyle.Render(title) + "\n")
			b.WriteString(itemStyle.Render(metaStyle.Render(summary)) + "\n\n")
		}
	}

	if m.preview {
		if e, ok := m.selectedEntry(); ok {
			b.WriteString(titleStyle.Render(loc.T(i18n.HistoryJSONPreview)) + "\n")
			data, err := json.MarshalIndent(e.Data, "", "  ")
			if err != nil {
				data = []byte(err.Error())
			}
			lines := strings.Split(string(data), "\n")
			room := m.bodyHeight() - linesPerEntry - 3
			if room < 3 {
				room = 3
			}
			if len(lines) > room {
				lines = append(lines[:room-1], "…")
			}
			b.WriteString(previewStyle.Render(strings.Join(lines, "\n")))
		}
	}

	return b.String()
}
