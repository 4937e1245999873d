package tui

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/neilberkman/rinselog/internal/core/export"
	"github.com/neilberkman/rinselog/internal/core/history"
	"github.com/neilberkman/rinselog/internal/core/i18n"
	"github.com/neilberkman/rinselog/internal/core/logform"
	"github.com/neilberkman/rinselog/internal/core/models"
)

type errMsg struct {
	err error
}

type historyLoadedMsg struct {
	entries []models.HistoryEntry
}

// formMsg carries an async completion back into the form reducer.
type formMsg struct {
	cmd logform.Command
}

type copiedMsg struct {
	err error
}

var errExportUnavailable = errors.New("export is not configured")

func loadHistory(store *history.Store) tea.Cmd {
	return func() tea.Msg {
		return historyLoadedMsg{entries: store.LoadAll()}
	}
}

func saveEntry(store *history.Store, session models.SessionLog) tea.Cmd {
	return func() tea.Msg {
		entry, err := store.Append(session)
		return formMsg{cmd: logform.SaveDone{Entry: entry, Err: err}}
	}
}

func deleteEntry(store *history.Store, id int64) tea.Cmd {
	return func() tea.Msg {
		err := store.Remove(id)
		return formMsg{cmd: logform.DeleteDone{ID: id, Err: err}}
	}
}

func runExport(exporter *export.Exporter, session models.SessionLog, loc i18n.Localizer) tea.Cmd {
	return func() tea.Msg {
		if exporter == nil {
			return formMsg{cmd: logform.ExportDone{Err: errExportUnavailable}}
		}
		path, err := exporter.Export(context.Background(), session, loc)
		return formMsg{cmd: logform.ExportDone{Path: path, Err: err}}
	}
}

func scheduleTick(gen int) tea.Cmd {
	return tea.Tick(logform.TickInterval, func(time.Time) tea.Msg {
		return formMsg{cmd: logform.Tick{Gen: gen}}
	})
}

// copyJSON copies v as indented JSON, the same shape the history slot
// stores.
func copyJSON(v interface{}) tea.Cmd {
	return func() tea.Msg {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return copiedMsg{err: err}
		}
		// Use cross-platform clipboard library
		return copiedMsg{err: clipboard.WriteAll(string(data))}
	}
}

func copyText(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: clipboard.WriteAll(text)}
	}
}
