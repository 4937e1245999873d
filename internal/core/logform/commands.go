package logform

import (
	"time"

	"github.com/neilberkman/rinselog/internal/core/models"
)

// Command is one user action or async completion applied by Reduce.
type Command interface {
	command()
}

// AddRound appends a blank round of Type.
type AddRound struct{ Type models.RoundType }

// RemoveRound drops the round at 1-based Position.
type RemoveRound struct{ Position int }

// SetField edits a session-level field.
type SetField struct {
	Field models.Field
	Value string
}

// SetRoundField edits one column of the round at 1-based Position.
type SetRoundField struct {
	Position int
	Field    models.RoundField
	Value    string
}

type (
	StartTimer  struct{}
	PauseTimer  struct{}
	ToggleTimer struct{}
	ResetTimer  struct{}
	CommitTimer struct{}
)

// Tick advances a running stopwatch whose generation is Gen.
type Tick struct{ Gen int }

// SaveSession snapshots the form into history.
type SaveSession struct{ At time.Time }

// SaveDone reports the outcome of a PersistEntry effect.
type SaveDone struct {
	Entry models.HistoryEntry
	Err   error
}

// RequestReset asks to replace the form with a fresh default.
type RequestReset struct{}

// RequestDelete asks to remove a saved entry.
type RequestDelete struct{ ID int64 }

// DeleteDone reports the outcome of a DeleteEntry effect.
type DeleteDone struct {
	ID  int64
	Err error
}

// Confirm applies the pending request. At dates the fresh form on reset.
type Confirm struct{ At time.Time }

// Cancel drops the pending request.
type Cancel struct{}

// BeginExport starts a document export of the current form.
type BeginExport struct{}

// ExportDone reports the outcome of a RunExport effect.
type ExportDone struct {
	Path string
	Err  error
}

// LoadSession replaces the form with a copy of a saved entry.
type LoadSession struct{ Entry models.HistoryEntry }

// DismissNotice clears the status line.
type DismissNotice struct{}

func (AddRound) command()      {}
func (RemoveRound) command()   {}
func (SetField) command()      {}
func (SetRoundField) command() {}
func (StartTimer) command()    {}
func (PauseTimer) command()    {}
func (ToggleTimer) command()   {}
func (ResetTimer) command()    {}
func (CommitTimer) command()   {}
func (Tick) command()          {}
func (SaveSession) command()   {}
func (SaveDone) command()      {}
func (RequestReset) command()  {}
func (RequestDelete) command() {}
func (DeleteDone) command()    {}
func (Confirm) command()       {}
func (Cancel) command()        {}
func (BeginExport) command()   {}
func (ExportDone) command()    {}
func (LoadSession) command()   {}
func (DismissNotice) command() {}

// Effect is work the caller performs after a transition. Completions come
// back as SaveDone, DeleteDone, ExportDone or Tick.
type Effect interface {
	effect()
}

// PersistEntry asks the caller to append Session to history.
type PersistEntry struct{ Session models.SessionLog }

// DeleteEntry asks the caller to remove entry ID from history.
type DeleteEntry struct{ ID int64 }

// RunExport asks the caller to export Session.
type RunExport struct{ Session models.SessionLog }

// ScheduleTick asks the caller to send Tick{Gen} after TickInterval.
type ScheduleTick struct{ Gen int }

func (PersistEntry) effect() {}
func (DeleteEntry) effect()  {}
func (RunExport) effect()    {}
func (ScheduleTick) effect() {}
