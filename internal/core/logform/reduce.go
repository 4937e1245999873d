// Package logform holds the editing state of the session form and the
// reducer that applies user commands to it. Reduce never performs I/O; it
// returns effects for the caller to run and feed back as commands.
package logform

import (
	"log"
	"strconv"
	"time"

	"github.com/neilberkman/rinselog/internal/core/i18n"
	"github.com/neilberkman/rinselog/internal/core/models"
)

// ConfirmKind identifies a destructive request awaiting confirmation.
type ConfirmKind int

const (
	ConfirmNone ConfirmKind = iota
	ConfirmReset
	ConfirmDelete
)

// Pending is a destructive request awaiting Confirm or Cancel.
type Pending struct {
	Kind ConfirmKind
	ID   int64
}

// Prompt returns the translation key of the confirmation question.
func (p Pending) Prompt() i18n.Key {
	switch p.Kind {
	case ConfirmReset:
		return i18n.LogResetConfirm
	case ConfirmDelete:
		return i18n.HistoryDeleteConfirm
	}
	return ""
}

// Notice is a one-line status message resolved at render time.
type Notice struct {
	Key   i18n.Key
	Repl  i18n.Replacements
	Error bool
}

// State is everything the form owns.
type State struct {
	Session   models.SessionLog
	Stopwatch Stopwatch
	Exporting bool
	Pending   Pending
	Notice    *Notice
	LastSaved time.Time
}

// New returns a fresh form dated now.
func New(now time.Time) State {
	return State{Session: models.NewSession(now)}
}

// Reduce applies cmd to s.
func Reduce(s State, cmd Command) (State, []Effect) {
	// A pending confirmation swallows everything but its answer
	if s.Pending.Kind != ConfirmNone {
		switch cmd.(type) {
		case Confirm, Cancel, Tick, SaveDone, DeleteDone, ExportDone:
		default:
			return s, nil
		}
	}

	switch c := cmd.(type) {
	case AddRound:
		s.Session = models.InsertRound(s.Session, c.Type)

	case RemoveRound:
		s.Session = models.RemoveRound(s.Session, c.Position)

	case SetField:
		s.Session = models.SetField(s.Session, c.Field, c.Value)

	case SetRoundField:
		s.Session = models.UpdateRoundField(s.Session, c.Position, c.Field, c.Value)

	case StartTimer:
		if s.Stopwatch.Running {
			return s, nil
		}
		s.Stopwatch = s.Stopwatch.start()
		return s, []Effect{ScheduleTick{Gen: s.Stopwatch.Gen}}

	case PauseTimer:
		s.Stopwatch = s.Stopwatch.pause()

	case ToggleTimer:
		if s.Stopwatch.Running {
			return Reduce(s, PauseTimer{})
		}
		return Reduce(s, StartTimer{})

	case ResetTimer:
		s.Stopwatch = s.Stopwatch.reset()

	case Tick:
		if !s.Stopwatch.Running || c.Gen != s.Stopwatch.Gen {
			return s, nil
		}
		s.Stopwatch.Seconds++
		return s, []Effect{ScheduleTick{Gen: c.Gen}}

	case CommitTimer:
		s.Session = models.SetField(s.Session, models.FieldTotalTimeMin, s.Stopwatch.Minutes())

	case SaveSession:
		// Free text is saved as typed
		if err := s.Session.Validate(); err != nil {
			log.Printf("[logform] saving unusual values: %v", err)
		}
		s.LastSaved = c.At
		return s, []Effect{PersistEntry{Session: s.Session.Clone()}}

	case SaveDone:
		if c.Err != nil {
			log.Printf("[logform] save failed: %v", c.Err)
			s.Notice = &Notice{Key: i18n.TUISaveFailed, Repl: i18n.Replacements{"error": c.Err.Error()}, Error: true}
			return s, nil
		}
		s.Notice = &Notice{Key: i18n.LogSaveSuccess}

	case RequestReset:
		s.Pending = Pending{Kind: ConfirmReset}

	case RequestDelete:
		s.Pending = Pending{Kind: ConfirmDelete, ID: c.ID}

	case Confirm:
		p := s.Pending
		s.Pending = Pending{}
		switch p.Kind {
		case ConfirmReset:
			at := c.At
			if at.IsZero() {
				at = time.Now()
			}
			s.Session = models.NewSession(at)
		case ConfirmDelete:
			return s, []Effect{DeleteEntry{ID: p.ID}}
		}

	case Cancel:
		s.Pending = Pending{}

	case DeleteDone:
		if c.Err != nil {
			log.Printf("[logform] delete %d failed: %v", c.ID, c.Err)
			s.Notice = &Notice{Key: i18n.TUISaveFailed, Repl: i18n.Replacements{"error": c.Err.Error()}, Error: true}
			return s, nil
		}
		s.Notice = &Notice{Key: i18n.TUIDeleted}

	case BeginExport:
		if s.Exporting {
			return s, nil
		}
		s.Exporting = true
		return s, []Effect{RunExport{Session: s.Session.Clone()}}

	case ExportDone:
		s.Exporting = false
		if c.Err != nil {
			log.Printf("[logform] export failed: %v", c.Err)
			s.Notice = &Notice{Key: i18n.LogExportError, Error: true}
			return s, nil
		}
		s.Notice = &Notice{Key: i18n.TUIExportDone, Repl: i18n.Replacements{"path": c.Path}}

	case LoadSession:
		s.Session = c.Entry.Data.Clone()
		s.Notice = &Notice{Key: i18n.TUILoaded, Repl: i18n.Replacements{"id": strconv.FormatInt(c.Entry.ID, 10)}}

	case DismissNotice:
		s.Notice = nil
	}

	return s, nil
}
