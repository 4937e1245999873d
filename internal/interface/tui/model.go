package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/neilberkman/rinselog/internal/core/dates"
	"github.com/neilberkman/rinselog/internal/core/export"
	"github.com/neilberkman/rinselog/internal/core/history"
	"github.com/neilberkman/rinselog/internal/core/i18n"
	"github.com/neilberkman/rinselog/internal/core/logform"
	"github.com/neilberkman/rinselog/internal/core/models"
)

type viewMode int

const (
	checklistView viewMode = iota
	logView
	historyView
)

var viewOrder = []viewMode{checklistView, logView, historyView}

// Options wires the model to its collaborators.
type Options struct {
	Store    *history.Store
	Exporter *export.Exporter
	Resolver *i18n.Resolver
	Lang     i18n.Lang
	Now      func() time.Time
}

type Model struct {
	store    *history.Store
	exporter *export.Exporter
	resolver *i18n.Resolver
	lang     i18n.Lang
	now      func() time.Time

	mode   viewMode
	width  int
	height int
	err    error
	keys   keymap
	help   help.Model

	// Checklist
	checklist      viewport.Model
	checklistLang  i18n.Lang
	checklistWidth int

	// Log form; the form state survives switching views
	form    logform.State
	row     int
	col     int
	editing bool
	input   textinput.Model

	// History
	entries    []models.HistoryEntry
	visible    []models.HistoryEntry
	selected   int
	offset     int
	preview    bool
	filtering  bool
	filterText textinput.Model
	filter     dates.Filter
}

func New(opts Options) Model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	resolver := opts.Resolver
	if resolver == nil {
		resolver = i18n.MustNew(i18n.English)
	}
	lang := opts.Lang
	if lang == "" {
		lang = i18n.Chinese
	}

	input := textinput.New()
	input.Prompt = "› "
	input.CharLimit = 500

	filter := textinput.New()
	filter.Prompt = "/ "

	return Model{
		store:      opts.Store,
		exporter:   opts.Exporter,
		resolver:   resolver,
		lang:       lang,
		now:        now,
		mode:       logView,
		keys:       defaultKeymap(),
		help:       help.New(),
		checklist:  viewport.New(80, 20),
		form:       logform.New(now()),
		input:      input,
		filterText: filter,
	}
}

func (m Model) loc() i18n.Localizer {
	return m.resolver.For(m.lang)
}

func (m Model) Init() tea.Cmd {
	if m.store == nil {
		return nil
	}
	return loadHistory(m.store)
}

// dispatch runs one form command and turns its effects into tea commands.
func (m Model) dispatch(c logform.Command) (Model, tea.Cmd) {
	var effects []logform.Effect
	m.form, effects = logform.Reduce(m.form, c)

	var cmds []tea.Cmd
	for _, e := range effects {
		switch e := e.(type) {
		case logform.PersistEntry:
			if m.store != nil {
				cmds = append(cmds, saveEntry(m.store, e.Session))
			}
		case logform.DeleteEntry:
			if m.store != nil {
				cmds = append(cmds, deleteEntry(m.store, e.ID))
			}
		case logform.RunExport:
			cmds = append(cmds, runExport(m.exporter, e.Session, m.loc()))
		case logform.ScheduleTick:
			cmds = append(cmds, scheduleTick(e.Gen))
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m = m.refreshChecklist()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case historyLoadedMsg:
		m.entries = msg.entries
		m = m.applyFilter()
		return m, nil

	case formMsg:
		var cmd tea.Cmd
		m, cmd = m.dispatch(msg.cmd)
		switch msg.cmd.(type) {
		case logform.SaveDone, logform.DeleteDone:
			if m.store != nil {
				return m, tea.Batch(cmd, loadHistory(m.store))
			}
		}
		return m, cmd

	case copiedMsg:
		if msg.err != nil {
			m.form.Notice = &logform.Notice{Key: i18n.TUICopyFailed, Error: true}
		} else {
			m.form.Notice = &logform.Notice{Key: i18n.TUICopied}
		}
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil
	}

	if m.mode == checklistView {
		var cmd tea.Cmd
		m.checklist, cmd = m.checklist.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Text entry owns the keyboard until it is applied or cancelled
	if m.editing {
		return m.updateEditing(msg)
	}
	if m.filtering {
		return m.updateFilter(msg)
	}

	// A pending confirmation only accepts its answer
	if m.form.Pending.Kind != logform.ConfirmNone {
		var cmd tea.Cmd
		switch {
		case key.Matches(msg, m.keys.Yes):
			m, cmd = m.dispatch(logform.Confirm{At: m.now()})
		case key.Matches(msg, m.keys.No):
			m, cmd = m.dispatch(logform.Cancel{})
		case msg.String() == "ctrl+c":
			return m, tea.Quit
		}
		return m, cmd
	}

	if m.form.Notice != nil {
		m.form, _ = logform.Reduce(m.form, logform.DismissNotice{})
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.NextView):
		m.mode = m.stepView(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevView):
		m.mode = m.stepView(-1)
		return m, nil
	case key.Matches(msg, m.keys.Language):
		m.lang = m.lang.Next()
		m = m.refreshChecklist()
		return m, nil
	}

	switch m.mode {
	case checklistView:
		var cmd tea.Cmd
		m.checklist, cmd = m.checklist.Update(msg)
		return m, cmd
	case logView:
		return m.updateLog(msg)
	case historyView:
		return m.updateHistory(msg)
	}
	return m, nil
}

func (m Model) stepView(step int) viewMode {
	idx := 0
	for i, v := range viewOrder {
		if v == m.mode {
			idx = i
		}
	}
	n := len(viewOrder)
	return viewOrder[((idx+step)%n+n)%n]
}

func (m Model) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit"
	}

	var body string
	switch m.mode {
	case checklistView:
		body = m.viewChecklist()
	case logView:
		body = m.viewLog()
	case historyView:
		body = m.viewHistory()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewHeader(),
		body,
		m.viewStatus(),
		m.viewFooter(),
	)
}

func (m Model) viewHeader() string {
	loc := m.loc()
	tabs := []struct {
		mode  viewMode
		label i18n.Key
	}{
		{checklistView, i18n.HeaderChecklist},
		{logView, i18n.HeaderLog},
		{historyView, i18n.HeaderHistory},
	}

	var rendered []string
	for _, t := range tabs {
		style := tabStyle
		if t.mode == m.mode {
			style = activeTabStyle
		}
		rendered = append(rendered, style.Render(loc.T(t.label)))
	}

	title := titleStyle.Render(loc.T(i18n.HeaderTitle)) + "  " + subtitleStyle.Render(loc.T(i18n.HeaderSubtitle))
	return title + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, rendered...) + "  " + metaStyle.Render(strings.ToUpper(string(m.lang))) + "\n"
}

func (m Model) viewStatus() string {
	loc := m.loc()
	if m.form.Pending.Kind != logform.ConfirmNone {
		return confirmStyle.Render(loc.T(m.form.Pending.Prompt())) + " " + helpStyle.Render(loc.T(i18n.TUIConfirmHint))
	}
	if m.form.Exporting {
		return noticeStyle.Render(loc.T(i18n.LogExporting))
	}
	if n := m.form.Notice; n != nil {
		text := loc.Format(n.Key, n.Repl)
		if n.Error {
			return errorStyle.Render(text)
		}
		return noticeStyle.Render(text)
	}
	return ""
}

func (m Model) viewFooter() string {
	loc := m.loc()
	if m.help.ShowAll {
		return m.help.View(m.keys)
	}

	var viewHelp string
	switch {
	case m.editing:
		viewHelp = loc.T(i18n.TUIEditing)
	case m.mode == checklistView:
		viewHelp = loc.T(i18n.TUIChecklistHelp)
	case m.mode == logView:
		viewHelp = loc.T(i18n.TUILogHelp)
	case m.mode == historyView:
		viewHelp = loc.T(i18n.TUIHistoryHelp)
	}
	return helpStyle.Render(viewHelp + "\n" + loc.T(i18n.TUIGlobalHelp))
}

// bodyHeight is the space left for the active view.
func (m Model) bodyHeight() int {
	const reservedLines = 7 // Header, tabs, status and two help lines
	h := m.height - reservedLines
	if h < 5 {
		h = 5
	}
	return h
}
