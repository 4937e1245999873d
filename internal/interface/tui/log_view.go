package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/neilberkman/rinselog/internal/core/dates"
	"github.com/neilberkman/rinselog/internal/core/export"
	"github.com/neilberkman/rinselog/internal/core/i18n"
	"github.com/neilberkman/rinselog/internal/core/logform"
	"github.com/neilberkman/rinselog/internal/core/models"
)

// cell addresses one editable value of the form. round is the 1-based
// round position for round columns and 0 for session fields.
type cell struct {
	field  models.Field
	round  int
	rfield models.RoundField
}

var (
	headerFields  = []models.Field{models.FieldDate, models.FieldLastBMHours, models.FieldLastBMType, models.FieldLowResidue, models.FieldTotalTimeMin}
	outcomeFields = []models.Field{models.FieldFinalClarity, models.FieldResidualWaterFeel, models.FieldLibidoAfter, models.FieldOverallFeel}
)

var fieldLabels = map[models.Field]i18n.Key{
	models.FieldDate:              i18n.LogDate,
	models.FieldLastBMHours:       i18n.LogLastBMHours,
	models.FieldLastBMType:        i18n.LogLastBMType,
	models.FieldLowResidue:        i18n.LogLowResidue,
	models.FieldTotalTimeMin:      i18n.LogTotalTime,
	models.FieldFinalClarity:      i18n.LogFinalClarity,
	models.FieldResidualWaterFeel: i18n.LogResidualWater,
	models.FieldLibidoAfter:       i18n.LogLibido,
	models.FieldOverallFeel:       i18n.LogOverallFeel,
	models.FieldNotes:             i18n.LogNotes,
}

var fieldUnits = map[models.Field]i18n.Key{
	models.FieldLastBMHours:  i18n.LogUnitHours,
	models.FieldTotalTimeMin: i18n.LogUnitMinutes,
}

var roundLabels = map[models.RoundField]i18n.Key{
	models.RoundFieldType:       i18n.LogRoundType,
	models.RoundFieldDepth:      i18n.LogDepth,
	models.RoundFieldVolume:     i18n.LogVolume,
	models.RoundFieldHold:       i18n.LogHold,
	models.RoundFieldPosture:    i18n.LogPosture,
	models.RoundFieldClarity:    i18n.LogClarity,
	models.RoundFieldFeel:       i18n.LogFeel,
	models.RoundFieldDiscomfort: i18n.LogDiscomfort,
}

var roundUnits = map[models.RoundField]i18n.Key{
	models.RoundFieldDepth:   i18n.LogUnitCm,
	models.RoundFieldVolume:  i18n.LogUnitMl,
	models.RoundFieldHold:    i18n.LogUnitMin,
	models.RoundFieldClarity: i18n.LogUnit1to5,
}

// rows lays the form out as a grid: session header, one row per round,
// session outcome, notes.
func (m Model) rows() [][]cell {
	rows := [][]cell{sessionCells(headerFields)}
	for i := range m.form.Session.Rounds {
		row := make([]cell, len(models.RoundFields))
		for j, f := range models.RoundFields {
			row[j] = cell{round: i + 1, rfield: f}
		}
		rows = append(rows, row)
	}
	rows = append(rows, sessionCells(outcomeFields), sessionCells([]models.Field{models.FieldNotes}))
	return rows
}

func sessionCells(fields []models.Field) []cell {
	out := make([]cell, len(fields))
	for i, f := range fields {
		out[i] = cell{field: f}
	}
	return out
}

// clampCursor keeps row and col inside the grid after it changed shape.
func (m Model) clampCursor() Model {
	rows := m.rows()
	if m.row >= len(rows) {
		m.row = len(rows) - 1
	}
	if m.row < 0 {
		m.row = 0
	}
	if m.col >= len(rows[m.row]) {
		m.col = len(rows[m.row]) - 1
	}
	if m.col < 0 {
		m.col = 0
	}
	return m
}

func (m Model) current() cell {
	m = m.clampCursor()
	return m.rows()[m.row][m.col]
}

func (m Model) cellValue(c cell) string {
	if c.round > 0 {
		if c.round > len(m.form.Session.Rounds) {
			return ""
		}
		return m.form.Session.Rounds[c.round-1].Get(c.rfield)
	}
	return m.form.Session.Get(c.field)
}

func (c cell) group() models.OptionGroup {
	if c.round > 0 {
		return c.rfield.Group()
	}
	return c.field.Group()
}

func (c cell) label(loc i18n.Localizer) string {
	if c.round > 0 {
		return loc.T(roundLabels[c.rfield])
	}
	return loc.T(fieldLabels[c.field])
}

func (c cell) unit(loc i18n.Localizer) string {
	var k i18n.Key
	if c.round > 0 {
		k = roundUnits[c.rfield]
	} else {
		k = fieldUnits[c.field]
	}
	if k == "" {
		return ""
	}
	return loc.T(k)
}

// set returns the command that stores value in c.
func (c cell) set(value string) logform.Command {
	if c.round > 0 {
		return logform.SetRoundField{Position: c.round, Field: c.rfield, Value: value}
	}
	return logform.SetField{Field: c.field, Value: value}
}

func (m Model) displayValue(c cell) string {
	loc := m.loc()
	value := m.cellValue(c)
	switch {
	case c.round == 0 && c.field == models.FieldLowResidue:
		if m.form.Session.LowResidue {
			return loc.T(i18n.OptionsYes)
		}
		return loc.T(i18n.OptionsNo)
	case c.group() != "":
		return loc.Option(string(c.group()), value)
	case value == "":
		return "·"
	}
	if u := c.unit(loc); u != "" {
		return value + " " + u
	}
	return value
}

func (m Model) updateLog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m = m.clampCursor()
	rows := m.rows()

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.row > 0 {
			m.row--
		}
		return m.clampCursor(), nil

	case key.Matches(msg, m.keys.Down):
		if m.row < len(rows)-1 {
			m.row++
		}
		return m.clampCursor(), nil

	case key.Matches(msg, m.keys.NextField):
		m.col++
		if m.col >= len(rows[m.row]) {
			m.col = 0
			m.row = (m.row + 1) % len(rows)
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevField):
		m.col--
		if m.col < 0 {
			m.row = (m.row - 1 + len(rows)) % len(rows)
			m.col = len(rows[m.row]) - 1
		}
		return m, nil

	case key.Matches(msg, m.keys.Left):
		return m.cycle(-1)

	case key.Matches(msg, m.keys.Right):
		return m.cycle(1)

	case key.Matches(msg, m.keys.Edit):
		c := m.current()
		if c.group() != "" || (c.round == 0 && c.field == models.FieldLowResidue) {
			return m.cycle(1)
		}
		m.editing = true
		m.input.SetValue(m.cellValue(c))
		m.input.Placeholder = ""
		if c.round == 0 && c.field == models.FieldNotes {
			m.input.Placeholder = m.loc().T(i18n.LogNotesPlaceholder)
		}
		m.input.CursorEnd()
		cmd := m.input.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.AddShallow):
		return m.dispatchKeep(logform.AddRound{Type: models.RoundShallow})
	case key.Matches(msg, m.keys.AddDeep):
		return m.dispatchKeep(logform.AddRound{Type: models.RoundDeep})
	case key.Matches(msg, m.keys.AddFinisher):
		return m.dispatchKeep(logform.AddRound{Type: models.RoundFinisher})

	case key.Matches(msg, m.keys.RemoveRound):
		if c := m.current(); c.round > 0 {
			return m.dispatchKeep(logform.RemoveRound{Position: c.round})
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleTimer):
		return m.dispatchKeep(logform.ToggleTimer{})
	case key.Matches(msg, m.keys.ResetTimer):
		return m.dispatchKeep(logform.ResetTimer{})
	case key.Matches(msg, m.keys.CommitTimer):
		return m.dispatchKeep(logform.CommitTimer{})
	case key.Matches(msg, m.keys.Save):
		return m.dispatchKeep(logform.SaveSession{At: m.now()})
	case key.Matches(msg, m.keys.Reset):
		return m.dispatchKeep(logform.RequestReset{})
	case key.Matches(msg, m.keys.Export):
		return m.dispatchKeep(logform.BeginExport{})
	case key.Matches(msg, m.keys.Copy):
		return m, copyText(m.form.Session.Date + "  " + export.Summary(m.form.Session, m.loc()))
	}

	return m, nil
}

func (m Model) dispatchKeep(c logform.Command) (tea.Model, tea.Cmd) {
	m, cmd := m.dispatch(c)
	return m.clampCursor(), cmd
}

// cycle steps a choice cell through its options or flips the diet flag.
func (m Model) cycle(step int) (tea.Model, tea.Cmd) {
	c := m.current()
	if c.round == 0 && c.field == models.FieldLowResidue {
		value := "true"
		if m.form.Session.LowResidue {
			value = "false"
		}
		return m.dispatchKeep(c.set(value))
	}
	g := c.group()
	if g == "" {
		return m, nil
	}
	return m.dispatchKeep(c.set(models.CycleOption(g, m.cellValue(c), step)))
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		c := m.current()
		value := strings.TrimSpace(m.input.Value())
		if c.round == 0 && c.field == models.FieldDate {
			value, _ = dates.Normalize(value, m.now())
		}
		if c.round == 0 && c.field == models.FieldNotes {
			value = m.input.Value()
		}
		m.editing = false
		m.input.Blur()
		return m.dispatchKeep(c.set(value))

	case "esc", "ctrl+c":
		m.editing = false
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) renderCell(c cell, selected bool) string {
	loc := m.loc()
	value := m.displayValue(c)
	if selected && m.editing {
		value = m.input.View()
	} else if selected {
		value = cursorStyle.Render(value)
	} else if value == "·" {
		value = placeholderStyle.Render(value)
	} else {
		value = valueStyle.Render(value)
	}
	return labelStyle.Render(c.label(loc)+":") + " " + value
}

func (m Model) viewTimer() string {
	loc := m.loc()
	sw := m.form.Stopwatch
	state := timerPausedStyle.Render(loc.T(i18n.TUIPaused))
	clock := timerPausedStyle.Render(sw.Clock())
	if sw.Running {
		state = timerRunningStyle.Render(loc.T(i18n.TUIRunning))
		clock = timerRunningStyle.Render(sw.Clock())
	}
	line := fmt.Sprintf("%s %s  %s", labelStyle.Render(loc.T(i18n.TUITimer)+":"), clock, state)
	if !m.form.LastSaved.IsZero() {
		line += "  " + metaStyle.Render(loc.Format(i18n.TUISavedAgo, i18n.Replacements{"ago": humanTime(m.form.LastSaved, m.now())}))
	}
	return line
}

func (m Model) viewLog() string {
	m = m.clampCursor()
	loc := m.loc()
	rows := m.rows()
	width := m.width
	if width <= 0 {
		width = 100
	}

	var lines []string
	cursorLine := 0
	addRow := func(idx int, prefix string) {
		var cells []string
		for j, c := range rows[idx] {
			cells = append(cells, m.renderCell(c, idx == m.row && j == m.col))
		}
		if idx == m.row {
			cursorLine = len(lines)
		}
		lines = append(lines, ansi.Truncate(prefix+strings.Join(cells, "   "), width, "…"))
	}

	addRow(0, "")
	lines = append(lines, m.viewTimer())

	lines = append(lines, sectionStyle.Render(loc.T(i18n.LogRoundsTitle)))
	for i, r := range m.form.Session.Rounds {
		num := loc.Format(i18n.LogRoundNum, i18n.Replacements{"order": fmt.Sprint(r.Order)})
		addRow(i+1, titleStyle.Render(num)+"  ")
	}
	lines = append(lines, helpStyle.Render(loc.T(i18n.LogAddRound)+" (1/2/3)"))

	lines = append(lines, sectionStyle.Render(loc.T(i18n.TUIOutcome)))
	addRow(len(rows)-2, "")
	addRow(len(rows)-1, "")

	lines = append(lines, "", helpStyle.Render(ansi.Truncate(loc.T(i18n.LogFooter), width, "…")))

	return window(lines, cursorLine, m.bodyHeight())
}

// window returns at most height lines around focus.
func window(lines []string, focus, height int) string {
	if len(lines) <= height {
		return strings.Join(lines, "\n")
	}
	start := focus - height/2
	if start < 0 {
		start = 0
	}
	if start+height > len(lines) {
		start = len(lines) - height
	}
	return strings.Join(lines[start:start+height], "\n")
}
