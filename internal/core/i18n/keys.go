package i18n

import (
	"strconv"
	"strings"
)

// Key is a dotted path into the translation tables.
type Key string

// Path splits the key into its segments.
func (k Key) Path() []string {
	return strings.Split(string(k), ".")
}

// OptionKey builds the key of one option label, e.g. options.feels.舒.
func OptionKey(group, value string) Key {
	return Key("options." + group + "." + value)
}

// StepKey builds checklist step keys such as checklist.step3_l2.
func StepKey(step int, suffix string) Key {
	return Key("checklist.step" + strconv.Itoa(step) + "_" + suffix)
}

const (
	HeaderTitle     Key = "header.title"
	HeaderSubtitle  Key = "header.subtitle"
	HeaderChecklist Key = "header.checklist"
	HeaderLog       Key = "header.log"
	HeaderHistory   Key = "header.history"

	ChecklistSafetyTitle   Key = "checklist.safetyTitle"
	ChecklistSafetyContent Key = "checklist.safetyContent"

	LogSave             Key = "log.save"
	LogReset            Key = "log.reset"
	LogExport           Key = "log.export"
	LogExporting        Key = "log.exporting"
	LogResetConfirm     Key = "log.resetConfirm"
	LogSaveSuccess      Key = "log.saveSuccess"
	LogExportError      Key = "log.exportError"
	LogDate             Key = "log.date"
	LogLastBMHours      Key = "log.lastBMHours"
	LogLastBMType       Key = "log.lastBMType"
	LogLowResidue       Key = "log.lowResidue"
	LogTotalTime        Key = "log.totalTime"
	LogUnitHours        Key = "log.unitHours"
	LogUnitMinutes      Key = "log.unitMinutes"
	LogTimerSet         Key = "log.timerSet"
	LogTimerStart       Key = "log.timerStart"
	LogTimerPause       Key = "log.timerPause"
	LogRoundsTitle      Key = "log.roundsTitle"
	LogAddRound         Key = "log.addRound"
	LogRoundNum         Key = "log.roundNum"
	LogRoundType        Key = "log.roundType"
	LogDepth            Key = "log.depth"
	LogUnitCm           Key = "log.unitCm"
	LogVolume           Key = "log.volume"
	LogUnitMl           Key = "log.unitMl"
	LogHold             Key = "log.hold"
	LogUnitMin          Key = "log.unitMin"
	LogPosture          Key = "log.posture"
	LogClarity          Key = "log.clarity"
	LogUnit1to5         Key = "log.unit1to5"
	LogFeel             Key = "log.feel"
	LogDiscomfort       Key = "log.discomfort"
	LogRemove           Key = "log.remove"
	LogFinalClarity     Key = "log.finalClarity"
	LogResidualWater    Key = "log.residualWater"
	LogLibido           Key = "log.libido"
	LogOverallFeel      Key = "log.overallFeel"
	LogNotes            Key = "log.notes"
	LogNotesPlaceholder Key = "log.notesPlaceholder"
	LogFooter           Key = "log.footer"

	HistoryNoHistory     Key = "history.noHistory"
	HistoryNoHistorySub  Key = "history.noHistorySub"
	HistoryDeleteConfirm Key = "history.deleteConfirm"
	HistoryID            Key = "history.id"
	HistoryRounds        Key = "history.rounds"
	HistoryTotalTime     Key = "history.totalTime"
	HistoryFinalClarity  Key = "history.finalClarity"
	HistoryOverallFeel   Key = "history.overallFeel"
	HistoryBMType        Key = "history.bmType"
	HistoryResidualWater Key = "history.residualWater"
	HistoryPreview       Key = "history.preview"
	HistoryHidePreview   Key = "history.hidePreview"
	HistoryJSONPreview   Key = "history.jsonPreview"
	HistoryDelete        Key = "history.delete"

	OptionsYes Key = "options.yes"
	OptionsNo  Key = "options.no"

	TUITimer         Key = "tui.timer"
	TUITimerReset    Key = "tui.timerReset"
	TUIRunning       Key = "tui.running"
	TUIPaused        Key = "tui.paused"
	TUIExportDone    Key = "tui.exportDone"
	TUISaveFailed    Key = "tui.saveFailed"
	TUICopied        Key = "tui.copied"
	TUICopyFailed    Key = "tui.copyFailed"
	TUIConfirmHint   Key = "tui.confirmHint"
	TUILoaded        Key = "tui.loaded"
	TUIDeleted       Key = "tui.deleted"
	TUISavedAgo      Key = "tui.savedAgo"
	TUIEditing       Key = "tui.editing"
	TUILogHelp       Key = "tui.logHelp"
	TUIHistoryHelp   Key = "tui.historyHelp"
	TUIChecklistHelp Key = "tui.checklistHelp"
	TUIGlobalHelp    Key = "tui.globalHelp"
	TUIOutcome       Key = "tui.outcome"
	TUIFilter        Key = "tui.filter"
	TUINoMatches     Key = "tui.noMatches"
)

// AllKeys lists every declared constant. Tests use it to check that both
// tables carry each key.
var AllKeys = []Key{
	HeaderTitle, HeaderSubtitle, HeaderChecklist, HeaderLog, HeaderHistory,
	ChecklistSafetyTitle, ChecklistSafetyContent,
	LogSave, LogReset, LogExport, LogExporting, LogResetConfirm, LogSaveSuccess,
	LogExportError, LogDate, LogLastBMHours, LogLastBMType, LogLowResidue,
	LogTotalTime, LogUnitHours, LogUnitMinutes, LogTimerSet, LogTimerStart,
	LogTimerPause, LogRoundsTitle, LogAddRound, LogRoundNum, LogRoundType,
	LogDepth, LogUnitCm, LogVolume, LogUnitMl, LogHold, LogUnitMin, LogPosture,
	LogClarity, LogUnit1to5, LogFeel, LogDiscomfort, LogRemove, LogFinalClarity,
	LogResidualWater, LogLibido, LogOverallFeel, LogNotes, LogNotesPlaceholder,
	LogFooter,
	HistoryNoHistory, HistoryNoHistorySub, HistoryDeleteConfirm, HistoryID,
	HistoryRounds, HistoryTotalTime, HistoryFinalClarity, HistoryOverallFeel,
	HistoryBMType, HistoryResidualWater, HistoryPreview, HistoryHidePreview,
	HistoryJSONPreview, HistoryDelete,
	OptionsYes, OptionsNo,
	TUITimer, TUITimerReset, TUIRunning, TUIPaused, TUIExportDone, TUISaveFailed,
	TUICopied, TUICopyFailed, TUIConfirmHint, TUILoaded, TUIDeleted, TUISavedAgo,
	TUIEditing, TUILogHelp, TUIHistoryHelp, TUIChecklistHelp, TUIGlobalHelp,
	TUIOutcome, TUIFilter, TUINoMatches,
}
