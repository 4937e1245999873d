package export

import (
	"fmt"
	"strings"

	"github.com/cbroglie/mustache"

	"github.com/neilberkman/rinselog/internal/core/i18n"
	"github.com/neilberkman/rinselog/internal/core/models"
)

// NotAvailable stands in for blank values on the printed card.
const NotAvailable = "N/A"

type field struct {
	Label string
	Value string
}

func (f field) context() map[string]string {
	return map[string]string{"label": f.Label, "value": f.Value}
}

func fields(fs ...field) []map[string]string {
	out := make([]map[string]string, len(fs))
	for i, f := range fs {
		out[i] = f.context()
	}
	return out
}

// withUnit joins a value and its unit, or reports N/A for a blank value.
func withUnit(value, unit string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return NotAvailable
	}
	if unit == "" {
		return value
	}
	return value + " " + unit
}

func option(loc i18n.Localizer, g models.OptionGroup, value string) string {
	if value == "" {
		return NotAvailable
	}
	return loc.Option(string(g), value)
}

// View builds the template context for session in the localizer's language.
func View(session models.SessionLog, loc i18n.Localizer) map[string]interface{} {
	lowResidue := loc.T(i18n.OptionsNo)
	if session.LowResidue {
		lowResidue = loc.T(i18n.OptionsYes)
	}

	rounds := make([]map[string]interface{}, 0, len(session.Rounds))
	for _, r := range session.Rounds {
		heading := fmt.Sprintf("%s · %s",
			loc.Format(i18n.LogRoundNum, i18n.Replacements{"order": fmt.Sprint(r.Order)}),
			option(loc, models.GroupRoundTypes, string(r.Type)))
		rounds = append(rounds, map[string]interface{}{
			"order":   r.Order,
			"heading": heading,
			"fields": fields(
				field{loc.T(i18n.LogDepth), withUnit(r.DepthCm, loc.T(i18n.LogUnitCm))},
				field{loc.T(i18n.LogVolume), withUnit(r.VolumeMl, loc.T(i18n.LogUnitMl))},
				field{loc.T(i18n.LogHold), withUnit(r.HoldMin, loc.T(i18n.LogUnitMin))},
				field{loc.T(i18n.LogPosture), option(loc, models.GroupPostures, string(r.Posture))},
				field{loc.T(i18n.LogClarity), withUnit(r.Clarity, "")},
				field{loc.T(i18n.LogFeel), option(loc, models.GroupFeels, string(r.Feel))},
				field{loc.T(i18n.LogDiscomfort), option(loc, models.GroupDiscomforts, string(r.Discomfort))},
			),
		})
	}

	notes := strings.TrimSpace(session.Notes)
	if notes == "" {
		notes = NotAvailable
	}

	return map[string]interface{}{
		"title":    loc.T(i18n.HeaderTitle),
		"subtitle": loc.T(i18n.HeaderSubtitle),
		"date":     withUnit(session.Date, ""),
		"fields": fields(
			field{loc.T(i18n.LogDate), withUnit(session.Date, "")},
			field{loc.T(i18n.LogLastBMHours), withUnit(session.LastBMHours, loc.T(i18n.LogUnitHours))},
			field{loc.T(i18n.LogLastBMType), option(loc, models.GroupLastBMTypes, string(session.LastBMType))},
			field{loc.T(i18n.LogLowResidue), lowResidue},
			field{loc.T(i18n.LogTotalTime), withUnit(session.TotalTimeMin, loc.T(i18n.LogUnitMinutes))},
		),
		"roundsTitle":  loc.T(i18n.LogRoundsTitle),
		"rounds":       rounds,
		"outcomeTitle": loc.T(i18n.TUIOutcome),
		"outcome": fields(
			field{loc.T(i18n.LogFinalClarity), withUnit(session.FinalClarity, "")},
			field{loc.T(i18n.LogResidualWater), option(loc, models.GroupResidualWaterFeels, string(session.ResidualWaterFeel))},
			field{loc.T(i18n.LogLibido), option(loc, models.GroupLibidos, string(session.LibidoAfter))},
			field{loc.T(i18n.LogOverallFeel), option(loc, models.GroupOverallFeels, string(session.OverallFeel))},
		),
		"notesLabel": loc.T(i18n.LogNotes),
		"notes":      notes,
	}
}

// RenderText renders session through a mustache template.
func RenderText(session models.SessionLog, loc i18n.Localizer, template string) (string, error) {
	out, err := mustache.Render(template, View(session, loc))
	if err != nil {
		return "", fmt.Errorf("render print template: %w", err)
	}
	return out, nil
}

// Summary is the one-line digest of a saved log used by history listings.
func Summary(session models.SessionLog, loc i18n.Localizer) string {
	parts := []string{
		fmt.Sprintf("%s: %d", loc.T(i18n.HistoryRounds), len(session.Rounds)),
		fmt.Sprintf("%s: %s", loc.T(i18n.HistoryTotalTime), withUnit(session.TotalTimeMin, loc.T(i18n.LogUnitMinutes))),
		fmt.Sprintf("%s: %s", loc.T(i18n.HistoryFinalClarity), withUnit(session.FinalClarity, "")),
		fmt.Sprintf("%s: %s", loc.T(i18n.HistoryOverallFeel), option(loc, models.GroupOverallFeels, string(session.OverallFeel))),
		fmt.Sprintf("%s: %s", loc.T(i18n.HistoryBMType), option(loc, models.GroupLastBMTypes, string(session.LastBMType))),
		fmt.Sprintf("%s: %s", loc.T(i18n.HistoryResidualWater), option(loc, models.GroupResidualWaterFeels, string(session.ResidualWaterFeel))),
	}
	return strings.Join(parts, " | ")
}
