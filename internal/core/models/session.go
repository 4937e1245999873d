package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the ISO calendar date used for SessionLog.Date.
const DateLayout = "2006-01-02"

// Round is one irrigation cycle within a session. Numeric fields are kept
// as text so partially typed values survive until validation.
type Round struct {
	Order      int        `json:"order"`
	Type       RoundType  `json:"type"`
	DepthCm    string     `json:"depthCm"`
	VolumeMl   string     `json:"volumeMl"`
	HoldMin    string     `json:"holdMin"`
	Posture    Posture    `json:"posture"`
	Clarity    string     `json:"clarity"`
	Feel       Feel       `json:"feel"`
	Discomfort Discomfort `json:"discomfort"`
}

// SessionLog is one full procedure record. It owns its rounds.
type SessionLog struct {
	Date              string            `json:"date"`
	LastBMHours       string            `json:"lastBMHours"`
	LastBMType        LastBMType        `json:"lastBMType"`
	LowResidue        bool              `json:"lowResidue"`
	TotalTimeMin      string            `json:"totalTimeMin"`
	FinalClarity      string            `json:"finalClarity"`
	ResidualWaterFeel ResidualWaterFeel `json:"residualWaterFeel"`
	LibidoAfter       Libido            `json:"libidoAfter"`
	OverallFeel       OverallFeel       `json:"overallFeel"`
	Notes             string            `json:"notes"`
	Rounds            []Round           `json:"rounds"`
}

// NewSession returns the default record: today's date, three shallow
// rounds, low-residue diet on, everything else unset.
func NewSession(now time.Time) SessionLog {
	return SessionLog{
		Date:       now.Format(DateLayout),
		LowResidue: true,
		Rounds: ReindexRounds([]Round{
			{Type: RoundShallow},
			{Type: RoundShallow},
			{Type: RoundShallow},
		}),
	}
}

// Clone returns a deep copy.
func (s SessionLog) Clone() SessionLog {
	c := s
	if s.Rounds != nil {
		c.Rounds = make([]Round, len(s.Rounds))
		copy(c.Rounds, s.Rounds)
	}
	return c
}

// ReindexRounds returns a copy of rounds with Order set to position+1.
func ReindexRounds(rounds []Round) []Round {
	out := make([]Round, len(rounds))
	for i, r := range rounds {
		r.Order = i + 1
		out[i] = r
	}
	return out
}

// InsertRound appends a blank round of the given type.
func InsertRound(s SessionLog, t RoundType) SessionLog {
	if !ValidOption(GroupRoundTypes, string(t)) {
		return s
	}
	c := s.Clone()
	c.Rounds = ReindexRounds(append(c.Rounds, Round{Type: t}))
	return c
}

// RemoveRound drops the round at 1-based position. Positions outside
// 1..len(rounds) leave the session untouched.
func RemoveRound(s SessionLog, position int) SessionLog {
	if position < 1 || position > len(s.Rounds) {
		return s
	}
	rounds := make([]Round, 0, len(s.Rounds)-1)
	rounds = append(rounds, s.Rounds[:position-1]...)
	rounds = append(rounds, s.Rounds[position:]...)
	c := s
	c.Rounds = ReindexRounds(rounds)
	return c
}

// RoundField names an editable column of a round.
type RoundField string

const (
	RoundFieldType       RoundField = "type"
	RoundFieldDepth      RoundField = "depthCm"
	RoundFieldVolume     RoundField = "volumeMl"
	RoundFieldHold       RoundField = "holdMin"
	RoundFieldPosture    RoundField = "posture"
	RoundFieldClarity    RoundField = "clarity"
	RoundFieldFeel       RoundField = "feel"
	RoundFieldDiscomfort RoundField = "discomfort"
)

// RoundFields lists round columns in display order.
var RoundFields = []RoundField{
	RoundFieldType, RoundFieldDepth, RoundFieldVolume, RoundFieldHold,
	RoundFieldPosture, RoundFieldClarity, RoundFieldFeel, RoundFieldDiscomfort,
}

// Group returns the option group of a choice column, or "" for text.
func (f RoundField) Group() OptionGroup {
	switch f {
	case RoundFieldType:
		return GroupRoundTypes
	case RoundFieldPosture:
		return GroupPostures
	case RoundFieldFeel:
		return GroupFeels
	case RoundFieldDiscomfort:
		return GroupDiscomforts
	}
	return ""
}

// Get returns the stored value of column f.
func (r Round) Get(f RoundField) string {
	switch f {
	case RoundFieldType:
		return string(r.Type)
	case RoundFieldDepth:
		return r.DepthCm
	case RoundFieldVolume:
		return r.VolumeMl
	case RoundFieldHold:
		return r.HoldMin
	case RoundFieldPosture:
		return string(r.Posture)
	case RoundFieldClarity:
		return r.Clarity
	case RoundFieldFeel:
		return string(r.Feel)
	case RoundFieldDiscomfort:
		return string(r.Discomfort)
	}
	return ""
}

func (r *Round) set(f RoundField, value string) bool {
	if g := f.Group(); g != "" && !ValidOption(g, value) {
		return false
	}
	switch f {
	case RoundFieldType:
		r.Type = RoundType(value)
	case RoundFieldDepth:
		r.DepthCm = value
	case RoundFieldVolume:
		r.VolumeMl = value
	case RoundFieldHold:
		r.HoldMin = value
	case RoundFieldPosture:
		r.Posture = Posture(value)
	case RoundFieldClarity:
		r.Clarity = value
	case RoundFieldFeel:
		r.Feel = Feel(value)
	case RoundFieldDiscomfort:
		r.Discomfort = Discomfort(value)
	default:
		return false
	}
	return true
}

// UpdateRoundField replaces one column of the round at 1-based position.
// Out of range positions, unknown columns and invalid choices are no-ops.
func UpdateRoundField(s SessionLog, position int, f RoundField, value string) SessionLog {
	if position < 1 || position > len(s.Rounds) {
		return s
	}
	c := s.Clone()
	if !c.Rounds[position-1].set(f, value) {
		return s
	}
	return c
}

// Field names an editable session-level field.
type Field string

const (
	FieldDate              Field = "date"
	FieldLastBMHours       Field = "lastBMHours"
	FieldLastBMType        Field = "lastBMType"
	FieldLowResidue        Field = "lowResidue"
	FieldTotalTimeMin      Field = "totalTimeMin"
	FieldFinalClarity      Field = "finalClarity"
	FieldResidualWaterFeel Field = "residualWaterFeel"
	FieldLibidoAfter       Field = "libidoAfter"
	FieldOverallFeel       Field = "overallFeel"
	FieldNotes             Field = "notes"
)

// Group returns the option group of a choice field, or "" for text and
// the boolean diet flag.
func (f Field) Group() OptionGroup {
	switch f {
	case FieldLastBMType:
		return GroupLastBMTypes
	case FieldResidualWaterFeel:
		return GroupResidualWaterFeels
	case FieldLibidoAfter:
		return GroupLibidos
	case FieldOverallFeel:
		return GroupOverallFeels
	}
	return ""
}

// Get returns the stored value of f; the diet flag reads "true" or "false".
func (s SessionLog) Get(f Field) string {
	switch f {
	case FieldDate:
		return s.Date
	case FieldLastBMHours:
		return s.LastBMHours
	case FieldLastBMType:
		return string(s.LastBMType)
	case FieldLowResidue:
		return strconv.FormatBool(s.LowResidue)
	case FieldTotalTimeMin:
		return s.TotalTimeMin
	case FieldFinalClarity:
		return s.FinalClarity
	case FieldResidualWaterFeel:
		return string(s.ResidualWaterFeel)
	case FieldLibidoAfter:
		return string(s.LibidoAfter)
	case FieldOverallFeel:
		return string(s.OverallFeel)
	case FieldNotes:
		return s.Notes
	}
	return ""
}

// SetField replaces one session-level field. Unknown fields, invalid
// choices and non-boolean diet values are no-ops.
func SetField(s SessionLog, f Field, value string) SessionLog {
	if g := f.Group(); g != "" && !ValidOption(g, value) {
		return s
	}
	c := s.Clone()
	switch f {
	case FieldDate:
		c.Date = value
	case FieldLastBMHours:
		c.LastBMHours = value
	case FieldLastBMType:
		c.LastBMType = LastBMType(value)
	case FieldLowResidue:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return s
		}
		c.LowResidue = b
	case FieldTotalTimeMin:
		c.TotalTimeMin = value
	case FieldFinalClarity:
		c.FinalClarity = value
	case FieldResidualWaterFeel:
		c.ResidualWaterFeel = ResidualWaterFeel(value)
	case FieldLibidoAfter:
		c.LibidoAfter = Libido(value)
	case FieldOverallFeel:
		c.OverallFeel = OverallFeel(value)
	case FieldNotes:
		c.Notes = value
	default:
		return s
	}
	return c
}

// Validate reports free-text fields that do not hold what they should.
// Blank fields are allowed everywhere.
func (s SessionLog) Validate() error {
	var errs []error
	if s.Date != "" {
		if _, err := time.Parse(DateLayout, s.Date); err != nil {
			errs = append(errs, fmt.Errorf("date %q is not YYYY-MM-DD", s.Date))
		}
	}
	errs = appendNumber(errs, "lastBMHours", s.LastBMHours)
	errs = appendNumber(errs, "totalTimeMin", s.TotalTimeMin)
	errs = appendRating(errs, "finalClarity", s.FinalClarity)
	for i, r := range s.Rounds {
		if r.Order != i+1 {
			errs = append(errs, fmt.Errorf("round %d has order %d", i+1, r.Order))
		}
		prefix := fmt.Sprintf("round %d ", i+1)
		errs = appendNumber(errs, prefix+"depthCm", r.DepthCm)
		errs = appendNumber(errs, prefix+"volumeMl", r.VolumeMl)
		errs = appendNumber(errs, prefix+"holdMin", r.HoldMin)
		errs = appendRating(errs, prefix+"clarity", r.Clarity)
	}
	return errors.Join(errs...)
}

func appendNumber(errs []error, name, v string) []error {
	if strings.TrimSpace(v) == "" {
		return errs
	}
	if _, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err != nil {
		return append(errs, fmt.Errorf("%s %q is not a number", name, v))
	}
	return errs
}

func appendRating(errs []error, name, v string) []error {
	if strings.TrimSpace(v) == "" {
		return errs
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || n < 1 || n > 5 {
		return append(errs, fmt.Errorf("%s %q is not between 1 and 5", name, v))
	}
	return errs
}

// HistoryEntry is an immutable saved snapshot. ID is the save time in
// milliseconds and doubles as the sort key, newest first.
type HistoryEntry struct {
	ID   int64      `json:"id"`
	Data SessionLog `json:"data"`
}

// SavedAt converts the identifier back to a timestamp.
func (e HistoryEntry) SavedAt() time.Time {
	return time.UnixMilli(e.ID)
}
