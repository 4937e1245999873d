package models

// Stored enumeration values are the Chinese strings the v1 log format
// uses, so old payloads stay readable. Display labels live in the
// translation tables under options.<group>.<value>.

type RoundType string

const (
	RoundShallow  RoundType = "Shallow"
	RoundDeep     RoundType = "Deep"
	RoundFinisher RoundType = "Finisher"
)

type LastBMType string

const (
	LastBMUnset  LastBMType = ""
	LastBMLoose  LastBMType = "不成形"
	LastBMNormal LastBMType = "正常"
	LastBMHard   LastBMType = "偏硬"
)

type Posture string

const (
	PostureUnset          Posture = ""
	PostureSitting        Posture = "坐/半蹲"
	PostureLeftKneesChest Posture = "左側躺抱膝"
	PostureKneelingChest  Posture = "跪姿胸貼床"
	PostureSupine         Posture = "仰臥"
	PostureRightSide      Posture = "右側躺"
	PostureStandingTwist  Posture = "站立扭腰前傾"
	PostureDeepSquatExpel Posture = "深蹲排出"
)

type Feel string

const (
	FeelUnset       Feel = ""
	FeelComfortable Feel = "舒"
	FeelFull        Feel = "滿"
	FeelPressure    Feel = "壓"
)

type Discomfort string

const (
	DiscomfortUnset    Discomfort = ""
	DiscomfortNone     Discomfort = "無"
	DiscomfortUrge     Discomfort = "輕微便意"
	DiscomfortCramping Discomfort = "腹部絞痛"
	DiscomfortNausea   Discomfort = "噁心"
)

type ResidualWaterFeel string

const (
	ResidualUnset   ResidualWaterFeel = ""
	ResidualNone    ResidualWaterFeel = "無"
	ResidualSlight  ResidualWaterFeel = "輕微"
	ResidualObvious ResidualWaterFeel = "明顯"
)

type Libido string

const (
	LibidoUnset     Libido = ""
	LibidoUp        Libido = "↑"
	LibidoUnchanged Libido = "→"
	LibidoDown      Libido = "↓"
)

type OverallFeel string

const (
	OverallUnset     OverallFeel = ""
	OverallRefreshed OverallFeel = "神清氣爽"
	OverallClean     OverallFeel = "乾淨舒適"
	OverallTired     OverallFeel = "輕微疲勞"
	OverallExhausted OverallFeel = "明顯耗盡"
)

// OptionGroup names a translation group under options.*.
type OptionGroup string

const (
	GroupRoundTypes         OptionGroup = "roundTypes"
	GroupLastBMTypes        OptionGroup = "lastBMTypes"
	GroupPostures           OptionGroup = "postures"
	GroupFeels              OptionGroup = "feels"
	GroupDiscomforts        OptionGroup = "discomforts"
	GroupResidualWaterFeels OptionGroup = "residualWaterFeels"
	GroupLibidos            OptionGroup = "libidos"
	GroupOverallFeels       OptionGroup = "overallFeels"
)

var optionValues = map[OptionGroup][]string{
	GroupRoundTypes:  {string(RoundShallow), string(RoundDeep), string(RoundFinisher)},
	GroupLastBMTypes: {string(LastBMUnset), string(LastBMLoose), string(LastBMNormal), string(LastBMHard)},
	GroupPostures: {string(PostureUnset), string(PostureSitting), string(PostureLeftKneesChest),
		string(PostureKneelingChest), string(PostureSupine), string(PostureRightSide),
		string(PostureStandingTwist), string(PostureDeepSquatExpel)},
	GroupFeels:              {string(FeelUnset), string(FeelComfortable), string(FeelFull), string(FeelPressure)},
	GroupDiscomforts:        {string(DiscomfortUnset), string(DiscomfortNone), string(DiscomfortUrge), string(DiscomfortCramping), string(DiscomfortNausea)},
	GroupResidualWaterFeels: {string(ResidualUnset), string(ResidualNone), string(ResidualSlight), string(ResidualObvious)},
	GroupLibidos:            {string(LibidoUnset), string(LibidoUp), string(LibidoUnchanged), string(LibidoDown)},
	GroupOverallFeels:       {string(OverallUnset), string(OverallRefreshed), string(OverallClean), string(OverallTired), string(OverallExhausted)},
}

// Options returns the stored values of a group, unset first where the group
// has one.
func Options(g OptionGroup) []string {
	vals := optionValues[g]
	out := make([]string, len(vals))
	copy(out, vals)
	return out
}

// ValidOption reports whether value belongs to group g.
func ValidOption(g OptionGroup, value string) bool {
	for _, v := range optionValues[g] {
		if v == value {
			return true
		}
	}
	return false
}

// CycleOption steps through a group's values starting at current, wrapping
// at both ends. An unknown current value starts from the first option.
func CycleOption(g OptionGroup, current string, step int) string {
	vals := optionValues[g]
	if len(vals) == 0 {
		return current
	}
	idx := -1
	for i, v := range vals {
		if v == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		return vals[0]
	}
	n := len(vals)
	return vals[((idx+step)%n+n)%n]
}
