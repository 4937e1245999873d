package i18n

import "testing"

func testResolver(t *testing.T) *Resolver {
	t.Helper()
	r := NewEmpty(English)
	en := `
[log]
roundNum = "Round #{order}"
date = "Date"
onlyEnglish = "Only in English"

[options.feels]
"" = "—"
"舒" = "Comfortable"
"滿" = "Full"
"壓" = "Pressure"
`
	zh := `
[log]
roundNum = "#{order} 類型"
date = "日期"
blank = ""
`
	if err := r.Load(English, []byte(en)); err != nil {
		t.Fatalf("Load(en) error = %v", err)
	}
	if err := r.Load(Chinese, []byte(zh)); err != nil {
		t.Fatalf("Load(zh) error = %v", err)
	}
	return r
}

func TestResolveFallbackChain(t *testing.T) {
	r := testResolver(t)

	tests := []struct {
		name string
		lang Lang
		key  Key
		want string
	}{
		{"active language", Chinese, "log.date", "日期"},
		{"fallback language", Chinese, "log.onlyEnglish", "Only in English"},
		{"missing everywhere", Chinese, "log.nowhere", "log.nowhere"},
		{"missing section", English, "nope.date", "nope.date"},
		{"path through a leaf", English, "log.date.more", "log.date.more"},
		{"empty string falls back", Chinese, "log.blank", "log.blank"},
		{"unknown language", Lang("fr"), "log.date", "Date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(tt.lang, tt.key, nil).String()
			if got != tt.want {
				t.Errorf("Resolve(%s, %s) = %q, want %q", tt.lang, tt.key, got, tt.want)
			}
		})
	}
}

func TestResolveReplacements(t *testing.T) {
	r := testResolver(t)

	got := r.Resolve(English, "log.roundNum", Replacements{"order": "3"}).String()
	if got != "Round #3" {
		t.Errorf("got %q, want %q", got, "Round #3")
	}

	got = r.Resolve(English, "log.roundNum", Replacements{"other": "x"}).String()
	if got != "Round #{order}" {
		t.Errorf("unmatched placeholder should stay verbatim, got %q", got)
	}

	got = r.Resolve(Chinese, "log.roundNum", Replacements{"order": "2"}).String()
	if got != "#2 類型" {
		t.Errorf("got %q, want %q", got, "#2 類型")
	}
}

func TestSubstituteSinglePass(t *testing.T) {
	tests := []struct {
		name string
		in   string
		repl Replacements
		want string
	}{
		{"inserted text is not expanded", "{a} {b}", Replacements{"a": "{b}", "b": "x"}, "{b} x"},
		{"value names its own key", "{a}", Replacements{"a": "{a}"}, "{a}"},
		{"unknown token kept", "{a} {zz}", Replacements{"a": "1"}, "1 {zz}"},
		{"nested brace", "{{a}}", Replacements{"a": "1"}, "{1}"},
		{"unclosed brace", "{a} {b", Replacements{"a": "1", "b": "2"}, "1 {b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Map iteration order varies between runs; the result must not.
			for i := 0; i < 50; i++ {
				if got := substitute(tt.in, tt.repl); got != tt.want {
					t.Fatalf("substitute(%q) = %q, want %q", tt.in, got, tt.want)
				}
			}
		})
	}
}

func TestResolveMappingKeepsOrder(t *testing.T) {
	r := testResolver(t)

	v := r.Resolve(English, "options.feels", nil)
	if v.IsText() {
		t.Fatal("expected mapping value")
	}
	entries := v.Entries()
	want := []Entry{{"", "—"}, {"舒", "Comfortable"}, {"滿", "Full"}, {"壓", "Pressure"}}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, entries[i], want[i])
		}
	}

	// Option groups missing in zh come from the fallback table.
	if got := r.For(Chinese).Option("feels", "滿"); got != "Full" {
		t.Errorf("Option() = %q, want Full", got)
	}
	if got := r.For(English).Option("feels", ""); got != "—" {
		t.Errorf("unset option label = %q, want —", got)
	}
}

func TestEmbeddedTablesCarryEveryKey(t *testing.T) {
	r, err := New(English)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for _, lang := range Supported {
		// Resolve without fallback so a gap in one table is visible.
		strict := &Resolver{tables: r.tables}
		for _, key := range AllKeys {
			if v := strict.Resolve(lang, key, nil); v.Missing() {
				t.Errorf("%s table is missing %s", lang, key)
			}
		}
		for step := 0; step <= 6; step++ {
			if v := strict.Resolve(lang, StepKey(step, "title"), nil); v.Missing() {
				t.Errorf("%s table is missing step %d title", lang, step)
			}
		}
	}
}

func TestEmbeddedOptionGroupsMatch(t *testing.T) {
	r := MustNew(English)
	groups := []string{"roundTypes", "lastBMTypes", "postures", "feels", "discomforts",
		"residualWaterFeels", "libidos", "overallFeels"}

	for _, g := range groups {
		en := r.For(English).Options(g)
		zh := r.For(Chinese).Options(g)
		if len(en) == 0 || len(en) != len(zh) {
			t.Errorf("group %s: en has %d options, zh has %d", g, len(en), len(zh))
			continue
		}
		for i := range en {
			if en[i].Value != zh[i].Value {
				t.Errorf("group %s option %d: en %q, zh %q", g, i, en[i].Value, zh[i].Value)
			}
		}
	}
}

func TestParseLangAndNext(t *testing.T) {
	if l, ok := ParseLang("ZH"); !ok || l != Chinese {
		t.Errorf("ParseLang(ZH) = %v, %v", l, ok)
	}
	if _, ok := ParseLang("klingon"); ok {
		t.Error("ParseLang(klingon) should fail")
	}
	if English.Next() != Chinese || Chinese.Next() != English {
		t.Error("Next() should toggle between en and zh")
	}
}
