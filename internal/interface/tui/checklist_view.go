package tui

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/neilberkman/rinselog/internal/core/i18n"
)

// checklistSteps is how many numbered steps the checklist tables carry.
const checklistSteps = 7

// checklistMarkdown assembles the procedure checklist from the translation
// tables. Steps hold lines l1, l2, ... and nested lines l1_1, l1_2, ...
func checklistMarkdown(loc i18n.Localizer) string {
	var b strings.Builder

	fmt.Fprintf(&b, "> **⚠ %s**\n>\n> %s\n\n", loc.T(i18n.ChecklistSafetyTitle), loc.T(i18n.ChecklistSafetyContent))

	for step := 0; step < checklistSteps; step++ {
		title, ok := loc.Lookup(i18n.StepKey(step, "title"))
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "## %d. %s\n\n", step, title)

		for n := 1; ; n++ {
			line, ok := loc.Lookup(i18n.StepKey(step, fmt.Sprintf("l%d", n)))
			if !ok {
				break
			}
			fmt.Fprintf(&b, "- %s\n", line)
			for sub := 1; ; sub++ {
				nested, ok := loc.Lookup(i18n.StepKey(step, fmt.Sprintf("l%d_%d", n, sub)))
				if !ok {
					break
				}
				fmt.Fprintf(&b, "    - %s\n", nested)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderMarkdown(md string, width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		log.Printf("[tui] markdown renderer: %v", err)
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		log.Printf("[tui] render checklist: %v", err)
		return md
	}
	return out
}

// refreshChecklist re-renders the checklist when the language or the
// terminal width changed.
func (m Model) refreshChecklist() Model {
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.checklist.Width = width
	m.checklist.Height = m.bodyHeight()

	if m.checklistLang == m.lang && m.checklistWidth == width {
		return m
	}
	wrap := width - 4
	if wrap < 20 {
		wrap = 20
	}
	m.checklist.SetContent(renderMarkdown(checklistMarkdown(m.loc()), wrap))
	m.checklist.GotoTop()
	m.checklistLang = m.lang
	m.checklistWidth = width
	return m
}

func (m Model) viewChecklist() string {
	if m.checklistWidth == 0 {
		m = m.refreshChecklist()
	}
	return m.checklist.View()
}
