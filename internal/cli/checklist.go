package cli

import (
	"fmt"
	"strings"

	"github.com/nstrayer/aisle-list/internal/model"
	"github.com/nstrayer/aisle-list/internal/taxonomy"
)

// RenderChecklist renders a list's items grouped by store section.
// Taxonomy sections appear in their declared order; freeform sections
// follow in order of first appearance.
func RenderChecklist(tax taxonomy.Taxonomy, list *model.GroceryList, items []model.Item) string {
	grouped := make(map[string][]model.Item)
	var freeform []string
	known := make(map[string]bool)
	for _, name := range tax.Names() {
		known[name] = true
	}

	for _, item := range items {
		if _, seen := grouped[item.Category]; !seen && !known[item.Category] {
			freeform = append(freeform, item.Category)
		}
		grouped[item.Category] = append(grouped[item.Category], item)
	}

	sections := make([]string, 0, len(grouped))
	for _, name := range tax.Names() {
		if len(grouped[name]) > 0 {
			sections = append(sections, name)
		}
	}
	sections = append(sections, freeform...)

	var b strings.Builder
	b.WriteString(TitleStyle.Render(CartIcon + " " + list.Name))
	b.WriteString("\n")

	for _, section := range sections {
		b.WriteString("\n")
		b.WriteString(SectionStyle(section).Render(section))
		b.WriteString("\n")
		for _, item := range grouped[section] {
			mark := "[ ]"
			name := item.Name
			if item.Checked {
				mark = "[" + SuccessIcon + "]"
				name = SubtleStyle.Strikethrough(true).Render(name)
			}
			b.WriteString(fmt.Sprintf("  %s %s\n", mark, name))
		}
	}

	if len(items) == 0 {
		b.WriteString(SubtleStyle.Render("\n(no items)"))
		b.WriteString("\n")
	}

	return b.String()
}
