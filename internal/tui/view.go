package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	var b strings.Builder

	if m.screen == screenItems {
		m.viewItems(&b)
	} else {
		m.viewCategories(&b)
	}

	if m.mode == modeAdding {
		title := "Add category"
		if m.screen == screenItems {
			title = "Add item"
		}
		if m.err != "" {
			title += "  " + errorStyle.Render(m.err)
		}
		b.WriteString("\n")
		b.WriteString(panelStyle.Render(title + "\n" + m.input.View()))
	} else if m.err != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("✖ " + m.err))
	} else if m.status != "" {
		b.WriteString("\n")
		b.WriteString(successStyle.Render("✔ " + m.status))
	}

	help := m.keys.categoryHelp()
	if m.screen == screenItems {
		help = m.keys.itemHelp()
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.ShortHelpView(help)))

	return panelStyle.Render(b.String())
}

func (m Model) viewCategories(b *strings.Builder) {
	b.WriteString(titleStyle.Render("Todoey"))
	b.WriteString("\n\n")
	if len(m.cats) == 0 {
		b.WriteString(mutedStyle.Render("No categories yet. Press a to add one."))
		b.WriteString("\n")
		return
	}
	for i, c := range m.cats {
		b.WriteString(cursorPrefix(i == m.cursor))
		b.WriteString(c.Name)
		b.WriteString("\n")
	}
}

func (m Model) viewItems(b *strings.Builder) {
	name := ""
	if cat := m.items.Category(); cat != nil {
		name = cat.Name
	}
	done := 0
	for _, it := range m.list {
		if it.Done {
			done++
		}
	}
	b.WriteString(fmt.Sprintf("%s   %s %d/%d", titleStyle.Render(name), successStyle.Render("✔"), done, len(m.list)))
	b.WriteString("\n")
	if m.mode == modeSearching || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(m.list) == 0 {
		b.WriteString(mutedStyle.Render("No items. Press a to add one."))
		b.WriteString("\n")
		return
	}
	for i, it := range m.list {
		box := mutedStyle.Render(boxUnchecked)
		text := it.Title
		if it.Done {
			box = successStyle.Render(boxChecked)
			text = doneStyle.Render(it.Title)
		}
		b.WriteString(cursorPrefix(i == m.cursor))
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, box, " ", text))
		b.WriteString("\n")
	}
}

func cursorPrefix(selected bool) string {
	if selected {
		return selectedStyle.Render(">") + " "
	}
	return "  "
}
