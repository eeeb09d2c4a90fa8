package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ewalden/drift/internal/config"
	"github.com/ewalden/drift/internal/domain"
)

// PickerResult holds the outcome of a library picker interaction.
type PickerResult struct {
	Index   int
	Aborted bool
}

type pickerModel struct {
	title   string
	items   []*domain.LibraryItem
	cursor  int
	chosen  bool
	aborted bool
	theme   config.ThemeConfig
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "enter":
			m.chosen = true
			return m, tea.Quit
		case "ctrl+c", "esc", "q":
			m.aborted = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle))
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorAccent)).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))
	arrowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorAccent)).Bold(true)

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  "+m.title) + "\n\n")

	for i, item := range m.items {
		line := fmt.Sprintf(" %-28s %-18s %s", item.Title, item.Guide, item.DurationLabel())
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("  %s%s\n", arrowStyle.Render("▸"), activeStyle.Render(line)))
		} else {
			b.WriteString(dimStyle.Render("   "+line) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  ↑/↓ navigate · enter play · esc back") + "\n")

	return b.String()
}

// RunLibraryPicker launches an interactive arrow-key picker over the library
// and returns the selected index.
func RunLibraryPicker(title string, items []*domain.LibraryItem, theme *config.ThemeConfig) PickerResult {
	if len(items) == 0 {
		return PickerResult{Aborted: true}
	}

	m := pickerModel{
		title: title,
		items: items,
		theme: resolveTheme(theme),
	}

	p := tea.NewProgram(m)
	result, err := p.Run()
	if err != nil {
		return PickerResult{Aborted: true}
	}

	final := result.(pickerModel)
	if final.aborted {
		return PickerResult{Aborted: true}
	}
	return PickerResult{Index: final.cursor}
}
