package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ewalden/drift/internal/domain"
)

// formatClock renders seconds as m:ss (or h:mm:ss past the hour).
func formatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// View renders the player.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.player.Pipeline.Stage() {
	case domain.StageSummary:
		return m.viewSummary()
	case domain.StageRating:
		return m.viewRating()
	case domain.StageClosed:
		return ""
	}

	if m.player.Ambient.Active() {
		return m.viewAmbient()
	}

	return m.viewPlayer()
}

// viewPlayer lays the playback screen out on the fixed rows the mouse
// handler expects.
func (m Model) viewPlayer() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorAccent))
	stateStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorTitle))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))
	pad := strings.Repeat(" ", barMargin)

	session := m.player.Session

	title := fmt.Sprintf("%s %s", m.theme.IconApp, session.Title)
	if session.Guide != "" {
		title += stateStyle.Render(fmt.Sprintf("  %s %s", m.theme.IconGuide, session.Guide))
	}

	stateLabel := domain.GetPlayStateLabel(session.State)
	if session.State == domain.PlayStatePaused {
		stateLabel = m.theme.IconPaused + " " + stateLabel
	}
	timeLine := fmt.Sprintf("%s / %s   %s",
		formatClock(m.player.Clock.Elapsed()),
		formatClock(m.player.Clock.Duration()),
		stateStyle.Render(stateLabel))

	lines := []string{
		"",
		pad + titleStyle.Render(title),
		"",
		pad + timeLine,
		pad + m.renderProgressBar(),
		"",
		pad + m.renderMoodPrompt(),
		pad + m.renderMoodBar(),
		"",
		pad + helpStyle.Render("space pause · ←/→ seek · h/l mood · f finish · q quit"),
	}

	return strings.Join(lines, "\n")
}

// renderProgressBar draws the scrub track with the thumb at the live or
// gesture position.
func (m Model) renderProgressBar() string {
	w := m.barWidth()
	thumb := int(m.player.Scrub.Position())
	if thumb < 0 {
		thumb = 0
	}
	if thumb >= w {
		thumb = w - 1
	}

	filled := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.GradientStart))
	empty := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorAmbient))
	thumbStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.GradientEnd)).Bold(true)

	var b strings.Builder
	for i := 0; i < w; i++ {
		switch {
		case i == thumb:
			b.WriteString(thumbStyle.Render("●"))
		case i < thumb:
			b.WriteString(filled.Render("━"))
		default:
			b.WriteString(empty.Render("─"))
		}
	}
	return b.String()
}

// renderMoodPrompt shows the current label, a pending countdown, or an
// acknowledgment banner.
func (m Model) renderMoodPrompt() string {
	labelStyle := lipgloss.NewStyle().Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))

	switch m.player.Feedback.Ack() {
	case domain.AckSaved:
		return labelStyle.Foreground(lipgloss.Color(m.theme.GradientEnd)).Render("✓ Saved")
	case domain.AckCanceled:
		return dimStyle.Render("Canceled")
	}

	if pending := m.player.Feedback.Pending(); pending != nil {
		return fmt.Sprintf("%s  %s",
			labelStyle.Render(domain.GetFeedbackLabelText(pending.Label)),
			dimStyle.Render(fmt.Sprintf("saving in %ds · esc cancel", pending.RemainingSeconds)))
	}

	if m.player.Feedback.Dragging() || m.kbMood {
		return labelStyle.Render(domain.GetFeedbackLabelText(m.player.Feedback.Label()))
	}

	return dimStyle.Render("How do you feel?")
}

// renderMoodBar draws the mood track colored along the palette with the
// thumb at the gesture position.
func (m Model) renderMoodBar() string {
	w := m.barWidth()
	thumb := int(m.player.Feedback.Position())
	if thumb < 0 {
		thumb = 0
	}
	if thumb >= w {
		thumb = w - 1
	}

	var b strings.Builder
	for i := 0; i < w; i++ {
		color := domain.MoodColorAt(m.theme.MoodPalette, float64(i)/float64(w-1))
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(color.Hex()))
		if i == thumb {
			b.WriteString(style.Bold(true).Render("●"))
		} else {
			b.WriteString(style.Render("─"))
		}
	}
	return b.String()
}

// viewAmbient is the reduced display after the quiet window elapses: just
// the clock, dimmed, centered. Any interaction restores the full screen.
func (m Model) viewAmbient() string {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorAmbient))
	content := dim.Render(formatClock(m.player.Clock.Elapsed()))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) viewSummary() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorAccent))
	statStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorTitle))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))

	session := m.player.Session
	var sections []string

	sections = append(sections, titleStyle.Render(fmt.Sprintf("%s Session complete", m.theme.IconApp)))
	sections = append(sections, "")
	sections = append(sections, statStyle.Render(fmt.Sprintf("%s  ·  %.1f minutes", session.Title, session.ElapsedMinutes())))
	sections = append(sections, m.progress.ViewAs(1.0))

	if entries := m.player.Feedback.History(); len(entries) > 0 {
		sections = append(sections, "")
		sections = append(sections, statStyle.Render(fmt.Sprintf("%s %d feedback moments", m.theme.IconStats, len(entries))))
	}

	sections = append(sections, "")
	sections = append(sections, helpStyle.Render("enter continue · d discard"))

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) viewRating() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorAccent))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#D64545"))

	var sections []string
	sections = append(sections, titleStyle.Render("How was this session?"))
	sections = append(sections, "")
	sections = append(sections, "Rate it 0-10: "+m.ratingInput.View())

	if m.ratingErr != "" {
		sections = append(sections, errStyle.Render(m.ratingErr))
	}

	sections = append(sections, "")
	sections = append(sections, helpStyle.Render("enter submit · esc discard"))

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
