// Package tui provides the terminal user interface implementation
// using the Bubbletea framework.
package tui

import (
	"math"
	"reflect"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ewalden/drift/internal/config"
	"github.com/ewalden/drift/internal/domain"
)

// resolveTheme fills any empty string fields in the given ThemeConfig with
// defaults. If theme is nil, returns the full default theme.
func resolveTheme(theme *config.ThemeConfig) config.ThemeConfig {
	defaults := config.DefaultThemeConfig()
	if theme == nil {
		return defaults
	}
	resolved := *theme
	rv := reflect.ValueOf(&resolved).Elem()
	dv := reflect.ValueOf(defaults)
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.String() == "" {
			f.SetString(dv.Field(i).String())
		}
	}
	if len(resolved.MoodPalette) == 0 {
		resolved.MoodPalette = defaults.MoodPalette
	}
	return resolved
}

// tickMsg is sent on every timer tick.
type tickMsg time.Time

// tickCmd schedules the next one-second tick.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Fixed screen layout, top-anchored so mouse rows are stable:
//
//	row 1: title
//	row 3: time / state line
//	row 4: progress bar
//	row 6: mood prompt line
//	row 7: mood bar
//	row 9: help line
const (
	progressBarRow = 4
	moodBarRow     = 7
	barMargin      = 4
)

// dragTarget identifies which bar a mouse gesture is on.
type dragTarget int

const (
	dragNone dragTarget = iota
	dragScrub
	dragMood
)

// Model represents the player TUI state.
type Model struct {
	player *domain.Player
	theme  config.ThemeConfig

	width  int
	height int

	// Active mouse gesture
	drag   dragTarget
	pressX int

	// Keyboard mood gesture
	kbMood      bool
	kbMoodDelta float64

	// Keyboard seek step, seconds per arrow press
	seekStep int

	// Acknowledgment banner countdowns, in ticks
	ackTicks      int
	savedAckTicks int
	cancelTicks   int

	// Completion
	progress    progress.Model
	ratingInput textinput.Model
	ratingErr   string
	notified    bool

	// Fired once when the session reaches its summary
	onSessionComplete func(title string, minutes float64)
}

// NewModel creates a new player TUI model.
func NewModel(player *domain.Player, theme *config.ThemeConfig) Model {
	ti := textinput.New()
	ti.Placeholder = "0-10"
	ti.CharLimit = 2
	ti.Width = 6

	return Model{
		player:        player,
		theme:         resolveTheme(theme),
		progress:      progress.New(progress.WithDefaultGradient()),
		ratingInput:   ti,
		seekStep:      5,
		savedAckTicks: 2,
		cancelTicks:   2,
	}
}

// ApplyPlayerConfig overrides interaction knobs from user configuration.
func (m *Model) ApplyPlayerConfig(cfg *config.PlayerConfig) {
	if cfg == nil {
		return
	}
	if cfg.KeyboardSeekStep > 0 {
		m.seekStep = cfg.KeyboardSeekStep
	}
	if ticks := ackDurationTicks(cfg.SavedAckDuration); ticks > 0 {
		m.savedAckTicks = ticks
	}
	if ticks := ackDurationTicks(cfg.CancelAckDuration); ticks > 0 {
		m.cancelTicks = ticks
	}
}

// ackDurationTicks rounds a banner duration to whole one-second ticks.
func ackDurationTicks(d config.Duration) int {
	return int(math.Round(time.Duration(d).Seconds()))
}

// SetOnSessionComplete registers the completion hook (desktop notification).
func (m *Model) SetOnSessionComplete(fn func(title string, minutes float64)) {
	m.onSessionComplete = fn
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// barWidth returns the gesture track width for the current terminal size.
func (m Model) barWidth() int {
	w := m.width - 2*barMargin
	if w < 10 {
		w = 10
	}
	return w
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.player.Closed() {
		return m, tea.Quit
	}

	stage := m.player.Pipeline.Stage()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 2*barMargin
		m.player.SetTrackWidth(float64(m.barWidth()))

	case tickMsg:
		m.player.Tick()
		m.tickAckBanner()
		m.maybeNotifyComplete()
		if m.player.Closed() {
			return m, tea.Quit
		}
		return m, tickCmd()

	case tea.MouseMsg:
		if stage == domain.StageNone {
			return m.updateMouse(msg), nil
		}

	case tea.KeyMsg:
		return m.updateKeys(msg, stage)
	}

	return m, nil
}

// tickAckBanner counts the transient saved/canceled banner down and clears
// the acknowledgment when it expires.
func (m *Model) tickAckBanner() {
	ack := m.player.Feedback.Ack()
	if ack == domain.AckNone {
		m.ackTicks = 0
		return
	}
	if m.ackTicks == 0 {
		if ack == domain.AckSaved {
			m.ackTicks = m.savedAckTicks
		} else {
			m.ackTicks = m.cancelTicks
		}
		return
	}
	m.ackTicks--
	if m.ackTicks <= 0 {
		m.player.Feedback.ClearAck()
	}
}

// maybeNotifyComplete fires the completion hook once when the summary opens.
func (m *Model) maybeNotifyComplete() {
	if m.notified || m.onSessionComplete == nil {
		return
	}
	if m.player.Pipeline.Stage() == domain.StageSummary {
		m.onSessionComplete(m.player.Session.Title, m.player.Session.ElapsedMinutes())
		m.notified = true
	}
}

// updateMouse maps mouse gestures onto the two bars. A press on a bar begins
// a drag anchored at the press column; anywhere else it is a background tap.
func (m Model) updateMouse(msg tea.MouseMsg) Model {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m
		}
		switch msg.Y {
		case progressBarRow:
			m.endKeyboardMood()
			m.drag = dragScrub
			m.pressX = msg.X
			m.player.ScrubDragStart()
		case moodBarRow:
			m.endKeyboardMood()
			m.drag = dragMood
			m.pressX = msg.X
			m.player.MoodDragStart()
		default:
			m.player.BackgroundTap()
		}

	case tea.MouseActionMotion:
		delta := float64(msg.X - m.pressX)
		switch m.drag {
		case dragScrub:
			m.player.ScrubDragUpdate(delta)
		case dragMood:
			m.player.MoodDragUpdate(delta)
		}

	case tea.MouseActionRelease:
		switch m.drag {
		case dragScrub:
			m.player.ScrubDragEnd()
		case dragMood:
			m.player.MoodDragEnd()
		}
		m.drag = dragNone
	}

	return m
}

// endKeyboardMood releases an in-flight keyboard mood gesture.
func (m *Model) endKeyboardMood() {
	if m.kbMood {
		m.player.MoodDragEnd()
		m.kbMood = false
	}
}

func (m Model) updateKeys(msg tea.KeyMsg, stage domain.CompletionStage) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch stage {
	case domain.StageSummary:
		return m.updateSummaryKeys(msg)
	case domain.StageRating:
		return m.updateRatingKeys(msg)
	case domain.StageClosed:
		return m, tea.Quit
	}

	// Any keypress is an interaction for the idle window
	switch msg.String() {
	case "q":
		if m.player.RequestClose() {
			return m, tea.Quit
		}
	case " ":
		m.endKeyboardMood()
		m.player.TogglePause()
	case "left":
		m.player.SeekBy(-m.seekStep)
	case "right":
		m.player.SeekBy(m.seekStep)
	case "h":
		m.moveMoodThumb(-1)
	case "l":
		m.moveMoodThumb(1)
	case "enter":
		m.endKeyboardMood()
	case "esc":
		m.endKeyboardMood()
		m.player.MoodCancel()
	case "f":
		m.endKeyboardMood()
		m.player.FinishNow()
	default:
		if m.player.Ambient.Active() {
			m.player.BackgroundTap()
		}
	}

	return m, nil
}

// moveMoodThumb drives the mood gesture from the keyboard, one cell per
// press. The gesture stays open until enter or esc releases it.
func (m *Model) moveMoodThumb(delta float64) {
	if !m.player.Session.IsPlaying() {
		return
	}
	if !m.kbMood {
		m.player.MoodDragStart()
		m.kbMood = true
		m.kbMoodDelta = 0
	}
	m.kbMoodDelta += delta
	m.player.MoodDragUpdate(m.kbMoodDelta)
}

func (m Model) updateSummaryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", " ", "c":
		m.player.Pipeline.Continue()
		m.ratingInput.Reset()
		m.ratingInput.Focus()
		return m, m.ratingInput.Cursor.BlinkCmd()
	case "d", "esc", "q":
		m.player.Pipeline.Discard()
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateRatingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		rating, err := strconv.Atoi(m.ratingInput.Value())
		if err != nil {
			m.ratingErr = "enter a number from 0 to 10"
			return m, nil
		}
		if err := m.player.Pipeline.SubmitRating(rating); err != nil {
			m.ratingErr = err.Error()
			return m, nil
		}
		return m, tea.Quit
	case "esc":
		m.player.Pipeline.Discard()
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.ratingInput, cmd = m.ratingInput.Update(msg)
	m.ratingErr = ""
	return m, cmd
}
