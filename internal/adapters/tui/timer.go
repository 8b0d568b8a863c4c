// Package tui provides the interactive countdown view using the Bubbletea
// framework.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tempo-cli/tempo/internal/domain"
	"github.com/tempo-cli/tempo/internal/ports"
	"github.com/tempo-cli/tempo/internal/timer"
)

// tickMsg is sent on every display refresh.
type tickMsg time.Time

var (
	workColor  = lipgloss.Color("#FF6B6B")
	breakColor = lipgloss.Color("#4ECDC4")

	titleStyle = lipgloss.NewStyle().Bold(true).Padding(1, 0, 0, 2)
	clockStyle = lipgloss.NewStyle().Bold(true).Padding(0, 0, 0, 2)
	statsStyle = lipgloss.NewStyle().Faint(true).Padding(0, 0, 0, 2)
	helpStyle  = lipgloss.NewStyle().Faint(true).Padding(1, 0, 1, 2)
)

// Model renders the countdown state machine. The machine owns all timing;
// the model only polls snapshots and forwards key presses.
type Model struct {
	timer    ports.TimerControl
	progress progress.Model
	total    int
	width    int
	quitting bool
}

// NewModel creates a countdown view over the given timer.
func NewModel(control ports.TimerControl) Model {
	snapshot := control.Snapshot()
	return Model{
		timer:    control,
		progress: progress.New(progress.WithDefaultGradient()),
		total:    snapshot.Remaining,
	}
}

// Init starts the refresh loop.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles key presses and refresh ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = msg.Width - 8
		if m.progress.Width > 60 {
			m.progress.Width = 60
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case " ", "enter":
			m.timer.Start()
			m.total = m.timer.Snapshot().Remaining
		case "p":
			m.timer.Pause()
		case "r":
			m.timer.Reset()
			m.total = m.timer.Snapshot().Remaining
		case "s":
			m.timer.Skip()
		case "m":
			snapshot := m.timer.Snapshot()
			if snapshot.Status == timer.StatusIdle {
				m.timer.SwitchMode(nextDisplayMode(snapshot.Mode))
				m.total = m.timer.Snapshot().Remaining
			}
		}
		return m, nil

	case tickMsg:
		snapshot := m.timer.Snapshot()
		if snapshot.Status == timer.StatusIdle && snapshot.Remaining > m.total {
			m.total = snapshot.Remaining
		}
		if snapshot.Remaining > m.total {
			m.total = snapshot.Remaining
		}
		return m, tickCmd()
	}

	return m, nil
}

// View renders the countdown.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snapshot := m.timer.Snapshot()

	color := workColor
	if snapshot.Mode != domain.ModeWork {
		color = breakColor
	}

	title := titleStyle.Foreground(color).Render(
		fmt.Sprintf("%s %s", modeIcon(snapshot.Mode), snapshot.Mode.Label()))

	clock := clockStyle.Render(formatRemaining(snapshot.Remaining) + statusSuffix(snapshot.Status))

	percent := 0.0
	if m.total > 0 {
		percent = 1 - float64(snapshot.Remaining)/float64(m.total)
	}
	bar := lipgloss.NewStyle().Padding(0, 0, 0, 2).Render(m.progress.ViewAs(percent))

	stats := statsStyle.Render(fmt.Sprintf("sessions: %d   interruptions: %d",
		snapshot.CompletedSessions, snapshot.Interruptions))

	help := helpStyle.Render("space start · p pause · r reset · s skip · m mode · q quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, "", clock, bar, "", stats, help)
}

// statusSuffix annotates the clock for non-running states.
func statusSuffix(status timer.Status) string {
	switch status {
	case timer.StatusPaused:
		return "  (paused)"
	case timer.StatusIdle:
		return "  (press space)"
	case timer.StatusCompleted:
		return "  done!"
	default:
		return ""
	}
}

func formatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func modeIcon(mode domain.Mode) string {
	if mode == domain.ModeWork {
		return "🍅"
	}
	return "☕"
}

// nextDisplayMode cycles work -> short break -> long break -> work for the
// manual mode key.
func nextDisplayMode(mode domain.Mode) domain.Mode {
	switch mode {
	case domain.ModeWork:
		return domain.ModeShortBreak
	case domain.ModeShortBreak:
		return domain.ModeLongBreak
	default:
		return domain.ModeWork
	}
}

// Run drives the countdown view until the user quits.
func Run(control ports.TimerControl) error {
	program := tea.NewProgram(NewModel(control))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
