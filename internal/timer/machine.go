// Package timer implements the countdown state machine: mode transitions,
// per-second ticks, and session-completion side effects.
package timer

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tempo-cli/tempo/internal/domain"
)

// Status is the live countdown state. Mode is orthogonal.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusRunning   Status = "running"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
)

// Snapshot is a point-in-time copy of the machine state.
type Snapshot struct {
	Mode              domain.Mode
	Status            Status
	Remaining         int
	CompletedSessions int
	Interruptions     int
}

// Recorder receives completed work sessions for persistence.
type Recorder interface {
	RecordCompletedSession(ctx context.Context, session *domain.Session) error
}

// Cues plays best-effort completion feedback.
type Cues interface {
	PlaySound() error
	Haptic() error
}

// Notifier dispatches a fire-and-forget notification.
type Notifier interface {
	Notify(title, body string) error
}

// Option configures a Machine.
type Option func(*Machine)

// WithTickInterval overrides the one-second tick. A non-positive interval
// disables the internal ticker so tests can drive ticks manually.
func WithTickInterval(d time.Duration) Option {
	return func(m *Machine) { m.tickInterval = d }
}

// WithAdvanceDelay overrides the pause between completion and the automatic
// advance to the next mode. A non-positive delay advances synchronously.
func WithAdvanceDelay(d time.Duration) Option {
	return func(m *Machine) { m.advanceDelay = d }
}

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) { m.now = now }
}

// Machine owns the countdown. All public operations are total: calls that
// are invalid for the current status are no-ops, never errors. The machine
// holds at most one live tick handle and one pending advance timer; starting
// a countdown cancels any existing handle first.
type Machine struct {
	mu sync.Mutex

	prefs    domain.Preferences
	user     *domain.User
	recorder Recorder
	cues     Cues
	notifier Notifier
	logger   *log.Logger

	mode          domain.Mode
	status        Status
	remaining     int
	completed     int
	interruptions int
	startedAt     time.Time

	tickStop     chan struct{}
	advanceTimer *time.Timer
	closed       bool

	tickInterval time.Duration
	advanceDelay time.Duration
	now          func() time.Time
}

// New creates a machine in work mode, idle, with the full work duration
// remaining. Any collaborator may be nil; the corresponding side effect is
// skipped.
func New(prefs domain.Preferences, user *domain.User, recorder Recorder, cues Cues, notifier Notifier, logger *log.Logger, opts ...Option) *Machine {
	m := &Machine{
		prefs:        prefs,
		user:         user,
		recorder:     recorder,
		cues:         cues,
		notifier:     notifier,
		logger:       logger,
		mode:         domain.ModeWork,
		status:       StatusIdle,
		tickInterval: time.Second,
		advanceDelay: 2 * time.Second,
		now:          time.Now,
	}
	if m.logger == nil {
		m.logger = log.Default()
	}
	for _, opt := range opts {
		opt(m)
	}
	m.remaining = m.durationSeconds(m.mode)
	return m
}

func (m *Machine) durationSeconds(mode domain.Mode) int {
	return int(m.prefs.DurationFor(mode).Seconds())
}

// Snapshot returns a copy of the current state.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		Mode:              m.mode,
		Status:            m.status,
		Remaining:         m.remaining,
		CompletedSessions: m.completed,
		Interruptions:     m.interruptions,
	}
}

// Start begins or resumes the countdown. Starting while already running is
// a no-op; resuming from paused does not count as an interruption.
func (m *Machine) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || m.status == StatusRunning || m.status == StatusCompleted {
		return
	}
	if m.status == StatusIdle {
		m.startedAt = m.now()
	}
	m.status = StatusRunning
	m.startTickerLocked()
}

// Pause halts the countdown and counts an interruption. Only valid while
// running.
func (m *Machine) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status != StatusRunning {
		return
	}
	m.stopTickerLocked()
	m.status = StatusPaused
	m.interruptions++
}

// Reset cancels the countdown and restores the current mode's full
// duration.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopTickerLocked()
	m.cancelAdvanceLocked()
	m.status = StatusIdle
	m.remaining = m.durationSeconds(m.mode)
	m.interruptions = 0
}

// Skip performs the same completion side effects as natural expiry without
// waiting for the countdown, then auto-advances.
func (m *Machine) Skip() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || m.status == StatusCompleted {
		return
	}
	m.stopTickerLocked()
	m.remaining = 0
	m.status = StatusCompleted
	m.completeLocked()
}

// SwitchMode changes the mode from any state and resets to idle. The
// machine does not gate switching while running; callers are expected to.
func (m *Machine) SwitchMode(mode domain.Mode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.stopTickerLocked()
	m.cancelAdvanceLocked()
	m.mode = mode
	m.status = StatusIdle
	m.remaining = m.durationSeconds(mode)
	m.interruptions = 0
}

// Close tears the machine down, cancelling any pending tick or advance so
// nothing mutates state after disposal.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.stopTickerLocked()
	m.cancelAdvanceLocked()
	if m.status == StatusRunning {
		m.status = StatusIdle
	}
}

// startTickerLocked launches the recurring tick goroutine, cancelling any
// previous handle first. Reentrancy is not supported.
func (m *Machine) startTickerLocked() {
	m.stopTickerLocked()
	if m.tickInterval <= 0 {
		return
	}
	stop := make(chan struct{})
	m.tickStop = stop
	go func() {
		ticker := time.NewTicker(m.tickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if !m.tick() {
					return
				}
			}
		}
	}()
}

// stopTickerLocked deterministically cancels the pending tick handle so a
// stale tick cannot fire after a state transition.
func (m *Machine) stopTickerLocked() {
	if m.tickStop != nil {
		close(m.tickStop)
		m.tickStop = nil
	}
}

func (m *Machine) cancelAdvanceLocked() {
	if m.advanceTimer != nil {
		m.advanceTimer.Stop()
		m.advanceTimer = nil
	}
}

// tick decrements the countdown by one second. It reports whether the
// ticker should keep running.
func (m *Machine) tick() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status != StatusRunning {
		return false
	}
	m.remaining--
	if m.remaining > 0 {
		return true
	}
	m.remaining = 0
	m.status = StatusCompleted
	m.tickStop = nil
	m.completeLocked()
	return false
}

// completeLocked runs the completion side effects and schedules the
// advance to the next mode. Sound, haptic, and notification are dispatched
// independently without a join; any failure is logged and swallowed. A
// completing work session is forwarded to the recorder, and the completed
// counter increments only after the recorder reports success.
func (m *Machine) completeLocked() {
	mode := m.mode
	interruptions := m.interruptions
	sessionsSoFar := m.completed

	if m.cues != nil && m.prefs.EnableSounds {
		go func() {
			if err := m.cues.PlaySound(); err != nil {
				m.logger.Warn("completion sound failed", "err", err)
			}
		}()
	}
	if m.cues != nil && m.prefs.EnableHaptics {
		go func() {
			if err := m.cues.Haptic(); err != nil {
				m.logger.Warn("haptic cue failed", "err", err)
			}
		}()
	}
	if m.notifier != nil && m.prefs.EnableNotifications {
		go func() {
			if err := m.notifier.Notify(completionTitle(mode), completionBody(mode)); err != nil {
				m.logger.Warn("completion notification failed", "err", err)
			}
		}()
	}

	if mode == domain.ModeWork && m.user != nil && m.recorder != nil {
		session := domain.NewWorkSession(m.user.ID, m.prefs.WorkDuration, interruptions, m.now())
		go func() {
			if err := m.recorder.RecordCompletedSession(context.Background(), session); err != nil {
				// The in-memory transition is not rolled back; the counter
				// simply undercounts until the next successful save.
				m.logger.Warn("failed to persist completed session", "err", err)
				return
			}
			m.mu.Lock()
			if !m.closed {
				m.completed++
			}
			m.mu.Unlock()
		}()
	}

	next := m.nextMode(mode, sessionsSoFar)
	if m.advanceDelay <= 0 {
		m.advanceLocked(next)
		return
	}
	m.advanceTimer = time.AfterFunc(m.advanceDelay, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.closed || m.status != StatusCompleted {
			return
		}
		m.advanceLocked(next)
	})
}

func (m *Machine) advanceLocked(next domain.Mode) {
	m.advanceTimer = nil
	m.mode = next
	m.status = StatusIdle
	m.remaining = m.durationSeconds(next)
	m.interruptions = 0
}

// nextMode cycles work -> break -> work. Every Nth work completion earns a
// long break.
func (m *Machine) nextMode(completedMode domain.Mode, sessionsSoFar int) domain.Mode {
	if completedMode != domain.ModeWork {
		return domain.ModeWork
	}
	until := m.prefs.SessionsUntilLongBreak
	if until <= 0 {
		until = domain.DefaultPreferences().SessionsUntilLongBreak
	}
	if (sessionsSoFar+1)%until == 0 {
		return domain.ModeLongBreak
	}
	return domain.ModeShortBreak
}

func completionTitle(mode domain.Mode) string {
	if mode == domain.ModeWork {
		return "🍅 Session complete!"
	}
	return "☕ Break over!"
}

func completionBody(mode domain.Mode) string {
	if mode == domain.ModeWork {
		return "Great job! Time for a break."
	}
	return "Ready to focus again?"
}
