package timer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/tempo-cli/tempo/internal/domain"
)

// testPrefs uses tiny durations so countdown tests stay fast.
func testPrefs() domain.Preferences {
	return domain.Preferences{
		WorkDuration:           3 * time.Second,
		ShortBreakDuration:     2 * time.Second,
		LongBreakDuration:      5 * time.Second,
		SessionsUntilLongBreak: 4,
		WeeklyGoal:             21,
	}
}

func testMachineUser() *domain.User {
	return &domain.User{ID: "user-1", Preferences: testPrefs()}
}

// stubRecorder records sessions and signals each persistence.
type stubRecorder struct {
	mu       sync.Mutex
	sessions []*domain.Session
	err      error
	saved    chan struct{}
}

func newStubRecorder() *stubRecorder {
	return &stubRecorder{saved: make(chan struct{}, 16)}
}

func (r *stubRecorder) RecordCompletedSession(ctx context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		r.saved <- struct{}{}
		return r.err
	}
	r.sessions = append(r.sessions, session)
	r.saved <- struct{}{}
	return nil
}

func (r *stubRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// manualMachine builds a machine driven by explicit tick() calls with a
// synchronous advance.
func manualMachine(recorder Recorder) *Machine {
	return New(testPrefs(), testMachineUser(), recorder, nil, nil, nil,
		WithTickInterval(0), WithAdvanceDelay(0))
}

// waitForCompleted polls until the completed counter reaches want.
func waitForCompleted(t *testing.T, m *Machine, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if m.Snapshot().CompletedSessions >= want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("completed sessions = %d, want %d", m.Snapshot().CompletedSessions, want)
}

func TestMachineInitialState(t *testing.T) {
	m := manualMachine(nil)
	defer m.Close()

	snapshot := m.Snapshot()
	if snapshot.Mode != domain.ModeWork {
		t.Errorf("initial mode = %v, want work", snapshot.Mode)
	}
	if snapshot.Status != StatusIdle {
		t.Errorf("initial status = %v, want idle", snapshot.Status)
	}
	if snapshot.Remaining != 3 {
		t.Errorf("initial remaining = %d, want 3", snapshot.Remaining)
	}
}

func TestMachineCountdownCompletesAfterExactTicks(t *testing.T) {
	m := manualMachine(nil)
	defer m.Close()

	m.Start()
	m.tick()
	m.tick()
	if got := m.Snapshot(); got.Status != StatusRunning || got.Remaining != 1 {
		t.Fatalf("after 2 ticks: status=%v remaining=%d, want running/1", got.Status, got.Remaining)
	}

	m.tick()
	// Synchronous advance: the work interval completed and the machine moved
	// to a short break.
	snapshot := m.Snapshot()
	if snapshot.Mode != domain.ModeShortBreak {
		t.Errorf("mode after completion = %v, want short_break", snapshot.Mode)
	}
	if snapshot.Status != StatusIdle {
		t.Errorf("status after advance = %v, want idle", snapshot.Status)
	}
	if snapshot.Remaining != 2 {
		t.Errorf("remaining after advance = %d, want 2", snapshot.Remaining)
	}
}

func TestMachinePauseCountsInterruption(t *testing.T) {
	m := manualMachine(nil)
	defer m.Close()

	m.Start()
	m.tick()
	m.Pause()

	snapshot := m.Snapshot()
	if snapshot.Status != StatusPaused {
		t.Errorf("status = %v, want paused", snapshot.Status)
	}
	if snapshot.Interruptions != 1 {
		t.Errorf("interruptions = %d, want 1", snapshot.Interruptions)
	}
	if snapshot.Remaining != 2 {
		t.Errorf("remaining = %d, want 2 (frozen)", snapshot.Remaining)
	}

	// Resuming does not count another interruption.
	m.Start()
	if got := m.Snapshot().Interruptions; got != 1 {
		t.Errorf("interruptions after resume = %d, want 1", got)
	}
}

func TestMachinePauseWhenNotRunningIsNoOp(t *testing.T) {
	m := manualMachine(nil)
	defer m.Close()

	m.Pause()
	snapshot := m.Snapshot()
	if snapshot.Status != StatusIdle || snapshot.Interruptions != 0 {
		t.Errorf("pause while idle mutated state: %+v", snapshot)
	}
}

func TestMachineResetRestoresFullDuration(t *testing.T) {
	m := manualMachine(nil)
	defer m.Close()

	m.Start()
	m.tick()
	m.Pause()
	m.Start()
	m.tick()
	m.Reset()

	snapshot := m.Snapshot()
	if snapshot.Status != StatusIdle {
		t.Errorf("status after reset = %v, want idle", snapshot.Status)
	}
	if snapshot.Remaining != 3 {
		t.Errorf("remaining after reset = %d, want full duration 3", snapshot.Remaining)
	}
	if snapshot.Interruptions != 0 {
		t.Errorf("interruptions after reset = %d, want 0", snapshot.Interruptions)
	}
	if snapshot.Mode != domain.ModeWork {
		t.Errorf("mode after reset = %v, want unchanged work", snapshot.Mode)
	}
}

func TestMachineSkipAdvances(t *testing.T) {
	m := manualMachine(nil)
	defer m.Close()

	m.Start()
	m.Skip()

	snapshot := m.Snapshot()
	if snapshot.Mode != domain.ModeShortBreak {
		t.Errorf("mode after skip = %v, want short_break", snapshot.Mode)
	}
	if snapshot.Status != StatusIdle {
		t.Errorf("status after skip = %v, want idle", snapshot.Status)
	}
}

func TestMachineSwitchModeResets(t *testing.T) {
	m := manualMachine(nil)
	defer m.Close()

	m.Start()
	m.tick()
	m.SwitchMode(domain.ModeLongBreak)

	snapshot := m.Snapshot()
	if snapshot.Mode != domain.ModeLongBreak {
		t.Errorf("mode = %v, want long_break", snapshot.Mode)
	}
	if snapshot.Status != StatusIdle {
		t.Errorf("status = %v, want idle", snapshot.Status)
	}
	if snapshot.Remaining != 5 {
		t.Errorf("remaining = %d, want 5", snapshot.Remaining)
	}
}

func TestMachineRecordsCompletedWorkSession(t *testing.T) {
	recorder := newStubRecorder()
	m := manualMachine(recorder)
	defer m.Close()

	m.Start()
	m.tick()
	m.Pause()
	m.Start()
	m.Skip()

	<-recorder.saved
	waitForCompleted(t, m, 1)

	if recorder.count() != 1 {
		t.Fatalf("recorded sessions = %d, want 1", recorder.count())
	}
	session := recorder.sessions[0]
	if session.Mode != domain.ModeWork {
		t.Errorf("recorded mode = %v, want work", session.Mode)
	}
	if session.Interruptions != 1 {
		t.Errorf("recorded interruptions = %d, want 1", session.Interruptions)
	}
	if session.DurationSeconds != 3 {
		t.Errorf("recorded duration = %d, want full work duration 3", session.DurationSeconds)
	}
}

func TestMachineCounterFrozenWhenPersistenceFails(t *testing.T) {
	recorder := newStubRecorder()
	recorder.err = context.DeadlineExceeded
	m := manualMachine(recorder)
	defer m.Close()

	m.Start()
	m.Skip()
	<-recorder.saved

	// Give the persistence goroutine a moment; the counter must not move.
	time.Sleep(50 * time.Millisecond)
	if got := m.Snapshot().CompletedSessions; got != 0 {
		t.Errorf("completed sessions = %d after failed persist, want 0", got)
	}

	// The machine still advanced to the break.
	if got := m.Snapshot().Mode; got != domain.ModeShortBreak {
		t.Errorf("mode = %v, want short_break", got)
	}
}

func TestMachineBreaksDoNotRecord(t *testing.T) {
	recorder := newStubRecorder()
	m := manualMachine(recorder)
	defer m.Close()

	m.SwitchMode(domain.ModeShortBreak)
	m.Start()
	m.Skip()

	time.Sleep(50 * time.Millisecond)
	if recorder.count() != 0 {
		t.Errorf("recorded sessions = %d for a break, want 0", recorder.count())
	}
	if got := m.Snapshot().Mode; got != domain.ModeWork {
		t.Errorf("mode after break = %v, want work", got)
	}
}

func TestMachineModeSequencingWithLongBreak(t *testing.T) {
	recorder := newStubRecorder()
	m := manualMachine(recorder)
	defer m.Close()

	var breaks []domain.Mode
	for i := 0; i < 4; i++ {
		m.Start()
		m.Skip()
		<-recorder.saved
		waitForCompleted(t, m, i+1)

		breaks = append(breaks, m.Snapshot().Mode)

		// Finish the break to return to work.
		m.Start()
		m.Skip()
	}

	want := []domain.Mode{
		domain.ModeShortBreak,
		domain.ModeShortBreak,
		domain.ModeShortBreak,
		domain.ModeLongBreak,
	}
	for i := range want {
		if breaks[i] != want[i] {
			t.Errorf("break %d = %v, want %v", i+1, breaks[i], want[i])
		}
	}
}

// blockingRecorder holds the persistence call until released.
type blockingRecorder struct {
	release chan struct{}
	done    chan struct{}
}

func (r *blockingRecorder) RecordCompletedSession(ctx context.Context, session *domain.Session) error {
	<-r.release
	close(r.done)
	return nil
}

func TestMachineCounterFrozenWhenClosedBeforePersist(t *testing.T) {
	recorder := &blockingRecorder{release: make(chan struct{}), done: make(chan struct{})}
	m := manualMachine(recorder)

	m.Start()
	m.Skip()
	m.Close()

	// Let persistence finish only after disposal; the late success must not
	// move the counter.
	close(recorder.release)
	<-recorder.done

	time.Sleep(50 * time.Millisecond)
	if got := m.Snapshot().CompletedSessions; got != 0 {
		t.Errorf("completed sessions = %d after Close, want 0", got)
	}
}

func TestMachineCloseStopsMutation(t *testing.T) {
	m := manualMachine(nil)
	m.Start()
	m.Close()

	m.Start()
	if got := m.Snapshot().Status; got == StatusRunning {
		t.Error("machine restarted after Close()")
	}
}
