package cancel

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestTokenLifecycle(t *testing.T) {
	tok := NewToken()
	if tok.Cancelled() {
		t.Fatal("fresh token is cancelled")
	}
	tok.Cancel()
	if !tok.Cancelled() {
		t.Fatal("Cancel did not set token")
	}
	tok.Reset()
	if tok.Cancelled() {
		t.Fatal("Reset did not clear token")
	}
}

// fakeTrigger fires on demand from tests.
type fakeTrigger struct {
	ch       chan Event
	startErr error
	started  bool
	stopped  bool
}

func newFakeTrigger() *fakeTrigger { return &fakeTrigger{ch: make(chan Event, 1)} }

func (f *fakeTrigger) Start(ctx context.Context) error {
	if f.startErr != nil {
		return f.startErr
	}
	f.started = true
	return nil
}
func (f *fakeTrigger) Stop() error                     { f.stopped = true; return nil }
func (f *fakeTrigger) Events() <-chan Event            { return f.ch }
func (f *fakeTrigger) fire(ev Event)                   { f.ch <- ev }

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestMonitorSetsTokenOnTrigger(t *testing.T) {
	tok := NewToken()
	trig := newFakeTrigger()
	m := NewMonitor(tok, trig)
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer m.Stop()

	if !trig.started {
		t.Fatal("trigger not started")
	}
	if tok.Cancelled() {
		t.Fatal("token set before any trigger fired")
	}
	trig.fire(EventHotkey)
	waitFor(t, tok.Cancelled)
}

func TestMonitorStartResetsToken(t *testing.T) {
	tok := NewToken()
	tok.Cancel()
	m := NewMonitor(tok, newFakeTrigger())
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer m.Stop()
	if tok.Cancelled() {
		t.Fatal("Start did not reset token from previous run")
	}
}

func TestMonitorStopStopsTriggers(t *testing.T) {
	tok := NewToken()
	trig := newFakeTrigger()
	m := NewMonitor(tok, trig)
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	m.Stop()
	if !trig.stopped {
		t.Fatal("trigger not stopped")
	}
	if tok.Cancelled() {
		t.Fatal("stopping without a trigger event set the token")
	}
}

func TestMonitorStartFailureStopsStartedTriggers(t *testing.T) {
	first := newFakeTrigger()
	second := newFakeTrigger()
	second.startErr = errors.New("hook unavailable")
	m := NewMonitor(NewToken(), first, second)
	if err := m.Start(context.Background()); err == nil {
		t.Fatal("Start succeeded despite a failing trigger")
	}
	if !first.started {
		t.Fatal("first trigger never started")
	}
	if !first.stopped {
		t.Error("started trigger left running after failed Start")
	}
	if second.stopped {
		t.Error("failed trigger was stopped")
	}
}

func TestCornerTrigger(t *testing.T) {
	pos := make(chan [2]int, 4)
	current := [2]int{100, 100}
	trig := NewCornerTrigger(
		func() (int, int) {
			select {
			case current = <-pos:
			default:
			}
			return current[0], current[1]
		},
		func() (int, int) { return 1920, 1080 },
	)
	trig.Interval = time.Millisecond

	tok := NewToken()
	m := NewMonitor(tok, trig)
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer m.Stop()

	time.Sleep(10 * time.Millisecond)
	if tok.Cancelled() {
		t.Fatal("center position tripped the failsafe")
	}
	pos <- [2]int{0, 0}
	waitFor(t, tok.Cancelled)
}

func TestCornerTriggerAllCorners(t *testing.T) {
	corners := [][2]int{{0, 0}, {1919, 0}, {0, 1079}, {1919, 1079}, {2, 1078}}
	for _, c := range corners {
		trig := &CornerTrigger{
			Position: func() (int, int) { return c[0], c[1] },
			Screen:   func() (int, int) { return 1920, 1080 },
		}
		if !trig.inCorner(5) {
			t.Errorf("position %v not detected as corner", c)
		}
	}
	center := &CornerTrigger{
		Position: func() (int, int) { return 960, 540 },
		Screen:   func() (int, int) { return 1920, 1080 },
	}
	if center.inCorner(5) {
		t.Error("center detected as corner")
	}
	edge := &CornerTrigger{
		Position: func() (int, int) { return 0, 540 },
		Screen:   func() (int, int) { return 1920, 1080 },
	}
	if edge.inCorner(5) {
		t.Error("mid-edge detected as corner")
	}
}

func TestRemoteTrigger(t *testing.T) {
	trig := NewRemoteTrigger()
	trig.Fire() // stale fire before the run

	tok := NewToken()
	m := NewMonitor(tok, trig)
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer m.Stop()

	time.Sleep(10 * time.Millisecond)
	if tok.Cancelled() {
		t.Fatal("stale pre-run fire leaked into the run")
	}
	trig.Fire()
	waitFor(t, tok.Cancelled)
}
