package state

import "sync"

type Phase int

const (
	IDLE Phase = iota
	LOADING
	PLANNING
	COUNTDOWN
	DRAWING
	DONE
	CANCELLED
	FAILED
)

func (p Phase) String() string {
	switch p {
	case IDLE:
		return "idle"
	case LOADING:
		return "loading"
	case PLANNING:
		return "planning"
	case COUNTDOWN:
		return "countdown"
	case DRAWING:
		return "drawing"
	case DONE:
		return "done"
	case CANCELLED:
		return "cancelled"
	case FAILED:
		return "failed"
	default:
		return "unknown"
	}
}

// RunInfo identifies the current or most recent drawing run.
type RunInfo struct {
	ID     string
	Source string
	Style  string
	Target string
}

// Progress tracks how far the executor has come through the plan.
type Progress struct {
	SegmentsDone  int
	SegmentsTotal int
	Color         string
}

type State struct {
	Phase    Phase
	Run      RunInfo
	Progress Progress
	Err      string
}

// Store is the shared run state. Writers are the app pipeline; readers are
// the HTTP status endpoint and whoever else polls. Snapshot returns a copy
// so readers never hold the lock across their own work.
type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore() *Store {
	return &Store{state: State{Phase: IDLE}}
}

func (store *Store) Snapshot() State {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.state
}

func (store *Store) SetPhase(phase Phase) {
	store.mu.Lock()
	store.state.Phase = phase
	store.mu.Unlock()
}

func (store *Store) StartRun(run RunInfo) {
	store.mu.Lock()
	store.state = State{Phase: LOADING, Run: run}
	store.mu.Unlock()
}

func (store *Store) UpdateProgress(progress Progress) {
	store.mu.Lock()
	store.state.Progress = progress
	store.mu.Unlock()
}

func (store *Store) Fail(err error) {
	store.mu.Lock()
	store.state.Phase = FAILED
	if err != nil {
		store.state.Err = err.Error()
	}
	store.mu.Unlock()
}
