package speech

import "sync"

// State is a snapshot of a Tracker.
type State struct {
	Speaking bool   `json:"speaking"`
	Range    *Range `json:"range,omitempty"`
}

// Tracker follows an utterance's progress so a view can highlight the text
// currently being spoken. It implements Observer.
type Tracker struct {
	mu       sync.RWMutex
	speaking bool
	current  *Range
	onChange func(State)
}

// NewTracker creates a tracker. onChange, if non-nil, is invoked after every
// state change with the new snapshot.
func NewTracker(onChange func(State)) *Tracker {
	return &Tracker{onChange: onChange}
}

// OnStart marks the tracker as speaking.
func (t *Tracker) OnStart() {
	t.update(func() {
		t.speaking = true
	})
}

// OnProgress records r as the range being spoken.
func (t *Tracker) OnProgress(r Range) {
	t.update(func() {
		t.current = &r
	})
}

// OnFinish clears the speaking flag and the current range.
func (t *Tracker) OnFinish() {
	t.update(func() {
		t.speaking = false
		t.current = nil
	})
}

// Speaking reports whether an utterance is in progress.
func (t *Tracker) Speaking() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.speaking
}

// CurrentRange returns the range being spoken, if any.
func (t *Tracker) CurrentRange() (Range, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.current == nil {
		return Range{}, false
	}
	return *t.current, true
}

// Snapshot returns the current state.
func (t *Tracker) Snapshot() State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.snapshotLocked()
}

func (t *Tracker) update(fn func()) {
	t.mu.Lock()
	fn()
	state := t.snapshotLocked()
	t.mu.Unlock()

	if t.onChange != nil {
		t.onChange(state)
	}
}

func (t *Tracker) snapshotLocked() State {
	state := State{Speaking: t.speaking}
	if t.current != nil {
		r := *t.current
		state.Range = &r
	}
	return state
}
