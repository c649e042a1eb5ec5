package speech

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/questme/backend/internal/model/voice"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []string
	ranges []Range
}

func (r *recordingObserver) OnStart() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "start")
}

func (r *recordingObserver) OnProgress(rg Range) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "progress")
	r.ranges = append(r.ranges, rg)
}

func (r *recordingObserver) OnFinish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "finish")
}

func waitDone(t *testing.T, h Handle) {
	t.Helper()
	select {
	case <-h.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("utterance did not finish")
	}
}

func TestSegments(t *testing.T) {
	assert.Equal(t, []Range{{0, 5}, {5, 6}}, Segments("おはよう、ございます。"))
	assert.Equal(t, []Range{{0, 6}, {7, 6}}, Segments("Hello, world!"))
	assert.Empty(t, Segments("   "))
	assert.Equal(t, []Range{{2, 3}}, Segments("  abc  "))
}

func TestTrackerTransitions(t *testing.T) {
	var states []State
	tr := NewTracker(func(s State) { states = append(states, s) })

	assert.False(t, tr.Speaking())
	_, ok := tr.CurrentRange()
	assert.False(t, ok)

	tr.OnStart()
	assert.True(t, tr.Speaking())

	tr.OnProgress(Range{Location: 0, Length: 2})
	got, ok := tr.CurrentRange()
	require.True(t, ok)
	assert.Equal(t, Range{Location: 0, Length: 2}, got)
	assert.Equal(t, 2, got.End())

	tr.OnFinish()
	assert.False(t, tr.Speaking())
	_, ok = tr.CurrentRange()
	assert.False(t, ok)

	require.Len(t, states, 3)
	assert.True(t, states[1].Speaking)
	require.NotNil(t, states[1].Range)
	assert.Nil(t, states[2].Range)
}

func TestSilentReportsProgress(t *testing.T) {
	syn := NewSilent(0)
	obs := &recordingObserver{}
	u := NewUtterance("こんにちは、テストです！", voice.NewProfile(voice.StyleCalm, voice.ToneNeutral), voice.Adjustment{Speed: 1})

	h, err := syn.Speak(context.Background(), u, obs)
	require.NoError(t, err)
	waitDone(t, h)

	obs.mu.Lock()
	defer obs.mu.Unlock()
	assert.Equal(t, []string{"start", "progress", "progress", "finish"}, obs.events)
	assert.Equal(t, []Range{{0, 6}, {6, 6}}, obs.ranges)
}

func TestSilentDrivesTracker(t *testing.T) {
	syn := NewSilent(0)
	tr := NewTracker(nil)
	u := NewUtterance("a b c", voice.NewProfile(voice.StyleGentle, voice.ToneBright), voice.Adjustment{Speed: 1})

	h, err := syn.Speak(context.Background(), u, tr)
	require.NoError(t, err)
	waitDone(t, h)

	assert.False(t, tr.Speaking())
	_, ok := tr.CurrentRange()
	assert.False(t, ok)
}

func TestSilentStop(t *testing.T) {
	syn := NewSilent(50 * time.Millisecond)
	obs := &recordingObserver{}
	u := NewUtterance("one two three four five six", voice.NewProfile(voice.StyleCalm, voice.ToneDeep), voice.Adjustment{Speed: 1})

	h, err := syn.Speak(context.Background(), u, obs)
	require.NoError(t, err)
	h.Stop()
	h.Stop()
	waitDone(t, h)

	obs.mu.Lock()
	defer obs.mu.Unlock()
	assert.Less(t, len(obs.ranges), 6)
	if len(obs.events) > 0 {
		assert.Equal(t, "finish", obs.events[len(obs.events)-1])
	}
}

func TestSilentCancelledBeforeStart(t *testing.T) {
	syn := NewSilent(0)
	obs := &recordingObserver{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	u := NewUtterance("hello", voice.NewProfile(voice.StyleCalm, voice.ToneNeutral), voice.Adjustment{Speed: 1, BreakInterval: 0.5})
	h, err := syn.Speak(ctx, u, obs)
	require.NoError(t, err)
	waitDone(t, h)

	obs.mu.Lock()
	defer obs.mu.Unlock()
	assert.Empty(t, obs.events)
}

func TestSilentErrors(t *testing.T) {
	syn := NewSilent(0)
	profile := voice.NewProfile(voice.StyleCalm, voice.ToneNeutral)

	_, err := syn.Speak(context.Background(), NewUtterance("  ", profile, voice.DefaultAdjustment()), &recordingObserver{})
	assert.ErrorIs(t, err, ErrEmptyText)

	profile.SpeechCode = ""
	_, err = syn.Speak(context.Background(), NewUtterance("hi", profile, voice.DefaultAdjustment()), &recordingObserver{})
	assert.ErrorIs(t, err, ErrVoiceUnavailable)
}

func TestNewUtteranceUsesAdjustment(t *testing.T) {
	u := NewUtterance("x", voice.NewProfile(voice.StyleCalm, voice.ToneNeutral), voice.Adjustment{Speed: 1.5, Tone: 0.5, BreakInterval: 0.2})
	assert.Equal(t, 1.5, u.Params.Rate)
	assert.InDelta(t, 1.1, u.Params.Pitch, 1e-9)
	assert.Equal(t, 200*time.Millisecond, u.Params.PreDelay)
}
