// Package speech describes the boundary to a speech-synthesis engine. The
// engine itself lives outside this repository; this package only shapes the
// utterances handed to it and tracks the progress it reports back.
package speech

import (
	"context"
	"errors"

	"github.com/zhouzirui/questme/backend/internal/model/emotion"
	"github.com/zhouzirui/questme/backend/internal/model/voice"
)

var (
	// ErrVoiceUnavailable is returned when no voice exists for the speech code.
	ErrVoiceUnavailable = errors.New("no voice available for speech code")
	// ErrEmptyText is returned for utterances without text.
	ErrEmptyText = errors.New("utterance text is empty")
)

// Range is a span of the utterance text, counted in runes.
type Range struct {
	Location int `json:"location"`
	Length   int `json:"length"`
}

// End returns the offset one past the range.
func (r Range) End() int {
	return r.Location + r.Length
}

// Utterance is one piece of text to be spoken.
type Utterance struct {
	Text    string                `json:"text"`
	Profile voice.Profile         `json:"profile"`
	Params  voice.UtteranceParams `json:"params"`
	Emotion emotion.Kind          `json:"emotion,omitempty"`
}

// NewUtterance builds an utterance for text spoken with profile, tuned by adj.
func NewUtterance(text string, profile voice.Profile, adj voice.Adjustment) Utterance {
	return Utterance{
		Text:    text,
		Profile: profile,
		Params:  adj.Utterance(),
		Emotion: emotion.Neutral,
	}
}

// Observer receives progress callbacks. Implementations must tolerate being
// called from the synthesizer's own goroutine.
type Observer interface {
	OnStart()
	OnProgress(Range)
	OnFinish()
}

// Handle controls an utterance in flight.
type Handle interface {
	// Stop cuts the utterance short. It is safe to call more than once.
	Stop()
	// Done is closed once the synthesizer has stopped reporting progress.
	Done() <-chan struct{}
}

// Synthesizer speaks utterances and reports progress to obs: OnStart once,
// OnProgress for each spoken range, OnFinish once after OnStart.
type Synthesizer interface {
	Speak(ctx context.Context, u Utterance, obs Observer) (Handle, error)
}
