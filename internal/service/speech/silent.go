package speech

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode"
)

// Silent is a Synthesizer that produces no audio. It walks the text segment
// by segment and reports progress as a real engine would, which is enough to
// drive text highlighting in previews and tests.
type Silent struct {
	// perRune is the time spent per rune at rate 1.0.
	perRune time.Duration
}

var _ Synthesizer = (*Silent)(nil)

// NewSilent creates a silent synthesizer. perRune of zero reports progress
// as fast as the observer consumes it.
func NewSilent(perRune time.Duration) *Silent {
	if perRune < 0 {
		perRune = 0
	}
	return &Silent{perRune: perRune}
}

// Speak starts walking u in the background and returns immediately.
func (s *Silent) Speak(ctx context.Context, u Utterance, obs Observer) (Handle, error) {
	if strings.TrimSpace(u.Profile.SpeechCode) == "" {
		return nil, ErrVoiceUnavailable
	}
	if strings.TrimSpace(u.Text) == "" {
		return nil, ErrEmptyText
	}

	h := newHandle()
	go s.run(ctx, u, obs, h)
	return h, nil
}

func (s *Silent) run(ctx context.Context, u Utterance, obs Observer, h *handle) {
	defer close(h.done)

	if !h.wait(ctx, u.Params.PreDelay) {
		return
	}

	slog.Debug("silent utterance started", "component", "speech", "speechCode", u.Profile.SpeechCode, "runes", len([]rune(u.Text)))
	obs.OnStart()
	defer obs.OnFinish()

	rate := u.Params.Rate
	if rate <= 0 {
		rate = 1
	}

	for _, r := range Segments(u.Text) {
		obs.OnProgress(r)
		pause := time.Duration(float64(s.perRune) * float64(r.Length) / rate)
		if !h.wait(ctx, pause) {
			return
		}
	}
}

// Segments splits text into the ranges a synthesizer would report: runs of
// non-space runes, each closed by trailing punctuation.
func Segments(text string) []Range {
	var (
		out   []Range
		start = -1
		idx   int
	)
	flush := func(end int) {
		if start >= 0 && end > start {
			out = append(out, Range{Location: start, Length: end - start})
		}
		start = -1
	}

	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			flush(idx)
		case unicode.IsPunct(r):
			if start < 0 {
				start = idx
			}
			flush(idx + 1)
		default:
			if start < 0 {
				start = idx
			}
		}
		idx++
	}
	flush(idx)
	return out
}

type handle struct {
	once sync.Once
	stop chan struct{}
	done chan struct{}
}

func newHandle() *handle {
	return &handle{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
}

func (h *handle) Stop() {
	h.once.Do(func() { close(h.stop) })
}

func (h *handle) Done() <-chan struct{} {
	return h.done
}

// wait pauses for d and reports whether the utterance should continue.
func (h *handle) wait(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		select {
		case <-ctx.Done():
			return false
		case <-h.stop:
			return false
		default:
			return true
		}
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-h.stop:
		return false
	case <-timer.C:
		return true
	}
}
