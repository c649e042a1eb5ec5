// Package voice describes how a companion sounds: the voice character picked
// on the settings screens and the speech code handed to the synthesizer.
package voice

import "strings"

// DefaultSpeechCode is used when no speech code is supplied.
const DefaultSpeechCode = "ja-JP"

// Style is the overall character of the voice.
type Style string

const (
	StyleCalm      Style = "calm"
	StyleEnergetic Style = "energetic"
	StyleGentle    Style = "gentle"
	StyleLively    Style = "lively"
	StyleSexy      Style = "sexy"
)

// Tone is the timbre of the voice.
type Tone string

const (
	ToneNeutral Tone = "neutral"
	ToneHusky   Tone = "husky"
	ToneBright  Tone = "bright"
	ToneDeep    Tone = "deep"
)

// Speed is the speaking pace.
type Speed string

const (
	SpeedSlow   Speed = "slow"
	SpeedNormal Speed = "normal"
	SpeedFast   Speed = "fast"
)

var styleLabels = map[Style]string{
	StyleCalm:      "落ち着いた",
	StyleEnergetic: "元気",
	StyleGentle:    "優しい",
	StyleLively:    "軽快",
	StyleSexy:      "セクシー",
}

var toneLabels = map[Tone]string{
	ToneNeutral: "ノーマル",
	ToneHusky:   "ハスキー",
	ToneBright:  "高め",
	ToneDeep:    "低め",
}

var speedLabels = map[Speed]string{
	SpeedSlow:   "ゆっくり",
	SpeedNormal: "普通",
	SpeedFast:   "速い",
}

// Label returns the Japanese display label.
func (s Style) Label() string { return labelOr(styleLabels[s], string(s)) }

// Label returns the Japanese display label.
func (t Tone) Label() string { return labelOr(toneLabels[t], string(t)) }

// Label returns the Japanese display label.
func (s Speed) Label() string { return labelOr(speedLabels[s], string(s)) }

// Valid reports whether s is a known style.
func (s Style) Valid() bool {
	_, ok := styleLabels[s]
	return ok
}

// Valid reports whether t is a known tone.
func (t Tone) Valid() bool {
	_, ok := toneLabels[t]
	return ok
}

// Valid reports whether s is a known speed.
func (s Speed) Valid() bool {
	_, ok := speedLabels[s]
	return ok
}

// Styles lists every style.
func Styles() []Style {
	return []Style{StyleCalm, StyleEnergetic, StyleGentle, StyleLively, StyleSexy}
}

// Tones lists every tone.
func Tones() []Tone {
	return []Tone{ToneNeutral, ToneHusky, ToneBright, ToneDeep}
}

// Speeds lists every speed.
func Speeds() []Speed {
	return []Speed{SpeedSlow, SpeedNormal, SpeedFast}
}

// Profile is the configured voice of a companion. It is plain configuration
// with no behavior of its own.
type Profile struct {
	Style      Style  `json:"style"`
	Tone       Tone   `json:"tone"`
	Speed      Speed  `json:"speed"`
	SpeechCode string `json:"speechCode"`
}

// Option customises a Profile built by NewProfile.
type Option func(*Profile)

// WithSpeed overrides the default normal speed.
func WithSpeed(speed Speed) Option {
	return func(p *Profile) { p.Speed = speed }
}

// WithSpeechCode overrides the default "ja-JP" speech code. Blank codes are ignored.
func WithSpeechCode(code string) Option {
	return func(p *Profile) {
		if code = strings.TrimSpace(code); code != "" {
			p.SpeechCode = code
		}
	}
}

// NewProfile returns a profile with normal speed and the default speech code
// unless overridden.
func NewProfile(style Style, tone Tone, opts ...Option) Profile {
	p := Profile{
		Style:      style,
		Tone:       tone,
		Speed:      SpeedNormal,
		SpeechCode: DefaultSpeechCode,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func labelOr(label, fallback string) string {
	if label == "" {
		return fallback
	}
	return label
}
