package voice

import (
	"math"
	"time"
)

// Slider bounds of the voice-quality screen.
const (
	MinSpeed         = 0.5
	MaxSpeed         = 1.5
	MinTone          = -1.0
	MaxTone          = 1.0
	MinVibrato       = 0.0
	MaxVibrato       = 1.0
	MinBreakInterval = 0.0
	MaxBreakInterval = 0.5

	// pitchPerTone scales tone into a pitch multiplier around 1.0.
	pitchPerTone = 0.2
)

// Adjustment holds the fine-tuning values picked on the voice-quality screen.
// BreakInterval is in seconds.
type Adjustment struct {
	Speed         float64 `json:"speed"`
	Tone          float64 `json:"tone"`
	Vibrato       float64 `json:"vibrato"`
	BreakInterval float64 `json:"breakInterval"`
}

// UtteranceParams are the values a synthesizer applies to one utterance.
type UtteranceParams struct {
	Rate     float64       `json:"rate"`
	Pitch    float64       `json:"pitch"`
	PreDelay time.Duration `json:"preDelay"`
}

// DefaultAdjustment returns the screen's initial slider positions.
func DefaultAdjustment() Adjustment {
	return Adjustment{Speed: 1.0, Tone: 0, Vibrato: 0, BreakInterval: 0.1}
}

// Clamp bounds every value to its slider range. NaN values reset to defaults.
func (a Adjustment) Clamp() Adjustment {
	def := DefaultAdjustment()
	return Adjustment{
		Speed:         clamp(a.Speed, MinSpeed, MaxSpeed, def.Speed),
		Tone:          clamp(a.Tone, MinTone, MaxTone, def.Tone),
		Vibrato:       clamp(a.Vibrato, MinVibrato, MaxVibrato, def.Vibrato),
		BreakInterval: clamp(a.BreakInterval, MinBreakInterval, MaxBreakInterval, def.BreakInterval),
	}
}

// Utterance converts the (clamped) adjustment into synthesizer parameters.
// Vibrato has no synthesizer counterpart and is not carried over.
func (a Adjustment) Utterance() UtteranceParams {
	c := a.Clamp()
	return UtteranceParams{
		Rate:     c.Speed,
		Pitch:    1.0 + c.Tone*pitchPerTone,
		PreDelay: time.Duration(math.Round(c.BreakInterval * float64(time.Second))),
	}
}

func clamp(v, lo, hi, def float64) float64 {
	if math.IsNaN(v) {
		return def
	}
	return math.Max(lo, math.Min(hi, v))
}
