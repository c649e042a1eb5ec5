// Package companion defines the companion characters a user talks to.
package companion

import (
	"github.com/zhouzirui/questme/backend/internal/model/emotion"
	"github.com/zhouzirui/questme/backend/internal/model/voice"
)

// Style is a companion's speaking character. Each style has an emotion of
// the same name that the avatar, bubble and voice default to.
type Style string

const (
	StyleGentle        Style = "gentle"
	StyleEncouraging   Style = "encouraging"
	StyleProud         Style = "proud"
	StylePhilosophical Style = "philosophical"
	StylePoetic        Style = "poetic"
	StyleRobotic       Style = "robotic"
	StyleElderly       Style = "elderly"
	StyleChildish      Style = "childish"
	StyleRomantic      Style = "romantic"
	StylePlayful       Style = "playful"
	StyleShy           Style = "shy"
	StyleConfused      Style = "confused"
)

var styleEmotions = map[Style]emotion.Kind{
	StyleGentle:        emotion.Gentle,
	StyleEncouraging:   emotion.Encouraging,
	StyleProud:         emotion.Proud,
	StylePhilosophical: emotion.Philosophical,
	StylePoetic:        emotion.Poetic,
	StyleRobotic:       emotion.Robotic,
	StyleElderly:       emotion.Elderly,
	StyleChildish:      emotion.Childish,
	StyleRomantic:      emotion.Romantic,
	StylePlayful:       emotion.Playful,
	StyleShy:           emotion.Shy,
	StyleConfused:      emotion.Confused,
}

// Styles lists every companion style.
func Styles() []Style {
	return []Style{
		StyleGentle, StyleEncouraging, StyleProud, StylePhilosophical, StylePoetic, StyleRobotic,
		StyleElderly, StyleChildish, StyleRomantic, StylePlayful, StyleShy, StyleConfused,
	}
}

// DefaultEmotion returns the emotion the style expresses when nothing else
// is known. Unknown styles express neutral.
func (s Style) DefaultEmotion() emotion.Kind {
	if k, ok := styleEmotions[s]; ok {
		return k
	}
	return emotion.Neutral
}

// Companion is a character exposed to the app.
type Companion struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Style       Style         `json:"style"`
	Voice       voice.Profile `json:"voice"`
	OpeningLine string        `json:"openingLine"`
}

// DefaultEmotion is the emotion the companion starts a conversation with.
func (c Companion) DefaultEmotion() emotion.Kind {
	return c.Style.DefaultEmotion()
}

// Seed provides the built-in companions. Voices without a fixed language
// speak speechCode; a blank code keeps voice.DefaultSpeechCode.
func Seed(speechCode string) []Companion {
	code := voice.WithSpeechCode(speechCode)
	return []Companion{
		{
			ID:          "hikari",
			Name:        "ひかり",
			Style:       StyleEncouraging,
			Voice:       voice.NewProfile(voice.StyleEnergetic, voice.ToneBright, code),
			OpeningLine: "おはようございます！今日も一緒にがんばりましょう。",
		},
		{
			ID:          "shizuku",
			Name:        "しずく",
			Style:       StyleGentle,
			Voice:       voice.NewProfile(voice.StyleCalm, voice.ToneNeutral, voice.WithSpeed(voice.SpeedSlow), code),
			OpeningLine: "今日は心地よい気分ですよ。ゆっくりお話ししましょう。",
		},
		{
			ID:          "sensei",
			Name:        "せんせい",
			Style:       StylePhilosophical,
			Voice:       voice.NewProfile(voice.StyleGentle, voice.ToneDeep, code),
			OpeningLine: "さて、今日はどんなことを考えてみましょうか。",
		},
		{
			ID:          "nova",
			Name:        "Nova",
			Style:       StylePlayful,
			Voice:       voice.NewProfile(voice.StyleLively, voice.ToneHusky, voice.WithSpeechCode("en-US")),
			OpeningLine: "Hey there! What are we getting into today?",
		},
	}
}
