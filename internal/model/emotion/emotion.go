// Package emotion defines the emotion tags attached to conversation turns and
// companion expressions, together with their display labels.
package emotion

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zhouzirui/questme/backend/configs"
)

// Kind is one of the fixed emotional-tone tags.
type Kind string

const (
	Neutral       Kind = "neutral"
	Happy         Kind = "happy"
	Sad           Kind = "sad"
	Angry         Kind = "angry"
	Thinking      Kind = "thinking"
	Sexy          Kind = "sexy"
	Encouraging   Kind = "encouraging"
	Gentle        Kind = "gentle"
	Surprised     Kind = "surprised"
	Lonely        Kind = "lonely"
	Focused       Kind = "focused"
	Nostalgic     Kind = "nostalgic"
	Sleepy        Kind = "sleepy"
	Poetic        Kind = "poetic"
	Philosophical Kind = "philosophical"
	Childish      Kind = "childish"
	Elderly       Kind = "elderly"
	Robotic       Kind = "robotic"
	Romantic      Kind = "romantic"
	Playful       Kind = "playful"
	Shy           Kind = "shy"
	Proud         Kind = "proud"
	Confused      Kind = "confused"
)

// BaseLanguage is the app's base language; its translations back every other.
const BaseLanguage = "ja"

const fallbackPhrase = "今の気持ちを整理しています。"

var kinds = []Kind{
	Neutral, Happy, Sad, Angry, Thinking, Sexy, Encouraging, Gentle, Surprised,
	Lonely, Focused, Nostalgic, Sleepy, Poetic, Philosophical, Childish, Elderly,
	Robotic, Romantic, Playful, Shy, Proud, Confused,
}

var baseLabels = map[Kind]string{
	Neutral:       "ふつう",
	Happy:         "うれしい",
	Sad:           "かなしい",
	Angry:         "おこってる",
	Thinking:      "かんがえ中",
	Sexy:          "セクシー",
	Encouraging:   "おうえん",
	Gentle:        "やさしい",
	Surprised:     "びっくり",
	Lonely:        "さびしい",
	Focused:       "しゅうちゅう",
	Nostalgic:     "なつかしい",
	Sleepy:        "ねむい",
	Poetic:        "しとやか",
	Philosophical: "しさつてき",
	Childish:      "むじゃき",
	Elderly:       "おだやか",
	Robotic:       "むきしつ",
	Romantic:      "ときめき",
	Playful:       "あそびごころ",
	Shy:           "てれくさい",
	Proud:         "じしんまんまん",
	Confused:      "とまどい",
}

var defaultPhrases = map[Kind]string{
	Happy:       "嬉しい気持ちです！",
	Sad:         "少し落ち込んでいます…",
	Angry:       "ちょっと怒ってるかも。",
	Thinking:    "考え中です。",
	Surprised:   "びっくりしました！",
	Gentle:      "穏やかな気持ちです。",
	Encouraging: "あなたを応援しています！",
	Neutral:     "落ち着いています。",
	Sexy:        "魅力的な気分です。",
}

// translations maps kind -> language code -> label, loaded once from the
// embedded table.
var translations = mustLoadTranslations(configs.Emotions)

type translationFile struct {
	Emotions map[Kind]map[string]string `yaml:"emotions"`
}

func loadTranslations(data []byte) (map[Kind]map[string]string, error) {
	var file translationFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal emotion translations: %w", err)
	}
	if file.Emotions == nil {
		return map[Kind]map[string]string{}, nil
	}
	return file.Emotions, nil
}

func mustLoadTranslations(data []byte) map[Kind]map[string]string {
	table, err := loadTranslations(data)
	if err != nil {
		panic(err)
	}
	return table
}

// All returns every kind in declaration order.
func All() []Kind {
	return append([]Kind(nil), kinds...)
}

// ParseKind resolves a raw key such as "Happy " to a Kind.
func ParseKind(raw string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(raw)))
	if !k.Valid() {
		return "", false
	}
	return k, true
}

// Valid reports whether k belongs to the fixed set.
func (k Kind) Valid() bool {
	_, ok := baseLabels[k]
	return ok
}

// Label returns the base-language (Japanese) label. Values outside the fixed
// set yield their raw key.
func (k Kind) Label() string {
	if label, ok := baseLabels[k]; ok {
		return label
	}
	return string(k)
}

// LocalizedLabel returns the label for languageCode. The code is reduced to
// its primary subtag ("en-US" -> "en") before lookup; misses fall back to the
// base language, then to Label.
func (k Kind) LocalizedLabel(languageCode string) string {
	table := translations[k]
	if label := table[normalizeLanguage(languageCode)]; label != "" {
		return label
	}
	if label := table[BaseLanguage]; label != "" {
		return label
	}
	return k.Label()
}

// DefaultPhrase returns a canned phrase for the kind. Only a handful of kinds
// have their own phrase; the rest share a generic one.
func (k Kind) DefaultPhrase() string {
	if phrase, ok := defaultPhrases[k]; ok {
		return phrase
	}
	return fallbackPhrase
}

func (k Kind) String() string {
	return string(k)
}

func normalizeLanguage(code string) string {
	parts := strings.FieldsFunc(code, func(r rune) bool { return r == '-' })
	if len(parts) == 0 {
		return strings.ToLower(code)
	}
	return strings.ToLower(parts[0])
}
