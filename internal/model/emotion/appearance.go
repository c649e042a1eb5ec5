package emotion

// Appearance carries presentation keys for a kind. The values are opaque to
// the core; the presentation layer maps them to its own palette and symbols.
type Appearance struct {
	Color   string  `json:"color"`
	Opacity float64 `json:"opacity"`
	Icon    string  `json:"icon"`
}

var appearances = map[Kind]Appearance{
	Neutral:       {Color: "gray", Opacity: 1, Icon: "circle"},
	Happy:         {Color: "yellow", Opacity: 1, Icon: "sun.max.fill"},
	Sad:           {Color: "blue", Opacity: 1, Icon: "cloud.rain.fill"},
	Angry:         {Color: "red", Opacity: 1, Icon: "flame.fill"},
	Thinking:      {Color: "purple", Opacity: 1, Icon: "brain.head.profile"},
	Sexy:          {Color: "pink", Opacity: 1, Icon: "heart.fill"},
	Encouraging:   {Color: "green", Opacity: 1, Icon: "hands.sparkles.fill"},
	Gentle:        {Color: "mint", Opacity: 1, Icon: "leaf.fill"},
	Surprised:     {Color: "orange", Opacity: 1, Icon: "exclamationmark.triangle.fill"},
	Lonely:        {Color: "indigo", Opacity: 1, Icon: "person.fill.questionmark"},
	Focused:       {Color: "cyan", Opacity: 1, Icon: "scope"},
	Nostalgic:     {Color: "brown", Opacity: 1, Icon: "clock.arrow.circlepath"},
	Sleepy:        {Color: "teal", Opacity: 1, Icon: "moon.zzz.fill"},
	Poetic:        {Color: "purple", Opacity: 0.7, Icon: "sparkles"},
	Philosophical: {Color: "gray", Opacity: 0.6, Icon: "books.vertical.fill"},
	Childish:      {Color: "yellow", Opacity: 0.8, Icon: "face.smiling"},
	Elderly:       {Color: "gray", Opacity: 0.4, Icon: "person.crop.circle.badge.clock"},
	Robotic:       {Color: "blue", Opacity: 0.5, Icon: "cpu.fill"},
	Romantic:      {Color: "pink", Opacity: 0.7, Icon: "heart.circle.fill"},
	Playful:       {Color: "orange", Opacity: 0.7, Icon: "gamecontroller.fill"},
	Shy:           {Color: "purple", Opacity: 0.5, Icon: "eye.slash.fill"},
	Proud:         {Color: "red", Opacity: 0.6, Icon: "star.fill"},
	Confused:      {Color: "gray", Opacity: 0.3, Icon: "questionmark.circle.fill"},
}

// Appearance returns the presentation keys for k; unknown kinds render as neutral.
func (k Kind) Appearance() Appearance {
	if a, ok := appearances[k]; ok {
		return a
	}
	return appearances[Neutral]
}
