package emotion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/questme/backend/configs"
)

func TestAllKindsHaveBaseLabels(t *testing.T) {
	kinds := All()
	require.Len(t, kinds, 23)

	seen := make(map[string]struct{})
	for _, k := range kinds {
		label := k.Label()
		assert.NotEmpty(t, label, "kind %s", k)
		seen[label] = struct{}{}
	}
	assert.Greater(t, len(seen), 1, "labels should not all be identical")
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "うれしい", Happy.Label())
	assert.Equal(t, "かなしい", Sad.Label())
	assert.Equal(t, "ふつう", Neutral.Label())
	assert.Equal(t, "おこってる", Angry.Label())
	assert.Equal(t, "mystery", Kind("mystery").Label())
}

func TestEmbeddedTranslationsCoverEveryKind(t *testing.T) {
	table, err := loadTranslations(configs.Emotions)
	require.NoError(t, err)

	for _, k := range All() {
		langs, ok := table[k]
		require.True(t, ok, "missing translations for %s", k)
		assert.Len(t, langs, 12, "kind %s", k)
		assert.Equal(t, k.Label(), langs[BaseLanguage], "kind %s", k)
	}
}

func TestLocalizedLabel(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		code string
		want string
	}{
		{name: "exact", kind: Happy, code: "en", want: "Happy"},
		{name: "region subtag stripped", kind: Happy, code: "en-US", want: "Happy"},
		{name: "upper case normalised", kind: Sad, code: "FR-ca", want: "Triste"},
		{name: "unknown language falls back to base", kind: Happy, code: "xx-ZZ", want: "うれしい"},
		{name: "empty code falls back to base", kind: Proud, code: "", want: "じしんまんまん"},
		{name: "leading separator", kind: Angry, code: "-de", want: "Wütend"},
		{name: "unknown kind falls back to raw key", kind: Kind("mystery"), code: "en", want: "mystery"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.LocalizedLabel(tt.code))
		})
	}
}

func TestLocalizedLabelIsTotal(t *testing.T) {
	codes := []string{"", "ja", "en", "zh-Hans-CN", "pt-BR", "xx", "--", "ar"}
	for _, k := range All() {
		for _, c := range codes {
			assert.NotEmpty(t, k.LocalizedLabel(c), "kind=%s code=%q", k, c)
		}
	}
}

func TestDefaultPhrase(t *testing.T) {
	assert.Equal(t, "嬉しい気持ちです！", Happy.DefaultPhrase())
	assert.Equal(t, "魅力的な気分です。", Sexy.DefaultPhrase())
	assert.Equal(t, fallbackPhrase, Poetic.DefaultPhrase())
	assert.Equal(t, fallbackPhrase, Kind("mystery").DefaultPhrase())
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind(" Happy ")
	require.True(t, ok)
	assert.Equal(t, Happy, k)

	_, ok = ParseKind("ecstatic")
	assert.False(t, ok)

	_, ok = ParseKind("")
	assert.False(t, ok)
}

func TestAppearance(t *testing.T) {
	assert.Equal(t, Appearance{Color: "yellow", Opacity: 1, Icon: "sun.max.fill"}, Happy.Appearance())
	assert.Equal(t, 0.7, Poetic.Appearance().Opacity)
	assert.Equal(t, Neutral.Appearance(), Kind("mystery").Appearance())
	for _, k := range All() {
		assert.NotEmpty(t, k.Appearance().Icon, "kind %s", k)
	}
}

func TestLoadTranslationsRejectsMalformedYAML(t *testing.T) {
	_, err := loadTranslations([]byte("emotions: [unterminated"))
	assert.Error(t, err)
}
