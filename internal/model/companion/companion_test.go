package companion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/questme/backend/internal/model/emotion"
)

func TestStyleDefaultEmotion(t *testing.T) {
	styles := Styles()
	require.Len(t, styles, 12)

	for _, s := range styles {
		k := s.DefaultEmotion()
		assert.True(t, k.Valid(), "style %s", s)
		assert.Equal(t, string(s), string(k), "style and emotion share a key")
	}
	assert.Equal(t, emotion.Neutral, Style("stoic").DefaultEmotion())
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore(Seed(""))

	items := store.List()
	require.NotEmpty(t, items)

	got, ok := store.FindByID("shizuku")
	require.True(t, ok)
	assert.Equal(t, emotion.Gentle, got.DefaultEmotion())
	assert.Equal(t, "ja-JP", got.Voice.SpeechCode)

	_, ok = store.FindByID("missing")
	assert.False(t, ok)
}

func TestMemoryStoreListIsCopied(t *testing.T) {
	store := NewMemoryStore(Seed(""))
	items := store.List()
	items[0].Name = "changed"

	assert.NotEqual(t, "changed", store.List()[0].Name)
}

func TestSeedIDsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range Seed("") {
		assert.False(t, seen[c.ID], "duplicate id %s", c.ID)
		seen[c.ID] = true
	}
}

func TestSeedSpeechCode(t *testing.T) {
	for _, c := range Seed("zh-CN") {
		if c.ID == "nova" {
			assert.Equal(t, "en-US", c.Voice.SpeechCode)
			continue
		}
		assert.Equal(t, "zh-CN", c.Voice.SpeechCode, c.ID)
	}

	for _, c := range Seed("  ") {
		assert.NotEmpty(t, c.Voice.SpeechCode, c.ID)
	}
}
