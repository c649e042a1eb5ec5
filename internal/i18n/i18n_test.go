package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	assert.Equal(t, "🧍‍♂️ コンパニオン生成", Text("title", JA))
	assert.Equal(t, "🧍‍♂️ Companion Creation", Text("title", EN))
	assert.Equal(t, "選択された声色: ", Text("voiceSelected", JA))
	assert.Equal(t, "Selected Voice: ", Text("voiceSelected", EN))
}

func TestTextFallsBackToKey(t *testing.T) {
	for _, loc := range []Locale{JA, EN, Locale("fr"), Locale("")} {
		assert.Equal(t, "unknownKey", Text("unknownKey", loc))
	}
	assert.Equal(t, "title", Text("title", Locale("fr")))
}

func TestEveryKeyHasBothLocales(t *testing.T) {
	keys := Keys()
	require.NotEmpty(t, keys)
	for _, k := range keys {
		assert.NotEqual(t, k, Text(k, JA), "missing ja for %s", k)
		assert.NotEqual(t, k, Text(k, EN), "missing en for %s", k)
	}
}

func TestAll(t *testing.T) {
	all := All(EN)
	assert.Equal(t, "Back", all["back"])
	assert.Len(t, all, len(Keys()))
}

func TestParseLocale(t *testing.T) {
	assert.Equal(t, EN, ParseLocale("en-GB"))
	assert.Equal(t, EN, ParseLocale(" EN "))
	assert.Equal(t, JA, ParseLocale("ja-JP"))
	assert.Equal(t, JA, ParseLocale("fr"))
	assert.Equal(t, JA, ParseLocale(""))
}

func TestFromAcceptLanguage(t *testing.T) {
	assert.Equal(t, "en-US", FromAcceptLanguage("en-US,en;q=0.9,ja;q=0.8"))
	assert.Equal(t, "ja", FromAcceptLanguage("fr;q=0.5, ja"))
	assert.Equal(t, "", FromAcceptLanguage(""))
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	_, err := load([]byte("strings: {title"))
	assert.Error(t, err)
}

func TestRequestLanguage(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		header string
		want   string
	}{
		{"query wins", "/api/emotions?lang=fr", "de-DE", "fr"},
		{"header", "/api/emotions", "de-DE,de;q=0.9,en;q=0.5", "de-DE"},
		{"malformed header", "/api/emotions", ";;;", "ja"},
		{"fallback", "/api/emotions", "", "ja"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			if tt.header != "" {
				req.Header.Set("Accept-Language", tt.header)
			}
			assert.Equal(t, tt.want, RequestLanguage(req, "ja"))
		})
	}
}
