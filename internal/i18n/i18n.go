// Package i18n provides the localized UI resource strings.
package i18n

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/zhouzirui/questme/backend/configs"
)

// Locale selects a translation.
type Locale string

const (
	JA Locale = "ja"
	EN Locale = "en"
)

// DefaultLocale is the app's base locale.
const DefaultLocale = JA

// table maps key -> locale -> text.
var table = mustLoad(configs.Strings)

type stringsFile struct {
	Strings map[string]map[Locale]string `yaml:"strings"`
}

func load(data []byte) (map[string]map[Locale]string, error) {
	var file stringsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ui strings: %w", err)
	}
	if file.Strings == nil {
		return map[string]map[Locale]string{}, nil
	}
	return file.Strings, nil
}

func mustLoad(data []byte) map[string]map[Locale]string {
	t, err := load(data)
	if err != nil {
		panic(err)
	}
	return t
}

// Text returns the string for (key, locale). Unknown pairs return key itself.
func Text(key string, locale Locale) string {
	if s, ok := table[key][locale]; ok {
		return s
	}
	return key
}

// Keys lists every known resource key, sorted.
func Keys() []string {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// All returns every resource string for locale.
func All(locale Locale) map[string]string {
	out := make(map[string]string, len(table))
	for k := range table {
		out[k] = Text(k, locale)
	}
	return out
}

// ParseLocale maps a language tag such as "en-GB" to a supported locale.
// Anything unsupported resolves to DefaultLocale.
func ParseLocale(raw string) Locale {
	primary, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(raw)), "-")
	switch Locale(primary) {
	case JA:
		return JA
	case EN:
		return EN
	default:
		return DefaultLocale
	}
}

// FromAcceptLanguage returns the highest-priority language tag of an HTTP
// Accept-Language header, or "" when the header is empty or malformed.
func FromAcceptLanguage(header string) string {
	if strings.TrimSpace(header) == "" {
		return ""
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return ""
	}
	return tags[0].String()
}

// RequestLanguage picks the language code for a request: the "lang" query
// parameter first, then the Accept-Language header, then fallback.
func RequestLanguage(r *http.Request, fallback string) string {
	if lang := strings.TrimSpace(r.URL.Query().Get("lang")); lang != "" {
		return lang
	}
	if lang := FromAcceptLanguage(r.Header.Get("Accept-Language")); lang != "" {
		return lang
	}
	return fallback
}
