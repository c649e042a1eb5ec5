package catalog

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/questme/backend/internal/i18n"
	"github.com/zhouzirui/questme/backend/internal/model/companion"
	"github.com/zhouzirui/questme/backend/internal/model/emotion"
	"github.com/zhouzirui/questme/backend/internal/model/subject"
	"github.com/zhouzirui/questme/backend/internal/model/voice"
	"github.com/zhouzirui/questme/backend/pkg/utils"
)

// Handler 目录数据的HTTP处理器：情绪、话题、陪伴角色与界面文案。
type Handler struct {
	companions    companion.Store
	defaultLocale i18n.Locale
}

// New 创建目录处理器
func New(companions companion.Store, defaultLocale i18n.Locale) *Handler {
	if defaultLocale == "" {
		defaultLocale = i18n.DefaultLocale
	}
	return &Handler{
		companions:    companions,
		defaultLocale: defaultLocale,
	}
}

// RegisterRoutes 注册目录相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/emotions", h.handleListEmotions)
	r.Get("/subjects", h.handleListSubjects)
	r.Get("/companions", h.handleListCompanions)
	r.Get("/voices", h.handleListVoices)
	r.Get("/strings", h.handleStrings)
}

type emotionView struct {
	Kind           emotion.Kind       `json:"kind"`
	Label          string             `json:"label"`
	LocalizedLabel string             `json:"localizedLabel"`
	Phrase         string             `json:"phrase"`
	Appearance     emotion.Appearance `json:"appearance"`
}

type subjectView struct {
	Label          string `json:"label"`
	LocalizedLabel string `json:"localizedLabel"`
}

type option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type voicesView struct {
	Styles []option `json:"styles"`
	Tones  []option `json:"tones"`
	Speeds []option `json:"speeds"`
}

func (h *Handler) handleListEmotions(w http.ResponseWriter, r *http.Request) {
	lang := i18n.RequestLanguage(r, string(h.defaultLocale))

	kinds := emotion.All()
	views := make([]emotionView, 0, len(kinds))
	for _, k := range kinds {
		views = append(views, emotionView{
			Kind:           k,
			Label:          k.Label(),
			LocalizedLabel: k.LocalizedLabel(lang),
			Phrase:         k.DefaultPhrase(),
			Appearance:     k.Appearance(),
		})
	}
	utils.RespondJSON(w, http.StatusOK, views)
}

// handleListSubjects 话题标签只有 ja/en 两种写法，这里按主语言子标签取值。
func (h *Handler) handleListSubjects(w http.ResponseWriter, r *http.Request) {
	locale := string(i18n.ParseLocale(i18n.RequestLanguage(r, string(h.defaultLocale))))

	catalog := subject.Catalog()
	views := make([]subjectView, 0, len(catalog))
	for _, s := range catalog {
		views = append(views, subjectView{
			Label:          s.Label,
			LocalizedLabel: s.LocalizedLabel(locale),
		})
	}
	utils.RespondJSON(w, http.StatusOK, views)
}

func (h *Handler) handleListCompanions(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.companions.List())
}

func (h *Handler) handleListVoices(w http.ResponseWriter, _ *http.Request) {
	var view voicesView
	for _, s := range voice.Styles() {
		view.Styles = append(view.Styles, option{Value: string(s), Label: s.Label()})
	}
	for _, t := range voice.Tones() {
		view.Tones = append(view.Tones, option{Value: string(t), Label: t.Label()})
	}
	for _, s := range voice.Speeds() {
		view.Speeds = append(view.Speeds, option{Value: string(s), Label: s.Label()})
	}
	utils.RespondJSON(w, http.StatusOK, view)
}

func (h *Handler) handleStrings(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("locale"))
	if raw == "" {
		raw = i18n.RequestLanguage(r, string(h.defaultLocale))
	}
	locale := i18n.ParseLocale(raw)

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"locale":  locale,
		"strings": i18n.All(locale),
	})
}
