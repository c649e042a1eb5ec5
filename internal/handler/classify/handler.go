package classify

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/questme/backend/internal/analysis/topic"
	"github.com/zhouzirui/questme/backend/internal/i18n"
	"github.com/zhouzirui/questme/backend/internal/model/conversation"
	"github.com/zhouzirui/questme/backend/internal/service/tagging"
	"github.com/zhouzirui/questme/backend/pkg/utils"
)

// maxBatch caps the number of entries accepted by one batch request.
const maxBatch = 256

// Handler 话题分类的HTTP处理器
type Handler struct {
	tagger        *tagging.Service
	defaultLocale i18n.Locale
}

// New 创建分类处理器
func New(tagger *tagging.Service, defaultLocale i18n.Locale) *Handler {
	if defaultLocale == "" {
		defaultLocale = i18n.DefaultLocale
	}
	return &Handler{tagger: tagger, defaultLocale: defaultLocale}
}

// RegisterRoutes 注册分类相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/classify", h.handleClassify)
	r.Post("/classify/batch", h.handleClassifyBatch)
}

// Response is a classification enriched with display labels.
type Response struct {
	topic.Result
	SubjectLabel string             `json:"subjectLabel"`
	EmotionLabel string             `json:"emotionLabel"`
	Entry        conversation.Entry `json:"entry"`
}

// NewResponse decorates outcome with labels in lang.
func NewResponse(outcome tagging.Outcome, lang string) Response {
	return Response{
		Result:       outcome.Result,
		SubjectLabel: outcome.Result.Subject.LocalizedLabel(string(i18n.ParseLocale(lang))),
		EmotionLabel: outcome.Result.DominantEmotion.LocalizedLabel(lang),
		Entry:        outcome.Entry,
	}
}

func (h *Handler) handleClassify(w http.ResponseWriter, r *http.Request) {
	var payload tagging.Request
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	outcome, err := h.tagger.Tag(r.Context(), payload)
	if err != nil {
		respondTaggingError(w, err)
		return
	}

	lang := i18n.RequestLanguage(r, string(h.defaultLocale))
	utils.RespondJSON(w, http.StatusOK, NewResponse(outcome, lang))
}

func (h *Handler) handleClassifyBatch(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Entries []tagging.Request `json:"entries"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(payload.Entries) > maxBatch {
		utils.RespondError(w, http.StatusBadRequest, "too many entries")
		return
	}

	outcomes, err := h.tagger.TagAll(r.Context(), payload.Entries)
	if err != nil {
		respondTaggingError(w, err)
		return
	}

	lang := i18n.RequestLanguage(r, string(h.defaultLocale))
	results := make([]Response, 0, len(outcomes))
	for _, o := range outcomes {
		results = append(results, NewResponse(o, lang))
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"results": results})
}

func respondTaggingError(w http.ResponseWriter, err error) {
	if errors.Is(err, tagging.ErrEmptyText) || errors.Is(err, tagging.ErrUnknownEmotion) {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	slog.Error("tagging failed", "component", "classify", "error", err)
	utils.RespondError(w, http.StatusInternalServerError, "classification failed")
}
