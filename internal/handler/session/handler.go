package session

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/questme/backend/internal/model/companion"
	"github.com/zhouzirui/questme/backend/internal/service/journal"
	"github.com/zhouzirui/questme/backend/internal/service/tagging"
	"github.com/zhouzirui/questme/backend/pkg/utils"
)

// Handler 会话记录的HTTP处理器
type Handler struct {
	journal    *journal.Service
	tagger     *tagging.Service
	companions companion.Store
}

// New 创建会话处理器
func New(journalSvc *journal.Service, tagger *tagging.Service, companions companion.Store) *Handler {
	return &Handler{
		journal:    journalSvc,
		tagger:     tagger,
		companions: companions,
	}
}

// RegisterRoutes 注册会话相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/session", h.handleCreateSession)
	r.Get("/sessions/{sessionID}", h.handleGetSession)
	r.Post("/sessions/{sessionID}/entries", h.handleAppendEntry)
	r.Get("/sessions/{sessionID}/entries", h.handleTranscript)
	r.Get("/sessions/{sessionID}/topics", h.handleTopics)
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		CompanionID string `json:"companionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.CompanionID == "" {
		utils.RespondError(w, http.StatusBadRequest, "companionId is required")
		return
	}

	c, ok := h.companions.FindByID(payload.CompanionID)
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "companion not found")
		return
	}

	session, err := h.journal.CreateSession(r.Context(), c.ID)
	if err != nil {
		respondJournalError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]any{
		"session":        session,
		"openingLine":    c.OpeningLine,
		"defaultEmotion": c.DefaultEmotion(),
	})
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.journal.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondJournalError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, session)
}

// handleAppendEntry 未指定情绪的陪伴角色发言沿用角色风格对应的默认情绪。
func (h *Handler) handleAppendEntry(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var payload tagging.Request
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.journal.GetSession(r.Context(), sessionID)
	if err != nil {
		respondJournalError(w, err)
		return
	}
	if payload.Emotion == "" && payload.Speaker == session.CompanionID {
		if c, ok := h.companions.FindByID(session.CompanionID); ok {
			payload.Emotion = string(c.DefaultEmotion())
		}
	}

	outcome, err := h.tagger.Tag(r.Context(), payload)
	if err != nil {
		if errors.Is(err, tagging.ErrEmptyText) || errors.Is(err, tagging.ErrUnknownEmotion) {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("tagging failed", "component", "session", "session", sessionID, "error", err)
		utils.RespondError(w, http.StatusInternalServerError, "classification failed")
		return
	}

	record, err := h.journal.Append(r.Context(), sessionID, outcome.Entry)
	if err != nil {
		respondJournalError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, record)
}

func (h *Handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	entries, err := h.journal.Transcript(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondJournalError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, entries)
}

func (h *Handler) handleTopics(w http.ResponseWriter, r *http.Request) {
	results, err := h.journal.Topics(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondJournalError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, results)
}

func respondJournalError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, journal.ErrSessionNotFound):
		utils.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, journal.ErrCompanionRequired), errors.Is(err, journal.ErrEmptyText):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("journal operation failed", "component", "session", "error", err)
		utils.RespondError(w, http.StatusInternalServerError, "internal error")
	}
}
