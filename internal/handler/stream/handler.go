package stream

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/zhouzirui/questme/backend/internal/service/journal"
	"github.com/zhouzirui/questme/backend/pkg/utils"
)

// defaultHeartbeat keeps idle proxies from closing the stream.
const defaultHeartbeat = 15 * time.Second

// Handler 通过 Server-Sent Events 推送会话的话题分类
type Handler struct {
	journal   *journal.Service
	heartbeat time.Duration
}

// New creates a new stream handler
func New(journalSvc *journal.Service) *Handler {
	return &Handler{journal: journalSvc, heartbeat: defaultHeartbeat}
}

// RegisterRoutes 注册流式路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/sessions/{sessionID}/topics/stream", h.handleTopicStream)
}

// handleTopicStream 先回放已有记录，再推送新追加的记录，直到客户端断开。
func (h *Handler) handleTopicStream(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	ctx := r.Context()

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	records, cancel, err := h.journal.Subscribe(ctx, sessionID)
	if err != nil {
		if errors.Is(err, journal.ErrSessionNotFound) {
			utils.RespondError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "subscribe failed")
		return
	}
	defer cancel()

	backlog, err := h.journal.Records(ctx, sessionID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to load records")
		return
	}

	utils.SetupSSEHeaders(w)
	w.WriteHeader(http.StatusOK)

	slog.Info("topic stream opened", "component", "stream", "session", sessionID, "backlog", len(backlog))

	seen := make(map[uuid.UUID]struct{}, len(backlog))
	for _, rec := range backlog {
		seen[rec.Entry.ID] = struct{}{}
		if err := utils.SendSSEEvent(w, flusher, "topic", rec); err != nil {
			return
		}
	}
	if err := utils.SendSSEEvent(w, flusher, "ready", map[string]int{"count": len(backlog)}); err != nil {
		return
	}

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("topic stream closed", "component", "stream", "session", sessionID)
			return
		case rec, ok := <-records:
			if !ok {
				return
			}
			if _, dup := seen[rec.Entry.ID]; dup {
				continue
			}
			if err := utils.SendSSEEvent(w, flusher, "topic", rec); err != nil {
				return
			}
		case t := <-ticker.C:
			if err := utils.SendSSEEvent(w, flusher, "heartbeat", map[string]string{"time": t.UTC().Format(time.RFC3339)}); err != nil {
				return
			}
		}
	}
}
