package live

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/zhouzirui/questme/backend/internal/handler/classify"
	"github.com/zhouzirui/questme/backend/internal/i18n"
	"github.com/zhouzirui/questme/backend/internal/model/companion"
	"github.com/zhouzirui/questme/backend/internal/model/emotion"
	"github.com/zhouzirui/questme/backend/internal/model/voice"
	"github.com/zhouzirui/questme/backend/internal/service/journal"
	"github.com/zhouzirui/questme/backend/internal/service/speech"
	"github.com/zhouzirui/questme/backend/internal/service/tagging"
)

const (
	readTimeout  = 60 * time.Second
	pingInterval = 54 * time.Second
	writeTimeout = 10 * time.Second
)

// Handler 实时标注与语音预览的WebSocket处理器
type Handler struct {
	tagger        *tagging.Service
	journal       *journal.Service
	companions    companion.Store
	synth         speech.Synthesizer
	defaultLocale i18n.Locale
	upgrader      websocket.Upgrader
}

// New 创建WebSocket处理器。journalSvc 为 nil 时不记录会话。
func New(tagger *tagging.Service, journalSvc *journal.Service, companions companion.Store, synth speech.Synthesizer, defaultLocale i18n.Locale) *Handler {
	if defaultLocale == "" {
		defaultLocale = i18n.DefaultLocale
	}
	return &Handler{
		tagger:        tagger,
		journal:       journalSvc,
		companions:    companions,
		synth:         synth,
		defaultLocale: defaultLocale,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册WebSocket路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/live/ws", h.handleWebSocket)
}

type inboundMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ConfigMessage 配置消息
type ConfigMessage struct {
	CompanionID string            `json:"companionId"`
	Language    string            `json:"language"`
	Adjustment  *voice.Adjustment `json:"adjustment,omitempty"`
}

// SpeakMessage 朗读消息
type SpeakMessage struct {
	Text    string `json:"text"`
	Emotion string `json:"emotion"`
}

type outgoingMessage struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId,omitempty"`
	Data      any    `json:"data,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

type connectionState struct {
	sessionID  string
	companion  *companion.Companion
	language   string
	adjustment voice.Adjustment
	tracker    *speech.Tracker
	current    speech.Handle
}

func newConnectionState(sessionID string, c *companion.Companion, language string) *connectionState {
	return &connectionState{
		sessionID:  sessionID,
		companion:  c,
		language:   language,
		adjustment: voice.DefaultAdjustment(),
		tracker:    speech.NewTracker(nil),
	}
}

// conn serialises writes; gorilla connections allow one concurrent writer.
type conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *conn) send(msgType, sessionID string, data any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	msg := outgoingMessage{
		Type:      msgType,
		SessionID: sessionID,
		Data:      data,
		Timestamp: time.Now().Unix(),
	}
	if err := c.ws.WriteJSON(msg); err != nil {
		slog.Debug("websocket write failed", "component", "live", "type", msgType, "error", err)
	}
}

func (c *conn) sendError(message string) {
	c.send("error", "", map[string]string{"message": message})
}

// handleWebSocket 处理WebSocket连接。可选的 sessionId 参数会把标注结果写入会话记录。
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")

	var active *companion.Companion
	if sessionID != "" {
		if h.journal == nil {
			http.Error(w, "journal unavailable", http.StatusServiceUnavailable)
			return
		}
		session, err := h.journal.GetSession(r.Context(), sessionID)
		if err != nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		if c, ok := h.companions.FindByID(session.CompanionID); ok {
			active = &c
		}
	}
	if active == nil {
		if items := h.companions.List(); len(items) > 0 {
			active = &items[0]
		}
	}
	if active == nil {
		http.Error(w, "no companion available", http.StatusServiceUnavailable)
		return
	}

	state := newConnectionState(sessionID, active, string(h.defaultLocale))

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "component", "live", "error", err)
		return
	}
	defer ws.Close()
	c := &conn{ws: ws}

	slog.Info("websocket connected", "component", "live", "session", sessionID, "companion", active.ID)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	defer func() {
		if state.current != nil {
			state.current.Stop()
		}
	}()

	_ = ws.SetReadDeadline(time.Now().Add(readTimeout))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(readTimeout))
	})

	go pingLoop(ctx, ws)

	c.send("connected", sessionID, map[string]any{
		"companion": active.ID,
		"language":  state.language,
	})

	for {
		var msg inboundMessage
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("websocket read failed", "component", "live", "error", err)
			}
			return
		}
		_ = ws.SetReadDeadline(time.Now().Add(readTimeout))

		h.handleMessage(ctx, c, state, &msg)
	}
}

func (h *Handler) handleMessage(ctx context.Context, c *conn, state *connectionState, msg *inboundMessage) {
	switch msg.Type {
	case "entry":
		h.handleEntry(ctx, c, state, msg.Data)
	case "config":
		h.handleConfig(c, state, msg.Data)
	case "speak":
		h.handleSpeak(ctx, c, state, msg.Data)
	case "stop":
		if state.current != nil {
			state.current.Stop()
		}
	case "state":
		c.send("state", state.sessionID, state.tracker.Snapshot())
	default:
		c.sendError("unsupported message type: " + msg.Type)
	}
}

func (h *Handler) handleEntry(ctx context.Context, c *conn, state *connectionState, raw json.RawMessage) {
	var req tagging.Request
	if err := json.Unmarshal(raw, &req); err != nil {
		c.sendError("invalid entry payload")
		return
	}

	outcome, err := h.tagger.Tag(ctx, req)
	if err != nil {
		if errors.Is(err, tagging.ErrEmptyText) || errors.Is(err, tagging.ErrUnknownEmotion) {
			c.sendError(err.Error())
			return
		}
		slog.Error("tagging failed", "component", "live", "error", err)
		c.sendError("classification failed")
		return
	}

	if state.sessionID != "" {
		if _, err := h.journal.Append(ctx, state.sessionID, outcome.Entry); err != nil {
			slog.Warn("journal append failed", "component", "live", "session", state.sessionID, "error", err)
		}
	}

	c.send("result", state.sessionID, classify.NewResponse(outcome, state.language))
}

func (h *Handler) handleConfig(c *conn, state *connectionState, raw json.RawMessage) {
	var cfg ConfigMessage
	if err := json.Unmarshal(raw, &cfg); err != nil {
		c.sendError("invalid config payload")
		return
	}

	h.applyConfig(state, cfg)

	c.send("config", state.sessionID, map[string]any{
		"companion":  state.companion.ID,
		"language":   state.language,
		"adjustment": state.adjustment,
		"voice":      state.companion.Voice,
	})
}

func (h *Handler) applyConfig(state *connectionState, cfg ConfigMessage) {
	if cfg.Language != "" {
		state.language = cfg.Language
	}
	if cfg.CompanionID != "" && cfg.CompanionID != state.companion.ID {
		if c, ok := h.companions.FindByID(cfg.CompanionID); ok {
			state.companion = &c
		}
	}
	if cfg.Adjustment != nil {
		state.adjustment = cfg.Adjustment.Clamp()
	}
}

func (h *Handler) handleSpeak(ctx context.Context, c *conn, state *connectionState, raw json.RawMessage) {
	if h.synth == nil {
		c.sendError("speech unavailable")
		return
	}

	var msg SpeakMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("invalid speak payload")
		return
	}

	u := speech.NewUtterance(msg.Text, state.companion.Voice, state.adjustment)
	u.Emotion = state.companion.DefaultEmotion()
	if msg.Emotion != "" {
		kind, ok := emotion.ParseKind(msg.Emotion)
		if !ok {
			c.sendError("unknown emotion: " + msg.Emotion)
			return
		}
		u.Emotion = kind
	}

	if state.current != nil {
		state.current.Stop()
		<-state.current.Done()
	}

	obs := &frameObserver{tracker: state.tracker, conn: c, sessionID: state.sessionID, text: []rune(u.Text)}
	handle, err := h.synth.Speak(ctx, u, obs)
	if err != nil {
		if errors.Is(err, speech.ErrVoiceUnavailable) || errors.Is(err, speech.ErrEmptyText) {
			c.sendError(err.Error())
			return
		}
		slog.Error("speech failed", "component", "live", "error", err)
		c.sendError("speech failed")
		return
	}
	state.current = handle
}

// frameObserver relays synthesizer progress to the tracker and the client.
type frameObserver struct {
	tracker   *speech.Tracker
	conn      *conn
	sessionID string
	text      []rune
}

func (o *frameObserver) OnStart() {
	o.tracker.OnStart()
	o.conn.send("speech_start", o.sessionID, map[string]any{"length": len(o.text)})
}

func (o *frameObserver) OnProgress(r speech.Range) {
	o.tracker.OnProgress(r)
	segment := ""
	if r.Location >= 0 && r.End() <= len(o.text) {
		segment = string(o.text[r.Location:r.End()])
	}
	o.conn.send("speech_progress", o.sessionID, map[string]any{
		"range": r,
		"text":  segment,
	})
}

func (o *frameObserver) OnFinish() {
	o.tracker.OnFinish()
	o.conn.send("speech_finish", o.sessionID, nil)
}

func pingLoop(ctx context.Context, ws *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				return
			}
		}
	}
}
