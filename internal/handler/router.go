package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zhouzirui/questme/backend/internal/config"
	"github.com/zhouzirui/questme/backend/internal/handler/catalog"
	"github.com/zhouzirui/questme/backend/internal/handler/classify"
	"github.com/zhouzirui/questme/backend/internal/handler/live"
	"github.com/zhouzirui/questme/backend/internal/handler/session"
	"github.com/zhouzirui/questme/backend/internal/handler/stream"
	"github.com/zhouzirui/questme/backend/internal/i18n"
	middlewarePkg "github.com/zhouzirui/questme/backend/internal/middleware"
	"github.com/zhouzirui/questme/backend/internal/model/companion"
	"github.com/zhouzirui/questme/backend/internal/service/journal"
	"github.com/zhouzirui/questme/backend/internal/service/speech"
	"github.com/zhouzirui/questme/backend/internal/service/tagging"
	"github.com/zhouzirui/questme/backend/pkg/utils"
)

// Services bundles the collaborators the HTTP layer is wired to.
type Services struct {
	Companions    companion.Store
	Journal       *journal.Service
	Tagger        *tagging.Service
	Synthesizer   speech.Synthesizer
	DefaultLocale i18n.Locale
}

// NewRouter wires HTTP routes to core services.
func NewRouter(cors config.CORSConfig, svc Services) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(cors))

	catalogHandler := catalog.New(svc.Companions, svc.DefaultLocale)
	classifyHandler := classify.New(svc.Tagger, svc.DefaultLocale)
	sessionHandler := session.New(svc.Journal, svc.Tagger, svc.Companions)
	streamHandler := stream.New(svc.Journal)
	liveHandler := live.New(svc.Tagger, svc.Journal, svc.Companions, svc.Synthesizer, svc.DefaultLocale)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(api chi.Router) {
		catalogHandler.RegisterRoutes(api)
		classifyHandler.RegisterRoutes(api)
		sessionHandler.RegisterRoutes(api)
		streamHandler.RegisterRoutes(api)
		liveHandler.RegisterRoutes(api)
	})

	return r
}
