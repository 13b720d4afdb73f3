package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hotseat-games/millionaire/internal/api/handler"
	"github.com/hotseat-games/millionaire/internal/api/middleware"
	"github.com/hotseat-games/millionaire/internal/services/audience"
	"github.com/hotseat-games/millionaire/internal/services/directory"
	"github.com/hotseat-games/millionaire/internal/services/game"
	"github.com/hotseat-games/millionaire/internal/services/scoring"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger           *slog.Logger
	GameController   *game.Controller
	ScoringService   *scoring.Service
	AudienceService  *audience.Service
	DirectoryService *directory.Service
	VoiceFromNumber  string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.ScoringService, cfg.AudienceService)
	signupHandler := handler.NewSignupHandler(cfg.DirectoryService, cfg.GameController, cfg.ScoringService)
	webhookHandler := handler.NewWebhookHandler(cfg.GameController, cfg.AudienceService, cfg.VoiceFromNumber, cfg.Logger)

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	// Game routes
	r.HandleFunc("/games", gameHandler.Create).Methods(http.MethodPost)
	r.HandleFunc("/games", gameHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/games/{game_id}", gameHandler.Get).Methods(http.MethodGet)
	r.HandleFunc("/games/{game_id}", gameHandler.Command).Methods(http.MethodPut)

	// Participant signup
	r.HandleFunc("/players", signupHandler.Create).Methods(http.MethodPost)

	// Messaging webhooks; the provider may use any verb
	r.HandleFunc("/inbound", webhookHandler.InboundMessage)
	r.HandleFunc("/status", webhookHandler.MessageStatus)

	// Voice webhooks
	r.HandleFunc("/voice/answer", webhookHandler.VoiceAnswer)
	r.HandleFunc("/voice/event", webhookHandler.VoiceEvent)
	r.HandleFunc("/voice/fallback", webhookHandler.VoiceEvent)

	// Health check endpoint
	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
