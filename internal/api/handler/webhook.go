package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hotseat-games/millionaire/internal/api/request"
	"github.com/hotseat-games/millionaire/internal/api/response"
	"github.com/hotseat-games/millionaire/internal/model"
	"github.com/hotseat-games/millionaire/internal/services/audience"
	"github.com/hotseat-games/millionaire/internal/services/game"
)

// WebhookHandler handles inbound transport callbacks: SMS votes, delivery
// status and voice call answers
type WebhookHandler struct {
	gameController  *game.Controller
	audienceService *audience.Service
	fromNumber      string
	logger          *slog.Logger
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(
	gameController *game.Controller,
	audienceService *audience.Service,
	fromNumber string,
	logger *slog.Logger,
) *WebhookHandler {
	return &WebhookHandler{
		gameController:  gameController,
		audienceService: audienceService,
		fromNumber:      fromNumber,
		logger:          logger,
	}
}

// InboundMessage handles POST /inbound: an audience SMS vote.
// The transport delivers at-least-once; duplicates are dropped downstream.
// Always acknowledges so the provider does not retry forever.
func (h *WebhookHandler) InboundMessage(w http.ResponseWriter, r *http.Request) {
	var req request.InboundMessage
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	gameID, bound := h.audienceService.ActiveGame()
	if !bound {
		h.logger.Info("inbound message with no active game",
			slog.String("from", req.From),
		)
		response.JSON(w, http.StatusOK, response.Accepted{Status: "accepted"})
		return
	}

	g, err := h.gameController.GetGame(r.Context(), gameID)
	if err != nil {
		h.logger.Error("inbound message for unknown game",
			slog.String("game_id", string(gameID)),
			slog.String("error", err.Error()),
		)
		response.JSON(w, http.StatusOK, response.Accepted{Status: "accepted"})
		return
	}

	if _, err := h.audienceService.RecordResponse(r.Context(), g, req.Text, req.From); err != nil {
		if !errors.Is(err, model.ErrNoQuestions) {
			h.logger.Error("audience response failed",
				slog.String("game_id", string(gameID)),
				slog.String("error", err.Error()),
			)
		}
	}

	response.JSON(w, http.StatusOK, response.Accepted{Status: "accepted"})
}

// MessageStatus handles POST /status: delivery receipts, logged and dropped
func (h *WebhookHandler) MessageStatus(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Accepted{Status: "accepted"})
}

// VoiceAnswer handles POST /voice/answer: returns the call control object
// connecting the caller to the dialed participant
func (h *WebhookHandler) VoiceAnswer(w http.ResponseWriter, r *http.Request) {
	var req request.VoiceAnswer
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.To == "" {
		response.JSON(w, http.StatusOK, []response.NCCOAction{
			{Action: "talk", Text: "No destination user - hanging up"},
		})
		return
	}

	response.JSON(w, http.StatusOK, []response.NCCOAction{
		{Action: "talk", Text: "Please wait while we connect you"},
		{
			Action: "connect",
			From:   h.fromNumber,
			Endpoint: []response.NCCOEndpoint{
				{Type: "phone", Number: req.To},
			},
		},
	})
}

// VoiceEvent handles POST /voice/event and /voice/fallback
func (h *WebhookHandler) VoiceEvent(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
