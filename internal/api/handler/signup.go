package handler

import (
	"encoding/json"
	"net/http"

	"github.com/hotseat-games/millionaire/internal/api/request"
	"github.com/hotseat-games/millionaire/internal/api/response"
	"github.com/hotseat-games/millionaire/internal/model"
	"github.com/hotseat-games/millionaire/internal/services/directory"
	"github.com/hotseat-games/millionaire/internal/services/game"
	"github.com/hotseat-games/millionaire/internal/services/scoring"
)

// SignupHandler handles participant signups
type SignupHandler struct {
	directoryService *directory.Service
	gameController   *game.Controller
	scoringService   *scoring.Service
}

// NewSignupHandler creates a new signup handler
func NewSignupHandler(
	directoryService *directory.Service,
	gameController *game.Controller,
	scoringService *scoring.Service,
) *SignupHandler {
	return &SignupHandler{
		directoryService: directoryService,
		gameController:   gameController,
		scoringService:   scoringService,
	}
}

// Create handles POST /players: adds a signup and returns the game snapshot
func (h *SignupHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	gameID := model.GameID(req.Game)
	if gameID == "" {
		WriteError(w, NewInvalidRequestError("game is required"))
		return
	}

	if err := h.directoryService.AddSignup(r.Context(), gameID, req.Name, req.Number); err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.gameController.GetGame(r.Context(), gameID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g, h.scoringService.PointScale()))
}
