package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/hotseat-games/millionaire/internal/api/request"
	"github.com/hotseat-games/millionaire/internal/api/response"
	"github.com/hotseat-games/millionaire/internal/model"
	"github.com/hotseat-games/millionaire/internal/services/audience"
	"github.com/hotseat-games/millionaire/internal/services/game"
	"github.com/hotseat-games/millionaire/internal/services/scoring"
)

// RPC method names accepted by the command endpoint
const (
	methodLoadGame   = "load_game"
	methodAsk        = "ask"
	methodAnswer     = "answer"
	methodPass       = "pass"
	methodFindPlayer = "find_player"
	methodLifeline   = "life_line"
	methodCallPlayer = "call_player"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	gameController  *game.Controller
	scoringService  *scoring.Service
	audienceService *audience.Service
}

// NewGameHandler creates a new game handler
func NewGameHandler(
	gameController *game.Controller,
	scoringService *scoring.Service,
	audienceService *audience.Service,
) *GameHandler {
	return &GameHandler{
		gameController:  gameController,
		scoringService:  scoringService,
		audienceService: audienceService,
	}
}

// Create handles POST /games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		WriteError(w, NewInvalidRequestError("title is required"))
		return
	}
	if len(req.Categories) == 0 {
		WriteError(w, NewInvalidRequestError("at least one category is required"))
		return
	}

	g, err := h.gameController.CreateGame(r.Context(), req.Title, req.Categories)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameFromModel(g, h.scoringService.PointScale()))
}

// List handles GET /games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.gameController.ListGames(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := make(map[string]response.Game, len(games))
	for _, g := range games {
		resp[string(g.ID)] = response.GameFromModel(g, h.scoringService.PointScale())
	}
	response.JSON(w, http.StatusOK, resp)
}

// Get handles GET /games/{game_id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	gameID := model.GameID(mux.Vars(r)["game_id"])

	g, err := h.gameController.GetGame(r.Context(), gameID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g, h.scoringService.PointScale()))
}

// Command handles PUT /games/{game_id}: the RPC command surface.
// Every command binds the inbound messaging channel to the targeted game
// and returns the full updated snapshot.
func (h *GameHandler) Command(w http.ResponseWriter, r *http.Request) {
	gameID := model.GameID(mux.Vars(r)["game_id"])

	var req request.RPCRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	h.audienceService.Bind(gameID)

	var g *model.Game
	var err error

	switch req.Method {
	case methodLoadGame:
		g, err = h.gameController.GetGame(r.Context(), gameID)
	case methodAsk:
		g, err = h.gameController.Ask(r.Context(), gameID)
	case methodAnswer:
		g, err = h.gameController.Answer(r.Context(), gameID, req.Parameters.Letter)
	case methodPass:
		g, err = h.gameController.Pass(r.Context(), gameID)
	case methodFindPlayer:
		g, err = h.gameController.FindPlayer(r.Context(), gameID)
	case methodLifeline:
		g, err = h.gameController.Lifeline(r.Context(), gameID, req.Parameters.Which)
	case methodCallPlayer:
		g, err = h.gameController.CallPlayer(r.Context(), gameID)
	default:
		WriteError(w, NewInvalidRequestError("unknown method: "+req.Method))
		return
	}
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RPCResponse{
		JSONRPC: "2.0",
		Result:  response.GameFromModel(g, h.scoringService.PointScale()),
		ID:      req.ID,
	})
}
