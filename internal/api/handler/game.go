package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/qhuang/xiehouyu-arena/internal/api/apierr"
	"github.com/qhuang/xiehouyu-arena/internal/api/response"
	"github.com/qhuang/xiehouyu-arena/internal/model"
	"github.com/qhuang/xiehouyu-arena/internal/services/game"
)

// GameHandler handles game lifecycle endpoints
type GameHandler struct {
	controller *game.Controller
	defaultCfg model.GameConfig
}

// NewGameHandler creates a new game handler
func NewGameHandler(controller *game.Controller, defaultCfg model.GameConfig) *GameHandler {
	return &GameHandler{
		controller: controller,
		defaultCfg: defaultCfg,
	}
}

// createGameRequest allows per-game overrides of the default settings
type createGameRequest struct {
	TotalRounds    *int `json:"total_rounds,omitempty"`
	BasePoints     *int `json:"base_points,omitempty"`
	PriorityBonus  *int `json:"priority_bonus,omitempty"`
	MaxStreakBonus *int `json:"max_streak_bonus,omitempty"`
}

// submitAnswerRequest carries one side's choice for the current round
type submitAnswerRequest struct {
	Side   model.PlayerSide `json:"side"`
	Choice *int             `json:"choice"`
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	cfg := h.defaultCfg

	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid JSON body"))
		return
	}
	if req.TotalRounds != nil {
		cfg.TotalRounds = *req.TotalRounds
	}
	if req.BasePoints != nil {
		cfg.BasePoints = *req.BasePoints
	}
	if req.PriorityBonus != nil {
		cfg.PriorityBonus = *req.PriorityBonus
	}
	if req.MaxStreakBonus != nil {
		cfg.MaxStreakBonus = *req.MaxStreakBonus
	}

	g, err := h.controller.CreateGame(r.Context(), cfg)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameFromModel(g))
}

// Start handles POST /api/v1/games/{id}/start
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	g, err := h.controller.StartGame(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	g, err := h.controller.GetGame(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// Submit handles POST /api/v1/games/{id}/answers
func (h *GameHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	var req submitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid JSON body"))
		return
	}
	if req.Choice == nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("choice is required"))
		return
	}

	accepted, err := h.controller.SubmitAnswer(r.Context(), id, req.Side, *req.Choice)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	g, err := h.controller.GetGame(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SubmitResult{
		Accepted: accepted,
		Game:     response.GameFromModel(g),
	})
}

// Continue handles POST /api/v1/games/{id}/continue
func (h *GameHandler) Continue(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	accepted, err := h.controller.ContinueToNextRound(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	g, err := h.controller.GetGame(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ContinueResult{
		Accepted: accepted,
		Game:     response.GameFromModel(g),
	})
}

// Winner handles GET /api/v1/games/{id}/winner
func (h *GameHandler) Winner(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	winner, err := h.controller.Winner(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.WinnerView{
		Winner: winner,
		Tie:    winner == nil,
	})
}
