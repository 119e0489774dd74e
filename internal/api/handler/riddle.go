package handler

import (
	"net/http"
	"strconv"

	"github.com/qhuang/xiehouyu-arena/internal/api/apierr"
	"github.com/qhuang/xiehouyu-arena/internal/api/response"
	"github.com/qhuang/xiehouyu-arena/internal/model"
	"github.com/qhuang/xiehouyu-arena/internal/services/riddle"
)

// Query limits for the riddle endpoints
const (
	defaultSearchLimit = 10
	maxSearchLimit     = 100
	defaultRandomCount = 1
	maxRandomCount     = 50
)

// RiddleHandler handles dataset lookup and search endpoints
type RiddleHandler struct {
	riddles *riddle.Service
}

// NewRiddleHandler creates a new riddle handler
func NewRiddleHandler(riddles *riddle.Service) *RiddleHandler {
	return &RiddleHandler{riddles: riddles}
}

// lookupResponse is the result of an exact riddle or answer lookup
type lookupResponse struct {
	Riddle  string   `json:"riddle,omitempty"`
	Answer  string   `json:"answer,omitempty"`
	Riddles []string `json:"riddles,omitempty"`
}

// Random handles GET /api/v1/riddles/random?count=N
func (h *RiddleHandler) Random(w http.ResponseWriter, r *http.Request) {
	if !h.riddles.IsLoaded() {
		apierr.WriteError(w, model.ErrRiddlesNotLoaded)
		return
	}

	count := queryInt(r, "count", defaultRandomCount)
	if count < 1 || count > maxRandomCount {
		apierr.WriteError(w, apierr.NewInvalidRequestError("count must be between 1 and 50"))
		return
	}

	response.JSON(w, http.StatusOK, h.riddles.Sample(count))
}

// Search handles GET /api/v1/riddles/search?q=...&field=riddle|answer&limit=N
func (h *RiddleHandler) Search(w http.ResponseWriter, r *http.Request) {
	if !h.riddles.IsLoaded() {
		apierr.WriteError(w, model.ErrRiddlesNotLoaded)
		return
	}

	keyword := r.URL.Query().Get("q")
	if keyword == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("q is required"))
		return
	}

	limit := queryInt(r, "limit", defaultSearchLimit)
	if limit < 1 || limit > maxSearchLimit {
		apierr.WriteError(w, apierr.NewInvalidRequestError("limit must be between 1 and 100"))
		return
	}

	var results []model.RiddleEntry
	switch field := r.URL.Query().Get("field"); field {
	case "", "riddle":
		results = h.riddles.SearchRiddles(keyword, limit)
	case "answer":
		results = h.riddles.SearchAnswers(keyword, limit)
	default:
		apierr.WriteError(w, apierr.NewInvalidRequestError("field must be riddle or answer"))
		return
	}

	if results == nil {
		results = []model.RiddleEntry{}
	}
	response.JSON(w, http.StatusOK, results)
}

// Lookup handles GET /api/v1/riddles/lookup?riddle=... or ?answer=...
func (h *RiddleHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	if !h.riddles.IsLoaded() {
		apierr.WriteError(w, model.ErrRiddlesNotLoaded)
		return
	}

	query := r.URL.Query()
	if riddleText := query.Get("riddle"); riddleText != "" {
		answer, ok := h.riddles.LookupByRiddle(riddleText)
		if !ok {
			apierr.WriteError(w, apierr.NewInvalidRequestError("riddle not found"))
			return
		}
		response.JSON(w, http.StatusOK, lookupResponse{Riddle: riddleText, Answer: answer})
		return
	}

	if answerText := query.Get("answer"); answerText != "" {
		riddles := h.riddles.LookupByAnswer(answerText)
		response.JSON(w, http.StatusOK, lookupResponse{Answer: answerText, Riddles: riddles})
		return
	}

	apierr.WriteError(w, apierr.NewInvalidRequestError("riddle or answer parameter is required"))
}

// Stats handles GET /api/v1/riddles/stats
func (h *RiddleHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if !h.riddles.IsLoaded() {
		apierr.WriteError(w, model.ErrRiddlesNotLoaded)
		return
	}

	response.JSON(w, http.StatusOK, h.riddles.Stats())
}

// queryInt parses an integer query parameter, falling back on a default
func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return value
}
