package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/qhuang/xiehouyu-arena/internal/api/handler"
	"github.com/qhuang/xiehouyu-arena/internal/api/middleware"
	"github.com/qhuang/xiehouyu-arena/internal/model"
	"github.com/qhuang/xiehouyu-arena/internal/services/game"
	"github.com/qhuang/xiehouyu-arena/internal/services/riddle"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController *game.Controller
	RiddleService  *riddle.Service
	DefaultGame    model.GameConfig
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.DefaultGame)
	riddleHandler := handler.NewRiddleHandler(cfg.RiddleService)

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger, middleware.DefaultPanicHandler)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Game routes
	api.HandleFunc("/games", gameHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}", gameHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}/start", gameHandler.Start).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/answers", gameHandler.Submit).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/continue", gameHandler.Continue).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/winner", gameHandler.Winner).Methods(http.MethodGet)

	// Riddle dataset routes
	api.HandleFunc("/riddles/random", riddleHandler.Random).Methods(http.MethodGet)
	api.HandleFunc("/riddles/search", riddleHandler.Search).Methods(http.MethodGet)
	api.HandleFunc("/riddles/lookup", riddleHandler.Lookup).Methods(http.MethodGet)
	api.HandleFunc("/riddles/stats", riddleHandler.Stats).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
