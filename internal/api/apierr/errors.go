package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/qhuang/xiehouyu-arena/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeGameNotFound     = "GAME_NOT_FOUND"
	CodeGameNotFinished  = "GAME_NOT_FINISHED"
	CodeInvalidConfig    = "INVALID_CONFIG"
	CodeUnknownSide      = "UNKNOWN_SIDE"
	CodeChoiceOutOfRange = "CHOICE_OUT_OF_RANGE"
	CodeDatasetEmpty     = "DATASET_EMPTY"
	CodeDatasetTooSmall  = "DATASET_TOO_SMALL"
	CodeDatasetNotLoaded = "DATASET_NOT_LOADED"
	CodeInternalError    = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrGameNotFinished):
		return &httpError{http.StatusConflict, APIError{CodeGameNotFinished, "Game is not finished"}}
	case errors.Is(err, model.ErrInvalidConfig):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidConfig, "Invalid game configuration"}}
	case errors.Is(err, model.ErrUnknownPlayerSide):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownSide, "Side must be left or right"}}
	case errors.Is(err, model.ErrChoiceOutOfRange):
		return &httpError{http.StatusBadRequest, APIError{CodeChoiceOutOfRange, "Choice index must be 0-3"}}
	case errors.Is(err, model.ErrEmptyPool):
		return &httpError{http.StatusConflict, APIError{CodeDatasetEmpty, "Riddle dataset is empty"}}
	case errors.Is(err, model.ErrInsufficientData):
		return &httpError{http.StatusConflict, APIError{CodeDatasetTooSmall, "Not enough distinct answers to build a question"}}
	case errors.Is(err, model.ErrRiddlesNotLoaded):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeDatasetNotLoaded, "Riddle dataset not loaded"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}
