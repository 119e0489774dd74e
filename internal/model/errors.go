package model

import "errors"

// Common errors used across the application
var (
	// Game errors
	ErrGameNotFound    = errors.New("game not found")
	ErrGameNotFinished = errors.New("game is not finished")
	ErrInvalidConfig   = errors.New("invalid game configuration")

	// Precondition violations: these indicate a caller bug, not a gameplay
	// outcome, and are never swallowed
	ErrUnknownPlayerSide = errors.New("unknown player side")
	ErrChoiceOutOfRange  = errors.New("answer choice index out of range")

	// Question generation errors: fatal to the generation attempt, the
	// round must not start
	ErrEmptyPool        = errors.New("riddle pool is empty")
	ErrInsufficientData = errors.New("not enough distinct answers to build choices")

	// Dataset errors
	ErrRiddlesNotLoaded = errors.New("riddle dataset not loaded")
)
