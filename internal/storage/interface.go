package storage

import (
	"context"

	"github.com/qhuang/xiehouyu-arena/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Game operations
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error

	// Riddle dataset operations
	SaveRiddles(ctx context.Context, entries []model.RiddleEntry) error
	GetRiddles(ctx context.Context) ([]model.RiddleEntry, error)
}
