package redis

import (
	"fmt"

	"github.com/qhuang/xiehouyu-arena/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "xyarena"

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// riddlesKey returns the Redis key for the riddle dataset snapshot
func riddlesKey() string {
	return fmt.Sprintf("%s:riddles", keyPrefix)
}
