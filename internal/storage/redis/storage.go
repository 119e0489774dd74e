package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/qhuang/xiehouyu-arena/internal/model"
	"github.com/qhuang/xiehouyu-arena/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, gameKey(game.ID), data, s.cfg.GameTTL).Err()
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	data, err := s.client.Get(ctx, gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	return s.client.Del(ctx, gameKey(id)).Err()
}

// Riddle dataset operations

func (s *Storage) SaveRiddles(ctx context.Context, entries []model.RiddleEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	// The dataset outlives individual games: no TTL
	return s.client.Set(ctx, riddlesKey(), data, 0).Err()
}

func (s *Storage) GetRiddles(ctx context.Context) ([]model.RiddleEntry, error) {
	data, err := s.client.Get(ctx, riddlesKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRiddlesNotLoaded
		}
		return nil, err
	}

	var entries []model.RiddleEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
