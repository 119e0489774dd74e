package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/qhuang/xiehouyu-arena/internal/model"
	redisstorage "github.com/qhuang/xiehouyu-arena/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// Config is the application configuration, loaded from YAML
type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"server"`
	Storage struct {
		Type  string `yaml:"type"`
		Redis struct {
			URL          string `yaml:"url"`
			PoolSize     int    `yaml:"pool_size"`
			MinIdleConns int    `yaml:"min_idle_conns"`
			GameTTL      string `yaml:"game_ttl"`
		} `yaml:"redis"`
	} `yaml:"storage"`
	Dataset struct {
		Path string `yaml:"path"`
	} `yaml:"dataset"`
	Game struct {
		TotalRounds      int         `yaml:"total_rounds"`
		BasePoints       int         `yaml:"base_points"`
		PriorityBonus    int         `yaml:"priority_bonus"`
		MaxStreakBonus   int         `yaml:"max_streak_bonus"`
		StreakBonusTable map[int]int `yaml:"streak_bonus_table"`
	} `yaml:"game"`
}

// Default returns the built-in configuration
func Default() Config {
	cfg := Config{}
	cfg.Server.Port = 8080
	cfg.Storage.Type = StorageTypeMemory
	cfg.Dataset.Path = "data/xiehouyu.json"

	game := model.DefaultGameConfig()
	cfg.Game.TotalRounds = game.TotalRounds
	cfg.Game.BasePoints = game.BasePoints
	cfg.Game.PriorityBonus = game.PriorityBonus
	cfg.Game.MaxStreakBonus = game.MaxStreakBonus
	cfg.Game.StreakBonusTable = game.StreakBonusTable
	return cfg
}

// Load reads YAML config from path, overlaying the defaults
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// GameConfig converts the game section to the model's config
func (c Config) GameConfig() model.GameConfig {
	table := c.Game.StreakBonusTable
	if table == nil {
		table = model.DefaultGameConfig().StreakBonusTable
	}
	return model.GameConfig{
		TotalRounds:      c.Game.TotalRounds,
		BasePoints:       c.Game.BasePoints,
		PriorityBonus:    c.Game.PriorityBonus,
		StreakBonusTable: table,
		MaxStreakBonus:   c.Game.MaxStreakBonus,
	}
}

// RedisConfig converts the redis section to the storage backend's config
func (c Config) RedisConfig() redisstorage.Config {
	rc := redisstorage.DefaultConfig()
	if c.Storage.Redis.URL != "" {
		rc.URL = c.Storage.Redis.URL
	}
	if c.Storage.Redis.PoolSize > 0 {
		rc.PoolSize = c.Storage.Redis.PoolSize
	}
	if c.Storage.Redis.MinIdleConns > 0 {
		rc.MinIdleConns = c.Storage.Redis.MinIdleConns
	}
	rc.GameTTL = parseDuration(c.Storage.Redis.GameTTL, rc.GameTTL)
	return rc
}

// parseDuration parses a duration string or returns the fallback if empty
// or invalid
func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
