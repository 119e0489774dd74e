package scoring

import (
	"fmt"

	"github.com/qhuang/xiehouyu-arena/internal/model"
)

// Service computes the points earned for a single answer and formats the
// human-readable breakdowns shown to players. It is stateless: all numbers
// come from the per-game config.
type Service struct{}

// New creates a new scoring Service
func New() *Service {
	return &Service{}
}

// Score maps an answer outcome to points earned plus a breakdown string.
// A wrong answer earns nothing; a correct answer earns the base points, plus
// the priority bonus when this side was first to submit in the round.
func (s *Service) Score(cfg model.GameConfig, isCorrect, isFirstToAnswer bool) (int, string) {
	if !isCorrect {
		return 0, "wrong answer: no points"
	}

	if isFirstToAnswer {
		total := cfg.BasePoints + cfg.PriorityBonus
		return total, fmt.Sprintf("correct: %d base + %d priority bonus = %d points",
			cfg.BasePoints, cfg.PriorityBonus, total)
	}

	return cfg.BasePoints, fmt.Sprintf("correct: %d base points", cfg.BasePoints)
}

// StreakBonusDetails formats the breakdown for a banked streak bonus
func (s *Service) StreakBonusDetails(streak, bonus int) string {
	return fmt.Sprintf("streak of %d: +%d bonus", streak, bonus)
}

// Interface for dependency injection
type ServiceInterface interface {
	Score(cfg model.GameConfig, isCorrect, isFirstToAnswer bool) (int, string)
	StreakBonusDetails(streak, bonus int) string
}

var _ ServiceInterface = (*Service)(nil)
