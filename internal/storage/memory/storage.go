package memory

import (
	"context"
	"sync"

	"github.com/qhuang/xiehouyu-arena/internal/model"
	"github.com/qhuang/xiehouyu-arena/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	games   map[model.GameID]*model.Game
	riddles []model.RiddleEntry
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		games: make(map[model.GameID]*model.Game),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = cloneGame(game)
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return cloneGame(game), nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	return nil
}

// cloneGame deep-copies a game so callers never share state with the store.
// Readers bypass the controller's per-game lock, so handing out the live
// pointer would let them observe a transition mid-flight.
func cloneGame(g *model.Game) *model.Game {
	c := *g

	c.Stats = make(map[model.PlayerSide]*model.PlayerStats, len(g.Stats))
	for side, stats := range g.Stats {
		sc := *stats
		sc.StreakBonuses = append([]int(nil), stats.StreakBonuses...)
		c.Stats[side] = &sc
	}

	c.Questions = cloneQuestions(g.Questions)

	c.Answers = make(map[model.PlayerSide]*int, len(g.Answers))
	for side, answer := range g.Answers {
		if answer == nil {
			c.Answers[side] = nil
			continue
		}
		a := *answer
		c.Answers[side] = &a
	}

	if g.FirstToAnswer != nil {
		side := *g.FirstToAnswer
		c.FirstToAnswer = &side
	}

	if g.RoundHistory != nil {
		c.RoundHistory = make([]model.RoundRecord, len(g.RoundHistory))
		for i, rec := range g.RoundHistory {
			r := rec
			r.Questions = cloneQuestions(rec.Questions)
			r.Answers = make(map[model.PlayerSide]int, len(rec.Answers))
			for side, answer := range rec.Answers {
				r.Answers[side] = answer
			}
			r.Scores = make(map[model.PlayerSide]int, len(rec.Scores))
			for side, score := range rec.Scores {
				r.Scores[side] = score
			}
			c.RoundHistory[i] = r
		}
	}

	return &c
}

func cloneQuestions(questions map[model.PlayerSide]*model.QuestionData) map[model.PlayerSide]*model.QuestionData {
	if questions == nil {
		return nil
	}
	out := make(map[model.PlayerSide]*model.QuestionData, len(questions))
	for side, q := range questions {
		if q == nil {
			out[side] = nil
			continue
		}
		qc := *q
		qc.Choices = append([]string(nil), q.Choices...)
		out[side] = &qc
	}
	return out
}

// Riddle dataset operations

func (s *Storage) SaveRiddles(ctx context.Context, entries []model.RiddleEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.riddles = make([]model.RiddleEntry, len(entries))
	copy(s.riddles, entries)
	return nil
}

func (s *Storage) GetRiddles(ctx context.Context) ([]model.RiddleEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.riddles == nil {
		return nil, model.ErrRiddlesNotLoaded
	}
	result := make([]model.RiddleEntry, len(s.riddles))
	copy(result, s.riddles)
	return result, nil
}
