package riddle

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/qhuang/xiehouyu-arena/internal/dependencies/random"
	"github.com/qhuang/xiehouyu-arena/internal/model"
	"github.com/qhuang/xiehouyu-arena/internal/storage"
)

// Service holds the riddle dataset and provides lookup, search, and random
// sampling over it. The dataset is loaded once at startup and treated as
// read-only afterwards.
type Service struct {
	storage storage.Storage
	random  random.Random
	logger  *slog.Logger

	mu             sync.RWMutex
	entries        []model.RiddleEntry
	riddleToAnswer map[string]string
	answerToRiddle map[string][]string
	loaded         bool
}

// New creates a new riddle Service
func New(store storage.Storage, rnd random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		random:  rnd,
		logger:  logger,
	}
}

// LoadFromFile loads the dataset from a JSON file of {riddle, answer} objects
// and persists a snapshot to storage.
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var entries []model.RiddleEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}

	if err := s.storage.SaveRiddles(ctx, entries); err != nil {
		return err
	}

	s.loadEntries(entries)

	s.logger.Info("riddle dataset loaded",
		slog.String("path", path),
		slog.Int("count", len(entries)),
	)
	return nil
}

// LoadFromStorage loads the dataset from a previously saved storage snapshot
func (s *Service) LoadFromStorage(ctx context.Context) error {
	entries, err := s.storage.GetRiddles(ctx)
	if err != nil {
		return err
	}
	s.loadEntries(entries)
	return nil
}

// LoadEntries directly loads a slice of entries (useful for testing)
func (s *Service) LoadEntries(entries []model.RiddleEntry) {
	s.loadEntries(entries)
}

func (s *Service) loadEntries(entries []model.RiddleEntry) {
	riddleToAnswer := make(map[string]string, len(entries))
	answerToRiddle := make(map[string][]string)
	for _, e := range entries {
		riddleToAnswer[e.Riddle] = e.Answer
		// Index every accepted variant, not just the canonical one
		for _, variant := range model.AnswerVariants(e.Answer) {
			answerToRiddle[variant] = append(answerToRiddle[variant], e.Riddle)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make([]model.RiddleEntry, len(entries))
	copy(s.entries, entries)
	s.riddleToAnswer = riddleToAnswer
	s.answerToRiddle = answerToRiddle
	s.loaded = true
}

// IsLoaded returns whether a dataset has been loaded
func (s *Service) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Count returns the number of entries in the dataset
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// All returns a read-only snapshot of the full dataset
func (s *Service) All() []model.RiddleEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]model.RiddleEntry, len(s.entries))
	copy(result, s.entries)
	return result
}

// Sample returns n entries drawn uniformly without replacement.
// If n exceeds the dataset size the whole dataset is returned (shuffled).
func (s *Service) Sample(n int) []model.RiddleEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n > len(s.entries) {
		n = len(s.entries)
	}
	if n <= 0 {
		return nil
	}

	idx := random.SampleIndexes(s.random, len(s.entries), n)
	result := make([]model.RiddleEntry, 0, n)
	for _, i := range idx {
		result = append(result, s.entries[i])
	}
	return result
}

// LookupByRiddle finds the answer for an exact riddle, if present
func (s *Service) LookupByRiddle(riddle string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	answer, ok := s.riddleToAnswer[riddle]
	return answer, ok
}

// LookupByAnswer finds all riddles whose answer (any variant) matches exactly
func (s *Service) LookupByAnswer(answer string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	riddles := s.answerToRiddle[strings.TrimSpace(answer)]
	result := make([]string, len(riddles))
	copy(result, riddles)
	return result
}

// SearchRiddles returns up to limit entries whose riddle contains the keyword
func (s *Service) SearchRiddles(keyword string, limit int) []model.RiddleEntry {
	return s.search(keyword, limit, func(e model.RiddleEntry) string { return e.Riddle })
}

// SearchAnswers returns up to limit entries whose answer contains the keyword
func (s *Service) SearchAnswers(keyword string, limit int) []model.RiddleEntry {
	return s.search(keyword, limit, func(e model.RiddleEntry) string { return e.Answer })
}

func (s *Service) search(keyword string, limit int, field func(model.RiddleEntry) string) []model.RiddleEntry {
	if keyword == "" || limit <= 0 {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []model.RiddleEntry
	for _, e := range s.entries {
		if strings.Contains(field(e), keyword) {
			results = append(results, e)
			if len(results) >= limit {
				break
			}
		}
	}
	return results
}

// Stats computes summary statistics over the loaded dataset.
// Lengths are counted in runes: the dataset is Chinese text.
func (s *Service) Stats() model.DatasetStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := model.DatasetStats{Total: len(s.entries)}
	if stats.Total == 0 {
		return stats
	}

	riddles := make(map[string]struct{}, len(s.entries))
	answers := make(map[string]struct{}, len(s.entries))
	var riddleLen, answerLen int
	for _, e := range s.entries {
		riddles[e.Riddle] = struct{}{}
		answers[e.Answer] = struct{}{}
		if strings.Contains(e.Answer, model.AnswerSeparator) {
			stats.MultiAnswer++
		}
		riddleLen += utf8.RuneCountInString(e.Riddle)
		answerLen += utf8.RuneCountInString(e.Answer)
	}

	stats.UniqueRiddles = len(riddles)
	stats.UniqueAnswers = len(answers)
	stats.AvgRiddleLength = float64(riddleLen) / float64(stats.Total)
	stats.AvgAnswerLength = float64(answerLen) / float64(stats.Total)
	return stats
}

// Interface for dependency injection
type ServiceInterface interface {
	LoadFromFile(ctx context.Context, path string) error
	LoadFromStorage(ctx context.Context) error
	LoadEntries(entries []model.RiddleEntry)
	IsLoaded() bool
	Count() int
	All() []model.RiddleEntry
	Sample(n int) []model.RiddleEntry
	LookupByRiddle(riddle string) (string, bool)
	LookupByAnswer(answer string) []string
	SearchRiddles(keyword string, limit int) []model.RiddleEntry
	SearchAnswers(keyword string, limit int) []model.RiddleEntry
	Stats() model.DatasetStats
}

var _ ServiceInterface = (*Service)(nil)
