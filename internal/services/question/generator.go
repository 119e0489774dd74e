package question

import (
	"unicode/utf8"

	"github.com/qhuang/xiehouyu-arena/internal/dependencies/random"
	"github.com/qhuang/xiehouyu-arena/internal/model"
)

// distractorCount is how many incorrect choices accompany the correct answer
const distractorCount = model.ChoiceCount - 1

// lengthWindow is the maximum character-length difference for a distractor to
// count as "similar" to the correct answer
const lengthWindow = 2

// Generator builds 4-choice questions from a riddle pool
type Generator struct {
	random random.Random
}

// New creates a new question Generator
func New(rnd random.Random) *Generator {
	return &Generator{random: rnd}
}

// Generate picks one riddle uniformly at random from the pool and builds a
// question around it: the canonical answer plus three distractors sampled
// from the other answers, shuffled.
func (g *Generator) Generate(pool []model.RiddleEntry) (*model.QuestionData, error) {
	if len(pool) == 0 {
		return nil, model.ErrEmptyPool
	}

	selected := pool[g.random.Intn(len(pool))]
	correct := selected.CanonicalAnswer()

	distractors, err := g.pickDistractors(pool, correct)
	if err != nil {
		return nil, err
	}

	choices := make([]string, 0, model.ChoiceCount)
	choices = append(choices, correct)
	choices = append(choices, distractors...)

	correctIndex := 0
	random.Shuffle(g.random, len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
		switch correctIndex {
		case i:
			correctIndex = j
		case j:
			correctIndex = i
		}
	})

	return &model.QuestionData{
		Riddle:          selected.Riddle,
		CorrectAnswer:   correct,
		Choices:         choices,
		CorrectIndex:    correctIndex,
		DifficultyLevel: difficulty(correct),
	}, nil
}

// pickDistractors samples three incorrect answers. Answers within lengthWindow
// characters of the correct answer are preferred; if fewer than three such
// candidates exist, the full excluded pool is used instead.
func (g *Generator) pickDistractors(pool []model.RiddleEntry, correct string) ([]string, error) {
	correctLen := utf8.RuneCountInString(correct)

	var excluded, similar []string
	for _, entry := range pool {
		answer := entry.CanonicalAnswer()
		if answer == correct {
			continue
		}
		excluded = append(excluded, answer)
		diff := utf8.RuneCountInString(answer) - correctLen
		if diff >= -lengthWindow && diff <= lengthWindow {
			similar = append(similar, answer)
		}
	}

	// Candidates are counted per entry, not per distinct text: a tiny pool
	// with repeated answers can still build a question, with duplicate
	// choices among the distractors
	candidates := similar
	if len(candidates) < distractorCount {
		candidates = excluded
	}
	if len(candidates) < distractorCount {
		return nil, model.ErrInsufficientData
	}

	idx := random.SampleIndexes(g.random, len(candidates), distractorCount)
	distractors := make([]string, 0, distractorCount)
	for _, i := range idx {
		distractors = append(distractors, candidates[i])
	}
	return distractors, nil
}

// difficulty grades a question by the character length of its answer
func difficulty(answer string) int {
	switch length := utf8.RuneCountInString(answer); {
	case length <= 3:
		return 1
	case length <= 6:
		return 2
	default:
		return 3
	}
}
