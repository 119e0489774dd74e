package response

import (
	"time"

	"github.com/qhuang/xiehouyu-arena/internal/model"
)

// QuestionView is the client-facing shape of a question. The correct answer
// and its index are withheld while the round is still open.
type QuestionView struct {
	Riddle          string   `json:"riddle"`
	Choices         []string `json:"choices"`
	DifficultyLevel int      `json:"difficulty_level"`
	CorrectIndex    *int     `json:"correct_index,omitempty"`
	CorrectAnswer   string   `json:"correct_answer,omitempty"`
}

// StatsView mirrors one side's stats
type StatsView struct {
	Score               int    `json:"score"`
	CorrectAnswers      int    `json:"correct_answers"`
	WrongAnswers        int    `json:"wrong_answers"`
	CurrentStreak       int    `json:"current_streak"`
	MaxStreak           int    `json:"max_streak"`
	LastRoundScore      int    `json:"last_round_score"`
	LastRoundDetails    string `json:"last_round_details"`
	PriorityAnswerCount int    `json:"priority_answer_count"`
	StreakBonuses       []int  `json:"streak_bonuses,omitempty"`
}

// GameView is the client-facing game state
type GameView struct {
	ID            model.GameID                        `json:"id"`
	Phase         model.GamePhase                     `json:"phase"`
	CurrentRound  int                                 `json:"current_round"`
	TotalRounds   int                                 `json:"total_rounds"`
	Stats         map[model.PlayerSide]StatsView      `json:"stats"`
	Questions     map[model.PlayerSide]*QuestionView  `json:"questions,omitempty"`
	Answers       map[model.PlayerSide]*int           `json:"answers,omitempty"`
	FirstToAnswer *model.PlayerSide                   `json:"first_to_answer,omitempty"`
	Winner        *model.PlayerSide                   `json:"winner,omitempty"`
	Tie           bool                                `json:"tie,omitempty"`
	UpdatedAt     time.Time                           `json:"updated_at"`
}

// SubmitResult reports whether a submission was accepted plus the new state
type SubmitResult struct {
	Accepted bool     `json:"accepted"`
	Game     GameView `json:"game"`
}

// ContinueResult reports whether the advance was accepted plus the new state
type ContinueResult struct {
	Accepted bool     `json:"accepted"`
	Game     GameView `json:"game"`
}

// WinnerView reports the outcome of a finished game
type WinnerView struct {
	Winner *model.PlayerSide `json:"winner"`
	Tie    bool              `json:"tie"`
}

// GameFromModel converts a game to its client-facing view
func GameFromModel(g *model.Game) GameView {
	view := GameView{
		ID:            g.ID,
		Phase:         g.Phase,
		CurrentRound:  g.CurrentRound,
		TotalRounds:   g.Config.TotalRounds,
		Stats:         make(map[model.PlayerSide]StatsView, 2),
		FirstToAnswer: g.FirstToAnswer,
		UpdatedAt:     g.UpdatedAt,
	}

	// Answers and the correct choice are only revealed once the round has
	// resolved (or the game is over)
	revealed := g.Phase == model.PhaseRoundFeedback || g.Phase == model.PhaseFinished

	for _, side := range model.Sides() {
		stats := g.Stats[side]
		view.Stats[side] = StatsView{
			Score:               stats.Score,
			CorrectAnswers:      stats.CorrectAnswers,
			WrongAnswers:        stats.WrongAnswers,
			CurrentStreak:       stats.CurrentStreak,
			MaxStreak:           stats.MaxStreak,
			LastRoundScore:      stats.LastRoundScore,
			LastRoundDetails:    stats.LastRoundDetails,
			PriorityAnswerCount: stats.PriorityAnswerCount,
			StreakBonuses:       stats.StreakBonuses,
		}
	}

	if len(g.Questions) > 0 {
		view.Questions = make(map[model.PlayerSide]*QuestionView, 2)
		for _, side := range model.Sides() {
			q := g.Questions[side]
			if q == nil {
				continue
			}
			qv := &QuestionView{
				Riddle:          q.Riddle,
				Choices:         q.Choices,
				DifficultyLevel: q.DifficultyLevel,
			}
			if revealed {
				idx := q.CorrectIndex
				qv.CorrectIndex = &idx
				qv.CorrectAnswer = q.CorrectAnswer
			}
			view.Questions[side] = qv
		}
	}

	if revealed {
		view.Answers = g.Answers
	}

	if g.Phase == model.PhaseFinished {
		view.Winner = g.Winner()
		view.Tie = view.Winner == nil
	}

	return view
}
