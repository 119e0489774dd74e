package model

import "time"

// GameID uniquely identifies a game
type GameID string

// GamePhase represents the current phase of a game
type GamePhase string

const (
	PhaseSetup         GamePhase = "setup"          // Game created, not started
	PhasePlaying       GamePhase = "playing"        // Transient: round being set up
	PhaseWaiting       GamePhase = "waiting"        // Waiting for answers from both sides
	PhaseRoundFeedback GamePhase = "round_feedback" // Both answered, showing results
	PhaseFinished      GamePhase = "finished"       // All rounds played
)

// PlayerSide identifies one of the two fixed participants
type PlayerSide string

const (
	SideLeft  PlayerSide = "left"
	SideRight PlayerSide = "right"
)

// Sides returns both player sides in a stable order
func Sides() [2]PlayerSide {
	return [2]PlayerSide{SideLeft, SideRight}
}

// Valid reports whether the side is one of the two known sides
func (s PlayerSide) Valid() bool {
	return s == SideLeft || s == SideRight
}

// Opponent returns the other side
func (s PlayerSide) Opponent() PlayerSide {
	if s == SideLeft {
		return SideRight
	}
	return SideLeft
}

// GameConfig holds the immutable per-game settings
type GameConfig struct {
	TotalRounds      int         `json:"total_rounds"`
	BasePoints       int         `json:"base_points"`
	PriorityBonus    int         `json:"priority_bonus"`
	StreakBonusTable map[int]int `json:"streak_bonus_table"`
	MaxStreakBonus   int         `json:"max_streak_bonus"`
}

// maxStreakThreshold is the streak length at which MaxStreakBonus overrides
// the table.
const maxStreakThreshold = 8

// DefaultGameConfig returns the standard competition settings
func DefaultGameConfig() GameConfig {
	return GameConfig{
		TotalRounds:   12,
		BasePoints:    2,
		PriorityBonus: 1,
		StreakBonusTable: map[int]int{
			2: 1, 3: 1, 4: 2, 5: 2, 6: 3, 7: 3,
		},
		MaxStreakBonus: 4,
	}
}

// Validate checks the config for values the game cannot run with
func (c GameConfig) Validate() error {
	if c.TotalRounds <= 0 {
		return ErrInvalidConfig
	}
	if c.BasePoints < 0 || c.PriorityBonus < 0 || c.MaxStreakBonus < 0 {
		return ErrInvalidConfig
	}
	return nil
}

// StreakBonus returns the bonus owed for a streak of the given length at the
// moment it ends. Streaks shorter than 2 earn nothing; streaks of 8 or more
// earn MaxStreakBonus regardless of the table.
func (c GameConfig) StreakBonus(streak int) int {
	if streak < 2 {
		return 0
	}
	if streak >= maxStreakThreshold {
		return c.MaxStreakBonus
	}
	return c.StreakBonusTable[streak]
}

// ChoiceCount is the number of choices in every generated question
const ChoiceCount = 4

// QuestionData is a generated 4-choice question for one side
type QuestionData struct {
	Riddle          string   `json:"riddle"`
	CorrectAnswer   string   `json:"correct_answer"`
	Choices         []string `json:"choices"`
	CorrectIndex    int      `json:"correct_index"`
	DifficultyLevel int      `json:"difficulty_level"`
}

// PlayerStats tracks one side's progress over a single game
type PlayerStats struct {
	Score               int    `json:"score"`
	CorrectAnswers      int    `json:"correct_answers"`
	WrongAnswers        int    `json:"wrong_answers"`
	CurrentStreak       int    `json:"current_streak"`
	MaxStreak           int    `json:"max_streak"`
	LastRoundScore      int    `json:"last_round_score"`
	LastRoundDetails    string `json:"last_round_details"`
	PriorityAnswerCount int    `json:"priority_answer_count"`
	StreakBonuses       []int  `json:"streak_bonuses"`
}

// NewPlayerStats returns zeroed stats for a fresh game
func NewPlayerStats() *PlayerStats {
	return &PlayerStats{}
}

// RecordCorrect applies a correct answer: points earned, the scoring
// breakdown, and whether this side answered first in the round.
func (p *PlayerStats) RecordCorrect(points int, details string, priority bool) {
	p.Score += points
	p.CorrectAnswers++
	p.CurrentStreak++
	if p.CurrentStreak > p.MaxStreak {
		p.MaxStreak = p.CurrentStreak
	}
	p.LastRoundScore = points
	p.LastRoundDetails = details
	if priority {
		p.PriorityAnswerCount++
	}
}

// RecordWrong applies a wrong answer. streakBonus is the bonus owed for the
// streak this answer breaks (0 if none); it is banked into the score and
// history before the streak resets.
func (p *PlayerStats) RecordWrong(streakBonus int, details string) {
	p.WrongAnswers++
	if streakBonus > 0 {
		p.Score += streakBonus
		p.StreakBonuses = append(p.StreakBonuses, streakBonus)
	}
	p.CurrentStreak = 0
	p.LastRoundScore = streakBonus
	p.LastRoundDetails = details
}

// BankStreakBonus credits a bonus for a streak still active at game end.
// The streak is not reset: the game is over.
func (p *PlayerStats) BankStreakBonus(bonus int, details string) {
	if bonus <= 0 {
		return
	}
	p.Score += bonus
	p.StreakBonuses = append(p.StreakBonuses, bonus)
	if p.LastRoundDetails != "" {
		p.LastRoundDetails += "; " + details
	} else {
		p.LastRoundDetails = details
	}
}

// RoundRecord is an append-only snapshot taken when a round resolves
type RoundRecord struct {
	RoundNumber int                          `json:"round_number"`
	Questions   map[PlayerSide]*QuestionData `json:"questions"`
	Answers     map[PlayerSide]int           `json:"answers"`
	Scores      map[PlayerSide]int           `json:"scores"`
}

// Game is the full state of one two-player match
type Game struct {
	ID            GameID                       `json:"id"`
	Phase         GamePhase                    `json:"phase"`
	CurrentRound  int                          `json:"current_round"`
	Config        GameConfig                   `json:"config"`
	Stats         map[PlayerSide]*PlayerStats  `json:"stats"`
	Questions     map[PlayerSide]*QuestionData `json:"questions"`
	Answers       map[PlayerSide]*int          `json:"answers"`
	FirstToAnswer *PlayerSide                  `json:"first_to_answer,omitempty"`
	RoundHistory  []RoundRecord                `json:"round_history"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewGame creates a game in the setup phase
func NewGame(id GameID, cfg GameConfig, now time.Time) *Game {
	return &Game{
		ID:           id,
		Phase:        PhaseSetup,
		CurrentRound: 0,
		Config:       cfg,
		Stats: map[PlayerSide]*PlayerStats{
			SideLeft:  NewPlayerStats(),
			SideRight: NewPlayerStats(),
		},
		Questions: make(map[PlayerSide]*QuestionData),
		Answers:   make(map[PlayerSide]*int),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// BothAnswered reports whether both sides have submitted this round
func (g *Game) BothAnswered() bool {
	for _, side := range Sides() {
		if g.Answers[side] == nil {
			return false
		}
	}
	return true
}

// HasAnswered reports whether the given side has submitted this round
func (g *Game) HasAnswered(side PlayerSide) bool {
	return g.Answers[side] != nil
}

// Question returns the current question for a side, or nil outside a round
func (g *Game) Question(side PlayerSide) *QuestionData {
	return g.Questions[side]
}

// PlayerStats returns the stats for a side
func (g *Game) PlayerStats(side PlayerSide) *PlayerStats {
	return g.Stats[side]
}

// Winner returns the higher-scoring side, or nil on a tie.
// Only meaningful once the game is finished.
func (g *Game) Winner() *PlayerSide {
	left := g.Stats[SideLeft].Score
	right := g.Stats[SideRight].Score

	switch {
	case left > right:
		side := SideLeft
		return &side
	case right > left:
		side := SideRight
		return &side
	default:
		return nil
	}
}
