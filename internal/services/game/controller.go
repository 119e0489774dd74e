package game

import (
	"context"
	"log/slog"
	"sync"

	"github.com/qhuang/xiehouyu-arena/internal/dependencies/clock"
	"github.com/qhuang/xiehouyu-arena/internal/dependencies/random"
	"github.com/qhuang/xiehouyu-arena/internal/model"
	"github.com/qhuang/xiehouyu-arena/internal/services/question"
	"github.com/qhuang/xiehouyu-arena/internal/services/riddle"
	"github.com/qhuang/xiehouyu-arena/internal/services/scoring"
	"github.com/qhuang/xiehouyu-arena/internal/storage"
)

// gameIDAlphabet is the character set for generated game IDs
const gameIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// gameIDLength is the length of generated game IDs
const gameIDLength = 12

// Controller manages the round state machine for all hosted games.
//
// All transitions for one game run under that game's mutex, so the two
// sides' submissions are strictly serialized: "first to answer" is decided
// by submission order, never by wall-clock comparison.
type Controller struct {
	storage        storage.Storage
	riddleService  *riddle.Service
	generator      *question.Generator
	scoringService *scoring.Service
	clock          clock.Clock
	random         random.Random
	logger         *slog.Logger

	mu    sync.Mutex
	locks map[model.GameID]*sync.Mutex
}

// NewController creates a new game Controller
func NewController(
	store storage.Storage,
	riddleService *riddle.Service,
	generator *question.Generator,
	scoringService *scoring.Service,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:        store,
		riddleService:  riddleService,
		generator:      generator,
		scoringService: scoringService,
		clock:          clk,
		random:         rnd,
		logger:         logger,
		locks:          make(map[model.GameID]*sync.Mutex),
	}
}

// gameLock returns the mutex serializing transitions for one game
func (c *Controller) gameLock(id model.GameID) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	lock, ok := c.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[id] = lock
	}
	return lock
}

// CreateGame creates a new game in the setup phase
func (c *Controller) CreateGame(ctx context.Context, cfg model.GameConfig) (*model.Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	id := model.GameID(c.random.String(gameIDLength, gameIDAlphabet))
	g := model.NewGame(id, cfg, c.clock.Now())

	if err := c.storage.SaveGame(ctx, g); err != nil {
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(id)),
		slog.Int("total_rounds", cfg.TotalRounds),
	)
	return g, nil
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, id)
}

// StartGame starts (or restarts) a game. Valid from any phase: it is a hard
// reset that discards stats and history, then begins round one.
func (c *Controller) StartGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	lock := c.gameLock(id)
	lock.Lock()
	defer lock.Unlock()

	prev, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	// Generate round one before touching stored state so a dataset failure
	// leaves the game untouched
	questions, err := c.generateQuestions()
	if err != nil {
		return nil, err
	}

	g := model.NewGame(prev.ID, prev.Config, prev.CreatedAt)
	g.Phase = model.PhasePlaying
	c.beginRound(g, questions)
	g.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, g); err != nil {
		return nil, err
	}

	c.logger.Info("game started",
		slog.String("game_id", string(id)),
		slog.Int("round", g.CurrentRound),
	)
	return g, nil
}

// SubmitAnswer records one side's answer for the current round.
//
// Returns false (with a nil error) when the submission is rejected as an
// invalid transition: wrong phase, or this side already answered. Unknown
// sides and out-of-range choice indexes are caller bugs and return an error.
func (c *Controller) SubmitAnswer(ctx context.Context, id model.GameID, side model.PlayerSide, choice int) (bool, error) {
	if !side.Valid() {
		return false, model.ErrUnknownPlayerSide
	}
	if choice < 0 || choice >= model.ChoiceCount {
		return false, model.ErrChoiceOutOfRange
	}

	lock := c.gameLock(id)
	lock.Lock()
	defer lock.Unlock()

	g, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return false, err
	}

	if g.Phase != model.PhaseWaiting || g.HasAnswered(side) {
		return false, nil
	}

	// First submitter this round earns the priority bonus. Strict call
	// order decides: both submissions arrive through this serialized path.
	isFirst := g.FirstToAnswer == nil
	if isFirst {
		s := side
		g.FirstToAnswer = &s
	}

	answer := choice
	g.Answers[side] = &answer

	q := g.Questions[side]
	isCorrect := choice == q.CorrectIndex

	points, details := c.scoringService.Score(g.Config, isCorrect, isFirst)
	stats := g.Stats[side]
	if isCorrect {
		stats.RecordCorrect(points, details, isFirst)
	} else {
		bonus := g.Config.StreakBonus(stats.CurrentStreak)
		if bonus > 0 {
			details += "; " + c.scoringService.StreakBonusDetails(stats.CurrentStreak, bonus)
		}
		stats.RecordWrong(bonus, details)
	}

	if g.BothAnswered() {
		g.Phase = model.PhaseRoundFeedback
	}
	g.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, g); err != nil {
		return false, err
	}

	c.logger.Info("answer submitted",
		slog.String("game_id", string(id)),
		slog.String("side", string(side)),
		slog.Int("round", g.CurrentRound),
		slog.Bool("correct", isCorrect),
		slog.Bool("first", isFirst),
		slog.Int("points", points),
	)
	return true, nil
}

// ContinueToNextRound advances past the feedback phase: it snapshots the
// resolved round into history and either starts the next round or finishes
// the game when all rounds are played.
//
// Returns false (with a nil error) when the game is not in feedback.
func (c *Controller) ContinueToNextRound(ctx context.Context, id model.GameID) (bool, error) {
	lock := c.gameLock(id)
	lock.Lock()
	defer lock.Unlock()

	g, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return false, err
	}

	if g.Phase != model.PhaseRoundFeedback {
		return false, nil
	}

	finished := g.CurrentRound >= g.Config.TotalRounds

	// Generate before mutating so a dataset failure leaves the game in
	// feedback, not half-advanced
	var questions map[model.PlayerSide]*model.QuestionData
	if !finished {
		questions, err = c.generateQuestions()
		if err != nil {
			return false, err
		}
	}

	g.RoundHistory = append(g.RoundHistory, roundRecord(g))
	g.Phase = model.PhasePlaying

	if finished {
		c.finishGame(g)
	} else {
		c.beginRound(g, questions)
	}
	g.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, g); err != nil {
		return false, err
	}
	return true, nil
}

// Winner returns the winning side of a finished game, or nil on a tie
func (c *Controller) Winner(ctx context.Context, id model.GameID) (*model.PlayerSide, error) {
	g, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.Phase != model.PhaseFinished {
		return nil, model.ErrGameNotFinished
	}
	return g.Winner(), nil
}

// generateQuestions builds one independent question per side
func (c *Controller) generateQuestions() (map[model.PlayerSide]*model.QuestionData, error) {
	pool := c.riddleService.All()
	questions := make(map[model.PlayerSide]*model.QuestionData, len(model.Sides()))
	for _, side := range model.Sides() {
		q, err := c.generator.Generate(pool)
		if err != nil {
			return nil, err
		}
		questions[side] = q
	}
	return questions, nil
}

// beginRound installs fresh questions and moves the game into waiting
func (c *Controller) beginRound(g *model.Game, questions map[model.PlayerSide]*model.QuestionData) {
	g.CurrentRound++
	g.Questions = questions
	g.Answers = make(map[model.PlayerSide]*int)
	g.FirstToAnswer = nil
	g.Phase = model.PhaseWaiting
}

// finishGame banks any still-active streaks and moves the game to finished
func (c *Controller) finishGame(g *model.Game) {
	for _, side := range model.Sides() {
		stats := g.Stats[side]
		bonus := g.Config.StreakBonus(stats.CurrentStreak)
		if bonus > 0 {
			stats.BankStreakBonus(bonus, c.scoringService.StreakBonusDetails(stats.CurrentStreak, bonus))
		}
	}
	g.Phase = model.PhaseFinished

	c.logger.Info("game finished",
		slog.String("game_id", string(g.ID)),
		slog.Int("rounds_played", g.CurrentRound),
		slog.Int("left_score", g.Stats[model.SideLeft].Score),
		slog.Int("right_score", g.Stats[model.SideRight].Score),
	)
}

// roundRecord snapshots the just-resolved round
func roundRecord(g *model.Game) model.RoundRecord {
	rec := model.RoundRecord{
		RoundNumber: g.CurrentRound,
		Questions:   make(map[model.PlayerSide]*model.QuestionData, 2),
		Answers:     make(map[model.PlayerSide]int, 2),
		Scores:      make(map[model.PlayerSide]int, 2),
	}
	for _, side := range model.Sides() {
		rec.Questions[side] = g.Questions[side]
		if answer := g.Answers[side]; answer != nil {
			rec.Answers[side] = *answer
		}
		rec.Scores[side] = g.Stats[side].Score
	}
	return rec
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateGame(ctx context.Context, cfg model.GameConfig) (*model.Game, error)
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	StartGame(ctx context.Context, id model.GameID) (*model.Game, error)
	SubmitAnswer(ctx context.Context, id model.GameID, side model.PlayerSide, choice int) (bool, error)
	ContinueToNextRound(ctx context.Context, id model.GameID) (bool, error)
	Winner(ctx context.Context, id model.GameID) (*model.PlayerSide, error)
}

var _ ControllerInterface = (*Controller)(nil)
