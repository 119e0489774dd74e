package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/qhuang/xiehouyu-arena/internal/dependencies/mocks"
	"github.com/qhuang/xiehouyu-arena/internal/model"
	"github.com/qhuang/xiehouyu-arena/internal/services/question"
	"github.com/qhuang/xiehouyu-arena/internal/services/riddle"
	"github.com/qhuang/xiehouyu-arena/internal/services/scoring"
	"github.com/qhuang/xiehouyu-arena/internal/storage/memory"
	"github.com/qhuang/xiehouyu-arena/internal/testutil"
)

// With the mock random exhausted every draw is 0, so each generated question
// puts the correct answer at the last index
const (
	correctChoice = model.ChoiceCount - 1
	wrongChoice   = 0
)

type ControllerSuite struct {
	suite.Suite
	ctx        context.Context
	storage    *memory.Storage
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	riddles    *riddle.Service
	controller *Controller
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.ctx = context.Background()
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()

	logger := testutil.NopLogger()
	s.riddles = riddle.New(s.storage, s.random, logger)
	s.riddles.LoadEntries([]model.RiddleEntry{
		{Riddle: "泥菩萨过江", Answer: "自身难保"},
		{Riddle: "哑巴吃黄连", Answer: "有苦说不出"},
		{Riddle: "小葱拌豆腐", Answer: "一清二白"},
		{Riddle: "八仙过海", Answer: "各显神通"},
		{Riddle: "黄鼠狼给鸡拜年", Answer: "没安好心"},
		{Riddle: "门缝里看人", Answer: "把人看扁了"},
	})

	s.controller = NewController(
		s.storage, s.riddles, question.New(s.random), scoring.New(),
		s.clock, s.random, logger,
	)
}

func (s *ControllerSuite) createGame(cfg model.GameConfig) *model.Game {
	s.random.QueueString("GAME00000001")
	g, err := s.controller.CreateGame(s.ctx, cfg)
	s.Require().NoError(err)
	return g
}

func (s *ControllerSuite) startGame(cfg model.GameConfig) *model.Game {
	g := s.createGame(cfg)
	started, err := s.controller.StartGame(s.ctx, g.ID)
	s.Require().NoError(err)
	return started
}

func (s *ControllerSuite) submit(id model.GameID, side model.PlayerSide, choice int) {
	accepted, err := s.controller.SubmitAnswer(s.ctx, id, side, choice)
	s.Require().NoError(err)
	s.Require().True(accepted)
}

func (s *ControllerSuite) playRound(id model.GameID, leftChoice, rightChoice int) {
	s.submit(id, model.SideLeft, leftChoice)
	s.submit(id, model.SideRight, rightChoice)
	accepted, err := s.controller.ContinueToNextRound(s.ctx, id)
	s.Require().NoError(err)
	s.Require().True(accepted)
}

func (s *ControllerSuite) getGame(id model.GameID) *model.Game {
	g, err := s.controller.GetGame(s.ctx, id)
	s.Require().NoError(err)
	return g
}

func (s *ControllerSuite) TestCreateGame() {
	g := s.createGame(model.DefaultGameConfig())

	s.Equal(model.GameID("GAME00000001"), g.ID)
	s.Equal(model.PhaseSetup, g.Phase)
	s.Equal(0, g.CurrentRound)

	stored := s.getGame(g.ID)
	s.Equal(g.ID, stored.ID)
}

func (s *ControllerSuite) TestCreateGameInvalidConfig() {
	cfg := model.DefaultGameConfig()
	cfg.TotalRounds = 0

	_, err := s.controller.CreateGame(s.ctx, cfg)
	s.ErrorIs(err, model.ErrInvalidConfig)
}

func (s *ControllerSuite) TestGetGameNotFound() {
	_, err := s.controller.GetGame(s.ctx, "MISSING")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *ControllerSuite) TestStartGame() {
	g := s.startGame(model.DefaultGameConfig())

	s.Equal(model.PhaseWaiting, g.Phase)
	s.Equal(1, g.CurrentRound)
	s.Nil(g.FirstToAnswer)
	for _, side := range model.Sides() {
		q := g.Question(side)
		s.Require().NotNil(q)
		s.Len(q.Choices, model.ChoiceCount)
		s.False(g.HasAnswered(side))
	}
}

func (s *ControllerSuite) TestStartGameNotFound() {
	_, err := s.controller.StartGame(s.ctx, "MISSING")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *ControllerSuite) TestStartGameEmptyDataset() {
	g := s.createGame(model.DefaultGameConfig())
	s.riddles.LoadEntries(nil)

	_, err := s.controller.StartGame(s.ctx, g.ID)
	s.ErrorIs(err, model.ErrEmptyPool)

	// The failed start leaves the game untouched
	s.Equal(model.PhaseSetup, s.getGame(g.ID).Phase)
}

func (s *ControllerSuite) TestSubmitFirstAnswerEarnsPriority() {
	g := s.startGame(model.DefaultGameConfig())

	s.submit(g.ID, model.SideLeft, correctChoice)

	got := s.getGame(g.ID)
	s.Equal(model.PhaseWaiting, got.Phase)
	s.Require().NotNil(got.FirstToAnswer)
	s.Equal(model.SideLeft, *got.FirstToAnswer)

	left := got.PlayerStats(model.SideLeft)
	s.Equal(3, left.Score)
	s.Equal(1, left.PriorityAnswerCount)
	s.Equal("correct: 2 base + 1 priority bonus = 3 points", left.LastRoundDetails)

	s.submit(g.ID, model.SideRight, correctChoice)

	got = s.getGame(g.ID)
	s.Equal(model.PhaseRoundFeedback, got.Phase)
	right := got.PlayerStats(model.SideRight)
	s.Equal(2, right.Score)
	s.Equal(0, right.PriorityAnswerCount)
	s.Equal("correct: 2 base points", right.LastRoundDetails)
}

func (s *ControllerSuite) TestSubmitDuplicateRejected() {
	g := s.startGame(model.DefaultGameConfig())
	s.submit(g.ID, model.SideLeft, correctChoice)

	accepted, err := s.controller.SubmitAnswer(s.ctx, g.ID, model.SideLeft, wrongChoice)
	s.NoError(err)
	s.False(accepted)

	// The first submission stands
	left := s.getGame(g.ID).PlayerStats(model.SideLeft)
	s.Equal(3, left.Score)
	s.Equal(1, left.CorrectAnswers)
}

func (s *ControllerSuite) TestSubmitOutsideWaitingRejected() {
	g := s.createGame(model.DefaultGameConfig())

	// Not started yet
	accepted, err := s.controller.SubmitAnswer(s.ctx, g.ID, model.SideLeft, correctChoice)
	s.NoError(err)
	s.False(accepted)

	started, err := s.controller.StartGame(s.ctx, g.ID)
	s.Require().NoError(err)
	s.submit(started.ID, model.SideLeft, correctChoice)
	s.submit(started.ID, model.SideRight, correctChoice)

	// Round resolved: feedback phase rejects further answers
	accepted, err = s.controller.SubmitAnswer(s.ctx, g.ID, model.SideLeft, correctChoice)
	s.NoError(err)
	s.False(accepted)
}

func (s *ControllerSuite) TestSubmitUnknownSide() {
	g := s.startGame(model.DefaultGameConfig())

	_, err := s.controller.SubmitAnswer(s.ctx, g.ID, model.PlayerSide("up"), correctChoice)
	s.ErrorIs(err, model.ErrUnknownPlayerSide)
}

func (s *ControllerSuite) TestSubmitChoiceOutOfRange() {
	g := s.startGame(model.DefaultGameConfig())

	_, err := s.controller.SubmitAnswer(s.ctx, g.ID, model.SideLeft, -1)
	s.ErrorIs(err, model.ErrChoiceOutOfRange)

	_, err = s.controller.SubmitAnswer(s.ctx, g.ID, model.SideLeft, model.ChoiceCount)
	s.ErrorIs(err, model.ErrChoiceOutOfRange)
}

func (s *ControllerSuite) TestContinueOutsideFeedbackRejected() {
	g := s.startGame(model.DefaultGameConfig())

	accepted, err := s.controller.ContinueToNextRound(s.ctx, g.ID)
	s.NoError(err)
	s.False(accepted)
}

func (s *ControllerSuite) TestContinueAdvancesRound() {
	g := s.startGame(model.DefaultGameConfig())
	s.playRound(g.ID, correctChoice, wrongChoice)

	got := s.getGame(g.ID)
	s.Equal(model.PhaseWaiting, got.Phase)
	s.Equal(2, got.CurrentRound)
	s.Nil(got.FirstToAnswer)
	s.False(got.HasAnswered(model.SideLeft))
	s.False(got.HasAnswered(model.SideRight))

	s.Require().Len(got.RoundHistory, 1)
	rec := got.RoundHistory[0]
	s.Equal(1, rec.RoundNumber)
	s.Equal(correctChoice, rec.Answers[model.SideLeft])
	s.Equal(wrongChoice, rec.Answers[model.SideRight])
	s.Equal(3, rec.Scores[model.SideLeft])
	s.Equal(0, rec.Scores[model.SideRight])
}

func (s *ControllerSuite) TestSingleRoundGame() {
	cfg := model.DefaultGameConfig()
	cfg.TotalRounds = 1
	g := s.startGame(cfg)

	s.playRound(g.ID, correctChoice, correctChoice)

	got := s.getGame(g.ID)
	s.Equal(model.PhaseFinished, got.Phase)
	s.Equal(1, got.CurrentRound)
	s.Equal(3, got.PlayerStats(model.SideLeft).Score)
	s.Equal(2, got.PlayerStats(model.SideRight).Score)

	winner, err := s.controller.Winner(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Require().NotNil(winner)
	s.Equal(model.SideLeft, *winner)
}

func (s *ControllerSuite) TestTie() {
	cfg := model.DefaultGameConfig()
	cfg.TotalRounds = 1
	g := s.startGame(cfg)

	s.playRound(g.ID, wrongChoice, wrongChoice)

	winner, err := s.controller.Winner(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Nil(winner)
}

func (s *ControllerSuite) TestWinnerBeforeFinished() {
	g := s.startGame(model.DefaultGameConfig())

	_, err := s.controller.Winner(s.ctx, g.ID)
	s.ErrorIs(err, model.ErrGameNotFinished)
}

func (s *ControllerSuite) TestStreakBrokenBanksBonus() {
	cfg := model.DefaultGameConfig()
	cfg.TotalRounds = 5
	g := s.startGame(cfg)

	for i := 0; i < 4; i++ {
		s.playRound(g.ID, correctChoice, wrongChoice)
	}
	s.playRound(g.ID, wrongChoice, wrongChoice)

	got := s.getGame(g.ID)
	s.Equal(model.PhaseFinished, got.Phase)

	// Four first-correct rounds at 3 each, then a streak of 4 pays 2 when broken
	left := got.PlayerStats(model.SideLeft)
	s.Equal(14, left.Score)
	s.Equal(0, left.CurrentStreak)
	s.Equal(4, left.MaxStreak)
	s.Equal([]int{2}, left.StreakBonuses)
	s.Equal(2, left.LastRoundScore)
	s.Contains(left.LastRoundDetails, "streak of 4: +2 bonus")

	right := got.PlayerStats(model.SideRight)
	s.Equal(0, right.Score)
	s.Equal(5, right.WrongAnswers)
	s.Empty(right.StreakBonuses)
}

func (s *ControllerSuite) TestActiveStreakBankedAtGameEnd() {
	cfg := model.DefaultGameConfig()
	cfg.TotalRounds = 2
	g := s.startGame(cfg)

	s.playRound(g.ID, correctChoice, wrongChoice)
	s.playRound(g.ID, correctChoice, wrongChoice)

	// Two first-correct rounds at 3 each, plus the live streak of 2 paying 1
	left := s.getGame(g.ID).PlayerStats(model.SideLeft)
	s.Equal(7, left.Score)
	s.Equal(2, left.CurrentStreak)
	s.Equal([]int{1}, left.StreakBonuses)
	s.Contains(left.LastRoundDetails, "streak of 2: +1 bonus")
}

func (s *ControllerSuite) TestRoundNeverExceedsTotal() {
	cfg := model.DefaultGameConfig()
	cfg.TotalRounds = 2
	g := s.startGame(cfg)

	s.playRound(g.ID, correctChoice, correctChoice)
	s.playRound(g.ID, correctChoice, correctChoice)

	got := s.getGame(g.ID)
	s.Equal(model.PhaseFinished, got.Phase)
	s.Equal(cfg.TotalRounds, got.CurrentRound)
	s.Len(got.RoundHistory, cfg.TotalRounds)

	// Continuing a finished game does nothing
	accepted, err := s.controller.ContinueToNextRound(s.ctx, g.ID)
	s.NoError(err)
	s.False(accepted)
	s.Equal(cfg.TotalRounds, s.getGame(g.ID).CurrentRound)
}

func (s *ControllerSuite) TestRestartResetsEverything() {
	cfg := model.DefaultGameConfig()
	cfg.TotalRounds = 3
	g := s.startGame(cfg)
	s.playRound(g.ID, correctChoice, correctChoice)
	s.playRound(g.ID, wrongChoice, correctChoice)

	restarted, err := s.controller.StartGame(s.ctx, g.ID)
	s.Require().NoError(err)

	s.Equal(g.ID, restarted.ID)
	s.Equal(model.PhaseWaiting, restarted.Phase)
	s.Equal(1, restarted.CurrentRound)
	s.Empty(restarted.RoundHistory)
	for _, side := range model.Sides() {
		stats := restarted.PlayerStats(side)
		s.Equal(0, stats.Score)
		s.Equal(0, stats.CorrectAnswers)
		s.Equal(0, stats.WrongAnswers)
		s.Equal(0, stats.CurrentStreak)
	}
}

func (s *ControllerSuite) TestRightCanAnswerFirst() {
	g := s.startGame(model.DefaultGameConfig())

	s.submit(g.ID, model.SideRight, correctChoice)
	s.submit(g.ID, model.SideLeft, correctChoice)

	got := s.getGame(g.ID)
	s.Require().NotNil(got.FirstToAnswer)
	s.Equal(model.SideRight, *got.FirstToAnswer)
	s.Equal(3, got.PlayerStats(model.SideRight).Score)
	s.Equal(2, got.PlayerStats(model.SideLeft).Score)
}
