package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/qhuang/xiehouyu-arena/internal/model"
)

type StorageSuite struct {
	suite.Suite
	ctx     context.Context
	storage *Storage
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.ctx = context.Background()
	s.storage = New()
}

func (s *StorageSuite) TestSaveAndGetGame() {
	g := model.NewGame("TEST01", model.DefaultGameConfig(), time.Now())
	s.Require().NoError(s.storage.SaveGame(s.ctx, g))

	got, err := s.storage.GetGame(s.ctx, "TEST01")
	s.Require().NoError(err)
	s.Equal(g.ID, got.ID)
	s.Equal(model.PhaseSetup, got.Phase)
}

func (s *StorageSuite) TestGetGameReturnsCopy() {
	g := model.NewGame("TEST01", model.DefaultGameConfig(), time.Now())
	g.Phase = model.PhaseWaiting
	g.CurrentRound = 2
	g.Stats[model.SideLeft].Score = 5
	answer := 1
	g.Answers[model.SideLeft] = &answer
	side := model.SideLeft
	g.FirstToAnswer = &side
	g.Questions[model.SideLeft] = &model.QuestionData{
		Riddle:       "泥菩萨过江",
		Choices:      []string{"一清二白", "各显神通", "没安好心", "自身难保"},
		CorrectIndex: 3,
	}
	s.Require().NoError(s.storage.SaveGame(s.ctx, g))

	// Mutating what a reader got back must not leak into the store
	got, err := s.storage.GetGame(s.ctx, "TEST01")
	s.Require().NoError(err)
	got.Phase = model.PhaseFinished
	got.Stats[model.SideLeft].Score = 99
	*got.Answers[model.SideLeft] = 3
	*got.FirstToAnswer = model.SideRight
	got.Questions[model.SideLeft].Choices[0] = "mutated"

	again, err := s.storage.GetGame(s.ctx, "TEST01")
	s.Require().NoError(err)
	s.Equal(model.PhaseWaiting, again.Phase)
	s.Equal(5, again.Stats[model.SideLeft].Score)
	s.Equal(1, *again.Answers[model.SideLeft])
	s.Equal(model.SideLeft, *again.FirstToAnswer)
	s.Equal("一清二白", again.Questions[model.SideLeft].Choices[0])
}

func (s *StorageSuite) TestSaveGameDetachesCaller() {
	g := model.NewGame("TEST01", model.DefaultGameConfig(), time.Now())
	s.Require().NoError(s.storage.SaveGame(s.ctx, g))

	// Later caller-side mutation must not reach the stored state
	g.Phase = model.PhaseFinished
	g.Stats[model.SideRight].Score = 42

	got, err := s.storage.GetGame(s.ctx, "TEST01")
	s.Require().NoError(err)
	s.Equal(model.PhaseSetup, got.Phase)
	s.Equal(0, got.Stats[model.SideRight].Score)
}

func (s *StorageSuite) TestGetGameNotFound() {
	_, err := s.storage.GetGame(s.ctx, "MISSING")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestDeleteGame() {
	g := model.NewGame("TEST01", model.DefaultGameConfig(), time.Now())
	s.Require().NoError(s.storage.SaveGame(s.ctx, g))
	s.Require().NoError(s.storage.DeleteGame(s.ctx, "TEST01"))

	_, err := s.storage.GetGame(s.ctx, "TEST01")
	s.ErrorIs(err, model.ErrGameNotFound)

	// Deleting a missing game is not an error
	s.NoError(s.storage.DeleteGame(s.ctx, "TEST01"))
}

func (s *StorageSuite) TestSaveAndGetRiddles() {
	entries := []model.RiddleEntry{
		{Riddle: "泥菩萨过江", Answer: "自身难保"},
		{Riddle: "竹篮打水", Answer: "一场空"},
	}
	s.Require().NoError(s.storage.SaveRiddles(s.ctx, entries))

	got, err := s.storage.GetRiddles(s.ctx)
	s.Require().NoError(err)
	s.Equal(entries, got)

	// Stored entries are copies, not aliases
	got[0].Answer = "mutated"
	again, err := s.storage.GetRiddles(s.ctx)
	s.Require().NoError(err)
	s.Equal("自身难保", again[0].Answer)
}

func (s *StorageSuite) TestGetRiddlesNotLoaded() {
	_, err := s.storage.GetRiddles(s.ctx)
	s.ErrorIs(err, model.ErrRiddlesNotLoaded)
}
