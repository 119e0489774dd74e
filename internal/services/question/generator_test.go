package question

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/qhuang/xiehouyu-arena/internal/dependencies/mocks"
	"github.com/qhuang/xiehouyu-arena/internal/model"
)

type GeneratorSuite struct {
	suite.Suite
	random    *mocks.MockRandom
	generator *Generator
}

func TestGeneratorSuite(t *testing.T) {
	suite.Run(t, new(GeneratorSuite))
}

func (s *GeneratorSuite) SetupTest() {
	s.random = mocks.NewMockRandom()
	s.generator = New(s.random)
}

// pool of entries whose answers are all within the length window of each other
func (s *GeneratorSuite) similarPool() []model.RiddleEntry {
	return []model.RiddleEntry{
		{Riddle: "泥菩萨过江", Answer: "自身难保"},
		{Riddle: "小葱拌豆腐", Answer: "一清二白"},
		{Riddle: "八仙过海", Answer: "各显神通"},
		{Riddle: "黄鼠狼给鸡拜年", Answer: "没安好心"},
		{Riddle: "哑巴吃黄连", Answer: "有苦说不出"},
	}
}

func (s *GeneratorSuite) TestEmptyPool() {
	q, err := s.generator.Generate(nil)
	s.Nil(q)
	s.ErrorIs(err, model.ErrEmptyPool)
}

func (s *GeneratorSuite) TestTooFewAnswers() {
	pool := []model.RiddleEntry{
		{Riddle: "泥菩萨过江", Answer: "自身难保"},
		{Riddle: "小葱拌豆腐", Answer: "一清二白"},
		{Riddle: "八仙过海", Answer: "各显神通"},
	}

	q, err := s.generator.Generate(pool)
	s.Nil(q)
	s.ErrorIs(err, model.ErrInsufficientData)
}

func (s *GeneratorSuite) TestQuestionShape() {
	q, err := s.generator.Generate(s.similarPool())
	s.Require().NoError(err)

	s.Len(q.Choices, model.ChoiceCount)
	s.GreaterOrEqual(q.CorrectIndex, 0)
	s.Less(q.CorrectIndex, model.ChoiceCount)
	s.Equal(q.CorrectAnswer, q.Choices[q.CorrectIndex])

	seen := make(map[string]struct{}, len(q.Choices))
	correctCount := 0
	for _, choice := range q.Choices {
		s.NotEmpty(choice)
		if choice == q.CorrectAnswer {
			correctCount++
		}
		seen[choice] = struct{}{}
	}
	s.Equal(1, correctCount)
	s.Len(seen, model.ChoiceCount)
}

func (s *GeneratorSuite) TestDeterministicSelection() {
	// Select the second entry; all further draws come back 0
	s.random.QueueIntn(1)

	q, err := s.generator.Generate(s.similarPool())
	s.Require().NoError(err)

	s.Equal("小葱拌豆腐", q.Riddle)
	s.Equal("一清二白", q.CorrectAnswer)
}

func (s *GeneratorSuite) TestExhaustedRandomIsStable() {
	// With no queued values every draw is 0: first entry selected, first
	// three other answers as distractors, correct answer shuffled to the end
	q, err := s.generator.Generate(s.similarPool())
	s.Require().NoError(err)

	s.Equal("泥菩萨过江", q.Riddle)
	s.Equal("自身难保", q.CorrectAnswer)
	s.Equal(3, q.CorrectIndex)
	s.Equal([]string{"一清二白", "各显神通", "没安好心", "自身难保"}, q.Choices)
}

func (s *GeneratorSuite) TestLengthFilterPrefersSimilar() {
	pool := []model.RiddleEntry{
		{Riddle: "芝麻开花", Answer: "节节高"},
		{Riddle: "猫哭耗子", Answer: "假慈悲"},
		{Riddle: "竹篮打水", Answer: "一场空"},
		{Riddle: "泥菩萨过江", Answer: "自身难保"},
		{Riddle: "搬起石头砸自己的脚", Answer: "自作自受自讨苦吃活该"},
	}

	q, err := s.generator.Generate(pool)
	s.Require().NoError(err)
	s.Equal("节节高", q.CorrectAnswer)

	// Three answers are within two characters of the correct one, so the
	// ten-character outlier never appears
	s.NotContains(q.Choices, "自作自受自讨苦吃活该")
}

func (s *GeneratorSuite) TestLengthFilterFallback() {
	// Only two answers are close in length to the correct one, so the
	// full pool is used and the outlier may appear
	pool := []model.RiddleEntry{
		{Riddle: "芝麻开花", Answer: "节节高"},
		{Riddle: "猫哭耗子", Answer: "假慈悲"},
		{Riddle: "竹篮打水", Answer: "一场空"},
		{Riddle: "搬起石头砸自己的脚", Answer: "自作自受自讨苦吃活该"},
	}

	q, err := s.generator.Generate(pool)
	s.Require().NoError(err)
	s.Equal("节节高", q.CorrectAnswer)
	s.Contains(q.Choices, "自作自受自讨苦吃活该")
}

func (s *GeneratorSuite) TestRepeatedAnswersAllowed() {
	// Distractor candidates are counted per entry, so a pool with fewer
	// than four distinct answers still yields a question, duplicates and all
	pool := []model.RiddleEntry{
		{Riddle: "芝麻开花", Answer: "节节高"},
		{Riddle: "猫哭耗子", Answer: "假慈悲"},
		{Riddle: "老虎挂念珠", Answer: "假慈悲"},
		{Riddle: "黄鼠狼哭鸡", Answer: "假慈悲"},
	}

	q, err := s.generator.Generate(pool)
	s.Require().NoError(err)
	s.Equal("节节高", q.CorrectAnswer)
	s.Equal(q.CorrectAnswer, q.Choices[q.CorrectIndex])

	duplicates := 0
	for _, choice := range q.Choices {
		if choice == "假慈悲" {
			duplicates++
		}
	}
	s.Equal(3, duplicates)
}

func (s *GeneratorSuite) TestDistractorsAreCanonical() {
	pool := s.similarPool()
	pool = append(pool, model.RiddleEntry{Riddle: "孔夫子搬家", Answer: "净是书（输）；尽是输"})

	// Select the multi-variant entry
	s.random.QueueIntn(len(pool) - 1)

	q, err := s.generator.Generate(pool)
	s.Require().NoError(err)
	s.Equal("净是书（输）", q.CorrectAnswer)
	for _, choice := range q.Choices {
		s.NotContains(choice, model.AnswerSeparator)
	}
}

func (s *GeneratorSuite) TestDifficulty() {
	tests := []struct {
		answer string
		level  int
	}{
		{"一场空", 1},
		{"自身难保", 2},
		{"有苦说不出", 2},
		{"净是书（输）", 2},
		{"自作自受自讨苦吃", 3},
	}
	for _, tt := range tests {
		s.Equal(tt.level, difficulty(tt.answer), "answer %s", tt.answer)
	}
}
