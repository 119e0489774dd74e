package factory

import (
	"time"

	"github.com/qhuang/xiehouyu-arena/internal/dependencies/mocks"
	"github.com/qhuang/xiehouyu-arena/internal/model"
	"github.com/qhuang/xiehouyu-arena/internal/storage/memory"
	"github.com/qhuang/xiehouyu-arena/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// LoadTestRiddles loads a small riddle dataset for testing
func (t *TestApp) LoadTestRiddles() {
	t.RiddleService.LoadEntries(TestRiddles())
}

// TestRiddles returns a small fixture dataset with same-length answers so the
// distractor length filter always has enough candidates
func TestRiddles() []model.RiddleEntry {
	return []model.RiddleEntry{
		{Riddle: "泥菩萨过江", Answer: "自身难保"},
		{Riddle: "哑巴吃黄连", Answer: "有苦说不出"},
		{Riddle: "小葱拌豆腐", Answer: "一清二白"},
		{Riddle: "猫哭耗子", Answer: "假慈悲"},
		{Riddle: "八仙过海", Answer: "各显神通"},
		{Riddle: "芝麻开花", Answer: "节节高"},
		{Riddle: "竹篮打水", Answer: "一场空"},
		{Riddle: "门缝里看人", Answer: "把人看扁了"},
		{Riddle: "黄鼠狼给鸡拜年", Answer: "没安好心"},
		{Riddle: "孔夫子搬家", Answer: "净是书（输）；尽是输"},
	}
}
