package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/jfraser/whosaid/internal/dependencies/mocks"
	"github.com/jfraser/whosaid/internal/storage/memory"
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
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	store := memory.New(mockClock)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	app := newWithDependencies(store, mockClock, mockRandom, logger)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// LoadTestPrompts replaces the prompt pool with a small fixed set
func (t *TestApp) LoadTestPrompts() {
	t.PromptService.LoadPrompts([]string{
		"Who said they once met a celebrity at an airport?",
		"Who said they can cook a perfect omelette?",
		"Who said they have never watched a horror film?",
	})
}
