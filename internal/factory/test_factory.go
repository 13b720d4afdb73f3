package factory

import (
	"log/slog"
	"time"

	"github.com/hotseat-games/millionaire/internal/dependencies/mocks"
	"github.com/hotseat-games/millionaire/internal/services/scoring"
	"github.com/hotseat-games/millionaire/internal/services/voice"
	"github.com/hotseat-games/millionaire/internal/storage/memory"
	"github.com/hotseat-games/millionaire/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock     *mocks.MockClock
	MockRandom    *mocks.MockRandom
	MockGenerator *mocks.MockGenerator
}

// TestAppConfig tweaks TestApp construction
type TestAppConfig struct {
	// Logger replaces the default discard logger
	Logger *slog.Logger
	// PointScale overrides the default prize ladder
	PointScale []int
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	return NewTestAppWithConfig(TestAppConfig{})
}

// NewTestAppWithConfig creates a TestApp with the given overrides
func NewTestAppWithConfig(cfg TestAppConfig) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	mockGenerator := mocks.NewMockGenerator()

	logger := cfg.Logger
	if logger == nil {
		logger = testutil.NopLogger()
	}

	pointScale := cfg.PointScale
	if pointScale == nil {
		pointScale = scoring.DefaultPointScale
	}

	voiceService, err := voice.New(voice.Config{
		ApplicationID: "test-application",
		Secret:        "test-secret",
	}, mockClock)
	if err != nil {
		panic(err)
	}

	app := newWithDependencies(
		store,
		mockClock,
		mockRandom,
		mockGenerator,
		voiceService,
		voice.NopMessenger{},
		pointScale,
		logger,
	)

	return &TestApp{
		App:           app,
		MockClock:     mockClock,
		MockRandom:    mockRandom,
		MockGenerator: mockGenerator,
	}
}
