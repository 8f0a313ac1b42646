package service

import (
	"context"
	"dialectgame/internal/cache"
	"dialectgame/internal/model"
	"fmt"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
)

// --- Broadcaster ---

type MockBroadcaster struct {
	mock.Mock
}

func (m *MockBroadcaster) BroadcastToRoom(roomID string, msgType string, payload interface{}) {
	m.Called(roomID, msgType, payload)
}

func (m *MockBroadcaster) DisconnectRoom(roomID string) {
	m.Called(roomID)
}

// --- Archive ---

type MockArchive struct {
	mock.Mock
}

func (m *MockArchive) Save(ctx context.Context, results *model.GameResults) error {
	args := m.Called(ctx, results)
	return args.Error(0)
}

func (m *MockArchive) GetLatest(ctx context.Context, roomID string) (*model.GameResults, error) {
	args := m.Called(ctx, roomID)
	res, _ := args.Get(0).(*model.GameResults)
	return res, args.Error(1)
}

func (m *MockArchive) ListRecent(ctx context.Context, limit int) ([]*model.GameResults, error) {
	args := m.Called(ctx, limit)
	res, _ := args.Get(0).([]*model.GameResults)
	return res, args.Error(1)
}

// --- LeaderboardCache ---

type MockLeaderboard struct {
	mock.Mock
}

func (m *MockLeaderboard) UpdateScore(ctx context.Context, roomID, playerID string, points int) error {
	args := m.Called(ctx, roomID, playerID, points)
	return args.Error(0)
}

func (m *MockLeaderboard) GetTop(ctx context.Context, roomID string, limit int) ([]cache.LeaderboardEntry, error) {
	args := m.Called(ctx, roomID, limit)
	entries, _ := args.Get(0).([]cache.LeaderboardEntry)
	return entries, args.Error(1)
}

func (m *MockLeaderboard) GetRank(ctx context.Context, roomID, playerID string) (int64, error) {
	args := m.Called(ctx, roomID, playerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLeaderboard) Remove(ctx context.Context, roomID, playerID string) error {
	args := m.Called(ctx, roomID, playerID)
	return args.Error(0)
}

func (m *MockLeaderboard) Clear(ctx context.Context, roomID string) error {
	args := m.Called(ctx, roomID)
	return args.Error(0)
}

// --- QuestionSource ---

type staticQuestions struct{}

func (staticQuestions) Generate(cfg model.GameConfig) ([]model.Question, error) {
	qs := make([]model.Question, cfg.QuestionCount)
	for i := range qs {
		qs[i] = model.Question{
			ID:            fmt.Sprintf("q%d", i+1),
			Type:          model.QuestionTypeTranslation,
			Difficulty:    cfg.Difficulty,
			Prompt:        `Translate "dog" to fr`,
			CorrectAnswer: "chien",
			TimeLimit:     cfg.TimeLimit,
			Points:        100,
		}
	}
	return qs, nil
}

// --- Clock ---

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}
