package service

import (
	"context"
	"dialectgame/internal/model"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockVocab struct {
	mock.Mock
}

func (m *MockVocab) ListByPair(ctx context.Context, language, target string) ([]model.VocabEntry, error) {
	args := m.Called(ctx, language, target)
	entries, _ := args.Get(0).([]model.VocabEntry)
	return entries, args.Error(1)
}

func easyConfig(n int) model.GameConfig {
	cfg := model.DefaultGameConfig()
	cfg.Difficulty = model.DifficultyEasy
	cfg.QuestionCount = n
	return cfg
}

func TestVocabQuestionsUsesStoredWords(t *testing.T) {
	vocab := new(MockVocab)
	vocab.On("ListByPair", mock.Anything, "en", "fr").Return([]model.VocabEntry{
		{Word: "owl", Translation: "hibou", Difficulty: model.DifficultyEasy, Language: "en", TargetLanguage: "fr"},
	}, nil)

	qs, err := NewVocabQuestions(vocab).Generate(easyConfig(3))
	require.NoError(t, err)
	require.Len(t, qs, 3)
	for _, q := range qs {
		assert.Equal(t, "hibou", q.CorrectAnswer)
		// a single word cannot make a multiple choice question
		assert.Equal(t, model.QuestionTypeTranslation, q.Type)
	}
	vocab.AssertExpectations(t)
}

func TestVocabQuestionsFillsMissingTiers(t *testing.T) {
	vocab := new(MockVocab)
	vocab.On("ListByPair", mock.Anything, "en", "fr").Return([]model.VocabEntry{
		{Word: "owl", Translation: "hibou", Difficulty: model.DifficultyEasy, Language: "en", TargetLanguage: "fr"},
	}, nil)

	cfg := easyConfig(3)
	cfg.Difficulty = model.DifficultyMixed
	qs, err := NewVocabQuestions(vocab).Generate(cfg)
	require.NoError(t, err)
	require.Len(t, qs, 3)
	assert.Equal(t, "hibou", qs[0].CorrectAnswer)
	assert.Equal(t, model.DifficultyMedium, qs[1].Difficulty)
	assert.Equal(t, model.DifficultyHard, qs[2].Difficulty)
	assert.NotEqual(t, "hibou", qs[1].CorrectAnswer)
	vocab.AssertExpectations(t)
}

func TestVocabQuestionsFallsBack(t *testing.T) {
	tests := []struct {
		name    string
		entries []model.VocabEntry
		err     error
	}{
		{"empty pair", nil, nil},
		{"lookup error", nil, errors.New("connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vocab := new(MockVocab)
			vocab.On("ListByPair", mock.Anything, "en", "fr").Return(tt.entries, tt.err)

			qs, err := NewVocabQuestions(vocab).Generate(easyConfig(4))
			require.NoError(t, err)
			assert.Len(t, qs, 4)
			assert.Equal(t, model.QuestionTypeMultipleChoice, qs[1].Type)
		})
	}
}
