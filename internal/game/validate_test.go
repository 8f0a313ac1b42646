package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"dialectgame/internal/model"
)

func TestValidateQuestion(t *testing.T) {
	mc := func(edit func(*model.Question)) model.Question {
		q := model.Question{
			ID:            "q1",
			Type:          model.QuestionTypeMultipleChoice,
			Options:       []string{"chat", "chien", "maison"},
			CorrectAnswer: "chat",
			TimeLimit:     10 * time.Second,
			Points:        100,
		}
		if edit != nil {
			edit(&q)
		}
		return q
	}

	tests := []struct {
		name string
		q    model.Question
		want bool
	}{
		{name: "valid multiple choice", q: mc(nil), want: true},
		{name: "no options", q: mc(func(q *model.Question) { q.Options = nil }), want: false},
		{name: "answer not an option", q: mc(func(q *model.Question) { q.CorrectAnswer = "eau" }), want: false},
		{name: "zero time limit", q: mc(func(q *model.Question) { q.TimeLimit = 0 }), want: false},
		{name: "negative points", q: mc(func(q *model.Question) { q.Points = -5 }), want: false},
		{name: "translation without options", q: mc(func(q *model.Question) { q.Type = model.QuestionTypeTranslation; q.Options = nil }), want: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidateQuestion(tc.q))
		})
	}
}

func TestValidateConfig(t *testing.T) {
	assert.NoError(t, ValidateConfig(model.DefaultGameConfig()))

	tests := map[string]func(*model.GameConfig){
		"no players":       func(c *model.GameConfig) { c.MaxPlayers = 0 },
		"no questions":     func(c *model.GameConfig) { c.QuestionCount = 0 },
		"no time":          func(c *model.GameConfig) { c.TimeLimit = 0 },
		"bogus difficulty": func(c *model.GameConfig) { c.Difficulty = "brutal" },
	}
	for name, edit := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := model.DefaultGameConfig()
			edit(&cfg)
			assert.ErrorIs(t, ValidateConfig(cfg), ErrInvalidConfig)
		})
	}
}
