package game

import (
	"fmt"
	"slices"

	"dialectgame/internal/model"
)

// ValidateConfig rejects configurations a room cannot be built from
func ValidateConfig(cfg model.GameConfig) error {
	if cfg.MaxPlayers < 1 {
		return fmt.Errorf("%w: maxPlayers must be at least 1, got %d", ErrInvalidConfig, cfg.MaxPlayers)
	}
	if cfg.QuestionCount < 1 {
		return fmt.Errorf("%w: questionCount must be at least 1, got %d", ErrInvalidConfig, cfg.QuestionCount)
	}
	if cfg.TimeLimit <= 0 {
		return fmt.Errorf("%w: timeLimit must be positive", ErrInvalidConfig)
	}
	switch cfg.Difficulty {
	case model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard, model.DifficultyMixed:
	default:
		return fmt.Errorf("%w: unknown difficulty %q", ErrInvalidConfig, cfg.Difficulty)
	}
	return nil
}

// ValidateQuestion reports whether q can be played
func ValidateQuestion(q model.Question) bool {
	if q.TimeLimit <= 0 || q.Points <= 0 {
		return false
	}
	if q.Type == model.QuestionTypeMultipleChoice {
		if len(q.Options) == 0 || !slices.Contains(q.Options, q.CorrectAnswer) {
			return false
		}
	}
	return true
}

func validateQuestions(questions []model.Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("%w: no questions", ErrInvalidQuestion)
	}
	for _, q := range questions {
		if !ValidateQuestion(q) {
			return fmt.Errorf("%w: %s", ErrInvalidQuestion, q.ID)
		}
	}
	return nil
}
