package service

import (
	"context"
	"dialectgame/internal/game"
	"dialectgame/internal/model"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
)

const vocabLookupTimeout = 3 * time.Second

// VocabLoader looks up the stored word bank for a language pair
type VocabLoader interface {
	ListByPair(ctx context.Context, language, target string) ([]model.VocabEntry, error)
}

// VocabQuestions generates questions from a stored vocabulary. Tiers with no
// stored words for the pair, or a failed lookup, use the built-in bank.
type VocabQuestions struct {
	vocab    VocabLoader
	fallback []model.VocabEntry
}

// NewVocabQuestions creates a question source over vocab
func NewVocabQuestions(vocab VocabLoader) *VocabQuestions {
	return &VocabQuestions{vocab: vocab, fallback: game.DefaultBank()}
}

// Generate implements QuestionSource
func (q *VocabQuestions) Generate(cfg model.GameConfig) ([]model.Question, error) {
	ctx, cancel := context.WithTimeout(context.Background(), vocabLookupTimeout)
	defer cancel()

	bank, err := q.vocab.ListByPair(ctx, cfg.Language, cfg.TargetLanguage)
	if err != nil {
		log.Warn().Err(err).Str("language", cfg.Language).Str("target", cfg.TargetLanguage).Msg("vocabulary lookup failed, using built-in bank")
		bank = nil
	}
	return game.NewGenerator(withFallbackTiers(bank, q.fallback), nil).Generate(cfg)
}

// withFallbackTiers adds the fallback words of every tier stored has none of
func withFallbackTiers(stored, fallback []model.VocabEntry) []model.VocabEntry {
	have := make(map[model.Difficulty]bool, 3)
	for _, e := range stored {
		have[e.Difficulty] = true
	}
	merged := slices.Clone(stored)
	for _, e := range fallback {
		if !have[e.Difficulty] {
			merged = append(merged, e)
		}
	}
	return merged
}
