package game

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"

	"dialectgame/internal/model"
)

// TierPoints is the base value of a question by difficulty
var TierPoints = map[model.Difficulty]int{
	model.DifficultyEasy:   100,
	model.DifficultyMedium: 150,
	model.DifficultyHard:   200,
}

var mixedCycle = []model.Difficulty{model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard}

const choiceCount = 4

// Generator turns a vocabulary bank into question sequences
type Generator struct {
	bank []model.VocabEntry
	rng  *rand.Rand
}

// NewGenerator builds a generator over bank. A nil rng gets a random seed.
func NewGenerator(bank []model.VocabEntry, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Generator{bank: bank, rng: rng}
}

// Generate returns exactly cfg.QuestionCount valid questions. Types alternate
// between translation and multiple choice; mixed difficulty cycles the tiers.
func (g *Generator) Generate(cfg model.GameConfig) ([]model.Question, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	pools := make(map[model.Difficulty]*pool)
	questions := make([]model.Question, 0, cfg.QuestionCount)
	for i := range cfg.QuestionCount {
		tier := cfg.Difficulty
		if tier == model.DifficultyMixed {
			tier = mixedCycle[i%len(mixedCycle)]
		}

		p, ok := pools[tier]
		if !ok {
			p = g.newPool(tier, cfg.Language, cfg.TargetLanguage)
			pools[tier] = p
		}
		if len(p.entries) == 0 {
			return nil, fmt.Errorf("%w: no %s vocabulary for %s to %s", ErrInvalidQuestion, tier, cfg.Language, cfg.TargetLanguage)
		}

		entry := p.next(g.rng)
		q := model.Question{
			ID:             "q" + strconv.Itoa(i+1),
			Type:           model.QuestionTypeTranslation,
			Difficulty:     tier,
			Language:       cfg.Language,
			TargetLanguage: cfg.TargetLanguage,
			Prompt:         fmt.Sprintf("Translate %q to %s", entry.Word, cfg.TargetLanguage),
			CorrectAnswer:  entry.Translation,
			TimeLimit:      cfg.TimeLimit,
			Points:         TierPoints[tier],
		}
		if i%2 == 1 {
			if opts := g.options(p.entries, entry); len(opts) > 1 {
				q.Type = model.QuestionTypeMultipleChoice
				q.Prompt = fmt.Sprintf("What is %q in %s?", entry.Word, cfg.TargetLanguage)
				q.Options = opts
			}
		}

		if !ValidateQuestion(q) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidQuestion, q.ID)
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func (g *Generator) options(entries []model.VocabEntry, answer model.VocabEntry) []string {
	opts := []string{answer.Translation}
	for _, i := range g.rng.Perm(len(entries)) {
		if len(opts) == choiceCount {
			break
		}
		t := entries[i].Translation
		if !slices.Contains(opts, t) {
			opts = append(opts, t)
		}
	}
	g.rng.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })
	return opts
}

// pool hands out a tier's entries without repeats until it runs dry, then reshuffles
type pool struct {
	entries []model.VocabEntry
	order   []int
}

func (g *Generator) newPool(tier model.Difficulty, lang, target string) *pool {
	p := &pool{}
	for _, e := range g.bank {
		if e.Difficulty == tier && e.Language == lang && e.TargetLanguage == target {
			p.entries = append(p.entries, e)
		}
	}
	return p
}

func (p *pool) next(rng *rand.Rand) model.VocabEntry {
	if len(p.order) == 0 {
		p.order = rng.Perm(len(p.entries))
	}
	i := p.order[0]
	p.order = p.order[1:]
	return p.entries[i]
}

// DefaultBank is the built-in vocabulary shipped with the server
func DefaultBank() []model.VocabEntry {
	words := []struct {
		tier       model.Difficulty
		en, fr, es string
	}{
		{model.DifficultyEasy, "cat", "chat", "gato"},
		{model.DifficultyEasy, "dog", "chien", "perro"},
		{model.DifficultyEasy, "house", "maison", "casa"},
		{model.DifficultyEasy, "water", "eau", "agua"},
		{model.DifficultyEasy, "bread", "pain", "pan"},
		{model.DifficultyEasy, "book", "livre", "libro"},
		{model.DifficultyEasy, "red", "rouge", "rojo"},
		{model.DifficultyEasy, "hello", "bonjour", "hola"},
		{model.DifficultyMedium, "school", "école", "escuela"},
		{model.DifficultyMedium, "window", "fenêtre", "ventana"},
		{model.DifficultyMedium, "cheese", "fromage", "queso"},
		{model.DifficultyMedium, "library", "bibliothèque", "biblioteca"},
		{model.DifficultyMedium, "weather", "météo", "tiempo"},
		{model.DifficultyMedium, "shoulder", "épaule", "hombro"},
		{model.DifficultyMedium, "journey", "voyage", "viaje"},
		{model.DifficultyMedium, "kitchen", "cuisine", "cocina"},
		{model.DifficultyHard, "thoroughly", "minutieusement", "minuciosamente"},
		{model.DifficultyHard, "squirrel", "écureuil", "ardilla"},
		{model.DifficultyHard, "to be worth it", "valoir la peine", "valer la pena"},
		{model.DifficultyHard, "nevertheless", "néanmoins", "sin embargo"},
		{model.DifficultyHard, "blackboard", "tableau noir", "pizarra"},
		{model.DifficultyHard, "to wonder", "se demander", "preguntarse"},
		{model.DifficultyHard, "witness", "témoin", "testigo"},
		{model.DifficultyHard, "lightning", "éclair", "relámpago"},
	}

	bank := make([]model.VocabEntry, 0, len(words)*2)
	for _, w := range words {
		bank = append(bank,
			model.VocabEntry{Word: w.en, Translation: w.fr, Difficulty: w.tier, Language: "en", TargetLanguage: "fr"},
			model.VocabEntry{Word: w.en, Translation: w.es, Difficulty: w.tier, Language: "en", TargetLanguage: "es"},
		)
	}
	return bank
}
