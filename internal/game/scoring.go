package game

import (
	"cmp"
	"math"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"dialectgame/internal/model"
)

const (
	// MaxTimeBonusRatio is the share of base points paid for an instant answer
	MaxTimeBonusRatio = 0.5
	// StreakStep is the multiplier added per consecutive correct answer
	StreakStep = 0.1
	// MaxStreakSteps caps the streak multiplier at 1 + StreakStep*MaxStreakSteps
	MaxStreakSteps = 10
)

// NormalizeAnswer folds case, accents, punctuation and whitespace so that
// "  Ecole!" matches "école".
func NormalizeAnswer(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, folded)
	return strings.Join(strings.Fields(folded), " ")
}

// ScoreAnswer computes correctness and points for an answer against the
// question it answers. It reads answer.Streak as the streak before this answer.
func ScoreAnswer(answer model.PlayerAnswer, q model.Question) model.PlayerAnswer {
	submitted := NormalizeAnswer(answer.Answer)
	answer.IsCorrect = submitted != "" && submitted == NormalizeAnswer(q.CorrectAnswer)
	if !answer.IsCorrect {
		answer.PointsEarned = 0
		return answer
	}
	answer.PointsEarned = correctPoints(q, answer)
	return answer
}

func correctPoints(q model.Question, answer model.PlayerAnswer) int {
	base := float64(q.Points)

	bonus := 0.0
	if q.TimeLimit > 0 {
		used := float64(answer.TimeToAnswer) / float64(q.TimeLimit)
		used = math.Min(math.Max(used, 0), 1)
		bonus = base * MaxTimeBonusRatio * (1 - used)
	}

	steps := min(max(answer.Streak, 0), MaxStreakSteps)
	multiplier := 1 + StreakStep*float64(steps)

	return int(math.Round((base + bonus) * multiplier))
}

// FoldAnswerIntoScore adds a scored answer to a running score. Rank is left
// for RecomputeRankings.
func FoldAnswerIntoScore(score model.PlayerScore, answer model.PlayerAnswer) model.PlayerScore {
	if score.PlayerID == "" {
		score.PlayerID = answer.PlayerID
	}
	score.TotalPoints += answer.PointsEarned
	score.QuestionsAnswered++
	if answer.IsCorrect {
		score.CorrectAnswers++
		score.CurrentStreak++
		score.BestStreak = max(score.BestStreak, score.CurrentStreak)
	} else {
		score.CurrentStreak = 0
	}
	return score
}

// RecomputeRankings assigns ranks 1..N. Ties on points go to the player with
// more correct answers, then to the earlier position in joinOrder; players
// missing from joinOrder (they left) rank after those present, by id.
func RecomputeRankings(scores map[string]model.PlayerScore, joinOrder []string) map[string]model.PlayerScore {
	position := make(map[string]int, len(joinOrder))
	for i, id := range joinOrder {
		position[id] = i
	}
	pos := func(id string) int {
		if p, ok := position[id]; ok {
			return p
		}
		return len(joinOrder)
	}

	ids := make([]string, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b string) int {
		sa, sb := scores[a], scores[b]
		return cmp.Or(
			cmp.Compare(sb.TotalPoints, sa.TotalPoints),
			cmp.Compare(sb.CorrectAnswers, sa.CorrectAnswers),
			cmp.Compare(pos(a), pos(b)),
			cmp.Compare(a, b),
		)
	})

	ranked := make(map[string]model.PlayerScore, len(scores))
	for i, id := range ids {
		s := scores[id]
		s.Rank = i + 1
		ranked[id] = s
	}
	return ranked
}
