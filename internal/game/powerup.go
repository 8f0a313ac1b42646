package game

import (
	"fmt"
	"slices"
	"time"

	"dialectgame/internal/model"
)

const (
	// DoublePointsFactor multiplies the fully adjusted points of a correct answer
	DoublePointsFactor = 2
	// ExtraTimeBonus is added to the current question deadline
	ExtraTimeBonus = 5 * time.Second
)

// ActivatePowerUp puts a power-up into effect for its owner.
// freeze-time stops the question clock for its duration, so the deadline
// moves only by the part not already covered by another freeze. extra-time
// extends the current question by ExtraTimeBonus.
func ActivatePowerUp(room *model.GameRoom, p model.ActivePowerUp, now time.Time) error {
	if room.State != model.StateActive {
		return ErrGameNotActive
	}
	if !room.Config.PowerUps {
		return ErrPowerUpsDisabled
	}
	if room.PlayerIndex(p.PlayerID) < 0 {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, p.PlayerID)
	}
	switch p.Type {
	case model.PowerUpDoublePoints, model.PowerUpFreezeTime, model.PowerUpExtraTime:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPowerUp, p.Type)
	}
	if p.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrUnknownPowerUp)
	}
	if p.ActivatedAt.IsZero() {
		p.ActivatedAt = now
	}

	covered := frozenUntil(room, now)
	if covered.Before(now) {
		covered = now
	}
	room.ActivePowerUps = append(room.ActivePowerUps, p)

	switch p.Type {
	case model.PowerUpFreezeTime:
		room.TimeFrozen = true
		ext := p.ActivatedAt.Add(p.Duration).Sub(covered)
		if ext > 0 && !room.QuestionDeadline.IsZero() {
			room.QuestionDeadline = room.QuestionDeadline.Add(ext)
		}
	case model.PowerUpExtraTime:
		if !room.QuestionDeadline.IsZero() {
			room.QuestionDeadline = room.QuestionDeadline.Add(ExtraTimeBonus)
		}
	}
	return nil
}

// ExpireStale removes every power-up with now-activatedAt >= duration and
// returns the removed ones. The room stays frozen while any freeze-time remains.
func ExpireStale(room *model.GameRoom, now time.Time) []model.ActivePowerUp {
	var expired []model.ActivePowerUp
	kept := room.ActivePowerUps[:0:0]
	for _, p := range room.ActivePowerUps {
		if p.Expired(now) {
			expired = append(expired, p)
			continue
		}
		kept = append(kept, p)
	}
	if len(expired) == 0 {
		return nil
	}

	room.ActivePowerUps = kept
	room.TimeFrozen = slices.ContainsFunc(kept, func(p model.ActivePowerUp) bool {
		return p.Type == model.PowerUpFreezeTime
	})
	return expired
}

// frozenUntil is when the last freeze-time still active at now runs out,
// or the zero time when nothing is frozen
func frozenUntil(room *model.GameRoom, now time.Time) time.Time {
	var until time.Time
	for _, p := range room.ActivePowerUps {
		if p.Type != model.PowerUpFreezeTime || p.Expired(now) {
			continue
		}
		if end := p.ActivatedAt.Add(p.Duration); end.After(until) {
			until = end
		}
	}
	return until
}

// PointsMultiplier is the factor the owner's correct answers earn at now
func PointsMultiplier(room *model.GameRoom, playerID string, now time.Time) int {
	for _, p := range room.ActivePowerUps {
		if p.PlayerID == playerID && p.Type == model.PowerUpDoublePoints && !p.Expired(now) {
			return DoublePointsFactor
		}
	}
	return 1
}

// ApplyPowerUps composes active effects with an already scored answer
func ApplyPowerUps(room *model.GameRoom, scored model.PlayerAnswer, now time.Time) int {
	if !scored.IsCorrect {
		return 0
	}
	return scored.PointsEarned * PointsMultiplier(room, scored.PlayerID, now)
}

// TickResult describes what a tick changed
type TickResult struct {
	Expired  []model.ActivePowerUp
	TimedOut bool
	Finished bool
}

// Changed reports whether the tick touched the room
func (r TickResult) Changed() bool {
	return len(r.Expired) > 0 || r.TimedOut
}

// Tick advances the room to now: stale power-ups expire, then an unfrozen
// question past its deadline is closed.
func Tick(room *model.GameRoom, now time.Time) TickResult {
	res := TickResult{Expired: ExpireStale(room, now)}

	if room.State != model.StateActive || room.TimeFrozen || room.QuestionDeadline.IsZero() {
		return res
	}
	if now.Before(room.QuestionDeadline) {
		return res
	}
	if err := AdvanceQuestion(room, now); err == nil {
		res.TimedOut = true
		res.Finished = room.State == model.StateFinished
	}
	return res
}
