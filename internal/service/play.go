package service

import (
	"context"
	"dialectgame/internal/game"
	"dialectgame/internal/model"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

var errUnchanged = errors.New("room unchanged")

// StartGame generates questions for the room config and starts play; host only
func (s *GameService) StartGame(ctx context.Context, roomID, requesterID string) (*model.GameRoom, error) {
	room, err := s.update(ctx, roomID, func(room *model.GameRoom, now time.Time) error {
		if err := requireHost(room, requesterID); err != nil {
			return err
		}
		if !game.IsReadyToStart(room) {
			return game.StartGame(room, nil, now) // reports the blocking players
		}

		questions, err := s.questions.Generate(room.Config)
		if err != nil {
			return fmt.Errorf("generate questions: %w", err)
		}
		if err := game.StartGame(room, questions, now); err != nil {
			return err
		}
		s.emit(room, model.EventGameStarted, requesterID, map[string]any{"questions": len(questions)}, now)
		game.AppendSystemMessage(room, "The game has started", now)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("room", roomID).Int("questions", len(room.Questions)).Int("players", len(room.Players)).Msg("game started")
	s.mirrorScores(ctx, room)
	s.broadcast(room, string(model.EventGameStarted), nil)
	return room, nil
}

// SubmitAnswer scores an answer to the current question. A missing
// time-to-answer is measured from the question start.
func (s *GameService) SubmitAnswer(ctx context.Context, roomID string, answer model.PlayerAnswer) (model.PlayerAnswer, error) {
	var scored model.PlayerAnswer
	var advanced bool

	room, err := s.update(ctx, roomID, func(room *model.GameRoom, now time.Time) error {
		if answer.TimeToAnswer <= 0 && !room.QuestionStartedAt.IsZero() {
			answer.TimeToAnswer = now.Sub(room.QuestionStartedAt)
		}

		var err error
		scored, err = game.SubmitAnswer(room, answer, now)
		if err != nil {
			return err
		}
		s.emit(room, model.EventAnswerSubmitted, scored.PlayerID, map[string]any{
			"questionId": scored.QuestionID,
			"correct":    scored.IsCorrect,
			"points":     scored.PointsEarned,
		}, now)

		if s.opts.AutoAdvance && game.AllAnswered(room) {
			if err := game.AdvanceQuestion(room, now); err != nil {
				return err
			}
			advanced = true
			s.afterAdvance(room, "all_answered", now)
		}
		return nil
	})
	if err != nil {
		return model.PlayerAnswer{}, err
	}

	log.Debug().Str("room", roomID).Str("player", scored.PlayerID).Bool("correct", scored.IsCorrect).Int("points", scored.PointsEarned).Msg("answer scored")
	s.mirrorScores(ctx, room)
	public := scored
	public.Answer = ""
	s.broadcast(room, string(model.EventAnswerSubmitted), map[string]any{"answer": public})
	if advanced {
		s.publishAdvance(ctx, room)
	}
	return scored, nil
}

// AdvanceQuestion moves on to the next question, finishing after the last; host only
func (s *GameService) AdvanceQuestion(ctx context.Context, roomID, requesterID string) (*model.GameRoom, error) {
	room, err := s.update(ctx, roomID, func(room *model.GameRoom, now time.Time) error {
		if err := requireHost(room, requesterID); err != nil {
			return err
		}
		if err := game.AdvanceQuestion(room, now); err != nil {
			return err
		}
		s.afterAdvance(room, "host", now)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publishAdvance(ctx, room)
	return room, nil
}

// ActivatePowerUp puts a power-up into effect for a player
func (s *GameService) ActivatePowerUp(ctx context.Context, roomID, playerID string, typ model.PowerUpType, duration time.Duration) (*model.GameRoom, error) {
	room, err := s.update(ctx, roomID, func(room *model.GameRoom, now time.Time) error {
		p := model.ActivePowerUp{Type: typ, PlayerID: playerID, ActivatedAt: now, Duration: duration}
		if err := game.ActivatePowerUp(room, p, now); err != nil {
			return err
		}
		s.emit(room, model.EventPowerUpUsed, playerID, map[string]any{"type": string(typ), "durationMs": duration.Milliseconds()}, now)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.broadcast(room, string(model.EventPowerUpUsed), map[string]any{"playerId": playerID, "type": typ})
	return room, nil
}

// Tick advances every live room to now, expiring power-ups and timing out
// questions. It returns how many rooms changed.
func (s *GameService) Tick(ctx context.Context, now time.Time) int {
	s.mu.Lock()
	ids := make([]string, 0, len(s.rooms))
	for id := range s.rooms {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	changed := 0
	for _, id := range ids {
		var res game.TickResult
		room, err := s.update(ctx, id, func(room *model.GameRoom, _ time.Time) error {
			res = game.Tick(room, now)
			if !res.Changed() {
				return errUnchanged
			}
			for _, p := range res.Expired {
				s.emit(room, model.EventPowerUpExpired, p.PlayerID, map[string]any{"type": string(p.Type)}, now)
			}
			if res.TimedOut {
				s.afterAdvance(room, "timeout", now)
			}
			return nil
		})
		if err != nil {
			continue
		}

		changed++
		for _, p := range res.Expired {
			s.broadcast(room, string(model.EventPowerUpExpired), map[string]any{"playerId": p.PlayerID, "type": p.Type})
		}
		if res.TimedOut {
			s.publishAdvance(ctx, room)
		}
	}
	return changed
}

// Run drives Tick from a ticker until ctx is done
func (s *GameService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick(ctx, s.now())
		}
	}
}

// afterAdvance logs the outcome of a question advance into the room
func (s *GameService) afterAdvance(room *model.GameRoom, reason string, now time.Time) {
	if room.State != model.StateFinished {
		s.emit(room, model.EventQuestionAdvance, "", map[string]any{"index": room.CurrentQuestionIndex, "reason": reason}, now)
		return
	}

	s.emit(room, model.EventGameFinished, "", map[string]any{"reason": reason}, now)
	res, err := game.ComputeResults(room)
	if err != nil || res.Winner == nil {
		game.AppendSystemMessage(room, "The game is over", now)
		return
	}
	name := res.Winner.Name
	if name == "" {
		name = res.Winner.PlayerID
	}
	game.AppendSystemMessage(room, fmt.Sprintf("%s wins with %d points", name, res.Winner.TotalPoints), now)
}

func (s *GameService) publishAdvance(ctx context.Context, room *model.GameRoom) {
	if room.State != model.StateFinished {
		s.broadcast(room, string(model.EventQuestionAdvance), map[string]any{"index": room.CurrentQuestionIndex})
		return
	}

	res, err := game.ComputeResults(room)
	if err != nil {
		log.Error().Err(err).Str("room", room.ID).Msg("failed to compute results")
		return
	}
	s.recordResults(ctx, res)
	log.Info().Str("room", room.ID).Dur("duration", res.Duration).Msg("game finished")
	s.broadcast(room, string(model.EventGameFinished), map[string]any{"results": res})
}

func (s *GameService) recordResults(ctx context.Context, res model.GameResults) {
	if err := s.store.AppendHistory(ctx, res); err != nil {
		log.Warn().Err(err).Str("room", res.GameID).Msg("failed to append game history")
	}
	if s.archive != nil {
		if err := s.archive.Save(ctx, &res); err != nil {
			log.Warn().Err(err).Str("room", res.GameID).Msg("failed to archive results")
		}
	}
}

// mirrorScores pushes cumulative points to the leaderboard cache
func (s *GameService) mirrorScores(ctx context.Context, room *model.GameRoom) {
	if s.leaderboard == nil {
		return
	}
	for id, score := range room.Scores {
		if err := s.leaderboard.UpdateScore(ctx, room.ID, id, score.TotalPoints); err != nil {
			log.Warn().Err(err).Str("room", room.ID).Str("player", id).Msg("failed to update leaderboard")
			return
		}
	}
}
