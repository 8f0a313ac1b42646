package service

import (
	"context"
	"dialectgame/internal/game"
	"dialectgame/internal/model"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// MaxChatLength caps a single chat message, in runes
const MaxChatLength = 280

// SendChat posts a player message to the room chat. Each player is held to
// the configured message rate.
func (s *GameService) SendChat(ctx context.Context, roomID, playerID, text, kind string) (model.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.ChatMessage{}, ErrEmptyMessage
	}
	if r := []rune(text); len(r) > MaxChatLength {
		text = string(r[:MaxChatLength])
	}
	if kind != game.ChatEmoji {
		kind = game.ChatText
	}

	e, err := s.entry(ctx, roomID)
	if err != nil {
		return model.ChatMessage{}, err
	}

	var msg model.ChatMessage
	room, err := s.update(ctx, roomID, func(room *model.GameRoom, now time.Time) error {
		p, ok := room.Player(playerID)
		if !ok {
			return fmt.Errorf("%w: %s", game.ErrPlayerNotFound, playerID)
		}
		if !e.limiter(playerID, s.opts.ChatRate, s.opts.ChatBurst).AllowN(now, 1) {
			return ErrChatRateLimited
		}
		msg = game.AppendChat(room, model.ChatMessage{
			PlayerID:   playerID,
			PlayerName: p.Name,
			Message:    text,
			Type:       kind,
			Timestamp:  now,
		})
		s.emit(room, model.EventChat, playerID, map[string]any{"messageId": msg.ID}, now)
		return nil
	})
	if err != nil {
		return model.ChatMessage{}, err
	}

	s.broadcaster.BroadcastToRoom(room.ID, string(model.EventChat), map[string]any{"message": msg})
	return msg, nil
}

// limiter returns the player's chat limiter. Caller holds e.mu.
func (e *roomEntry) limiter(playerID string, r rate.Limit, burst int) *rate.Limiter {
	l, ok := e.limiters[playerID]
	if !ok {
		l = rate.NewLimiter(r, burst)
		e.limiters[playerID] = l
	}
	return l
}
