package game

import (
	"time"

	"github.com/google/uuid"

	"dialectgame/internal/model"
)

const (
	MaxChatMessages = 100
	MaxGameEvents   = 200
)

// Chat message kinds
const (
	ChatText   = "text"
	ChatEmoji  = "emoji"
	ChatSystem = "system"
)

// AppendChat adds a message to the room chat, evicting the oldest entries
// beyond MaxChatMessages.
func AppendChat(room *model.GameRoom, msg model.ChatMessage) model.ChatMessage {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.Type == "" {
		msg.Type = ChatText
	}
	if n := len(room.ChatMessages); n > 0 {
		msg.Timestamp = notBefore(msg.Timestamp, room.ChatMessages[n-1].Timestamp)
	}
	room.ChatMessages = appendBounded(room.ChatMessages, msg, MaxChatMessages)
	return msg
}

// AppendSystemMessage adds a chat line authored by the room itself
func AppendSystemMessage(room *model.GameRoom, text string, now time.Time) model.ChatMessage {
	return AppendChat(room, model.ChatMessage{
		Message:         text,
		Type:            ChatSystem,
		IsSystemMessage: true,
		Timestamp:       now,
	})
}

// AppendEvent adds an entry to the event log, evicting the oldest entries
// beyond MaxGameEvents.
func AppendEvent(room *model.GameRoom, ev model.GameEvent) model.GameEvent {
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	if n := len(room.GameEvents); n > 0 {
		ev.Timestamp = notBefore(ev.Timestamp, room.GameEvents[n-1].Timestamp)
	}
	room.GameEvents = appendBounded(room.GameEvents, ev, MaxGameEvents)
	return ev
}

// NewEvent builds an event stamped at now
func NewEvent(typ model.GameEventType, playerID string, data map[string]any, now time.Time) model.GameEvent {
	return model.GameEvent{
		ID:        uuid.New().String(),
		Type:      typ,
		PlayerID:  playerID,
		Data:      data,
		Timestamp: now,
	}
}

func notBefore(ts, last time.Time) time.Time {
	if ts.Before(last) {
		return last
	}
	return ts
}

// appendBounded keeps the newest limit entries in their original order.
// The result never aliases the input's backing array.
func appendBounded[T any](log []T, entry T, limit int) []T {
	drop := max(len(log)+1-limit, 0)
	out := make([]T, 0, len(log)+1-drop)
	out = append(out, log[drop:]...)
	return append(out, entry)
}
