package model

import "time"

// GameEventType identifies an entry in a room's event log
type GameEventType string

const (
	EventRoomCreated     GameEventType = "room_created"
	EventPlayerJoined    GameEventType = "player_joined"
	EventPlayerLeft      GameEventType = "player_left"
	EventPlayerReady     GameEventType = "player_ready"
	EventHostChanged     GameEventType = "host_changed"
	EventGameStarted     GameEventType = "game_started"
	EventAnswerSubmitted GameEventType = "answer_submitted"
	EventQuestionAdvance GameEventType = "question_advanced"
	EventPowerUpUsed     GameEventType = "power_up_used"
	EventPowerUpExpired  GameEventType = "power_up_expired"
	EventGameFinished    GameEventType = "game_finished"
	EventChat            GameEventType = "chat"
)

// GameEvent is an append-only audit record
type GameEvent struct {
	ID        string         `json:"id" bson:"id"`
	Type      GameEventType  `json:"type" bson:"type"`
	PlayerID  string         `json:"playerId,omitempty" bson:"playerId,omitempty"`
	Data      map[string]any `json:"data,omitempty" bson:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp" bson:"timestamp"`
}

// ChatMessage is a player or system line in the room chat
type ChatMessage struct {
	ID              string    `json:"id" bson:"id"`
	PlayerID        string    `json:"playerId,omitempty" bson:"playerId,omitempty"`
	PlayerName      string    `json:"playerName,omitempty" bson:"playerName,omitempty"`
	Message         string    `json:"message" bson:"message"`
	Type            string    `json:"type" bson:"type"` // "text", "emoji" or "system"
	IsSystemMessage bool      `json:"isSystemMessage" bson:"isSystemMessage"`
	Timestamp       time.Time `json:"timestamp" bson:"timestamp"`
}
