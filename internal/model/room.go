package model

import (
	"maps"
	"slices"
	"time"
)

// GameState is the room lifecycle; it only moves forward
type GameState string

const (
	StateWaiting  GameState = "waiting"
	StateActive   GameState = "active"
	StateFinished GameState = "finished"
)

// GameRoom is one local multiplayer session and all of its state
type GameRoom struct {
	ID                   string                 `json:"id" bson:"id"`
	Name                 string                 `json:"name" bson:"name"`
	HostID               string                 `json:"hostId" bson:"hostId"`
	Players              []Player               `json:"players" bson:"players"` // join order
	State                GameState              `json:"state" bson:"state"`
	Config               GameConfig             `json:"config" bson:"config"`
	Questions            []Question             `json:"questions" bson:"questions"`
	CurrentQuestionIndex int                    `json:"currentQuestionIndex" bson:"currentQuestionIndex"`
	QuestionStartedAt    time.Time              `json:"questionStartedAt" bson:"questionStartedAt"`
	QuestionDeadline     time.Time              `json:"questionDeadline" bson:"questionDeadline"`
	Answers              []PlayerAnswer         `json:"answers" bson:"answers"`
	Scores               map[string]PlayerScore `json:"scores" bson:"scores"`
	ActivePowerUps       []ActivePowerUp        `json:"activePowerUps" bson:"activePowerUps"`
	TimeFrozen           bool                   `json:"timeFrozen" bson:"timeFrozen"`
	ChatMessages         []ChatMessage          `json:"chatMessages" bson:"chatMessages"`
	GameEvents           []GameEvent            `json:"gameEvents" bson:"gameEvents"`
	CreatedAt            time.Time              `json:"createdAt" bson:"createdAt"`
	StartedAt            time.Time              `json:"startedAt" bson:"startedAt"`
	FinishedAt           time.Time              `json:"finishedAt" bson:"finishedAt"`
}

// PlayerIndex returns the roster position of a player, or -1
func (r *GameRoom) PlayerIndex(playerID string) int {
	return slices.IndexFunc(r.Players, func(p Player) bool { return p.ID == playerID })
}

// Player returns the rostered player with the given id
func (r *GameRoom) Player(playerID string) (*Player, bool) {
	i := r.PlayerIndex(playerID)
	if i < 0 {
		return nil, false
	}
	return &r.Players[i], true
}

// CurrentQuestion returns the question being played, or nil outside ACTIVE
func (r *GameRoom) CurrentQuestion() *Question {
	if r.State != StateActive || r.CurrentQuestionIndex < 0 || r.CurrentQuestionIndex >= len(r.Questions) {
		return nil
	}
	return &r.Questions[r.CurrentQuestionIndex]
}

// RosterOrder lists player ids in join order
func (r *GameRoom) RosterOrder() []string {
	ids := make([]string, len(r.Players))
	for i, p := range r.Players {
		ids[i] = p.ID
	}
	return ids
}

// IsEmpty reports whether every player has left
func (r *GameRoom) IsEmpty() bool {
	return len(r.Players) == 0
}

// PublicView is a copy fit to send to players. Questions not yet closed
// carry no correct answer and answers to the open question carry no text.
func (r *GameRoom) PublicView() *GameRoom {
	c := r.Clone()
	if c.State == StateFinished {
		return c
	}
	open := 0
	if c.State == StateActive {
		open = c.CurrentQuestionIndex
	}
	hidden := make(map[string]bool, len(c.Questions)-open)
	for i := open; i < len(c.Questions); i++ {
		c.Questions[i].CorrectAnswer = ""
		hidden[c.Questions[i].ID] = true
	}
	for i := range c.Answers {
		if hidden[c.Answers[i].QuestionID] {
			c.Answers[i].Answer = ""
		}
	}
	return c
}

// Clone returns a copy that shares no mutable slices or maps with r.
// Question options and event data are treated as immutable and stay shared.
func (r *GameRoom) Clone() *GameRoom {
	c := *r
	c.Players = slices.Clone(r.Players)
	c.Questions = slices.Clone(r.Questions)
	c.Answers = slices.Clone(r.Answers)
	c.Scores = maps.Clone(r.Scores)
	c.ActivePowerUps = slices.Clone(r.ActivePowerUps)
	c.ChatMessages = slices.Clone(r.ChatMessages)
	c.GameEvents = slices.Clone(r.GameEvents)
	return &c
}
