package model

import "time"

// Player represents a participant sharing the device in a room
type Player struct {
	ID       string    `json:"id" bson:"id"`
	Name     string    `json:"name" bson:"name"`
	IsHost   bool      `json:"isHost" bson:"isHost"`
	IsReady  bool      `json:"isReady" bson:"isReady"`
	Color    string    `json:"color" bson:"color"`
	Avatar   string    `json:"avatar,omitempty" bson:"avatar,omitempty"`
	JoinedAt time.Time `json:"joinedAt" bson:"joinedAt"`
}

// PlayerColors is the fixed palette handed out first-available-in-order
var PlayerColors = []string{
	"#FF6B6B", // coral
	"#4ECDC4", // teal
	"#45B7D1", // sky
	"#96CEB4", // sage
	"#FFEAA7", // sand
	"#DDA0DD", // plum
	"#98D8C8", // mint
	"#F7DC6F", // mustard
}

// PlayerScore is the running score record of one player
type PlayerScore struct {
	PlayerID          string `json:"playerId" bson:"playerId"`
	TotalPoints       int    `json:"totalPoints" bson:"totalPoints"`
	CorrectAnswers    int    `json:"correctAnswers" bson:"correctAnswers"`
	QuestionsAnswered int    `json:"questionsAnswered" bson:"questionsAnswered"`
	CurrentStreak     int    `json:"currentStreak" bson:"currentStreak"`
	BestStreak        int    `json:"bestStreak" bson:"bestStreak"`
	Rank              int    `json:"rank" bson:"rank"` // 1 = best
}
