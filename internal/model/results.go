package model

import "time"

// Standing is a ranked final score with the player's display details
type Standing struct {
	PlayerScore `bson:",inline"`
	Name        string `json:"name" bson:"name"`
	Color       string `json:"color" bson:"color"`
}

// GameResults is the summary of a finished room
type GameResults struct {
	GameID        string        `json:"gameId" bson:"gameId"`
	RoomName      string        `json:"roomName" bson:"roomName"`
	Mode          GameMode      `json:"mode" bson:"mode"`
	Difficulty    Difficulty    `json:"difficulty" bson:"difficulty"`
	QuestionCount int           `json:"questionCount" bson:"questionCount"`
	Duration      time.Duration `json:"duration" bson:"duration"`
	FinalScores   []Standing    `json:"finalScores" bson:"finalScores"`
	Winner        *Standing     `json:"winner,omitempty" bson:"winner,omitempty"`
	StartedAt     time.Time     `json:"startedAt" bson:"startedAt"`
	FinishedAt    time.Time     `json:"finishedAt" bson:"finishedAt"`
}
