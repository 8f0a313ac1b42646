package model

import "time"

// PlayerAnswer is a submitted answer; IsCorrect and PointsEarned are computed, never trusted from input
type PlayerAnswer struct {
	PlayerID     string        `json:"playerId" bson:"playerId"`
	QuestionID   string        `json:"questionId" bson:"questionId"`
	Answer       string        `json:"answer" bson:"answer"`
	TimeToAnswer time.Duration `json:"timeToAnswer" bson:"timeToAnswer"`
	IsCorrect    bool          `json:"isCorrect" bson:"isCorrect"`
	PointsEarned int           `json:"pointsEarned" bson:"pointsEarned"`
	Timestamp    time.Time     `json:"timestamp" bson:"timestamp"`
	Streak       int           `json:"streak" bson:"streak"` // player's streak when the answer was submitted
}
