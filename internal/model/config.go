package model

import "time"

// GameMode selects the flavour of a local match
type GameMode string

const (
	ModeQuickMatch  GameMode = "quick_match"
	ModeTournament  GameMode = "tournament"
	ModeCooperative GameMode = "cooperative"
	ModeSpeedRound  GameMode = "speed_round"
)

// Difficulty is a question tier, or "mixed" for a spread of all three
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyMixed  Difficulty = "mixed"
)

// GameConfig is frozen once the room leaves WAITING
type GameConfig struct {
	Mode           GameMode      `json:"mode" bson:"mode"`
	Difficulty     Difficulty    `json:"difficulty" bson:"difficulty"`
	QuestionCount  int           `json:"questionCount" bson:"questionCount"`
	TimeLimit      time.Duration `json:"timeLimit" bson:"timeLimit"` // per question
	MaxPlayers     int           `json:"maxPlayers" bson:"maxPlayers"`
	Language       string        `json:"language" bson:"language"`             // source tag, e.g. "en"
	TargetLanguage string        `json:"targetLanguage" bson:"targetLanguage"` // e.g. "fr"
	PowerUps       bool          `json:"powerUps" bson:"powerUps"`
}

// DefaultGameConfig returns the configuration used when the caller supplies none
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Mode:           ModeQuickMatch,
		Difficulty:     DifficultyMedium,
		QuestionCount:  10,
		TimeLimit:      15 * time.Second,
		MaxPlayers:     4,
		Language:       "en",
		TargetLanguage: "fr",
		PowerUps:       true,
	}
}
