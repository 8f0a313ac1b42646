package model

import "time"

// QuestionType defines how a question is presented and answered
type QuestionType string

const (
	QuestionTypeTranslation    QuestionType = "translation"
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeListening      QuestionType = "listening"
	QuestionTypePronunciation  QuestionType = "pronunciation"
	QuestionTypeFillBlank      QuestionType = "fill_blank"
)

// Question is one item of a room's question sequence
type Question struct {
	ID             string        `json:"id" bson:"id"`
	Type           QuestionType  `json:"type" bson:"type"`
	Difficulty     Difficulty    `json:"difficulty" bson:"difficulty"`
	Language       string        `json:"language" bson:"language"`
	TargetLanguage string        `json:"targetLanguage" bson:"targetLanguage"`
	Prompt         string        `json:"prompt" bson:"prompt"`
	Options        []string      `json:"options,omitempty" bson:"options,omitempty"` // multiple choice only
	CorrectAnswer  string        `json:"correctAnswer" bson:"correctAnswer"`
	TimeLimit      time.Duration `json:"timeLimit" bson:"timeLimit"`
	Points         int           `json:"points" bson:"points"`
}

// VocabEntry is a word pair in the question bank
type VocabEntry struct {
	Word           string     `json:"word" bson:"word"`
	Translation    string     `json:"translation" bson:"translation"`
	Difficulty     Difficulty `json:"difficulty" bson:"difficulty"`
	Language       string     `json:"language" bson:"language"`
	TargetLanguage string     `json:"targetLanguage" bson:"targetLanguage"`
}
