package models

import "time"

// Puzzle states exposed to the client.
const (
	StateNoPuzzle      = "no-puzzle"
	StatePlaying       = "playing"
	StateLocked        = "locked"
	StateOutOfAttempts = "out-of-attempts"
	StateContinued     = "continued"
	StateCompleted     = "completed"
)

type YearAttempt struct {
	Value string `json:"value"`
	Band  string `json:"band,omitempty"`
}

type FailedAttemptsView struct {
	Brand []string      `json:"brand"`
	Model []string      `json:"model"`
	Year  []YearAttempt `json:"year"`
}

type Answer struct {
	Brand           string `json:"brand"`
	Model           string `json:"model"`
	ManufactureYear int    `json:"manufactureYear"`
	RevealImage     string `json:"revealImage,omitempty"`
}

type PuzzleView struct {
	State                 string             `json:"state"`
	Date                  string             `json:"date"`
	Mode                  Mode               `json:"mode"`
	Stage                 Stage              `json:"stage,omitempty"`
	Field                 Field              `json:"field,omitempty"`
	FailedAttempts        FailedAttemptsView `json:"failedAttempts"`
	ErrorCountInStage     int                `json:"errorCountInStage"`
	HintAvailable         bool               `json:"hintAvailable"`
	RevealedText          string             `json:"revealedText,omitempty"`
	Images                []string           `json:"images"`
	CurrentImageIndex     int                `json:"currentImageIndex"`
	MaxUnlockedImageIndex int                `json:"maxUnlockedImageIndex"`
	RemainingAttempts     *int               `json:"remainingAttempts,omitempty"`
	IsCompleted           bool               `json:"isCompleted"`
	GaveUp                bool               `json:"gaveUp"`
	Resolutions           []string           `json:"resolutions,omitempty"`
	Answer                *Answer            `json:"answer,omitempty"`
	LockedUntil           *time.Time         `json:"lockedUntil,omitempty"`
}

type HintView struct {
	Field           Field  `json:"field"`
	RevealedText    string `json:"revealedText"`
	RevealedLetters int    `json:"revealedLetters"`
	UntilNextLetter int    `json:"untilNextLetter"`
}

type RoundView struct {
	Index          int            `json:"index"`
	Fields         []Field        `json:"fields"`
	Guessed        map[Field]bool `json:"guessed"`
	Images         []string       `json:"images"`
	ImageIndex     int            `json:"imageIndex"`
	FailedAttempts []MatchAttempt `json:"failedAttempts"`
}

type MatchView struct {
	ID                 string                  `json:"id"`
	Players            [PlayersPerMatch]Player `json:"players"`
	CurrentPlayerIndex int                     `json:"currentPlayerIndex"`
	RoundIndex         int                     `json:"roundIndex"`
	RoundCount         int                     `json:"roundCount"`
	Round              *RoundView              `json:"round,omitempty"`
	Finished           bool                    `json:"finished"`
	Winners            []int                   `json:"winners,omitempty"`
	Answers            []Answer                `json:"answers,omitempty"`
	LockedUntil        *time.Time              `json:"lockedUntil,omitempty"`
}
