package models

import "time"

// RankingEntry is one solved daily puzzle.
type RankingEntry struct {
	ID             uint      `gorm:"primaryKey" json:"-"`
	Date           string    `gorm:"size:10;index;uniqueIndex:idx_ranking_client_date" json:"date"`
	Month          string    `gorm:"size:7;index" json:"-"`
	ClientID       string    `gorm:"size:36;uniqueIndex:idx_ranking_client_date" json:"-"`
	Nickname       string    `gorm:"size:64;not null" json:"nickname"`
	Mode           Mode      `gorm:"size:16" json:"mode"`
	FailedAttempts int       `json:"failedAttempts"`
	ElapsedSeconds int       `json:"elapsedSeconds"`
	CreatedAt      time.Time `json:"-"`
}

// RankingRow aggregates a player's entries over a period.
type RankingRow struct {
	Nickname      string `json:"nickname"`
	DaysPlayed    int    `json:"daysPlayed"`
	TotalSeconds  int    `json:"totalSeconds"`
	TotalFailures int    `json:"totalFailures"`
}
