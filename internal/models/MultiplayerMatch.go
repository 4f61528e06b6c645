package models

import "time"

const PlayersPerMatch = 2

type Player struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// MatchAttempt is one submission that did not finish its round.
type MatchAttempt struct {
	PlayerIndex  int    `json:"playerIndex"`
	Brand        string `json:"brand,omitempty"`
	Model        string `json:"model,omitempty"`
	Year         string `json:"year,omitempty"`
	BrandCorrect bool   `json:"brandCorrect"`
	ModelCorrect bool   `json:"modelCorrect"`
	YearCorrect  bool   `json:"yearCorrect"`
	BrandPartial bool   `json:"brandPartial"`
	ModelPartial bool   `json:"modelPartial"`
	YearBand     string `json:"yearBand,omitempty"`
}

type Round struct {
	Vehicle        Vehicle        `json:"-"`
	Fields         []Field        `json:"fields"`
	Guessed        map[Field]bool `json:"guessed"`
	FailedAttempts []MatchAttempt `json:"failedAttempts"`
	ImageIndex     int            `json:"imageIndex"`
	StartingPlayer int            `json:"startingPlayer"`
}

// Complete reports whether every field required by the round has been guessed.
func (r *Round) Complete() bool {
	for _, f := range r.Fields {
		if !r.Guessed[f] {
			return false
		}
	}
	return true
}

// MultiplayerMatch is a local two-player game. It lives in memory only.
type MultiplayerMatch struct {
	ID                 string                  `json:"id"`
	Players            [PlayersPerMatch]Player `json:"players"`
	CurrentPlayerIndex int                     `json:"currentPlayerIndex"`
	RoundIndex         int                     `json:"roundIndex"`
	Rounds             []Round                 `json:"rounds"`
	Finished           bool                    `json:"finished"`
	LockedUntil        time.Time               `json:"lockedUntil"`
	CreatedAt          time.Time               `json:"createdAt"`
	UpdatedAt          time.Time               `json:"updatedAt"`
}

func (m *MultiplayerMatch) CurrentRound() *Round {
	if m.RoundIndex < 0 || m.RoundIndex >= len(m.Rounds) {
		return nil
	}
	return &m.Rounds[m.RoundIndex]
}

func (m *MultiplayerMatch) Locked(now time.Time) bool {
	return !m.LockedUntil.IsZero() && now.Before(m.LockedUntil)
}

// Winners returns every player holding the top score, so a tie yields both.
func (m *MultiplayerMatch) Winners() []int {
	best := m.Players[0].Score
	for _, p := range m.Players[1:] {
		best = max(best, p.Score)
	}
	winners := make([]int, 0, PlayersPerMatch)
	for i, p := range m.Players {
		if p.Score == best {
			winners = append(winners, i)
		}
	}
	return winners
}
