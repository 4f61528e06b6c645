package game

import (
	"carhoot/internal/models"
	"carhoot/internal/structures"
	"github.com/samber/lo"
	"strings"
	"time"
)

// restrictedRound is the round index that drops the brand field.
const restrictedRound = 2

// MatchRules drives a local two-player match over a fixed set of vehicles.
type MatchRules struct {
	Scoring         ScoringPolicy
	Rounds          int
	TransitionDelay time.Duration
	// Tiebreak picks the starter of a late round when scores are level.
	Tiebreak func() int
}

func NewMatchRules(conf *structures.Config) *MatchRules {
	return &MatchRules{
		Scoring:         DefaultMatchPoints(),
		Rounds:          conf.Multiplayer.Rounds,
		TransitionDelay: conf.Game.TransitionDelay,
		Tiebreak: func() int {
			return lo.Sample([]int{0, 1})
		},
	}
}

// MatchGuess carries every field at once; blank fields are skipped.
type MatchGuess struct {
	Brand string `json:"brand"`
	Model string `json:"model"`
	Year  string `json:"year"`
}

func (g MatchGuess) value(f models.Field) string {
	switch f {
	case models.FieldBrand:
		return strings.TrimSpace(g.Brand)
	case models.FieldModel:
		return strings.TrimSpace(g.Model)
	case models.FieldYear:
		// years are judged as typed; blank still means not submitted
		if strings.TrimSpace(g.Year) == "" {
			return ""
		}
		return g.Year
	default:
		return ""
	}
}

type MatchOutcome struct {
	Points        int                 `json:"points"`
	RoundComplete bool                `json:"roundComplete"`
	Finished      bool                `json:"finished"`
	Attempt       models.MatchAttempt `json:"attempt"`
}

// SequenceFor returns the fields required in a round.
func (mr *MatchRules) SequenceFor(roundIndex int) StageSequence {
	if roundIndex == restrictedRound {
		return RestrictedSequence
	}
	return FullSequence
}

// StartingPlayer picks who opens a round: player 0, then player 1, then the leader.
func (mr *MatchRules) StartingPlayer(roundIndex int, players [models.PlayersPerMatch]models.Player) int {
	switch {
	case roundIndex <= 0:
		return 0
	case roundIndex == 1:
		return 1
	case players[0].Score > players[1].Score:
		return 0
	case players[1].Score > players[0].Score:
		return 1
	default:
		if mr.Tiebreak == nil {
			return 0
		}
		return mr.Tiebreak() % models.PlayersPerMatch
	}
}

// NewMatch binds one vehicle to each round. Fewer vehicles than rounds shortens
// the match.
func (mr *MatchRules) NewMatch(id string, names [models.PlayersPerMatch]string, vehicles []models.Vehicle, now time.Time) (*models.MultiplayerMatch, error) {
	a, b := strings.TrimSpace(names[0]), strings.TrimSpace(names[1])
	if a == "" || b == "" || NormalizeText(a) == NormalizeText(b) {
		return nil, ErrBadPlayers
	}
	rounds := min(mr.Rounds, len(vehicles))
	if rounds <= 0 {
		return nil, ErrCatalogEmpty
	}

	m := &models.MultiplayerMatch{
		ID:        id,
		Players:   [models.PlayersPerMatch]models.Player{{Name: a}, {Name: b}},
		Rounds:    make([]models.Round, rounds),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for i := range m.Rounds {
		m.Rounds[i] = models.Round{
			Vehicle:        vehicles[i],
			Fields:         mr.SequenceFor(i).Clone(),
			Guessed:        make(map[models.Field]bool),
			FailedAttempts: []models.MatchAttempt{},
		}
	}
	m.Rounds[0].StartingPlayer = mr.StartingPlayer(0, m.Players)
	m.CurrentPlayerIndex = m.Rounds[0].StartingPlayer
	return m, nil
}

// Submit applies the current player's guess. Points are paid the first time a field
// is found in a round; an incomplete round passes the turn.
func (mr *MatchRules) Submit(m *models.MultiplayerMatch, g MatchGuess, now time.Time) (MatchOutcome, error) {
	if m.Finished {
		return MatchOutcome{}, ErrMatchFinished
	}
	if m.Locked(now) {
		return MatchOutcome{}, ErrLocked
	}
	round := m.CurrentRound()
	if round == nil {
		return MatchOutcome{}, ErrMatchFinished
	}
	if !lo.SomeBy(round.Fields, func(f models.Field) bool { return g.value(f) != "" }) {
		return MatchOutcome{}, ErrEmptyGuess
	}

	player := m.CurrentPlayerIndex
	attempt := models.MatchAttempt{PlayerIndex: player}
	points := 0
	for _, f := range round.Fields {
		input := g.value(f)
		if input == "" {
			continue
		}
		correct := mr.judge(f, input, &round.Vehicle, now.Year())
		recordField(&attempt, f, input, correct, &round.Vehicle, now.Year())
		if correct && !round.Guessed[f] {
			round.Guessed[f] = true
			points += mr.Scoring.Points(f)
		}
	}
	m.Players[player].Score += points
	m.UpdatedAt = now

	out := MatchOutcome{Points: points, Attempt: attempt}
	if round.Complete() {
		out.RoundComplete = true
		mr.advance(m, now)
		out.Finished = m.Finished
		return out, nil
	}

	round.FailedAttempts = append(round.FailedAttempts, attempt)
	round.ImageIndex = min(round.ImageIndex+1, models.MaxGuessImageIndex)
	m.CurrentPlayerIndex = (player + 1) % models.PlayersPerMatch
	return out, nil
}

func (mr *MatchRules) judge(f models.Field, input string, v *models.Vehicle, currentYear int) bool {
	if f == models.FieldYear {
		return MatchesYear(input, v.ManufactureYear, currentYear)
	}
	return MatchesText(input, v.Value(f))
}

func recordField(a *models.MatchAttempt, f models.Field, input string, correct bool, v *models.Vehicle, currentYear int) {
	switch f {
	case models.FieldBrand:
		a.Brand = input
		a.BrandCorrect = correct
		a.BrandPartial = !correct && CommonFragment(input, v.Brand)
	case models.FieldModel:
		a.Model = input
		a.ModelCorrect = correct
		a.ModelPartial = !correct && CommonFragment(input, v.Model)
	case models.FieldYear:
		a.Year = input
		a.YearCorrect = correct
		if !correct {
			a.YearBand = BandForAttempt(input, v.ManufactureYear, currentYear)
		}
	}
}

func (mr *MatchRules) advance(m *models.MultiplayerMatch, now time.Time) {
	if m.RoundIndex+1 >= len(m.Rounds) {
		m.Finished = true
		m.LockedUntil = time.Time{}
		return
	}
	m.RoundIndex++
	next := mr.StartingPlayer(m.RoundIndex, m.Players)
	m.Rounds[m.RoundIndex].StartingPlayer = next
	m.CurrentPlayerIndex = next
	m.LockedUntil = now.Add(mr.TransitionDelay)
}
