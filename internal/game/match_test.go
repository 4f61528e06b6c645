package game

import (
	"carhoot/internal/models"
	"carhoot/internal/structures"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMatchRules() *MatchRules {
	mr := NewMatchRules(&structures.Config{
		Game:        structures.GameConfig{TransitionDelay: 800 * time.Millisecond},
		Multiplayer: structures.MultiplayerConfig{Rounds: 3},
	})
	mr.Tiebreak = func() int { return 1 }
	return mr
}

func matchVehicles() []models.Vehicle {
	return []models.Vehicle{
		{ID: "a", Brand: "BMW", Model: "M3", ManufactureYear: 1995},
		{ID: "b", Brand: "Audi", Model: "Quattro", ManufactureYear: 1980},
		{ID: "c", Brand: "Lancia", Model: "Delta", ManufactureYear: 1987},
	}
}

func newTestMatch(t *testing.T, mr *MatchRules) *models.MultiplayerMatch {
	m, err := mr.NewMatch("m1", [2]string{"Ana", "Luis"}, matchVehicles(), testNow)
	require.NoError(t, err)
	return m
}

func TestNewMatch_Validation(t *testing.T) {
	mr := testMatchRules()
	_, err := mr.NewMatch("m", [2]string{"Ana", " "}, matchVehicles(), testNow)
	assert.ErrorIs(t, err, ErrBadPlayers)
	_, err = mr.NewMatch("m", [2]string{"Ana", "ana"}, matchVehicles(), testNow)
	assert.ErrorIs(t, err, ErrBadPlayers)
	_, err = mr.NewMatch("m", [2]string{"Ana", "Luis"}, nil, testNow)
	assert.ErrorIs(t, err, ErrCatalogEmpty)

	m, err := mr.NewMatch("m", [2]string{"Ana", "Luis"}, matchVehicles()[:2], testNow)
	require.NoError(t, err)
	assert.Len(t, m.Rounds, 2)
}

func TestNewMatch_RoundLayout(t *testing.T) {
	m := newTestMatch(t, testMatchRules())
	assert.Len(t, m.Rounds, 3)
	assert.Equal(t, []models.Field{models.FieldBrand, models.FieldModel, models.FieldYear}, m.Rounds[0].Fields)
	assert.Equal(t, []models.Field{models.FieldModel, models.FieldYear}, m.Rounds[2].Fields)
	assert.Equal(t, 0, m.CurrentPlayerIndex)
}

func TestSubmit_ScoresFirstCorrectOnly(t *testing.T) {
	mr := testMatchRules()
	m := newTestMatch(t, mr)

	out, err := mr.Submit(m, MatchGuess{Brand: "bmw", Model: "M5"}, testNow)
	require.NoError(t, err)
	assert.Equal(t, 10, out.Points)
	assert.False(t, out.RoundComplete)
	assert.Equal(t, 10, m.Players[0].Score)
	assert.Equal(t, 1, m.CurrentPlayerIndex)
	assert.Equal(t, 1, m.Rounds[0].ImageIndex)
	require.Len(t, m.Rounds[0].FailedAttempts, 1)
	assert.True(t, m.Rounds[0].FailedAttempts[0].BrandCorrect)

	out, err = mr.Submit(m, MatchGuess{Brand: "BMW", Model: "M3"}, testNow)
	require.NoError(t, err)
	assert.Equal(t, 30, out.Points)
	assert.True(t, out.Attempt.BrandCorrect)
	assert.Equal(t, 30, m.Players[1].Score)
	assert.Equal(t, 0, m.CurrentPlayerIndex)
}

func TestSubmit_RoundAdvanceAndStarters(t *testing.T) {
	mr := testMatchRules()
	m := newTestMatch(t, mr)

	out, err := mr.Submit(m, MatchGuess{Brand: "BMW", Model: "M3", Year: "1995"}, testNow)
	require.NoError(t, err)
	assert.True(t, out.RoundComplete)
	assert.Equal(t, 70, out.Points)
	assert.Equal(t, 1, m.RoundIndex)
	assert.Equal(t, 1, m.CurrentPlayerIndex)
	assert.Empty(t, m.Rounds[1].FailedAttempts)
	assert.Zero(t, m.Rounds[1].ImageIndex)

	_, err = mr.Submit(m, MatchGuess{Brand: "Audi"}, testNow.Add(100*time.Millisecond))
	assert.ErrorIs(t, err, ErrLocked)

	at := testNow.Add(time.Second)
	_, err = mr.Submit(m, MatchGuess{Brand: "Audi", Model: "Quattro", Year: "1980"}, at)
	require.NoError(t, err)
	assert.Equal(t, 2, m.RoundIndex)
	assert.Equal(t, 70, m.Players[1].Score)
	// level scores fall back to the tiebreak
	assert.Equal(t, 1, m.CurrentPlayerIndex)
}

func TestSubmit_RestrictedRoundIgnoresBrand(t *testing.T) {
	mr := testMatchRules()
	m := newTestMatch(t, mr)
	m.RoundIndex = 2
	m.CurrentPlayerIndex = 0

	out, err := mr.Submit(m, MatchGuess{Brand: "", Model: "delta", Year: "1987"}, testNow)
	require.NoError(t, err)
	assert.True(t, out.RoundComplete)
	assert.True(t, out.Finished)
	assert.True(t, m.Finished)
	assert.Equal(t, 60, m.Players[0].Score)

	_, err = mr.Submit(m, MatchGuess{Model: "Delta"}, testNow.Add(time.Minute))
	assert.ErrorIs(t, err, ErrMatchFinished)
}

func TestSubmit_EmptyGuess(t *testing.T) {
	mr := testMatchRules()
	m := newTestMatch(t, mr)
	m.RoundIndex = 2

	_, err := mr.Submit(m, MatchGuess{Brand: "Lancia"}, testNow)
	assert.ErrorIs(t, err, ErrEmptyGuess)
	assert.Equal(t, 0, m.CurrentPlayerIndex)
}

func TestSubmit_DecorativePartialNeverScores(t *testing.T) {
	mr := testMatchRules()
	m := newTestMatch(t, mr)
	m.Rounds[0].Vehicle.Model = "Golf GTI"

	out, err := mr.Submit(m, MatchGuess{Model: "golf"}, testNow)
	require.NoError(t, err)
	assert.Zero(t, out.Points)
	assert.True(t, out.Attempt.ModelPartial)
	assert.False(t, out.Attempt.ModelCorrect)
	assert.False(t, m.Rounds[0].Guessed[models.FieldModel])
}

func TestStartingPlayer_Leader(t *testing.T) {
	mr := testMatchRules()
	players := [2]models.Player{{Score: 40}, {Score: 10}}
	assert.Equal(t, 0, mr.StartingPlayer(0, players))
	assert.Equal(t, 1, mr.StartingPlayer(1, players))
	assert.Equal(t, 0, mr.StartingPlayer(2, players))

	players[1].Score = 70
	assert.Equal(t, 1, mr.StartingPlayer(2, players))

	players[0].Score = 70
	assert.Equal(t, 1, mr.StartingPlayer(2, players))
}

func TestWinners_Tie(t *testing.T) {
	m := &models.MultiplayerMatch{Players: [2]models.Player{{Score: 40}, {Score: 40}}}
	assert.Equal(t, []int{0, 1}, m.Winners())
	m.Players[1].Score = 10
	assert.Equal(t, []int{0}, m.Winners())
}
