package game

import (
	"carhoot/internal/models"
	"carhoot/internal/structures"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func testRules() *Rules {
	return NewRules(&structures.Config{
		Game: structures.GameConfig{
			AttemptBudget:   9,
			HintThreshold:   5,
			HintStep:        3,
			TransitionDelay: 800 * time.Millisecond,
		},
	})
}

func testVehicle() *models.Vehicle {
	return &models.Vehicle{
		ID:              "v1",
		Brand:           "BMW",
		Model:           "M3",
		ManufactureYear: 1995,
		Images:          []string{"0.jpg", "1.jpg", "2.jpg", "3.jpg", "4.jpg"},
		ScheduledDate:   "2026-03-14",
	}
}

func fresh(mode models.Mode) *models.DailyProgress {
	return models.NewDailyProgress("2026-03-14", "v1", mode)
}

func TestGuess_WrongBrand(t *testing.T) {
	r := testRules()
	p := fresh(models.ModeNormal)

	out, err := r.Guess(p, testVehicle(), "Audi", testNow)
	require.NoError(t, err)
	assert.False(t, out.Correct)
	assert.Equal(t, []string{"Audi"}, p.FailedAttempts.Brand)
	assert.Equal(t, 1, p.ErrorCountInStage)
	assert.Equal(t, 1, p.MaxUnlockedImageIndex)
	assert.Equal(t, 1, p.CurrentImageIndex)
	assert.Equal(t, models.StageBrand, p.Stage)
	assert.Equal(t, 1, p.TotalAttemptsUsed)
	assert.Equal(t, testNow, p.StartedAt)
}

func TestGuess_CorrectBrandAdvances(t *testing.T) {
	r := testRules()
	p := fresh(models.ModeNormal)
	p.ErrorCountInStage = 6
	p.RevealedLetterCount = 1

	out, err := r.Guess(p, testVehicle(), "bmw", testNow)
	require.NoError(t, err)
	assert.True(t, out.Correct)
	assert.Equal(t, models.StageModel, p.Stage)
	assert.Zero(t, p.ErrorCountInStage)
	assert.Zero(t, p.RevealedLetterCount)
	assert.Equal(t, testNow.Add(800*time.Millisecond), p.LockedUntil)
}

func TestGuess_LockedDuringTransition(t *testing.T) {
	r := testRules()
	p := fresh(models.ModeNormal)
	_, err := r.Guess(p, testVehicle(), "BMW", testNow)
	require.NoError(t, err)

	_, err = r.Guess(p, testVehicle(), "M3", testNow.Add(100*time.Millisecond))
	assert.ErrorIs(t, err, ErrLocked)
	assert.Empty(t, p.FailedAttempts.Model)

	out, err := r.Guess(p, testVehicle(), "M3", testNow.Add(time.Second))
	require.NoError(t, err)
	assert.True(t, out.Correct)
	assert.Equal(t, models.StageYear, p.Stage)
}

func TestGuess_FullSolveUnlocksReveal(t *testing.T) {
	r := testRules()
	p := fresh(models.ModeNormal)
	v := testVehicle()
	at := testNow
	for _, in := range []string{"BMW", "M3", "1995"} {
		_, err := r.Guess(p, v, in, at)
		require.NoError(t, err)
		at = at.Add(time.Second)
	}
	assert.True(t, p.IsCompleted)
	assert.False(t, p.GaveUp)
	assert.Equal(t, models.RevealImageIndex, p.MaxUnlockedImageIndex)

	_, err := r.Guess(p, v, "BMW", at)
	assert.ErrorIs(t, err, ErrPuzzleCompleted)
}

func TestGuess_ImageIndexCapped(t *testing.T) {
	r := testRules()
	p := fresh(models.ModeNormal)
	for i := 0; i < 6; i++ {
		_, err := r.Guess(p, testVehicle(), "Audi", testNow)
		require.NoError(t, err)
	}
	assert.Equal(t, models.MaxGuessImageIndex, p.MaxUnlockedImageIndex)
	assert.Equal(t, 6, p.TotalAttemptsUsed)
}

func TestGuess_EmptyInputIgnored(t *testing.T) {
	r := testRules()
	p := fresh(models.ModeNormal)
	_, err := r.Guess(p, testVehicle(), "  ", testNow)
	assert.ErrorIs(t, err, ErrEmptyGuess)
	assert.Zero(t, p.TotalAttemptsUsed)
}

func TestGuess_InvalidYearIsAMiss(t *testing.T) {
	r := testRules()
	p := fresh(models.ModeNormal)
	p.Stage = models.StageYear

	out, err := r.Guess(p, testVehicle(), "nineteen", testNow)
	require.NoError(t, err)
	assert.False(t, out.Correct)
	assert.Equal(t, []string{"nineteen"}, p.FailedAttempts.Year)
	assert.Empty(t, out.YearBand)

	out, err = r.Guess(p, testVehicle(), "1999", testNow)
	require.NoError(t, err)
	assert.Equal(t, BandMid, out.YearBand)
}

func TestGuess_LimitedBudgetExhausted(t *testing.T) {
	r := testRules()
	p := fresh(models.ModeLimited)
	p.TotalAttemptsUsed = 9

	assert.Zero(t, r.Remaining(p))
	assert.True(t, r.Exhausted(p))
	_, err := r.Guess(p, testVehicle(), "BMW", testNow)
	assert.ErrorIs(t, err, ErrOutOfAttempts)
}

func TestGuess_LimitedCountsDown(t *testing.T) {
	r := testRules()
	p := fresh(models.ModeLimited)
	p.TotalAttemptsUsed = 7

	_, err := r.Guess(p, testVehicle(), "Audi", testNow)
	require.NoError(t, err)
	assert.Equal(t, 1, p.TotalAttempts)
}

func TestGuess_NormalModeIgnoresBudget(t *testing.T) {
	r := testRules()
	p := fresh(models.ModeNormal)
	p.TotalAttemptsUsed = 20

	_, err := r.Guess(p, testVehicle(), "Audi", testNow)
	assert.NoError(t, err)
}

func TestHint_UnlocksAfterThreshold(t *testing.T) {
	r := testRules()
	p := fresh(models.ModeNormal)
	v := &models.Vehicle{ID: "v1", Brand: "Lamborghini", Model: "Miura", ManufactureYear: 1966}

	for i := 1; i <= 4; i++ {
		_, err := r.Guess(p, v, "Audi", testNow)
		require.NoError(t, err)
	}
	_, err := r.Hint(p, v)
	assert.ErrorIs(t, err, ErrHintUnavailable)

	_, err = r.Guess(p, v, "Audi", testNow)
	require.NoError(t, err)
	hint, err := r.Hint(p, v)
	require.NoError(t, err)
	assert.Equal(t, models.FieldBrand, hint.Field)
	assert.Equal(t, 1, p.RevealedLetterCount)
	assert.Equal(t, "L", hint.RevealedText)
	assert.Equal(t, 3, hint.UntilNextLetter)

	for i := 6; i <= 8; i++ {
		_, err = r.Guess(p, v, "Audi", testNow)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, p.RevealedLetterCount)
	hint, err = r.Hint(p, v)
	require.NoError(t, err)
	assert.Equal(t, "La", hint.RevealedText)

	for i := 9; i <= 11; i++ {
		_, err = r.Guess(p, v, "Audi", testNow)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, p.RevealedLetterCount)
}

func TestHintPolicy_LetterSchedule(t *testing.T) {
	h := HintPolicy{Threshold: 5, Step: 3}
	tests := []struct {
		misses    int
		revealed  int
		untilNext int
	}{
		{0, 0, 5},
		{4, 0, 1},
		{5, 1, 3},
		{7, 1, 1},
		{8, 2, 3},
		{11, 3, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.revealed, h.Revealed(tt.misses), "revealed at %d misses", tt.misses)
		assert.Equal(t, tt.untilNext, h.UntilNext(tt.misses), "until next at %d misses", tt.misses)
	}
}

func TestHint_OutOfAttempts(t *testing.T) {
	r := testRules()
	p := fresh(models.ModeLimited)
	p.ErrorCountInStage = 9
	p.TotalAttemptsUsed = 9

	_, err := r.Hint(p, testVehicle())
	assert.ErrorIs(t, err, ErrOutOfAttempts)
}

func TestHint_NotInYearStage(t *testing.T) {
	r := testRules()
	p := fresh(models.ModeNormal)
	p.Stage = models.StageYear
	p.ErrorCountInStage = 9

	_, err := r.Hint(p, testVehicle())
	assert.ErrorIs(t, err, ErrHintUnavailable)
}

func TestRevealPrefix_StrictPrefix(t *testing.T) {
	assert.Equal(t, "M", RevealPrefix("M3", 5))
	assert.Equal(t, "Cit", RevealPrefix("Citroën", 3))
	assert.Equal(t, "", RevealPrefix("A", 1))
	assert.Equal(t, "", RevealPrefix("BMW", 0))
}

func TestResolve_Continue(t *testing.T) {
	r := testRules()
	p := fresh(models.ModeLimited)
	p.TotalAttemptsUsed = 9

	require.NoError(t, r.Resolve(p, models.ResolutionContinued))
	assert.Equal(t, models.ResolutionContinued, p.Resolution)
	assert.False(t, p.IsCompleted)

	assert.ErrorIs(t, r.Resolve(p, models.ResolutionRevealed), ErrAlreadyResolved)
	_, err := r.Guess(p, testVehicle(), "BMW", testNow)
	assert.ErrorIs(t, err, ErrOutOfAttempts)
}

func TestResolve_Reveal(t *testing.T) {
	r := testRules()
	p := fresh(models.ModeLimited)
	p.TotalAttemptsUsed = 9

	require.NoError(t, r.Resolve(p, models.ResolutionRevealed))
	assert.True(t, p.IsCompleted)
	assert.True(t, p.GaveUp)
	assert.Equal(t, models.RevealImageIndex, p.CurrentImageIndex)
	assert.ErrorIs(t, r.Resolve(p, models.ResolutionContinued), ErrPuzzleCompleted)
}

func TestResolve_RequiresExhaustion(t *testing.T) {
	r := testRules()
	p := fresh(models.ModeLimited)
	p.TotalAttemptsUsed = 3
	assert.ErrorIs(t, r.Resolve(p, models.ResolutionRevealed), ErrNotExhausted)

	p.TotalAttemptsUsed = 9
	assert.ErrorIs(t, r.Resolve(p, models.Resolution("skip")), ErrBadResolution)
}
