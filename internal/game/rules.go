package game

import (
	"carhoot/internal/models"
	"carhoot/internal/structures"
	"strings"
	"time"
)

// Rules is the single-player state machine. Normal and limited modes share it and
// differ only by the attempt budget check.
type Rules struct {
	Sequence        StageSequence
	Scoring         ScoringPolicy
	Hints           HintPolicy
	AttemptBudget   int
	TransitionDelay time.Duration
}

func NewRules(conf *structures.Config) *Rules {
	return &Rules{
		Sequence:        FullSequence,
		Scoring:         PassFail{},
		Hints:           HintPolicy{Threshold: conf.Game.HintThreshold, Step: conf.Game.HintStep},
		AttemptBudget:   conf.Game.AttemptBudget,
		TransitionDelay: conf.Game.TransitionDelay,
	}
}

// Outcome describes how one guess changed the puzzle.
type Outcome struct {
	Field     models.Field `json:"field"`
	Correct   bool         `json:"correct"`
	Completed bool         `json:"completed"`
	YearBand  string       `json:"yearBand,omitempty"`
}

// Remaining is the limited-mode budget left once every mode's misses are counted.
func (r *Rules) Remaining(p *models.DailyProgress) int {
	return max(0, r.AttemptBudget-p.TotalAttemptsUsed)
}

// Exhausted reports the terminal out-of-attempts state of a limited puzzle.
func (r *Rules) Exhausted(p *models.DailyProgress) bool {
	return p.Mode == models.ModeLimited && !p.IsCompleted && r.Remaining(p) == 0
}

// Guess applies input to the active stage. The progress is mutated in place; on
// error it is left untouched.
func (r *Rules) Guess(p *models.DailyProgress, v *models.Vehicle, input string, now time.Time) (Outcome, error) {
	if p.IsCompleted {
		return Outcome{}, ErrPuzzleCompleted
	}
	if p.Locked(now) {
		return Outcome{}, ErrLocked
	}
	if r.Exhausted(p) {
		return Outcome{}, ErrOutOfAttempts
	}
	if strings.TrimSpace(input) == "" {
		return Outcome{}, ErrEmptyGuess
	}
	field, ok := r.Sequence.FieldAt(p.Stage)
	if !ok {
		return Outcome{}, ErrPuzzleCompleted
	}

	if p.StartedAt.IsZero() {
		p.StartedAt = now
	}
	out := Outcome{Field: field}

	if r.judge(field, input, v, now.Year()) {
		out.Correct = true
		p.ErrorCountInStage = 0
		p.RevealedLetterCount = 0
		if p.Stage >= r.Sequence.Last() {
			p.IsCompleted = true
			p.MaxUnlockedImageIndex = models.RevealImageIndex
			p.CurrentImageIndex = models.RevealImageIndex
			p.LockedUntil = time.Time{}
			out.Completed = true
		} else {
			p.Stage++
			p.LockedUntil = now.Add(r.TransitionDelay)
		}
		r.refreshRemaining(p)
		return out, nil
	}

	p.FailedAttempts.Append(field, input)
	p.ErrorCountInStage++
	p.TotalAttemptsUsed++
	p.MaxUnlockedImageIndex = min(p.MaxUnlockedImageIndex+1, models.MaxGuessImageIndex)
	p.CurrentImageIndex = p.MaxUnlockedImageIndex
	if r.Hints.Allows(field) {
		p.RevealedLetterCount = r.Hints.Revealed(p.ErrorCountInStage)
	}
	if field == models.FieldYear {
		out.YearBand = BandForAttempt(input, v.ManufactureYear, now.Year())
	}
	r.refreshRemaining(p)
	return out, nil
}

func (r *Rules) judge(field models.Field, input string, v *models.Vehicle, currentYear int) bool {
	if field == models.FieldYear {
		return MatchesYear(input, v.ManufactureYear, currentYear)
	}
	return MatchesText(input, v.Value(field))
}

func (r *Rules) refreshRemaining(p *models.DailyProgress) {
	if p.Mode == models.ModeLimited {
		p.TotalAttempts = r.Remaining(p)
	}
}

// Hint returns the text hint of the active stage.
func (r *Rules) Hint(p *models.DailyProgress, v *models.Vehicle) (models.HintView, error) {
	if p.IsCompleted {
		return models.HintView{}, ErrPuzzleCompleted
	}
	if r.Exhausted(p) {
		return models.HintView{}, ErrOutOfAttempts
	}
	field, ok := r.Sequence.FieldAt(p.Stage)
	if !ok || !r.Hints.Allows(field) || !r.Hints.Available(p.ErrorCountInStage) {
		return models.HintView{}, ErrHintUnavailable
	}
	text := RevealPrefix(v.Value(field), p.RevealedLetterCount)
	return models.HintView{
		Field:           field,
		RevealedText:    text,
		RevealedLetters: len([]rune(text)),
		UntilNextLetter: r.Hints.UntilNext(p.ErrorCountInStage),
	}, nil
}

// Resolve closes an exhausted limited puzzle. Both resolutions are final for the day.
func (r *Rules) Resolve(p *models.DailyProgress, res models.Resolution) error {
	if p.IsCompleted {
		return ErrPuzzleCompleted
	}
	if p.Resolution != models.ResolutionNone {
		return ErrAlreadyResolved
	}
	if !r.Exhausted(p) {
		return ErrNotExhausted
	}
	switch res {
	case models.ResolutionContinued:
		p.Resolution = models.ResolutionContinued
	case models.ResolutionRevealed:
		p.Resolution = models.ResolutionRevealed
		p.IsCompleted = true
		p.GaveUp = true
		p.MaxUnlockedImageIndex = models.RevealImageIndex
		p.CurrentImageIndex = models.RevealImageIndex
		p.LockedUntil = time.Time{}
	default:
		return ErrBadResolution
	}
	return nil
}
