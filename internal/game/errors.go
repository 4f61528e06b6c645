package game

import "errors"

var (
	ErrPuzzleCompleted = errors.New("puzzle already completed")
	ErrLocked          = errors.New("transition pending")
	ErrOutOfAttempts   = errors.New("no attempts left today")
	ErrHintUnavailable = errors.New("hint unavailable")
	ErrEmptyGuess      = errors.New("empty guess")
	ErrNotExhausted    = errors.New("attempts not exhausted")
	ErrAlreadyResolved = errors.New("puzzle already resolved")
	ErrMatchFinished   = errors.New("match finished")
	ErrMatchNotFound   = errors.New("match not found")
	ErrCatalogEmpty    = errors.New("no vehicle available")
	ErrBadPlayers      = errors.New("two distinct player names are required")
	ErrBadResolution   = errors.New("unknown resolution")
)
