package game

import "carhoot/internal/models"

// HintPolicy unlocks text hints at Threshold misses in a stage, showing the first
// letter, and reveals one more letter every Step misses after that.
type HintPolicy struct {
	Threshold int
	Step      int
}

func (h HintPolicy) Available(errorsInStage int) bool {
	return h.Threshold > 0 && errorsInStage >= h.Threshold
}

// Revealed is the number of letters shown for a given miss count in the stage.
func (h HintPolicy) Revealed(errorsInStage int) int {
	if !h.Available(errorsInStage) || h.Step <= 0 {
		return 0
	}
	return (errorsInStage-h.Threshold)/h.Step + 1
}

// UntilNext is how many more misses unlock the next letter.
func (h HintPolicy) UntilNext(errorsInStage int) int {
	if h.Step <= 0 {
		return 0
	}
	if !h.Available(errorsInStage) {
		return h.Threshold - errorsInStage
	}
	return h.Step - (errorsInStage-h.Threshold)%h.Step
}

// Allows reports whether the field can carry a text hint at all.
func (h HintPolicy) Allows(field models.Field) bool {
	return field == models.FieldBrand || field == models.FieldModel
}

// RevealPrefix returns the first n runes of truth, always leaving at least one
// rune hidden.
func RevealPrefix(truth string, n int) string {
	r := []rune(truth)
	n = min(n, len(r)-1)
	if n <= 0 {
		return ""
	}
	return string(r[:n])
}
