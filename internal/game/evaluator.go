package game

import (
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"strconv"
	"strings"
	"unicode"
)

// MinYear is the first year a production car could have been built.
const MinYear = 1886

// Year distance classes used for feedback styling only.
const (
	BandNear    = "near"
	BandMid     = "mid"
	BandFar     = "far"
	BandVeryFar = "very-far"
)

const (
	minFragment  = 3
	maxYearDigit = 4
)

// NormalizeText folds case and strips combining marks so accented names compare equal.
func NormalizeText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	// transform.Chain keeps state, so a fresh chain is built per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

func MatchesText(input, truth string) bool {
	in := NormalizeText(input)
	if in == "" {
		return false
	}
	return in == NormalizeText(truth)
}

// ParseYear accepts only plain digit strings inside [MinYear, currentYear+1].
func ParseYear(input string, currentYear int) (int, bool) {
	if input == "" || len(input) > maxYearDigit {
		return 0, false
	}
	for _, r := range input {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	y, err := strconv.Atoi(input)
	if err != nil || y < MinYear || y > currentYear+1 {
		return 0, false
	}
	return y, true
}

func MatchesYear(input string, truth, currentYear int) bool {
	y, ok := ParseYear(input, currentYear)
	return ok && y == truth
}

func YearDistanceBand(guessed, truth int) string {
	d := guessed - truth
	if d < 0 {
		d = -d
	}
	switch {
	case d <= 2:
		return BandNear
	case d <= 5:
		return BandMid
	case d <= 9:
		return BandFar
	default:
		return BandVeryFar
	}
}

// BandForAttempt returns the distance class of a recorded year attempt, or "" when
// the attempt was not a usable year.
func BandForAttempt(input string, truth, currentYear int) string {
	y, ok := ParseYear(input, currentYear)
	if !ok {
		return ""
	}
	return YearDistanceBand(y, truth)
}

// CommonFragment reports whether a wrong guess shares a word of at least three
// letters with the truth. It is a highlight hint and never a correct answer.
func CommonFragment(input, truth string) bool {
	in, tr := NormalizeText(input), NormalizeText(truth)
	if in == "" || tr == "" || in == tr {
		return false
	}
	words := strings.FieldsFunc(tr, splitWord)
	for _, w := range strings.FieldsFunc(in, splitWord) {
		if len([]rune(w)) < minFragment {
			continue
		}
		for _, t := range words {
			if strings.Contains(t, w) || (len([]rune(t)) >= minFragment && strings.Contains(w, t)) {
				return true
			}
		}
	}
	return false
}

func splitWord(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
