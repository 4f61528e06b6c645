package models

import (
	"errors"
	"fmt"
	"time"
)

var ErrMalformedProgress = errors.New("malformed progress record")

type Mode string

const (
	ModeNormal      Mode = "normal"
	ModeLimited     Mode = "limited"
	ModeMultiplayer Mode = "multiplayer"
)

// PersistedModes lists the modes whose progress is stored per day.
var PersistedModes = []Mode{ModeNormal, ModeLimited}

// ParseMode maps a request value to a single-player mode. Empty means normal.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case "", ModeNormal:
		return ModeNormal, true
	case ModeLimited:
		return ModeLimited, true
	default:
		return "", false
	}
}

type Field string

const (
	FieldBrand Field = "brand"
	FieldModel Field = "model"
	FieldYear  Field = "year"
)

type Stage int

const (
	StageBrand Stage = 1
	StageModel Stage = 2
	StageYear  Stage = 3
)

type Resolution string

const (
	ResolutionNone      Resolution = ""
	ResolutionContinued Resolution = "continued"
	ResolutionRevealed  Resolution = "revealed"
)

// Actions offered to a player who ran out of attempts.
const (
	ActionContinue = "continue"
	ActionReveal   = "reveal"
)

func ParseResolution(action string) (Resolution, bool) {
	switch action {
	case ActionContinue:
		return ResolutionContinued, true
	case ActionReveal:
		return ResolutionRevealed, true
	default:
		return ResolutionNone, false
	}
}

type FailedAttempts struct {
	Brand []string `json:"brand"`
	Model []string `json:"model"`
	Year  []string `json:"year"`
}

func NewFailedAttempts() FailedAttempts {
	return FailedAttempts{Brand: []string{}, Model: []string{}, Year: []string{}}
}

func (f *FailedAttempts) Append(field Field, value string) {
	switch field {
	case FieldBrand:
		f.Brand = append(f.Brand, value)
	case FieldModel:
		f.Model = append(f.Model, value)
	case FieldYear:
		f.Year = append(f.Year, value)
	}
}

func (f FailedAttempts) For(field Field) []string {
	switch field {
	case FieldBrand:
		return f.Brand
	case FieldModel:
		return f.Model
	case FieldYear:
		return f.Year
	default:
		return nil
	}
}

func (f FailedAttempts) Total() int {
	return len(f.Brand) + len(f.Model) + len(f.Year)
}

func (f FailedAttempts) Clone() FailedAttempts {
	return FailedAttempts{
		Brand: append([]string{}, f.Brand...),
		Model: append([]string{}, f.Model...),
		Year:  append([]string{}, f.Year...),
	}
}

// DailyProgress is the per-day, per-vehicle state of a single-player puzzle.
// Mode tags which variant the record belongs to.
type DailyProgress struct {
	Date                  string         `json:"date"`
	VehicleID             string         `json:"vehicleId"`
	Mode                  Mode           `json:"mode"`
	Stage                 Stage          `json:"stage"`
	FailedAttempts        FailedAttempts `json:"failedAttempts"`
	ErrorCountInStage     int            `json:"errorCountInStage"`
	MaxUnlockedImageIndex int            `json:"maxUnlockedImageIndex"`
	CurrentImageIndex     int            `json:"currentImageIndex"`
	RevealedLetterCount   int            `json:"revealedLetterCount"`
	IsCompleted           bool           `json:"isCompleted"`
	GaveUp                bool           `json:"gaveUp"`
	Resolution            Resolution     `json:"resolution,omitempty"`
	TotalAttemptsUsed     int            `json:"totalAttemptsUsed"`
	TotalAttempts         int            `json:"totalAttempts,omitempty"`
	LockedUntil           time.Time      `json:"lockedUntil"`
	StartedAt             time.Time      `json:"startedAt"`
}

func NewDailyProgress(date, vehicleID string, mode Mode) *DailyProgress {
	return &DailyProgress{
		Date:           date,
		VehicleID:      vehicleID,
		Mode:           mode,
		Stage:          StageBrand,
		FailedAttempts: NewFailedAttempts(),
	}
}

func (p *DailyProgress) Clone() *DailyProgress {
	c := *p
	c.FailedAttempts = p.FailedAttempts.Clone()
	return &c
}

func (p *DailyProgress) Locked(now time.Time) bool {
	return !p.LockedUntil.IsZero() && now.Before(p.LockedUntil)
}

// Repair validates a record read back from storage. Records that cannot belong to
// any puzzle are rejected; out of range counters are clamped.
func (p *DailyProgress) Repair() error {
	if p.Date == "" || p.VehicleID == "" {
		return fmt.Errorf("%w: missing date or vehicle", ErrMalformedProgress)
	}
	if p.Mode != ModeNormal && p.Mode != ModeLimited {
		return fmt.Errorf("%w: unexpected mode %q", ErrMalformedProgress, p.Mode)
	}
	switch p.Resolution {
	case ResolutionNone, ResolutionContinued, ResolutionRevealed:
	default:
		return fmt.Errorf("%w: unexpected resolution %q", ErrMalformedProgress, p.Resolution)
	}

	p.Stage = min(max(p.Stage, StageBrand), StageYear)
	if p.FailedAttempts.Brand == nil {
		p.FailedAttempts.Brand = []string{}
	}
	if p.FailedAttempts.Model == nil {
		p.FailedAttempts.Model = []string{}
	}
	if p.FailedAttempts.Year == nil {
		p.FailedAttempts.Year = []string{}
	}
	p.ErrorCountInStage = max(p.ErrorCountInStage, 0)
	p.RevealedLetterCount = max(p.RevealedLetterCount, 0)

	ceiling := MaxGuessImageIndex
	if p.IsCompleted {
		ceiling = RevealImageIndex
	}
	p.MaxUnlockedImageIndex = min(max(p.MaxUnlockedImageIndex, 0), ceiling)
	p.CurrentImageIndex = min(max(p.CurrentImageIndex, 0), p.MaxUnlockedImageIndex)
	p.TotalAttemptsUsed = max(p.TotalAttemptsUsed, p.FailedAttempts.Total())
	p.TotalAttempts = max(p.TotalAttempts, 0)
	return nil
}

// AttemptCounter is the day-scoped failure count shared by every mode. Each mode
// contributes its own high-water mark so that a stale write cannot lower the total.
// Carried holds the failures of records that were reset during the day.
type AttemptCounter struct {
	Date    string       `json:"date"`
	PerMode map[Mode]int `json:"perMode"`
	Carried int          `json:"carried"`
}

func NewAttemptCounter(date string) *AttemptCounter {
	return &AttemptCounter{Date: date, PerMode: make(map[Mode]int)}
}

// Raise records n failures for mode and reports whether the counter changed.
func (c *AttemptCounter) Raise(mode Mode, n int) bool {
	if n <= c.PerMode[mode] {
		return false
	}
	c.PerMode[mode] = n
	return true
}

// Carry moves the failures of mode out of its high-water mark, so a fresh record
// for that mode starts counting from zero without lowering the total.
func (c *AttemptCounter) Carry(mode Mode) bool {
	n := c.PerMode[mode]
	if n <= 0 {
		return false
	}
	c.Carried += n
	delete(c.PerMode, mode)
	return true
}

func (c *AttemptCounter) Total() int {
	total := max(c.Carried, 0)
	for _, n := range c.PerMode {
		total += max(n, 0)
	}
	return total
}
