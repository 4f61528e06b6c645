package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	// MaxGuessImageIndex is the last image shown while a puzzle is still being guessed.
	MaxGuessImageIndex = 3
	// RevealImageIndex is reserved for the image shown once the puzzle is over.
	RevealImageIndex = 4
	MaxImages        = 5
)

type Vehicle struct {
	ID              string                      `gorm:"primaryKey;size:36" json:"id"`
	Brand           string                      `gorm:"size:128;not null" json:"brand"`
	Model           string                      `gorm:"size:128;not null" json:"model"`
	ManufactureYear int                         `gorm:"not null" json:"manufactureYear"`
	Images          datatypes.JSONSlice[string] `json:"images"`
	ScheduledDate   string                      `gorm:"size:10;index" json:"scheduledDate"`
	CreatedAt       time.Time                   `json:"-"`
	UpdatedAt       time.Time                   `json:"-"`
}

func (v *Vehicle) BeforeCreate(_ *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// VisibleImages returns the images unlocked up to maxIndex. The reveal image is
// only included once the puzzle is over.
func (v *Vehicle) VisibleImages(maxIndex int, completed bool) []string {
	if len(v.Images) == 0 {
		return []string{}
	}
	limit := min(maxIndex, MaxGuessImageIndex)
	if completed {
		limit = RevealImageIndex
	}
	limit = min(limit, len(v.Images)-1)
	if limit < 0 {
		return []string{}
	}
	out := make([]string, limit+1)
	copy(out, v.Images[:limit+1])
	return out
}

// Value returns the true answer for a guessable field.
func (v *Vehicle) Value(field Field) string {
	switch field {
	case FieldBrand:
		return v.Brand
	case FieldModel:
		return v.Model
	default:
		return ""
	}
}
