package game

import (
	"carhoot/internal/models"
	"github.com/samber/lo"
)

// StageSequence is the ordered list of fields a player has to find.
type StageSequence []models.Field

var (
	FullSequence       = StageSequence{models.FieldBrand, models.FieldModel, models.FieldYear}
	RestrictedSequence = StageSequence{models.FieldModel, models.FieldYear}
)

// FieldAt maps a 1-based stage to its field.
func (s StageSequence) FieldAt(stage models.Stage) (models.Field, bool) {
	i := int(stage) - 1
	if i < 0 || i >= len(s) {
		return "", false
	}
	return s[i], true
}

func (s StageSequence) Contains(f models.Field) bool {
	return lo.Contains(s, f)
}

func (s StageSequence) Last() models.Stage {
	return models.Stage(len(s))
}

// Clone keeps rounds from sharing the package level slices.
func (s StageSequence) Clone() []models.Field {
	return append([]models.Field{}, s...)
}
