package game

import "carhoot/internal/models"

// ScoringPolicy decides what a correct field is worth.
type ScoringPolicy interface {
	Points(field models.Field) int
}

// PassFail scores nothing; single-player modes only track progress.
type PassFail struct{}

func (PassFail) Points(models.Field) int { return 0 }

type FieldPoints map[models.Field]int

func (p FieldPoints) Points(field models.Field) int { return p[field] }

func DefaultMatchPoints() FieldPoints {
	return FieldPoints{
		models.FieldBrand: 10,
		models.FieldModel: 30,
		models.FieldYear:  30,
	}
}
