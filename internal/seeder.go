package internal

import (
	"carhoot/internal/models"
	"carhoot/internal/providers"
	"carhoot/internal/services"
	"context"
	"errors"
	"fmt"
	json "github.com/goccy/go-json"
	"io"
	"os"
)

// Seeder loads catalog entries from a JSON array file. Entries with a known id
// are updated in place, the others are created.
type Seeder struct {
	catalog services.CatalogServiceInterface
	logger  providers.Logger
}

type SeedReport struct {
	Created int
	Updated int
}

func NewSeeder(catalog services.CatalogServiceInterface, logger providers.Logger) *Seeder {
	return &Seeder{catalog: catalog, logger: logger}
}

func (s *Seeder) SeedFile(ctx context.Context, path string) (SeedReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return SeedReport{}, err
	}
	defer f.Close()
	return s.Seed(ctx, f)
}

func (s *Seeder) Seed(ctx context.Context, r io.Reader) (SeedReport, error) {
	var vehicles []models.Vehicle
	if err := json.NewDecoder(r).Decode(&vehicles); err != nil {
		return SeedReport{}, fmt.Errorf("decode vehicles: %w", err)
	}

	var report SeedReport
	for i := range vehicles {
		v := &vehicles[i]
		if v.ID != "" {
			err := s.catalog.Update(ctx, v.ID, v)
			if err == nil {
				report.Updated++
				continue
			}
			if !errors.Is(err, services.ErrVehicleNotFound) {
				return report, fmt.Errorf("vehicle %d: %w", i, err)
			}
		}
		if _, err := s.catalog.Create(ctx, v); err != nil {
			return report, fmt.Errorf("vehicle %d: %w", i, err)
		}
		report.Created++
	}
	s.logger.Infof(providers.TypeApp, "Seeded catalog: %d created, %d updated", report.Created, report.Updated)
	return report, nil
}
