package services

import (
	"carhoot/internal/game"
	"carhoot/internal/models"
	"carhoot/internal/providers"
	"context"
	"errors"
	"fmt"
	json "github.com/goccy/go-json"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"strings"
	"time"
)

const catalogCacheKey = "vehicles:list"

var (
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrInvalidVehicle  = errors.New("invalid vehicle")
)

type CatalogServiceInterface interface {
	List(ctx context.Context) ([]models.Vehicle, error)
	Get(ctx context.Context, id string) (*models.Vehicle, error)
	Create(ctx context.Context, v *models.Vehicle) (string, error)
	Update(ctx context.Context, id string, v *models.Vehicle) error
	Delete(ctx context.Context, id string) error
	ScheduledOn(ctx context.Context, date string) ([]models.Vehicle, error)
	Today(ctx context.Context) (*models.Vehicle, error)
}

type CatalogService struct {
	db     *gorm.DB
	cache  providers.CacheProviderInterface
	clock  providers.ClockInterface
	logger providers.Logger
}

func NewCatalogService(db *gorm.DB, cache providers.CacheProviderInterface, clock providers.ClockInterface, logger providers.Logger) CatalogServiceInterface {
	return &CatalogService{
		db:     db,
		cache:  cache,
		clock:  clock,
		logger: logger,
	}
}

// List returns the whole catalog ordered by schedule. The result is cached until
// the next write.
func (cs *CatalogService) List(ctx context.Context) ([]models.Vehicle, error) {
	if data, ok := cs.cache.Get(catalogCacheKey); ok {
		var cached []models.Vehicle
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
		cs.cache.Del(catalogCacheKey)
	}

	var vehicles []models.Vehicle
	err := cs.db.WithContext(ctx).Order("scheduled_date asc, created_at asc").Find(&vehicles).Error
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}

	if data, err := json.Marshal(vehicles); err == nil {
		cs.cache.Set(catalogCacheKey, data)
	}
	return vehicles, nil
}

func (cs *CatalogService) Get(ctx context.Context, id string) (*models.Vehicle, error) {
	var v models.Vehicle
	err := cs.db.WithContext(ctx).First(&v, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVehicleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get vehicle %s: %w", id, err)
	}
	return &v, nil
}

func (cs *CatalogService) Create(ctx context.Context, v *models.Vehicle) (string, error) {
	if err := cs.validate(v); err != nil {
		return "", err
	}
	if err := cs.db.WithContext(ctx).Create(v).Error; err != nil {
		return "", fmt.Errorf("create vehicle: %w", err)
	}
	cs.cache.Del(catalogCacheKey)
	cs.logger.Infof(providers.TypeApp, "Vehicle %s %s scheduled on %s", v.Brand, v.Model, v.ScheduledDate)
	return v.ID, nil
}

func (cs *CatalogService) Update(ctx context.Context, id string, v *models.Vehicle) error {
	if err := cs.validate(v); err != nil {
		return err
	}
	res := cs.db.WithContext(ctx).Model(&models.Vehicle{}).Where("id = ?", id).Updates(map[string]any{
		"brand":            v.Brand,
		"model":            v.Model,
		"manufacture_year": v.ManufactureYear,
		"images":           v.Images,
		"scheduled_date":   v.ScheduledDate,
	})
	if res.Error != nil {
		return fmt.Errorf("update vehicle %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrVehicleNotFound
	}
	v.ID = id
	cs.cache.Del(catalogCacheKey)
	return nil
}

func (cs *CatalogService) Delete(ctx context.Context, id string) error {
	res := cs.db.WithContext(ctx).Delete(&models.Vehicle{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete vehicle %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrVehicleNotFound
	}
	cs.cache.Del(catalogCacheKey)
	return nil
}

func (cs *CatalogService) ScheduledOn(ctx context.Context, date string) ([]models.Vehicle, error) {
	vehicles, err := cs.List(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Filter(vehicles, func(v models.Vehicle, _ int) bool {
		return v.ScheduledDate == date
	}), nil
}

// Today returns the first vehicle scheduled for the current day.
func (cs *CatalogService) Today(ctx context.Context) (*models.Vehicle, error) {
	scheduled, err := cs.ScheduledOn(ctx, cs.clock.Today())
	if err != nil {
		return nil, err
	}
	if len(scheduled) == 0 {
		return nil, game.ErrCatalogEmpty
	}
	return &scheduled[0], nil
}

func (cs *CatalogService) validate(v *models.Vehicle) error {
	v.Brand = strings.TrimSpace(v.Brand)
	v.Model = strings.TrimSpace(v.Model)
	if v.Brand == "" || v.Model == "" {
		return fmt.Errorf("%w: brand and model are required", ErrInvalidVehicle)
	}
	if limit := cs.clock.Now().Year() + 1; v.ManufactureYear < game.MinYear || v.ManufactureYear > limit {
		return fmt.Errorf("%w: year %d outside [%d, %d]", ErrInvalidVehicle, v.ManufactureYear, game.MinYear, limit)
	}
	if len(v.Images) > models.MaxImages {
		return fmt.Errorf("%w: at most %d images", ErrInvalidVehicle, models.MaxImages)
	}
	if _, err := time.Parse(providers.DateLayout, v.ScheduledDate); err != nil {
		return fmt.Errorf("%w: scheduled date %q", ErrInvalidVehicle, v.ScheduledDate)
	}
	return nil
}
