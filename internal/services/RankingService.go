package services

import (
	"carhoot/internal/models"
	"carhoot/internal/providers"
	"context"
	"errors"
	"fmt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"strings"
	"time"
)

const (
	defaultRankingLimit = 20
	maxRankingLimit     = 100
	monthLayout         = "2006-01"
	maxNicknameLength   = 64
)

var ErrBadPeriod = errors.New("invalid ranking period")

type RankingServiceInterface interface {
	Record(ctx context.Context, entry *models.RankingEntry) (bool, error)
	Daily(ctx context.Context, date string, limit int) ([]models.RankingEntry, error)
	Monthly(ctx context.Context, month string, limit int) ([]models.RankingRow, error)
}

type RankingService struct {
	db     *gorm.DB
	logger providers.Logger
}

func NewRankingService(db *gorm.DB, logger providers.Logger) RankingServiceInterface {
	return &RankingService{db: db, logger: logger}
}

// Record stores a solved puzzle. A client ranks at most once per day; later
// solutions of the same day are ignored and reported as not recorded.
func (rs *RankingService) Record(ctx context.Context, entry *models.RankingEntry) (bool, error) {
	entry.Nickname = strings.TrimSpace(entry.Nickname)
	if entry.Nickname == "" || entry.ClientID == "" {
		return false, nil
	}
	if r := []rune(entry.Nickname); len(r) > maxNicknameLength {
		entry.Nickname = string(r[:maxNicknameLength])
	}
	if _, err := time.Parse(providers.DateLayout, entry.Date); err != nil {
		return false, fmt.Errorf("%w: %q", ErrBadPeriod, entry.Date)
	}
	entry.Month = entry.Date[:len(monthLayout)]

	res := rs.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(entry)
	if res.Error != nil {
		return false, fmt.Errorf("record ranking: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	rs.logger.Infof(providers.TypeGame, "Ranked %s on %s in %ds", entry.Nickname, entry.Date, entry.ElapsedSeconds)
	return true, nil
}

// Daily orders a day's entries by solving time, then by failures.
func (rs *RankingService) Daily(ctx context.Context, date string, limit int) ([]models.RankingEntry, error) {
	if _, err := time.Parse(providers.DateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadPeriod, date)
	}
	entries := make([]models.RankingEntry, 0)
	err := rs.db.WithContext(ctx).
		Where("date = ?", date).
		Order("elapsed_seconds asc, failed_attempts asc, created_at asc").
		Limit(clampLimit(limit)).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("daily ranking: %w", err)
	}
	return entries, nil
}

// Monthly groups a month's entries by nickname. Players who solved more days rank
// first; ties fall back to total time and failures.
func (rs *RankingService) Monthly(ctx context.Context, month string, limit int) ([]models.RankingRow, error) {
	if _, err := time.Parse(monthLayout, month); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadPeriod, month)
	}
	rows := make([]models.RankingRow, 0)
	err := rs.db.WithContext(ctx).
		Model(&models.RankingEntry{}).
		Select("nickname, count(*) as days_played, sum(elapsed_seconds) as total_seconds, sum(failed_attempts) as total_failures").
		Where("month = ?", month).
		Group("nickname").
		Order("days_played desc, total_seconds asc, total_failures asc").
		Limit(clampLimit(limit)).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("monthly ranking: %w", err)
	}
	return rows, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultRankingLimit
	}
	return min(limit, maxRankingLimit)
}
