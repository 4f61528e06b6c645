package services

import (
	"carhoot/internal/game"
	"carhoot/internal/models"
	"carhoot/internal/providers"
	"carhoot/internal/storage/interfaces"
	"carhoot/internal/structures"
	json "github.com/goccy/go-json"
	"time"
)

// ProgressStoreInterface keeps one client's daily puzzle records. Storage failures
// are logged and absorbed: a failed read looks like no prior progress, a failed
// write loses the turn.
type ProgressStoreInterface interface {
	Load(client string, vehicle *models.Vehicle, mode models.Mode) *models.DailyProgress
	Save(client string, vehicle *models.Vehicle, partial *models.DailyProgress) *models.DailyProgress
	ResetDaily(client string) bool
	ResetCurrent(client string, mode models.Mode)
}

type ProgressStore struct {
	kv      interfaces.KeyValueProviderInterface
	clock   providers.ClockInterface
	rules   *game.Rules
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	ttl     time.Duration
}

func NewProgressStore(conf *structures.Config, kv interfaces.KeyValueProviderInterface, clock providers.ClockInterface, rules *game.Rules, logger providers.Logger, metrics providers.MetricsProviderInterface) ProgressStoreInterface {
	return &ProgressStore{
		kv:      kv,
		clock:   clock,
		rules:   rules,
		logger:  logger,
		metrics: metrics,
		ttl:     conf.Storage.TTL,
	}
}

func progressKey(client string, mode models.Mode, date string) string {
	return client + ":progress_" + string(mode) + "_" + date
}

func attemptsKey(client, date string) string {
	return client + ":attempts_" + date
}

func lastResetKey(client string) string {
	return client + ":lastResetDate"
}

// Load returns the record of mode for vehicle today. A record written for another
// day or another vehicle is stale and yields nil; a missing or unreadable record
// yields a fresh one that already carries the day's shared failure count.
func (ps *ProgressStore) Load(client string, vehicle *models.Vehicle, mode models.Mode) *models.DailyProgress {
	today := ps.clock.Today()
	counter := ps.readCounter(client, today)

	p, found := ps.read(client, mode, today)
	if !found {
		return ps.fresh(today, vehicle.ID, mode, counter)
	}
	if p.Date != today || p.VehicleID != vehicle.ID {
		return nil
	}
	p.TotalAttemptsUsed = max(p.TotalAttemptsUsed, counter.Total())
	ps.applyBudget(p)
	return p
}

// Save merges partial into the last known record of the same vehicle and day and
// writes it back. A completed record is never overwritten.
func (ps *ProgressStore) Save(client string, vehicle *models.Vehicle, partial *models.DailyProgress) *models.DailyProgress {
	today := ps.clock.Today()
	mode := partial.Mode
	if mode == "" {
		mode = models.ModeNormal
	}

	existing, found := ps.read(client, mode, today)
	if found && (existing.Date != today || existing.VehicleID != vehicle.ID) {
		existing, found = nil, false
	}
	if found && existing.IsCompleted {
		return existing
	}

	merged := partial.Clone()
	merged.Date = today
	merged.VehicleID = vehicle.ID
	merged.Mode = mode
	merged.Stage = min(max(merged.Stage, models.StageBrand), models.StageYear)
	if found {
		merged.Stage = max(merged.Stage, existing.Stage)
		merged.MaxUnlockedImageIndex = max(merged.MaxUnlockedImageIndex, existing.MaxUnlockedImageIndex)
		if merged.StartedAt.IsZero() {
			merged.StartedAt = existing.StartedAt
		}
	}
	merged.CurrentImageIndex = min(merged.CurrentImageIndex, merged.MaxUnlockedImageIndex)

	counter := ps.readCounter(client, today)
	if counter.Raise(mode, merged.FailedAttempts.Total()) {
		ps.writeCounter(client, counter)
	}
	merged.TotalAttemptsUsed = max(merged.FailedAttempts.Total(), counter.Total())
	if found {
		merged.TotalAttemptsUsed = max(merged.TotalAttemptsUsed, existing.TotalAttemptsUsed)
	}
	ps.applyBudget(merged)

	ps.write(progressKey(client, mode, today), merged, ps.ttl)
	// a client seen for the first time has no reset stamp yet; without one the
	// next ResetDaily would purge what was just written
	if last, ok, err := ps.kv.Get(lastResetKey(client)); err == nil && (!ok || last != today) {
		ps.stamp(client, today)
	}
	return merged
}

// ResetDaily purges yesterday's and today's records once per calendar day and
// reports whether it did.
func (ps *ProgressStore) ResetDaily(client string) bool {
	today := ps.clock.Today()
	last, ok, err := ps.kv.Get(lastResetKey(client))
	if err != nil {
		ps.logger.Warnf(providers.TypeStorage, "Unable to read last reset of %s: %s", client, err)
	}
	if ok && last == today {
		return false
	}

	dates := []string{providers.Yesterday(today), today}
	if ok && last != "" && last != dates[0] {
		dates = append(dates, last)
	}
	for _, date := range dates {
		for _, mode := range models.PersistedModes {
			ps.remove(progressKey(client, mode, date))
		}
		ps.remove(attemptsKey(client, date))
	}

	ps.stamp(client, today)
	ps.logger.Debugf(providers.TypeStorage, "Daily reset of %s for %s", client, today)
	return true
}

func (ps *ProgressStore) stamp(client, today string) {
	if err := ps.kv.Set(lastResetKey(client), today, 2*ps.ttl); err != nil {
		ps.logger.Errorf(providers.TypeStorage, "Unable to stamp reset of %s: %s", client, err)
		ps.metrics.IncPersistenceErrors("save")
	}
}

// ResetCurrent drops today's record of mode. Failures already counted stay in the
// shared counter.
func (ps *ProgressStore) ResetCurrent(client string, mode models.Mode) {
	today := ps.clock.Today()
	counter := ps.readCounter(client, today)
	if counter.Carry(mode) {
		ps.writeCounter(client, counter)
	}
	ps.remove(progressKey(client, mode, today))
}

func (ps *ProgressStore) fresh(today, vehicleID string, mode models.Mode, counter *models.AttemptCounter) *models.DailyProgress {
	p := models.NewDailyProgress(today, vehicleID, mode)
	p.TotalAttemptsUsed = counter.Total()
	ps.applyBudget(p)
	return p
}

func (ps *ProgressStore) applyBudget(p *models.DailyProgress) {
	if p.Mode == models.ModeLimited {
		p.TotalAttempts = ps.rules.Remaining(p)
	} else {
		p.TotalAttempts = 0
	}
}

// read decodes the stored record of mode. Unreadable and malformed records are
// reported as not found.
func (ps *ProgressStore) read(client string, mode models.Mode, date string) (*models.DailyProgress, bool) {
	key := progressKey(client, mode, date)
	raw, ok, err := ps.kv.Get(key)
	if err != nil {
		ps.logger.Errorf(providers.TypeStorage, "Unable to read %s: %s", key, err)
		ps.metrics.IncPersistenceErrors("load")
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var p models.DailyProgress
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		ps.logger.Warnf(providers.TypeStorage, "Discarding undecodable %s: %s", key, err)
		return nil, false
	}
	if err := p.Repair(); err != nil {
		ps.logger.Warnf(providers.TypeStorage, "Discarding %s: %s", key, err)
		return nil, false
	}
	if p.Mode != mode {
		ps.logger.Warnf(providers.TypeStorage, "Discarding %s: mode %s", key, p.Mode)
		return nil, false
	}
	return &p, true
}

func (ps *ProgressStore) readCounter(client, date string) *models.AttemptCounter {
	key := attemptsKey(client, date)
	raw, ok, err := ps.kv.Get(key)
	if err != nil {
		ps.logger.Errorf(providers.TypeStorage, "Unable to read %s: %s", key, err)
		ps.metrics.IncPersistenceErrors("load")
	}
	if err != nil || !ok {
		return models.NewAttemptCounter(date)
	}

	var c models.AttemptCounter
	if err := json.Unmarshal([]byte(raw), &c); err != nil || c.Date != date {
		ps.logger.Warnf(providers.TypeStorage, "Discarding attempt counter %s", key)
		return models.NewAttemptCounter(date)
	}
	if c.PerMode == nil {
		c.PerMode = make(map[models.Mode]int)
	}
	return &c
}

func (ps *ProgressStore) writeCounter(client string, c *models.AttemptCounter) {
	ps.write(attemptsKey(client, c.Date), c, ps.ttl)
}

func (ps *ProgressStore) write(key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		ps.logger.Errorf(providers.TypeStorage, "Unable to encode %s: %s", key, err)
		return
	}
	if err := ps.kv.Set(key, string(data), ttl); err != nil {
		ps.logger.Errorf(providers.TypeStorage, "Unable to write %s: %s", key, err)
		ps.metrics.IncPersistenceErrors("save")
	}
}

func (ps *ProgressStore) remove(key string) {
	if err := ps.kv.Remove(key); err != nil {
		ps.logger.Warnf(providers.TypeStorage, "Unable to remove %s: %s", key, err)
		ps.metrics.IncPersistenceErrors("remove")
	}
}
