package services

import (
	"carhoot/internal/game"
	"carhoot/internal/models"
	"carhoot/internal/providers"
	"carhoot/internal/structures"
	"context"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"sync"
	"time"
)

// MatchGuessResult pairs a submission outcome with the match after it.
type MatchGuessResult struct {
	Outcome game.MatchOutcome `json:"outcome"`
	Match   *models.MatchView `json:"match"`
}

type MatchServiceInterface interface {
	Start(ctx context.Context, names [models.PlayersPerMatch]string) (*models.MatchView, error)
	Get(id string) (*models.MatchView, error)
	Guess(id string, g game.MatchGuess) (*MatchGuessResult, error)
	Active() int
	Sweep() int
}

// MatchService keeps running matches in memory. Matches idle for longer than the
// configured TTL are dropped by Sweep.
type MatchService struct {
	mu      sync.RWMutex
	matches map[string]*models.MultiplayerMatch
	rules   *game.MatchRules
	catalog CatalogServiceInterface
	clock   providers.ClockInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	ttl     time.Duration
}

func NewMatchService(conf *structures.Config, rules *game.MatchRules, catalog CatalogServiceInterface, clock providers.ClockInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) *MatchService {
	return &MatchService{
		matches: make(map[string]*models.MultiplayerMatch),
		rules:   rules,
		catalog: catalog,
		clock:   clock,
		logger:  logger,
		metrics: metrics,
		ttl:     conf.Multiplayer.MatchTTL,
	}
}

// Start draws the round vehicles without replacement. Today's scheduled vehicles
// come first, the rest of the catalog fills the remaining rounds.
func (ms *MatchService) Start(ctx context.Context, names [models.PlayersPerMatch]string) (*models.MatchView, error) {
	all, err := ms.catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	today := ms.clock.Today()
	scheduled := lo.Shuffle(lo.Filter(all, func(v models.Vehicle, _ int) bool {
		return v.ScheduledDate == today
	}))
	others := lo.Filter(all, func(v models.Vehicle, _ int) bool {
		return v.ScheduledDate != today
	})
	picked := append(scheduled, lo.Samples(others, max(0, ms.rules.Rounds-len(scheduled)))...)
	if len(picked) > ms.rules.Rounds {
		picked = picked[:ms.rules.Rounds]
	}

	now := ms.clock.Now()
	m, err := ms.rules.NewMatch(uuid.NewString(), names, picked, now)
	if err != nil {
		return nil, err
	}

	ms.mu.Lock()
	ms.matches[m.ID] = m
	active := len(ms.matches)
	ms.mu.Unlock()

	ms.metrics.SetActiveMatches(active)
	ms.logger.Infof(providers.TypeGame, "Match %s started with %d rounds", m.ID, len(m.Rounds))
	return matchView(m, now), nil
}

func (ms *MatchService) Get(id string) (*models.MatchView, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	m, ok := ms.matches[id]
	if !ok || ms.expired(m, ms.clock.Now()) {
		return nil, game.ErrMatchNotFound
	}
	return matchView(m, ms.clock.Now()), nil
}

func (ms *MatchService) Guess(id string, g game.MatchGuess) (*MatchGuessResult, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	now := ms.clock.Now()
	m, ok := ms.matches[id]
	if !ok || ms.expired(m, now) {
		return nil, game.ErrMatchNotFound
	}

	out, err := ms.rules.Submit(m, g, now)
	if err != nil {
		ms.metrics.IncGuesses(string(models.ModeMultiplayer), "rejected")
		return nil, err
	}
	result := "miss"
	if out.RoundComplete {
		result = "hit"
	}
	ms.metrics.IncGuesses(string(models.ModeMultiplayer), result)
	if out.Finished {
		ms.logger.Infof(providers.TypeGame, "Match %s finished", m.ID)
	}
	return &MatchGuessResult{Outcome: out, Match: matchView(m, now)}, nil
}

func (ms *MatchService) Active() int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return len(ms.matches)
}

// Sweep drops expired matches and returns how many are left.
func (ms *MatchService) Sweep() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	now := ms.clock.Now()
	for id, m := range ms.matches {
		if ms.expired(m, now) {
			delete(ms.matches, id)
		}
	}
	return len(ms.matches)
}

func (ms *MatchService) expired(m *models.MultiplayerMatch, now time.Time) bool {
	return ms.ttl > 0 && now.Sub(m.UpdatedAt) > ms.ttl
}

func matchView(m *models.MultiplayerMatch, now time.Time) *models.MatchView {
	view := &models.MatchView{
		ID:                 m.ID,
		Players:            m.Players,
		CurrentPlayerIndex: m.CurrentPlayerIndex,
		RoundIndex:         m.RoundIndex,
		RoundCount:         len(m.Rounds),
		Finished:           m.Finished,
		Winners:            []int{},
		Answers:            []models.Answer{},
	}
	if m.Finished {
		view.Winners = m.Winners()
	}
	if m.Locked(now) {
		until := m.LockedUntil
		view.LockedUntil = &until
	}

	for i := range m.Rounds {
		if i < m.RoundIndex || m.Finished {
			view.Answers = append(view.Answers, *answer(&m.Rounds[i].Vehicle))
		}
	}
	if r := m.CurrentRound(); r != nil && !m.Finished {
		view.Round = &models.RoundView{
			Index:          m.RoundIndex,
			Fields:         append([]models.Field{}, r.Fields...),
			Guessed:        lo.Assign(r.Guessed),
			Images:         r.Vehicle.VisibleImages(r.ImageIndex, false),
			ImageIndex:     r.ImageIndex,
			FailedAttempts: append([]models.MatchAttempt{}, r.FailedAttempts...),
		}
	}
	return view
}
