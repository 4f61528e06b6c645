package services

import (
	"carhoot/internal/game"
	"carhoot/internal/models"
	"carhoot/internal/providers"
	"context"
	"errors"
	"time"
)

// GuessResult pairs the judged guess with the puzzle after it was applied.
type GuessResult struct {
	Outcome game.Outcome       `json:"outcome"`
	Puzzle  *models.PuzzleView `json:"puzzle"`
	Ranked  bool               `json:"ranked"`
}

type GameServiceInterface interface {
	Bootstrap(client string)
	Today(ctx context.Context, client string, mode models.Mode) (*models.PuzzleView, error)
	Guess(ctx context.Context, client string, mode models.Mode, value, nickname string) (*GuessResult, error)
	Hint(ctx context.Context, client string, mode models.Mode) (*models.HintView, error)
	Resolve(ctx context.Context, client string, resolution models.Resolution) (*models.PuzzleView, error)
	Reset(ctx context.Context, client string, mode models.Mode) (*models.PuzzleView, error)
}

type GameService struct {
	rules   *game.Rules
	store   ProgressStoreInterface
	catalog CatalogServiceInterface
	ranking RankingServiceInterface
	clock   providers.ClockInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	locks   *keyedMutex
}

func NewGameService(rules *game.Rules, store ProgressStoreInterface, catalog CatalogServiceInterface, ranking RankingServiceInterface, clock providers.ClockInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) GameServiceInterface {
	return &GameService{
		rules:   rules,
		store:   store,
		catalog: catalog,
		ranking: ranking,
		clock:   clock,
		logger:  logger,
		metrics: metrics,
		locks:   newKeyedMutex(),
	}
}

// Bootstrap runs the once-a-day purge for client.
func (gs *GameService) Bootstrap(client string) {
	unlock := gs.locks.Lock(client)
	defer unlock()
	if gs.store.ResetDaily(client) {
		gs.logger.Debugf(providers.TypeGame, "New day for %s", client)
	}
}

// Today returns the current puzzle. A day without a scheduled vehicle is
// reported as the no-puzzle state, not as an error.
func (gs *GameService) Today(ctx context.Context, client string, mode models.Mode) (*models.PuzzleView, error) {
	unlock := gs.locks.Lock(client)
	defer unlock()

	v, err := gs.catalog.Today(ctx)
	if errors.Is(err, game.ErrCatalogEmpty) {
		return &models.PuzzleView{State: models.StateNoPuzzle, Date: gs.clock.Today(), Mode: mode}, nil
	}
	if err != nil {
		return nil, err
	}
	return gs.view(gs.load(client, v, mode), v), nil
}

func (gs *GameService) Guess(ctx context.Context, client string, mode models.Mode, value, nickname string) (*GuessResult, error) {
	unlock := gs.locks.Lock(client)
	defer unlock()

	v, err := gs.catalog.Today(ctx)
	if err != nil {
		return nil, err
	}
	p := gs.load(client, v, mode)
	now := gs.clock.Now()
	out, err := gs.rules.Guess(p, v, value, now)
	if err != nil {
		gs.metrics.IncGuesses(string(mode), "rejected")
		return nil, err
	}

	saved := gs.store.Save(client, v, p)
	result := "miss"
	if out.Correct {
		result = "hit"
	}
	gs.metrics.IncGuesses(string(mode), result)
	gs.logger.Debugf(providers.TypeGame, "%s guessed %s in %s mode: %s", client, out.Field, mode, result)

	res := &GuessResult{Outcome: out, Puzzle: gs.view(saved, v)}
	if out.Completed && !saved.GaveUp {
		res.Ranked = gs.rank(ctx, client, saved, nickname, now)
	}
	return res, nil
}

func (gs *GameService) Hint(ctx context.Context, client string, mode models.Mode) (*models.HintView, error) {
	unlock := gs.locks.Lock(client)
	defer unlock()

	v, err := gs.catalog.Today(ctx)
	if err != nil {
		return nil, err
	}
	hint, err := gs.rules.Hint(gs.load(client, v, mode), v)
	if err != nil {
		return nil, err
	}
	return &hint, nil
}

// Resolve applies the player's choice on an exhausted limited puzzle.
func (gs *GameService) Resolve(ctx context.Context, client string, resolution models.Resolution) (*models.PuzzleView, error) {
	unlock := gs.locks.Lock(client)
	defer unlock()

	v, err := gs.catalog.Today(ctx)
	if err != nil {
		return nil, err
	}
	p := gs.load(client, v, models.ModeLimited)
	if err := gs.rules.Resolve(p, resolution); err != nil {
		return nil, err
	}
	saved := gs.store.Save(client, v, p)
	gs.logger.Infof(providers.TypeGame, "%s resolved the limited puzzle: %s", client, resolution)
	return gs.view(saved, v), nil
}

// Reset restarts today's puzzle of mode. A resolved limited puzzle stays resolved.
func (gs *GameService) Reset(ctx context.Context, client string, mode models.Mode) (*models.PuzzleView, error) {
	unlock := gs.locks.Lock(client)
	defer unlock()

	v, err := gs.catalog.Today(ctx)
	if err != nil {
		return nil, err
	}
	if p := gs.load(client, v, mode); p.Resolution != models.ResolutionNone {
		return nil, game.ErrAlreadyResolved
	}
	gs.store.ResetCurrent(client, mode)
	return gs.view(gs.load(client, v, mode), v), nil
}

// load treats a stale record like an absent one.
func (gs *GameService) load(client string, v *models.Vehicle, mode models.Mode) *models.DailyProgress {
	if p := gs.store.Load(client, v, mode); p != nil {
		return p
	}
	gs.logger.Debugf(providers.TypeGame, "Stale %s progress of %s ignored", mode, client)
	gs.store.ResetCurrent(client, mode)
	if p := gs.store.Load(client, v, mode); p != nil {
		return p
	}
	p := models.NewDailyProgress(gs.clock.Today(), v.ID, mode)
	if mode == models.ModeLimited {
		p.TotalAttempts = gs.rules.Remaining(p)
	}
	return p
}

func (gs *GameService) rank(ctx context.Context, client string, p *models.DailyProgress, nickname string, now time.Time) bool {
	elapsed := 0
	if !p.StartedAt.IsZero() {
		elapsed = int(now.Sub(p.StartedAt).Seconds())
	}
	ok, err := gs.ranking.Record(ctx, &models.RankingEntry{
		Date:           p.Date,
		ClientID:       client,
		Nickname:       nickname,
		Mode:           p.Mode,
		FailedAttempts: p.FailedAttempts.Total(),
		ElapsedSeconds: max(elapsed, 0),
	})
	if err != nil {
		gs.logger.Errorf(providers.TypeGame, "Unable to rank %s: %s", client, err)
		return false
	}
	return ok
}

func (gs *GameService) view(p *models.DailyProgress, v *models.Vehicle) *models.PuzzleView {
	now := gs.clock.Now()
	view := &models.PuzzleView{
		Date:                  p.Date,
		Mode:                  p.Mode,
		Stage:                 p.Stage,
		FailedAttempts:        failedAttemptsView(p, v, now.Year()),
		ErrorCountInStage:     p.ErrorCountInStage,
		Images:                v.VisibleImages(p.MaxUnlockedImageIndex, p.IsCompleted),
		CurrentImageIndex:     p.CurrentImageIndex,
		MaxUnlockedImageIndex: p.MaxUnlockedImageIndex,
		IsCompleted:           p.IsCompleted,
		GaveUp:                p.GaveUp,
		Resolutions:           []string{},
	}
	if p.Mode == models.ModeLimited {
		remaining := gs.rules.Remaining(p)
		view.RemainingAttempts = &remaining
	}

	switch {
	case p.IsCompleted:
		view.State = models.StateCompleted
		view.Answer = answer(v)
		return view
	case gs.rules.Exhausted(p) && p.Resolution == models.ResolutionContinued:
		view.State = models.StateContinued
	case gs.rules.Exhausted(p):
		view.State = models.StateOutOfAttempts
		view.Resolutions = []string{models.ActionContinue, models.ActionReveal}
	case p.Locked(now):
		view.State = models.StateLocked
		until := p.LockedUntil
		view.LockedUntil = &until
	default:
		view.State = models.StatePlaying
	}

	field, ok := gs.rules.Sequence.FieldAt(p.Stage)
	if !ok {
		return view
	}
	view.Field = field
	if hint, err := gs.rules.Hint(p, v); err == nil && view.State != models.StateOutOfAttempts && view.State != models.StateContinued {
		view.HintAvailable = true
		view.RevealedText = hint.RevealedText
	}
	return view
}

func failedAttemptsView(p *models.DailyProgress, v *models.Vehicle, currentYear int) models.FailedAttemptsView {
	years := make([]models.YearAttempt, 0, len(p.FailedAttempts.Year))
	for _, y := range p.FailedAttempts.Year {
		years = append(years, models.YearAttempt{Value: y, Band: game.BandForAttempt(y, v.ManufactureYear, currentYear)})
	}
	return models.FailedAttemptsView{
		Brand: append([]string{}, p.FailedAttempts.Brand...),
		Model: append([]string{}, p.FailedAttempts.Model...),
		Year:  years,
	}
}

func answer(v *models.Vehicle) *models.Answer {
	a := &models.Answer{
		Brand:           v.Brand,
		Model:           v.Model,
		ManufactureYear: v.ManufactureYear,
	}
	if len(v.Images) > models.RevealImageIndex {
		a.RevealImage = v.Images[models.RevealImageIndex]
	}
	return a
}
