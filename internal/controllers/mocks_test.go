package controllers

import (
	"carhoot/internal/game"
	"carhoot/internal/models"
	"carhoot/internal/providers"
	"carhoot/internal/services"
	"context"
	"net/http"
	"strings"
	"sync"
)

type testLogger struct{}

func (l *testLogger) Errorf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (l *testLogger) Warnf(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (l *testLogger) Debugf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (l *testLogger) Infof(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (l *testLogger) Fatalf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (l *testLogger) Close()                                                  {}

// mockGame records the last call and returns err when set.
type mockGame struct {
	mu         sync.Mutex
	err        error
	bootstraps []string
	lastClient string
	lastMode   models.Mode
	lastValue  string
	lastNick   string
	lastRes    models.Resolution
}

func (m *mockGame) record(client string, mode models.Mode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastClient = client
	m.lastMode = mode
}

func (m *mockGame) Bootstrap(client string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bootstraps = append(m.bootstraps, client)
}

func (m *mockGame) Today(_ context.Context, client string, mode models.Mode) (*models.PuzzleView, error) {
	m.record(client, mode)
	if m.err != nil {
		return nil, m.err
	}
	return &models.PuzzleView{State: models.StatePlaying, Mode: mode, Field: models.FieldBrand, Images: []string{"0.jpg"}}, nil
}

func (m *mockGame) Guess(_ context.Context, client string, mode models.Mode, value, nickname string) (*services.GuessResult, error) {
	m.record(client, mode)
	m.lastValue = value
	m.lastNick = nickname
	if m.err != nil {
		return nil, m.err
	}
	return &services.GuessResult{
		Outcome: game.Outcome{Field: models.FieldBrand, Correct: true},
		Puzzle:  &models.PuzzleView{State: models.StateLocked, Mode: mode},
	}, nil
}

func (m *mockGame) Hint(_ context.Context, client string, mode models.Mode) (*models.HintView, error) {
	m.record(client, mode)
	if m.err != nil {
		return nil, m.err
	}
	return &models.HintView{Field: models.FieldBrand, RevealedText: "B", RevealedLetters: 1, UntilNextLetter: 3}, nil
}

func (m *mockGame) Resolve(_ context.Context, client string, res models.Resolution) (*models.PuzzleView, error) {
	m.record(client, models.ModeLimited)
	m.lastRes = res
	if m.err != nil {
		return nil, m.err
	}
	return &models.PuzzleView{State: models.StateContinued, Mode: models.ModeLimited}, nil
}

func (m *mockGame) Reset(_ context.Context, client string, mode models.Mode) (*models.PuzzleView, error) {
	m.record(client, mode)
	if m.err != nil {
		return nil, m.err
	}
	return &models.PuzzleView{State: models.StatePlaying, Mode: mode}, nil
}

type mockMatches struct {
	err    error
	names  [models.PlayersPerMatch]string
	guess  game.MatchGuess
	lastID string
	active int
	swept  int
}

func (m *mockMatches) Start(_ context.Context, names [models.PlayersPerMatch]string) (*models.MatchView, error) {
	m.names = names
	if m.err != nil {
		return nil, m.err
	}
	return &models.MatchView{ID: "m1", RoundCount: 3}, nil
}

func (m *mockMatches) Get(id string) (*models.MatchView, error) {
	m.lastID = id
	if m.err != nil {
		return nil, m.err
	}
	return &models.MatchView{ID: id, RoundCount: 3}, nil
}

func (m *mockMatches) Guess(id string, g game.MatchGuess) (*services.MatchGuessResult, error) {
	m.lastID = id
	m.guess = g
	if m.err != nil {
		return nil, m.err
	}
	return &services.MatchGuessResult{Outcome: game.MatchOutcome{Points: 10}, Match: &models.MatchView{ID: id}}, nil
}

func (m *mockMatches) Active() int { return m.active }
func (m *mockMatches) Sweep() int {
	m.swept++
	return m.active
}

type mockRankings struct {
	calls int
	err   error
	date  string
	month string
}

func (m *mockRankings) Record(_ context.Context, _ *models.RankingEntry) (bool, error) {
	return true, nil
}

func (m *mockRankings) Daily(_ context.Context, date string, _ int) ([]models.RankingEntry, error) {
	m.calls++
	m.date = date
	if m.err != nil {
		return nil, m.err
	}
	return []models.RankingEntry{{Date: date, Nickname: "ana", ElapsedSeconds: 30}}, nil
}

func (m *mockRankings) Monthly(_ context.Context, month string, _ int) ([]models.RankingRow, error) {
	m.calls++
	m.month = month
	if m.err != nil {
		return nil, m.err
	}
	return []models.RankingRow{{Nickname: "ana", DaysPlayed: 2}}, nil
}

type countStub int

func (c countStub) Len() int { return int(c) }

// withClient tags a request as coming from client id, the way the cookie
// middleware does.
func withClient(r *http.Request, id string) *http.Request {
	return r.WithContext(providers.WithClientID(r.Context(), id))
}

func body(s string) *strings.Reader {
	return strings.NewReader(s)
}
