package controllers

import (
	"carhoot/internal/providers"
	"carhoot/internal/services"
	json "github.com/goccy/go-json"
	"net/http"
	"strconv"
	"time"
)

const (
	dailyRankingCacheKey   = "ranking:daily:"
	monthlyRankingCacheKey = "ranking:monthly:"

	closedPeriodTTL = time.Hour
)

// RankingController serves rankings through the response cache. The open
// period uses the short default TTL so a fresh solution shows up quickly;
// closed periods no longer change and are kept for closedPeriodTTL.
type RankingController struct {
	logger  providers.Logger
	service services.RankingServiceInterface
	clock   providers.ClockInterface
	cache   providers.CacheProviderInterface
}

func NewRankingController(logger providers.Logger, service services.RankingServiceInterface, clock providers.ClockInterface, cache providers.CacheProviderInterface) *RankingController {
	return &RankingController{
		logger:  logger,
		service: service,
		clock:   clock,
		cache:   cache,
	}
}

func limitParam(r *http.Request) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		return 0
	}
	return limit
}

func (rc *RankingController) serveFromCacheOrCompute(w http.ResponseWriter, r *http.Request, cacheKey string, closed bool, compute func() (any, error)) {
	if data, ok := rc.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		writeError(w, rc.logger, r, err)
		return
	}
	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if closed {
		rc.cache.SetTTL(cacheKey, gson, closedPeriodTTL)
	} else {
		rc.cache.Set(cacheKey, gson)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (rc *RankingController) Daily(w http.ResponseWriter, r *http.Request) {
	today := rc.clock.Today()
	date := r.URL.Query().Get("date")
	if date == "" {
		date = today
	}
	limit := limitParam(r)
	key := dailyRankingCacheKey + date + ":" + strconv.Itoa(limit)
	rc.serveFromCacheOrCompute(w, r, key, date < today, func() (any, error) {
		return rc.service.Daily(r.Context(), date, limit)
	})
}

func (rc *RankingController) Monthly(w http.ResponseWriter, r *http.Request) {
	current := rc.clock.Today()[:7]
	month := r.URL.Query().Get("month")
	if month == "" {
		month = current
	}
	limit := limitParam(r)
	key := monthlyRankingCacheKey + month + ":" + strconv.Itoa(limit)
	rc.serveFromCacheOrCompute(w, r, key, month < current, func() (any, error) {
		return rc.service.Monthly(r.Context(), month, limit)
	})
}
