package controllers

import (
	"carhoot/internal/services"
	"context"
	"fmt"
	json "github.com/goccy/go-json"
	"net/http"
	"time"
)

const pingTimeout = time.Second

// Counter reports the size of an in-memory collection.
type Counter interface {
	Len() int
}

// Pinger checks that the catalog database is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthController struct {
	matches   services.MatchServiceInterface
	store     Counter
	db        Pinger
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Database      string  `json:"database"`
	ActiveMatches int     `json:"active_matches"`
	StoredKeys    int     `json:"stored_keys"`
}

// Health answers 503 with status "degraded" while the database is down so a
// load balancer can take the instance out of rotation.
func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Database:      "ok",
		ActiveMatches: hc.matches.Active(),
		StoredKeys:    hc.store.Len(),
	}
	code := http.StatusOK

	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()
	if err := hc.db.PingContext(ctx); err != nil {
		resp.Status = "degraded"
		resp.Database = err.Error()
		code = http.StatusServiceUnavailable
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(matches services.MatchServiceInterface, store Counter, db Pinger) *HealthController {
	return &HealthController{
		matches:   matches,
		store:     store,
		db:        db,
		startTime: time.Now(),
	}
}
