package controllers

import (
	"carhoot/internal/game"
	"carhoot/internal/providers"
	"carhoot/internal/services"
	"errors"
	json "github.com/goccy/go-json"
	"net/http"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	gson, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func decode(w http.ResponseWriter, r *http.Request, payload any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

// statusFor maps domain errors to the HTTP status shown to the client.
func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrLocked):
		return http.StatusLocked
	case errors.Is(err, game.ErrPuzzleCompleted),
		errors.Is(err, game.ErrOutOfAttempts),
		errors.Is(err, game.ErrHintUnavailable),
		errors.Is(err, game.ErrNotExhausted),
		errors.Is(err, game.ErrAlreadyResolved),
		errors.Is(err, game.ErrMatchFinished):
		return http.StatusConflict
	case errors.Is(err, game.ErrCatalogEmpty),
		errors.Is(err, game.ErrMatchNotFound),
		errors.Is(err, services.ErrVehicleNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrEmptyGuess),
		errors.Is(err, game.ErrBadPlayers),
		errors.Is(err, game.ErrBadResolution),
		errors.Is(err, services.ErrBadPeriod),
		errors.Is(err, services.ErrInvalidVehicle):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, logger providers.Logger, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "%s %s failed: %s", r.Method, r.URL.Path, err)
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

func clientID(r *http.Request) string {
	id, _ := providers.ClientIDFromContext(r.Context())
	return id
}

// SessionMiddleware runs the daily rollover of the calling client before any
// API handler sees the request. A freshly minted id has nothing to roll over.
func SessionMiddleware(svc services.GameServiceInterface) providers.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id, ok := providers.ClientIDFromContext(r.Context()); ok && !providers.IsNewClient(r.Context()) {
				svc.Bootstrap(id)
			}
			next.ServeHTTP(w, r)
		})
	}
}
