package providers

import (
	"context"
	"github.com/google/uuid"
	"net/http"
	"time"
)

const ClientCookieName = "carhoot_client"

const clientCookieMaxAge = 365 * 24 * time.Hour

type clientKey struct{}

type clientIdentity struct {
	id    string
	fresh bool
}

// ClientMiddleware gives every browser a stable opaque id. Progress is stored
// under that id, so a cleared cookie starts a fresh day.
func ClientMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, fresh := "", false
		if c, err := r.Cookie(ClientCookieName); err == nil {
			if parsed, err := uuid.Parse(c.Value); err == nil {
				id = parsed.String()
			}
		}
		if id == "" {
			id, fresh = uuid.NewString(), true
			http.SetCookie(w, &http.Cookie{
				Name:     ClientCookieName,
				Value:    id,
				Path:     "/",
				MaxAge:   int(clientCookieMaxAge.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := context.WithValue(r.Context(), clientKey{}, clientIdentity{id: id, fresh: fresh})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithClientID tags ctx with a returning client's id.
func WithClientID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, clientKey{}, clientIdentity{id: id})
}

func ClientIDFromContext(ctx context.Context) (string, bool) {
	c, ok := ctx.Value(clientKey{}).(clientIdentity)
	return c.id, ok && c.id != ""
}

// IsNewClient reports whether the id was minted for this request, so nothing
// can be stored under it yet.
func IsNewClient(ctx context.Context) bool {
	c, ok := ctx.Value(clientKey{}).(clientIdentity)
	return ok && c.fresh
}
