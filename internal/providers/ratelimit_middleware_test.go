package providers

import (
	"carhoot/internal/structures"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func limitedRequest(addr string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/puzzle/guess", nil)
	req.RemoteAddr = addr
	return req
}

func TestRateLimit_DisabledPassesThrough(t *testing.T) {
	mw := NewRateLimitMiddleware(&structures.Config{}, &cacheTestLogger{})
	h := mw(dummyHandler())
	for i := 0; i < 50; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, limitedRequest("10.0.0.1:4000"))
		assert.Equal(t, http.StatusOK, rr.Code)
	}
}

func TestRateLimit_PerAddressBurst(t *testing.T) {
	conf := &structures.Config{RateLimit: structures.RateLimitConfig{RPS: 1, Burst: 2}}
	h := NewRateLimitMiddleware(conf, &cacheTestLogger{})(dummyHandler())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		// a new source port is the same caller
		h.ServeHTTP(rr, limitedRequest(fmt.Sprintf("10.0.0.1:%d", 4000+i)))
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, limitedRequest("10.0.0.2:4000"))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRateLimit_IgnoresClientID(t *testing.T) {
	conf := &structures.Config{RateLimit: structures.RateLimitConfig{RPS: 1, Burst: 1}}
	h := NewRateLimitMiddleware(conf, &cacheTestLogger{})(dummyHandler())

	codes := make([]int, 0, 2)
	for _, client := range []string{"a", "b"} {
		req := limitedRequest("10.0.0.1:4000")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req.WithContext(WithClientID(req.Context(), client)))
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}
