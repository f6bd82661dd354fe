package rest

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRateLimit_RejectsOverBurst(t *testing.T) {
	limiter := newClientLimiter(1, 2)
	h := rateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	do := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusNoContent, do("10.0.0.1:1111").Code)
	assert.Equal(t, http.StatusNoContent, do("10.0.0.1:1111").Code)

	rejected := do("10.0.0.1:1111")
	assert.Equal(t, http.StatusTooManyRequests, rejected.Code)
	assert.Equal(t, "1", rejected.Header().Get("Retry-After"))

	// A different client gets its own bucket.
	assert.Equal(t, http.StatusNoContent, do("10.0.0.2:2222").Code)
}

func TestClientLimiter_SweepEvictsIdle(t *testing.T) {
	c := newClientLimiter(100, 100)

	c.limiterFor("10.0.0.1")
	c.limiterFor("10.0.0.2")

	c.mu.Lock()
	c.limiters["10.0.0.1"].lastSeen = time.Now().Add(-time.Hour)
	c.mu.Unlock()

	c.sweep(time.Now().Add(-limiterIdleTTL))

	c.mu.Lock()
	defer c.mu.Unlock()
	assert.Len(t, c.limiters, 1)
	assert.Contains(t, c.limiters, "10.0.0.2")
}

func TestRecoverPanic(t *testing.T) {
	h := recoverPanic(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
