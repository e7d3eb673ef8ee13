package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solana-wallet-forensics/internal/testutil"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func TestRateLimiter_BurstThenRefill(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	rl := NewRateLimiter(1, 2).WithClock(clock.Now)

	ok, _ := rl.allow("a")
	assert.True(t, ok)
	ok, _ = rl.allow("a")
	assert.True(t, ok)

	ok, retry := rl.allow("a")
	assert.False(t, ok)
	assert.Equal(t, time.Second, retry)

	// Separate buckets per IP
	ok, _ = rl.allow("b")
	assert.True(t, ok)

	clock.t = clock.t.Add(time.Second)
	ok, _ = rl.allow("a")
	assert.True(t, ok)
}

func TestRateLimiter_Sweep(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	rl := NewRateLimiter(1, 1).WithClock(clock.Now)

	rl.allow("old")
	clock.t = clock.t.Add(time.Hour)
	rl.allow("new")

	assert.Equal(t, 1, rl.Sweep(clock.t.Add(-time.Minute)))
}

func TestRateLimiter_Middleware(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	limiter := NewRateLimiter(0.5, 1).WithClock(clock.Now)
	s := newTestServer(t, Options{Limiter: limiter})
	wallet := testutil.Addr("w")

	w := s.do(http.MethodPost, "/api/v1/trace", walletRequest{Wallet: wallet})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/api/v1/trace", walletRequest{Wallet: wallet})
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "2", w.Header().Get("Retry-After"))
	assert.Equal(t, float64(2), decode(t, w)["retry_after"])

	// Local routes are not limited
	w = s.do(http.MethodGet, "/api/v1/analyses", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Health is outside the API group
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
