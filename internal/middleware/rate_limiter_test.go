package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func rateLimitedHandler(l *IPRateLimiter) echo.HandlerFunc {
	return l.Middleware()(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}

func requestFrom(e *echo.Echo, handler echo.HandlerFunc, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/statistics?month=03", nil)
	req.RemoteAddr = ip + ":12345"
	rec := httptest.NewRecorder()
	_ = handler(e.NewContext(req, rec))
	return rec
}

func TestIPRateLimiter_BurstThenLimited(t *testing.T) {
	e := echo.New()
	handler := rateLimitedHandler(NewIPRateLimiter(1, 3))

	for i := 0; i < 3; i++ {
		rec := requestFrom(e, handler, "192.168.1.2")
		assert.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}

	rec := requestFrom(e, handler, "192.168.1.2")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "SYSTEM_006")
}

func TestIPRateLimiter_PerIP(t *testing.T) {
	e := echo.New()
	handler := rateLimitedHandler(NewIPRateLimiter(1, 1))

	assert.Equal(t, http.StatusOK, requestFrom(e, handler, "10.0.0.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, requestFrom(e, handler, "10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, requestFrom(e, handler, "10.0.0.2").Code)
}

func TestIPRateLimiter_Concurrent(t *testing.T) {
	e := echo.New()
	limiter := NewIPRateLimiter(1, 5)
	handler := rateLimitedHandler(limiter)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if requestFrom(e, handler, "172.16.0.9").Code == http.StatusOK {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, allowed, 6)
	assert.GreaterOrEqual(t, allowed, 5)
}

func TestIPRateLimiter_EvictIdle(t *testing.T) {
	limiter := NewIPRateLimiter(5, 10)
	limiter.limiter("10.0.0.1")
	limiter.limiter("10.0.0.2")

	limiter.evictIdle(time.Now())
	assert.Equal(t, 2, limiter.size())

	limiter.evictIdle(time.Now().Add(visitorIdleTimeout + time.Second))
	assert.Equal(t, 0, limiter.size())
}

func TestIPRateLimiter_RunCleanupStops(t *testing.T) {
	limiter := NewIPRateLimiter(5, 10)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		limiter.RunCleanup(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup loop did not stop")
	}
}
