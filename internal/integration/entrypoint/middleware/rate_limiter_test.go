package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func TestRateLimiter_Allow(t *testing.T) {
	now := time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)
	rl := NewRateLimiterWithConfig(1, 2)
	rl.now = func() time.Time { return now }

	if !rl.allow("a") || !rl.allow("a") {
		t.Fatal("expected burst of 2 to be allowed")
	}
	if rl.allow("a") {
		t.Error("expected third request to be limited")
	}
	if !rl.allow("b") {
		t.Error("expected other keys to have their own bucket")
	}

	now = now.Add(time.Second)
	if !rl.allow("a") {
		t.Error("expected a token after one second")
	}
}

func TestRateLimiter_Cleanup(t *testing.T) {
	now := time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)
	rl := NewRateLimiter()
	rl.now = func() time.Time { return now }

	rl.allow("a")
	now = now.Add(idleTimeout + time.Second)
	rl.allow("b")
	rl.Cleanup()

	if _, ok := rl.visitors["a"]; ok {
		t.Error("expected idle visitor to be removed")
	}
	if _, ok := rl.visitors["b"]; !ok {
		t.Error("expected active visitor to be kept")
	}
}

func TestRateLimiter_MiddlewareKeysByOwner(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("ENV", "production")

	rl := NewRateLimiterWithConfig(0.001, 1)
	owner := uuid.New()

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if c.GetHeader("X-Owner") == "1" {
			SetOwnerID(c, owner)
		}
		c.Next()
	})
	router.Use(rl.Middleware())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	do := func(asOwner bool) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if asOwner {
			req.Header.Set("X-Owner", "1")
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	if code := do(true); code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", code)
	}
	if code := do(true); code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", code)
	}
	if code := do(false); code != http.StatusNoContent {
		t.Errorf("expected anonymous request to use its own bucket, got %d", code)
	}
}

func TestRateLimiter_SkippedInTest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("ENV", "test")

	rl := NewRateLimiterWithConfig(0.001, 1)
	router := gin.New()
	router.Use(rl.Middleware())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204 on request %d, got %d", i, w.Code)
		}
	}
}
