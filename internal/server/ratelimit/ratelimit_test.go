package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// fixedClock pins a limiter to a controllable time source.
type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter(config *Config) (*Limiter, *fixedClock) {
	clock := &fixedClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	limiter := NewLimiter(config)
	limiter.now = clock.Now
	return limiter, clock
}

func TestLimiter_Allow(t *testing.T) {
	limiter, _ := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	// Should allow requests up to limit
	for i := 0; i < 10; i++ {
		allowed, rateInfo := limiter.Allow("127.0.0.1", "/v1/personas", "GET")
		if !allowed {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
		if rateInfo.Limit != 10 {
			t.Errorf("Expected limit 10, got %d", rateInfo.Limit)
		}
		if rateInfo.Remaining != 9-i {
			t.Errorf("Expected remaining %d, got %d", 9-i, rateInfo.Remaining)
		}
	}

	// 11th request should be denied
	allowed, rateInfo := limiter.Allow("127.0.0.1", "/v1/personas", "GET")
	if allowed {
		t.Error("Expected 11th request to be denied")
	}
	if rateInfo.Remaining != 0 {
		t.Errorf("Expected remaining 0, got %d", rateInfo.Remaining)
	}
	// One token every 6 seconds
	if rateInfo.RetryAfter != 6*time.Second {
		t.Errorf("Expected retry after 6s, got %v", rateInfo.RetryAfter)
	}
}

func TestLimiter_Refill(t *testing.T) {
	limiter, clock := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: 10 * time.Second,
	})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		limiter.Allow("127.0.0.1", "/test", "GET")
	}
	if allowed, _ := limiter.Allow("127.0.0.1", "/test", "GET"); allowed {
		t.Fatal("Expected request to be denied once the bucket is empty")
	}

	clock.Advance(time.Second)

	if allowed, _ := limiter.Allow("127.0.0.1", "/test", "GET"); !allowed {
		t.Error("Expected request to be allowed after refill")
	}
	if allowed, _ := limiter.Allow("127.0.0.1", "/test", "GET"); allowed {
		t.Error("Expected request to be denied after consuming refilled token")
	}
}

func TestLimiter_ResetTime(t *testing.T) {
	limiter, clock := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: 10 * time.Second,
	})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		limiter.Allow("127.0.0.1", "/test", "GET")
	}
	_, info := limiter.Allow("127.0.0.1", "/test", "GET")

	if info.Remaining != 4 {
		t.Errorf("Expected 4 remaining tokens, got %d", info.Remaining)
	}
	if want := clock.Now().Add(6 * time.Second); !info.ResetTime.Equal(want) {
		t.Errorf("Expected reset at %v, got %v", want, info.ResetTime)
	}
}

func TestLimiter_Whitelist(t *testing.T) {
	limiter, _ := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"127.0.0.1": true},
	})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, rateInfo := limiter.Allow("127.0.0.1", "/v1/rank", "POST")
		if !allowed {
			t.Errorf("Expected whitelisted request %d to be allowed", i+1)
		}
		if rateInfo.Limit != 0 {
			t.Errorf("Expected limit 0 for whitelisted, got %d", rateInfo.Limit)
		}
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	limiter, _ := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Blacklist:     map[string]bool{"192.168.1.1": true},
	})
	defer limiter.Stop()

	if allowed, _ := limiter.Allow("192.168.1.1", "/v1/rank", "POST"); allowed {
		t.Error("Expected blacklisted request to be denied")
	}
}

func TestLimiter_Disabled(t *testing.T) {
	limiter, _ := newTestLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, rateInfo := limiter.Allow("127.0.0.1", "/v1/similarity", "POST")
		if !allowed {
			t.Errorf("Expected request %d to be allowed when disabled", i+1)
		}
		if rateInfo.Limit != 0 {
			t.Errorf("Expected limit 0 when disabled, got %d", rateInfo.Limit)
		}
	}
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	limiter, _ := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/v1/similarity", Method: "POST", Limit: 5, Window: time.Hour, Burst: 5},
		},
	})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		allowed, rateInfo := limiter.Allow("127.0.0.1", "/v1/similarity", "POST")
		if !allowed {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
		if rateInfo.Limit != 5 {
			t.Errorf("Expected limit 5, got %d", rateInfo.Limit)
		}
	}

	if allowed, _ := limiter.Allow("127.0.0.1", "/v1/similarity", "POST"); allowed {
		t.Error("Expected 6th request to be denied")
	}

	// Different endpoint should use default limit
	allowed, rateInfo := limiter.Allow("127.0.0.1", "/v1/personas", "GET")
	if !allowed {
		t.Error("Expected different endpoint to be allowed")
	}
	if rateInfo.Limit != 1000 {
		t.Errorf("Expected default limit 1000, got %d", rateInfo.Limit)
	}
}

func TestLimiter_PrefixSharesBucket(t *testing.T) {
	limiter, _ := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/v1/users/", Method: "POST", Limit: 2, Window: time.Minute, Burst: 2},
		},
	})
	defer limiter.Stop()

	limiter.Allow("127.0.0.1", "/v1/users/a/rank", "POST")
	limiter.Allow("127.0.0.1", "/v1/users/b/rank", "POST")
	if allowed, _ := limiter.Allow("127.0.0.1", "/v1/users/c/rank", "POST"); allowed {
		t.Error("Expected prefix-matched paths to share one bucket")
	}
	if allowed, _ := limiter.Allow("127.0.0.2", "/v1/users/c/rank", "POST"); !allowed {
		t.Error("Expected another client to have its own bucket")
	}
}

func TestLimiter_UnlimitedEndpoints(t *testing.T) {
	limiter, _ := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	for _, path := range []string{"/health", "/metrics"} {
		for i := 0; i < 10; i++ {
			if allowed, _ := limiter.Allow("127.0.0.1", path, "GET"); !allowed {
				t.Errorf("Expected %s to be unlimited", path)
			}
		}
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter, _ := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	var wg sync.WaitGroup
	allowedCount := 0
	var mu sync.Mutex

	// Make 200 concurrent requests (should only allow 100)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed, _ := limiter.Allow("127.0.0.1", "/test", "GET")
			if allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	if allowedCount != 100 {
		t.Errorf("Expected 100 allowed requests, got %d", allowedCount)
	}
}

func TestLimiter_CleanupBuckets(t *testing.T) {
	limiter, clock := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		limiter.Allow(fmt.Sprintf("127.0.0.%d", i+1), "/test", "GET")
	}
	clock.Advance(2 * time.Hour)
	for i := 0; i < 5; i++ {
		limiter.Allow(fmt.Sprintf("127.0.0.%d", i+1), "/test", "GET")
	}

	limiter.cleanupBuckets(clock.Now().Add(-idleBucketTTL))

	if got := limiter.bucketCount(); got != 5 {
		t.Errorf("Expected 5 buckets after cleanup, got %d", got)
	}
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	allowed, rateInfo := limiter.Allow("127.0.0.1", "/test", "GET")
	if !allowed {
		t.Error("Expected request to be allowed with default config")
	}
	if rateInfo.Limit != 600 {
		t.Errorf("Expected default limit 600, got %d", rateInfo.Limit)
	}
}

func TestLimiter_StopIsIdempotent(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute, CleanupInterval: time.Minute})
	limiter.Stop()
	limiter.Stop()
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	tests := []struct {
		name      string
		path      string
		method    string
		wantPath  string
		wantLimit int
		wantNil   bool
	}{
		{name: "exact similarity build", path: "/v1/similarity", method: "POST", wantPath: "/v1/similarity", wantLimit: 30},
		{name: "exact rank", path: "/v1/rank", method: "POST", wantPath: "/v1/rank", wantLimit: 300},
		{name: "user prefix", path: "/v1/users/abc/rank", method: "POST", wantPath: "/v1/users/", wantLimit: 30},
		{name: "health unlimited", path: "/health", method: "GET", wantLimit: 0},
		{name: "metrics unlimited", path: "/metrics", method: "GET", wantLimit: 0},
		{name: "method mismatch", path: "/v1/rank", method: "GET", wantNil: true},
		{name: "no prefix for exact paths", path: "/v1/similarity/abc", method: "POST", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantNil {
				if got != nil {
					t.Errorf("Expected no match, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("Expected a match")
			}
			if got.Path != tt.wantPath || got.Limit != tt.wantLimit {
				t.Errorf("Expected %s/%d, got %s/%d", tt.wantPath, tt.wantLimit, got.Path, got.Limit)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "42")
	t.Setenv("RATE_LIMIT_DEFAULT_WINDOW", "30s")
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 10.0.0.2")

	cfg := LoadConfig()
	if !cfg.Enabled || cfg.DefaultLimit != 42 || cfg.DefaultWindow != 30*time.Second {
		t.Errorf("Unexpected config: %+v", cfg)
	}
	if !cfg.Whitelist["10.0.0.1"] || !cfg.Whitelist["10.0.0.2"] {
		t.Errorf("Expected whitelist to be parsed, got %v", cfg.Whitelist)
	}

	t.Setenv("RATE_LIMIT_ENABLED", "false")
	if LoadConfig().Enabled {
		t.Error("Expected rate limiting to be disabled")
	}
}
