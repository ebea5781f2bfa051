package recurrence

import (
	"bytes"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nogy21/libplanner/calendar"
	"github.com/nogy21/libplanner/event"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestCache(ttl time.Duration, maxEntries int) (*Cache, *fakeClock) {
	clk := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	return newCache(CacheConfig{TTL: ttl, MaxEntries: maxEntries}, clk.Now), clk
}

func TestCache_BasicOperations(t *testing.T) {
	cache, _ := newTestCache(5*time.Minute, 100)
	defer cache.Close()

	instances, err := Expand(baseEvent("2024-01-01", event.RepeatRule{Type: calendar.FrequencyDaily, Interval: 1, EndDate: until("2024-01-03")}), testCeiling)
	require.NoError(t, err)

	_, found := cache.Get("series")
	assert.False(t, found)

	cache.Set("series", instances)
	got, found := cache.Get("series")
	require.True(t, found)
	assert.Equal(t, instances, got)

	got[0].Title = "changed"
	again, _ := cache.Get("series")
	assert.Equal(t, "test", again[0].Title, "cached instances must not alias callers")
}

func TestCache_TTLExpiration(t *testing.T) {
	cache, clk := newTestCache(time.Minute, 100)
	defer cache.Close()

	cache.Set("a", []event.Event{})
	clk.Advance(30 * time.Second)
	_, found := cache.Get("a")
	assert.True(t, found)

	clk.Advance(2 * time.Minute)
	assert.Equal(t, CacheStats{TotalEntries: 1, ExpiredEntries: 1, ActiveEntries: 0}, cache.Stats())

	_, found = cache.Get("a")
	assert.False(t, found)
	assert.Equal(t, 0, cache.Stats().TotalEntries)
}

func TestCache_EvictsLeastRecentlyAccessed(t *testing.T) {
	cache, clk := newTestCache(time.Hour, 3)
	defer cache.Close()

	for i := 0; i < 3; i++ {
		cache.Set(fmt.Sprintf("k%d", i), nil)
		clk.Advance(time.Second)
	}
	_, found := cache.Get("k0")
	require.True(t, found)
	clk.Advance(time.Second)

	cache.Set("k3", nil)

	_, found = cache.Get("k1")
	assert.False(t, found, "k1 was the least recently accessed")
	for _, key := range []string{"k0", "k2", "k3"} {
		_, found := cache.Get(key)
		assert.True(t, found, key)
	}
}

func TestCache_Concurrent(t *testing.T) {
	cache := NewCache(CacheConfig{TTL: time.Minute, MaxEntries: 10, CleanupInterval: time.Millisecond})
	defer cache.Close()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%20)
			cache.Set(key, nil)
			cache.Get(key)
			cache.Stats()
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, cache.Stats().TotalEntries, 10)
}

func TestCache_CloseTwice(t *testing.T) {
	cache := NewCache(DefaultCacheConfig)
	cache.Set("a", nil)
	cache.Close()
	cache.Close()
	assert.Equal(t, 0, cache.Stats().TotalEntries)
}

func TestEngine_WithCache(t *testing.T) {
	cache, _ := newTestCache(time.Hour, 100)
	defer cache.Close()

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	engine := NewEngine(WithCache(cache), WithLogger(logger))

	ev := baseEvent("2024-01-31", event.RepeatRule{Type: calendar.FrequencyMonthly, Interval: 1})
	first, err := engine.Expand(ev)
	require.NoError(t, err)
	second, err := engine.Expand(ev)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.Stats().TotalEntries)
	assert.Contains(t, logs.String(), "recurrence cache hit")

	other := ev
	other.Title = "renamed"
	renamed, err := engine.Expand(other)
	require.NoError(t, err)
	assert.Equal(t, "renamed", renamed[0].Title)
	assert.Equal(t, 2, cache.Stats().TotalEntries)

	_, err = engine.ExpandUntil(ev, calendar.MustParseDate("2024-12-31"))
	require.NoError(t, err)
	assert.Equal(t, 3, cache.Stats().TotalEntries, "ceiling is part of the key")
}

func TestEngine_WithCacheDoesNotStoreErrors(t *testing.T) {
	cache, _ := newTestCache(time.Hour, 100)
	defer cache.Close()

	engine := NewEngine(WithCache(cache))
	_, err := engine.Expand(baseEvent("2024-01-01", event.RepeatRule{Type: calendar.FrequencyDaily}))
	assert.True(t, IsType(err, ErrInvalidInterval))
	assert.Equal(t, 0, cache.Stats().TotalEntries)
}
