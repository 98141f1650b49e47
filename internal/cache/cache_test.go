package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	applog "familyspend/internal/log"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func TestLRUCache_GetSet(t *testing.T) {
	c := NewLRUCache[string](2, time.Minute)
	c.Set("a", "1")
	c.Set("b", "2")

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "1", v)

	// "b" is now least recently used
	c.Set("c", "3")
	_, ok = c.Get("b")
	assert.False(t, ok)
	assert.Equal(t, 2, c.Size())
}

func TestLRUCache_TakeOnce(t *testing.T) {
	c := NewLRUCache[int](4, time.Minute)
	c.Set("token", 7)

	v, ok := c.Take("token")
	require.True(t, ok)
	assert.Equal(t, 7, v)

	_, ok = c.Take("token")
	assert.False(t, ok)
	assert.Zero(t, c.Size())
}

func TestLRUCache_Expiry(t *testing.T) {
	clk := &clock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := NewLRUCache[int](4, 30*time.Second).WithClock(clk.now)
	c.Set("a", 1)
	c.Set("b", 2)

	clk.t = clk.t.Add(10 * time.Second)
	c.Set("c", 3)

	clk.t = clk.t.Add(25 * time.Second)
	_, ok := c.Take("a")
	assert.False(t, ok, "expired entries cannot be taken")

	assert.Equal(t, 1, c.CleanExpired())
	v, ok := c.Get("c")
	require.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestLRUCache_OverwriteRefreshes(t *testing.T) {
	clk := &clock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewLRUCache[string](4, time.Minute).WithClock(clk.now)
	c.Set("k", "old")
	clk.t = clk.t.Add(50 * time.Second)
	c.Set("k", "new")
	clk.t = clk.t.Add(50 * time.Second)

	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "new", v)
	assert.Equal(t, 1, c.Size())
}

func TestManager_Sweep(t *testing.T) {
	clk := &clock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	a := NewLRUCache[int](4, time.Second).WithClock(clk.now)
	b := NewLRUCache[int](4, time.Hour).WithClock(clk.now)
	a.Set("x", 1)
	b.Set("y", 2)

	m := NewManager(applog.Discard())
	m.Register(a)
	m.Register(b)

	clk.t = clk.t.Add(time.Minute)
	assert.Equal(t, 1, m.Sweep())
	assert.Zero(t, a.Size())
	assert.Equal(t, 1, b.Size())
}

func TestManager_StopWithoutStart(t *testing.T) {
	m := NewManager(applog.Discard())
	m.Stop()

	m.StartCleanup(time.Millisecond)
	m.Stop()
	m.Stop()
}
