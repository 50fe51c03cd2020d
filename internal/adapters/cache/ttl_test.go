package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLCache_SetGet(t *testing.T) {
	t.Parallel()

	c := NewTTLCache(0)

	c.Set("astrid@example.com", "123456", time.Minute)

	got, found := c.Get("astrid@example.com")
	require.True(t, found)
	assert.Equal(t, "123456", got)
	assert.Equal(t, 1, c.Len())
}

func TestTTLCache_GetMissing(t *testing.T) {
	t.Parallel()

	c := NewTTLCache(0)

	_, found := c.Get("nobody@example.com")
	assert.False(t, found)
}

func TestTTLCache_Set_OverwritesLiveEntry(t *testing.T) {
	t.Parallel()

	c := NewTTLCache(0)

	c.Set("astrid@example.com", "111111", time.Minute)
	c.Set("astrid@example.com", "222222", time.Minute)

	got, found := c.Get("astrid@example.com")
	require.True(t, found)
	assert.Equal(t, "222222", got)
	assert.Equal(t, 1, c.Len())
}

func TestTTLCache_ExpiredEntryIsAbsent(t *testing.T) {
	t.Parallel()

	c := NewTTLCache(0)

	c.Set("astrid@example.com", "123456", -time.Second)

	_, found := c.Get("astrid@example.com")
	assert.False(t, found)
	assert.Equal(t, 0, c.Len())
}

func TestTTLCache_Consume_Match(t *testing.T) {
	t.Parallel()

	c := NewTTLCache(0)
	c.Set("astrid@example.com", "123456", time.Minute)

	matched, found := c.Consume("astrid@example.com", "123456")
	assert.True(t, matched)
	assert.True(t, found)

	_, found = c.Get("astrid@example.com")
	assert.False(t, found)
}

func TestTTLCache_Consume_MismatchStillRemoves(t *testing.T) {
	t.Parallel()

	c := NewTTLCache(0)
	c.Set("astrid@example.com", "123456", time.Minute)

	matched, found := c.Consume("astrid@example.com", "654321")
	assert.False(t, matched)
	assert.True(t, found)

	matched, found = c.Consume("astrid@example.com", "123456")
	assert.False(t, matched)
	assert.False(t, found)
}

func TestTTLCache_Consume_Expired(t *testing.T) {
	t.Parallel()

	c := NewTTLCache(0)
	c.Set("astrid@example.com", "123456", -time.Second)

	matched, found := c.Consume("astrid@example.com", "123456")
	assert.False(t, matched)
	assert.False(t, found)
}

func TestTTLCache_Remove(t *testing.T) {
	t.Parallel()

	c := NewTTLCache(0)
	c.Set("astrid@example.com", "123456", time.Minute)

	c.Remove("astrid@example.com")

	_, found := c.Get("astrid@example.com")
	assert.False(t, found)
}

func TestTTLCache_Janitor_DropsExpiredEntries(t *testing.T) {
	t.Parallel()

	c := NewTTLCache(5 * time.Millisecond)
	defer c.Stop()

	c.Set("expired", "111111", time.Millisecond)
	c.Set("live", "222222", time.Minute)

	assert.Eventually(t, func() bool {
		return c.Len() == 1
	}, time.Second, 10*time.Millisecond)

	_, found := c.Get("live")
	assert.True(t, found)
}

func TestTTLCache_Stop_Idempotent(t *testing.T) {
	t.Parallel()

	c := NewTTLCache(time.Minute)

	c.Stop()
	c.Stop()

	c.Set("astrid@example.com", "123456", time.Minute)
	_, found := c.Get("astrid@example.com")
	assert.True(t, found)
}
