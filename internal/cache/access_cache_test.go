package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/hirebridge/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testEntry(hasAccess bool) Entry {
	return Entry{
		HasAccess: hasAccess,
		Application: models.ApplicationContext{
			ID:         7,
			UserID:     1,
			JobID:      3,
			BusinessID: 2,
			JobTitle:   "Line Cook",
		},
	}
}

func TestAccessCache_PutGet(t *testing.T) {
	c := NewAccessCache(time.Minute, nil)
	defer c.Close()
	ctx := context.Background()

	key := Key(7, 1, models.PartyUser)
	c.Put(ctx, key, testEntry(true))

	entry, ok := c.Get(ctx, key)
	require.True(t, ok)
	assert.True(t, entry.HasAccess)
	assert.Equal(t, uint(7), entry.Application.ID)
	assert.Equal(t, "Line Cook", entry.Application.JobTitle)

	_, ok = c.Get(ctx, Key(7, 2, models.PartyUser))
	assert.False(t, ok)
}

func TestAccessCache_DeniedVerdictsAreCachedToo(t *testing.T) {
	c := NewAccessCache(time.Minute, nil)
	defer c.Close()
	ctx := context.Background()

	key := Key(7, 99, models.PartyBusiness)
	c.Put(ctx, key, testEntry(false))

	entry, ok := c.Get(ctx, key)
	require.True(t, ok)
	assert.False(t, entry.HasAccess)
}

func TestAccessCache_ExpiredEntryIsAbsent(t *testing.T) {
	c := NewAccessCache(10*time.Millisecond, nil)
	defer c.Close()
	ctx := context.Background()

	key := Key(1, 1, models.PartyUser)
	c.Put(ctx, key, testEntry(true))

	_, ok := c.Get(ctx, key)
	require.True(t, ok)

	time.Sleep(25 * time.Millisecond)

	// Expired before any sweep necessarily ran: Get must treat it as absent.
	_, ok = c.Get(ctx, key)
	assert.False(t, ok)
}

// newSweeplessCache builds a cache whose background sweeper never runs, so
// Sweep results are deterministic.
func newSweeplessCache(ttl time.Duration) *AccessCache {
	return &AccessCache{
		entries: make(map[string]Entry),
		ttl:     ttl,
		log:     zap.NewNop(),
		stop:    make(chan struct{}),
	}
}

func TestAccessCache_SweepReclaimsExpired(t *testing.T) {
	c := newSweeplessCache(10 * time.Millisecond)
	ctx := context.Background()

	c.Put(ctx, Key(1, 1, models.PartyUser), testEntry(true))
	c.Put(ctx, Key(2, 1, models.PartyUser), testEntry(true))
	require.Equal(t, 2, c.Len())

	time.Sleep(25 * time.Millisecond)
	c.Put(ctx, Key(3, 1, models.PartyUser), testEntry(true))

	removed := c.Sweep()
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, c.Len())

	// The fresh entry survives the sweep.
	_, ok := c.Get(ctx, Key(3, 1, models.PartyUser))
	assert.True(t, ok)
}

func TestAccessCache_SweepIsIdempotent(t *testing.T) {
	c := newSweeplessCache(5 * time.Millisecond)

	c.Put(context.Background(), Key(1, 1, models.PartyUser), testEntry(true))
	time.Sleep(15 * time.Millisecond)

	assert.Equal(t, 1, c.Sweep())
	assert.Equal(t, 0, c.Sweep())
}

func TestAccessCache_LastWriterWins(t *testing.T) {
	c := NewAccessCache(time.Minute, nil)
	defer c.Close()
	ctx := context.Background()

	key := Key(7, 1, models.PartyUser)
	c.Put(ctx, key, testEntry(false))
	c.Put(ctx, key, testEntry(true))

	entry, ok := c.Get(ctx, key)
	require.True(t, ok)
	assert.True(t, entry.HasAccess)
}

func TestAccessCache_ConcurrentAccess(t *testing.T) {
	c := NewAccessCache(50*time.Millisecond, nil)
	defer c.Close()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				key := Key(uint(j%10), uint(n), models.PartyUser)
				c.Put(ctx, key, testEntry(true))
				c.Get(ctx, key)
				if j%50 == 0 {
					c.Sweep()
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestKey(t *testing.T) {
	assert.Equal(t, "7:1:user", Key(7, 1, models.PartyUser))
	assert.Equal(t, "7:2:business", Key(7, 2, models.PartyBusiness))
}
