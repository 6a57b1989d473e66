package ordering

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimestampIDs(t *testing.T) {
	g := &TimestampIDs{}
	now := time.UnixMilli(1700000000123)

	assert.Equal(t, "SS-1700000000123", g.NextID(now))
	assert.Equal(t, "SS-1700000000124", g.NextID(now), "same millisecond bumps")
	assert.Equal(t, "SS-1700000000125", g.NextID(now.Add(-time.Second)), "clock going back never repeats")
	assert.Equal(t, "SS-1700000001000", g.NextID(now.Add(877*time.Millisecond)))
}

func TestTimestampIDsConcurrent(t *testing.T) {
	g := &TimestampIDs{}
	now := time.UnixMilli(1700000000000)

	var mu sync.Mutex
	seen := map[string]bool{}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := g.NextID(now)
			mu.Lock()
			seen[id] = true
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 50)
}
