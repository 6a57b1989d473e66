package ordering

import (
	"strconv"
	"sync"
	"time"
)

const OrderIDPrefix = "SS-"

type IDGenerator interface {
	NextID(now time.Time) string
}

// TimestampIDs issues "SS-<unix millis>" ids. Two calls in the same
// millisecond get consecutive values, so ids never repeat within a process.
type TimestampIDs struct {
	mu   sync.Mutex
	last int64
}

func (g *TimestampIDs) NextID(now time.Time) string {
	ms := now.UnixMilli()
	g.mu.Lock()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	g.mu.Unlock()
	return OrderIDPrefix + strconv.FormatInt(ms, 10)
}
