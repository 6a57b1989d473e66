package ordering

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerCreateAndGet(t *testing.T) {
	m := NewManager(Deps{Clock: newFakeClock(10)}, time.Hour)

	s := m.Create()
	require.NotEmpty(t, s.ID())

	got, err := m.Get(s.ID())
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = m.Get("nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManagerSessionsShareStore(t *testing.T) {
	m := NewManager(Deps{Clock: newFakeClock(10)}, time.Hour)
	a, b := m.Create(), m.Create()
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Same(t, a.deps.Orders, b.deps.Orders)
}

func TestManagerSweep(t *testing.T) {
	clock := newFakeClock(10)
	m := NewManager(Deps{Clock: clock}, time.Hour)

	stale := m.Create()
	clock.Advance(45 * time.Minute)
	fresh := m.Create()
	clock.Advance(30 * time.Minute)

	assert.Equal(t, 1, m.Sweep(clock.Now()))
	assert.Equal(t, 1, m.Len())
	_, err := m.Get(stale.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, fresh.ChangeQty("pappu", 1))
	clock.Advance(50 * time.Minute)
	assert.Equal(t, 0, m.Sweep(clock.Now()), "touched sessions stay")
}
