package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClockedMemory(start time.Time) (*memoryStore, *time.Time) {
	now := start
	s := &memoryStore{
		entries: make(map[string]*memoryEntry),
		now:     func() time.Time { return now },
	}
	return s, &now
}

func TestPutIfAbsentFirstWriterWins(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	winner, err := s.PutIfAbsent(ctx, "k", "first", 0)
	require.NoError(t, err)
	assert.Equal(t, "first", winner)

	winner, err = s.PutIfAbsent(ctx, "k", "second", 0)
	require.NoError(t, err)
	assert.Equal(t, "first", winner, "later writers get the stored value back")

	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "first", v)
}

func TestPutIfAbsentExpiry(t *testing.T) {
	start := time.Date(2025, time.March, 14, 9, 0, 0, 0, time.UTC)
	s, now := newClockedMemory(start)
	ctx := context.Background()

	_, err := s.PutIfAbsent(ctx, "k", "first", time.Minute)
	require.NoError(t, err)

	*now = start.Add(2 * time.Minute)

	winner, err := s.PutIfAbsent(ctx, "k", "second", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "second", winner, "expired entries are replaceable")
}

func TestSetFlagFiresOnce(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	first, err := s.SetFlag(ctx, "flag", 0)
	require.NoError(t, err)
	assert.True(t, first)

	for i := 0; i < 3; i++ {
		again, err := s.SetFlag(ctx, "flag", 0)
		require.NoError(t, err)
		assert.False(t, again)
	}
}

func TestIncrement(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		n, err := s.Increment(ctx, "visits", time.Hour)
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}

	v, ok, err := s.Get(ctx, "visits")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "3", v)
}

func TestIncrementResetsAfterExpiry(t *testing.T) {
	start := time.Date(2025, time.March, 14, 9, 0, 0, 0, time.UTC)
	s, now := newClockedMemory(start)
	ctx := context.Background()

	_, err := s.Increment(ctx, "visits", time.Minute)
	require.NoError(t, err)

	*now = start.Add(2 * time.Minute)

	n, err := s.Increment(ctx, "visits", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestDelete(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	_, err := s.PutIfAbsent(ctx, "k", "v", 0)
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, "k"))

	_, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}
