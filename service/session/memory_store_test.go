package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_ApplyAndLoad(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(10, time.Minute)

	slots, err := s.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, slots)

	require.NoError(t, s.Apply(ctx, "u1", []SlotSet{
		Set(SlotColor, "đỏ"),
		Set(SlotProductOffset, 3),
	}))
	slots, err = s.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "đỏ", slots.String(SlotColor))
	assert.Equal(t, 3, slots[SlotProductOffset])

	v, err := s.Get(ctx, "u1", SlotColor)
	require.NoError(t, err)
	assert.Equal(t, "đỏ", v)
}

func TestMemoryStore_NilClears(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(10, time.Minute)
	require.NoError(t, s.Apply(ctx, "u1", []SlotSet{Set(SlotSize, "M")}))
	require.NoError(t, s.Apply(ctx, "u1", []SlotSet{Set(SlotSize, nil)}))

	slots, err := s.Load(ctx, "u1")
	require.NoError(t, err)
	_, present := slots[SlotSize]
	assert.False(t, present)
}

func TestMemoryStore_LoadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(10, time.Minute)
	require.NoError(t, s.Apply(ctx, "u1", []SlotSet{Set(SlotName, "áo")}))

	slots, _ := s.Load(ctx, "u1")
	slots[SlotName] = "quần"

	again, _ := s.Load(ctx, "u1")
	assert.Equal(t, "áo", again.String(SlotName))
}

func TestMemoryStore_SessionsIsolated(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(10, time.Minute)
	require.NoError(t, s.Apply(ctx, "a", []SlotSet{Set(SlotColor, "đen")}))

	v, err := s.Get(ctx, "b", SlotColor)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestMemoryStore_BoundedBySessionCount(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(2, time.Minute)
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.Apply(ctx, id, []SlotSet{Set(SlotName, id)}))
	}
	assert.Equal(t, 2, s.Len())

	slots, _ := s.Load(ctx, "a")
	assert.Empty(t, slots)
}

func TestMemoryStore_ConcurrentApply(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(100, time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.Apply(ctx, "shared", []SlotSet{Set(string(rune('a'+i)), i)})
		}(i)
	}
	wg.Wait()
	slots, _ := s.Load(ctx, "shared")
	assert.Len(t, slots, 20)
}

func TestMemoryStore_DeleteAndSweep(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(10, time.Nanosecond)
	require.NoError(t, s.Apply(ctx, "gone", []SlotSet{Set(SlotName, "x")}))
	time.Sleep(time.Millisecond)
	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 0, s.Len())

	keep := NewMemoryStore(10, time.Minute)
	require.NoError(t, keep.Apply(ctx, "u", []SlotSet{Set(SlotName, "x")}))
	keep.Delete("u")
	assert.Equal(t, 0, keep.Len())
}
