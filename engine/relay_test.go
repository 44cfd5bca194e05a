package engine_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/plus3/korp/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelayKeepsNewest(t *testing.T) {
	r := engine.NewRelay[int]()

	_, ok := r.Drain()
	assert.False(t, ok)

	for i := 1; i <= 3; i++ {
		assert.True(t, r.Send(i))
	}
	v, ok := r.Drain()
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	assert.Equal(t, uint64(2), r.Dropped())

	_, ok = r.Drain()
	assert.False(t, ok)
}

func TestRelayClose(t *testing.T) {
	r := engine.NewRelay[string]()
	r.Send("last")
	r.Close()

	assert.False(t, r.Send("late"))

	v, ok := r.Receive(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "last", v)

	_, ok = r.Receive(context.Background())
	assert.False(t, ok)
}

func TestRelayReceiveCancelled(t *testing.T) {
	r := engine.NewRelay[int]()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, ok := r.Receive(ctx)
	assert.False(t, ok)
}

func TestRunRenderer(t *testing.T) {
	r := engine.NewRelay[int]()

	var mu sync.Mutex
	var seen []int
	consumer := engine.RunRenderer(context.Background(), r, func(v int) error {
		mu.Lock()
		seen = append(seen, v)
		mu.Unlock()
		return nil
	})

	for i := 1; i <= 100; i++ {
		r.Send(i)
	}
	r.Close()
	require.NoError(t, consumer.Wait())

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, seen)
	assert.Equal(t, 100, seen[len(seen)-1], "the newest value is always delivered")
	for i := 1; i < len(seen); i++ {
		assert.Less(t, seen[i-1], seen[i])
	}
	assert.Equal(t, uint64(len(seen)), consumer.Received())
	assert.Equal(t, uint64(100), consumer.Received()+r.Dropped())
}

func TestRunRendererStopsOnError(t *testing.T) {
	r := engine.NewRelay[int]()
	boom := errors.New("boom")

	consumer := engine.RunRenderer(context.Background(), r, func(int) error { return boom })
	r.Send(1)
	assert.ErrorIs(t, consumer.Wait(), boom)
}

func TestRunRendererStopsOnCancel(t *testing.T) {
	r := engine.NewRelay[int]()
	ctx, cancel := context.WithCancel(context.Background())

	consumer := engine.RunRenderer(ctx, r, func(int) error { return nil })
	cancel()
	assert.NoError(t, consumer.Wait())
}
