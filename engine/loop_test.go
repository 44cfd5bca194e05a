package engine_test

import (
	"errors"
	"testing"
	"time"

	"github.com/plus3/korp/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopAdvance(t *testing.T) {
	loop := engine.NewLoop(engine.TicksPerSecond(12), 0)

	var count int
	ticks, alpha, err := loop.Advance(300*time.Millisecond, func() error {
		count++
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 3, ticks)
	assert.Equal(t, 3, count)
	assert.InDelta(t, 0.6, alpha, 1e-6)

	// The remainder carries into the next frame.
	ticks, alpha, err = loop.Advance(40*time.Millisecond, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, ticks)
	assert.InDelta(t, 0.08, alpha, 1e-5)
}

func TestLoopAlphaStaysBelowOne(t *testing.T) {
	loop := engine.NewLoop(10*time.Millisecond, 0)

	for _, delta := range []time.Duration{0, 1, 9999999, 10000000, 10000001, 33 * time.Millisecond} {
		_, alpha, err := loop.Advance(delta, nil)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, alpha, float32(0))
		assert.Less(t, alpha, float32(1))
	}
}

func TestLoopDropsWholeTimestepsPastCap(t *testing.T) {
	loop := engine.NewLoop(10*time.Millisecond, 2)

	ticks, alpha, err := loop.Advance(55*time.Millisecond, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, ticks)
	assert.InDelta(t, 0.5, alpha, 1e-6)

	stats := loop.Stats()
	assert.Equal(t, uint64(3), stats.DroppedTicks)
	assert.Equal(t, uint64(2), stats.TotalTicks)
}

func TestLoopTickErrorStopsFrame(t *testing.T) {
	loop := engine.NewLoop(10*time.Millisecond, 0)
	boom := errors.New("boom")

	calls := 0
	ticks, _, err := loop.Advance(50*time.Millisecond, func() error {
		calls++
		if calls == 2 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, ticks)

	// Timesteps left behind by the failure run on the next frame.
	ticks, alpha, err := loop.Advance(0, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, ticks)
	assert.Zero(t, alpha)
}

func TestLoopPerSecondWindow(t *testing.T) {
	loop := engine.NewLoop(100*time.Millisecond, 0)

	for i := 0; i < 9; i++ {
		_, _, err := loop.Advance(100*time.Millisecond, nil)
		require.NoError(t, err)
		assert.False(t, loop.WindowElapsed())
	}

	_, _, err := loop.Advance(100*time.Millisecond, nil)
	require.NoError(t, err)
	assert.True(t, loop.WindowElapsed())

	stats := loop.Stats()
	assert.Equal(t, 10, stats.TPS)
	assert.Equal(t, 10, stats.FPS)
	assert.Equal(t, time.Second, stats.Elapsed)
	assert.Equal(t, uint64(10), stats.TotalFrames)

	_, _, err = loop.Advance(50*time.Millisecond, nil)
	require.NoError(t, err)
	assert.False(t, loop.WindowElapsed())
}

func TestTicksPerSecond(t *testing.T) {
	assert.Equal(t, 83333333*time.Nanosecond, engine.TicksPerSecond(12))
	assert.Equal(t, time.Second, engine.TicksPerSecond(0))
}

func TestMorph(t *testing.T) {
	m := engine.MorphOf(3)
	assert.Equal(t, engine.NewMorph(3, 3), m)

	m.New = 5
	assert.Equal(t, 3, m.Old)
	m.Commit()
	assert.Equal(t, engine.NewMorph(5, 5), m)
}

func BenchmarkLoopAdvance(b *testing.B) {
	loop := engine.NewLoop(engine.TicksPerSecond(60), 0)
	tick := func() error { return nil }
	for i := 0; i < b.N; i++ {
		loop.Advance(16*time.Millisecond, tick)
	}
}
