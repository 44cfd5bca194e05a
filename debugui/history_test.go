package debugui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHistory(t *testing.T) {
	h := NewHistory(3)
	assert.Equal(t, float32(0), h.Average())
	assert.Equal(t, float32(0), h.Last())

	h.Push(1)
	h.Push(2)
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, []float32{0, 1, 2}, h.Ordered(nil))
	assert.Equal(t, float32(1.5), h.Average())
	assert.Equal(t, float32(2), h.Last())

	h.Push(3)
	h.Push(4)
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 3, h.Size())
	assert.Equal(t, []float32{2, 3, 4}, h.Ordered(make([]float32, 0, 8)))
	assert.Equal(t, float32(3), h.Average())
	assert.Equal(t, float32(4), h.Max())
	assert.Equal(t, float32(4), h.Last())
}

func TestHistoryMinimumSize(t *testing.T) {
	h := NewHistory(0)
	h.Push(5)
	h.Push(6)
	assert.Equal(t, []float32{6}, h.Ordered(nil))
}

func TestFrameTimer(t *testing.T) {
	start := time.Unix(100, 0)
	now := start
	ft := &FrameTimer{lastFrameTime: start, now: func() time.Time { return now }}

	now = now.Add(250 * time.Millisecond)
	assert.InDelta(t, 0.25, ft.GetDeltaTime(), 1e-6)
	assert.Equal(t, float32(0), ft.GetDeltaTime())
}

func TestFill(t *testing.T) {
	assert.Equal(t, float32(0), fill(3, 0))
	assert.Equal(t, float32(0.5), fill(2, 4))
	assert.Equal(t, float32(1), fill(9, 4))
}
