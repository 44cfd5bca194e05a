package engine

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/korp/render"
	"github.com/plus3/korp/vmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type memBuffer []byte

func (b memBuffer) Size() int                     { return len(b) }
func (b memBuffer) Write(offset int, data []byte) { copy(b[offset:], data) }
func (b memBuffer) Release()                      {}

type nopPipeline struct{}

func (nopPipeline) Release() {}

type countingTarget struct{ device *memDevice }

func (t countingTarget) Clear(render.Color) {}
func (t countingTarget) Draw(render.Pipeline, render.Buffer, render.Buffer, uint32, uint32, uint32) {
	t.device.draws++
}
func (t countingTarget) Present() error {
	t.device.presents++
	return nil
}

type memDevice struct {
	lose     bool
	draws    int
	presents int
}

func (d *memDevice) Limits() render.Limits {
	return render.Limits{MinUniformOffsetAlignment: 256}
}
func (d *memDevice) CreateVertexBuffer(size int) (render.Buffer, error) {
	return make(memBuffer, size), nil
}
func (d *memDevice) CreateUniformBuffer(size int) (render.Buffer, error) {
	return make(memBuffer, size), nil
}
func (d *memDevice) CreatePipeline(render.Buffer, int) (render.Pipeline, error) {
	return nopPipeline{}, nil
}
func (d *memDevice) Acquire() (render.Target, error) {
	if d.lose {
		return nil, fmt.Errorf("surface outdated: %w", render.ErrFrameLost)
	}
	return countingTarget{device: d}, nil
}

type scriptedCore struct {
	calls      []string
	updateErr  error
	renderErr  error
	leaveScope bool
	alphas     []float32
	width      int
	height     int
	sawPressed bool
}

func (c *scriptedCore) Input(in *Input) {
	c.calls = append(c.calls, "input")
	c.sawPressed = c.sawPressed || in.Pressed(ebiten.KeySpace)
}

func (c *scriptedCore) Update() error {
	c.calls = append(c.calls, "update")
	return c.updateErr
}

func (c *scriptedCore) Render(frame *render.Frame, alpha float32) error {
	c.alphas = append(c.alphas, alpha)
	frame.DrawRectangleFilled(render.Rectangle{Width: 1, Height: 1}, vmath.V(1, 0), vmath.Vec2{}, render.White)
	if c.leaveScope {
		frame.BeginScope(render.NewCamera(10, 10))
	}
	return c.renderErr
}

func (c *scriptedCore) Resize(width, height int) {
	c.width, c.height = width, height
}

func newTestEngine(t *testing.T, core Core, device *memDevice, logger *zap.Logger) *Engine {
	t.Helper()
	e := New(core, Options{Timestep: 10 * time.Millisecond, Logger: logger})
	r, err := render.New(device, 100, 50, logger)
	require.NoError(t, err)
	e.attach(r, 100, 50)
	return e
}

func TestEngineAttach(t *testing.T) {
	core := &scriptedCore{}
	e := newTestEngine(t, core, &memDevice{}, nil)

	assert.Equal(t, Initialized, e.State())
	assert.Equal(t, 100, core.width)
	assert.Equal(t, 50, core.height)
}

func TestEngineStepRunsTicksInOrder(t *testing.T) {
	core := &scriptedCore{}
	e := newTestEngine(t, core, &memDevice{}, nil)

	e.input.Poll([]ebiten.Key{ebiten.KeySpace}, vmath.Vec2{})
	require.NoError(t, e.Step(25*time.Millisecond))

	assert.Equal(t, []string{"input", "update", "input", "update"}, core.calls)
	assert.True(t, core.sawPressed)
	assert.InDelta(t, 0.5, e.alpha, 1e-6)
	assert.False(t, e.input.Pressed(ebiten.KeySpace), "edges are consumed after the tick")
}

func TestEngineUpdateErrorIsKept(t *testing.T) {
	boom := errors.New("boom")
	core := &scriptedCore{updateErr: boom}
	e := newTestEngine(t, core, &memDevice{}, nil)

	err := e.Step(10 * time.Millisecond)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, e.err, boom)
}

func TestEngineRender(t *testing.T) {
	device := &memDevice{}
	core := &scriptedCore{}
	e := newTestEngine(t, core, device, nil)

	require.NoError(t, e.Step(15*time.Millisecond))
	e.render()

	assert.NoError(t, e.err)
	assert.Equal(t, 1, device.draws)
	assert.Equal(t, 1, device.presents)
	require.Len(t, core.alphas, 1)
	assert.InDelta(t, 0.5, core.alphas[0], 1e-6)
}

func TestEngineSkipsLostFrames(t *testing.T) {
	logCore, logs := observer.New(zap.DebugLevel)
	device := &memDevice{lose: true}
	e := newTestEngine(t, &scriptedCore{}, device, zap.New(logCore))

	e.render()
	assert.NoError(t, e.err)
	assert.Zero(t, device.presents)
	assert.Equal(t, 1, logs.FilterMessage("frame lost").Len())
	assert.Equal(t, uint64(1), e.RendererStats().LostFrames)

	device.lose = false
	e.render()
	assert.Equal(t, 1, device.presents)
}

func TestEngineRenderFailures(t *testing.T) {
	boom := errors.New("shape changed")

	t.Run("core error", func(t *testing.T) {
		device := &memDevice{}
		e := newTestEngine(t, &scriptedCore{renderErr: boom}, device, nil)
		e.render()
		assert.ErrorIs(t, e.err, boom)
		assert.Zero(t, device.presents)
	})

	t.Run("open scope", func(t *testing.T) {
		device := &memDevice{}
		e := newTestEngine(t, &scriptedCore{leaveScope: true}, device, nil)
		e.render()
		assert.ErrorIs(t, e.err, render.ErrScopeOpen)
		assert.Zero(t, device.presents)
	})
}

func TestEngineLogsLoopWindow(t *testing.T) {
	logCore, logs := observer.New(zap.InfoLevel)
	e := newTestEngine(t, &scriptedCore{}, &memDevice{}, zap.New(logCore))

	for i := 0; i < 10; i++ {
		require.NoError(t, e.Step(100*time.Millisecond))
	}

	entries := logs.FilterMessage("loop").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, int64(100), fields["tps"])
	assert.Equal(t, int64(10), fields["fps"])
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "initialized", Initialized.String())
	assert.Equal(t, "State(7)", State(7).String())
}
