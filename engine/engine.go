package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/korp/render"
	"github.com/plus3/korp/render/ebitendev"
	"github.com/plus3/korp/vmath"
	"go.uber.org/zap"
)

type State int

const (
	Uninitialized State = iota
	Initialized
	Terminated
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	case Terminated:
		return "terminated"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Overlay is drawn over each frame after the core, e.g. a debug UI.
type Overlay interface {
	Update()
	Draw(screen *ebiten.Image)
	Layout(width, height int)
}

// KeyboardCapturer is implemented by overlays that can claim the keyboard.
// While captured, the core sees no keys held.
type KeyboardCapturer interface {
	CapturesKeyboard() bool
}

type Options struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	Timestep  time.Duration
	MaxTicks  int
	Logger    *zap.Logger
	Overlay   Overlay
}

func OptionsFromConfig(cfg *Config, logger *zap.Logger) Options {
	return Options{
		Title:     cfg.Window.Title,
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		Resizable: cfg.Window.Resizable,
		Timestep:  TicksPerSecond(cfg.Simulation.TicksPerSecond),
		MaxTicks:  cfg.Simulation.MaxTicks,
		Logger:    logger,
	}
}

// Engine hosts a Core in an ebiten window. It implements ebiten.Game.
//
// The renderer is created on the first Draw with a non-empty screen; until
// then no ticks run. Every Update polls input and advances the loop by the
// wall time since the previous Update. Every Draw renders the core once with
// the loop's alpha.
type Engine struct {
	core    Core
	opts    Options
	logger  *zap.Logger
	state   State
	loop    *Loop
	input   *Input
	overlay Overlay

	device   *ebitendev.Device
	renderer *render.Renderer

	width, height int
	last          time.Time
	alpha         float32
	pressed       []ebiten.Key
	err           error

	now func() time.Time
}

func New(core Core, opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Timestep <= 0 {
		opts.Timestep = TicksPerSecond(12)
	}
	return &Engine{
		core:    core,
		opts:    opts,
		logger:  opts.Logger,
		loop:    NewLoop(opts.Timestep, opts.MaxTicks),
		input:   NewInput(),
		overlay: opts.Overlay,
		device:  ebitendev.New(),
		now:     time.Now,
	}
}

// Run opens the window and blocks until the game terminates. Escape and
// closing the window end the run without error.
func (e *Engine) Run() error {
	ebiten.SetWindowSize(e.opts.Width, e.opts.Height)
	ebiten.SetWindowTitle(e.opts.Title)
	if e.opts.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(ebiten.SyncWithFPS)

	err := ebiten.RunGame(e)
	e.shutdown()
	return err
}

func (e *Engine) State() State {
	return e.state
}

func (e *Engine) LoopStats() LoopStats {
	return e.loop.Stats()
}

// RendererStats reports the renderer counters, or zero before the first
// frame.
func (e *Engine) RendererStats() render.Stats {
	if e.renderer == nil {
		return render.Stats{}
	}
	return e.renderer.Stats()
}

func (e *Engine) Update() error {
	if e.err != nil {
		return e.err
	}
	if ebiten.IsWindowBeingClosed() || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		e.logger.Info("terminating", zap.Uint64("ticks", e.loop.Stats().TotalTicks))
		return ebiten.Termination
	}
	if e.state != Initialized {
		return nil
	}

	e.pressed = inpututil.AppendPressedKeys(e.pressed[:0])
	if c, ok := e.overlay.(KeyboardCapturer); ok && c.CapturesKeyboard() {
		e.pressed = e.pressed[:0]
	}
	x, y := ebiten.CursorPosition()
	e.input.Poll(e.pressed, vmath.V(float32(x), float32(y)))

	now := e.now()
	delta := now.Sub(e.last)
	e.last = now

	if err := e.Step(delta); err != nil {
		return err
	}

	if e.overlay != nil {
		e.overlay.Update()
	}
	return nil
}

// Step advances the simulation by delta, running Input then Update on the
// core once per due tick.
func (e *Engine) Step(delta time.Duration) error {
	_, alpha, err := e.loop.Advance(delta, e.tick)
	e.alpha = alpha
	if err != nil {
		e.err = fmt.Errorf("tick %d: %w", e.loop.Stats().TotalTicks, err)
		return e.err
	}

	if e.loop.WindowElapsed() {
		stats := e.loop.Stats()
		e.logger.Info("loop",
			zap.Int("tps", stats.TPS),
			zap.Int("fps", stats.FPS),
			zap.Duration("elapsed", stats.Elapsed.Truncate(time.Millisecond)),
			zap.Uint64("dropped_ticks", stats.DroppedTicks))
	}
	return nil
}

func (e *Engine) tick() error {
	e.core.Input(e.input)
	err := e.core.Update()
	e.input.Update()
	return err
}

func (e *Engine) Draw(screen *ebiten.Image) {
	bounds := screen.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if e.state == Uninitialized {
		if width <= 0 || height <= 0 {
			return
		}
		if err := e.initialize(width, height); err != nil {
			e.err = err
			e.state = Terminated
			return
		}
	}
	if e.state != Initialized {
		return
	}

	if width != e.width || height != e.height {
		e.resize(width, height)
	}

	e.device.SetScreen(screen)
	e.render()
	e.device.SetScreen(nil)

	if e.overlay != nil {
		e.overlay.Draw(screen)
	}
}

func (e *Engine) Layout(outsideWidth, outsideHeight int) (int, int) {
	if e.overlay != nil {
		e.overlay.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

func (e *Engine) initialize(width, height int) error {
	renderer, err := render.New(e.device, width, height, e.logger.Named("render"))
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	e.attach(renderer, width, height)
	e.logger.Info("initialized", zap.Int("width", width), zap.Int("height", height))
	return nil
}

// attach makes r the renderer and starts the simulation clock.
func (e *Engine) attach(r *render.Renderer, width, height int) {
	e.renderer = r
	e.width, e.height = width, height
	e.core.Resize(width, height)
	e.last = e.now()
	e.state = Initialized
}

func (e *Engine) resize(width, height int) {
	e.width, e.height = width, height
	e.renderer.Resize(width, height)
	e.core.Resize(width, height)
	e.logger.Debug("resized", zap.Int("width", width), zap.Int("height", height))
}

// render draws one frame. A lost frame is skipped; any other failure is kept
// and ends the run at the next Update.
func (e *Engine) render() {
	frame := e.renderer.Begin()
	if err := e.core.Render(frame, e.alpha); err != nil {
		frame.Discard()
		e.err = fmt.Errorf("render: %w", err)
		return
	}

	err := frame.End()
	switch {
	case err == nil:
	case errors.Is(err, render.ErrFrameLost):
		e.logger.Warn("frame lost", zap.Error(err))
	default:
		e.err = fmt.Errorf("submit frame: %w", err)
	}
}

func (e *Engine) shutdown() {
	if e.renderer != nil {
		e.renderer.Release()
		e.renderer = nil
	}
	e.state = Terminated
	_ = e.logger.Sync()
}
