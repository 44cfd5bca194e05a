package engine

import (
	"time"
)

// DefaultMaxTicks bounds the ticks run for a single frame.
const DefaultMaxTicks = 8

// LoopStats are the loop counters. The per-second fields describe the last
// completed one second window.
type LoopStats struct {
	Timestep     time.Duration
	TotalTicks   uint64
	TotalFrames  uint64
	DroppedTicks uint64
	Elapsed      time.Duration
	TPS          int
	FPS          int
	Alpha        float32
}

// Loop is a fixed-timestep accumulator. Frame deltas are added to the
// accumulator and consumed in whole timesteps, each running one tick.
type Loop struct {
	timestep time.Duration
	maxTicks int

	accumulator time.Duration

	window       time.Duration
	windowTicks  int
	windowFrames int

	stats LoopStats
}

// NewLoop creates a loop ticking every timestep. At most maxTicks ticks run
// per Advance; a value below one means DefaultMaxTicks.
func NewLoop(timestep time.Duration, maxTicks int) *Loop {
	if timestep <= 0 {
		panic("engine: loop timestep must be positive")
	}
	if maxTicks < 1 {
		maxTicks = DefaultMaxTicks
	}
	return &Loop{
		timestep: timestep,
		maxTicks: maxTicks,
		stats:    LoopStats{Timestep: timestep},
	}
}

// TicksPerSecond converts a tick rate to a timestep.
func TicksPerSecond(tps int) time.Duration {
	if tps < 1 {
		tps = 1
	}
	return time.Second / time.Duration(tps)
}

func (l *Loop) Timestep() time.Duration {
	return l.timestep
}

// Advance adds delta to the accumulator and runs tick once per whole
// timestep. When more than maxTicks are due, the excess whole timesteps are
// discarded and counted as dropped, keeping alpha in [0, 1).
//
// A tick error stops the frame: the remaining due timesteps stay in the
// accumulator and the error is returned.
func (l *Loop) Advance(delta time.Duration, tick func() error) (ticks int, alpha float32, err error) {
	if delta < 0 {
		delta = 0
	}
	l.accumulator += delta
	l.stats.Elapsed += delta
	l.stats.TotalFrames++
	l.windowFrames++

	for l.accumulator >= l.timestep {
		if ticks == l.maxTicks {
			dropped := l.accumulator / l.timestep
			l.accumulator -= dropped * l.timestep
			l.stats.DroppedTicks += uint64(dropped)
			break
		}

		l.accumulator -= l.timestep
		ticks++
		l.stats.TotalTicks++
		l.windowTicks++

		if tick != nil {
			if err = tick(); err != nil {
				break
			}
		}
	}

	alpha = l.Alpha()
	l.stats.Alpha = alpha

	l.window += delta
	if l.window >= time.Second {
		l.stats.TPS = l.windowTicks
		l.stats.FPS = l.windowFrames
		l.window %= time.Second
		l.windowTicks = 0
		l.windowFrames = 0
	}

	return ticks, alpha, err
}

// Alpha is the fraction of a timestep left in the accumulator.
func (l *Loop) Alpha() float32 {
	a := float32(float64(l.accumulator) / float64(l.timestep))
	if a >= 1 {
		// only reachable after a tick error left whole timesteps behind
		return 0.9999999
	}
	return a
}

// WindowElapsed reports whether the last Advance closed a one second window.
func (l *Loop) WindowElapsed() bool {
	return l.windowTicks == 0 && l.windowFrames == 0 && l.stats.TotalFrames > 0
}

func (l *Loop) Stats() LoopStats {
	return l.stats
}
