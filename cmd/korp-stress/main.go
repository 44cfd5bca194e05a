package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/korp/ecs"
	"github.com/plus3/korp/engine"
	"github.com/plus3/korp/fixed"
	"github.com/plus3/korp/game"
	"github.com/plus3/korp/render"
	"go.uber.org/zap"
)

// worldExtent is the half size of the stress scene; bodies are scattered
// inside it.
const worldExtent = 16000

var steering = [...]game.CommandKind{game.Accelerate, game.Decelerate, game.TurnLeft, game.TurnRight}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The initial number of bodies to spawn.")
	commands := flag.Int("commands", 1000, "Steering commands queued per tick for random bodies.")
	outlines := flag.Bool("outlines", false, "Render outlines and hitboxes.")
	threaded := flag.Bool("threaded", false, "Render snapshots on a separate goroutine.")
	seed := flag.Uint64("seed", 1, "Seed for body placement and steering.")
	profileMode := flag.String("profile", "", "Write a cpu or mem profile to the working directory.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log, err := engine.NewLogger(engine.LoggingConfig{Level: "info", Format: "console"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		log.Fatal("unknown profile mode", zap.String("profile", *profileMode))
	}

	cfg := stressConfig{
		Duration: *duration,
		Entities: *entityCount,
		Commands: *commands,
		Outlines: *outlines,
		Threaded: *threaded,
		Seed:     *seed,
	}
	report, err := run(cfg, log)
	if err != nil {
		log.Fatal("stress test failed", zap.Error(err))
	}
	report.GCPauseMetrics = *gcPauseMetrics

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatal("failed to generate report", zap.Error(err))
	}
	fmt.Println("--- End of Report ---")
}

type stressConfig struct {
	Duration time.Duration
	Entities int
	Commands int
	Outlines bool
	Threaded bool
	Seed     uint64
}

func run(cfg stressConfig, log *zap.Logger) (*Report, error) {
	rng := newRand(cfg.Seed)

	// 1. Populate the cosmos
	log.Info("populating cosmos", zap.Int("bodies", cfg.Entities))
	scene := scatter(cfg.Entities, rng)
	cosmos, err := game.NewCosmos(scene, game.Options{
		Capacity: cfg.Entities + 1,
		Logger:   log.Named("cosmos"),
	})
	if err != nil {
		return nil, fmt.Errorf("create cosmos: %w", err)
	}
	cosmos.SetOutlines(cfg.Outlines)

	bodies := cosmos.Tables().Bodies.Entities()
	entities := make([]ecs.Entity, len(bodies))
	copy(entities, bodies)

	device := &nullDevice{}
	renderer, err := render.New(device, 800, 800, log.Named("render"))
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}
	defer renderer.Release()
	cosmos.Resize(800, 800)

	report := &Report{
		Duration: cfg.Duration,
		Entities: cfg.Entities,
		Commands: cfg.Commands,
		Threaded: cfg.Threaded,
		Outlines: cfg.Outlines,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	// 2. Run the simulation loop
	log.Info("running", zap.Duration("duration", cfg.Duration), zap.Bool("threaded", cfg.Threaded))
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Duration)
	defer cancel()

	loop := engine.NewLoop(engine.TicksPerSecond(60), 1)
	tick := func() error {
		for range cfg.Commands {
			cosmos.Queue(game.Command{
				Kind:   steering[rng.IntN(len(steering))],
				Entity: entities[rng.IntN(len(entities))],
			})
		}
		start := time.Now()
		err := cosmos.Update()
		report.TickTime.Samples = append(report.TickTime.Samples, time.Since(start))
		return err
	}

	startTime := time.Now()
	if cfg.Threaded {
		err = runThreaded(ctx, cosmos, renderer, loop, tick, report)
	} else {
		err = runSync(ctx, cosmos, renderer, loop, tick, report)
	}
	if err != nil {
		return nil, err
	}

	report.TotalTime = time.Since(startTime)
	report.Loop = loop.Stats()
	report.Renderer = renderer.Stats()
	report.DrawCalls = device.draws
	report.LiveEntities = cosmos.Storage().Registry().Len()
	report.TickTime.Finalize()
	report.RenderTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Info("simulation finished",
		zap.Uint64("ticks", report.Loop.TotalTicks),
		zap.Uint64("frames", report.Renderer.Frames),
		zap.Int("live", report.LiveEntities))
	return report, nil
}

// runSync ticks and renders on the calling goroutine, one frame per tick.
func runSync(ctx context.Context, cosmos *game.Cosmos, renderer *render.Renderer, loop *engine.Loop, tick func() error, report *Report) error {
	for ctx.Err() == nil {
		if _, _, err := loop.Advance(loop.Timestep(), tick); err != nil {
			return err
		}

		start := time.Now()
		frame := renderer.Begin()
		if err := cosmos.Render(frame, 0); err != nil {
			frame.Discard()
			return fmt.Errorf("render: %w", err)
		}
		if err := frame.End(); err != nil {
			return fmt.Errorf("submit: %w", err)
		}
		report.RenderTime.Samples = append(report.RenderTime.Samples, time.Since(start))
	}
	return nil
}

// runThreaded ticks on the calling goroutine and hands a snapshot per tick to
// a render goroutine. Snapshots the renderer has not picked up are replaced by
// newer ones.
func runThreaded(ctx context.Context, cosmos *game.Cosmos, renderer *render.Renderer, loop *engine.Loop, tick func() error, report *Report) error {
	pool := sync.Pool{New: func() any { return new(game.Snapshot) }}
	relay := engine.NewRelay[*game.Snapshot]()
	camera := game.NewSnapshotCamera()

	consumer := engine.RunRenderer(context.Background(), relay, func(snap *game.Snapshot) error {
		defer pool.Put(snap)

		start := time.Now()
		frame := renderer.Begin()
		if err := snap.Render(frame, camera, 0); err != nil {
			frame.Discard()
			return fmt.Errorf("render tick %d: %w", snap.Tick, err)
		}
		if err := frame.End(); err != nil {
			return fmt.Errorf("submit tick %d: %w", snap.Tick, err)
		}
		report.RenderTime.Samples = append(report.RenderTime.Samples, time.Since(start))
		return nil
	})

	var err error
	for ctx.Err() == nil {
		if _, _, err = loop.Advance(loop.Timestep(), tick); err != nil {
			break
		}
		snap := pool.Get().(*game.Snapshot)
		cosmos.Snapshot(snap)
		relay.Send(snap)
	}

	relay.Close()
	renderErr := consumer.Wait()
	report.DroppedSnapshots = relay.Dropped()
	if err != nil {
		return err
	}
	return renderErr
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// scatter builds a scene with n bodies at random positions.
func scatter(n int, rng *rand.Rand) *game.Scene {
	scene := game.DefaultScene()
	scene.Bounds = game.RectAt(-worldExtent, -worldExtent, 2*worldExtent, 2*worldExtent)

	kinds := [...]game.ShapeKind{game.ShapeTriangle, game.ShapeRectangle}
	scene.Bodies = make([]game.Placement, n)
	for i := range scene.Bodies {
		scene.Bodies[i] = game.Placement{
			Shape: kinds[rng.IntN(len(kinds))],
			Centroid: fixed.VInt(
				int16(rng.IntN(2*worldExtent-200)-worldExtent+100),
				int16(rng.IntN(2*worldExtent-200)-worldExtent+100),
			),
		}
	}
	return scene
}
