package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/plus3/korp/debugui"
	debugui_ebiten "github.com/plus3/korp/debugui/ebiten"
	"github.com/plus3/korp/engine"
	"github.com/plus3/korp/game"
	"go.uber.org/zap"
)

const defaultConfigPath = "korp.toml"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfgPath := defaultConfigPath
	if p := os.Getenv("KORP_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, defaulted, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := engine.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	if defaulted {
		log.Info("no config file, using defaults", zap.String("path", cfgPath))
	}

	// 3. Build the cosmos
	scene, err := loadScene(cfg.Simulation.Scene, log)
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}
	cosmos, err := game.NewCosmos(scene, game.Options{
		Capacity: cfg.Simulation.Capacity,
		Logger:   log.Named("cosmos"),
	})
	if err != nil {
		return fmt.Errorf("create cosmos: %w", err)
	}

	// 4. Host it
	opts := engine.OptionsFromConfig(cfg, log.Named("engine"))
	var overlay *debugui.Overlay
	if cfg.Debug.Overlay {
		overlay = debugui.NewOverlay(debugui_ebiten.New(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height))
		opts.Overlay = overlay
	}

	eng := engine.New(cosmos, opts)
	if overlay != nil {
		debugui.SpawnDebugUI(overlay, cosmos, eng)
	}

	log.Info("starting",
		zap.String("title", cfg.Window.Title),
		zap.Int("tps", cfg.Simulation.TicksPerSecond),
		zap.Int("capacity", cfg.Simulation.Capacity),
		zap.Bool("overlay", cfg.Debug.Overlay))

	return eng.Run()
}

// loadConfig reads path. A missing file at the default path yields the
// defaults; an explicitly configured path must exist.
func loadConfig(path string) (*engine.Config, bool, error) {
	cfg, err := engine.LoadConfig(path)
	if errors.Is(err, fs.ErrNotExist) && path == defaultConfigPath {
		return engine.DefaultConfig(), true, nil
	}
	return cfg, false, err
}

// loadScene reads the scene file, falling back to the built-in scene when it
// does not exist.
func loadScene(path string, log *zap.Logger) (*game.Scene, error) {
	if path == "" {
		return game.DefaultScene(), nil
	}
	scene, err := game.LoadScene(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn("scene not found, using default", zap.String("path", path))
		return game.DefaultScene(), nil
	}
	return scene, err
}
