package game

import (
	"errors"
	"fmt"
	"os"

	"github.com/plus3/korp/fixed"
	"gopkg.in/yaml.v3"
)

// Scene is the initial state of a cosmos.
type Scene struct {
	Bounds Rect
	Player Placement
	Bodies []Placement
}

type Placement struct {
	Shape    ShapeKind
	Centroid fixed.Vec2
}

type sceneFile struct {
	Bounds struct {
		X      int16 `yaml:"x"`
		Y      int16 `yaml:"y"`
		Width  int16 `yaml:"width"`
		Height int16 `yaml:"height"`
	} `yaml:"bounds"`
	Player placementFile   `yaml:"player"`
	Bodies []placementFile `yaml:"bodies"`
}

type placementFile struct {
	Shape string `yaml:"shape"`
	X     int16  `yaml:"x"`
	Y     int16  `yaml:"y"`
}

func (p placementFile) placement() (Placement, error) {
	kind, err := ParseShapeKind(p.Shape)
	if err != nil {
		return Placement{}, err
	}
	return Placement{Shape: kind, Centroid: fixed.VInt(p.X, p.Y)}, nil
}

// DefaultScene is a 4000 unit square centered on a triangle player.
func DefaultScene() *Scene {
	return &Scene{
		Bounds: RectAt(-2000, -2000, 4000, 4000),
		Player: Placement{Shape: ShapeTriangle},
	}
}

func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene %s: %w", path, err)
	}
	scene, err := ParseScene(data)
	if err != nil {
		return nil, fmt.Errorf("parse scene %s: %w", path, err)
	}
	return scene, nil
}

func ParseScene(data []byte) (*Scene, error) {
	var f sceneFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if f.Bounds.Width <= 0 || f.Bounds.Height <= 0 {
		return nil, errors.New("bounds must have a positive size")
	}

	scene := &Scene{
		Bounds: RectAt(f.Bounds.X, f.Bounds.Y, f.Bounds.Width, f.Bounds.Height),
	}

	var err error
	if scene.Player, err = f.Player.placement(); err != nil {
		return nil, fmt.Errorf("player: %w", err)
	}
	for i, b := range f.Bodies {
		p, err := b.placement()
		if err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		scene.Bodies = append(scene.Bodies, p)
	}
	return scene, nil
}
