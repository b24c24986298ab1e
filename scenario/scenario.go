// Package scenario describes scripted controller runs: a static world, a start
// position and a timeline of inputs, loaded from YAML.
package scenario

import (
	"errors"
	"fmt"
	"os"

	"github.com/gekko3d/kinematic"
	"github.com/gekko3d/kinematic/collide"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

type PlaneSpec struct {
	Point  mgl32.Vec3 `yaml:"point"`
	Normal mgl32.Vec3 `yaml:"normal"`
}

type SlopeSpec struct {
	Point mgl32.Vec3 `yaml:"point"`
	Angle float32    `yaml:"angle"`
}

type BoxSpec struct {
	Center      mgl32.Vec3 `yaml:"center"`
	HalfExtents mgl32.Vec3 `yaml:"half_extents"`
	Pitch       float32    `yaml:"pitch"` // degrees about X
}

type SphereSpec struct {
	Center mgl32.Vec3 `yaml:"center"`
	Radius float32    `yaml:"radius"`
}

// ShapeSpec holds exactly one shape.
type ShapeSpec struct {
	Plane   *PlaneSpec  `yaml:"plane,omitempty"`
	Slope   *SlopeSpec  `yaml:"slope,omitempty"`
	Box     *BoxSpec    `yaml:"box,omitempty"`
	Sphere  *SphereSpec `yaml:"sphere,omitempty"`
	Trigger bool        `yaml:"trigger,omitempty"`
}

func (s ShapeSpec) shape() (collide.Shape, error) {
	var shapes []collide.Shape
	if s.Plane != nil {
		if s.Plane.Normal.Len() == 0 {
			return nil, errors.New("plane normal must not be zero")
		}
		shapes = append(shapes, collide.Plane{Point: s.Plane.Point, Normal: s.Plane.Normal.Normalize()})
	}
	if s.Slope != nil {
		shapes = append(shapes, collide.NewSlope(s.Slope.Point, s.Slope.Angle))
	}
	if s.Box != nil {
		b := collide.NewBox(s.Box.Center, s.Box.HalfExtents)
		b.Rotation = mgl32.QuatRotate(mgl32.DegToRad(s.Box.Pitch), mgl32.Vec3{1, 0, 0})
		shapes = append(shapes, b)
	}
	if s.Sphere != nil {
		shapes = append(shapes, collide.Sphere{Center: s.Sphere.Center, Radius: s.Sphere.Radius})
	}
	if len(shapes) != 1 {
		return nil, fmt.Errorf("expected exactly one shape, got %d", len(shapes))
	}
	return shapes[0], nil
}

// Step holds the input for ticks in [From, To).
type Step struct {
	From   int        `yaml:"from"`
	To     int        `yaml:"to"`
	Move   mgl32.Vec2 `yaml:"move"`
	Jump   bool       `yaml:"jump"`
	Sprint bool       `yaml:"sprint"`
	Analog bool       `yaml:"analog"`
}

type Scenario struct {
	Name      string      `yaml:"name"`
	Ticks     int         `yaml:"ticks"`
	Dt        float32     `yaml:"dt"`
	CameraYaw float32     `yaml:"camera_yaw"`
	Start     mgl32.Vec3  `yaml:"start"`
	CellSize  float32     `yaml:"cell_size"`
	World     []ShapeSpec `yaml:"world"`
	Inputs    []Step      `yaml:"inputs"`
}

func Parse(data []byte) (*Scenario, error) {
	sc := &Scenario{Ticks: 120, Dt: 1.0 / 60.0, CellSize: 2.0}
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if sc.Ticks <= 0 {
		return nil, fmt.Errorf("parse scenario: ticks must be positive")
	}
	if sc.Dt <= 0 {
		return nil, fmt.Errorf("parse scenario: dt must be positive")
	}
	return sc, nil
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}
	return Parse(data)
}

// BuildWorld registers every shape on the ground layer, or as a trigger when flagged.
func (sc *Scenario) BuildWorld() (*collide.World, error) {
	w := collide.NewWorld(sc.CellSize)
	for i, entry := range sc.World {
		shape, err := entry.shape()
		if err != nil {
			return nil, fmt.Errorf("world[%d]: %w", i, err)
		}
		layer := kinematic.LayerGround
		if entry.Trigger {
			layer = kinematic.LayerTrigger
		}
		w.Add(collide.Collider{Shape: shape, Layer: layer, Trigger: entry.Trigger})
	}
	return w, nil
}

// InputAt returns the input scripted for tick, or an idle input.
func (sc *Scenario) InputAt(tick int) kinematic.Input {
	for _, s := range sc.Inputs {
		if tick >= s.From && tick < s.To {
			return kinematic.Input{Move: s.Move, Jump: s.Jump, Sprint: s.Sprint, AnalogMovement: s.Analog}
		}
	}
	return kinematic.Input{}
}
