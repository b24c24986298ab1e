package kinematic

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// AbyssGuardDisabledThreshold is the abyss radius multiplier at or above which
// the edge probe is skipped and a walkable hit is trusted directly.
const AbyssGuardDisabledThreshold = 0.999

// EnvPrefix prefixes every environment override read by LoadConfig.
const EnvPrefix = "KINEMATIC_"

var ErrInvalidConfig = errors.New("invalid config")

// ConfigError reports a single rejected configuration field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// CharacterGeometry is the capsule owned by the host controller.
type CharacterGeometry struct {
	Radius     float32    `yaml:"radius" env:"RADIUS"`
	Height     float32    `yaml:"height" env:"HEIGHT"`
	Center     mgl32.Vec3 `yaml:"center"`
	Scale      mgl32.Vec3 `yaml:"scale"`
	SlopeLimit float32    `yaml:"slope_limit" env:"SLOPE_LIMIT"` // degrees
	StepOffset float32    `yaml:"step_offset" env:"STEP_OFFSET"`
}

// ProbeRadius is the capsule radius scaled by the wider horizontal scale axis.
func (g CharacterGeometry) ProbeRadius() float32 {
	return g.Radius * maxf(g.Scale.X(), g.Scale.Z())
}

func (g CharacterGeometry) ScaledCenter() mgl32.Vec3 {
	return mgl32.Vec3{
		g.Center.X() * g.Scale.X(),
		g.Center.Y() * g.Scale.Y(),
		g.Center.Z() * g.Scale.Z(),
	}
}

func (g CharacterGeometry) ScaledHeight() float32 {
	return g.Height * g.Scale.Y()
}

// PhysicsConfig is fixed for the lifetime of a controller.
type PhysicsConfig struct {
	GroundedRadius        float32   `yaml:"grounded_radius" env:"GROUNDED_RADIUS"`
	GroundedOffset        float32   `yaml:"grounded_offset" env:"GROUNDED_OFFSET"`
	AbyssRadiusMultiplier float32   `yaml:"abyss_radius_multiplier" env:"ABYSS_RADIUS_MULTIPLIER"`
	Gravity               float32   `yaml:"gravity" env:"GRAVITY"`
	JumpHeight            float32   `yaml:"jump_height" env:"JUMP_HEIGHT"`
	JumpTimeout           float32   `yaml:"jump_timeout" env:"JUMP_TIMEOUT"`
	FallTimeout           float32   `yaml:"fall_timeout" env:"FALL_TIMEOUT"`
	TerminalVelocity      float32   `yaml:"terminal_velocity" env:"TERMINAL_VELOCITY"`
	GroundLayers          LayerMask `yaml:"ground_layers" env:"GROUND_LAYERS"`
	UseImprovedGrounding  bool      `yaml:"use_improved_grounding" env:"USE_IMPROVED_GROUNDING"`
}

type LocomotionConfig struct {
	MoveSpeed          float32 `yaml:"move_speed" env:"MOVE_SPEED"`
	SprintSpeed        float32 `yaml:"sprint_speed" env:"SPRINT_SPEED"`
	RotationSmoothTime float32 `yaml:"rotation_smooth_time" env:"ROTATION_SMOOTH_TIME"`
	SpeedChangeRate    float32 `yaml:"speed_change_rate" env:"SPEED_CHANGE_RATE"`
}

type Config struct {
	Geometry   CharacterGeometry `yaml:"geometry"`
	Physics    PhysicsConfig     `yaml:"physics"`
	Locomotion LocomotionConfig  `yaml:"locomotion"`
}

func DefaultGeometry() CharacterGeometry {
	return CharacterGeometry{
		Radius:     0.28,
		Height:     1.8,
		Center:     mgl32.Vec3{0, 0.93, 0},
		Scale:      mgl32.Vec3{1, 1, 1},
		SlopeLimit: 45,
		StepOffset: 0.25,
	}
}

func DefaultPhysicsConfig() PhysicsConfig {
	return PhysicsConfig{
		GroundedRadius:        0.28,
		GroundedOffset:        -0.14,
		AbyssRadiusMultiplier: 0.05,
		Gravity:               -15.0,
		JumpHeight:            1.2,
		JumpTimeout:           0.50,
		FallTimeout:           0.15,
		TerminalVelocity:      -53.0,
		GroundLayers:          LayerGround,
		UseImprovedGrounding:  true,
	}
}

func DefaultLocomotionConfig() LocomotionConfig {
	return LocomotionConfig{
		MoveSpeed:          2.0,
		SprintSpeed:        5.335,
		RotationSmoothTime: 0.12,
		SpeedChangeRate:    10.0,
	}
}

func DefaultConfig() Config {
	return Config{
		Geometry:   DefaultGeometry(),
		Physics:    DefaultPhysicsConfig(),
		Locomotion: DefaultLocomotionConfig(),
	}
}

// Validate reports every rejected field joined into one error.
func (c Config) Validate() error {
	var errs []error
	reject := func(field, reason string) {
		errs = append(errs, &ConfigError{Field: field, Reason: reason})
	}

	g := c.Geometry
	if g.Radius <= 0 {
		reject("geometry.radius", "must be positive")
	}
	if g.Height < 2*g.Radius {
		reject("geometry.height", "must be at least twice the radius")
	}
	if g.Scale.X() <= 0 || g.Scale.Y() <= 0 || g.Scale.Z() <= 0 {
		reject("geometry.scale", "components must be positive")
	}
	if g.SlopeLimit <= 0 || g.SlopeLimit > 90 {
		reject("geometry.slope_limit", "must be in (0, 90] degrees")
	}
	if g.StepOffset < 0 {
		reject("geometry.step_offset", "must not be negative")
	}

	p := c.Physics
	if p.GroundedRadius < 0 {
		reject("physics.grounded_radius", "must not be negative")
	}
	if p.AbyssRadiusMultiplier <= 0 || p.AbyssRadiusMultiplier > 1 {
		reject("physics.abyss_radius_multiplier", "must be in (0, 1]")
	}
	if p.Gravity >= 0 {
		reject("physics.gravity", "must be negative")
	}
	if p.JumpHeight < 0 {
		reject("physics.jump_height", "must not be negative")
	}
	if p.JumpTimeout < 0 {
		reject("physics.jump_timeout", "must not be negative")
	}
	if p.FallTimeout < 0 {
		reject("physics.fall_timeout", "must not be negative")
	}
	if p.TerminalVelocity >= 0 {
		reject("physics.terminal_velocity", "must be negative")
	}
	if p.GroundLayers == 0 {
		reject("physics.ground_layers", "must select at least one layer")
	}

	l := c.Locomotion
	if l.MoveSpeed < 0 || l.SprintSpeed < 0 {
		reject("locomotion.move_speed", "speeds must not be negative")
	}
	if l.RotationSmoothTime < 0 || l.RotationSmoothTime > 0.3 {
		reject("locomotion.rotation_smooth_time", "must be in [0, 0.3]")
	}
	if l.SpeedChangeRate < 0 {
		reject("locomotion.speed_change_rate", "must not be negative")
	}

	return errors.Join(errs...)
}

// ParseConfig decodes YAML over the defaults. Keys missing from data keep their default.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides cfg from KINEMATIC_* environment variables.
func ApplyEnv(cfg *Config) error {
	opts := env.Options{Prefix: EnvPrefix}
	if err := env.ParseWithOptions(&cfg.Geometry, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if err := env.ParseWithOptions(&cfg.Physics, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if err := env.ParseWithOptions(&cfg.Locomotion, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadConfig reads a YAML file, applies environment overrides and validates the result.
// An empty path starts from DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if cfg, err = ParseConfig(data); err != nil {
			return Config{}, err
		}
	}
	if err := ApplyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
