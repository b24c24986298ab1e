package kinematic

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

const velocityDirectionThreshold = 0.01

// AnimationSignals are observational outputs for external animation wiring.
type AnimationSignals struct {
	Grounded    bool
	Jumping     bool
	FreeFalling bool
	Speed       float32
	MotionSpeed float32
}

type AnimationSink interface {
	SetAnimationSignals(AnimationSignals)
}

type Option func(*Controller)

func WithLogger(logger Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithAnimationSink(sink AnimationSink) Option {
	return func(c *Controller) {
		c.anim = sink
	}
}

// Controller runs the grounded-state and slope pipeline for one character.
type Controller struct {
	id     uuid.UUID
	cfg    Config
	body   Mover
	logger Logger
	anim   AnimationSink

	detector   *GroundStateDetector
	slope      *SlopeVelocityAccumulator
	vertical   *VerticalMotionIntegrator
	locomotion *Locomotion
	composer   MovementComposer

	state   *MotionState
	ground  GroundState
	signals AnimationSignals
}

func NewController(cfg Config, world CollisionQuery, body Mover, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new controller: %w", err)
	}
	if world == nil || body == nil {
		return nil, errors.New("new controller: collision world and body are required")
	}

	c := &Controller{
		id:         uuid.New(),
		cfg:        cfg,
		body:       body,
		logger:     NewNopLogger(),
		detector:   NewGroundStateDetector(world),
		slope:      NewSlopeVelocityAccumulator(cfg.Physics),
		vertical:   NewVerticalMotionIntegrator(world),
		locomotion: NewLocomotion(cfg.Locomotion),
		state:      NewMotionState(cfg.Physics),
		ground:     airborne(ReasonNoGround),
	}
	c.state.Position = body.Position()
	for _, opt := range opts {
		opt(c)
	}
	c.logger.Debugf("controller %s ready at %v", c.id, c.state.Position)
	return c, nil
}

func (c *Controller) ID() uuid.UUID             { return c.id }
func (c *Controller) Config() Config            { return c.cfg }
func (c *Controller) Ground() GroundState       { return c.ground }
func (c *Controller) Signals() AnimationSignals { return c.signals }
func (c *Controller) State() MotionState        { return *c.state }

// Tick advances the character by dt seconds and returns the displacement handed
// to the body. A non-positive dt leaves all state untouched. in.Jump is cleared
// when the character is airborne.
func (c *Controller) Tick(in *Input, cameraYaw, dt float32) mgl32.Vec3 {
	if dt <= 0 || in == nil {
		return mgl32.Vec3{}
	}
	s := c.state
	phys := c.cfg.Physics

	s.Position = c.body.Position()
	velocity := c.body.Velocity()
	if v := planar(velocity); v.Len() > velocityDirectionThreshold {
		s.CurrentVelocityDirection = v.Normalize()
	}

	var ground GroundState
	if phys.UseImprovedGrounding {
		ground = c.detector.Detect(c.cfg.Geometry, phys, s)
	} else {
		ground = c.detector.DetectSimple(phys, s)
	}
	c.slope.Accumulate(ground, dt, s)

	vertical, sig := c.vertical.Update(ground, &in.Jump, dt, c.cfg.Geometry, phys, s)

	current := c.composer.HorizontalSpeed(velocity, s)
	loc := c.locomotion.Update(*in, cameraYaw, current, dt, s)

	var slide mgl32.Vec3
	if phys.UseImprovedGrounding {
		slide = c.slope.ToApply(s, loc.Direction, loc.Speed)
	}
	displacement := c.composer.Compose(loc.Direction, loc.Speed, vertical, slide, dt, s)

	c.observe(ground, sig, loc)

	if !isFiniteVec3(displacement) {
		c.logger.Warnf("dropping non-finite displacement %v", displacement)
		return mgl32.Vec3{}
	}
	if st, ok := c.body.(StepTimer); ok {
		st.SetDeltaTime(dt)
	}
	c.body.Move(displacement)
	return displacement
}

func (c *Controller) observe(ground GroundState, sig VerticalSignals, loc LocomotionResult) {
	if ground.Grounded != c.ground.Grounded || ground.Reason != c.ground.Reason {
		c.logger.Debugf("ground %s -> %s (grounded=%t)", c.ground.Reason, ground.Reason, ground.Grounded)
	}
	if sig.Landed && !c.ground.Grounded {
		c.logger.Debugf("landed at %v", c.state.Position)
	}
	if sig.Jumped {
		c.logger.Debugf("jump, vertical velocity %.3f", c.state.VerticalVelocity)
	}
	c.ground = ground

	if sig.Landed {
		c.signals.Jumping = false
		c.signals.FreeFalling = false
	}
	if sig.Jumped {
		c.signals.Jumping = true
	}
	if sig.FreeFalling {
		c.signals.FreeFalling = true
	}
	c.signals.Grounded = ground.Grounded
	c.signals.Speed = c.state.AnimationBlend
	c.signals.MotionSpeed = loc.InputMagnitude

	if c.anim != nil {
		c.anim.SetAnimationSignals(c.signals)
	}
}
