package kinematic

import (
	"math"
)

const (
	groundStickVelocity = -2.0
	roofDampRate        = 10.0
)

// VerticalSignals carries the animation-facing outcome of one integration step.
type VerticalSignals struct {
	Landed      bool // grounded this tick, jump and free-fall flags clear
	Jumped      bool
	FreeFalling bool
}

// VerticalMotionIntegrator owns gravity, jumping and the roof guard.
type VerticalMotionIntegrator struct {
	world CollisionQuery
}

func NewVerticalMotionIntegrator(world CollisionQuery) *VerticalMotionIntegrator {
	return &VerticalMotionIntegrator{world: world}
}

// JumpVelocity is the launch speed that reaches height h under gravity g (g < 0).
func JumpVelocity(h, g float32) float32 {
	return float32(math.Sqrt(float64(h * -2 * g)))
}

// Update integrates one tick of vertical motion into state. An airborne character
// cannot jump, so *jumpRequested is cleared when not grounded.
func (v *VerticalMotionIntegrator) Update(ground GroundState, jumpRequested *bool, dt float32, geom CharacterGeometry, cfg PhysicsConfig, state *MotionState) (float32, VerticalSignals) {
	var sig VerticalSignals

	if ground.Grounded {
		sig.Landed = true
		state.FallTimeoutRemaining = cfg.FallTimeout

		if state.VerticalVelocity < 0 {
			state.VerticalVelocity = lerp(cfg.Gravity, groundStickVelocity, Up.Dot(ground.GroundNormal))
		}

		if *jumpRequested && state.JumpTimeoutRemaining <= 0 {
			state.JumpTimeoutRemaining = cfg.JumpTimeout
			state.VerticalVelocity = JumpVelocity(cfg.JumpHeight, cfg.Gravity)
			sig.Jumped = true
		} else if state.JumpTimeoutRemaining > 0 {
			state.JumpTimeoutRemaining = maxf(state.JumpTimeoutRemaining-dt, 0)
		}
	} else {
		if state.FallTimeoutRemaining > 0 {
			state.FallTimeoutRemaining = maxf(state.FallTimeoutRemaining-dt, 0)
		}
		sig.FreeFalling = state.FallTimeoutRemaining <= 0
		*jumpRequested = false
	}

	if state.VerticalVelocity > cfg.TerminalVelocity {
		state.VerticalVelocity += cfg.Gravity * dt
	}

	if state.VerticalVelocity > 0 && v.hitsRoof(geom, cfg, state) {
		state.JumpTimeoutRemaining = 0
		state.VerticalVelocity = lerp(state.VerticalVelocity, 0, dt*roofDampRate)
	}

	return state.VerticalVelocity, sig
}

func (v *VerticalMotionIntegrator) hitsRoof(geom CharacterGeometry, cfg PhysicsConfig, state *MotionState) bool {
	radius := geom.ProbeRadius()
	origin := state.Position.
		Add(geom.ScaledCenter()).
		Add(Up.Mul(geom.ScaledHeight()*0.5 - radius))

	castRadius := radius * penetrationRadiusScale
	dist := radius - castRadius + absf(cfg.GroundedOffset)

	_, ok := v.world.SphereCast(origin, castRadius, Up, dist, cfg.GroundLayers)
	return ok
}
