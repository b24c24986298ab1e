package kinematic

import "github.com/go-gl/mathgl/mgl32"

const (
	slopeDecayRate     = 20.0
	negligibleVelocity = 0.001
)

// SlopeVelocityAccumulator maintains the involuntary slide velocity of a character.
type SlopeVelocityAccumulator struct {
	gravity float32
}

func NewSlopeVelocityAccumulator(cfg PhysicsConfig) *SlopeVelocityAccumulator {
	return &SlopeVelocityAccumulator{gravity: absf(cfg.Gravity)}
}

// Accumulate grows the slide while the ground pushes downhill and decays it otherwise.
func (a *SlopeVelocityAccumulator) Accumulate(ground GroundState, dt float32, state *MotionState) {
	if ground.Sliding() {
		state.SlopeVelocity = state.SlopeVelocity.Add(ground.SlopePushDirection.Mul(dt * a.gravity))
		return
	}
	state.SlopeVelocity = lerpVec3(state.SlopeVelocity, mgl32.Vec3{}, dt*slopeDecayRate)
}

// ToApply returns the slide velocity left after the player's own movement along
// the slide axis is taken out of it. Player motion never adds to the slide, and
// once it cancels or overtakes the slide nothing is applied.
func (a *SlopeVelocityAccumulator) ToApply(state *MotionState, moveDir mgl32.Vec3, moveSpeed float32) mgl32.Vec3 {
	sv := state.SlopeVelocity
	if sv.Len() <= negligibleVelocity || moveSpeed <= negligibleVelocity {
		return sv
	}

	vertical := project(sv, Up)
	slide := sv.Sub(vertical)
	slideDir := safeNormalize(slide)

	along := absf(safeNormalize(moveDir).Mul(moveSpeed).Dot(slideDir))
	next := slide.Sub(slideDir.Mul(along))

	if safeNormalize(next).Dot(slideDir) > 0 {
		return next.Add(vertical)
	}
	return mgl32.Vec3{}
}

// Update accumulates for this tick and returns the velocity to apply.
func (a *SlopeVelocityAccumulator) Update(ground GroundState, dt float32, state *MotionState, moveDir mgl32.Vec3, moveSpeed float32) mgl32.Vec3 {
	a.Accumulate(ground, dt, state)
	return a.ToApply(state, moveDir, moveSpeed)
}
