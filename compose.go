package kinematic

import "github.com/go-gl/mathgl/mgl32"

// MovementComposer merges horizontal intent, vertical velocity and slide into one displacement.
type MovementComposer struct{}

// Compose returns the displacement for this tick and remembers the slide that was applied.
func (MovementComposer) Compose(dir mgl32.Vec3, speed, vertical float32, slope mgl32.Vec3, dt float32, state *MotionState) mgl32.Vec3 {
	d := safeNormalize(dir).Mul(speed * dt).
		Add(Up.Mul(vertical * dt)).
		Add(slope.Mul(dt))
	state.PrevAppliedSlopeVelocity = slope
	return d
}

// HorizontalSpeed measures player-driven planar speed, excluding last tick's slide.
func (MovementComposer) HorizontalSpeed(rawVelocity mgl32.Vec3, state *MotionState) float32 {
	return planar(rawVelocity.Sub(state.PrevAppliedSlopeVelocity)).Len()
}
