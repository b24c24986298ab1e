package kinematic

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	speedOffset        = 0.1
	animationBlendSnap = 0.01
	minSmoothTime      = 0.0001
)

// Input is the per-tick intent handed over by the input mapping layer.
type Input struct {
	Move           mgl32.Vec2
	Jump           bool
	Sprint         bool
	AnalogMovement bool
}

func (in Input) hasMove() bool {
	return in.Move.Len() > 1e-5
}

// LocomotionResult is the horizontal intent for one tick.
type LocomotionResult struct {
	Direction      mgl32.Vec3
	Speed          float32
	InputMagnitude float32
}

// Locomotion turns stick input into a smoothed heading and speed.
type Locomotion struct {
	cfg LocomotionConfig
}

func NewLocomotion(cfg LocomotionConfig) *Locomotion {
	return &Locomotion{cfg: cfg}
}

// Update eases speed towards the target speed and turns the character to face the
// input direction relative to cameraYaw (degrees). currentSpeed is the measured
// player-driven horizontal speed.
func (l *Locomotion) Update(in Input, cameraYaw, currentSpeed, dt float32, state *MotionState) LocomotionResult {
	target := l.cfg.MoveSpeed
	if in.Sprint {
		target = l.cfg.SprintSpeed
	}
	if !in.hasMove() {
		target = 0
	}

	magnitude := float32(1)
	if in.AnalogMovement {
		magnitude = in.Move.Len()
	}

	if currentSpeed < target-speedOffset || currentSpeed > target+speedOffset {
		s := lerp(currentSpeed, target*magnitude, dt*l.cfg.SpeedChangeRate)
		state.Speed = float32(math.Round(float64(s)*1000) / 1000)
	} else {
		state.Speed = target
	}

	state.AnimationBlend = lerp(state.AnimationBlend, target, dt*l.cfg.SpeedChangeRate)
	if state.AnimationBlend < animationBlendSnap {
		state.AnimationBlend = 0
	}

	if in.hasMove() {
		dir := mgl32.Vec3{in.Move.X(), 0, in.Move.Y()}.Normalize()
		state.TargetYaw = mgl32.RadToDeg(float32(math.Atan2(float64(dir.X()), float64(dir.Z())))) + cameraYaw
		state.Yaw = smoothDampAngle(state.Yaw, state.TargetYaw, &state.yawVelocity, l.cfg.RotationSmoothTime, dt)
	}

	return LocomotionResult{
		Direction:      YawDirection(state.TargetYaw),
		Speed:          state.Speed,
		InputMagnitude: magnitude,
	}
}

// YawDirection rotates Forward about Up by yaw degrees.
func YawDirection(yaw float32) mgl32.Vec3 {
	return mgl32.QuatRotate(mgl32.DegToRad(yaw), Up).Rotate(Forward)
}

func deltaAngle(current, target float32) float32 {
	d := float32(math.Mod(float64(target-current), 360))
	if d < 0 {
		d += 360
	}
	if d > 180 {
		d -= 360
	}
	return d
}

// smoothDampAngle eases current towards target along the shortest arc with a
// critically damped spring that settles in roughly smoothTime seconds.
func smoothDampAngle(current, target float32, velocity *float32, smoothTime, dt float32) float32 {
	if dt <= 0 {
		return current
	}
	target = current + deltaAngle(current, target)

	smoothTime = maxf(minSmoothTime, smoothTime)
	omega := 2 / smoothTime
	x := omega * dt
	exp := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	change := current - target
	temp := (*velocity + omega*change) * dt
	*velocity = (*velocity - omega*temp) * exp
	out := target + (change+temp)*exp

	if (target-current > 0) == (out > target) {
		out = target
		*velocity = 0
	}
	return out
}
