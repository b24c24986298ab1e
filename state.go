package kinematic

import "github.com/go-gl/mathgl/mgl32"

// GroundReason names the decision branch that produced a GroundState.
type GroundReason int

const (
	ReasonRising GroundReason = iota
	ReasonNoGround
	ReasonEmbedded
	ReasonWalkable
	ReasonSteppedUp
	ReasonAbyss
	ReasonSlope
	ReasonOverlap
)

func (r GroundReason) String() string {
	switch r {
	case ReasonRising:
		return "rising"
	case ReasonNoGround:
		return "no-ground"
	case ReasonEmbedded:
		return "embedded"
	case ReasonWalkable:
		return "walkable"
	case ReasonSteppedUp:
		return "stepped-up"
	case ReasonAbyss:
		return "abyss"
	case ReasonSlope:
		return "slope"
	case ReasonOverlap:
		return "overlap"
	}
	return "unknown"
}

// GroundState is recomputed every tick.
type GroundState struct {
	Grounded           bool
	GroundNormal       mgl32.Vec3
	SlopePushDirection mgl32.Vec3
	Reason             GroundReason
}

func airborne(reason GroundReason) GroundState {
	return GroundState{GroundNormal: Up, Reason: reason}
}

func grounded(normal mgl32.Vec3, reason GroundReason) GroundState {
	n := safeNormalize(normal)
	if n.Len() == 0 {
		n = Up
	}
	return GroundState{Grounded: true, GroundNormal: n, Reason: reason}
}

// Sliding reports whether the state pushes the character down a slope.
func (s GroundState) Sliding() bool {
	return s.SlopePushDirection.Len() > 0.001
}

// MotionState persists across ticks and belongs to exactly one character.
type MotionState struct {
	Position                 mgl32.Vec3
	VerticalVelocity         float32
	SlopeVelocity            mgl32.Vec3
	PrevAppliedSlopeVelocity mgl32.Vec3
	JumpTimeoutRemaining     float32
	FallTimeoutRemaining     float32
	CurrentVelocityDirection mgl32.Vec3

	Speed          float32
	AnimationBlend float32
	Yaw            float32 // degrees
	TargetYaw      float32 // degrees
	yawVelocity    float32
}

// NewMotionState seeds both timeouts from cfg, as on controller activation.
func NewMotionState(cfg PhysicsConfig) *MotionState {
	return &MotionState{
		JumpTimeoutRemaining: cfg.JumpTimeout,
		FallTimeoutRemaining: cfg.FallTimeout,
	}
}
