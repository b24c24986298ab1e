package kinematic

import "github.com/go-gl/mathgl/mgl32"

//go:generate go tool mockgen -destination=collision_mock_test.go -package=kinematic . CollisionQuery

// LayerMask selects which collision layers a query considers.
type LayerMask uint32

const (
	LayerDefault LayerMask = 1 << iota
	LayerGround
	LayerCharacter
	LayerTrigger

	AllLayers LayerMask = 0xFFFFFFFF
)

func (m LayerMask) Has(layer LayerMask) bool {
	return m&layer != 0
}

// Hit describes the first contact reported by a cast.
type Hit struct {
	Point    mgl32.Vec3
	Normal   mgl32.Vec3
	Distance float32
}

// CollisionQuery is the geometric query capability of the host physics world.
// Queries are synchronous, ignore trigger volumes and report a miss as ok == false.
// Shapes already overlapping the cast at its origin are not reported.
type CollisionQuery interface {
	SphereCast(origin mgl32.Vec3, radius float32, direction mgl32.Vec3, maxDistance float32, mask LayerMask) (Hit, bool)
	CapsuleCast(p1, p2 mgl32.Vec3, radius float32, direction mgl32.Vec3, maxDistance float32, mask LayerMask) (Hit, bool)
	Raycast(origin, direction mgl32.Vec3, maxDistance float32, mask LayerMask) (Hit, bool)
	CheckSphere(center mgl32.Vec3, radius float32, mask LayerMask) bool
}

// Mover is the host character body that resolves the composed displacement.
type Mover interface {
	Move(displacement mgl32.Vec3)
	Position() mgl32.Vec3
	Velocity() mgl32.Vec3
}

// StepTimer is implemented by movers that derive velocity from the step length.
// The controller hands it the tick's dt before every Move.
type StepTimer interface {
	SetDeltaTime(dt float32)
}
