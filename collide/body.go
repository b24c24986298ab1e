package collide

import (
	"math"

	"github.com/gekko3d/kinematic"
	"github.com/go-gl/mathgl/mgl32"
)

const depenetrationIterations = 4

// Body is a capsule moved by displacement and pushed out of solid colliders.
// Its velocity is the displacement actually achieved over the last step.
type Body struct {
	world    *World
	position mgl32.Vec3
	velocity mgl32.Vec3
	geom     kinematic.CharacterGeometry
	mask     kinematic.LayerMask
	dt       float32
}

var (
	_ kinematic.Mover     = (*Body)(nil)
	_ kinematic.StepTimer = (*Body)(nil)
)

// NewBody places a capsule with geom's scaled dimensions at position. dt is the
// step used to derive velocity from each Move until SetDeltaTime replaces it;
// a kinematic.Controller does that on every tick.
func NewBody(world *World, geom kinematic.CharacterGeometry, position mgl32.Vec3, mask kinematic.LayerMask, dt float32) *Body {
	return &Body{
		world:    world,
		position: position,
		geom:     geom,
		mask:     mask,
		dt:       dt,
	}
}

func (b *Body) Position() mgl32.Vec3 { return b.position }
func (b *Body) Velocity() mgl32.Vec3 { return b.velocity }

// Teleport moves the body without collision response and clears its velocity.
func (b *Body) Teleport(position mgl32.Vec3) {
	b.position = position
	b.velocity = mgl32.Vec3{}
}

func (b *Body) SetDeltaTime(dt float32) {
	b.dt = dt
}

func (b *Body) Move(displacement mgl32.Vec3) {
	start := b.position
	b.position = b.position.Add(displacement)
	b.depenetrate()
	if b.dt > 0 {
		b.velocity = b.position.Sub(start).Mul(1 / b.dt)
	}
}

func (b *Body) capsule() (mgl32.Vec3, mgl32.Vec3, float32) {
	radius := b.geom.ProbeRadius()
	center := b.position.Add(b.geom.ScaledCenter())
	half := kinematic.Up.Mul(maxf(b.geom.ScaledHeight()*0.5-radius, 0))
	return center.Sub(half), center.Add(half), radius
}

// depenetrate pushes the capsule out of overlapping colliders. Contacts on
// walkable ground resolve straight up so standing on a gentle slope does not creep.
func (b *Body) depenetrate() {
	minUp := float32(math.Cos(float64(mgl32.DegToRad(b.geom.SlopeLimit))))
	for i := 0; i < depenetrationIterations; i++ {
		p1, p2, r := b.capsule()
		n, depth, ok := b.world.Penetration(p1, p2, r, b.mask)
		if !ok {
			return
		}
		if ny := n.Dot(kinematic.Up); ny >= minUp && ny > 1e-3 {
			b.position = b.position.Add(kinematic.Up.Mul(depth / ny))
			continue
		}
		b.position = b.position.Add(n.Mul(depth))
	}
}
