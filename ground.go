package kinematic

import "github.com/go-gl/mathgl/mgl32"

const (
	penetrationRadiusScale = 0.99
	minProjectedHitLength  = 0.01
	// slopeLimitTolerance absorbs float error so a surface exactly at the limit stays walkable.
	slopeLimitTolerance = 1e-4
)

// GroundStateDetector decides each tick whether the character stands on walkable ground.
type GroundStateDetector struct {
	world CollisionQuery
}

func NewGroundStateDetector(world CollisionQuery) *GroundStateDetector {
	return &GroundStateDetector{world: world}
}

// groundProbe holds the values shared by every query of one Detect call.
type groundProbe struct {
	geom     CharacterGeometry
	cfg      PhysicsConfig
	position mgl32.Vec3
	velDir   mgl32.Vec3
	radius   float32
	offset   float32 // |GroundedOffset|
}

func (p groundProbe) castDistance() float32 {
	return 2 * p.offset
}

// Detect runs the grounded decision tree. It never mutates state.
func (d *GroundStateDetector) Detect(geom CharacterGeometry, cfg PhysicsConfig, state *MotionState) GroundState {
	if state.VerticalVelocity > 0 {
		return airborne(ReasonRising)
	}

	p := groundProbe{
		geom:     geom,
		cfg:      cfg,
		position: state.Position,
		velDir:   state.CurrentVelocityDirection,
		radius:   geom.ProbeRadius(),
		offset:   absf(cfg.GroundedOffset),
	}

	hit, ok := d.groundHit(p)
	if !ok {
		return airborne(ReasonNoGround)
	}

	// the cast normal of a seam the capsule already overlaps is not a surface to stand on
	if d.embedded(p, hit) {
		return grounded(Up, ReasonEmbedded)
	}

	if walkable(hit.Normal, geom.SlopeLimit) {
		return d.abyssGuard(p, hit, ReasonWalkable)
	}

	if !d.stepUp(p) {
		return GroundState{
			GroundNormal:       Up,
			SlopePushDirection: downhill(hit.Normal),
			Reason:             ReasonSlope,
		}
	}
	return d.abyssGuard(p, hit, ReasonSteppedUp)
}

func (d *GroundStateDetector) groundHit(p groundProbe) (Hit, bool) {
	origin := p.position.Add(Up.Mul(p.radius + p.offset))
	return d.world.SphereCast(origin, p.radius, Up.Mul(-1), p.castDistance(), p.cfg.GroundLayers)
}

// embedded casts a slightly thinner capsule from the body towards the far side of
// the ground hit. A hit means the sphere cast missed ground the capsule already touches.
func (d *GroundStateDetector) embedded(p groundProbe, hit Hit) bool {
	center := p.position.Add(p.geom.ScaledCenter())
	half := Up.Mul(p.geom.ScaledHeight()*0.5 - p.radius)
	p1 := center.Add(half)
	p2 := center.Sub(half)

	castRadius := p.radius * penetrationRadiusScale
	extra := p.radius - castRadius

	toBody := p.position.Sub(hit.Point)
	dir := safeNormalize(toBody)
	if dir.Len() == 0 {
		dir = Up
	}
	lx := maxf(projectOnPlane(toBody, Up).Len(), minProjectedHitLength)
	hypotenuse := toBody.Mul((p.radius - lx) / lx).Add(dir.Mul(extra + p.castDistance()))

	_, ok := d.world.CapsuleCast(p1, p2, castRadius, dir, hypotenuse.Len(), p.cfg.GroundLayers)
	return ok
}

// stepUp reports whether a ray dropped from step height ahead of the character
// lands on walkable ground.
func (d *GroundStateDetector) stepUp(p groundProbe) bool {
	step := p.geom.StepOffset
	origin := p.position.
		Add(Up.Mul(p.offset + step)).
		Add(p.velDir.Mul(p.radius))
	hit, ok := d.world.Raycast(origin, Up.Mul(-1), p.castDistance()+step*2, p.cfg.GroundLayers)
	if !ok {
		return false
	}
	return walkable(hit.Normal, p.geom.SlopeLimit)
}

// abyssGuard confirms ground continues under the character's centre with a
// smaller sphere. A miss means the character hangs over a ledge.
func (d *GroundStateDetector) abyssGuard(p groundProbe, hit Hit, reason GroundReason) GroundState {
	m := p.cfg.AbyssRadiusMultiplier
	if m >= AbyssGuardDisabledThreshold {
		return grounded(hit.Normal, reason)
	}

	abyssRadius := m * p.radius
	origin := p.position.Add(Up.Mul(p.offset + abyssRadius))
	dist := p.castDistance() + p.geom.StepOffset
	if _, ok := d.world.SphereCast(origin, abyssRadius, Up.Mul(-1), dist, p.cfg.GroundLayers); ok {
		return grounded(hit.Normal, reason)
	}
	return airborne(ReasonAbyss)
}

// walkable reports whether a surface with this normal is at most limit degrees from flat.
func walkable(normal mgl32.Vec3, limit float32) bool {
	return angleDeg(normal, Up) <= limit+slopeLimitTolerance
}

// downhill returns the unit direction in the surface plane of normal that descends fastest.
func downhill(normal mgl32.Vec3) mgl32.Vec3 {
	right := safeNormalize(normal.Cross(Up))
	return safeNormalize(normal.Cross(right))
}

// DetectSimple is the overlap-only grounded check: a GroundedRadius sphere placed
// GroundedOffset below the character's feet. It never reports a slope push.
func (d *GroundStateDetector) DetectSimple(cfg PhysicsConfig, state *MotionState) GroundState {
	center := state.Position.Sub(Up.Mul(cfg.GroundedOffset))
	if d.world.CheckSphere(center, cfg.GroundedRadius, cfg.GroundLayers) {
		return grounded(Up, ReasonOverlap)
	}
	return airborne(ReasonNoGround)
}
