package collide

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Shape is a static solid described by its signed distance field.
// Distance is negative inside the solid and must never overestimate the
// distance to the surface.
type Shape interface {
	Distance(p mgl32.Vec3) float32
	// Bounds returns the shape's world AABB, or ok == false for unbounded shapes.
	Bounds() (aabb AABB, ok bool)
}

type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

func (a AABB) Expand(r float32) AABB {
	e := mgl32.Vec3{r, r, r}
	return AABB{Min: a.Min.Sub(e), Max: a.Max.Add(e)}
}

func (a AABB) Union(b AABB) AABB {
	return AABB{
		Min: mgl32.Vec3{minf(a.Min[0], b.Min[0]), minf(a.Min[1], b.Min[1]), minf(a.Min[2], b.Min[2])},
		Max: mgl32.Vec3{maxf(a.Max[0], b.Max[0]), maxf(a.Max[1], b.Max[1]), maxf(a.Max[2], b.Max[2])},
	}
}

func pointAABB(p mgl32.Vec3) AABB {
	return AABB{Min: p, Max: p}
}

// Plane is the half-space below the plane through Point with outward Normal.
type Plane struct {
	Point  mgl32.Vec3
	Normal mgl32.Vec3
}

// NewSlope returns a plane through point tilted angleDeg from flat, descending towards +X.
func NewSlope(point mgl32.Vec3, angleDeg float32) Plane {
	a := float64(mgl32.DegToRad(angleDeg))
	return Plane{
		Point:  point,
		Normal: mgl32.Vec3{float32(math.Sin(a)), float32(math.Cos(a)), 0},
	}
}

func (p Plane) Distance(q mgl32.Vec3) float32 {
	return q.Sub(p.Point).Dot(p.Normal.Normalize())
}

func (p Plane) Bounds() (AABB, bool) {
	return AABB{}, false
}

// Box is an oriented box.
type Box struct {
	Center      mgl32.Vec3
	HalfExtents mgl32.Vec3
	Rotation    mgl32.Quat
}

func NewBox(center, halfExtents mgl32.Vec3) Box {
	return Box{Center: center, HalfExtents: halfExtents, Rotation: mgl32.QuatIdent()}
}

func (b Box) Distance(p mgl32.Vec3) float32 {
	local := b.Rotation.Conjugate().Rotate(p.Sub(b.Center))
	var d, outside mgl32.Vec3
	for i := 0; i < 3; i++ {
		d[i] = absf(local[i]) - b.HalfExtents[i]
		outside[i] = maxf(d[i], 0)
	}
	inside := minf(maxf(d[0], maxf(d[1], d[2])), 0)
	return outside.Len() + inside
}

func (b Box) Bounds() (AABB, bool) {
	// Radius of the bounding sphere covers any rotation.
	r := b.HalfExtents.Len()
	return pointAABB(b.Center).Expand(r), true
}

type Sphere struct {
	Center mgl32.Vec3
	Radius float32
}

func (s Sphere) Distance(p mgl32.Vec3) float32 {
	return p.Sub(s.Center).Len() - s.Radius
}

func (s Sphere) Bounds() (AABB, bool) {
	return pointAABB(s.Center).Expand(s.Radius), true
}

// gradient estimates the outward surface normal of s at p.
func gradient(s Shape, p mgl32.Vec3) mgl32.Vec3 {
	const h = 1e-3
	var n mgl32.Vec3
	for i := 0; i < 3; i++ {
		var dp mgl32.Vec3
		dp[i] = h
		n[i] = s.Distance(p.Add(dp)) - s.Distance(p.Sub(dp))
	}
	if n.Len() < 1e-9 {
		return mgl32.Vec3{0, 1, 0}
	}
	return n.Normalize()
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
