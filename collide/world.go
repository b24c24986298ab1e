// Package collide is a small static collision world that answers the casts a
// kinematic.Controller needs. Shapes are signed distance fields and casts are
// resolved by sphere tracing.
package collide

import (
	"math"
	"slices"
	"sync"

	"github.com/gekko3d/kinematic"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

const (
	hitEpsilon    = 1e-4
	maxTraceSteps = 256
	maxCoreSample = 32
)

type ColliderId string

func newColliderId() ColliderId {
	return ColliderId(uuid.NewString())
}

type Collider struct {
	Shape   Shape
	Layer   kinematic.LayerMask
	Trigger bool
}

type entry struct {
	Collider
	id      ColliderId
	seq     uint64
	bounds  AABB
	bounded bool
}

// World is safe for concurrent queries; Add and Remove take the write lock.
type World struct {
	mu        sync.RWMutex
	entries   map[ColliderId]*entry
	unbounded []ColliderId
	grid      *SpatialHashGrid
	seq       uint64
}

var _ kinematic.CollisionQuery = (*World)(nil)

func NewWorld(cellSize float32) *World {
	return &World{
		entries: make(map[ColliderId]*entry),
		grid:    NewSpatialHashGrid(cellSize),
	}
}

func (w *World) Add(c Collider) ColliderId {
	w.mu.Lock()
	defer w.mu.Unlock()

	e := &entry{Collider: c, id: newColliderId(), seq: w.seq}
	w.seq++
	e.bounds, e.bounded = c.Shape.Bounds()
	if e.bounded {
		w.grid.Insert(e.id, e.bounds)
	} else {
		w.unbounded = append(w.unbounded, e.id)
	}
	w.entries[e.id] = e
	return e.id
}

// AddGround registers a solid shape on the ground layer.
func (w *World) AddGround(s Shape) ColliderId {
	return w.Add(Collider{Shape: s, Layer: kinematic.LayerGround})
}

func (w *World) Remove(id ColliderId) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	e, ok := w.entries[id]
	if !ok {
		return false
	}
	if e.bounded {
		w.grid.Remove(id, e.bounds)
	} else {
		w.unbounded = slices.DeleteFunc(w.unbounded, func(c ColliderId) bool { return c == id })
	}
	delete(w.entries, id)
	return true
}

func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.entries)
}

// candidates returns solid colliders on mask near region, in insertion order.
// Callers must hold the read lock.
func (w *World) candidates(region AABB, mask kinematic.LayerMask) []*entry {
	ids := append(w.grid.QueryAABB(region), w.unbounded...)
	var out []*entry
	for _, id := range ids {
		e := w.entries[id]
		if e == nil || e.Trigger || !mask.Has(e.Layer) {
			continue
		}
		if e.bounded && !overlaps(e.bounds, region) {
			continue
		}
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b *entry) int {
		switch {
		case a.seq < b.seq:
			return -1
		case a.seq > b.seq:
			return 1
		}
		return 0
	})
	return out
}

func overlaps(a, b AABB) bool {
	return a.Min.X() <= b.Max.X() && a.Max.X() >= b.Min.X() &&
		a.Min.Y() <= b.Max.Y() && a.Max.Y() >= b.Min.Y() &&
		a.Min.Z() <= b.Max.Z() && a.Max.Z() >= b.Min.Z()
}

// segment is the core of a swept shape: a point when A == B, a capsule axis otherwise.
type segment struct {
	A, B mgl32.Vec3
}

// closest returns the smallest distance from the translated segment to s and the
// segment point where it was found.
func (seg segment) closest(s Shape, offset mgl32.Vec3) (float32, mgl32.Vec3) {
	a := seg.A.Add(offset)
	axis := seg.B.Sub(seg.A)
	n := int(math.Ceil(float64(axis.Len() / 0.05)))
	if n > maxCoreSample {
		n = maxCoreSample
	}
	best := s.Distance(a)
	bestP := a
	for i := 1; i <= n; i++ {
		p := a.Add(axis.Mul(float32(i) / float32(n)))
		if d := s.Distance(p); d < best {
			best, bestP = d, p
		}
	}
	return best, bestP
}

func (seg segment) bounds() AABB {
	return pointAABB(seg.A).Union(pointAABB(seg.B))
}

// sweep traces seg with the given radius along dir. Shapes overlapping the
// start position are skipped.
func (w *World) sweep(seg segment, radius float32, dir mgl32.Vec3, maxDistance float32, mask kinematic.LayerMask) (kinematic.Hit, bool) {
	if dir.Len() < 1e-6 || maxDistance < 0 {
		return kinematic.Hit{}, false
	}
	dir = dir.Normalize()

	start := seg.bounds()
	end := AABB{Min: start.Min.Add(dir.Mul(maxDistance)), Max: start.Max.Add(dir.Mul(maxDistance))}
	region := start.Union(end).Expand(radius + hitEpsilon)

	w.mu.RLock()
	defer w.mu.RUnlock()

	var best kinematic.Hit
	found := false
	for _, e := range w.candidates(region, mask) {
		hit, ok := trace(e.Shape, seg, radius, dir, maxDistance)
		if ok && (!found || hit.Distance < best.Distance) {
			best, found = hit, true
		}
	}
	return best, found
}

func trace(s Shape, seg segment, radius float32, dir mgl32.Vec3, maxDistance float32) (kinematic.Hit, bool) {
	if d, _ := seg.closest(s, mgl32.Vec3{}); d-radius <= 0 {
		return kinematic.Hit{}, false
	}
	var t float32
	for i := 0; i < maxTraceSteps; i++ {
		d, p := seg.closest(s, dir.Mul(t))
		gap := d - radius
		if gap < hitEpsilon {
			n := gradient(s, p)
			return kinematic.Hit{
				Point:    p.Sub(n.Mul(d)),
				Normal:   n,
				Distance: t,
			}, true
		}
		t += gap
		if t > maxDistance {
			return kinematic.Hit{}, false
		}
	}
	return kinematic.Hit{}, false
}

func (w *World) SphereCast(origin mgl32.Vec3, radius float32, direction mgl32.Vec3, maxDistance float32, mask kinematic.LayerMask) (kinematic.Hit, bool) {
	return w.sweep(segment{A: origin, B: origin}, radius, direction, maxDistance, mask)
}

func (w *World) CapsuleCast(p1, p2 mgl32.Vec3, radius float32, direction mgl32.Vec3, maxDistance float32, mask kinematic.LayerMask) (kinematic.Hit, bool) {
	return w.sweep(segment{A: p1, B: p2}, radius, direction, maxDistance, mask)
}

func (w *World) Raycast(origin, direction mgl32.Vec3, maxDistance float32, mask kinematic.LayerMask) (kinematic.Hit, bool) {
	return w.sweep(segment{A: origin, B: origin}, 0, direction, maxDistance, mask)
}

func (w *World) CheckSphere(center mgl32.Vec3, radius float32, mask kinematic.LayerMask) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, e := range w.candidates(pointAABB(center).Expand(radius), mask) {
		if e.Shape.Distance(center) <= radius {
			return true
		}
	}
	return false
}

// Penetration reports the deepest overlap of a capsule with solid colliders on
// mask: the push direction and depth needed to separate them.
func (w *World) Penetration(p1, p2 mgl32.Vec3, radius float32, mask kinematic.LayerMask) (mgl32.Vec3, float32, bool) {
	seg := segment{A: p1, B: p2}

	w.mu.RLock()
	defer w.mu.RUnlock()

	var normal mgl32.Vec3
	var depth float32
	for _, e := range w.candidates(seg.bounds().Expand(radius), mask) {
		d, p := seg.closest(e.Shape, mgl32.Vec3{})
		if pen := radius - d; pen > depth {
			depth = pen
			normal = gradient(e.Shape, p)
		}
	}
	return normal, depth, depth > 0
}
