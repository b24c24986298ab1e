package collide

import (
	"sync"
	"testing"

	"github.com/gekko3d/kinematic"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	up   = kinematic.Up
	down = mgl32.Vec3{0, -1, 0}
)

func vecApprox(got, want mgl32.Vec3) bool {
	return got.Sub(want).Len() < 1e-3
}

func groundWorld() *World {
	w := NewWorld(2)
	w.AddGround(Plane{Normal: up})
	return w
}

func TestWorld_SphereCastFlat(t *testing.T) {
	w := groundWorld()

	hit, ok := w.SphereCast(mgl32.Vec3{0, 1, 0}, 0.25, down, 2, kinematic.LayerGround)
	require.True(t, ok)
	assert.InDelta(t, 0.75, hit.Distance, 1e-3)
	assert.True(t, vecApprox(hit.Normal, up), "normal %v", hit.Normal)
	assert.True(t, vecApprox(hit.Point, mgl32.Vec3{}), "point %v", hit.Point)
}

func TestWorld_CastRespectsDistanceAndMask(t *testing.T) {
	w := groundWorld()

	_, ok := w.SphereCast(mgl32.Vec3{0, 1, 0}, 0.25, down, 0.5, kinematic.LayerGround)
	assert.False(t, ok, "ground is beyond max distance")

	_, ok = w.SphereCast(mgl32.Vec3{0, 1, 0}, 0.25, down, 2, kinematic.LayerDefault)
	assert.False(t, ok, "ground layer is masked out")

	_, ok = w.SphereCast(mgl32.Vec3{0, 1, 0}, 0.25, up, 2, kinematic.LayerGround)
	assert.False(t, ok, "casting away from the ground")

	_, ok = w.SphereCast(mgl32.Vec3{0, 1, 0}, 0.25, mgl32.Vec3{}, 2, kinematic.LayerGround)
	assert.False(t, ok, "zero direction")
}

func TestWorld_IgnoresShapesOverlappingAtStart(t *testing.T) {
	w := groundWorld()

	_, ok := w.SphereCast(mgl32.Vec3{0, 0.1, 0}, 0.25, down, 2, kinematic.LayerGround)
	assert.False(t, ok)

	// a shape clear of the start is still reported
	w.AddGround(Plane{Point: mgl32.Vec3{0, -1, 0}, Normal: up})
	hit, ok := w.SphereCast(mgl32.Vec3{0, 0.1, 0}, 0.25, down, 2, kinematic.LayerGround)
	require.True(t, ok)
	assert.InDelta(t, 0.85, hit.Distance, 1e-3)
}

func TestWorld_NearestHitWins(t *testing.T) {
	w := NewWorld(2)
	far := w.AddGround(NewBox(mgl32.Vec3{0, -2, 0}, mgl32.Vec3{1, 0.5, 1}))
	w.AddGround(NewBox(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0.5, 1}))

	hit, ok := w.Raycast(mgl32.Vec3{0, 3, 0}, down, 10, kinematic.LayerGround)
	require.True(t, ok)
	assert.InDelta(t, 2.5, hit.Distance, 1e-3)

	assert.True(t, w.Remove(far))
	assert.False(t, w.Remove(far))
	assert.Equal(t, 1, w.Len())
}

func TestWorld_RaycastSlopeNormal(t *testing.T) {
	w := NewWorld(2)
	w.AddGround(NewSlope(mgl32.Vec3{}, 30))

	hit, ok := w.Raycast(mgl32.Vec3{0, 1, 0}, down, 2, kinematic.LayerGround)
	require.True(t, ok)
	assert.InDelta(t, 1, hit.Distance, 1e-3)
	assert.True(t, vecApprox(hit.Normal, mgl32.Vec3{0.5, 0.8660254, 0}), "normal %v", hit.Normal)
}

func TestWorld_CapsuleCastHitsWall(t *testing.T) {
	w := NewWorld(2)
	w.AddGround(NewBox(mgl32.Vec3{2, 1, 0}, mgl32.Vec3{0.5, 1, 1}))

	hit, ok := w.CapsuleCast(mgl32.Vec3{0, 1.5, 0}, mgl32.Vec3{0, 0.5, 0}, 0.25, mgl32.Vec3{1, 0, 0}, 5, kinematic.LayerGround)
	require.True(t, ok)
	assert.InDelta(t, 1.25, hit.Distance, 1e-3)
	assert.True(t, vecApprox(hit.Normal, mgl32.Vec3{-1, 0, 0}), "normal %v", hit.Normal)
}

func TestWorld_TriggersNeverCollide(t *testing.T) {
	w := NewWorld(2)
	w.Add(Collider{Shape: Plane{Normal: up}, Layer: kinematic.LayerGround, Trigger: true})

	_, ok := w.SphereCast(mgl32.Vec3{0, 1, 0}, 0.25, down, 2, kinematic.AllLayers)
	assert.False(t, ok)
	assert.False(t, w.CheckSphere(mgl32.Vec3{}, 1, kinematic.AllLayers))
	_, _, pen := w.Penetration(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{}, 0.5, kinematic.AllLayers)
	assert.False(t, pen)
}

func TestWorld_CheckSphere(t *testing.T) {
	w := NewWorld(2)
	w.AddGround(Sphere{Center: mgl32.Vec3{5, 0, 0}, Radius: 1})

	assert.True(t, w.CheckSphere(mgl32.Vec3{6.2, 0, 0}, 0.25, kinematic.LayerGround))
	assert.False(t, w.CheckSphere(mgl32.Vec3{6.5, 0, 0}, 0.25, kinematic.LayerGround))
	assert.False(t, w.CheckSphere(mgl32.Vec3{6.2, 0, 0}, 0.25, kinematic.LayerCharacter))
}

func TestWorld_Penetration(t *testing.T) {
	w := groundWorld()

	n, depth, ok := w.Penetration(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0.2, 0}, 0.3, kinematic.LayerGround)
	require.True(t, ok)
	assert.InDelta(t, 0.1, depth, 1e-3)
	assert.True(t, vecApprox(n, up))

	_, _, ok = w.Penetration(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0.5, 0}, 0.3, kinematic.LayerGround)
	assert.False(t, ok)
}

func TestWorld_ConcurrentQueries(t *testing.T) {
	w := groundWorld()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			x := float32(i)
			for j := 0; j < 50; j++ {
				w.SphereCast(mgl32.Vec3{x, 1, 0}, 0.25, down, 2, kinematic.LayerGround)
				w.CheckSphere(mgl32.Vec3{x, 0.1, 0}, 0.2, kinematic.LayerGround)
			}
		}(i)
	}
	for i := 0; i < 8; i++ {
		id := w.AddGround(Sphere{Center: mgl32.Vec3{float32(i) * 3, 5, 0}, Radius: 0.5})
		w.Remove(id)
	}
	wg.Wait()
	assert.Equal(t, 1, w.Len())
}
