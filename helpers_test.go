package kinematic

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const tol = 1e-4

// vecApprox compares by distance. mgl32's ApproxEqualThreshold turns into a
// tol*tol check for components that are exactly zero.
func vecApprox(got, want mgl32.Vec3) bool {
	return got.Sub(want).Len() < tol
}

type vecNear mgl32.Vec3

func (v vecNear) Matches(x any) bool {
	got, ok := x.(mgl32.Vec3)
	return ok && vecApprox(got, mgl32.Vec3(v))
}

func (v vecNear) String() string {
	return fmt.Sprintf("is near %v", mgl32.Vec3(v))
}

type floatNear float32

func (f floatNear) Matches(x any) bool {
	got, ok := x.(float32)
	return ok && math.Abs(float64(got-float32(f))) < tol
}

func (f floatNear) String() string {
	return fmt.Sprintf("is near %v", float32(f))
}

type positive struct{}

func (positive) Matches(x any) bool {
	got, ok := x.(float32)
	return ok && got > 0
}

func (positive) String() string { return "is positive" }

// testGeometry is the default capsule with its centre at half height.
func testGeometry() CharacterGeometry {
	g := DefaultGeometry()
	g.Center = mgl32.Vec3{0, g.Height / 2, 0}
	return g
}

func testPhysics(abyss float32) PhysicsConfig {
	p := DefaultPhysicsConfig()
	p.AbyssRadiusMultiplier = abyss
	return p
}

// tilted returns the unit normal of a surface tilted deg degrees, descending towards +X.
func tilted(deg float64) mgl32.Vec3 {
	a := deg * math.Pi / 180
	return mgl32.Vec3{float32(math.Sin(a)), float32(math.Cos(a)), 0}
}

var down = mgl32.Vec3{0, -1, 0}
