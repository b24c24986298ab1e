package kinematic

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Up is the world up axis. Gravity acts along -Up.
var Up = mgl32.Vec3{0, 1, 0}

// Forward is the direction a character faces at yaw 0.
var Forward = mgl32.Vec3{0, 0, 1}

const epsilon = 1e-6

// lerp interpolates a towards b, clamping t to [0, 1].
func lerp(a, b, t float32) float32 {
	t = mgl32.Clamp(t, 0, 1)
	return a + (b-a)*t
}

func lerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	t = mgl32.Clamp(t, 0, 1)
	return a.Add(b.Sub(a).Mul(t))
}

// safeNormalize returns the unit vector of v, or zero when v is degenerate.
func safeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l < epsilon {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

// project returns the component of v along onto.
func project(v, onto mgl32.Vec3) mgl32.Vec3 {
	sq := onto.Dot(onto)
	if sq < epsilon {
		return mgl32.Vec3{}
	}
	return onto.Mul(v.Dot(onto) / sq)
}

func projectOnPlane(v, normal mgl32.Vec3) mgl32.Vec3 {
	return v.Sub(project(v, normal))
}

// angleDeg returns the unsigned angle between a and b in degrees.
func angleDeg(a, b mgl32.Vec3) float32 {
	denom := float64(a.Len()) * float64(b.Len())
	if denom < epsilon {
		return 0
	}
	dot := float64(a[0])*float64(b[0]) + float64(a[1])*float64(b[1]) + float64(a[2])*float64(b[2])
	cos := math.Max(-1, math.Min(1, dot/denom))
	return float32(math.Acos(cos) * 180 / math.Pi)
}

func planar(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v.X(), 0, v.Z()}
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

func isFiniteVec3(v mgl32.Vec3) bool {
	for _, c := range v {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
