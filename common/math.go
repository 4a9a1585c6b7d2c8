package common

import "math"

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// Vec3 is a point or direction in world space. Y is up; the ground plane is X/Z.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Flat drops the height component.
func (v Vec3) Flat() Vec3 {
	return Vec3{X: v.X, Z: v.Z}
}

// Normalize returns the unit vector of v, or the zero vector when v has no length.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Distance is the euclidean distance between two points.
func Distance(a, b Vec3) float64 {
	return a.Sub(b).Len()
}

// Yaw returns the heading in degrees, around the up axis, from a looking at b.
func Yaw(a, b Vec3) float64 {
	d := b.Sub(a)
	if d.X == 0 && d.Z == 0 {
		return 0
	}
	return math.Atan2(d.X, d.Z) * 180 / math.Pi
}

// Heading is the unit direction on the ground plane for a yaw in degrees.
func Heading(yaw float64) Vec3 {
	r := yaw * math.Pi / 180
	return Vec3{X: math.Sin(r), Z: math.Cos(r)}
}

// RotateYaw turns a local offset (X right, Z forward) into world space for
// something facing yaw degrees.
func RotateYaw(local Vec3, yaw float64) Vec3 {
	fwd := Heading(yaw)
	right := Vec3{X: fwd.Z, Z: -fwd.X}
	return Vec3{
		X: right.X*local.X + fwd.X*local.Z,
		Y: local.Y,
		Z: right.Z*local.X + fwd.Z*local.Z,
	}
}

// MoveTowards steps from toward to by at most maxStep.
func MoveTowards(from, to Vec3, maxStep float64) Vec3 {
	d := to.Sub(from)
	l := d.Len()
	if l <= maxStep || l == 0 {
		return to
	}
	return from.Add(d.Scale(maxStep / l))
}

func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func ClampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// WrapDegrees maps an angle into [0, 360).
func WrapDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
