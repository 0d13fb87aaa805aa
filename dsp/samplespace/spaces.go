package samplespace

import "math"

// Real is a scalar interval sampled through the first channel.
type Real struct{}

// Circle is a periodic scalar domain sampled through the first channel.
type Circle struct{}

// Sphere is the unit sphere sampled through the first three channels.
type Sphere struct{}

// Vector2 is a 2D vector domain.
type Vector2 struct{}

// Vector3 is a 3D vector domain.
type Vector3 struct{}

// Vector4 is a 4D vector domain.
type Vector4 struct{}

func (Real) Kind() Kind    { return KindReal }
func (Circle) Kind() Kind  { return KindCircle }
func (Sphere) Kind() Kind  { return KindSphere }
func (Vector2) Kind() Kind { return KindVector2 }
func (Vector3) Kind() Kind { return KindVector3 }
func (Vector4) Kind() Kind { return KindVector4 }

func (Real) Channels() int    { return 1 }
func (Circle) Channels() int  { return 1 }
func (Sphere) Channels() int  { return 3 }
func (Vector2) Channels() int { return 2 }
func (Vector3) Channels() int { return 3 }
func (Vector4) Channels() int { return 4 }

func (Real) sealed()    {}
func (Circle) sealed()  {}
func (Sphere) sealed()  {}
func (Vector2) sealed() {}
func (Vector3) sealed() {}
func (Vector4) sealed() {}

// Draw returns a threshold jittered inside stratum s of N over [-1, 1):
// t = 2*(s+u)/N - 1.
func (Real) Draw(src Source, stratum, strata int) Partition {
	return Threshold{T: 2*(float64(stratum)+src.Float64())/float64(max(strata, 1)) - 1}
}

// Draw returns a rotation jittered inside stratum s of N over [0, 2):
// t = 2*(s+u)/N.
func (Circle) Draw(src Source, stratum, strata int) Partition {
	return Rotation{T: 2 * (float64(stratum) + src.Float64()) / float64(max(strata, 1))}
}

// Draw returns a great-circle half-space through the origin. The offset is
// zero because the sphere is symmetric about every plane through it.
func (Sphere) Draw(src Source, _, _ int) Partition {
	return Hyperplane{Normal: sphereDirection(src)}
}

// Draw returns a random line with offset in (-sqrt2, sqrt2), enough to sweep
// the whole [-1,1]^2 square.
func (Vector2) Draw(src Source, _, _ int) Partition {
	phi := 2 * math.Pi * src.Float64()
	offset := math.Sqrt2 * (2*src.Float64() - 1)
	return Hyperplane{Normal: []float64{math.Cos(phi), math.Sin(phi)}, Offset: offset}
}

// Draw returns a random plane with offset in (-sqrt3, sqrt3).
func (Vector3) Draw(src Source, _, _ int) Partition {
	v := sphereDirection(src)
	offset := math.Sqrt(3) * (2*src.Float64() - 1)
	return Hyperplane{Normal: v, Offset: offset}
}

// Draw returns a random hyperplane with a direction uniform on S^3 and
// offset in (-2, 2).
func (Vector4) Draw(src Source, _, _ int) Partition {
	v := make([]float64, 4)
	var norm float64
	for i := range v {
		v[i] = src.NormFloat64()
		norm += v[i] * v[i]
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		v[0], norm = 1, 1
	}
	for i := range v {
		v[i] /= norm
	}
	offset := 2 * (2*src.Float64() - 1)
	return Hyperplane{Normal: v, Offset: offset}
}

// sphereDirection draws a unit vector uniformly on S^2 (Archimedes:
// z uniform in [-1,1], azimuth uniform).
func sphereDirection(src Source) []float64 {
	phi := 2 * math.Pi * src.Float64()
	u := 2*src.Float64() - 1
	r := math.Sqrt(1 - u*u)
	return []float64{r * math.Cos(phi), r * math.Sin(phi), u}
}
