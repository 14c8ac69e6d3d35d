package pathmgr

import "math"

const twoPi = 2 * math.Pi

// mat3 is a 3x3 rotation matrix about the vertical (down) axis.
type mat3 [3][3]float64

// rotZ builds the rotation matrix for angle theta (radians), positive
// clockwise when viewed from above, matching the course convention.
func rotZ(theta float64) mat3 {
	s, c := math.Sin(theta), math.Cos(theta)
	return mat3{
		{c, -s, 0},
		{s, c, 0},
		{0, 0, 1},
	}
}

// apply rotates v, leaving the third (down) coordinate unchanged.
func (m mat3) apply(v Vec3) Vec3 {
	return Vec3{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// mo reduces x into [0, 2*pi), tolerating negative and non-finite-adjacent
// inputs. It is used exclusively for Dubins arc-length accounting, where
// repeated angle differences must accumulate without sign ambiguity.
func mo(x float64) float64 {
	y := math.Mod(x, twoPi)
	if y < 0 {
		y += twoPi
	}
	return y
}

// beyond returns the dot product (p-z).q: positive once p has crossed the
// oriented half-plane through z with outward normal q. Strictness (> vs >=)
// is the caller's concern, matching each transition's specified test.
func beyond(p, z, q Vec3) float64 {
	return p.sub(z).dot(q)
}
