package vecmath

import "math/rand"

// RandomInUnitCube returns a vector with each component uniform in [-1, 1],
// the jitter source for Lambertian scatter and metal fuzziness.
func RandomInUnitCube(random *rand.Rand) Vec3 {
	return Vec3{
		X: random.Float64()*2 - 1,
		Y: random.Float64()*2 - 1,
		Z: random.Float64()*2 - 1,
	}
}

// RandomInUnitSquare returns a 2D offset uniform in [-0.5, 0.5]^2, used to
// jitter primary rays for supersampling.
func RandomInUnitSquare(random *rand.Rand) (dx, dy float64) {
	return random.Float64() - 0.5, random.Float64() - 0.5
}
