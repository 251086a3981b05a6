package material

import "math"

// IsotropicPhase is the uniform phase function 1/(4*pi).
func IsotropicPhase() float64 {
	return 1.0 / (4.0 * math.Pi)
}

// HenyeyGreensteinPhase evaluates the Henyey-Greenstein phase function for
// asymmetry g at the cosine of the scattering angle. The convention used
// throughout this renderer (medium and atmosphere alike) is
// (1-g^2) / (4*pi*(1+g^2-2g*cosTheta)^1.5), so that g > 0 peaks at forward
// scattering (cosTheta = 1).
func HenyeyGreensteinPhase(g, cosTheta float64) float64 {
	if g == 0 {
		return IsotropicPhase()
	}
	denom := 1 + g*g - 2*g*cosTheta
	if denom <= 0 {
		return 0
	}
	return (1 - g*g) / (4 * math.Pi * math.Pow(denom, 1.5))
}

// MediumPhase evaluates the material's phase function: isotropic when G is
// zero, Henyey-Greenstein otherwise.
func (m Material) MediumPhase(cosTheta float64) float64 {
	if m.G == 0 {
		return IsotropicPhase()
	}
	return HenyeyGreensteinPhase(m.G, cosTheta)
}
