// Package tonemap applies the renderer's tone-map and gamma operators to a
// finished pixel buffer, per spec §4.5. The power-law gamma operator is the
// one used consistently across renders; GammaApprox exposes the cheaper
// sqrt approximation as a separate, never-mixed-in operator (spec §9 Open
// Questions).
package tonemap

import (
	"math"

	"github.com/brightlane/pathtracer/pkg/pixelbuffer"
	"github.com/brightlane/pathtracer/pkg/vecmath"
)

// Operator selects a Reinhard variant.
type Operator int

const (
	// ReinhardLuminance scales each pixel by its luminance-based Reinhard
	// factor, preserving hue.
	ReinhardLuminance Operator = iota
	// ReinhardPerChannel applies c/(1+c) independently per channel.
	ReinhardPerChannel
)

// epsilon guards the luminance-based operator's division against a
// near-black pixel.
const epsilon = 1e-6

// defaultGamma is the power-law exponent's reciprocal base (2.2).
const defaultGamma = 2.2

// Apply tone-maps and gamma-corrects every pixel of buf in place, using op
// for the tone-map stage and a pow(1/gamma) gamma stage (spec §4.5).
func Apply(buf *pixelbuffer.PixelBuffer, op Operator) error {
	for y := 0; y < buf.Height(); y++ {
		for x := 0; x < buf.Width(); x++ {
			c, err := buf.At(x, y)
			if err != nil {
				return err
			}
			mapped := Reinhard(c, op)
			gammaCorrected := Gamma(mapped)
			if err := buf.WritePixel(x, y, gammaCorrected); err != nil {
				return err
			}
		}
	}
	return nil
}

// Reinhard applies one Reinhard operator to a single linear-space color.
func Reinhard(c vecmath.Vec3, op Operator) vecmath.Vec3 {
	if op == ReinhardPerChannel {
		return vecmath.NewVec3(
			c.X/(1+c.X),
			c.Y/(1+c.Y),
			c.Z/(1+c.Z),
		)
	}

	y := luminance(c)
	scale := y / (1 + y) / math.Max(y, epsilon)
	return c.Multiply(scale)
}

func luminance(c vecmath.Vec3) float64 {
	return c.Luminance()
}

// Gamma raises each channel to 1/2.2, the power-law operator used
// consistently by this renderer.
func Gamma(c vecmath.Vec3) vecmath.Vec3 {
	return c.Pow(1 / defaultGamma)
}

// GammaApprox uses sqrt as a cheap stand-in for Gamma. Exposed as a
// distinct operator so a render never mixes the two within one build.
func GammaApprox(c vecmath.Vec3) vecmath.Vec3 {
	return c.Sqrt()
}

// InverseGamma raises each channel to 2.2, undoing Gamma. Used only by
// tests verifying the gamma round trip (spec property 8).
func InverseGamma(c vecmath.Vec3) vecmath.Vec3 {
	return c.Pow(defaultGamma)
}
