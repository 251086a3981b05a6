// Package ppm writes a rendered pixel buffer as a Netpbm PPM image, in
// either ASCII (P3) or binary (P6) form, per spec §6. Grounded on aurora's
// PpmImageWriter/PpmAsciiImageWriter/PpmBinaryImageWriter split and its
// CreateImageWriter factory, collapsed to two functions since Go favors
// composition over a writer class hierarchy here.
package ppm

import (
	"bufio"
	"fmt"
	"io"

	"github.com/brightlane/pathtracer/pkg/pixelbuffer"
	"github.com/brightlane/pathtracer/pkg/rendererr"
	"github.com/brightlane/pathtracer/pkg/vecmath"
)

// Format selects the PPM variant to emit.
type Format int

const (
	// ASCII emits the P3 text format.
	ASCII Format = iota
	// Binary emits the P6 binary format.
	Binary
)

// maxColorValue is the PPM maxval this renderer always emits (one byte per
// channel).
const maxColorValue = 255

// ParseFormat maps a configuration string ("ascii" or "binary") to a
// Format, returning a ConfigError for anything else.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "ascii":
		return ASCII, nil
	case "binary":
		return Binary, nil
	default:
		return 0, rendererr.NewConfigError("output_format", fmt.Sprintf("unsupported PPM format %q", s))
	}
}

func (f Format) magicNumber() string {
	if f == Binary {
		return "P6"
	}
	return "P3"
}

// Write emits buf to w in the given format: a header
// "<MAGIC>\n<W> <H>\n<maxval>\n" followed by the pixel data. Input samples
// are clamped to [0, 1] before scaling to a byte per spec §6.
func Write(w io.Writer, buf *pixelbuffer.PixelBuffer, format Format) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "%s\n%d %d\n%d\n", format.magicNumber(), buf.Width(), buf.Height(), maxColorValue); err != nil {
		return rendererr.NewIOError("write ppm header", err)
	}

	for y := 0; y < buf.Height(); y++ {
		for x := 0; x < buf.Width(); x++ {
			c, err := buf.At(x, y)
			if err != nil {
				return rendererr.NewIOError("read pixel for ppm output", err)
			}

			r, g, b := toBytes(c)
			if format == Binary {
				if err := bw.WriteByte(r); err != nil {
					return rendererr.NewIOError("write ppm pixel", err)
				}
				if err := bw.WriteByte(g); err != nil {
					return rendererr.NewIOError("write ppm pixel", err)
				}
				if err := bw.WriteByte(b); err != nil {
					return rendererr.NewIOError("write ppm pixel", err)
				}
			} else {
				if _, err := fmt.Fprintf(bw, "%d %d %d\n", r, g, b); err != nil {
					return rendererr.NewIOError("write ppm pixel", err)
				}
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return rendererr.NewIOError("flush ppm output", err)
	}
	return nil
}

func toBytes(c vecmath.Vec3) (byte, byte, byte) {
	clamped := c.Clamp(0, 1)
	scale := func(v float64) byte { return byte(v * maxColorValue) }
	return scale(clamped.X), scale(clamped.Y), scale(clamped.Z)
}
