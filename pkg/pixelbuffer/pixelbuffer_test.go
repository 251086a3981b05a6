package pixelbuffer

import (
	"testing"

	"github.com/brightlane/pathtracer/pkg/rendererr"
	"github.com/brightlane/pathtracer/pkg/vecmath"
)

func TestWriteAndReadPixel(t *testing.T) {
	b := New(4, 4)
	c := vecmath.NewVec3(0.1, 0.2, 0.3)
	if err := b.WritePixel(2, 1, c); err != nil {
		t.Fatalf("WritePixel() error = %v", err)
	}
	got, err := b.At(2, 1)
	if err != nil {
		t.Fatalf("At() error = %v", err)
	}
	if got != c {
		t.Errorf("At(2,1) = %v, want %v", got, c)
	}
}

func TestOutOfRangeIsBoundsError(t *testing.T) {
	b := New(4, 4)
	err := b.WritePixel(4, 0, vecmath.Vec3{})
	if err == nil {
		t.Fatal("expected an error for out-of-range write")
	}
	if _, ok := err.(*rendererr.BoundsError); !ok {
		t.Errorf("error = %T, want *rendererr.BoundsError", err)
	}

	if _, err := b.At(-1, 0); err == nil {
		t.Error("expected an error for negative x")
	}
}

func TestFillSetsEveryPixel(t *testing.T) {
	b := New(3, 2)
	c := vecmath.NewVec3(1, 1, 1)
	b.Fill(c)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			got, _ := b.At(x, y)
			if got != c {
				t.Errorf("At(%d,%d) = %v, want %v", x, y, got, c)
			}
		}
	}
}

func TestDisjointWritesFromConcurrentStripes(t *testing.T) {
	// Property 1: disjoint (x,y) sets written by independent "workers"
	// covering the image exactly once must not collide or miss pixels.
	b := New(8, 8)
	done := make(chan struct{})
	for stripe := 0; stripe < 4; stripe++ {
		y0, y1 := stripe*2, stripe*2+2
		go func(y0, y1 int) {
			for y := y0; y < y1; y++ {
				for x := 0; x < 8; x++ {
					_ = b.WritePixel(x, y, vecmath.NewVec3(float64(x), float64(y), 0))
				}
			}
			done <- struct{}{}
		}(y0, y1)
	}
	for i := 0; i < 4; i++ {
		<-done
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			got, _ := b.At(x, y)
			want := vecmath.NewVec3(float64(x), float64(y), 0)
			if got != want {
				t.Errorf("At(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}
