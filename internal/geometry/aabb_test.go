package geometry

import (
	"testing"

	"villageforge/internal/model"
	"villageforge/internal/worldapi"
)

func TestEffectiveDims(t *testing.T) {
	cases := []struct {
		rotation int
		wantW    int
		wantD    int
	}{
		{0, 5, 9},
		{90, 9, 5},
		{180, 5, 9},
		{270, 9, 5},
	}
	for _, tc := range cases {
		w, d := EffectiveDims(5, 9, tc.rotation)
		if w != tc.wantW || d != tc.wantD {
			t.Errorf("rotation=%d: got (%d,%d) want (%d,%d)", tc.rotation, w, d, tc.wantW, tc.wantD)
		}
	}
}

func TestBoundsUnrotated(t *testing.T) {
	b := Bounds(10, 64, 20, 4, 5, 6, 0)
	if b.Min != (worldapi.BlockCoord{X: 10, Y: 64, Z: 20}) {
		t.Fatalf("unexpected min: %v", b.Min)
	}
	if b.Max != (worldapi.BlockCoord{X: 13, Y: 68, Z: 25}) {
		t.Fatalf("unexpected max: %v", b.Max)
	}
}

func TestBoundsRotated90SwapsExtents(t *testing.T) {
	b := Bounds(0, 0, 0, 4, 3, 6, 90)
	w := b.Max.X - b.Min.X + 1
	d := b.Max.Z - b.Min.Z + 1
	if w != 6 || d != 4 {
		t.Fatalf("rotated 90: got w=%d d=%d, want w=6 d=4", w, d)
	}
}

func TestBoundsOriginAlwaysInsideEnvelope(t *testing.T) {
	for _, rotation := range []int{0, 90, 180, 270} {
		b := Bounds(100, 64, 100, 5, 4, 7, rotation)
		origin := worldapi.BlockCoord{X: 100, Y: 64, Z: 100}
		if !b.Contains(origin) {
			t.Errorf("rotation=%d: envelope %v does not contain origin %v", rotation, b, origin)
		}
	}
}

func TestCollidesWithAnyDetectsOverlap(t *testing.T) {
	mask := model.VolumeMask{
		Bounds: worldapi.Bounds{
			Min: worldapi.BlockCoord{X: 0, Y: 0, Z: 0},
			Max: worldapi.BlockCoord{X: 5, Y: 5, Z: 5},
		},
	}
	candidate := worldapi.Bounds{
		Min: worldapi.BlockCoord{X: 4, Y: 0, Z: 4},
		Max: worldapi.BlockCoord{X: 8, Y: 5, Z: 8},
	}
	if !CollidesWithAny(candidate, 0, []model.VolumeMask{mask}) {
		t.Fatal("expected overlap to be detected")
	}
}

func TestCollidesWithAnyRespectsBuffer(t *testing.T) {
	mask := model.VolumeMask{
		Bounds: worldapi.Bounds{
			Min: worldapi.BlockCoord{X: 0, Y: 0, Z: 0},
			Max: worldapi.BlockCoord{X: 5, Y: 5, Z: 5},
		},
	}
	candidate := worldapi.Bounds{
		Min: worldapi.BlockCoord{X: 7, Y: 0, Z: 0},
		Max: worldapi.BlockCoord{X: 10, Y: 5, Z: 5},
	}
	if CollidesWithAny(candidate, 0, []model.VolumeMask{mask}) {
		t.Fatal("did not expect collision without buffer")
	}
	if !CollidesWithAny(candidate, 2, []model.VolumeMask{mask}) {
		t.Fatal("expected buffer to cause collision")
	}
}

func TestCollidesWithAnyNoMasks(t *testing.T) {
	candidate := worldapi.Bounds{
		Min: worldapi.BlockCoord{X: 0, Y: 0, Z: 0},
		Max: worldapi.BlockCoord{X: 1, Y: 1, Z: 1},
	}
	if CollidesWithAny(candidate, 5, nil) {
		t.Fatal("expected no collision against empty mask set")
	}
}
