package geometry

import (
	"testing"

	"pgregory.net/rapid"

	"villageforge/internal/worldapi"
)

// TestPropertyEffectiveDimsSwapOnlyAt90And270 checks P6: rotation swaps
// (w, d) at 90/270 and leaves them unchanged at 0/180, for any dims and any
// rotation drawn from the four legal values.
func TestPropertyEffectiveDimsSwapOnlyAt90And270(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := rapid.IntRange(1, 64).Draw(t, "w")
		d := rapid.IntRange(1, 64).Draw(t, "d")
		rotation := rapid.SampledFrom([]int{0, 90, 180, 270}).Draw(t, "rotation")

		gotW, gotD := EffectiveDims(w, d, rotation)
		switch rotation {
		case 90, 270:
			if gotW != d || gotD != w {
				t.Fatalf("expected swapped dims at rotation %d, got (%d,%d) from (%d,%d)", rotation, gotW, gotD, w, d)
			}
		default:
			if gotW != w || gotD != d {
				t.Fatalf("expected unchanged dims at rotation %d, got (%d,%d) from (%d,%d)", rotation, gotW, gotD, w, d)
			}
		}
	})
}

// TestPropertyBoundsOriginAlwaysWithinEnvelope checks that, for any legal
// rotation, the origin point used to paste a structure always lies on or
// within the computed world AABB.
func TestPropertyBoundsOriginAlwaysWithinEnvelope(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ox := rapid.IntRange(-1000, 1000).Draw(t, "ox")
		oy := rapid.IntRange(-64, 320).Draw(t, "oy")
		oz := rapid.IntRange(-1000, 1000).Draw(t, "oz")
		w := rapid.IntRange(1, 32).Draw(t, "w")
		h := rapid.IntRange(1, 32).Draw(t, "h")
		d := rapid.IntRange(1, 32).Draw(t, "d")
		rotation := rapid.SampledFrom([]int{0, 90, 180, 270}).Draw(t, "rotation")

		b := Bounds(ox, oy, oz, w, h, d, rotation)
		if !b.Contains(worldapi.BlockCoord{X: ox, Y: oy, Z: oz}) {
			t.Fatalf("origin (%d,%d,%d) not contained in computed bounds %+v", ox, oy, oz, b)
		}
	})
}
