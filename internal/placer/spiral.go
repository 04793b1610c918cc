package placer

// spiralOffset is one candidate ground-plane offset from a spiral search.
type spiralOffset struct {
	dx, dz int
}

// spiralOffsets generates offsets in growing square rings of the given
// step, out to maxRadius (inclusive), in a fixed deterministic scan order:
// rings first by increasing radius, then within a ring by ascending dx then
// ascending dz. This fixed order is what makes the tie-break rule in spec
// §4.10 well-defined ("the one with smaller (dx, dz) in scan order wins") --
// whichever offset is tried first in this sequence wins ties.
func spiralOffsets(step, maxRadius int) []spiralOffset {
	if step <= 0 {
		step = 1
	}
	offsets := make([]spiralOffset, 0, (maxRadius/step+1)*8)
	for r := step; r <= maxRadius; r += step {
		for dx := -r; dx <= r; dx += step {
			for dz := -r; dz <= r; dz += step {
				if abs(dx) != r && abs(dz) != r {
					continue // interior point of this ring, already covered at smaller r
				}
				offsets = append(offsets, spiralOffset{dx: dx, dz: dz})
			}
		}
	}
	return offsets
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
