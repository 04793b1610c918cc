// Package terraform levels and clears ground within an exact AABB (spec
// §4.6 / C6). It never expands beyond the bounds it is given.
package terraform

import (
	"fmt"

	"villageforge/internal/worldapi"
)

// Terraformer levels/fills within an exact AABB supplied by the caller
// (geometry.Bounds), aborting without mutation if fluid is present.
type Terraformer struct {
	world     worldapi.Provider
	materials *worldapi.Registry
	// FoundationFill is the material raised tiles are filled with.
	FoundationFill string
	// BackfillFoundation, when set, fills every air gap under a column down
	// to the first solid block instead of only the single tile directly
	// below the foundation (spec §9 open question: off by default).
	BackfillFoundation bool
	// BackfillMaxDepth bounds how far down a backfill column digs for solid
	// ground before giving up, in case the column is air all the way to the
	// world floor.
	BackfillMaxDepth int
}

// ErrFluidDetected is returned when terraforming aborts due to fluid in or
// adjacent to the footprint (spec's TerraformingAborted taxonomy entry).
type ErrFluidDetected struct {
	X, Y, Z int
}

func (e *ErrFluidDetected) Error() string {
	return fmt.Sprintf("terraform: fluid detected at (%d,%d,%d), aborting without mutation", e.X, e.Y, e.Z)
}

// New returns a Terraformer over world using the given material registry
// (worldapi.Default if nil).
func New(world worldapi.Provider, materials *worldapi.Registry) *Terraformer {
	if materials == nil {
		materials = worldapi.Default
	}
	return &Terraformer{world: world, materials: materials, FoundationFill: "dirt", BackfillMaxDepth: 16}
}

// Prepare levels/fills ground within [minX,maxX]x[minZ,maxZ] at foundation
// level baseY-1, raising sunk tiles, removing small obstructions, and
// trimming vegetation strictly within the given bounds. If any base or
// adjacent tile is fluid, it aborts before mutating anything.
func (t *Terraformer) Prepare(minX, maxX, baseY, minZ, maxZ int) error {
	if err := t.scanForFluid(minX, maxX, baseY, minZ, maxZ); err != nil {
		return err
	}

	for x := minX; x <= maxX; x++ {
		for z := minZ; z <= maxZ; z++ {
			if err := t.levelColumn(x, baseY, z); err != nil {
				return err
			}
		}
	}
	return nil
}

// scanForFluid checks the footprint and its immediate lateral neighbors for
// fluid at or one below the foundation level.
func (t *Terraformer) scanForFluid(minX, maxX, baseY, minZ, maxZ int) error {
	for x := minX - 1; x <= maxX+1; x++ {
		for z := minZ - 1; z <= maxZ+1; z++ {
			for _, y := range [2]int{baseY - 1, baseY} {
				b := t.world.BlockAt(x, y, z)
				if t.materials.IsFluid(b.Material) {
					return &ErrFluidDetected{X: x, Y: y, Z: z}
				}
			}
		}
	}
	return nil
}

// levelColumn ensures (x, baseY-1, z) is solid natural-ish fill, and clears
// vegetation/small obstructions from baseY up through a short clearance
// band, without ever reaching beyond the AABB's horizontal extent (the
// caller guarantees x, z are within bounds).
func (t *Terraformer) levelColumn(x, baseY, z int) error {
	base := t.world.BlockAt(x, baseY-1, z)
	if base.IsAir || t.materials.IsVegetation(base.Material) {
		if err := t.world.SetBlock(x, baseY-1, z, t.FoundationFill, nil); err != nil {
			return err
		}
	}

	if t.BackfillFoundation && base.IsAir {
		if err := t.backfillColumn(x, baseY-2, z); err != nil {
			return err
		}
	}

	const clearanceBand = 6
	for y := baseY; y < baseY+clearanceBand; y++ {
		b := t.world.BlockAt(x, y, z)
		if b.IsAir {
			continue
		}
		if t.materials.IsVegetation(b.Material) {
			if err := t.world.SetBlock(x, y, z, "air", nil); err != nil {
				return err
			}
			continue
		}
		if !t.materials.IsNaturalGround(b.Material) && !t.materials.IsObstruction(b.Material) {
			// Unrecognized small prop: clear it, matching "removes small
			// obstructions" from spec §4.6.
			if err := t.world.SetBlock(x, y, z, "air", nil); err != nil {
				return err
			}
		}
	}
	return nil
}

// backfillColumn fills air straight down from (x, topY, z) until it hits a
// solid block or BackfillMaxDepth is exhausted, so a structure footprint
// hanging over a cave or cliff edge gets real ground under it rather than a
// single floating foundation tile.
func (t *Terraformer) backfillColumn(x, topY, z int) error {
	for i := 0; i < t.BackfillMaxDepth; i++ {
		y := topY - i
		b := t.world.BlockAt(x, y, z)
		if !b.IsAir {
			return nil
		}
		if err := t.world.SetBlock(x, y, z, t.FoundationFill, nil); err != nil {
			return err
		}
	}
	return nil
}
