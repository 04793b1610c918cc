// Package siting classifies a candidate foundation and decides whether a
// structure may be placed there (spec §4.5 / C5). It never mutates the
// world.
package siting

import "villageforge/internal/worldapi"

// Class is the per-tile classification bucket from spec §4.5.
type Class int

const (
	ClassSolid Class = iota
	ClassFluid
	ClassSteep
	ClassBlocked
)

// Result is the outcome of validating a candidate footprint (spec §4.5).
type Result struct {
	Passed        bool
	FoundationOK  bool
	InteriorAirOK bool
	EntranceOK    bool
	CountsByClass map[Class]int
}

// Validator classifies and validates candidate sites against a world.
type Validator struct {
	world     worldapi.Provider
	materials *worldapi.Registry
	// MaxSteepDelta is the largest Y delta across the footprint tolerated
	// before the footprint is counted as steep.
	MaxSteepDelta int
	// MinInteriorAirRatio is the fraction of interior cells (above the base,
	// within the volume) that must be air or vegetation to pass.
	MinInteriorAirRatio float64
}

// New returns a Validator with spec-reasonable defaults.
func New(world worldapi.Provider, materials *worldapi.Registry) *Validator {
	if materials == nil {
		materials = worldapi.Default
	}
	return &Validator{
		world:               world,
		materials:           materials,
		MaxSteepDelta:       3,
		MinInteriorAirRatio: 0.6,
	}
}

// Validate scans the base plane and interior of a proposed placement at
// origin with effective dims (w, h, d), and classifies every base tile.
// Fluid anywhere in the footprint is a hard reject (spec §4.5).
func (v *Validator) Validate(originX, originY, originZ, w, h, d int) Result {
	counts := map[Class]int{}
	foundationOK := true
	minY, maxY := originY, originY

	for x := 0; x < w; x++ {
		for z := 0; z < d; z++ {
			wx, wz := originX+x, originZ+z
			base := v.world.BlockAt(wx, originY-1, wz)
			class := v.classify(base)
			counts[class]++
			if class == ClassFluid {
				foundationOK = false
			}
			if class == ClassBlocked {
				foundationOK = false
			}
			colY := v.world.HighestBlockY(wx, wz)
			if colY < minY {
				minY = colY
			}
			if colY > maxY {
				maxY = colY
			}
		}
	}
	if maxY-minY > v.MaxSteepDelta {
		counts[ClassSteep]++
		foundationOK = false
	}

	interiorAirOK := v.checkInteriorAir(originX, originY, originZ, w, h, d)
	entranceOK := v.checkEntrance(originX, originY, originZ, w, d)

	passed := foundationOK && counts[ClassFluid] == 0 && interiorAirOK && entranceOK
	return Result{
		Passed:        passed,
		FoundationOK:  foundationOK,
		InteriorAirOK: interiorAirOK,
		EntranceOK:    entranceOK,
		CountsByClass: counts,
	}
}

func (v *Validator) classify(b worldapi.Block) Class {
	switch {
	case v.materials.IsFluid(b.Material):
		return ClassFluid
	case b.IsAir, v.materials.IsVegetation(b.Material), v.materials.IsNaturalGround(b.Material):
		return ClassSolid
	case v.materials.IsObstruction(b.Material):
		return ClassBlocked
	default:
		return ClassSolid
	}
}

// checkInteriorAir ensures the volume above the base contains enough
// replaceable (air/vegetation) cells.
func (v *Validator) checkInteriorAir(originX, originY, originZ, w, h, d int) bool {
	total := 0
	replaceable := 0
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			for z := 0; z < d; z++ {
				wx, wy, wz := originX+x, originY+y, originZ+z
				b := v.world.BlockAt(wx, wy, wz)
				total++
				if b.IsAir || v.materials.IsVegetation(b.Material) {
					replaceable++
				}
			}
		}
	}
	if total == 0 {
		return true
	}
	return float64(replaceable)/float64(total) >= v.MinInteriorAirRatio
}

// checkEntrance ensures at least one face of the footprint has an adjacent
// walkable tile just outside the bounds.
func (v *Validator) checkEntrance(originX, originY, originZ, w, d int) bool {
	faces := [][2]int{
		{0, -1}, {0, d}, // north/south neighbor rows
	}
	for x := 0; x < w; x++ {
		for _, f := range faces {
			wx, wz := originX+x, originZ+f[1]
			if v.walkable(wx, originY, wz) {
				return true
			}
		}
	}
	for z := 0; z < d; z++ {
		for _, wx := range [2]int{originX - 1, originX + w} {
			if v.walkable(wx, originY, z+originZ) {
				return true
			}
		}
	}
	return false
}

func (v *Validator) walkable(x, y, z int) bool {
	below := v.world.BlockAt(x, y-1, z)
	here := v.world.BlockAt(x, y, z)
	return (v.materials.IsNaturalGround(below.Material) || v.materials.IsPathMaterial(below.Material)) &&
		(here.IsAir || v.materials.IsVegetation(here.Material))
}
