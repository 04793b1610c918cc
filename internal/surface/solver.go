// Package surface implements the ground-height oracle that every later
// placement step consults (spec §4.8 / C8).
package surface

import (
	"villageforge/internal/model"
	"villageforge/internal/worldapi"
)

// Solver answers "what is the surface height at (x, z), ignoring anything
// inside a registered mask". It borrows its mask list and world provider
// rather than copying them (spec §9) and is intentionally short-lived: a
// fresh Solver is built after every successful structure commit.
type Solver struct {
	world     worldapi.Provider
	materials *worldapi.Registry
	masks     []model.VolumeMask
	cache     map[[2]int]int
}

// New builds a solver over world, consulting masks to skip occupied columns.
// A nil materials registry falls back to worldapi.Default.
func New(world worldapi.Provider, materials *worldapi.Registry, masks []model.VolumeMask) *Solver {
	if materials == nil {
		materials = worldapi.Default
	}
	return &Solver{
		world:     world,
		materials: materials,
		masks:     masks,
		cache:     make(map[[2]int]int),
	}
}

// SurfaceHeight returns the highest Y, at or below the world's highest block,
// such that (x, y, z) is a solid natural block that is not inside any
// registered mask; masked cells above it are skipped, not treated as a
// barrier. Returns world.MinHeight()-1 if no such Y exists.
//
// Implementation sketch (spec §4.8): start from the world's highest block at
// (x, z); skip vegetation and any Y contained in a mask; continue past
// non-natural solids (prior building materials); return the first natural
// ground hit.
func (s *Solver) SurfaceHeight(x, z int) int {
	key := [2]int{x, z}
	if y, ok := s.cache[key]; ok {
		return y
	}

	minY := s.world.MinHeight()
	y := s.world.HighestBlockY(x, z)

	for y >= minY {
		if model.AnyContains(s.masks, x, y, z) {
			y--
			continue
		}
		b := s.world.BlockAt(x, y, z)
		if b.IsAir || s.materials.IsVegetation(b.Material) {
			y--
			continue
		}
		if s.materials.IsNaturalGround(b.Material) {
			s.cache[key] = y
			return y
		}
		// Non-natural solid (previously placed building material): keep
		// descending past it looking for the natural ground beneath.
		y--
	}

	s.cache[key] = minY - 1
	return minY - 1
}

// Invalidate drops the cache and swaps in a new mask list. Call this instead
// of constructing a new Solver when only the mask set changed but the world
// provider and materials registry are unchanged.
func (s *Solver) Invalidate(masks []model.VolumeMask) {
	s.masks = masks
	s.cache = make(map[[2]int]int)
}
