// Package pathemit materializes planned path blocks into the world with
// culture-specific blocks, smoothing, and widening (spec §4.12 / C12).
package pathemit

import (
	"sort"

	"villageforge/internal/catalog"
	"villageforge/internal/commitqueue"
	"villageforge/internal/model"
	"villageforge/internal/worldapi"
)

// Emitter writes planned path nodes into the world.
type Emitter struct {
	world     worldapi.Provider
	materials *worldapi.Registry
	palette   catalog.PathPalette
	masks     []model.VolumeMask
	batchSize int
}

// New returns an Emitter for the given culture palette and mask set. Each
// emission stage (headroom clearing, widening, smoothing) applies its writes
// through a commitqueue.Queue in chunks of batchSize (spec §5: "fixed-size
// batches per tick ... in deterministic layer→row→x order"); batchSize <= 0
// applies a stage's writes in a single batch.
func New(world worldapi.Provider, materials *worldapi.Registry, palette catalog.PathPalette, masks []model.VolumeMask, batchSize int) *Emitter {
	if materials == nil {
		materials = worldapi.Default
	}
	return &Emitter{world: world, materials: materials, palette: palette, masks: masks, batchSize: batchSize}
}

// Emit materializes planned, in order, following spec §4.12 steps 1-5:
// recompute ground height, skip masked/unsupported cells, lay path
// material, clear headroom, widen by one pass, then smooth with stairs/
// slabs. It returns the set of world positions actually written (the top of
// each path cell), for I3/I4 verification.
//
// The path tile itself is written immediately per planned cell, since a
// write failure there must skip that cell before it is ever considered
// placed. Headroom, widening, and smoothing have no such per-cell error
// dependency and so are staged through commitBatched instead; each stage's
// batch is fully applied before the next stage runs, since widen's support
// checks read cells headroom clearing just wrote, and so on.
func (e *Emitter) Emit(planned []worldapi.BlockCoord) []worldapi.BlockCoord {
	placed := make([]worldapi.BlockCoord, 0, len(planned))
	var headroom []commitqueue.Entry

	for _, p := range planned {
		groundY := e.recomputeGround(p.X, p.Z)
		if groundY < e.world.MinHeight() {
			continue
		}
		if model.AnyContains(e.masks, p.X, groundY, p.Z) || model.AnyContains(e.masks, p.X, groundY-1, p.Z) {
			continue
		}
		below := e.world.BlockAt(p.X, groundY-1, p.Z)
		if !e.materials.IsNaturalGround(below.Material) {
			continue
		}

		if err := e.world.SetBlock(p.X, groundY-1, p.Z, e.palette.Path, nil); err != nil {
			continue
		}
		headroom = append(headroom, e.headroomEntries(p.X, groundY, p.Z)...)
		placed = append(placed, worldapi.BlockCoord{X: p.X, Y: groundY - 1, Z: p.Z})
	}

	e.commitBatched(headroom)
	e.commitBatched(e.widenEntries(placed))
	e.commitBatched(e.smoothEntries(placed))

	return placed
}

// commitBatched sorts entries into deterministic layer→row→x order (spec
// §5) and applies them through a commit queue in chunks of e.batchSize.
func (e *Emitter) commitBatched(entries []commitqueue.Entry) {
	if len(entries) == 0 {
		return
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Y != entries[j].Y {
			return entries[i].Y < entries[j].Y
		}
		if entries[i].Z != entries[j].Z {
			return entries[i].Z < entries[j].Z
		}
		return entries[i].X < entries[j].X
	})
	q := commitqueue.NewQueue()
	q.Enqueue(entries...)
	_ = commitqueue.ApplyInBatches(q, e.world, e.batchSize, nil)
}

func (e *Emitter) recomputeGround(x, z int) int {
	y := e.world.HighestBlockY(x, z)
	for y >= e.world.MinHeight() {
		if model.AnyContains(e.masks, x, y, z) {
			y--
			continue
		}
		b := e.world.BlockAt(x, y, z)
		if b.IsAir || e.materials.IsVegetation(b.Material) {
			y--
			continue
		}
		return y + 1
	}
	return e.world.MinHeight() - 1
}

// headroomEntries builds up to 2 cells of air clearing above the path tile,
// never inside a mask (spec §4.12 step 3).
func (e *Emitter) headroomEntries(x, groundY, z int) []commitqueue.Entry {
	var entries []commitqueue.Entry
	for dy := 0; dy < 2; dy++ {
		y := groundY + dy
		if model.AnyContains(e.masks, x, y, z) {
			return entries
		}
		entries = append(entries, commitqueue.Entry{X: x, Y: y, Z: z, Material: "air"})
	}
	return entries
}

// widenEntries computes a single pass: for each placed block, for each
// 4-neighbor at the same Y, if the neighbor is replaceable, supported, and
// outside all masks, place path material (spec §4.12 step 4).
func (e *Emitter) widenEntries(placed []worldapi.BlockCoord) []commitqueue.Entry {
	offsets := [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	var entries []commitqueue.Entry
	for _, p := range placed {
		for _, o := range offsets {
			nx, nz := p.X+o[0], p.Z+o[1]
			ny := p.Y + 1
			if model.AnyContains(e.masks, nx, ny, nz) || model.AnyContains(e.masks, nx, p.Y, nz) {
				continue
			}
			here := e.world.BlockAt(nx, ny, nz)
			if !here.IsAir && !e.materials.IsVegetation(here.Material) {
				continue
			}
			below := e.world.BlockAt(nx, p.Y, nz)
			if !below.IsSolid {
				continue
			}
			entries = append(entries, commitqueue.Entry{X: nx, Y: p.Y, Z: nz, Material: e.palette.Path})
		}
	}
	return entries
}

// smoothEntries converts single-block elevation changes between consecutive
// planned blocks into stairs, and places a slab every 5th tile on flat runs
// (spec §4.12 step 5). Neither is placed when support is missing.
func (e *Emitter) smoothEntries(placed []worldapi.BlockCoord) []commitqueue.Entry {
	var entries []commitqueue.Entry
	flatRun := 0
	for i := 1; i < len(placed); i++ {
		prev, cur := placed[i-1], placed[i]
		dy := cur.Y - prev.Y
		if !e.supported(cur.X, cur.Y, cur.Z) {
			continue
		}
		switch {
		case dy == 1 || dy == -1:
			entries = append(entries, commitqueue.Entry{X: cur.X, Y: cur.Y, Z: cur.Z, Material: e.palette.Stair})
			flatRun = 0
		case dy == 0:
			flatRun++
			if flatRun%5 == 0 {
				entries = append(entries, commitqueue.Entry{X: cur.X, Y: cur.Y, Z: cur.Z, Material: e.palette.Slab})
			}
		default:
			flatRun = 0
		}
	}
	return entries
}

func (e *Emitter) supported(x, y, z int) bool {
	below := e.world.BlockAt(x, y-1, z)
	return below.IsSolid && !model.AnyContains(e.masks, x, y-1, z)
}
