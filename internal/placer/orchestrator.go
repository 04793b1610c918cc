package placer

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"villageforge/internal/catalog"
	"villageforge/internal/config"
	"villageforge/internal/model"
	"villageforge/internal/pathemit"
	"villageforge/internal/pathfind"
	"villageforge/internal/store"
	"villageforge/internal/surface"
	"villageforge/internal/telemetry"
	"villageforge/internal/worldapi"
)

// Placer is the village orchestrator from spec §4.10 / C10: it sites a
// village within spacing of existing villages, places its structures in
// main-first order, and wires up the path network.
type Placer struct {
	world     worldapi.Provider
	worldName string
	materials *worldapi.Registry
	catalog   *catalog.Catalog
	store     *store.Store
	cfg       *config.Config
	log       *telemetry.Sink
}

// NewPlacer wires together the collaborators a village generation run needs.
func NewPlacer(world worldapi.Provider, worldName string, materials *worldapi.Registry, cat *catalog.Catalog, st *store.Store, cfg *config.Config, log *telemetry.Sink) *Placer {
	if materials == nil {
		materials = worldapi.Default
	}
	if log == nil {
		log = telemetry.Default
	}
	return &Placer{world: world, worldName: worldName, materials: materials, catalog: cat, store: st, cfg: cfg, log: log}
}

// PlaceVillage runs the full generation pipeline from spec §4.10.
func (p *Placer) PlaceVillage(originX, originY, originZ int, cultureID string, seed int64) (*model.Village, error) {
	culture, ok := p.catalog.Culture(cultureID)
	if !ok {
		return nil, fmt.Errorf("unknown culture %q", cultureID)
	}
	if len(culture.StructureIDs) == 0 {
		return nil, nil // spec §8 boundary: empty structure list yields no village
	}

	order := p.buildOrder(culture, seed)
	mainID := culture.ResolvedMainBuildingID()

	// Step 2: inter-village spacing gate, before the village is registered.
	proposedBorder := model.NewBorderAt(originX, originZ)
	if p.cfg.Village.MinVillageSpacing > 0 {
		nearest := -1
		for _, existing := range p.store.VillagesInWorld(p.worldName) {
			dist := proposedBorder.ManhattanDistance(existing.Border)
			if nearest < 0 || dist < nearest {
				nearest = dist
			}
			if dist < p.cfg.Village.MinVillageSpacing {
				p.log.Warn("spacing violation: village %s at distance %d (< %d)", existing.VillageID, dist, p.cfg.Village.MinVillageSpacing)
				return nil, &ErrSpacingViolation{Actual: dist, Required: p.cfg.Village.MinVillageSpacing}
			}
		}
	}

	villageID := uuid.NewString()
	village := model.Village{
		VillageID:       villageID,
		WorldName:       p.worldName,
		CultureID:       cultureID,
		OriginX:         originX,
		OriginY:         originY,
		OriginZ:         originZ,
		Seed:            seed,
		CreatedAt:       time.Now(),
		Border:          proposedBorder,
		MainBuildingIdx: -1,
	}
	if err := p.store.RegisterVillage(village); err != nil {
		return nil, err
	}

	solver := surface.New(p.world, p.materials, nil)
	masks := make([]model.VolumeMask, 0, len(order))
	structurePlacer := NewStructurePlacer(p.world, p.materials, p.cfg, p.log)

	placedAny := false
	mainPlaced := false

	for i, structureID := range order {
		buildingSeed := seed + int64(i)
		template := p.catalog.GetTemplate(structureID)

		candX, candY, candZ, found := p.searchOrigin(solver, masks, originX, originZ, template)
		if !found {
			p.log.Structure("no site found for structure=%s", structureID)
			if structureID == mainID {
				p.store.RemoveVillage(villageID)
				return nil, &ErrMainBuildingMissing{CultureID: cultureID}
			}
			continue
		}
		_ = candY

		receipt, err := structurePlacer.Place(template, candX, candZ, buildingSeed, villageID, masks)
		if err != nil {
			if _, critical := err.(*ErrCommitCritical); critical {
				p.log.Critical("%v", err)
				_ = p.store.MarkPartiallyCommitted(villageID)
			} else {
				p.log.Structure("placement failed for structure=%s: %v", structureID, err)
			}
			if structureID == mainID {
				p.store.RemoveVillage(villageID)
				return nil, &ErrMainBuildingMissing{CultureID: cultureID}
			}
			continue
		}

		_ = p.store.AddReceipt(villageID, *receipt)
		mask := model.MaskFromReceipt(*receipt)
		_ = p.store.AddMask(villageID, mask)
		masks = append(masks, mask)
		solver = surface.New(p.world, p.materials, masks)

		building := model.Building{
			BuildingID:  uuid.NewString(),
			VillageID:   villageID,
			StructureID: structureID,
			OriginX:     receipt.OriginX,
			OriginY:     receipt.OriginY,
			OriginZ:     receipt.OriginZ,
			EffectiveW:  receipt.EffectiveW,
			EffectiveD:  receipt.EffectiveD,
			Height:      receipt.Height,
			Rotation:    receipt.Rotation,
		}
		if err := p.store.AddBuilding(villageID, building); err != nil {
			return nil, err
		}
		placedAny = true
		if structureID == mainID {
			mainPlaced = true
		}
		p.log.Volume("mask added structure=%s bounds=(%d,%d,%d)-(%d,%d,%d)", structureID,
			mask.Bounds.Min.X, mask.Bounds.Min.Y, mask.Bounds.Min.Z,
			mask.Bounds.Max.X, mask.Bounds.Max.Y, mask.Bounds.Max.Z)
	}

	if !placedAny {
		p.store.RemoveVillage(villageID)
		return nil, fmt.Errorf("no buildings placed for village")
	}
	if !mainPlaced {
		p.store.RemoveVillage(villageID)
		return nil, &ErrMainBuildingMissing{CultureID: cultureID}
	}

	current, _ := p.store.Village(villageID)
	for idx, b := range current.Buildings {
		if b.StructureID == mainID {
			_ = p.store.SetMainBuilding(villageID, idx)
			break
		}
	}

	current, _ = p.store.Village(villageID)
	if len(current.Buildings) >= 2 {
		network := p.planPaths(current, culture)
		_ = p.store.SetPathNetwork(villageID, network)
	}

	final, _ := p.store.Village(villageID)
	return &final, nil
}

// buildOrder returns structure ids with the main building first, followed
// by the rest of the culture's structures shuffled by a seeded RNG (spec
// §4.10 step 1).
func (p *Placer) buildOrder(culture catalog.Culture, seed int64) []string {
	mainID := culture.ResolvedMainBuildingID()
	rest := make([]string, 0, len(culture.StructureIDs))
	for _, id := range culture.StructureIDs {
		if id != mainID {
			rest = append(rest, id)
		}
	}
	rng := newSeededRNG(seed)
	rng.ShuffleStrings(rest)

	order := make([]string, 0, len(culture.StructureIDs))
	order = append(order, mainID)
	order = append(order, rest...)
	return order
}

// searchOrigin implements spec §4.10 step 5b: spiral out from the village
// origin, conservatively clearing the worst-case rotation footprint against
// every existing mask expanded on the ground plane.
func (p *Placer) searchOrigin(solver *surface.Solver, masks []model.VolumeMask, originX, originZ int, template catalog.StructureTemplate) (x, y, z int, found bool) {
	worst := template.Width
	if template.Depth > worst {
		worst = template.Depth
	}
	buffer := worst + p.cfg.Village.MinBuildingSpacing

	offsets := append([]spiralOffset{{0, 0}}, spiralOffsets(8, p.cfg.Worldgen.OrchestratorRadius)...)

	for _, off := range offsets {
		cx, cz := originX+off.dx, originZ+off.dz
		if p.groundPlaneBlocked(masks, cx, cz, buffer) {
			continue
		}
		groundY := solver.SurfaceHeight(cx, cz)
		if groundY < p.world.MinHeight() {
			continue
		}
		candY := groundY + 1
		if candY < p.world.MinHeight() {
			continue
		}
		return cx, candY, cz, true
	}
	return 0, 0, 0, false
}

// groundPlaneBlocked reports whether (x, z) falls inside any mask's X/Z
// footprint expanded by buffer, ignoring Y entirely (spec §4.10 step 5b).
func (p *Placer) groundPlaneBlocked(masks []model.VolumeMask, x, z, buffer int) bool {
	for _, m := range masks {
		if x >= m.Bounds.Min.X-buffer && x <= m.Bounds.Max.X+buffer &&
			z >= m.Bounds.Min.Z-buffer && z <= m.Bounds.Max.Z+buffer {
			return true
		}
	}
	return false
}

// planPaths connects every non-main building's entrance to the main
// building's entrance (spec §4.10 step 8), using the final mask set.
func (p *Placer) planPaths(v model.Village, culture catalog.Culture) model.PathNetwork {
	main, ok := v.MainBuilding()
	if !ok {
		return model.PathNetwork{}
	}
	mainReceipt, ok := receiptFor(v, main)
	if !ok {
		return model.PathNetwork{}
	}

	planner := pathfind.New(p.world, p.materials, v.Masks)
	planner.MaxNodes = p.cfg.Pathfinding.MaxNodes
	planner.MaxDistance = p.cfg.Pathfinding.MaxDistance
	planner.MaxSlope = p.cfg.Pathfinding.MaxSlope
	planner.SlopeMul = p.cfg.Pathfinding.SlopeMul
	planner.WaterCost = p.cfg.Pathfinding.WaterCost

	palette := culture.Palette
	if palette == (catalog.PathPalette{}) {
		palette = catalog.PaletteFor(culture.CultureID)
	}
	emitter := pathemit.New(p.world, p.materials, palette, v.Masks, p.cfg.Commit.BatchSize)

	network := model.PathNetwork{}
	for _, b := range v.Buildings {
		if b.BuildingID == main.BuildingID {
			continue
		}
		receipt, ok := receiptFor(v, b)
		if !ok {
			continue
		}
		start := worldapi.BlockCoord{X: receipt.EntranceX, Y: receipt.EntranceY, Z: receipt.EntranceZ}
		goal := worldapi.BlockCoord{X: mainReceipt.EntranceX, Y: mainReceipt.EntranceY, Z: mainReceipt.EntranceZ}

		result := planner.FindPath(start, goal)
		if !result.Found {
			p.log.Path("no path found from structure=%s to main structure=%s", b.StructureID, main.StructureID)
			continue
		}
		placed := emitter.Emit(result.Path)
		blocks := make([]worldapi.BlockCoord, len(placed))
		copy(blocks, placed)

		p.log.Path("segment structure=%s -> main hash=%s blocks=%d", b.StructureID, result.Hash, len(blocks))
		network.Segments = append(network.Segments, model.PathSegment{
			StartX: start.X, StartY: start.Y, StartZ: start.Z,
			EndX: goal.X, EndY: goal.Y, EndZ: goal.Z,
			Blocks: blocks,
			Hash:   result.Hash,
		})
	}
	return network
}

func receiptFor(v model.Village, b model.Building) (model.PlacementReceipt, bool) {
	for _, r := range v.Receipts {
		if r.OriginX == b.OriginX && r.OriginY == b.OriginY && r.OriginZ == b.OriginZ && r.StructureID == b.StructureID {
			return r, true
		}
	}
	return model.PlacementReceipt{}, false
}
