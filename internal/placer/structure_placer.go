package placer

import (
	"time"

	"villageforge/internal/catalog"
	"villageforge/internal/config"
	"villageforge/internal/geometry"
	"villageforge/internal/model"
	"villageforge/internal/siting"
	"villageforge/internal/surface"
	"villageforge/internal/telemetry"
	"villageforge/internal/terraform"
	"villageforge/internal/worldapi"
)

// StructurePlacer runs the re-seat loop from spec §4.9 / C9.
type StructurePlacer struct {
	world     worldapi.Provider
	materials *worldapi.Registry
	cfg       *config.Config
	log       *telemetry.Sink
}

// NewStructurePlacer returns a StructurePlacer over world using cfg's
// re-seat/spacing knobs. A nil log falls back to telemetry.Default.
func NewStructurePlacer(world worldapi.Provider, materials *worldapi.Registry, cfg *config.Config, log *telemetry.Sink) *StructurePlacer {
	if materials == nil {
		materials = worldapi.Default
	}
	if log == nil {
		log = telemetry.Default
	}
	return &StructurePlacer{world: world, materials: materials, cfg: cfg, log: log}
}

// Place attempts to site, terraform, and commit template at origin, then at
// seeded nearby offsets, making at most cfg.Worldgen.MaxReseatAttempts
// attempts in all (spec §4.9). It returns nil and an *ErrExhausted if no
// attempt succeeds. The
// Y coordinate of origin is always recomputed from the world's own height
// map (attempt 0 included), so callers only supply X/Z.
func (p *StructurePlacer) Place(
	template catalog.StructureTemplate,
	originX, originZ int,
	seed int64,
	villageID string,
	existingMasks []model.VolumeMask,
) (*model.PlacementReceipt, error) {
	rng := newSeededRNG(seed)
	rotation := rng.NextRotation() // fixed draw order: rotation first (spec §4.9 step 2)

	maxAttempts := p.cfg.Worldgen.MaxReseatAttempts
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	spacing := p.cfg.Village.MinBuildingSpacing

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		candX, candZ := originX, originZ
		if attempt > 0 {
			candX, candZ = p.nextAlternative(originX, originZ, rng, attempt)
		}
		candY := p.world.HighestBlockY(candX, candZ) + 1

		w, h, d := template.Width, template.Height, template.Depth
		effW, effD := geometry.EffectiveDims(w, d, rotation)

		validator := siting.New(p.world, p.materials)
		result := validator.Validate(candX, candY, candZ, effW, h, effD)
		if !result.Passed {
			lastErr = &ErrSiteRejected{Reason: rejectionReason(result)}
			p.log.Structure("reject attempt=%d structure=%s reason=%s", attempt, template.StructureID, rejectionReason(result))
			continue
		}

		bounds := geometry.Bounds(candX, candY, candZ, w, h, d, rotation)

		if geometry.CollidesWithAny(bounds, spacing, existingMasks) {
			lastErr = &ErrCollision{}
			p.log.Structure("collision attempt=%d structure=%s", attempt, template.StructureID)
			continue
		}

		tf := terraform.New(p.world, p.materials)
		tf.BackfillFoundation = p.cfg.Worldgen.BackfillFoundation
		if err := tf.Prepare(bounds.Min.X, bounds.Max.X, bounds.Min.Y, bounds.Min.Z, bounds.Max.Z); err != nil {
			lastErr = &ErrTerraformingAborted{Cause: err}
			p.log.Structure("terraform-abort attempt=%d structure=%s err=%v", attempt, template.StructureID, err)
			continue
		}

		if err := p.commit(template, bounds, rotation); err != nil {
			// Step 7 must not be retried: the world is already terraformed.
			p.log.Critical("commit failed after terraforming for %s: %v", template.StructureID, err)
			return nil, &ErrCommitCritical{StructureID: template.StructureID, Cause: err}
		}

		corners := p.sampleCorners(bounds)
		entranceX, entranceY, entranceZ := p.computeEntrance(template, bounds, candX, candZ, rotation)

		receipt := model.PlacementReceipt{
			StructureID: template.StructureID,
			VillageID:   villageID,
			MinX:        bounds.Min.X, MinY: bounds.Min.Y, MinZ: bounds.Min.Z,
			MaxX: bounds.Max.X, MaxY: bounds.Max.Y, MaxZ: bounds.Max.Z,
			OriginX: candX, OriginY: candY, OriginZ: candZ,
			Rotation:   rotation,
			EffectiveW: effW, EffectiveD: effD,
			Height:     h,
			Corners:    corners,
			EntranceX:  entranceX, EntranceY: entranceY, EntranceZ: entranceZ,
			Timestamp:  time.Now(),
		}
		p.log.Receipt(receipt.Summary())
		return &receipt, nil
	}

	p.log.Warn("exhausted re-seat attempts for structure=%s last=%v", template.StructureID, lastErr)
	return nil, &ErrExhausted{StructureID: template.StructureID}
}

func rejectionReason(r siting.Result) SiteRejectReason {
	switch {
	case r.CountsByClass[siting.ClassFluid] > 0:
		return ReasonFluid
	case r.CountsByClass[siting.ClassSteep] > 0:
		return ReasonSteep
	case r.CountsByClass[siting.ClassBlocked] > 0:
		return ReasonBlocked
	case !r.InteriorAirOK:
		return ReasonInterior
	case !r.EntranceOK:
		return ReasonEntrance
	default:
		return ReasonBlocked
	}
}

// nextAlternative computes a seeded spiral offset re-projected onto the
// world's highest solid block (spec §4.9 step 1).
func (p *StructurePlacer) nextAlternative(originX, originZ int, rng *seededRNG, attempt int) (int, int) {
	const step = 8
	const maxRadius = 32
	radius := step * attempt
	if radius > maxRadius {
		radius = maxRadius
	}
	dx := rng.NextOffset(radius)
	dz := rng.NextOffset(radius)
	return originX + dx, originZ + dz
}

func (p *StructurePlacer) commit(template catalog.StructureTemplate, bounds worldapi.Bounds, rotation int) error {
	if template.Clipboard != nil {
		// Clipboard is an opaque host asset (spec §6): its PasteTo writes
		// directly and isn't ours to route through a commit queue.
		return template.Clipboard.PasteTo(p.world, bounds.Min.X, bounds.Min.Y, bounds.Min.Z, rotation)
	}
	return catalog.PasteProcedural(p.world, template, bounds.Min.X, bounds.Min.Y, bounds.Min.Z, rotation, p.cfg.Commit.BatchSize)
}

// sampleCorners reads the four foundation corners at Y = bounds.Min.Y, in
// clockwise order NW, NE, SE, SW starting from the min-x/min-z corner (spec
// §4.9 step 8 / P7).
func (p *StructurePlacer) sampleCorners(bounds worldapi.Bounds) [4]model.CornerSample {
	minX, maxX := bounds.Min.X, bounds.Max.X
	minZ, maxZ := bounds.Min.Z, bounds.Max.Z
	y := bounds.Min.Y

	read := func(x, z int) model.CornerSample {
		b := p.world.BlockAt(x, y, z)
		return model.CornerSample{X: x, Y: y, Z: z, Material: b.Material}
	}

	var corners [4]model.CornerSample
	corners[model.CornerNW] = read(minX, minZ)
	corners[model.CornerNE] = read(maxX, minZ)
	corners[model.CornerSE] = read(maxX, maxZ)
	corners[model.CornerSW] = read(minX, maxZ)
	return corners
}

// computeEntrance projects the template's entrance anchor/facing outward,
// three cells beyond the bounds to clear the mask buffer of 2 (spec §4.9
// step 9), then resolves ground height with a solver restricted to just
// this structure's own mask (so the entrance is never found "inside" the
// building it belongs to).
//
// RotatedAnchor rotates the anchor offset about the placement origin
// (originX, originZ), not about bounds.Min: geometry.Bounds itself rotates
// the whole footprint about that same origin, so bounds.Min only coincides
// with the origin at rotation 0. Anchoring off bounds.Min here would put the
// entrance a full footprint-extent away from the real door for every other
// rotation.
func (p *StructurePlacer) computeEntrance(template catalog.StructureTemplate, bounds worldapi.Bounds, originX, originZ, rotation int) (int, int, int) {
	fx, fz := template.RotatedFacing(rotation)
	ax, _, az := template.RotatedAnchor(rotation)

	anchorX := originX + ax
	anchorZ := originZ + az

	const clearance = 3
	outX := anchorX + fx*clearance
	outZ := anchorZ + fz*clearance

	selfMask := model.VolumeMask{Bounds: bounds}
	solver := surface.New(p.world, p.materials, []model.VolumeMask{selfMask})
	y := solver.SurfaceHeight(outX, outZ) + 1
	return outX, y, outZ
}
