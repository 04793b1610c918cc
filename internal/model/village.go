package model

import (
	"time"

	"villageforge/internal/worldapi"
)

// Building is an immutable-after-construction placed structure record
// (spec §3). It holds no back-pointer to its receipt, keeping the ownership
// graph acyclic (spec §9); the placer finds the receipt by matching origin
// and structure id, not by comparing bounds.
type Building struct {
	BuildingID  string
	VillageID   string
	StructureID string
	OriginX     int
	OriginY     int
	OriginZ     int
	EffectiveW  int
	EffectiveD  int
	Height      int
	Rotation    int
}

// VillageBorder is the axis-aligned ground-plane envelope of every building
// footprint placed so far (spec §3). It starts as a single point at the
// village origin and only ever grows.
type VillageBorder struct {
	MinX, MaxX, MinZ, MaxZ int
}

// NewBorderAt returns the degenerate single-point border a village starts
// with, before any building is placed.
func NewBorderAt(x, z int) VillageBorder {
	return VillageBorder{MinX: x, MaxX: x, MinZ: z, MaxZ: z}
}

// Expand grows the border, if necessary, to cover [minX,maxX]x[minZ,maxZ].
func (b *VillageBorder) Expand(minX, maxX, minZ, maxZ int) {
	if minX < b.MinX {
		b.MinX = minX
	}
	if maxX > b.MaxX {
		b.MaxX = maxX
	}
	if minZ < b.MinZ {
		b.MinZ = minZ
	}
	if maxZ > b.MaxZ {
		b.MaxZ = maxZ
	}
}

// ManhattanDistance returns the border-to-border Manhattan distance between
// two borders, used for the inter-village spacing gate (spec I2 / P2). It is
// zero if the borders overlap or touch on an axis.
func (a VillageBorder) ManhattanDistance(b VillageBorder) int {
	dx := axisGap(a.MinX, a.MaxX, b.MinX, b.MaxX)
	dz := axisGap(a.MinZ, a.MaxZ, b.MinZ, b.MaxZ)
	return dx + dz
}

// axisGap returns the gap between two 1-D intervals, or 0 if they overlap.
func axisGap(aMin, aMax, bMin, bMax int) int {
	if aMax < bMin {
		return bMin - aMax
	}
	if bMax < aMin {
		return aMin - bMax
	}
	return 0
}

// PathSegment is one traversal between two entrance anchors (spec §3).
type PathSegment struct {
	StartX, StartY, StartZ int
	EndX, EndY, EndZ       int
	Blocks                 []worldapi.BlockCoord
	Hash                   string
}

// PathNetwork is the ordered set of path segments for a village (spec §3).
type PathNetwork struct {
	Segments []PathSegment
}

// Village is the top-level generated record (spec §3), owned exclusively by
// the store. Buildings, receipts, masks, and the path network are appended
// once and never mutated after a successful commit.
type Village struct {
	VillageID       string
	WorldName       string
	CultureID       string
	OriginX         int
	OriginY         int
	OriginZ         int
	Seed            int64
	CreatedAt       time.Time
	Buildings       []Building
	MainBuildingIdx int // index into Buildings, or -1 if undesignated
	Border          VillageBorder
	Receipts        []PlacementReceipt
	Masks           []VolumeMask
	Paths           PathNetwork
	// PartiallyCommitted is set when a CommitCritical occurred during
	// generation: the world was mutated but a receipt could not be built.
	PartiallyCommitted bool
}

// MainBuilding returns the designated main building and true, or the zero
// value and false if none is designated yet.
func (v Village) MainBuilding() (Building, bool) {
	if v.MainBuildingIdx < 0 || v.MainBuildingIdx >= len(v.Buildings) {
		return Building{}, false
	}
	return v.Buildings[v.MainBuildingIdx], true
}
