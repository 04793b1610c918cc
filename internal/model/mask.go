package model

import (
	"time"

	"villageforge/internal/worldapi"
)

// VolumeMask is the authoritative "what is solid / off-limits" record for a
// committed structure (spec §4.1 / C1). A nil Bitmap means "fully occupied
// within Bounds" — the common case for a rectangular foundation.
type VolumeMask struct {
	StructureID string
	VillageID   string
	Bounds      worldapi.Bounds
	// Bitmap, if non-nil, is indexed (x-minX, y-minY, z-minZ) in row-major
	// (z, y, x) order: index = ((z*height)+y)*width+x.
	Bitmap    []bool
	Timestamp time.Time
}

func (m VolumeMask) bitmapIndex(x, y, z int) int {
	w := m.Bounds.Width()
	h := m.Bounds.Height()
	lx := x - m.Bounds.Min.X
	ly := y - m.Bounds.Min.Y
	lz := z - m.Bounds.Min.Z
	return ((lz*h)+ly)*w + lx
}

// Contains reports whether (x, y, z) is inside the mask: within bounds, and
// (no bitmap or the corresponding bit is set).
func (m VolumeMask) Contains(x, y, z int) bool {
	if !m.Bounds.Contains(worldapi.BlockCoord{X: x, Y: y, Z: z}) {
		return false
	}
	if m.Bitmap == nil {
		return true
	}
	idx := m.bitmapIndex(x, y, z)
	if idx < 0 || idx >= len(m.Bitmap) {
		return false
	}
	return m.Bitmap[idx]
}

// Expand returns a new mask with Bounds inflated by buf on every axis and the
// bitmap dropped (an expanded mask is a conservative buffer, not a precise
// occupancy map).
func (m VolumeMask) Expand(buf int) VolumeMask {
	return VolumeMask{
		StructureID: m.StructureID,
		VillageID:   m.VillageID,
		Bounds:      m.Bounds.Expand(buf),
		Bitmap:      nil,
	}
}

// MaskFromReceipt derives a fully-occupied mask from a committed receipt's
// bounds (spec §4.1: "Derived from a receipt by bounds copy").
func MaskFromReceipt(r PlacementReceipt) VolumeMask {
	return VolumeMask{
		StructureID: r.StructureID,
		VillageID:   r.VillageID,
		Bounds: worldapi.Bounds{
			Min: worldapi.BlockCoord{X: r.MinX, Y: r.MinY, Z: r.MinZ},
			Max: worldapi.BlockCoord{X: r.MaxX, Y: r.MaxY, Z: r.MaxZ},
		},
		Timestamp: r.Timestamp,
	}
}

// AnyContains reports whether any mask in the set contains (x, y, z).
func AnyContains(masks []VolumeMask, x, y, z int) bool {
	for _, m := range masks {
		if m.Contains(x, y, z) {
			return true
		}
	}
	return false
}
