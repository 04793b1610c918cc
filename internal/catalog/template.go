// Package catalog loads structure templates and culture definitions (spec
// §4.4 / C4). Clipboard payloads are treated as opaque per the host adapter
// contract in spec §6; this package only needs dimensions and a paste hook.
package catalog

import "villageforge/internal/worldapi"

// Clipboard is the opaque, read-only structure asset contract from spec §6:
// dimensions plus a rotation-aware paste operation. The host supplies a
// concrete implementation; this package only normalizes and stores it.
type Clipboard interface {
	Dimensions() (w, h, d int)
	// PasteTo writes the clipboard's blocks into the world at origin,
	// rotated by rotation (0/90/180/270), with origin mapped to the
	// clipboard's minimum corner.
	PasteTo(world worldapi.Provider, originX, originY, originZ, rotation int) error
}

// EntranceAnchor is a template-relative offset plus an outward facing unit
// vector (one of (1,0), (-1,0), (0,1), (0,-1) on the X/Z plane).
type EntranceAnchor struct {
	OffsetX, OffsetY, OffsetZ int
	FacingX, FacingZ          int
}

// StructureTemplate is a named structure definition (spec §3). Clipboard may
// be nil, in which case Placer falls back to a deterministic procedural
// fill keyed by StructureID (spec §4.9 step 7 / §9's tagged-variant note).
type StructureTemplate struct {
	StructureID string
	Width       int
	Height      int
	Depth       int
	Clipboard   Clipboard
	Entrance    EntranceAnchor
}

// RotatedFacing rotates the entrance's facing vector by rotation degrees,
// clockwise viewed from above, matching geometry.rotatePoint's convention.
func (t StructureTemplate) RotatedFacing(rotation int) (fx, fz int) {
	switch ((rotation % 360) + 360) % 360 {
	case 90:
		return -t.Entrance.FacingZ, t.Entrance.FacingX
	case 180:
		return -t.Entrance.FacingX, -t.Entrance.FacingZ
	case 270:
		return t.Entrance.FacingZ, -t.Entrance.FacingX
	default:
		return t.Entrance.FacingX, t.Entrance.FacingZ
	}
}

// RotatedAnchor rotates the entrance anchor offset by rotation degrees about
// the template origin, using the same convention as geometry.Bounds.
func (t StructureTemplate) RotatedAnchor(rotation int) (ax, ay, az int) {
	ox, oz := t.Entrance.OffsetX, t.Entrance.OffsetZ
	switch ((rotation % 360) + 360) % 360 {
	case 90:
		return -oz, t.Entrance.OffsetY, ox
	case 180:
		return -ox, t.Entrance.OffsetY, -oz
	case 270:
		return oz, t.Entrance.OffsetY, -ox
	default:
		return ox, t.Entrance.OffsetY, oz
	}
}
