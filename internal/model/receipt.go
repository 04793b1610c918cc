package model

import (
	"fmt"
	"time"
)

// CornerSample is one of the four foundation corner readings taken at commit
// time (spec §4.2 / C2): a world position plus the material observed there.
type CornerSample struct {
	X, Y, Z  int
	Material string
}

// CornerPosition identifies which of the four foundation corners a sample is.
type CornerPosition int

const (
	CornerNW CornerPosition = iota
	CornerNE
	CornerSE
	CornerSW
)

// PlacementReceipt is the immutable ground-truth record of a committed
// structure (spec §4.2 / C2). Once constructed it is never mutated.
type PlacementReceipt struct {
	StructureID string
	VillageID   string

	MinX, MinY, MinZ int
	MaxX, MaxY, MaxZ int

	OriginX, OriginY, OriginZ int
	Rotation                  int // one of 0, 90, 180, 270
	EffectiveW, EffectiveD    int
	Height                    int

	// Corners, indexed by CornerPosition, all sampled at Y = MinY.
	Corners [4]CornerSample

	EntranceX, EntranceY, EntranceZ int

	Timestamp time.Time
}

// Valid checks the receipt invariants from spec §3: max >= min on every
// axis, rotation a multiple of 90, positive dims, exactly 4 corners (which
// is structural here — the array always has 4 elements).
func (r PlacementReceipt) Valid() bool {
	if r.MaxX < r.MinX || r.MaxY < r.MinY || r.MaxZ < r.MinZ {
		return false
	}
	if r.Rotation%90 != 0 {
		return false
	}
	if r.EffectiveW <= 0 || r.EffectiveD <= 0 || r.Height <= 0 {
		return false
	}
	return true
}

// VerifyFoundationCorners reports true iff every recorded corner sample names
// a material other than air. It does not look up the material's class, so a
// fluid or vegetation sample also passes. A receipt whose corners fail this check is
// still accepted (per spec §3) but SHOULD be flagged "suspect" by the caller.
func (r PlacementReceipt) VerifyFoundationCorners() bool {
	for _, c := range r.Corners {
		if c.Material == "" || c.Material == "air" {
			return false
		}
	}
	return true
}

// Summary returns a fixed, log-parseable one-line description, matching the
// telemetry prefixes described in spec §6.
func (r PlacementReceipt) Summary() string {
	return fmt.Sprintf(
		"[STRUCT][RECEIPT] structure=%s village=%s bounds=(%d,%d,%d)-(%d,%d,%d) origin=(%d,%d,%d) rotation=%d dims=%dx%dx%d entrance=(%d,%d,%d)",
		r.StructureID, r.VillageID,
		r.MinX, r.MinY, r.MinZ, r.MaxX, r.MaxY, r.MaxZ,
		r.OriginX, r.OriginY, r.OriginZ,
		r.Rotation, r.EffectiveW, r.Height, r.EffectiveD,
		r.EntranceX, r.EntranceY, r.EntranceZ,
	)
}
