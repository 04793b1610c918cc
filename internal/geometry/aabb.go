// Package geometry implements the rotation-aware bounding-box math shared by
// placement and collision testing (spec §4.7 / C7).
package geometry

import (
	"villageforge/internal/model"
	"villageforge/internal/worldapi"
)

// EffectiveDims returns (w', d') for base dims (w, d) after a rotation of 0,
// 90, 180, or 270 degrees about the vertical axis: unchanged for 0/180,
// swapped for 90/270 (spec P6).
func EffectiveDims(w, d, rotation int) (int, int) {
	switch ((rotation % 360) + 360) % 360 {
	case 90, 270:
		return d, w
	default:
		return w, d
	}
}

// Bounds computes the exact inclusive world AABB for a structure of base
// dims (w, h, d) pasted at origin with the given rotation (spec §4.7).
//
// The template's corner cells {0,w-1} x {0,h-1} x {0,d-1} (inclusive cell
// indices) are rotated clockwise (viewed from above) about the origin and
// translated into world space; the result is the axis-aligned envelope of
// the eight rotated cells, so the origin cell lies inside it at every
// rotation.
func Bounds(originX, originY, originZ, w, h, d, rotation int) worldapi.Bounds {
	corners := [8]worldapi.BlockCoord{}
	i := 0
	for _, cx := range [2]int{0, w - 1} {
		for _, cy := range [2]int{0, h - 1} {
			for _, cz := range [2]int{0, d - 1} {
				rx, rz := rotatePoint(cx, cz, rotation)
				corners[i] = worldapi.BlockCoord{
					X: originX + rx,
					Y: originY + cy,
					Z: originZ + rz,
				}
				i++
			}
		}
	}

	min := corners[0]
	max := corners[0]
	for _, c := range corners[1:] {
		if c.X < min.X {
			min.X = c.X
		}
		if c.Y < min.Y {
			min.Y = c.Y
		}
		if c.Z < min.Z {
			min.Z = c.Z
		}
		if c.X > max.X {
			max.X = c.X
		}
		if c.Y > max.Y {
			max.Y = c.Y
		}
		if c.Z > max.Z {
			max.Z = c.Z
		}
	}
	return worldapi.Bounds{Min: min, Max: max}
}

// rotatePoint rotates (x, z) clockwise (viewed from above) about the origin
// by 0/90/180/270 degrees, on the integer lattice.
func rotatePoint(x, z, rotation int) (int, int) {
	switch ((rotation % 360) + 360) % 360 {
	case 90:
		return -z, x
	case 180:
		return -x, -z
	case 270:
		return z, -x
	default:
		return x, z
	}
}

// CollidesWithAny reports whether candidate, expanded by buffer on every
// axis, three-axis-overlaps any mask in masks (spec §4.7 collision test).
func CollidesWithAny(candidate worldapi.Bounds, buffer int, masks []model.VolumeMask) bool {
	expanded := candidate.Expand(buffer)
	for _, m := range masks {
		if expanded.Overlaps(m.Bounds) {
			return true
		}
	}
	return false
}
