// Package testworld provides an in-memory worldapi.Provider, for tests and
// local CLI experimentation, adapted from chunk-server/internal/world/
// chunk.go's dense per-column block storage (a column keyed by local X/Z,
// trimmed to drop trailing air) — simplified here to a single flat region
// since the generation core has no chunk-partitioning concern of its own.
package testworld

import (
	"sync"

	"villageforge/internal/worldapi"
)

type columnKey struct{ x, z int }

// World is a flat, unbounded-in-X/Z in-memory world. Each column is a dense
// slice of materials indexed by (y - minHeight), trimmed of trailing "air"
// entries the same way chunk.go's trimColumn drops trailing air blocks.
type World struct {
	mu        sync.RWMutex
	minHeight int
	maxHeight int
	columns   map[columnKey][]string

	// flatMaterial/flatGroundY, when flatMaterial is non-empty, describe a
	// default flat terrain used for any column that has never been written.
	flatMaterial string
	flatGroundY  int
}

// New returns an empty World bounded vertically by [minHeight, maxHeight].
func New(minHeight, maxHeight int) *World {
	return &World{
		minHeight: minHeight,
		maxHeight: maxHeight,
		columns:   make(map[columnKey][]string),
	}
}

// NewFlat returns a World pre-filled with a flat terrain: everything at or
// below groundY is material ground, everything above is air. Convenient for
// tests that just need solid footing.
func NewFlat(minHeight, maxHeight, groundY int, ground string) *World {
	w := New(minHeight, maxHeight)
	// Columns are created lazily on first access/write; flat terrain is
	// synthesized in BlockAt/HighestBlockY without materializing every
	// column up front.
	w.flatGroundY = groundY
	w.flatMaterial = ground
	return w
}

func (w *World) MinHeight() int { return w.minHeight }
func (w *World) MaxHeight() int { return w.maxHeight }

func (w *World) HighestBlockY(x, z int) int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	col, ok := w.columns[columnKey{x, z}]
	if !ok {
		if w.flatMaterial != "" {
			return w.flatGroundY
		}
		return w.minHeight - 1
	}
	for y := len(col) - 1; y >= 0; y-- {
		if col[y] != "" && col[y] != "air" {
			if top := w.minHeight + y; w.flatMaterial == "" || top > w.flatGroundY {
				return top
			}
			break
		}
	}
	if w.flatMaterial != "" {
		return w.flatGroundY
	}
	return w.minHeight - 1
}

func (w *World) BlockAt(x, y, z int) worldapi.Block {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if y < w.minHeight || y > w.maxHeight {
		return worldapi.Block{Material: "air", IsAir: true}
	}
	col, ok := w.columns[columnKey{x, z}]
	idx := y - w.minHeight
	if ok && idx >= 0 && idx < len(col) && col[idx] != "" {
		mat := col[idx]
		return materialBlock(mat)
	}
	if w.flatMaterial != "" && y <= w.flatGroundY {
		return materialBlock(w.flatMaterial)
	}
	return worldapi.Block{Material: "air", IsAir: true}
}

func (w *World) SetBlock(x, y, z int, material string, data map[string]any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if y < w.minHeight || y > w.maxHeight {
		return nil
	}
	key := columnKey{x, z}
	col := w.columns[key]
	idx := y - w.minHeight
	if idx >= len(col) {
		expanded := make([]string, idx+1)
		copy(expanded, col)
		col = expanded
	}
	col[idx] = material
	w.columns[key] = trimColumn(col)
	return nil
}

// trimColumn drops trailing empty/air entries, the same bookkeeping
// chunk.go's trimColumn does for its Block slices.
func trimColumn(col []string) []string {
	end := len(col)
	for end > 0 && (col[end-1] == "" || col[end-1] == "air") {
		end--
	}
	return col[:end]
}

func materialBlock(material string) worldapi.Block {
	if material == "" || material == "air" {
		return worldapi.Block{Material: "air", IsAir: true}
	}
	return worldapi.Block{Material: material, IsSolid: true}
}
