package catalog

import (
	"fmt"
	"hash/fnv"
	"sync"

	"villageforge/internal/commitqueue"
	"villageforge/internal/worldapi"
)

// Catalog loads and caches structure templates and cultures (spec §4.4 /
// C4). Clipboard assets are opaque (spec §6); Catalog only tracks
// dimensions, entrance geometry, and an optional Clipboard to paste.
type Catalog struct {
	mu         sync.RWMutex
	templates  map[string]StructureTemplate
	cultures   map[string]Culture
	fallbackOn bool
}

// New returns an empty catalog. Register templates/cultures before use.
func New() *Catalog {
	return &Catalog{
		templates: make(map[string]StructureTemplate),
		cultures:  make(map[string]Culture),
	}
}

// RegisterTemplate adds or replaces a structure template. The template's
// Clipboard, if present, is assumed already normalized so that pasting at a
// given origin places the clipboard's minimum corner there (spec §4.4).
func (c *Catalog) RegisterTemplate(t StructureTemplate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.templates[t.StructureID] = t
}

// RegisterCulture adds or replaces a culture definition.
func (c *Catalog) RegisterCulture(culture Culture) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cultures[culture.CultureID] = culture
}

// Culture returns the culture by id.
func (c *Catalog) Culture(cultureID string) (Culture, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cu, ok := c.cultures[cultureID]
	return cu, ok
}

// GetTemplate returns the registered template for id, or a deterministic
// procedural fallback if absent (spec §4.4: "If a structure file is absent,
// a procedural fallback supplies dimensions and a deterministic block-fill
// routine").
func (c *Catalog) GetTemplate(structureID string) StructureTemplate {
	c.mu.RLock()
	t, ok := c.templates[structureID]
	c.mu.RUnlock()
	if ok {
		return t
	}
	return ProceduralFallback(structureID)
}

// GetDimensions returns (w, h, d) for a structure id via GetTemplate.
func (c *Catalog) GetDimensions(structureID string) (w, h, d int) {
	t := c.GetTemplate(structureID)
	return t.Width, t.Height, t.Depth
}

// ProceduralFallback deterministically derives a boxy structure template
// from a structure id's hash, with a centered door on the south (+Z) wall.
// Dimensions are stable for a given id across runs (spec I5).
func ProceduralFallback(structureID string) StructureTemplate {
	h := fnv.New32a()
	_, _ = h.Write([]byte(structureID))
	sum := h.Sum32()

	w := 5 + int(sum%7)       // 5..11
	d := 5 + int((sum/7)%7)   // 5..11
	height := 4 + int((sum/49)%4) // 4..7

	return StructureTemplate{
		StructureID: structureID,
		Width:       w,
		Height:      height,
		Depth:       d,
		Clipboard:   nil,
		Entrance: EntranceAnchor{
			OffsetX: w / 2,
			OffsetY: 0,
			OffsetZ: d - 1,
			FacingX: 0,
			FacingZ: 1,
		},
	}
}

// PasteProcedural commits a deterministic hollow-box fill for a procedural
// template: a stone foundation layer, plank walls, log corner posts, and a
// doorway gap on the entrance wall. This is the "Procedural(id)" arm of the
// tagged placement variant described in spec §9.
//
// Writes are built as commitqueue.Entry values in layer→row→x order (y
// outer, z middle, x inner) and applied through a commit queue in chunks of
// batchSize (spec §5: "fixed-size batches per tick ... in deterministic
// layer→row→x order"); batchSize <= 0 applies everything in one chunk.
func PasteProcedural(world worldapi.Provider, t StructureTemplate, originX, originY, originZ, rotation, batchSize int) error {
	if world == nil {
		return fmt.Errorf("paste procedural %s: nil world", t.StructureID)
	}
	w, h, d := t.Width, t.Height, t.Depth
	if rotation == 90 || rotation == 270 {
		w, d = d, w
	}
	doorX, _, doorZ := t.RotatedAnchor(rotation)
	// RotatedAnchor is relative to the rotation origin; shift it so it is
	// relative to the rotated footprint's minimum corner, where x/z start.
	switch ((rotation % 360) + 360) % 360 {
	case 90:
		doorX += t.Depth - 1
	case 180:
		doorX += t.Width - 1
		doorZ += t.Depth - 1
	case 270:
		doorZ += t.Width - 1
	}

	entries := make([]commitqueue.Entry, 0, w*d*h)
	for y := 0; y < h; y++ {
		for z := 0; z < d; z++ {
			for x := 0; x < w; x++ {
				wx, wy, wz := originX+x, originY+y, originZ+z
				if y == 0 {
					entries = append(entries, commitqueue.Entry{X: wx, Y: wy, Z: wz, Material: "cobblestone"})
					continue
				}
				edge := x == 0 || x == w-1 || z == 0 || z == d-1
				corner := (x == 0 || x == w-1) && (z == 0 || z == d-1)
				isDoorColumn := x == doorX && z == doorZ
				switch {
				case isDoorColumn && y <= 2:
					entries = append(entries, commitqueue.Entry{X: wx, Y: wy, Z: wz, Material: "air"})
				case corner:
					entries = append(entries, commitqueue.Entry{X: wx, Y: wy, Z: wz, Material: "log"})
				case edge:
					entries = append(entries, commitqueue.Entry{X: wx, Y: wy, Z: wz, Material: "planks"})
				case y == h-1:
					entries = append(entries, commitqueue.Entry{X: wx, Y: wy, Z: wz, Material: "planks"})
				default:
					entries = append(entries, commitqueue.Entry{X: wx, Y: wy, Z: wz, Material: "air"})
				}
			}
		}
	}

	q := commitqueue.NewQueue()
	q.Enqueue(entries...)
	return commitqueue.ApplyInBatches(q, world, batchSize, nil)
}
