// Package persistence implements the per-village save/load file format from
// spec §6, grounded in chunk-server/cmd/chunkserver/config_sync.go's
// JSON-and-YAML-interchangeable encoding approach. Each village is one
// record; the DTOs here are the stable wire shapes, kept separate from the
// internal/model types so the model is free to evolve independently.
package persistence

import (
	"time"

	"villageforge/internal/model"
)

// SchemaVersion is stamped on every saved record (spec §4.3: "Persistence
// schema version is stamped per record").
const SchemaVersion = 1

// Origin is a plain x/y/z triple for the wire format.
type Origin struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
	Z int `json:"z" yaml:"z"`
}

// Border mirrors model.VillageBorder on the wire.
type Border struct {
	MinX int `json:"minX" yaml:"minX"`
	MaxX int `json:"maxX" yaml:"maxX"`
	MinZ int `json:"minZ" yaml:"minZ"`
	MaxZ int `json:"maxZ" yaml:"maxZ"`
}

// Bounds mirrors worldapi.Bounds on the wire.
type Bounds struct {
	Min Origin `json:"min" yaml:"min"`
	Max Origin `json:"max" yaml:"max"`
}

// CornerSample mirrors model.CornerSample plus its position tag.
type CornerSample struct {
	Position string `json:"position" yaml:"position"`
	X        int    `json:"x" yaml:"x"`
	Y        int    `json:"y" yaml:"y"`
	Z        int    `json:"z" yaml:"z"`
	Material string `json:"material" yaml:"material"`
}

// Receipt mirrors model.PlacementReceipt on the wire (spec §6: "Receipts
// serialize {structure_id, bounds, origin, rotation, effective_w/h/d,
// entrance, foundation_corners[4], timestamp}").
type Receipt struct {
	StructureID string         `json:"structure_id" yaml:"structure_id"`
	Bounds      Bounds         `json:"bounds" yaml:"bounds"`
	Origin      Origin         `json:"origin" yaml:"origin"`
	Rotation    int            `json:"rotation" yaml:"rotation"`
	EffectiveW  int            `json:"effective_w" yaml:"effective_w"`
	EffectiveH  int            `json:"effective_h" yaml:"effective_h"`
	EffectiveD  int            `json:"effective_d" yaml:"effective_d"`
	Entrance    Origin         `json:"entrance" yaml:"entrance"`
	Corners     []CornerSample `json:"foundation_corners" yaml:"foundation_corners"`
	Timestamp   time.Time      `json:"timestamp" yaml:"timestamp"`
}

// Mask mirrors model.VolumeMask on the wire (spec §6: "Masks serialize
// {structure_id, bounds, timestamp, optional base64 occupancy_bitmap}").
// Missing OccupancyBitmap indicates full occupancy.
type Mask struct {
	StructureID     string    `json:"structure_id" yaml:"structure_id"`
	Bounds          Bounds    `json:"bounds" yaml:"bounds"`
	Timestamp       time.Time `json:"timestamp" yaml:"timestamp"`
	OccupancyBitmap string    `json:"occupancy_bitmap,omitempty" yaml:"occupancy_bitmap,omitempty"`
}

// PathSegment mirrors model.PathSegment on the wire.
type PathSegment struct {
	Start  Origin   `json:"start" yaml:"start"`
	End    Origin   `json:"end" yaml:"end"`
	Blocks []Origin `json:"blocks" yaml:"blocks"`
	Hash   string   `json:"hash" yaml:"hash"`
}

// PathNetwork mirrors model.PathNetwork on the wire.
type PathNetwork struct {
	Segments []PathSegment `json:"segments" yaml:"segments"`
}

// VillageRecord is the stable per-village file format (spec §6).
type VillageRecord struct {
	SchemaVersion      int           `json:"schema_version" yaml:"schema_version"`
	VillageID          string        `json:"village_id" yaml:"village_id"`
	CultureID          string        `json:"culture_id" yaml:"culture_id"`
	WorldName          string        `json:"world_name" yaml:"world_name"`
	Origin             Origin        `json:"origin" yaml:"origin"`
	Seed               int64         `json:"seed" yaml:"seed"`
	CreatedAt          time.Time     `json:"created_at" yaml:"created_at"`
	MainBuildingID     string        `json:"main_building_id,omitempty" yaml:"main_building_id,omitempty"`
	Border             Border        `json:"border" yaml:"border"`
	PathNetwork        *PathNetwork  `json:"path_network,omitempty" yaml:"path_network,omitempty"`
	PlacementReceipts  []Receipt     `json:"placement_receipts" yaml:"placement_receipts"`
	VolumeMasks        []Mask        `json:"volume_masks" yaml:"volume_masks"`
	PartiallyCommitted bool          `json:"partially_committed,omitempty" yaml:"partially_committed,omitempty"`
}

func cornerPositionName(p model.CornerPosition) string {
	switch p {
	case model.CornerNW:
		return "NW"
	case model.CornerNE:
		return "NE"
	case model.CornerSE:
		return "SE"
	case model.CornerSW:
		return "SW"
	default:
		return "NW"
	}
}

func cornerPositionFromName(name string) model.CornerPosition {
	switch name {
	case "NE":
		return model.CornerNE
	case "SE":
		return model.CornerSE
	case "SW":
		return model.CornerSW
	default:
		return model.CornerNW
	}
}
