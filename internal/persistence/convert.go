package persistence

import (
	"encoding/base64"

	"villageforge/internal/model"
	"villageforge/internal/worldapi"
)

func originOf(x, y, z int) Origin { return Origin{X: x, Y: y, Z: z} }

func boundsOf(min, max worldapi.BlockCoord) Bounds {
	return Bounds{Min: originOf(min.X, min.Y, min.Z), Max: originOf(max.X, max.Y, max.Z)}
}

func receiptToDTO(r model.PlacementReceipt) Receipt {
	corners := make([]CornerSample, 0, 4)
	for i, c := range r.Corners {
		corners = append(corners, CornerSample{
			Position: cornerPositionName(model.CornerPosition(i)),
			X:        c.X, Y: c.Y, Z: c.Z,
			Material: c.Material,
		})
	}
	return Receipt{
		StructureID: r.StructureID,
		Bounds: boundsOf(
			worldapi.BlockCoord{X: r.MinX, Y: r.MinY, Z: r.MinZ},
			worldapi.BlockCoord{X: r.MaxX, Y: r.MaxY, Z: r.MaxZ},
		),
		Origin:     originOf(r.OriginX, r.OriginY, r.OriginZ),
		Rotation:   r.Rotation,
		EffectiveW: r.EffectiveW,
		EffectiveH: r.Height,
		EffectiveD: r.EffectiveD,
		Entrance:   originOf(r.EntranceX, r.EntranceY, r.EntranceZ),
		Corners:    corners,
		Timestamp:  r.Timestamp,
	}
}

func receiptFromDTO(d Receipt, villageID string) model.PlacementReceipt {
	var corners [4]model.CornerSample
	for _, c := range d.Corners {
		pos := cornerPositionFromName(c.Position)
		corners[pos] = model.CornerSample{X: c.X, Y: c.Y, Z: c.Z, Material: c.Material}
	}
	return model.PlacementReceipt{
		StructureID: d.StructureID,
		VillageID:   villageID,
		MinX:        d.Bounds.Min.X, MinY: d.Bounds.Min.Y, MinZ: d.Bounds.Min.Z,
		MaxX: d.Bounds.Max.X, MaxY: d.Bounds.Max.Y, MaxZ: d.Bounds.Max.Z,
		OriginX: d.Origin.X, OriginY: d.Origin.Y, OriginZ: d.Origin.Z,
		Rotation:   d.Rotation,
		EffectiveW: d.EffectiveW,
		EffectiveD: d.EffectiveD,
		Height:     d.EffectiveH,
		Corners:    corners,
		EntranceX:  d.Entrance.X, EntranceY: d.Entrance.Y, EntranceZ: d.Entrance.Z,
		Timestamp: d.Timestamp,
	}
}

func maskToDTO(m model.VolumeMask) Mask {
	dto := Mask{
		StructureID: m.StructureID,
		Bounds:      boundsOf(m.Bounds.Min, m.Bounds.Max),
		Timestamp:   m.Timestamp,
	}
	if m.Bitmap != nil {
		dto.OccupancyBitmap = base64.StdEncoding.EncodeToString(packBits(m.Bitmap))
	}
	return dto
}

func maskFromDTO(d Mask, villageID string) model.VolumeMask {
	mask := model.VolumeMask{
		StructureID: d.StructureID,
		VillageID:   villageID,
		Bounds: worldapi.Bounds{
			Min: worldapi.BlockCoord{X: d.Bounds.Min.X, Y: d.Bounds.Min.Y, Z: d.Bounds.Min.Z},
			Max: worldapi.BlockCoord{X: d.Bounds.Max.X, Y: d.Bounds.Max.Y, Z: d.Bounds.Max.Z},
		},
		Timestamp: d.Timestamp,
	}
	if d.OccupancyBitmap != "" {
		raw, err := base64.StdEncoding.DecodeString(d.OccupancyBitmap)
		if err == nil {
			count := mask.Bounds.Width() * mask.Bounds.Height() * mask.Bounds.Depth()
			mask.Bitmap = unpackBits(raw, count)
		}
	}
	return mask
}

// packBits bit-packs a []bool into bytes, 8 bits per byte, MSB first.
func packBits(bits []bool) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, b := range bits {
		if b {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
	return out
}

func unpackBits(raw []byte, count int) []bool {
	out := make([]bool, count)
	for i := 0; i < count; i++ {
		byteIdx := i / 8
		if byteIdx >= len(raw) {
			break
		}
		out[i] = raw[byteIdx]&(1<<uint(7-i%8)) != 0
	}
	return out
}

// ToRecord converts a village into its stable wire format (spec §6).
func ToRecord(v model.Village) VillageRecord {
	rec := VillageRecord{
		SchemaVersion: SchemaVersion,
		VillageID:     v.VillageID,
		CultureID:     v.CultureID,
		WorldName:     v.WorldName,
		Origin:        originOf(v.OriginX, v.OriginY, v.OriginZ),
		Seed:          v.Seed,
		CreatedAt:     v.CreatedAt,
		Border: Border{
			MinX: v.Border.MinX, MaxX: v.Border.MaxX,
			MinZ: v.Border.MinZ, MaxZ: v.Border.MaxZ,
		},
		PartiallyCommitted: v.PartiallyCommitted,
	}
	if main, ok := v.MainBuilding(); ok {
		rec.MainBuildingID = main.BuildingID
	}
	for _, r := range v.Receipts {
		rec.PlacementReceipts = append(rec.PlacementReceipts, receiptToDTO(r))
	}
	for _, m := range v.Masks {
		rec.VolumeMasks = append(rec.VolumeMasks, maskToDTO(m))
	}
	if len(v.Paths.Segments) > 0 {
		net := PathNetwork{}
		for _, seg := range v.Paths.Segments {
			blocks := make([]Origin, 0, len(seg.Blocks))
			for _, b := range seg.Blocks {
				blocks = append(blocks, originOf(b.X, b.Y, b.Z))
			}
			net.Segments = append(net.Segments, PathSegment{
				Start:  originOf(seg.StartX, seg.StartY, seg.StartZ),
				End:    originOf(seg.EndX, seg.EndY, seg.EndZ),
				Blocks: blocks,
				Hash:   seg.Hash,
			})
		}
		rec.PathNetwork = &net
	}
	return rec
}

// FromRecord rebuilds a village from its wire format. The main building
// index is left unresolved (-1) since the DTO only keeps the main
// building's id, not its place among Buildings — callers that need the
// Buildings slice repopulated (e.g. for live placement) should treat a
// loaded record as read-only history rather than a resumable village.
func FromRecord(rec VillageRecord) model.Village {
	v := model.Village{
		VillageID:       rec.VillageID,
		CultureID:       rec.CultureID,
		WorldName:       rec.WorldName,
		OriginX:         rec.Origin.X,
		OriginY:         rec.Origin.Y,
		OriginZ:         rec.Origin.Z,
		Seed:            rec.Seed,
		CreatedAt:       rec.CreatedAt,
		MainBuildingIdx: -1,
		Border: model.VillageBorder{
			MinX: rec.Border.MinX, MaxX: rec.Border.MaxX,
			MinZ: rec.Border.MinZ, MaxZ: rec.Border.MaxZ,
		},
		PartiallyCommitted: rec.PartiallyCommitted,
	}
	for _, r := range rec.PlacementReceipts {
		v.Receipts = append(v.Receipts, receiptFromDTO(r, rec.VillageID))
	}
	for _, m := range rec.VolumeMasks {
		v.Masks = append(v.Masks, maskFromDTO(m, rec.VillageID))
	}
	if rec.PathNetwork != nil {
		for _, seg := range rec.PathNetwork.Segments {
			blocks := make([]worldapi.BlockCoord, 0, len(seg.Blocks))
			for _, b := range seg.Blocks {
				blocks = append(blocks, worldapi.BlockCoord{X: b.X, Y: b.Y, Z: b.Z})
			}
			v.Paths.Segments = append(v.Paths.Segments, model.PathSegment{
				StartX: seg.Start.X, StartY: seg.Start.Y, StartZ: seg.Start.Z,
				EndX: seg.End.X, EndY: seg.End.Y, EndZ: seg.End.Z,
				Blocks: blocks,
				Hash:   seg.Hash,
			})
		}
	}
	return v
}
