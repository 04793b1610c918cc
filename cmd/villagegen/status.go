package main

import (
	"flag"
	"fmt"
)

// runStatus implements status(village_id) from spec §6: a human-readable
// summary of a village's buildings, border, and path segment count. Receipts
// are not printed.
func runStatus(args []string) error {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	dataDir, worldName := commonFlags(fs)
	villageID := fs.String("village", "", "village id to inspect")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *villageID == "" {
		return fmt.Errorf("status: -village is required")
	}

	_, _, st, _, _, err := loadEnvironment("", *dataDir, *worldName)
	if err != nil {
		return err
	}

	v, ok := st.Village(*villageID)
	if !ok {
		return fmt.Errorf("status: village %s not found", *villageID)
	}

	fmt.Printf("village_id=%s culture=%s world=%s origin=(%d,%d,%d) seed=%d\n",
		v.VillageID, v.CultureID, v.WorldName, v.OriginX, v.OriginY, v.OriginZ, v.Seed)
	fmt.Printf("buildings=%d main_idx=%d partially_committed=%t\n",
		len(v.Buildings), v.MainBuildingIdx, v.PartiallyCommitted)
	for i, b := range v.Buildings {
		marker := ""
		if i == v.MainBuildingIdx {
			marker = " (main)"
		}
		fmt.Printf("  - %s%s origin=(%d,%d,%d) dims=%dx%dx%d rotation=%d\n",
			b.StructureID, marker, b.OriginX, b.OriginY, b.OriginZ, b.EffectiveW, b.Height, b.EffectiveD, b.Rotation)
	}
	fmt.Printf("border=(%d,%d)-(%d,%d)\n", v.Border.MinX, v.Border.MinZ, v.Border.MaxX, v.Border.MaxZ)
	fmt.Printf("path_segments=%d\n", len(v.Paths.Segments))
	return nil
}
