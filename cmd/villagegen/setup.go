package main

import (
	"os"

	"villageforge/internal/catalog"
	"villageforge/internal/config"
	"villageforge/internal/persistence"
	"villageforge/internal/store"
	"villageforge/internal/telemetry"
	"villageforge/internal/testworld"
	"villageforge/internal/worldapi"
)

// buildCatalog registers the demo cultures this CLI ships with. A real
// deployment would load structure clipboards from disk (spec §6 treats
// asset loading as an external collaborator); here every structure resolves
// through catalog.ProceduralFallback.
func buildCatalog() *catalog.Catalog {
	cat := catalog.New()
	cat.RegisterCulture(catalog.Culture{
		CultureID:      "default",
		Name:           "Default Settlement",
		StructureIDs:   []string{"town_hall", "house_a", "house_b", "well", "market"},
		MainBuildingID: "town_hall",
		Palette:        catalog.DefaultPalette(),
	})
	cat.RegisterCulture(catalog.Culture{
		CultureID:      "roman",
		Name:           "Roman Settlement",
		StructureIDs:   []string{"forum", "domus_a", "domus_b", "bath_house", "granary"},
		MainBuildingID: "forum",
		Palette:        catalog.RomanPalette(),
	})
	return cat
}

// loadEnvironment wires a test world, the demo catalog, and a store
// rehydrated from dataDir into a Placer-ready set of collaborators.
func loadEnvironment(cfgPath, dataDir, worldName string) (*testworld.World, *catalog.Catalog, *store.Store, *config.Config, *telemetry.Sink, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, nil, nil, nil, err
	}

	world := testworld.NewFlat(-64, 320, 64, "grass")
	cat := buildCatalog()
	st := store.New()
	log := telemetry.Default

	if _, err := os.Stat(dataDir); err == nil {
		known := map[string]bool{worldName: true}
		if _, err := persistence.LoadJSON(st, dataDir, known, log); err != nil {
			log.Warn("load_all: %v", err)
		}
	}

	return world, cat, st, cfg, log, nil
}

var _ worldapi.Provider = (*testworld.World)(nil)
