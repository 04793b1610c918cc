package main

import (
	"errors"
	"flag"
	"fmt"

	"villageforge/internal/persistence"
	"villageforge/internal/placer"
)

// runGenerate implements generate(culture_id, name, seed) from spec §6,
// returning the village id on success or a structured failure reason from
// {spacing, terrain, no_site, placement_failed, cancelled}.
func runGenerate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	dataDir, worldName := commonFlags(fs)
	cfgPath := fs.String("config", "", "path to JSON config file")
	culture := fs.String("culture", "default", "culture id to generate")
	name := fs.String("name", "", "human-readable village label (logged only)")
	seed := fs.Int64("seed", 1, "deterministic generation seed")
	originX := fs.Int("x", 0, "origin block X")
	originZ := fs.Int("z", 0, "origin block Z")
	if err := fs.Parse(args); err != nil {
		return err
	}

	world, cat, st, cfg, log, err := loadEnvironment(*cfgPath, *dataDir, *worldName)
	if err != nil {
		return err
	}

	originY := world.HighestBlockY(*originX, *originZ) + 1
	p := placer.NewPlacer(world, *worldName, nil, cat, st, cfg, log)

	if *name != "" {
		log.Structure("generating village name=%q culture=%s seed=%d", *name, *culture, *seed)
	}

	village, err := p.PlaceVillage(*originX, originY, *originZ, *culture, *seed)
	if err != nil {
		fmt.Printf("failure reason=%s\n", reasonFor(err))
		return err
	}
	if village == nil {
		fmt.Println("failure reason=placement_failed")
		return errors.New("culture has no structures")
	}

	fmt.Printf("village_id=%s\n", village.VillageID)
	return persistence.SaveJSON(st, *dataDir)
}

// reasonFor maps a PlaceVillage error to one of the spec §6 reason codes.
func reasonFor(err error) string {
	var spacing *placer.ErrSpacingViolation
	var mainMissing *placer.ErrMainBuildingMissing
	var exhausted *placer.ErrExhausted
	var terraformAborted *placer.ErrTerraformingAborted
	switch {
	case errors.As(err, &spacing):
		return "spacing"
	case errors.As(err, &terraformAborted):
		return "terrain"
	case errors.As(err, &exhausted):
		return "no_site"
	case errors.As(err, &mainMissing):
		return "placement_failed"
	default:
		return "placement_failed"
	}
}
