package main

import (
	"flag"
	"fmt"

	"villageforge/internal/persistence"
	"villageforge/internal/store"
)

// runReload implements reload from spec §6: drop every in-memory village
// record and re-read the persisted directory from scratch, skipping any
// record whose world is not present.
func runReload(args []string) error {
	fs := flag.NewFlagSet("reload", flag.ExitOnError)
	dataDir, worldName := commonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	_, _, _, _, log, err := loadEnvironment("", *dataDir, *worldName)
	if err != nil {
		return err
	}

	st := store.New()
	known := map[string]bool{*worldName: true}
	n, err := persistence.LoadJSON(st, *dataDir, known, log)
	if err != nil {
		return err
	}
	fmt.Printf("reloaded villages=%d\n", n)
	return nil
}
