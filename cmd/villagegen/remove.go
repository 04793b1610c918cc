package main

import (
	"flag"
	"fmt"
	"os"

	"villageforge/internal/persistence"
)

// runRemove implements remove(village_id) from spec §6.
func runRemove(args []string) error {
	fs := flag.NewFlagSet("remove", flag.ExitOnError)
	dataDir, worldName := commonFlags(fs)
	villageID := fs.String("village", "", "village id to remove")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *villageID == "" {
		return fmt.Errorf("remove: -village is required")
	}

	_, _, st, _, log, err := loadEnvironment("", *dataDir, *worldName)
	if err != nil {
		return err
	}

	if !st.RemoveVillage(*villageID) {
		return fmt.Errorf("remove: village %s not found", *villageID)
	}
	if err := persistence.SaveJSON(st, *dataDir); err != nil {
		return err
	}
	if err := os.Remove(dataFile(*dataDir, *villageID)); err != nil && !os.IsNotExist(err) {
		log.Warn("remove: stale record for %s: %v", *villageID, err)
	}
	fmt.Printf("removed village_id=%s\n", *villageID)
	return nil
}

func dataFile(dataDir, villageID string) string {
	return dataDir + "/" + villageID + ".json"
}
