package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"villageforge/internal/model"
	"villageforge/internal/store"
	"villageforge/internal/telemetry"
)

// fileName returns the per-village file name for a given extension.
func fileName(villageID, ext string) string {
	return villageID + "." + ext
}

// SaveJSON writes one JSON file per village in st into dir (spec §6
// "save_all").
func SaveJSON(st *store.Store, dir string) error {
	return saveAll(st, dir, "json", json.MarshalIndent)
}

// SaveYAML writes one YAML file per village in st into dir, the format
// chunk-server/cmd/chunkserver/config_sync.go treats as interchangeable
// with JSON for the same payload shape.
func SaveYAML(st *store.Store, dir string) error {
	return saveAll(st, dir, "yaml", func(v any, _, _ string) ([]byte, error) {
		return yaml.Marshal(v)
	})
}

func saveAll(st *store.Store, dir string, ext string, marshal func(v any, prefix, indent string) ([]byte, error)) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("persistence: save_all mkdir: %w", err)
	}
	for _, v := range st.Villages() {
		rec := ToRecord(v)
		data, err := marshal(rec, "", "  ")
		if err != nil {
			return fmt.Errorf("persistence: marshal village %s: %w", v.VillageID, err)
		}
		path := filepath.Join(dir, fileName(v.VillageID, ext))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("persistence: write village %s: %w", v.VillageID, err)
		}
	}
	return nil
}

// LoadJSON reads every *.json file in dir and registers the villages whose
// world_name is present in knownWorlds. Records referencing an absent world
// are skipped and logged (spec §4.3: "Load skips records whose referenced
// world is not present and logs a warning").
func LoadJSON(st *store.Store, dir string, knownWorlds map[string]bool, log *telemetry.Sink) (int, error) {
	return loadAll(st, dir, ".json", json.Unmarshal, knownWorlds, log)
}

// LoadYAML is LoadJSON's YAML counterpart.
func LoadYAML(st *store.Store, dir string, knownWorlds map[string]bool, log *telemetry.Sink) (int, error) {
	return loadAll(st, dir, ".yaml", yaml.Unmarshal, knownWorlds, log)
}

func loadAll(st *store.Store, dir string, suffix string, unmarshal func(data []byte, v any) error, knownWorlds map[string]bool, log *telemetry.Sink) (int, error) {
	if log == nil {
		log = telemetry.Default
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("persistence: load_all readdir: %w", err)
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != suffix {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			log.Warn("persistence: read %s: %v", path, err)
			continue
		}
		var rec VillageRecord
		if err := unmarshal(data, &rec); err != nil {
			log.Warn("persistence: decode %s: %v", path, err)
			continue
		}
		if knownWorlds != nil && !knownWorlds[rec.WorldName] {
			log.Warn("persistence: skipping village %s, world %q not present", rec.VillageID, rec.WorldName)
			continue
		}
		v := FromRecord(rec)
		if err := registerLoaded(st, v); err != nil {
			log.Warn("persistence: register village %s: %v", rec.VillageID, err)
			continue
		}
		loaded++
	}
	return loaded, nil
}

// registerLoaded registers a village rebuilt from disk directly into the
// store, bypassing the generation pipeline (this is history replay, not a
// live village under construction).
func registerLoaded(st *store.Store, v model.Village) error {
	return st.RegisterVillage(v)
}
