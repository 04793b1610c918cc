// Package config defines the tunable parameters for village generation
// (spec §6), following chunk-server/internal/config/config.go's
// struct-of-structs-plus-Validate-plus-Default shape.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// VillageConfig holds the building and village spacing knobs from spec §6.
type VillageConfig struct {
	MinBuildingSpacing int `json:"minBuildingSpacing" yaml:"minBuildingSpacing"`
	MinVillageSpacing  int `json:"minVillageSpacing" yaml:"minVillageSpacing"`
}

// WorldgenConfig holds re-seat/search-radius knobs from spec §6.
type WorldgenConfig struct {
	MaxReseatAttempts  int `json:"maxReseatAttempts" yaml:"maxReseatAttempts"`
	MaxSearchRadius    int `json:"maxSearchRadius" yaml:"maxSearchRadius"`
	OrchestratorRadius int `json:"orchestratorRadius" yaml:"orchestratorRadius"`
	// BackfillFoundation re-enables filling empty space under a structure's
	// footprint down to solid ground, instead of only leveling the surface.
	// Off by default: full backfill can be an expensive terraform-budget
	// spend on terrain that's already solid almost everywhere.
	BackfillFoundation bool `json:"backfillFoundation" yaml:"backfillFoundation"`
}

// PathfindingConfig holds A* bounds from spec §6.
type PathfindingConfig struct {
	MaxNodes  int     `json:"maxNodes" yaml:"maxNodes"`
	MaxDistance int   `json:"maxDistance" yaml:"maxDistance"`
	MaxSlope  int     `json:"maxSlope" yaml:"maxSlope"`
	SlopeMul  float64 `json:"slopeMultiplier" yaml:"slopeMultiplier"`
	WaterCost float64 `json:"waterCost" yaml:"waterCost"`
}

// CommitConfig holds batched-commit knobs from spec §5/§6.
type CommitConfig struct {
	BatchSize int `json:"batchSize" yaml:"batchSize"`
}

// DebugConfig holds the boolean debug flags enumerated in spec §6.
type DebugConfig struct {
	Structures   bool `json:"structures" yaml:"structures"`
	Paths        bool `json:"paths" yaml:"paths"`
	Terraforming bool `json:"terraforming" yaml:"terraforming"`
	Performance  bool `json:"performance" yaml:"performance"`
}

// Config is the full set of tunables for a generation run.
type Config struct {
	Village     VillageConfig     `json:"village" yaml:"village"`
	Worldgen    WorldgenConfig    `json:"worldgen" yaml:"worldgen"`
	Pathfinding PathfindingConfig `json:"pathfinding" yaml:"pathfinding"`
	Commit      CommitConfig      `json:"commit" yaml:"commit"`
	Debug       DebugConfig       `json:"debug" yaml:"debug"`
}

// Default returns the spec §6 default configuration.
func Default() *Config {
	return &Config{
		Village: VillageConfig{
			MinBuildingSpacing: 2,
			MinVillageSpacing:  200,
		},
		Worldgen: WorldgenConfig{
			MaxReseatAttempts:  3,
			MaxSearchRadius:    32,
			OrchestratorRadius: 100,
		},
		Pathfinding: PathfindingConfig{
			MaxNodes:    5000,
			MaxDistance: 200,
			MaxSlope:    3,
			SlopeMul:    1.0,
			WaterCost:   10,
		},
		Commit: CommitConfig{
			BatchSize: 50,
		},
	}
}

// Validate checks configuration invariants. MinVillageSpacing == 0 is
// explicitly allowed (spec §8: "disables the gate").
func (c *Config) Validate() error {
	if c.Village.MinBuildingSpacing < 0 {
		return fmt.Errorf("village.minBuildingSpacing must be >= 0")
	}
	if c.Village.MinVillageSpacing < 0 {
		return fmt.Errorf("village.minVillageSpacing must be >= 0")
	}
	if c.Worldgen.MaxReseatAttempts <= 0 {
		return fmt.Errorf("worldgen.maxReseatAttempts must be > 0")
	}
	if c.Worldgen.MaxSearchRadius <= 0 {
		return fmt.Errorf("worldgen.maxSearchRadius must be > 0")
	}
	if c.Pathfinding.MaxNodes <= 0 {
		return fmt.Errorf("pathfinding.maxNodes must be > 0")
	}
	if c.Pathfinding.MaxDistance <= 0 {
		return fmt.Errorf("pathfinding.maxDistance must be > 0")
	}
	if c.Commit.BatchSize <= 0 {
		return fmt.Errorf("commit.batchSize must be > 0")
	}
	return nil
}

// Load reads JSON configuration from path. An empty path returns defaults,
// matching chunk-server/internal/config/config.go's Load.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// LoadYAML reads YAML configuration from path, mirroring
// chunk-server/cmd/chunkserver/config_sync.go's YAML decode path.
func LoadYAML(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}
