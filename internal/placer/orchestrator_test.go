package placer

import (
	"errors"
	"testing"

	"villageforge/internal/catalog"
	"villageforge/internal/config"
	"villageforge/internal/store"
	"villageforge/internal/testworld"
)

func smallCulture() catalog.Culture {
	return catalog.Culture{
		CultureID:      "default",
		StructureIDs:   []string{"town_hall", "house_a", "well"},
		MainBuildingID: "town_hall",
	}
}

func newTestPlacer(cfg *config.Config) (*Placer, *store.Store) {
	w := testworld.NewFlat(-64, 320, 64, "grass")
	cat := catalog.New()
	cat.RegisterCulture(smallCulture())
	st := store.New()
	return NewPlacer(w, "default", nil, cat, st, cfg, nil), st
}

func TestPlaceVillagePlacesMainAndOthers(t *testing.T) {
	p, _ := newTestPlacer(config.Default())
	v, err := p.PlaceVillage(0, 65, 0, "default", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v == nil {
		t.Fatal("expected a non-nil village")
	}
	if len(v.Buildings) == 0 {
		t.Fatal("expected at least one building placed")
	}
	if _, ok := v.MainBuilding(); !ok {
		t.Fatal("expected a designated main building")
	}
	if len(v.Buildings) < 2 {
		t.Fatalf("expected the main building and at least one other, got %d", len(v.Buildings))
	}
}

func TestPlaceVillageEmptyCultureReturnsNil(t *testing.T) {
	w := testworld.NewFlat(-64, 320, 64, "grass")
	cat := catalog.New()
	cat.RegisterCulture(catalog.Culture{CultureID: "empty"})
	st := store.New()
	p := NewPlacer(w, "default", nil, cat, st, config.Default(), nil)

	v, err := p.PlaceVillage(0, 65, 0, "empty", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != nil {
		t.Fatal("expected nil village for an empty structure list")
	}
}

func TestPlaceVillageUnknownCultureErrors(t *testing.T) {
	p, _ := newTestPlacer(config.Default())
	_, err := p.PlaceVillage(0, 65, 0, "nonexistent", 1)
	if err == nil {
		t.Fatal("expected an error for an unregistered culture id")
	}
}

func TestPlaceVillageEnforcesSpacing(t *testing.T) {
	cfg := config.Default()
	cfg.Village.MinVillageSpacing = 500
	p, _ := newTestPlacer(cfg)

	if _, err := p.PlaceVillage(0, 65, 0, "default", 1); err != nil {
		t.Fatalf("unexpected error on first village: %v", err)
	}
	_, err := p.PlaceVillage(10, 65, 10, "default", 2)
	var spacing *ErrSpacingViolation
	if !errors.As(err, &spacing) {
		t.Fatalf("expected ErrSpacingViolation for a too-close second village, got %v", err)
	}
}

func TestPlaceVillageSpacingGateDisabledWhenZero(t *testing.T) {
	cfg := config.Default()
	cfg.Village.MinVillageSpacing = 0
	p, _ := newTestPlacer(cfg)

	if _, err := p.PlaceVillage(0, 65, 0, "default", 1); err != nil {
		t.Fatalf("unexpected error on first village: %v", err)
	}
	if _, err := p.PlaceVillage(5, 65, 5, "default", 2); err != nil {
		t.Fatalf("expected spacing gate disabled with MinVillageSpacing=0, got %v", err)
	}
}

func TestPlaceVillageBuildsPathNetworkForMultipleBuildings(t *testing.T) {
	p, _ := newTestPlacer(config.Default())
	v, err := p.PlaceVillage(0, 65, 0, "default", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(v.Buildings) >= 2 && len(v.Paths.Segments) == 0 {
		t.Fatal("expected at least one path segment when multiple buildings were placed")
	}
}
