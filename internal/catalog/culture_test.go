package catalog

import "testing"

func TestPaletteForRoman(t *testing.T) {
	p := PaletteFor("ancient_roman")
	if p != RomanPalette() {
		t.Fatalf("expected roman-ish culture id to get the roman palette, got %+v", p)
	}
}

func TestPaletteForDefault(t *testing.T) {
	p := PaletteFor("viking")
	if p != DefaultPalette() {
		t.Fatalf("expected non-roman culture id to get the default palette, got %+v", p)
	}
}

func TestResolvedMainBuildingIDExplicit(t *testing.T) {
	c := Culture{StructureIDs: []string{"a", "b"}, MainBuildingID: "b"}
	if c.ResolvedMainBuildingID() != "b" {
		t.Fatal("expected explicit main building id to win")
	}
}

func TestResolvedMainBuildingIDDefaultsToFirst(t *testing.T) {
	c := Culture{StructureIDs: []string{"a", "b"}}
	if c.ResolvedMainBuildingID() != "a" {
		t.Fatal("expected empty MainBuildingID to default to the first structure")
	}
}

func TestResolvedMainBuildingIDEmptyWhenNoStructures(t *testing.T) {
	c := Culture{}
	if c.ResolvedMainBuildingID() != "" {
		t.Fatal("expected empty culture to resolve to empty main building id")
	}
}
