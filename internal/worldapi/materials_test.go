package worldapi

import "testing"

func TestDefaultRegistryClassifiesBuiltins(t *testing.T) {
	r := NewRegistry()
	cases := []struct {
		material string
		check    func(string) bool
	}{
		{"grass", r.IsNaturalGround},
		{"water", r.IsFluid},
		{"tall_grass", r.IsVegetation},
		{"bedrock", r.IsObstruction},
		{"dirt_path", r.IsPathMaterial},
	}
	for _, tc := range cases {
		if !tc.check(tc.material) {
			t.Errorf("expected %q to satisfy its expected class", tc.material)
		}
	}
}

func TestRegistryUnknownMaterial(t *testing.T) {
	r := NewRegistry()
	if r.ClassOf("made_up_block") != ClassUnknown {
		t.Fatal("expected unregistered material to classify as unknown")
	}
}

func TestRegistryRegisterOverridesClass(t *testing.T) {
	r := NewRegistry()
	r.Register("packed_ice", ClassNaturalGround)
	if !r.IsNaturalGround("packed_ice") {
		t.Fatal("expected registered material to take on its new class")
	}

	// Re-registering an existing id overrides rather than duplicates.
	r.Register("packed_ice", ClassObstruction)
	if r.IsNaturalGround("packed_ice") {
		t.Fatal("expected re-registration to replace the prior class")
	}
	if !r.IsObstruction("packed_ice") {
		t.Fatal("expected packed_ice to now classify as obstruction")
	}
}
