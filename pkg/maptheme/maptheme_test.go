package maptheme

import "testing"

func TestByID(t *testing.T) {
	if got := ByID("carto-dark"); got.ID != "carto-dark" {
		t.Errorf("Expected carto-dark, got %s", got.ID)
	}
	if got := ByID("missing"); got.ID != Themes[0].ID {
		t.Errorf("Expected fallback to %s, got %s", Themes[0].ID, got.ID)
	}
	if _, ok := Lookup(DefaultThemeID); !ok {
		t.Errorf("Default theme %s missing from catalogue", DefaultThemeID)
	}
}

func TestByType(t *testing.T) {
	topo := ByType(TypeTopographic)
	if len(topo) != 3 {
		t.Fatalf("Expected 3 topographic themes, got %d", len(topo))
	}
	if topo[0].ID != "osm-standard" {
		t.Errorf("Expected catalogue order, got %s first", topo[0].ID)
	}
	if len(ByType(TypePixel)) != 5 {
		t.Errorf("Expected 5 pixel themes, got %d", len(ByType(TypePixel)))
	}
	if len(ByType(TypeAbstract)) != 0 {
		t.Error("Expected no abstract themes")
	}
}
