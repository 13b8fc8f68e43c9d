package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConflictsAreSymmetric(t *testing.T) {
	c := Default()
	if !c.Conflicts("hardworking", "lazy") {
		t.Fatal("hardworking/lazy should conflict")
	}
	if !c.Conflicts("lazy", "hardworking") {
		t.Fatal("conflict check should be symmetric")
	}
	if c.Conflicts("hardworking", "clever") {
		t.Fatal("hardworking/clever should not conflict")
	}
}

func TestCompatible(t *testing.T) {
	c := Default()
	if !c.Compatible([]string{"hardworking"}, "clever") {
		t.Fatal("clever should fit alongside hardworking")
	}
	if c.Compatible([]string{"hardworking"}, "lazy") {
		t.Fatal("lazy must be rejected alongside hardworking")
	}
	if c.Compatible([]string{"clever"}, "clever") {
		t.Fatal("duplicate trait must be rejected")
	}
	if c.Compatible(nil, "telepathic") {
		t.Fatal("unknown trait must be rejected")
	}
}

func TestModifiersSum(t *testing.T) {
	c := Default()
	m := c.Modifiers([]string{"hardworking", "money-loving"})
	wantBuild := 0.10 + 0.15
	if m.Build != wantBuild {
		t.Fatalf("Build = %v, want %v", m.Build, wantBuild)
	}
	if !m.MoneyLoving {
		t.Fatal("MoneyLoving flag should be set")
	}
	if m.Clever {
		t.Fatal("Clever flag should not be set")
	}
	// Unknown names contribute nothing.
	if got := c.Modifiers([]string{"nonsense"}); got != (TraitModifiers{}) {
		t.Fatalf("unknown trait produced modifiers: %+v", got)
	}
}

func TestBlueprintLookups(t *testing.T) {
	c := Default()
	bp := c.Blueprint("tavern")
	if bp == nil || bp.Name != "Rusty Tankard" {
		t.Fatalf("Blueprint(tavern) = %+v", bp)
	}
	if got := c.BlueprintByName("Rusty Tankard"); got != bp {
		t.Fatal("BlueprintByName should resolve the same blueprint")
	}
	if c.Blueprint("arcade") != nil {
		t.Fatal("unknown blueprint id should return nil")
	}
}

func TestLoadOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	yaml := `
personalities:
  - name: mellow
    sleep_start: 22
    sleep_end: 6
    social_bias: 0.05
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.Personalities) != 1 || c.Personality("mellow") == nil {
		t.Fatalf("override not applied: %+v", c.Personalities)
	}
	// Untouched sections keep the defaults.
	if c.Blueprint("bakery") == nil {
		t.Fatal("default blueprints should survive a partial override")
	}
}

func TestLoadRejectsInvalidTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	yaml := `
blueprints:
  - id: freebie
    name: Freebie
    total_cost: 0
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("zero-cost blueprint should be rejected")
	}
}
