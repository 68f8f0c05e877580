package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	params := Default()
	if len(params) != 37 {
		t.Fatalf("expected 37 parameters, got %d", len(params))
	}
	if err := Validate(params); err != nil {
		t.Fatalf("default catalog must validate: %v", err)
	}
}

func TestGroupsFirstAppearanceOrder(t *testing.T) {
	groups := Groups(Default())
	want := []string{GroupOperational, GroupOilCondition, GroupWearMetals, GroupContamination, GroupAdditives}
	if len(groups) != len(want) {
		t.Fatalf("expected %d groups, got %d", len(want), len(groups))
	}
	for i, group := range want {
		if groups[i] != group {
			t.Errorf("group %d: expected %q, got %q", i, group, groups[i])
		}
	}
}

func TestColumns(t *testing.T) {
	cols := Columns(Default())
	if len(cols) != 37 {
		t.Fatalf("expected 37 columns, got %d", len(cols))
	}
	if cols[0] != "CIL1" || cols[7] != "Fe" {
		t.Errorf("unexpected column order: %v", cols[:8])
	}
}

func TestValidateRejectsBrokenCatalogs(t *testing.T) {
	cases := []struct {
		name   string
		params []Parameter
	}{
		{"empty name", []Parameter{{Column: "Fe", Max: f(70)}}},
		{"duplicate name", []Parameter{
			{Name: "Fe", Column: "Fe", Max: f(70)},
			{Name: "Fe", Column: "Fe2", Max: f(70)},
		}},
		{"empty column", []Parameter{{Name: "Fe", Max: f(70)}}},
		{"no bounds", []Parameter{{Name: "Fe", Column: "Fe"}}},
		{"inverted bounds", []Parameter{{Name: "Fe", Column: "Fe", Min: f(70), Max: f(10)}}},
	}
	for _, tc := range cases {
		if err := Validate(tc.params); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestLoadFromYAML(t *testing.T) {
	content := `parameters:
  - name: Fe (Hierro)
    column: Fe
    max: 70
    group: Elementos de desgaste (wear metals)
  - name: TBN
    column: TBN
    min: 5
    group: Condición del aceite
`
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write catalog file: %v", err)
	}
	params, err := Load(path)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	if len(params) != 2 {
		t.Fatalf("expected 2 parameters, got %d", len(params))
	}
	if params[0].Min != nil || params[0].Max == nil || *params[0].Max != 70 {
		t.Errorf("unexpected bounds on %q", params[0].Name)
	}
	if params[1].Group != GroupOilCondition {
		t.Errorf("unexpected group %q", params[1].Group)
	}
}

func TestLoadRejectsEmptyAndMissingFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, []byte("parameters: []\n"), 0o600); err != nil {
		t.Fatalf("write catalog file: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for an empty catalog")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for a missing file")
	}
}
