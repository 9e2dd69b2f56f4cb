package configadapter

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	domainerrors "chancery/contexts/awards-program/recommendation-service/domain/errors"
)

func writeFile(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadTaxonomyFromFile(t *testing.T) {
	path := writeFile(t, "taxonomy.yaml", `
statuses:
  - status: Open
    states: [Submitted, Reviewed]
  - status: Done
    states: [Granted, Withdrawn]
hidden_states: [Withdrawn]
`)

	taxonomy, err := LoadTaxonomy(path)
	if err != nil {
		t.Fatalf("load taxonomy failed: %v", err)
	}
	status, state := taxonomy.InitialStatusState()
	if status != "Open" || state != "Submitted" {
		t.Fatalf("unexpected initial pair: %s/%s", status, state)
	}
	if !taxonomy.IsHidden("Withdrawn") {
		t.Fatalf("expected Withdrawn to be hidden")
	}
	owner, err := taxonomy.StatusOf("Granted")
	if err != nil || owner != "Done" {
		t.Fatalf("unexpected owner for Granted: %s %v", owner, err)
	}
}

func TestLoadTaxonomyRejectsDuplicates(t *testing.T) {
	path := writeFile(t, "taxonomy.yaml", `
statuses:
  - status: Open
    states: [Submitted]
  - status: Done
    states: [Submitted]
`)

	if _, err := LoadTaxonomy(path); !errors.Is(err, domainerrors.ErrDuplicateState) {
		t.Fatalf("expected duplicate state error, got %v", err)
	}
}

func TestLoadTaxonomyDefaultsWhenUnset(t *testing.T) {
	taxonomy, err := LoadTaxonomy("")
	if err != nil {
		t.Fatalf("default taxonomy failed: %v", err)
	}
	if _, state := taxonomy.InitialStatusState(); state != "Submitted" {
		t.Fatalf("unexpected default initial state: %s", state)
	}
}

func TestLoadViewConfig(t *testing.T) {
	path := writeFile(t, "views.yaml", `
table:
  filter:
    Recommendations->Status: "-status-"
  export: [Submitted, For]
  enable_export: true
board:
  states: [Submitted, Granted]
  hidden_by_default:
    states: [Granted]
`)

	config, err := LoadViewConfig(path)
	if err != nil {
		t.Fatalf("load view config failed: %v", err)
	}
	if config.Table.Filter["Recommendations->Status"] != "-status-" {
		t.Fatalf("unexpected filter: %v", config.Table.Filter)
	}
	if !config.Table.EnableExport || len(config.Table.Export) != 2 {
		t.Fatalf("unexpected export config: %+v", config.Table)
	}
	if config.Board.HiddenByDefault.LookbackDays != 30 {
		t.Fatalf("expected default lookback of 30 days, got %d", config.Board.HiddenByDefault.LookbackDays)
	}
}
