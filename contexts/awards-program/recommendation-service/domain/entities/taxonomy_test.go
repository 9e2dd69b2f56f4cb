package entities

import (
	"errors"
	"testing"

	domainerrors "chancery/contexts/awards-program/recommendation-service/domain/errors"
)

func TestTaxonomyInitialStatusState(t *testing.T) {
	taxonomy := DefaultTaxonomy()

	status, state := taxonomy.InitialStatusState()
	if status != "In Progress" {
		t.Fatalf("expected initial status In Progress, got %s", status)
	}
	if state != "Submitted" {
		t.Fatalf("expected initial state Submitted, got %s", state)
	}
}

func TestTaxonomyStatusOf(t *testing.T) {
	taxonomy := DefaultTaxonomy()

	status, err := taxonomy.StatusOf("Need to Schedule")
	if err != nil {
		t.Fatalf("resolve status failed: %v", err)
	}
	if status != "Scheduling" {
		t.Fatalf("expected Scheduling, got %s", status)
	}

	if _, err := taxonomy.StatusOf("Banished"); !errors.Is(err, domainerrors.ErrUnknownState) {
		t.Fatalf("expected unknown state error, got %v", err)
	}
}

func TestTaxonomyHiddenStates(t *testing.T) {
	taxonomy := DefaultTaxonomy()

	if !taxonomy.IsHidden("No Action") {
		t.Fatalf("expected No Action to be hidden")
	}
	if taxonomy.IsHidden("Given") {
		t.Fatalf("expected Given to be visible")
	}
	hidden := taxonomy.HiddenStates()
	if len(hidden) != 1 || hidden[0] != "No Action" {
		t.Fatalf("unexpected hidden states: %v", hidden)
	}
}

func TestTaxonomyRejectsDuplicateState(t *testing.T) {
	_, err := NewTaxonomy([]StatusGroup{
		{Status: "Open", States: []State{"Submitted"}},
		{Status: "Closed", States: []State{"Submitted"}},
	}, nil)
	if !errors.Is(err, domainerrors.ErrDuplicateState) {
		t.Fatalf("expected duplicate state error, got %v", err)
	}
}

func TestTaxonomyRejectsEmpty(t *testing.T) {
	if _, err := NewTaxonomy(nil, nil); !errors.Is(err, domainerrors.ErrEmptyTaxonomy) {
		t.Fatalf("expected empty taxonomy error, got %v", err)
	}
}
