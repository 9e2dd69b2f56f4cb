package queries

import (
	"testing"
)

func TestParseFilterSpecNormalizesPathsAndPlaceholders(t *testing.T) {
	spec := ParseFilterSpec(map[string]string{
		"Recommendations->Status":           "Closed",
		"Recommendations->Award->branch_id": "-branch_id-",
	})

	conditions := ResolveFilter(spec, MapParams{"branch_id": "branch-7"})
	if len(conditions) != 2 {
		t.Fatalf("expected 2 conditions, got %d", len(conditions))
	}
	if conditions[0].Path != "award.branch_id" || conditions[0].Value != "branch-7" {
		t.Fatalf("unexpected first condition: %+v", conditions[0])
	}
	if conditions[1].Path != "status" || conditions[1].Value != "Closed" {
		t.Fatalf("unexpected second condition: %+v", conditions[1])
	}
}

func TestResolveFilterDropsAbsentPlaceholders(t *testing.T) {
	spec := FilterSpec{
		"status":    Literal("In Progress"),
		"member_id": Deferred("member_id"),
	}

	conditions := ResolveFilter(spec, MapParams{})
	if len(conditions) != 1 {
		t.Fatalf("expected absent placeholder to be dropped, got %d conditions", len(conditions))
	}
	if conditions[0].Path != "status" {
		t.Fatalf("unexpected condition: %+v", conditions[0])
	}
}

func TestResolveFilterDropsEmptyPlaceholderValues(t *testing.T) {
	spec := FilterSpec{
		"member_id": Deferred("member_id"),
	}

	conditions := ResolveFilter(spec, MapParams{"member_id": ""})
	if len(conditions) != 0 {
		t.Fatalf("expected empty placeholder value to be dropped, got %d conditions", len(conditions))
	}

	conditions = ResolveFilter(spec, MapParams{"member_id": "member-1"})
	if len(conditions) != 1 || conditions[0].Value != "member-1" {
		t.Fatalf("expected bound placeholder, got %+v", conditions)
	}
}

func TestResolveFilterNilParamSource(t *testing.T) {
	spec := FilterSpec{
		"state":     Literal("Submitted"),
		"member_id": Deferred("member_id"),
	}

	conditions := ResolveFilter(spec, nil)
	if len(conditions) != 1 || conditions[0].Path != "state" {
		t.Fatalf("expected only the literal condition, got %+v", conditions)
	}
}

func TestLiteralDashesAreNotPlaceholders(t *testing.T) {
	spec := FilterSpec{
		"specialty": Literal("-archery-"),
	}

	conditions := ResolveFilter(spec, MapParams{"archery": "should-not-bind"})
	if len(conditions) != 1 || conditions[0].Value != "-archery-" {
		t.Fatalf("expected dash literal to pass through, got %+v", conditions)
	}
}
