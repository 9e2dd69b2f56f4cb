package queries

import (
	"sort"
	"strings"

	"chancery/contexts/awards-program/recommendation-service/ports"
)

// FilterValue is either a literal bound directly or a deferred reference
// resolved from a ParamSource at query time. The tagged variant replaces the
// original "-name-" string sniffing so a literal that happens to start and
// end with a dash can still be expressed via Literal.
type FilterValue struct {
	literal  any
	param    string
	deferred bool
}

func Literal(value any) FilterValue {
	return FilterValue{literal: value}
}

func Deferred(param string) FilterValue {
	return FilterValue{param: param, deferred: true}
}

// FilterSpec maps a dotted association path to a filter value.
type FilterSpec map[string]FilterValue

// ParseFilterSpec keeps the external authoring contract: arrow association
// paths ("Recommendations->Status") are normalized to dotted lower-case
// paths, and values wrapped in single dashes ("-member_id-") become
// deferred parameter references.
func ParseFilterSpec(raw map[string]string) FilterSpec {
	spec := make(FilterSpec, len(raw))
	for path, value := range raw {
		if len(value) >= 2 && strings.HasPrefix(value, "-") && strings.HasSuffix(value, "-") {
			spec[NormalizePath(path)] = Deferred(value[1 : len(value)-1])
			continue
		}
		spec[NormalizePath(path)] = Literal(value)
	}
	return spec
}

// NormalizePath converts arrow notation to the dotted path the query layer
// understands and strips the redundant root-entity prefix.
func NormalizePath(path string) string {
	fixed := strings.ToLower(strings.ReplaceAll(path, "->", "."))
	fixed = strings.TrimPrefix(fixed, "recommendations.")
	return fixed
}

// ResolveFilter turns a spec into concrete predicates. Deferred references
// whose parameter is absent or empty are dropped entirely; they never
// resolve to an equals-empty condition. Output order is deterministic.
func ResolveFilter(spec FilterSpec, params ports.ParamSource) []ports.Condition {
	conditions := make([]ports.Condition, 0, len(spec))
	for path, value := range spec {
		if value.deferred {
			if params == nil {
				continue
			}
			resolved, ok := params.Get(value.param)
			if !ok || resolved == "" {
				continue
			}
			conditions = append(conditions, ports.Condition{Path: path, Value: resolved})
			continue
		}
		conditions = append(conditions, ports.Condition{Path: path, Value: value.literal})
	}
	sort.Slice(conditions, func(i, j int) bool {
		return conditions[i].Path < conditions[j].Path
	})
	return conditions
}

// MapParams adapts a plain map to a ParamSource.
type MapParams map[string]string

func (m MapParams) Get(name string) (string, bool) {
	value, ok := m[name]
	return value, ok
}
