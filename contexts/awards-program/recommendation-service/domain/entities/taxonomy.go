package entities

import (
	domainerrors "chancery/contexts/awards-program/recommendation-service/domain/errors"
)

// StatusGroup declares one status and its ordered states. Declaration order
// is meaningful: it drives board column ordering and editor dropdowns, and
// the first state of the first group is where new recommendations start.
type StatusGroup struct {
	Status Status
	States []State
}

// Taxonomy is the status/state registry with a reverse index built once at
// load time. It is immutable after construction; reloading configuration
// produces a new value.
type Taxonomy struct {
	groups   []StatusGroup
	statusOf map[State]Status
	hidden   map[State]struct{}
}

func NewTaxonomy(groups []StatusGroup, hidden []State) (Taxonomy, error) {
	statusOf := make(map[State]Status)
	for _, group := range groups {
		for _, state := range group.States {
			if _, exists := statusOf[state]; exists {
				return Taxonomy{}, domainerrors.ErrDuplicateState
			}
			statusOf[state] = group.Status
		}
	}
	if len(statusOf) == 0 {
		return Taxonomy{}, domainerrors.ErrEmptyTaxonomy
	}

	hiddenSet := make(map[State]struct{}, len(hidden))
	for _, state := range hidden {
		hiddenSet[state] = struct{}{}
	}

	copied := make([]StatusGroup, 0, len(groups))
	for _, group := range groups {
		copied = append(copied, StatusGroup{
			Status: group.Status,
			States: append([]State(nil), group.States...),
		})
	}
	return Taxonomy{groups: copied, statusOf: statusOf, hidden: hiddenSet}, nil
}

// AllStates returns the declared groups in declaration order.
func (t Taxonomy) AllStates() []StatusGroup {
	return t.groups
}

// States returns every state flattened in declaration order.
func (t Taxonomy) States() []State {
	var states []State
	for _, group := range t.groups {
		states = append(states, group.States...)
	}
	return states
}

// InitialStatusState is where every new recommendation starts.
func (t Taxonomy) InitialStatusState() (Status, State) {
	first := t.groups[0]
	return first.Status, first.States[0]
}

// StatusOf resolves the owning status for a state. Transition callers must
// treat ErrUnknownState as fatal for the row or batch in question.
func (t Taxonomy) StatusOf(state State) (Status, error) {
	status, ok := t.statusOf[state]
	if !ok {
		return "", domainerrors.ErrUnknownState
	}
	return status, nil
}

func (t Taxonomy) IsHidden(state State) bool {
	_, hidden := t.hidden[state]
	return hidden
}

// HiddenStates returns the restricted states in declaration order.
func (t Taxonomy) HiddenStates() []State {
	var states []State
	for _, state := range t.States() {
		if t.IsHidden(state) {
			states = append(states, state)
		}
	}
	return states
}

// DefaultTaxonomy is the stock award workflow, used when no configuration
// source overrides it.
func DefaultTaxonomy() Taxonomy {
	taxonomy, err := NewTaxonomy([]StatusGroup{
		{Status: "In Progress", States: []State{
			"Submitted",
			"In Consideration",
			"Awaiting Feedback",
			"Deferred till Later",
			"King Approved",
			"Queen Approved",
		}},
		{Status: "Scheduling", States: []State{
			"Need to Schedule",
		}},
		{Status: "To Give", States: []State{
			"Scheduled",
			"Announced Not Given",
		}},
		{Status: "Closed", States: []State{
			"Given",
			"No Action",
		}},
	}, []State{"No Action"})
	if err != nil {
		panic(err)
	}
	return taxonomy
}
