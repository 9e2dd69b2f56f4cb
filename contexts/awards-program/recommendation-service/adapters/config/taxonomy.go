package configadapter

import (
	"fmt"
	"os"

	"chancery/contexts/awards-program/recommendation-service/domain/entities"

	"gopkg.in/yaml.v2"
)

// taxonomyFile is the on-disk shape of the workflow taxonomy. Group order is
// significant: the first state of the first group is the initial state, and
// the board renders columns in file order.
type taxonomyFile struct {
	Statuses     []taxonomyGroup `yaml:"statuses"`
	HiddenStates []string        `yaml:"hidden_states"`
}

type taxonomyGroup struct {
	Status string   `yaml:"status"`
	States []string `yaml:"states"`
}

// LoadTaxonomy reads the workflow taxonomy from a YAML file. An empty path
// yields the built-in default taxonomy.
func LoadTaxonomy(path string) (entities.Taxonomy, error) {
	if path == "" {
		return entities.DefaultTaxonomy(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return entities.Taxonomy{}, fmt.Errorf("read taxonomy file: %w", err)
	}
	var file taxonomyFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return entities.Taxonomy{}, fmt.Errorf("parse taxonomy file: %w", err)
	}

	groups := make([]entities.StatusGroup, 0, len(file.Statuses))
	for _, group := range file.Statuses {
		states := make([]entities.State, 0, len(group.States))
		for _, state := range group.States {
			states = append(states, entities.State(state))
		}
		groups = append(groups, entities.StatusGroup{
			Status: entities.Status(group.Status),
			States: states,
		})
	}
	hidden := make([]entities.State, 0, len(file.HiddenStates))
	for _, state := range file.HiddenStates {
		hidden = append(hidden, entities.State(state))
	}

	taxonomy, err := entities.NewTaxonomy(groups, hidden)
	if err != nil {
		return entities.Taxonomy{}, fmt.Errorf("taxonomy %s: %w", path, err)
	}
	return taxonomy, nil
}
