package configadapter

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// ViewConfig declares the table and board views: the base filter with its
// deferred "-param-" references, the export column list, and the kanban
// column layout.
type ViewConfig struct {
	Table TableView `yaml:"table"`
	Board BoardView `yaml:"board"`
}

type TableView struct {
	Filter       map[string]string `yaml:"filter"`
	Columns      []string          `yaml:"columns"`
	Export       []string          `yaml:"export"`
	EnableExport bool              `yaml:"enable_export"`
}

type BoardView struct {
	States          []string      `yaml:"states"`
	HiddenByDefault HiddenColumns `yaml:"hidden_by_default"`
}

// HiddenColumns lists board columns that are collapsed unless the viewer
// asks for them, and how many days of recent cards to load when they do.
type HiddenColumns struct {
	LookbackDays int      `yaml:"lookback_days"`
	States       []string `yaml:"states"`
}

// LoadViewConfig reads the view configuration from a YAML file. An empty
// path yields the built-in default view.
func LoadViewConfig(path string) (ViewConfig, error) {
	if path == "" {
		return DefaultViewConfig(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return ViewConfig{}, fmt.Errorf("read view config file: %w", err)
	}
	var config ViewConfig
	if err := yaml.Unmarshal(raw, &config); err != nil {
		return ViewConfig{}, fmt.Errorf("parse view config file: %w", err)
	}
	if config.Board.HiddenByDefault.LookbackDays <= 0 {
		config.Board.HiddenByDefault.LookbackDays = 30
	}
	return config, nil
}

// DefaultViewConfig mirrors the stock portal views: an unfiltered table with
// the full export column set, and a board with one column per workflow state.
// Given and terminal columns stay collapsed until the viewer opens them.
func DefaultViewConfig() ViewConfig {
	return ViewConfig{
		Table: TableView{
			Filter: map[string]string{},
			Columns: []string{
				"Submitted", "For", "Branch", "Award", "Status", "State", "State Date",
			},
			Export: []string{
				"Submitted", "For", "Title", "Pronouns", "Pronunciation", "Branch",
				"Call Into Court", "Court Avail", "Person to Notify", "Submitted By",
				"Contact Email", "Contact Phone", "Domain", "Award", "Reason", "Events",
				"Notes", "Status", "State", "Close Reason", "Event", "State Date",
				"Given Date",
			},
			EnableExport: true,
		},
		Board: BoardView{
			States: []string{
				"Submitted", "In Consideration", "Awaiting Feedback", "Deferred till Later",
				"King Approved", "Queen Approved", "Need to Schedule", "Scheduled",
				"Announced Not Given", "Given", "No Action",
			},
			HiddenByDefault: HiddenColumns{
				LookbackDays: 30,
				States:       []string{"Given", "No Action"},
			},
		},
	}
}
