// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package organize

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// RecipeFile is the on-disk representation of an organize pipeline.
// The operator can save a set of steps to a file and reuse it across
// runs instead of repeating flags.
type RecipeFile struct {
	Steps []RecipeStep `yaml:"steps"`
}

// RecipeStep declares exactly one transformation. The populated field
// selects the step kind.
type RecipeStep struct {
	// Filter is an expression like "amount > 15".
	Filter string `yaml:"filter,omitempty"`

	// Rename maps old column names to new ones.
	Rename map[string]string `yaml:"rename,omitempty"`

	// Sort orders rows by a column.
	Sort *SortSpec `yaml:"sort,omitempty"`

	// Aggregate groups rows and sums numeric columns.
	Aggregate *AggregateSpec `yaml:"aggregate,omitempty"`
}

// SortSpec is the serializable form of a Sort step.
type SortSpec struct {
	Column     string `yaml:"column"`
	Descending bool   `yaml:"descending,omitempty"`
}

// AggregateSpec is the serializable form of an Aggregate step.
type AggregateSpec struct {
	GroupBy string   `yaml:"group_by"`
	Sum     []string `yaml:"sum,omitempty"`
}

// LoadRecipe reads a recipe YAML file and converts it to steps.
func LoadRecipe(path string) ([]Step, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading recipe file: %w", err)
	}

	var rf RecipeFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing recipe file %s: %w", path, err)
	}

	return rf.ToSteps()
}

// ToSteps converts the declared steps into executable ones, rejecting
// entries that declare zero or multiple transformations.
func (rf RecipeFile) ToSteps() ([]Step, error) {
	steps := make([]Step, 0, len(rf.Steps))
	for i, rs := range rf.Steps {
		declared := 0
		if rs.Filter != "" {
			declared++
		}
		if len(rs.Rename) > 0 {
			declared++
		}
		if rs.Sort != nil {
			declared++
		}
		if rs.Aggregate != nil {
			declared++
		}
		if declared != 1 {
			return nil, fmt.Errorf("recipe step %d: declare exactly one of filter, rename, sort, aggregate", i+1)
		}

		switch {
		case rs.Filter != "":
			f, err := ParseFilter(rs.Filter)
			if err != nil {
				return nil, fmt.Errorf("recipe step %d: %w", i+1, err)
			}
			steps = append(steps, f)
		case len(rs.Rename) > 0:
			steps = append(steps, Rename{Mapping: rs.Rename})
		case rs.Sort != nil:
			steps = append(steps, Sort{Column: rs.Sort.Column, Descending: rs.Sort.Descending})
		case rs.Aggregate != nil:
			steps = append(steps, Aggregate{GroupBy: rs.Aggregate.GroupBy, Sum: rs.Aggregate.Sum})
		}
	}
	return steps, nil
}
