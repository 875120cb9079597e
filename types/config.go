package types

import (
	"fmt"

	"github.com/c360/searchbind/errors"
)

// Query format constants
const (
	QueryFormatOr  = "or"
	QueryFormatAnd = "and"
)

// Default display configuration
const (
	// DefaultSize is the number of matched suggestions shown when Size is unset
	DefaultSize = 10
)

// ReactDependencies declares which other components a component's query
// reacts to. Keys follow the and/or/not combination semantics of the
// query layer; values are component ids.
type ReactDependencies struct {
	And []string `json:"and,omitempty"`
	Or  []string `json:"or,omitempty"`
	Not []string `json:"not,omitempty"`
}

// IsZero reports whether no dependencies are declared.
func (r ReactDependencies) IsZero() bool {
	return len(r.And) == 0 && len(r.Or) == 0 && len(r.Not) == 0
}

// All flattens the dependency graph into the plain list of component ids.
func (r ReactDependencies) All() []string {
	ids := make([]string, 0, len(r.And)+len(r.Or)+len(r.Not))
	ids = append(ids, r.And...)
	ids = append(ids, r.Or...)
	ids = append(ids, r.Not...)
	return ids
}

// DependsOn reports whether the graph references the given component id.
func (r ReactDependencies) DependsOn(id string) bool {
	for _, dep := range r.All() {
		if dep == id {
			return true
		}
	}
	return false
}

// ComponentConfig is the typed configuration of one search component.
// Every field is named and validated once at registration; nothing is
// re-interpreted from loose key/value bags at call sites.
// This structure is shared between the component, binding and suggestion
// packages.
type ComponentConfig struct {
	// Index is the search index this component queries.
	Index string `json:"index,omitempty"`
	// DataField selects which document fields the query searches,
	// either a single field or a weighted field list.
	DataField DataField `json:"dataField,omitempty"`
	// React declares the reactive dependency graph for custom queries.
	React ReactDependencies `json:"react,omitempty"`

	// Query shaping
	Size            int    `json:"size,omitempty"`
	From            int    `json:"from,omitempty"`
	SortBy          string `json:"sortBy,omitempty"`
	QueryFormat     string `json:"queryFormat,omitempty"`
	Fuzziness       int    `json:"fuzziness,omitempty"`
	FuzzinessAuto   bool   `json:"fuzzinessAuto,omitempty"`
	SearchOperators bool   `json:"searchOperators,omitempty"`
	AutoSuggest     bool   `json:"autoSuggest,omitempty"`

	// Suggestion display behavior
	EnableRecentSearches     bool `json:"enableRecentSearches,omitempty"`
	EnablePopularSuggestions bool `json:"enablePopularSuggestions,omitempty"`
	// ShowDistinctSuggestions is a pass-through to the store, which builds
	// the raw suggestion list one-per-document instead of one-per-field.
	ShowDistinctSuggestions bool `json:"showDistinctSuggestions,omitempty"`

	// EnableAnalytics turns on click-analytics recording for this component.
	EnableAnalytics bool `json:"enableAnalytics,omitempty"`
}

// Validate checks the configuration and applies enumerated defaults.
// It is called once when a component is registered.
func (c *ComponentConfig) Validate() error {
	if c.Size < 0 {
		return errors.WrapInvalid(
			fmt.Errorf("size must be non-negative, got %d", c.Size),
			"ComponentConfig", "Validate", "size validation")
	}
	if c.Size == 0 {
		c.Size = DefaultSize
	}
	if c.From < 0 {
		return errors.WrapInvalid(
			fmt.Errorf("from must be non-negative, got %d", c.From),
			"ComponentConfig", "Validate", "from validation")
	}

	switch c.QueryFormat {
	case "":
		c.QueryFormat = QueryFormatOr
	case QueryFormatOr, QueryFormatAnd:
	default:
		return errors.WrapInvalid(errors.ErrInvalidConfig, "ComponentConfig", "Validate",
			fmt.Sprintf("invalid query format: %s", c.QueryFormat))
	}

	if c.Fuzziness < 0 || c.Fuzziness > 2 {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "ComponentConfig", "Validate",
			fmt.Sprintf("fuzziness %d outside valid range 0-2", c.Fuzziness))
	}

	return nil
}

// Merge overlays the non-zero fields of other onto c and returns the
// result. Used when a component is re-registered with refreshed
// configuration: config fields update, observable state is untouched.
func (c ComponentConfig) Merge(other ComponentConfig) ComponentConfig {
	merged := c

	if other.Index != "" {
		merged.Index = other.Index
	}
	if !other.DataField.IsZero() {
		merged.DataField = other.DataField
	}
	if !other.React.IsZero() {
		merged.React = other.React
	}
	if other.Size != 0 {
		merged.Size = other.Size
	}
	if other.From != 0 {
		merged.From = other.From
	}
	if other.SortBy != "" {
		merged.SortBy = other.SortBy
	}
	if other.QueryFormat != "" {
		merged.QueryFormat = other.QueryFormat
	}
	if other.Fuzziness != 0 {
		merged.Fuzziness = other.Fuzziness
	}

	// Booleans overlay directly: re-registration states the full intent.
	merged.FuzzinessAuto = other.FuzzinessAuto
	merged.SearchOperators = other.SearchOperators
	merged.AutoSuggest = other.AutoSuggest
	merged.EnableRecentSearches = other.EnableRecentSearches
	merged.EnablePopularSuggestions = other.EnablePopularSuggestions
	merged.ShowDistinctSuggestions = other.ShowDistinctSuggestions
	merged.EnableAnalytics = other.EnableAnalytics

	return merged
}
