package types

// ComponentState is a snapshot of a search component's observable state.
// Snapshots are copies; mutating one never affects the live component.
// Only the store-side mutation path produces new states; the binding
// layer reads them and forwards intents.
type ComponentState struct {
	Value           string           `json:"value"`
	Query           string           `json:"query"`
	Results         []map[string]any `json:"results,omitempty"`
	AggregationData map[string]any   `json:"aggregationData,omitempty"`
	Err             error            `json:"-"`
	RequestStatus   RequestStatus    `json:"requestStatus"`
	RecentSearches  []Suggestion     `json:"recentSearches,omitempty"`
	Suggestions     []Suggestion     `json:"suggestions,omitempty"`
	Total           int              `json:"total"`
}

// Get returns the value of one observable property by name. Used by the
// notification path to build ChangeRecords generically.
func (s ComponentState) Get(p Property) any {
	switch p {
	case PropertyValue:
		return s.Value
	case PropertyQuery:
		return s.Query
	case PropertyResults:
		return s.Results
	case PropertyAggregations:
		return s.AggregationData
	case PropertyError:
		return s.Err
	case PropertyRequestStatus:
		return s.RequestStatus
	case PropertyRecentSearches:
		return s.RecentSearches
	case PropertySuggestions:
		return s.Suggestions
	default:
		return nil
	}
}
