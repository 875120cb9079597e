// Package types contains shared domain types used across the searchbind layer
package types

// Property identifies one observable state property of a search component.
// Interest-sets are expressed as slices of Property; an empty interest-set
// means "notify on every change".
type Property string

// Observable state properties
const (
	PropertyValue          Property = "value"
	PropertyQuery          Property = "query"
	PropertyResults        Property = "results"
	PropertyAggregations   Property = "aggregationData"
	PropertyError          Property = "error"
	PropertyRequestStatus  Property = "requestStatus"
	PropertyRecentSearches Property = "recentSearches"
	PropertySuggestions    Property = "suggestions"
)

// ChangeRecord describes one property transition. A single state mutation
// may produce several ChangeRecords delivered together as one batch.
type ChangeRecord struct {
	Property Property `json:"property"`
	Prev     any      `json:"prev"`
	Next     any      `json:"next"`
}

// RequestStatus represents the state of a component's in-flight query
type RequestStatus string

// Request status constants
const (
	StatusInactive RequestStatus = "INACTIVE"
	StatusPending  RequestStatus = "PENDING"
	StatusError    RequestStatus = "ERROR"
	StatusSuccess  RequestStatus = "SUCCESS"
)

// Suggestion is one candidate item for the suggestion dropdown. Suggestions
// are immutable snapshots produced by the store-side executor; the binding
// layer filters, merges and orders them but never mutates them.
type Suggestion struct {
	Label    string         `json:"label"`
	Value    string         `json:"value"`
	Source   map[string]any `json:"source,omitempty"`
	SourceID string         `json:"sourceId,omitempty"`
	// ClickID is the suggestion's position in the result list, reported
	// with click analytics. Positions start at zero.
	ClickID             int  `json:"clickId,omitempty"`
	IsRecentSearch      bool           `json:"isRecentSearch,omitempty"`
	IsPopularSuggestion bool           `json:"isPopularSuggestion,omitempty"`
}

// SetValueOptions carries the explicit query-triggering flags forwarded with
// a value change. Zero value means "update the value, run nothing".
type SetValueOptions struct {
	// TriggerDefaultQuery re-runs the component's own query.
	TriggerDefaultQuery bool
	// TriggerCustomQuery re-runs the queries of reactively dependent components.
	TriggerCustomQuery bool
}

// ClickOptions qualifies a click-analytics event.
type ClickOptions struct {
	// IsSuggestionClick marks the click as a suggestion selection rather
	// than a result click.
	IsSuggestionClick bool
}
