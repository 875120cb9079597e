package component

import (
	"context"

	"github.com/c360/searchbind/types"
)

// QueryResult is what the store-side executor returns for one query
// execution. Result and aggregation computation is entirely the executor's
// concern; the component only applies the outcome to observable state.
type QueryResult struct {
	Results         []map[string]any
	AggregationData map[string]any
	Suggestions     []types.Suggestion
	Total           int
}

// Executor is the narrow interface the external search store implements.
// It owns query building, transport and result computation. Implementations
// may block; the binding layer never calls ExecuteQuery directly, it only
// observes completion through subscription notifications.
type Executor interface {
	// ExecuteQuery runs the component's own query against its index,
	// shaped by the component's configuration and current value.
	ExecuteQuery(ctx context.Context, comp *Component) (QueryResult, error)

	// RecentSearches fetches the user's recently searched terms.
	RecentSearches(ctx context.Context, comp *Component) ([]types.Suggestion, error)

	// RecordClick reports a click-analytics event. May fail; callers
	// swallow the failure.
	RecordClick(ctx context.Context, comp *Component, clicks map[string]int, opts types.ClickOptions) error
}
