// Package suggestion computes the ordered list a search view renders:
// recent searches on an empty query, otherwise query-matched suggestions
// truncated to the configured size with popular suggestions appended after
// them. Selection forwards the value to the store and records the click
// best-effort.
package suggestion

import (
	"context"
	"log/slog"

	"github.com/c360/searchbind/errors"
	"github.com/c360/searchbind/metric"
	"github.com/c360/searchbind/store"
	"github.com/c360/searchbind/types"
)

// Display tells the view which state to render.
type Display int

const (
	// DisplayList renders the entries returned alongside it
	DisplayList Display = iota
	// DisplayPending renders a progress affordance; a request is in flight
	DisplayPending
	// DisplayNone renders the "no suggestions" empty state
	DisplayNone
)

// String returns a string representation of the display state
func (d Display) String() string {
	switch d {
	case DisplayList:
		return "list"
	case DisplayPending:
		return "pending"
	case DisplayNone:
		return "none"
	default:
		return "unknown"
	}
}

// Entry is the render contract for one suggestion row: a label, the flags
// driving icon choice, and a selection handler.
type Entry struct {
	Label               string
	Value               string
	IsRecentSearch      bool
	IsPopularSuggestion bool

	// Select performs the tap interaction: forward the value to the
	// store, update the displayed query text, record the click.
	Select func(ctx context.Context) error
}

// Options configures an Aggregator.
type Options struct {
	// SetQueryText updates the locally displayed query text when a
	// suggestion is selected. Required for selection to be meaningful,
	// optional otherwise.
	SetQueryText func(value string)
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// Metrics receives selection instrumentation. Optional.
	Metrics *metric.Metrics
}

// Aggregator builds render lists for one component's suggestion dropdown.
type Aggregator struct {
	comp         store.Component
	setQueryText func(string)
	logger       *slog.Logger
	metrics      *metric.Metrics
}

// NewAggregator creates an aggregator bound to one component.
func NewAggregator(comp store.Component, opts Options) (*Aggregator, error) {
	if comp == nil {
		return nil, errors.WrapInvalid(errors.ErrMissingConfig, "Aggregator", "NewAggregator", "component validation")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Aggregator{
		comp:         comp,
		setQueryText: opts.SetQueryText,
		logger:       opts.Logger,
		metrics:      opts.Metrics,
	}, nil
}

// Build computes the display state and ordered entries for the current
// query text.
//
// Empty query with recent searches enabled renders the recent list alone;
// the fetch is best-effort and an empty list falls through to the normal
// merge. The merge partitions raw suggestions into matched and popular,
// truncates matched to the configured size, and appends popular after
// matched, never interleaved and never truncated.
func (a *Aggregator) Build(ctx context.Context, queryText string) (Display, []Entry) {
	cfg := a.comp.Config()

	if queryText == "" && cfg.EnableRecentSearches {
		if _, err := a.comp.RecentSearches(ctx); err != nil {
			a.logger.Debug("recent search fetch failed", "component", a.comp.ID(), "error", err)
		}
		if recent := a.comp.State().RecentSearches; len(recent) > 0 {
			return DisplayList, a.entries(recent)
		}
	}

	state := a.comp.State()
	var matched, popular []types.Suggestion
	for _, s := range state.Suggestions {
		if s.IsPopularSuggestion {
			popular = append(popular, s)
		} else {
			matched = append(matched, s)
		}
	}

	if len(matched) > cfg.Size {
		matched = matched[:cfg.Size]
	}

	merged := make([]types.Suggestion, 0, len(matched)+len(popular))
	merged = append(merged, matched...)
	merged = append(merged, popular...)

	if len(merged) == 0 {
		if state.RequestStatus == types.StatusPending {
			return DisplayPending, nil
		}
		return DisplayNone, nil
	}

	return DisplayList, a.entries(merged)
}

// Select performs the tap interaction for one suggestion: forward its
// value with custom-query triggering enabled, update the displayed query
// text, then record the click. Analytics failures are caught here and
// never reach the caller or roll back the first two steps.
func (a *Aggregator) Select(ctx context.Context, s types.Suggestion) error {
	err := a.comp.SetValue(ctx, s.Value, types.SetValueOptions{
		TriggerDefaultQuery: true,
		TriggerCustomQuery:  true,
	})

	if a.setQueryText != nil {
		a.setQueryText(s.Value)
	}
	a.metrics.RecordSelection(a.comp.ID())

	a.recordClick(ctx, s)

	if err != nil {
		return errors.Wrap(err, "Aggregator", "Select", "value forwarding")
	}
	return nil
}

// recordClick emits the click-analytics event when the suggestion carries
// a source document and the component has analytics enabled. ClickID is a
// position and zero is a valid one, so it never gates the event.
// Failures, panics included, stop here.
func (a *Aggregator) recordClick(ctx context.Context, s types.Suggestion) {
	if !a.comp.Config().EnableAnalytics || s.SourceID == "" {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			a.metrics.RecordAnalyticsError(a.comp.ID())
			a.logger.Debug("click analytics panic", "component", a.comp.ID(), "panic", r)
		}
	}()

	clicks := map[string]int{s.SourceID: s.ClickID}
	if err := a.comp.RecordClick(ctx, clicks, types.ClickOptions{IsSuggestionClick: true}); err != nil {
		a.metrics.RecordAnalyticsError(a.comp.ID())
		a.logger.Debug("click analytics failed", "component", a.comp.ID(), "error", err)
	}
}

func (a *Aggregator) entries(suggestions []types.Suggestion) []Entry {
	entries := make([]Entry, 0, len(suggestions))
	for _, s := range suggestions {
		s := s
		entries = append(entries, Entry{
			Label:               s.Label,
			Value:               s.Value,
			IsRecentSearch:      s.IsRecentSearch,
			IsPopularSuggestion: s.IsPopularSuggestion,
			Select: func(ctx context.Context) error {
				return a.Select(ctx, s)
			},
		})
	}
	return entries
}
