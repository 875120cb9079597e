package main

import (
	"context"
	"sort"
	"strings"

	"github.com/c360/searchbind/component"
	"github.com/c360/searchbind/types"
)

// product is one document in the demo catalog.
type product struct {
	ID         string
	Title      string
	Category   string
	Popularity int
}

// memoryExecutor is a toy store side: substring matching over an in-memory
// catalog, a recent-search ring, and click counting. Real deployments put
// a search engine behind this interface.
type memoryExecutor struct {
	catalog []product
	recent  []string
	clicks  map[string]int
}

const recentLimit = 5

func newMemoryExecutor(catalog []product) *memoryExecutor {
	return &memoryExecutor{catalog: catalog, clicks: make(map[string]int)}
}

func (m *memoryExecutor) ExecuteQuery(_ context.Context, comp *component.Component) (component.QueryResult, error) {
	term := strings.ToLower(strings.TrimSpace(comp.State().Value))
	cfg := comp.Config()

	var result component.QueryResult
	for _, p := range m.catalog {
		if term != "" && !strings.Contains(strings.ToLower(p.Title), term) {
			continue
		}
		position := len(result.Results)
		result.Results = append(result.Results, map[string]any{
			"id": p.ID, "title": p.Title, "category": p.Category,
		})
		if term != "" && len(result.Suggestions) < cfg.Size*2 {
			result.Suggestions = append(result.Suggestions, types.Suggestion{
				Label:    p.Title,
				Value:    p.Title,
				SourceID: p.ID,
				ClickID:  position,
			})
		}
	}
	result.Total = len(result.Results)

	if cfg.EnablePopularSuggestions && term != "" {
		result.Suggestions = append(result.Suggestions, m.popular()...)
	}
	if term != "" {
		m.remember(term)
	}
	return result, nil
}

func (m *memoryExecutor) RecentSearches(_ context.Context, _ *component.Component) ([]types.Suggestion, error) {
	suggestions := make([]types.Suggestion, 0, len(m.recent))
	for i := len(m.recent) - 1; i >= 0; i-- {
		suggestions = append(suggestions, types.Suggestion{
			Label:          m.recent[i],
			Value:          m.recent[i],
			IsRecentSearch: true,
		})
	}
	return suggestions, nil
}

func (m *memoryExecutor) RecordClick(
	_ context.Context, _ *component.Component, clicks map[string]int, _ types.ClickOptions,
) error {
	for id := range clicks {
		m.clicks[id]++
	}
	return nil
}

// popular returns the two most popular catalog titles, flagged.
func (m *memoryExecutor) popular() []types.Suggestion {
	top := make([]product, len(m.catalog))
	copy(top, m.catalog)
	sort.Slice(top, func(i, j int) bool { return top[i].Popularity > top[j].Popularity })

	var suggestions []types.Suggestion
	for _, p := range top {
		if len(suggestions) == 2 {
			break
		}
		suggestions = append(suggestions, types.Suggestion{
			Label:               p.Title,
			Value:               p.Title,
			SourceID:            p.ID,
			IsPopularSuggestion: true,
		})
	}
	return suggestions
}

func (m *memoryExecutor) remember(term string) {
	for _, r := range m.recent {
		if r == term {
			return
		}
	}
	m.recent = append(m.recent, term)
	if len(m.recent) > recentLimit {
		m.recent = m.recent[1:]
	}
}

func demoCatalog() []product {
	return []product{
		{ID: "p1", Title: "Laptop Pro 14", Category: "computers", Popularity: 92},
		{ID: "p2", Title: "Laptop Air 13", Category: "computers", Popularity: 88},
		{ID: "p3", Title: "Mechanical Keyboard", Category: "accessories", Popularity: 75},
		{ID: "p4", Title: "Wireless Mouse", Category: "accessories", Popularity: 81},
		{ID: "p5", Title: "4K Monitor 27", Category: "displays", Popularity: 69},
		{ID: "p6", Title: "USB-C Dock", Category: "accessories", Popularity: 55},
		{ID: "p7", Title: "Noise Cancelling Headphones", Category: "audio", Popularity: 95},
		{ID: "p8", Title: "Portable SSD 1TB", Category: "storage", Popularity: 73},
		{ID: "p9", Title: "Webcam HD", Category: "accessories", Popularity: 41},
		{ID: "p10", Title: "Laptop Stand", Category: "accessories", Popularity: 62},
	}
}
