// searchbox-demo is an interactive terminal search box wired through the
// full binding stack: registry, lifecycle binding, interest-filtered
// subscription and suggestion aggregation, against an in-memory catalog.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/c360/searchbind/binding"
	"github.com/c360/searchbind/component"
	"github.com/c360/searchbind/metric"
	"github.com/c360/searchbind/store"
	"github.com/c360/searchbind/suggestion"
	"github.com/c360/searchbind/types"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	recentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	popularStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	statusStyle   = lipgloss.NewStyle().Faint(true)
	resultStyle   = lipgloss.NewStyle().PaddingLeft(2)
	selectedStyle = lipgloss.NewStyle().PaddingLeft(0).Foreground(lipgloss.Color("212"))
)

type model struct {
	input      textinput.Model
	bind       *binding.Binding
	aggregator *suggestion.Aggregator
	entries    []suggestion.Entry
	display    suggestion.Display
	cursor     int
	err        error
}

func newModel(bind *binding.Binding, agg *suggestion.Aggregator) model {
	input := textinput.New()
	input.Placeholder = "search the catalog"
	input.Focus()
	input.Prompt = "> "

	return model{input: input, bind: bind, aggregator: agg}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.bind.Dispose()
			return m, tea.Quit
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
			return m, nil
		case "enter":
			if m.cursor < len(m.entries) {
				entry := m.entries[m.cursor]
				if err := entry.Select(context.Background()); err != nil {
					m.err = err
				}
				m.input.SetValue(entry.Value)
				m.input.CursorEnd()
			}
			return m.refresh(), nil
		}
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)

	if value := m.input.Value(); value != before {
		if err := m.bind.SetValue(context.Background(), value, types.SetValueOptions{
			TriggerDefaultQuery: true,
		}); err != nil {
			m.err = err
		}
	}
	return m.refresh(), cmd
}

func (m model) refresh() model {
	m.display, m.entries = m.aggregator.Build(context.Background(), m.input.Value())
	if m.cursor >= len(m.entries) {
		m.cursor = 0
	}
	return m
}

func (m model) View() string {
	s := titleStyle.Render("searchbind demo") + "\n\n"
	s += m.input.View() + "\n\n"

	switch m.display {
	case suggestion.DisplayPending:
		s += statusStyle.Render("searching…") + "\n"
	case suggestion.DisplayNone:
		s += statusStyle.Render("no suggestions") + "\n"
	case suggestion.DisplayList:
		for i, entry := range m.entries {
			label := entry.Label
			switch {
			case entry.IsRecentSearch:
				label = recentStyle.Render(label + "  (recent)")
			case entry.IsPopularSuggestion:
				label = popularStyle.Render(label + "  (popular)")
			}
			if i == m.cursor {
				s += selectedStyle.Render("▸ "+label) + "\n"
			} else {
				s += resultStyle.Render(label) + "\n"
			}
		}
	}

	state := m.bind.Component().State()
	s += "\n" + statusStyle.Render(fmt.Sprintf("%d results · status %s", state.Total, state.RequestStatus))
	if m.err != nil {
		s += "\n" + statusStyle.Render("error: "+m.err.Error())
	}
	s += "\n" + statusStyle.Render("↑/↓ navigate · enter select · esc quit")
	return s
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	metricsRegistry, err := metric.NewMetricsRegistry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "metrics setup: %v\n", err)
		os.Exit(1)
	}

	registry, err := component.NewRegistry(component.RegistryConfig{
		Executor: newMemoryExecutor(demoCatalog()),
		Logger:   logger,
		Metrics:  metricsRegistry.CoreMetrics(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "registry setup: %v\n", err)
		os.Exit(1)
	}
	store.SetDefault(registry)
	defer store.ResetDefault()

	opts := binding.DefaultOptions("catalog-search", types.ComponentConfig{
		Index:                    "catalog",
		DataField:                types.SingleField("title"),
		Size:                     5,
		EnableRecentSearches:     true,
		EnablePopularSuggestions: true,
		EnableAnalytics:          true,
	})
	opts.Logger = logger
	opts.Metrics = metricsRegistry.CoreMetrics()

	bind, err := binding.New(nil, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "binding setup: %v\n", err)
		os.Exit(1)
	}
	if err := bind.Mount(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "mount: %v\n", err)
		os.Exit(1)
	}
	defer bind.Dispose()

	agg, err := suggestion.NewAggregator(bind.Component(), suggestion.Options{
		Logger:  logger,
		Metrics: metricsRegistry.CoreMetrics(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "aggregator setup: %v\n", err)
		os.Exit(1)
	}

	program := tea.NewProgram(newModel(bind, agg).refresh())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "ui: %v\n", err)
		os.Exit(1)
	}
}
