package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bchelf/platlab/internal/storage"
)

const maxRunsLoaded = 100

// RunsKeyMap defines the key bindings for the run browser.
type RunsKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RunsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Quit}}
}

// DefaultRunsKeyMap returns default key bindings.
func DefaultRunsKeyMap() RunsKeyMap {
	return RunsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunBrowser is a Bubble Tea model that lists archived runs in a table.
type RunBrowser struct {
	table    table.Model
	help     help.Model
	keys     RunsKeyMap
	scenario string
	err      error
}

// NewRunBrowser loads up to maxRunsLoaded runs for the given scenario
// (empty for all) and builds the browser.
func NewRunBrowser(store *storage.Store, scenario string, width, height int) RunBrowser {
	columns := []table.Column{
		{Title: "When", Width: 16},
		{Title: "Scenario", Width: 12},
		{Title: "Frames", Width: 7},
		{Title: "Final X", Width: 8},
		{Title: "Final Y", Width: 8},
		{Title: "J/L/B", Width: 7},
		{Title: "Trace hash", Width: 16},
	}

	var rows []table.Row
	var loadErr error
	runs, err := store.Runs(scenario, maxRunsLoaded)
	if err != nil {
		loadErr = err
	}
	for _, r := range runs {
		rows = append(rows, table.Row{
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.Scenario,
			fmt.Sprintf("%d", r.Frames),
			fmt.Sprintf("%.0f", r.FinalX),
			fmt.Sprintf("%.0f", r.FinalY),
			fmt.Sprintf("%d/%d/%d", r.Jumped, r.Landed, r.Bonked),
			fmt.Sprintf("%016x", r.TraceHash),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(maxInt(height-4, 3)),
	)

	return RunBrowser{
		table:    t,
		help:     help.New(),
		keys:     DefaultRunsKeyMap(),
		scenario: scenario,
		err:      loadErr,
	}
}

// Init implements tea.Model.
func (b RunBrowser) Init() tea.Cmd {
	return nil
}

// Update handles key messages and table navigation.
func (b RunBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, b.keys.Quit) {
			return b, tea.Quit
		}
	case tea.WindowSizeMsg:
		b.table.SetHeight(maxInt(msg.Height-4, 3))
	}

	var cmd tea.Cmd
	b.table, cmd = b.table.Update(msg)
	return b, cmd
}

// View renders the table with a title and help footer.
func (b RunBrowser) View() string {
	title := "Archived runs"
	if b.scenario != "" {
		title += " - " + b.scenario
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	if b.err != nil {
		return titleStyle.Render(title) + "\n\n  error: " + b.err.Error() + "\n"
	}

	return titleStyle.Render(title) + "\n" +
		b.table.View() + "\n" +
		b.help.View(b.keys)
}

// BrowseRuns opens the run browser in the current terminal.
func BrowseRuns(store *storage.Store, scenario string, width, height int) error {
	p := tea.NewProgram(
		NewRunBrowser(store, scenario, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
