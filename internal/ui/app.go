package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nirzaf/mdx2txt/internal/converter"
	"github.com/nirzaf/mdx2txt/internal/helpers"
)

// =============================================================================
// STATE MACHINE
// =============================================================================

type appState int

const (
	stateScanning   appState = iota // Listing the source directory
	stateConverting                 // Converting files one at a time
	stateResults                    // Showing results (list view)
)

// =============================================================================
// FILTER TYPES
// =============================================================================

type filterType int

const (
	filterAll       filterType = iota // Every attempted file
	filterFailed                      // Failed conversions
	filterConverted                   // Written files
)

const filterCount = 3

func (f filterType) String() string {
	switch f {
	case filterAll:
		return "All Files"
	case filterFailed:
		return "Failed"
	case filterConverted:
		return "Converted"
	default:
		return "Unknown"
	}
}

func (f filterType) Next() filterType {
	return (f + 1) % filterCount
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the main application model.
type Model struct {
	// State
	state    appState
	quitting bool
	err      error

	// Data
	files   []string
	results []converter.Result
	next    int // index of the next file to convert

	// Categorized results
	converted []converter.Result
	failed    []converter.Result

	// Filter
	filter filterType

	// Components
	spinner spinner.Model
	list    list.Model
	help    help.Model
	keys    KeyMap

	// Conversion
	conv   *converter.Converter
	ctx    context.Context
	cancel context.CancelFunc

	// UI state
	width       int
	height      int
	showHelp    bool
	hideDetails bool

	// Config
	source string
	target string
}

// New creates and returns a new Model converting source into target.
func New(ctx context.Context, conv *converter.Converter, source, target string) Model {
	if source == "" {
		source = "."
	}
	// Initialize spinner
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle()

	// Initialize list with empty items (will be populated later)
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	delegate.Styles.SelectedTitle = SelectedStyle
	delegate.Styles.SelectedDesc = StatusStyle

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Conversion Results"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false) // We use our own help
	l.Styles.Title = TitleStyle

	ctx, cancel := context.WithCancel(ctx)

	return Model{
		state:   stateScanning,
		spinner: s,
		list:    l,
		help:    help.New(),
		keys:    DefaultKeyMap(),
		filter:  filterAll,
		conv:    conv,
		ctx:     ctx,
		cancel:  cancel,
		source:  source,
		target:  target,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, ScanFilesCmd(m.conv, m.source, m.target))
}

// Results returns the results collected so far, in conversion order.
func (m Model) Results() []converter.Result {
	return m.results
}

// Err returns the error that stopped the run, if any.
func (m Model) Err() error {
	return m.err
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages and returns the updated model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Reserve space for header, summary, and detail panel
		listHeight := max(msg.Height-16, 5)
		m.list.SetSize(msg.Width, listHeight)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case FilesFoundMsg:
		return m.handleFilesFound(msg)

	case FileConvertedMsg:
		return m.handleFileConverted(msg)

	case ConversionCompleteMsg:
		return m.handleConversionComplete(msg)
	}

	// Pass other messages to list if in results state
	if m.state == stateResults {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Typed search text belongs to the list.
	if m.state == stateResults && m.list.FilterState() == list.Filtering && msg.String() != "ctrl+c" {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	// Global keys that work in any state
	if key.Matches(msg, m.keys.Quit) {
		if m.cancel != nil {
			m.cancel()
		}
		m.quitting = true
		return m, tea.Quit
	}

	if key.Matches(msg, m.keys.Help) {
		m.showHelp = !m.showHelp
		return m, nil
	}

	// State-specific keys
	if m.state == stateResults {
		if key.Matches(msg, m.keys.Filter) {
			m.filter = m.filter.Next()
			m.updateListItems()
			return m, nil
		}

		if key.Matches(msg, m.keys.Details) {
			m.hideDetails = !m.hideDetails
			return m, nil
		}

		// Pass navigation keys to list
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleFilesFound(msg FilesFoundMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.err = msg.Err
		m.state = stateResults
		return m, nil
	}
	m.files = msg.Files

	if len(m.files) == 0 {
		m.state = stateResults
		return m, nil
	}
	m.state = stateConverting
	cmd := m.convertNext()
	return m, cmd
}

func (m Model) handleFileConverted(msg FileConvertedMsg) (tea.Model, tea.Cmd) {
	m.results = append(m.results, msg.Result)
	if msg.Result.OK() {
		m.converted = append(m.converted, msg.Result)
	} else {
		m.failed = append(m.failed, msg.Result)
	}

	if m.next >= len(m.files) {
		return m.handleConversionComplete(ConversionCompleteMsg{})
	}
	cmd := m.convertNext()
	return m, cmd
}

func (m Model) handleConversionComplete(msg ConversionCompleteMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.err = msg.Err
	}
	m.state = stateResults
	m.updateListItems()
	return m, nil
}

// convertNext returns the command for the next file and advances the cursor.
func (m *Model) convertNext() tea.Cmd {
	path := m.files[m.next]
	m.next++
	return ConvertFileCmd(m.ctx, m.conv, path, m.target)
}

// updateListItems updates the list with filtered results.
func (m *Model) updateListItems() {
	filtered := m.getFilteredResults()
	items := make([]list.Item, len(filtered))
	for i, r := range filtered {
		items[i] = ResultItem{Result: r}
	}
	m.list.SetItems(items)
}

// getFilteredResults returns results based on current filter.
func (m *Model) getFilteredResults() []converter.Result {
	switch m.filter {
	case filterAll:
		return m.results
	case filterFailed:
		return m.failed
	case filterConverted:
		return m.converted
	default:
		return nil
	}
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var s string

	// Header
	s += TitleStyle.Render("mdx2txt - MDX to Text Converter")
	s += "\n\n"

	// Error state
	if m.err != nil && len(m.results) == 0 {
		s += ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err))
		s += "\n"
		s += HelpStyle.Render("Press q to quit")
		return s
	}

	// State-specific view
	switch m.state {
	case stateScanning:
		s += m.spinner.View() + fmt.Sprintf(" Listing %s...", m.source)

	case stateConverting:
		s += m.renderConvertingProgress()

	case stateResults:
		s += m.renderResults()
	}

	// Help
	if m.showHelp {
		s += "\n\n" + m.help.View(m.keys)
	} else {
		s += "\n\n" + m.renderShortHelp()
	}

	return s
}

func (m Model) renderConvertingProgress() string {
	var s string

	s += m.spinner.View() + fmt.Sprintf(" Converting files... %d/%d", len(m.results), len(m.files))
	s += "\n\n"

	// Live category counts
	s += fmt.Sprintf("  %s  %s",
		SuccessStyle.Render(fmt.Sprintf("✓ %d converted", len(m.converted))),
		ErrorStyle.Render(fmt.Sprintf("✗ %d failed", len(m.failed))))

	return s
}

func (m Model) renderResults() string {
	var s string

	if len(m.files) == 0 {
		return MutedStyle.Render(fmt.Sprintf("No matching files in %s", m.source))
	}

	// Summary line
	s += fmt.Sprintf("Converted %s from %s into %s\n\n",
		helpers.Pluralize(len(m.results), "file"), m.source, m.target)

	// Category summary
	s += fmt.Sprintf("%s | %s\n\n",
		SuccessStyle.Render(fmt.Sprintf("✓ %d converted", len(m.converted))),
		ErrorStyle.Render(fmt.Sprintf("✗ %d failed", len(m.failed))))

	if m.err != nil {
		s += WarningStyle.Render(fmt.Sprintf("Stopped early: %v", m.err)) + "\n\n"
	}

	// Filter indicator
	s += fmt.Sprintf("Filter: %s (%d/%d)\n\n",
		SelectedStyle.Render(m.filter.String()),
		len(m.getFilteredResults()),
		len(m.results))

	// List view
	s += m.list.View()

	if m.hideDetails {
		return s
	}

	// Detail panel for selected item
	if selected := m.list.SelectedItem(); selected != nil {
		if item, ok := selected.(ResultItem); ok {
			s += "\n" + item.DetailView()
		}
	}

	return s
}

func (Model) renderShortHelp() string {
	return HelpStyle.Render("↑/↓ navigate • f filter • d details • ? help • q quit")
}
