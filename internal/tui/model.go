// Package tui provides the Bubble Tea activity picker.
package tui

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amacleod/ttstat/internal/timelog"
)

// Category is one selectable activity with its description.
type Category struct {
	Label       string
	Description string
}

// Model implements the Bubble Tea activity picker. Selecting an entry
// appends a log record; the default category is logged on startup and
// again when the picker quits, marking the session boundaries.
type Model struct {
	logDir          string
	categories      []Category
	defaultCategory string
	longDefs        bool

	filter   textinput.Model
	filtered []Category
	cursor   int

	lastLogged string
	errMsg     string

	width  int
	height int
}

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	itemStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	descStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// NewModel constructs the picker and logs the default category as the
// session start marker.
func NewModel(categories map[string]string, defaultCategory, logDir string, longDefs bool) *Model {
	sorted := make([]Category, 0, len(categories))
	for label, description := range categories {
		sorted = append(sorted, Category{Label: label, Description: description})
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Label < sorted[j].Label })

	filter := textinput.New()
	filter.Placeholder = "filter"
	filter.Prompt = "/ "
	filter.Focus()

	m := &Model{
		logDir:          logDir,
		categories:      sorted,
		defaultCategory: defaultCategory,
		longDefs:        longDefs,
		filter:          filter,
		filtered:        sorted,
	}
	m.logActivity(defaultCategory)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			// Going off duty ends the session.
			m.logActivity(m.defaultCategory)
			return m, tea.Quit
		case tea.KeyUp:
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case tea.KeyDown:
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil
		case tea.KeyEnter:
			if m.cursor < len(m.filtered) {
				m.logActivity(m.filtered[m.cursor].Label)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.filtered = filterCategories(m.categories, m.filter.Value())
	if m.cursor >= len(m.filtered) {
		m.cursor = 0
	}
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Now working on:"))
	b.WriteString("\n")
	b.WriteString(m.filter.View())
	b.WriteString("\n\n")
	for i, category := range m.filtered {
		line := category.Label
		if m.longDefs && category.Description != "" {
			line = fmt.Sprintf("%s: %s", category.Label, descStyle.Render(category.Description))
		}
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString(itemStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}
	footer := "enter: log activity · esc: quit"
	if m.lastLogged != "" {
		footer = fmt.Sprintf("logged %s · %s", m.lastLogged, footer)
	}
	b.WriteString(footerStyle.Render(footer))

	if m.width == 0 || m.height == 0 {
		return b.String()
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}

func (m *Model) logActivity(activity string) {
	if activity == "" {
		return
	}
	if err := timelog.Append(m.logDir, activity, time.Now()); err != nil {
		m.errMsg = fmt.Sprintf("failed to log activity: %v", err)
		logErrf("failed to log activity: %v\n", err)
		return
	}
	m.errMsg = ""
	m.lastLogged = activity
}

// filterCategories returns the categories whose label contains the query,
// case-insensitively. An empty query keeps everything.
func filterCategories(categories []Category, query string) []Category {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return categories
	}
	var out []Category
	for _, category := range categories {
		if strings.Contains(strings.ToLower(category.Label), query) {
			out = append(out, category)
		}
	}
	return out
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
