// Package searchbar is the query input at the top of the screen. It owns
// the text field and the spinner shown while a search is in flight; the
// request itself is issued by the parent.
package searchbar

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/saavn/internal/ui/styles"
)

// SubmitMsg is emitted when the user presses enter on a non-blank query.
type SubmitMsg struct {
	Query string
}

// Model is the search bar.
type Model struct {
	input   textinput.Model
	spinner spinner.Model
	loading bool
	width   int
}

func New() Model {
	in := textinput.New()
	in.Placeholder = "Search songs…"
	in.Prompt = "/ "
	in.CharLimit = 200
	in.PromptStyle = lipgloss.NewStyle().Foreground(styles.T().Primary)
	in.PlaceholderStyle = styles.T().S().Subtle
	in.Cursor.SetMode(cursor.CursorStatic)

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(styles.T().Primary)

	return Model{input: in, spinner: sp}
}

// Focus gives the text field the cursor.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

// Blur releases the cursor.
func (m *Model) Blur() {
	m.input.Blur()
}

// Focused reports whether the field takes key input.
func (m Model) Focused() bool {
	return m.input.Focused()
}

// Value returns the current query text.
func (m Model) Value() string {
	return m.input.Value()
}

// SetWidth sets the rendered width.
func (m *Model) SetWidth(w int) {
	m.width = w
	m.input.Width = max(w-6, 1)
}

// SetLoading starts or stops the spinner. The returned command drives
// the animation.
func (m *Model) SetLoading(loading bool) tea.Cmd {
	m.loading = loading
	if loading {
		return m.spinner.Tick
	}
	return nil
}

// Loading reports whether the spinner is running.
func (m Model) Loading() bool {
	return m.loading
}

// Update handles keys while focused and spinner ticks while loading.
// Enter on a blank query does nothing.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if !m.input.Focused() {
			return m, nil
		}
		if msg.Type == tea.KeyEnter {
			query := strings.TrimSpace(m.input.Value())
			if query == "" {
				return m, nil
			}
			return m, func() tea.Msg { return SubmitMsg{Query: query} }
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	right := "  "
	if m.loading {
		right = " " + m.spinner.View()
	}
	return m.input.View() + right
}
