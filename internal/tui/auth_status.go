package tui

import (
	"strings"

	"nathanbeddoewebdev/staffctl/internal/services/auth"
	"nathanbeddoewebdev/staffctl/internal/tui/components"
	"nathanbeddoewebdev/staffctl/internal/tui/styles"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type authStatusModel struct {
	statuses []auth.CredentialStatus

	width  int
	height int
}

// RunAuthStatus starts the full-window credential status TUI.
func RunAuthStatus(store auth.Store) error {
	m := authStatusModel{statuses: auth.CheckCredentials(store)}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m authStatusModel) Init() tea.Cmd {
	return nil
}

func (m authStatusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m authStatusModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := components.Header(m.width, "auth status", "")
	footer := components.Footer(m.width, []components.KeyBinding{
		{Key: "q", Desc: "quit"},
	})

	contentH := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentH < 1 {
		contentH = 1
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, m.renderContent(contentH), footer)
}

func (m authStatusModel) renderContent(height int) string {
	if len(m.statuses) == 0 {
		return lipgloss.Place(
			m.width, height,
			lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render("No credentials registered."),
		)
	}

	title := styles.Title.Render("Credentials")

	labelWidth := 20
	rows := make([]string, 0, len(m.statuses))
	for _, st := range m.statuses {
		name := styles.Label.Width(labelWidth).Render(st.Key)

		var statusText string
		switch {
		case st.Stored:
			statusText = styles.SuccessText.Render(st.Describe())
		case st.Err != nil:
			statusText = styles.ErrorText.Render(st.Describe())
		default:
			statusText = styles.MutedText.Render(st.Describe())
		}

		rows = append(rows, name+statusText)
	}

	card := styles.Card.Width(56).Render(strings.Join(rows, "\n"))

	combined := lipgloss.JoinVertical(lipgloss.Center, title, "", card)

	return lipgloss.Place(
		m.width, height,
		lipgloss.Center, lipgloss.Center,
		combined,
	)
}
