package tui

import (
	"nathanbeddoewebdev/staffctl/internal/staff/domain"
	"nathanbeddoewebdev/staffctl/internal/tui/components"
	"nathanbeddoewebdev/staffctl/internal/tui/styles"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type staffDeleteModel struct {
	staff        domain.Staff
	providerName string

	confirmIdx int // 0 = Delete, 1 = Cancel

	width  int
	height int
}

func newStaffDeleteModel(s domain.Staff, providerName string, width, height int) staffDeleteModel {
	return staffDeleteModel{
		staff:        s,
		providerName: providerName,
		confirmIdx:   1, // Cancel
		width:        width,
		height:       height,
	}
}

func (m staffDeleteModel) Init() tea.Cmd {
	return nil
}

func (m staffDeleteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return m, func() tea.Msg { return staffNavigateBackMsg{} }
		case "left", "h":
			if m.confirmIdx > 0 {
				m.confirmIdx--
			}
		case "right", "l", "tab":
			if m.confirmIdx < 1 {
				m.confirmIdx++
			}
		case "enter":
			if m.confirmIdx == 1 {
				return m, func() tea.Msg { return staffNavigateBackMsg{} }
			}
			s := m.staff
			return m, func() tea.Msg { return staffDeleteConfirmedMsg{staff: s} }
		}
	}
	return m, nil
}

func (m staffDeleteModel) View() string {
	header := components.Header(m.width, "staff > delete", m.providerName)
	footer := components.Footer(m.width, []components.KeyBinding{
		{Key: "←/→", Desc: "select"},
		{Key: "enter", Desc: "confirm"},
		{Key: "esc", Desc: "cancel"},
	})

	contentH := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 1)
	content := lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.renderCard())

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (m staffDeleteModel) renderCard() string {
	title := lipgloss.NewStyle().Foreground(styles.Red).Bold(true).Render("Delete Staff Member")
	s := m.staff

	row := func(label, val string) string {
		return lipgloss.JoinHorizontal(lipgloss.Left,
			lipgloss.NewStyle().Width(10).Render(styles.Label.Render(label)),
			styles.Value.Render(val))
	}

	delBtn := "[ Delete ]"
	canBtn := "[ Cancel ]"
	if m.confirmIdx == 0 {
		delBtn = lipgloss.NewStyle().Foreground(styles.White).Background(styles.Red).Render(delBtn)
		canBtn = styles.MutedText.Render(canBtn)
	} else {
		delBtn = lipgloss.NewStyle().Foreground(styles.Red).Render(delBtn)
		canBtn = lipgloss.NewStyle().Foreground(styles.White).Background(styles.Gray).Render(canBtn)
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Center, delBtn, "  ", canBtn)

	card := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		row("ID", s.ID),
		row("Name", s.Name),
		row("Username", orDash(s.Username)),
		row("Role", orDash(s.Role)),
		"",
		styles.ErrorText.Render("This action cannot be undone."),
	)

	cardStyle := styles.Card.BorderForeground(styles.Red)
	return lipgloss.JoinVertical(lipgloss.Center, cardStyle.Render(card), "", buttons)
}
