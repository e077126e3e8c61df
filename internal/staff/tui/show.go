package tui

import (
	"fmt"

	"nathanbeddoewebdev/staffctl/internal/staff/domain"
	"nathanbeddoewebdev/staffctl/internal/tui/components"
	"nathanbeddoewebdev/staffctl/internal/tui/styles"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type staffShowModel struct {
	staff        domain.Staff
	providerName string
	width        int
	height       int
}

func newStaffShowModel(s domain.Staff, providerName string, width, height int) staffShowModel {
	return staffShowModel{
		staff:        s,
		providerName: providerName,
		width:        width,
		height:       height,
	}
}

func (m staffShowModel) Init() tea.Cmd {
	return nil
}

func (m staffShowModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "backspace", "left", "h", "q":
			return m, func() tea.Msg { return staffNavigateBackMsg{} }
		case "s":
			return m, func() tea.Msg { return staffToggleConfirmedMsg{staff: m.staff} }
		case "d":
			return m, func() tea.Msg { return staffNavigateToDeleteMsg{staff: m.staff} }
		}
	}
	return m, nil
}

func (m staffShowModel) View() string {
	header := components.Header(m.width, fmt.Sprintf("staff > %s", m.staff.ID), m.providerName)

	footer := components.Footer(m.width, []components.KeyBinding{
		{Key: "s", Desc: "toggle status"},
		{Key: "d", Desc: "delete"},
		{Key: "esc", Desc: "back"},
	})

	contentH := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 1)
	content := lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.renderCard())

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

type detailField struct {
	label string
	val   string
}

// detailFields lists the modelled columns followed by any extra sheet
// columns in name order.
func detailFields(s domain.Staff) []detailField {
	fields := []detailField{
		{"Staff ID", s.ID},
		{"Name", s.Name},
		{"Mobile", orDash(s.Mobile)},
		{"Username", orDash(s.Username)},
		{"Role", orDash(s.Role)},
		{"Status", s.DisplayStatus()},
		{"Salary", orDash(s.Salary)},
		{"Joined", orDash(s.JoinDate)},
	}

	for _, k := range s.ExtraFields() {
		fields = append(fields, detailField{k, orDash(s.Fields[k])})
	}
	return fields
}

func (m staffShowModel) renderCard() string {
	s := m.staff

	titleRow := lipgloss.JoinHorizontal(lipgloss.Center,
		styles.Title.Render(s.Name),
		"  ",
		styles.StatusIndicator(s.Status),
	)

	rows := []string{titleRow, ""}
	for _, f := range detailFields(s) {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Left,
			lipgloss.NewStyle().Width(12).Render(styles.Label.Render(f.label)),
			styles.Value.Render(f.val),
		))
	}

	return styles.Card.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func orDash(v string) string {
	if v == "" {
		return "—"
	}
	return v
}
