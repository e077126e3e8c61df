package tui

import (
	"context"
	"fmt"
	"strings"

	"nathanbeddoewebdev/staffctl/internal/staff/domain"
	"nathanbeddoewebdev/staffctl/internal/staff/filter"
	"nathanbeddoewebdev/staffctl/internal/staff/services"
	"nathanbeddoewebdev/staffctl/internal/tui/components"
	"nathanbeddoewebdev/staffctl/internal/tui/styles"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// --- Messages ---

type staffLoadedMsg struct {
	staff []domain.Staff
}

type staffErrorMsg struct {
	err error
}

// --- Roster list model ---

type staffListModel struct {
	service      *services.Service
	providerName string

	all       []domain.Staff
	filtered  []domain.Staff
	cursor    int
	listStart int // for scrolling

	role      string // "" for all roles
	roleTypes []string
	search    textinput.Model
	searching bool

	width  int
	height int

	loading          bool
	spinner          spinner.Model
	err              error
	status           string
	statusIsError    bool
	persistentStatus string
}

func newStaffListModel(svc *services.Service, providerName string, initial filter.Criteria, width, height int) staffListModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "name, ID, mobile or username"
	ti.CharLimit = 64
	ti.SetValue(initial.Search)

	m := staffListModel{
		service:      svc,
		providerName: providerName,
		role:         strings.TrimSpace(initial.Role),
		search:       ti,
		width:        width,
		height:       height,
		loading:      true,
		spinner:      s,
	}
	m.roleTypes = m.buildRoleTypes()
	return m
}

func (m staffListModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m staffListModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		staff, err := m.service.ListStaff(context.Background())
		if err != nil {
			return staffErrorMsg{err}
		}
		return staffLoadedMsg{staff}
	}
}

func (m staffListModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		staff, err := m.service.Refresh(context.Background())
		if err != nil {
			return staffErrorMsg{err}
		}
		return staffLoadedMsg{staff}
	}
}

func (m staffListModel) criteria() filter.Criteria {
	return filter.Criteria{Search: m.search.Value(), Role: m.role}
}

// applyFilter recomputes the visible rows from the full roster.
func (m *staffListModel) applyFilter() {
	m.filtered = filter.Apply(m.all, m.criteria())
	if m.cursor >= len(m.filtered) {
		m.cursor = max(len(m.filtered)-1, 0)
	}
	m.updateScroll()
}

// buildRoleTypes lists "" (all) followed by every role in the roster. The
// active role is kept even when no row currently carries it.
func (m staffListModel) buildRoleTypes() []string {
	types := append([]string{""}, filter.Roles(m.all)...)
	if m.role != "" {
		for _, r := range types {
			if r == m.role {
				return types
			}
		}
		types = append(types, m.role)
	}
	return types
}

func (m *staffListModel) cycleRole() {
	idx := 0
	for i, r := range m.roleTypes {
		if r == m.role {
			idx = i
			break
		}
	}
	idx = (idx + 1) % len(m.roleTypes)
	m.role = m.roleTypes[idx]
	m.applyFilter()
}

func (m *staffListModel) visibleRows() int {
	headerH, footerH, statusH := 3, 2, 1 // approximate
	contentH := max(m.height-headerH-footerH-statusH, 1)
	barsH := 2
	tableH := max(contentH-barsH-1, 1)
	return max(tableH-2, 1)
}

func (m *staffListModel) updateScroll() {
	visible := m.visibleRows()
	if m.cursor < m.listStart {
		m.listStart = m.cursor
	} else if m.cursor >= m.listStart+visible {
		m.listStart = m.cursor - visible + 1
	}
}

func (m staffListModel) selected() (domain.Staff, bool) {
	if len(m.filtered) == 0 {
		return domain.Staff{}, false
	}
	return m.filtered[m.cursor], true
}

func (m staffListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateScroll()

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "esc", "q":
			if m.search.Value() != "" {
				m.search.SetValue("")
				m.applyFilter()
				return m, nil
			}
			return m, func() tea.Msg { return staffNavigateBackMsg{} }
		case "/":
			m.searching = true
			cmd := m.search.Focus()
			return m, cmd
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			m.updateScroll()
		case "down", "j":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			m.updateScroll()
		case "g":
			m.cursor = 0
			m.updateScroll()
		case "G":
			if len(m.filtered) > 0 {
				m.cursor = len(m.filtered) - 1
			}
			m.updateScroll()
		case "f":
			m.cycleRole()
		case "r":
			m.loading = true
			m.err = nil
			m.persistentStatus = ""
			return m, tea.Batch(m.spinner.Tick, m.refreshCmd())
		case "enter":
			if s, ok := m.selected(); ok {
				return m, func() tea.Msg { return staffNavigateToShowMsg{staff: s} }
			}
		case "s":
			if s, ok := m.selected(); ok {
				return m, func() tea.Msg { return staffToggleConfirmedMsg{staff: s} }
			}
		case "d":
			if s, ok := m.selected(); ok {
				return m, func() tea.Msg { return staffNavigateToDeleteMsg{staff: s} }
			}
		}

	case staffLoadedMsg:
		m.loading = false
		m.err = nil
		m.statusIsError = false
		m.all = msg.staff
		m.roleTypes = m.buildRoleTypes()
		m.applyFilter()

		status := fmt.Sprintf("%d staff", len(m.all))
		if m.persistentStatus != "" {
			status = m.persistentStatus + " | " + status
		}
		m.status = status

	case staffErrorMsg:
		m.loading = false
		m.err = msg.err
		m.status = msg.err.Error()
		m.statusIsError = true

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	default:
		if m.searching {
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// updateSearch routes keys to the search box. The filter is recomputed on
// every keystroke.
func (m staffListModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.applyFilter()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m staffListModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := components.Header(m.width, "staff", m.providerName)

	var footerBindings []components.KeyBinding
	switch {
	case m.searching:
		footerBindings = []components.KeyBinding{
			{Key: "enter", Desc: "apply"},
			{Key: "esc", Desc: "clear"},
		}
	case m.loading:
		footerBindings = []components.KeyBinding{
			{Key: "ctrl+c", Desc: "quit"},
		}
	default:
		footerBindings = []components.KeyBinding{
			{Key: "j/k", Desc: "nav"},
			{Key: "enter", Desc: "show"},
			{Key: "/", Desc: "search"},
			{Key: "f", Desc: "role"},
			{Key: "s", Desc: "toggle status"},
			{Key: "d", Desc: "delete"},
			{Key: "r", Desc: "refresh"},
			{Key: "q", Desc: "quit"},
		}
	}
	footer := components.Footer(m.width, footerBindings)

	statusBar := ""
	if m.err != nil {
		statusBar = components.StatusBar(m.width, "Error: "+m.err.Error(), true)
	} else if m.status != "" {
		statusBar = components.StatusBar(m.width, m.status, m.statusIsError)
	}

	headerH := lipgloss.Height(header)
	footerH := lipgloss.Height(footer)
	statusH := lipgloss.Height(statusBar)
	contentH := max(m.height-headerH-footerH-statusH, 1)

	content := m.renderContent(contentH)

	sections := []string{header, content}
	if statusBar != "" {
		sections = append(sections, statusBar)
	}
	sections = append(sections, footer)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m staffListModel) renderContent(height int) string {
	if m.loading {
		return lipgloss.Place(
			m.width, height,
			lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render(m.spinner.View()+"  Fetching staff…"),
		)
	}

	if m.err != nil {
		return lipgloss.Place(
			m.width, height,
			lipgloss.Center, lipgloss.Center,
			styles.ErrorText.Render(fmt.Sprintf("Error: %v", m.err)),
		)
	}

	if len(m.all) == 0 {
		return lipgloss.Place(
			m.width, height,
			lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render("No staff found."),
		)
	}

	bars := lipgloss.JoinVertical(lipgloss.Left, m.renderSearchBar(), m.renderFilterBar())
	tableH := max(height-lipgloss.Height(bars)-1, 1)
	content := lipgloss.JoinVertical(lipgloss.Left, bars, "", m.renderTable(tableH))

	if lines := strings.Count(content, "\n") + 1; lines < height {
		content += strings.Repeat("\n", height-lines)
	}
	return content
}

func (m staffListModel) renderSearchBar() string {
	if m.searching {
		return "  " + m.search.View()
	}
	if v := m.search.Value(); v != "" {
		return "  Search: " + styles.AccentText.Render(v)
	}
	return "  " + styles.MutedText.Render("Search: press / to search")
}

func (m staffListModel) renderFilterBar() string {
	parts := []string{"  Role: "}
	for _, r := range m.roleTypes {
		label := r
		if r == "" {
			label = "All"
		}
		if r == m.role {
			parts = append(parts, fmt.Sprintf("[%s]", styles.AccentText.Render(label)))
		} else {
			parts = append(parts, fmt.Sprintf(" %s ", styles.MutedText.Render(label)))
		}
	}
	return strings.Join(parts, "")
}

type column struct {
	title string
	width int
}

// tableColumns sizes the roster columns for the given width. Extra space
// goes to NAME.
func tableColumns(width int) []column {
	cols := []column{
		{title: "ID", width: 10},
		{title: "NAME", width: 20},
		{title: "USERNAME", width: 14},
		{title: "MOBILE", width: 15},
		{title: "ROLE", width: 10},
		{title: "STATUS", width: 12},
	}
	total := 0
	for _, c := range cols {
		total += c.width
	}
	if available := width - 4; available > total {
		cols[1].width += available - total
	}
	return cols
}

func (m staffListModel) renderTable(height int) string {
	if len(m.filtered) == 0 {
		return lipgloss.Place(
			m.width, height,
			lipgloss.Center, lipgloss.Top,
			styles.MutedText.Render("\nNo staff match the current filter."),
		)
	}

	cols := tableColumns(m.width)

	headerCells := make([]string, len(cols))
	for i, col := range cols {
		headerCells[i] = styles.TableHeader.Width(col.width).Render(col.title)
	}
	headerRow := "  " + lipgloss.JoinHorizontal(lipgloss.Top, headerCells...)
	sep := styles.MutedText.Render("  " + strings.Repeat("─", max(m.width-4, 1)))

	visible := max(height-2, 1)
	end := min(m.listStart+visible, len(m.filtered))

	rows := []string{headerRow, sep}
	for i := m.listStart; i < end; i++ {
		s := m.filtered[i]

		cells := []string{
			cell(cols[0].width, s.ID, lipgloss.NewStyle()),
			cell(cols[1].width, s.Name, lipgloss.NewStyle()),
			cell(cols[2].width, s.Username, lipgloss.NewStyle()),
			cell(cols[3].width, s.Mobile, lipgloss.NewStyle()),
			cell(cols[4].width, s.Role, styles.RoleStyle(s.Role)),
			cell(cols[5].width, s.DisplayStatus(), styles.StatusStyle(s.Status)),
		}
		rowContent := lipgloss.JoinHorizontal(lipgloss.Top, cells...)

		cursor := "  "
		rowStyle := styles.TableCell
		if i == m.cursor {
			cursor = styles.AccentText.Render("> ")
			rowStyle = styles.TableSelectedRow
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cursor, rowStyle.Render(rowContent)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// cell truncates text to fit width (leaving room for padding) and renders
// it in a fixed-width box.
func cell(width int, text string, style lipgloss.Style) string {
	text = ansi.Truncate(text, max(width-2, 1), "…")
	return lipgloss.NewStyle().Width(width).Render(style.Render(text))
}
