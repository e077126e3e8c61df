// Package tui implements the interactive staff roster views: a bubbletea
// roster browser and huh forms for the add, select and delete flows.
package tui

import (
	"context"
	"fmt"

	"nathanbeddoewebdev/staffctl/internal/staff/domain"
	"nathanbeddoewebdev/staffctl/internal/staff/filter"
	"nathanbeddoewebdev/staffctl/internal/staff/services"
	"nathanbeddoewebdev/staffctl/internal/tui/components"
	"nathanbeddoewebdev/staffctl/internal/tui/styles"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// --- Navigation messages ---
// Sent by child models to request view transitions.

type staffNavigateToShowMsg struct {
	staff domain.Staff
}

type staffNavigateToDeleteMsg struct {
	staff domain.Staff
}

type staffNavigateBackMsg struct{}

// --- Action messages ---
// Sent by child models when the user confirms a mutation.

type staffToggleConfirmedMsg struct {
	staff domain.Staff
}

type staffDeleteConfirmedMsg struct {
	staff domain.Staff
}

// --- Action result messages ---

type staffToggleResultMsg struct {
	staff  domain.Staff
	status string
	err    error
}

type staffDeleteResultMsg struct {
	staff domain.Staff
	err   error
}

// MutationFunc is called after every successful mutation made from the TUI,
// so the caller can record it (e.g. in the audit log).
type MutationFunc func(action string, staffID string)

// --- Top-level App Model ---

type staffAppView int

const (
	staffAppViewList staffAppView = iota
	staffAppViewShow
	staffAppViewDelete
	staffAppViewAction // spinner while a webhook call is in progress
)

type staffAppModel struct {
	service      *services.Service
	providerName string
	onMutation   MutationFunc
	view         staffAppView

	// Child models
	list       staffListModel
	show       staffShowModel
	deleteCard staffDeleteModel

	// Action state
	actionSpinner spinner.Model
	actionLabel   string
	actionStatus  string
	actionIsError bool

	width  int
	height int
}

// RunStaffApp starts the roster TUI with the given initial filter.
func RunStaffApp(service *services.Service, initial filter.Criteria, onMutation MutationFunc) (tea.Model, error) {
	m := newStaffAppModel(service, service.ProviderName(), initial, onMutation)
	p := tea.NewProgram(m, tea.WithAltScreen())
	return p.Run()
}

func newStaffAppModel(service *services.Service, providerName string, initial filter.Criteria, onMutation MutationFunc) staffAppModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	return staffAppModel{
		service:       service,
		providerName:  providerName,
		onMutation:    onMutation,
		view:          staffAppViewList,
		list:          newStaffListModel(service, providerName, initial, 0, 0),
		actionSpinner: s,
	}
}

func (m staffAppModel) Init() tea.Cmd {
	return m.list.Init()
}

func (m staffAppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.view == staffAppViewAction {
			// Any key dismisses a failed action.
			if m.actionIsError {
				m.view = staffAppViewList
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Keep the list sized even while another view is showing.
		updated, _ := m.list.Update(msg)
		m.list = updated.(staffListModel)
		if m.view == staffAppViewList {
			return m, nil
		}
		return m.updateChild(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		if m.view == staffAppViewAction {
			m.actionSpinner, cmd = m.actionSpinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		childModel, childCmd := m.updateChild(msg)
		m = childModel.(staffAppModel)
		cmds = append(cmds, childCmd)
		return m, tea.Batch(cmds...)

	case staffNavigateToShowMsg:
		m.view = staffAppViewShow
		m.show = newStaffShowModel(msg.staff, m.providerName, m.width, m.height)
		return m, nil

	case staffNavigateToDeleteMsg:
		m.view = staffAppViewDelete
		m.deleteCard = newStaffDeleteModel(msg.staff, m.providerName, m.width, m.height)
		return m, nil

	case staffNavigateBackMsg:
		if m.view == staffAppViewList {
			return m, tea.Quit
		}
		m.view = staffAppViewList
		return m, nil

	// Actions
	case staffToggleConfirmedMsg:
		m.startAction(fmt.Sprintf("Toggling status of %s", msg.staff.ID))
		return m, tea.Batch(m.actionSpinner.Tick, func() tea.Msg {
			status, err := m.service.ToggleStatus(context.Background(), msg.staff.ID)
			return staffToggleResultMsg{staff: msg.staff, status: status, err: err}
		})

	case staffDeleteConfirmedMsg:
		m.startAction(fmt.Sprintf("Deleting %s", msg.staff.ID))
		return m, tea.Batch(m.actionSpinner.Tick, func() tea.Msg {
			err := m.service.DeleteStaff(context.Background(), msg.staff.ID)
			return staffDeleteResultMsg{staff: msg.staff, err: err}
		})

	// Results
	case staffToggleResultMsg:
		if msg.err != nil {
			m.actionIsError = true
			m.actionStatus = msg.err.Error()
			return m, nil
		}
		m.notify("status", msg.staff.ID)
		return m, m.reloadList(fmt.Sprintf("%s is now %s", msg.staff.ID, msg.status))

	case staffDeleteResultMsg:
		if msg.err != nil {
			m.actionIsError = true
			m.actionStatus = msg.err.Error()
			return m, nil
		}
		m.notify("delete", msg.staff.ID)
		return m, m.reloadList(fmt.Sprintf("Deleted %s", msg.staff.ID))
	}

	childModel, cmd := m.updateChild(msg)
	m = childModel.(staffAppModel)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *staffAppModel) startAction(label string) {
	m.view = staffAppViewAction
	m.actionLabel = label
	m.actionIsError = false
	m.actionStatus = ""
}

func (m *staffAppModel) reloadList(status string) tea.Cmd {
	m.view = staffAppViewList
	m.list.persistentStatus = status
	m.list.statusIsError = false
	m.list.err = nil
	m.list.loading = true
	return tea.Batch(m.list.spinner.Tick, m.list.loadCmd())
}

func (m staffAppModel) notify(action, id string) {
	if m.onMutation != nil {
		m.onMutation(action, id)
	}
}

func (m staffAppModel) updateChild(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var updated tea.Model
	switch m.view {
	case staffAppViewList:
		updated, cmd = m.list.Update(msg)
		m.list = updated.(staffListModel)
	case staffAppViewShow:
		updated, cmd = m.show.Update(msg)
		m.show = updated.(staffShowModel)
	case staffAppViewDelete:
		updated, cmd = m.deleteCard.Update(msg)
		m.deleteCard = updated.(staffDeleteModel)
	}
	return m, cmd
}

func (m staffAppModel) View() string {
	switch m.view {
	case staffAppViewShow:
		return m.show.View()
	case staffAppViewDelete:
		return m.deleteCard.View()
	case staffAppViewAction:
		header := components.Header(m.width, "staff > processing", m.providerName)
		content := fmt.Sprintf("\n  %s %s\n", m.actionSpinner.View(), m.actionLabel)
		if m.actionStatus != "" {
			statusStyle := styles.Value
			if m.actionIsError {
				statusStyle = styles.ErrorText
				content = fmt.Sprintf("\n  %s\n", m.actionLabel)
			}
			content += fmt.Sprintf("\n  %s\n", statusStyle.Render(m.actionStatus))
			content += "\n  " + styles.MutedText.Render("press any key to return") + "\n"
		}
		return lipgloss.JoinVertical(lipgloss.Left, header, content)
	}
	return m.list.View()
}
