package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskboard/internal/views"
	"github.com/sandeepkv93/taskboard/internal/watch"
)

func (m Model) Init() tea.Cmd {
	if m.watcher != nil {
		return waitForChangeCmd(m.watcher.C())
	}
	return nil
}

func waitForChangeCmd(ch <-chan watch.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return StoreChangedMsg{Event: ev}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		if typed.Width > 20 {
			m.detailViewport.Width = typed.Width/2 - 4
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(typed)
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
			if typed.View == ViewDetail {
				m.openDetail(m.DetailID)
			}
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.setError(typed.Err)
		return m, nil
	case StoreChangedMsg:
		m.reload()
		m.Status = StatusBar{Text: "tasks reloaded"}
		if m.watcher != nil {
			return m, waitForChangeCmd(m.watcher.C())
		}
		return m, nil
	case toastExpiredMsg:
		if typed.seq == m.toastSeq {
			m.Toast = ""
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}

	if m.Palette.Active {
		return m.handlePaletteKey(msg)
	}

	switch m.CurrentView {
	case ViewCreate:
		return m.handleCreateKey(msg)
	case ViewSubtasks:
		return m.handleSubtaskKey(msg)
	case ViewEditor:
		return m.handleEditorKey(msg)
	}

	if m.CurrentView == ViewDashboard && m.searchActive {
		return m.handleDashboardKey(msg)
	}

	switch keyStr {
	case "/":
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.Focus()
		m.commandInput.SetValue("")
		m.Status = StatusBar{Text: "command palette active"}
		return m, nil
	case m.Keys.Dashboard:
		m.CurrentView = ViewDashboard
		return m, nil
	case m.Keys.Tasks:
		m.CurrentView = ViewTasks
		return m, nil
	case m.Keys.Menu:
		m.CurrentView = ViewMenu
		return m, nil
	case m.Keys.New:
		m.openCreate("")
		return m, nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		if m.HelpVisible {
			m.Status = StatusBar{Text: "help shown"}
		} else {
			m.Status = StatusBar{Text: "help hidden"}
		}
		return m, nil
	case "r":
		m.reload()
		m.Status = StatusBar{Text: "tasks reloaded"}
		return m, nil
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	}

	switch m.CurrentView {
	case ViewDashboard:
		return m.handleDashboardKey(msg)
	case ViewTasks:
		return m.handleTasksKey(msg)
	case ViewDetail:
		return m.handleDetailKey(msg)
	case ViewMenu:
		return m.handleMenuKey(msg)
	}
	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := ""
	switch m.CurrentView {
	case ViewDashboard:
		leftPane = m.renderDashboard()
	case ViewTasks:
		leftPane = m.renderTasks()
	case ViewDetail:
		leftPane = m.renderDetail()
	case ViewMenu:
		leftPane = m.renderMenu()
	case ViewCreate:
		leftPane = m.renderCreate()
	case ViewSubtasks:
		leftPane = m.renderSubtasks()
	case ViewEditor:
		leftPane = m.renderEditor()
	}
	rightPane := strings.TrimSpace(strings.Join([]string{
		m.renderCommandPalette(),
		m.renderHelpIfVisible(),
	}, "\n"))

	notification := ""
	if m.Toast != "" {
		notification = views.RenderNotification("info", m.Toast)
	}

	return views.RenderApp(views.AppData{
		Width:        m.width,
		Header:       fmt.Sprintf("taskboard | view: %s | tasks: %d", m.CurrentView, len(m.Tasks)),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: notification,
		Footer:       fmt.Sprintf("keys: %s dashboard | %s tasks | %s categories | %s new | / cmd | %s help | %s quit", m.Keys.Dashboard, m.Keys.Tasks, m.Keys.Menu, m.Keys.New, m.Keys.Help, m.Keys.Quit),
	})
}

func isKnownView(v View) bool {
	switch v {
	case ViewDashboard, ViewTasks, ViewDetail, ViewMenu:
		return true
	default:
		return false
	}
}
