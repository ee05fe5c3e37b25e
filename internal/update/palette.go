package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskboard/internal/commands"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		m.commandInput, _ = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
	}
	return m, nil
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var follow tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		New: func(a commands.NewArgs) (commands.Result, error) {
			m.openCreate(a.Title)
			return commands.Result{Message: "new task"}, nil
		},
		Search: func(a commands.SearchArgs) (commands.Result, error) {
			m.CurrentView = ViewDashboard
			m.searchInput.SetValue(a.Query)
			m.SearchQuery = a.Query
			m.DashCursor = 0
			return commands.Result{Message: fmt.Sprintf("%d match(es) for %q", len(m.dashboardRows()), a.Query)}, nil
		},
		Filter: func(a commands.FilterArgs) (commands.Result, error) {
			m.Filter = a.Category
			m.Cursor = 0
			m.CurrentView = ViewTasks
			if a.Category == "" {
				return commands.Result{Message: "showing all tasks"}, nil
			}
			return commands.Result{Message: fmt.Sprintf("category: %s", a.Category)}, nil
		},
		Show: func(a commands.TargetArgs) (commands.Result, error) {
			id, err := m.resolveRef(a.Ref)
			if err != nil {
				return commands.Result{}, err
			}
			m.returnView = m.CurrentView
			m.openDetail(id)
			return commands.Result{Message: "task " + id}, nil
		},
		Edit: func(a commands.TargetArgs) (commands.Result, error) {
			id, err := m.resolveRef(a.Ref)
			if err != nil {
				return commands.Result{}, err
			}
			m.openEditor(id)
			return commands.Result{Message: "editing " + id}, nil
		},
		Remove: func(a commands.TargetArgs) (commands.Result, error) {
			id, err := m.resolveRef(a.Ref)
			if err != nil {
				return commands.Result{}, err
			}
			if _, ok := m.findTask(id); !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "Task not found: " + id}
			}
			m, follow = m.removeTask(id)
			return commands.Result{Message: "removed " + id}, nil
		},
		All: func() (commands.Result, error) {
			m.Filter = ""
			m.CurrentView = ViewTasks
			return commands.Result{Message: "showing all tasks"}, nil
		},
		Home: func() (commands.Result, error) {
			m.CurrentView = ViewDashboard
			return commands.Result{Message: "dashboard"}, nil
		},
		Menu: func() (commands.Result, error) {
			m.CurrentView = ViewMenu
			return commands.Result{Message: "categories"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	if m.Status.IsError {
		return m, follow
	}
	m.Status = StatusBar{Text: res.Message}
	return m, follow
}
