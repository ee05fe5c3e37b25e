package update

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/store"
	"github.com/sandeepkv93/taskboard/internal/views"
)

// visibleTasks is the task list screen's projection of the collection.
func (m Model) visibleTasks() []model.Task {
	if m.Filter == "" {
		return m.Tasks
	}
	return store.FilterByCategory(m.Tasks, m.Filter)
}

// dashboardRows are search results while a query is active and the recent
// tasks otherwise.
func (m Model) dashboardRows() []model.Task {
	if strings.TrimSpace(m.SearchQuery) != "" {
		return store.Search(m.Tasks, m.SearchQuery)
	}
	return store.Recent(m.Tasks, m.cfg.RecentLimit)
}

// currentRows is what "#n" refers to in palette commands.
func (m Model) currentRows() []model.Task {
	if m.CurrentView == ViewDashboard {
		return m.dashboardRows()
	}
	return m.visibleTasks()
}

func (m Model) findTask(id string) (model.Task, bool) {
	for _, t := range m.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

// resolveRef turns "#n" into the id of the n-th current row and a unique id
// prefix into the full id. Anything else is returned unchanged so the caller
// can render a not-found state.
func (m Model) resolveRef(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if strings.HasPrefix(ref, "#") {
		n, err := strconv.Atoi(strings.TrimPrefix(ref, "#"))
		rows := m.currentRows()
		if err != nil || n < 1 || n > len(rows) {
			return "", fmt.Errorf("no row %s on this screen", ref)
		}
		return rows[n-1].ID, nil
	}
	match := ""
	for _, t := range m.Tasks {
		if t.ID == ref {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			if match != "" {
				return "", fmt.Errorf("id prefix %q is ambiguous", ref)
			}
			match = t.ID
		}
	}
	if match != "" {
		return match, nil
	}
	return ref, nil
}

func taskRows(tasks []model.Task, cursor int, active bool) []views.TaskRow {
	rows := make([]views.TaskRow, 0, len(tasks))
	for i, t := range tasks {
		rows = append(rows, views.TaskRow{
			Ref:      fmt.Sprintf("#%d", i+1),
			ID:       t.ID,
			Title:    t.Title,
			Category: string(t.Category),
			Date:     t.Date,
			Subtasks: len(t.Subtasks),
			Selected: active && i == cursor,
		})
	}
	return rows
}

func (m Model) handleDashboardKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.searchActive {
		switch msg.String() {
		case "esc":
			m.searchActive = false
			m.searchInput.Blur()
			m.searchInput.SetValue("")
			m.SearchQuery = ""
		case "enter":
			m.searchActive = false
			m.searchInput.Blur()
		default:
			m.searchInput, _ = m.searchInput.Update(msg)
			m.SearchQuery = m.searchInput.Value()
			m.DashCursor = 0
		}
		return m, nil
	}

	rows := m.dashboardRows()
	switch msg.String() {
	case "s":
		m.searchActive = true
		m.searchInput.Focus()
	case "up", "k":
		if m.DashCursor > 0 {
			m.DashCursor--
		}
	case "down", "j":
		if m.DashCursor < len(rows)-1 {
			m.DashCursor++
		}
	case "enter":
		if len(rows) > 0 {
			m.returnView = ViewDashboard
			m.openDetail(rows[clamp(m.DashCursor, len(rows))].ID)
		}
	case "esc":
		m.searchInput.SetValue("")
		m.SearchQuery = ""
	}
	return m, nil
}

func (m Model) renderDashboard() string {
	summary := store.Summarize(m.Tasks, m.cfg.RecentLimit)
	cats := make([]views.CategoryCountData, 0, len(summary.Categories))
	for _, c := range summary.Categories {
		cats = append(cats, views.CategoryCountData{Name: string(c.Category), Count: c.Count})
	}
	data := views.DashboardData{
		Total:        summary.Total,
		WithSubtasks: summary.WithSubtasks,
		Categories:   cats,
		SearchView:   m.searchInput.View(),
		Query:        m.SearchQuery,
	}
	if strings.TrimSpace(m.SearchQuery) != "" {
		data.Results = taskRows(store.Search(m.Tasks, m.SearchQuery), m.DashCursor, !m.searchActive)
	} else {
		data.Recent = taskRows(summary.Recent, m.DashCursor, true)
	}
	return views.RenderDashboard(data)
}

func (m Model) handleTasksKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	rows := m.visibleTasks()
	switch msg.String() {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(rows)-1 {
			m.Cursor++
		}
	case "enter", "o":
		if len(rows) > 0 {
			m.returnView = ViewTasks
			m.openDetail(rows[m.Cursor].ID)
		}
	case "e":
		if len(rows) > 0 {
			m.returnView = ViewTasks
			m.openEditor(rows[m.Cursor].ID)
		}
	case "d":
		if len(rows) > 0 {
			return m.removeTask(rows[m.Cursor].ID)
		}
	case "c":
		m.Filter = nextCategory(m.Filter)
		m.Cursor = 0
	case "esc":
		if m.Filter != "" {
			m.Filter = ""
			m.Cursor = 0
		} else {
			m.CurrentView = ViewDashboard
		}
	}
	return m, nil
}

// nextCategory cycles all -> first category -> ... -> last -> all.
func nextCategory(c model.Category) model.Category {
	cats := model.Categories()
	if c == "" {
		return cats[0]
	}
	for i, cat := range cats {
		if cat == c && i+1 < len(cats) {
			return cats[i+1]
		}
	}
	return ""
}

func (m Model) renderTasks() string {
	return views.RenderTaskList(views.TaskListData{
		Filter: string(m.Filter),
		Rows:   taskRows(m.visibleTasks(), m.Cursor, true),
	})
}

func (m *Model) openDetail(id string) {
	m.CurrentView = ViewDetail
	m.DetailID = id
	task, ok := m.findTask(id)
	m.Missing = !ok
	if !ok {
		return
	}
	m.detailViewport.SetContent(views.RenderMarkdown(task.Description))
	m.detailViewport.GotoTop()
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace":
		m.CurrentView = m.back()
		return m, nil
	}
	if m.Missing {
		return m, nil
	}
	switch msg.String() {
	case "e":
		m.openEditor(m.DetailID)
		return m, nil
	case "d":
		next, cmd := m.removeTask(m.DetailID)
		next.CurrentView = next.back()
		return next, cmd
	}
	m.detailViewport, _ = m.detailViewport.Update(msg)
	return m, nil
}

func (m Model) back() View {
	if m.returnView == "" || m.returnView == ViewDetail || m.returnView == ViewEditor {
		return ViewTasks
	}
	return m.returnView
}

func (m Model) renderDetail() string {
	task, ok := m.findTask(m.DetailID)
	if !ok || m.Missing {
		return views.RenderNotFound(m.DetailID)
	}
	subtasks := make([]views.SubtaskData, 0, len(task.Subtasks))
	for _, st := range task.Subtasks {
		subtasks = append(subtasks, views.SubtaskData{
			Title:       st.Title,
			Description: st.Description,
			Category:    string(st.Category),
			Status:      st.Status,
		})
	}
	return views.RenderDetail(views.DetailData{
		ID:              task.ID,
		Date:            task.Date,
		Title:           task.Title,
		Category:        string(task.Category),
		SubtaskChoice:   string(task.SubtaskRadio),
		DescriptionView: m.detailViewport.View(),
		Subtasks:        subtasks,
	})
}

func (m Model) handleMenuKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	cats := model.Categories()
	switch msg.String() {
	case "up", "k":
		if m.MenuCursor > 0 {
			m.MenuCursor--
		}
	case "down", "j":
		if m.MenuCursor < len(cats)-1 {
			m.MenuCursor++
		}
	case "enter":
		m.Filter = cats[m.MenuCursor]
		m.Cursor = 0
		m.CurrentView = ViewTasks
	case "esc":
		m.CurrentView = ViewDashboard
	}
	return m, nil
}

func (m Model) renderMenu() string {
	previews := store.Previews(m.Tasks, m.cfg.PreviewLimit)
	entries := make([]views.MenuEntryData, 0, len(previews))
	for i, p := range previews {
		entries = append(entries, views.MenuEntryData{
			Name:     string(p.Category),
			Count:    p.Count,
			Titles:   p.Titles,
			More:     p.More,
			Selected: i == m.MenuCursor,
		})
	}
	return views.RenderCategoryMenu(views.MenuData{Entries: entries})
}

func (m Model) removeTask(id string) (Model, tea.Cmd) {
	if m.store == nil {
		return m, nil
	}
	if err := m.store.Remove(m.ctx, id); err != nil {
		m.setError(err)
		return m, nil
	}
	m.reload()
	return m, m.toast("Task has been deleted")
}
