package update

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskboard/internal/flow"
	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/store"
	"github.com/sandeepkv93/taskboard/internal/views"
)

const (
	createdMsg             = "Task has been created"
	createdWithSubtasksMsg = "Task has been created with these subtasks"
	updatedMsg             = "Task has been updated"
)

// formAction is what a key means to a form screen once navigation keys have
// been handled.
type formAction int

const (
	formNone formAction = iota
	formSubmit
	formCancel
)

// navigateForm applies the keys shared by all form screens and reports
// whether the screen should submit or cancel.
func navigateForm(f *form, msg tea.KeyMsg) formAction {
	area := f.focused().kind == fieldArea
	switch msg.String() {
	case "esc":
		return formCancel
	case "ctrl+s":
		return formSubmit
	case "tab":
		f.next()
		return formNone
	case "shift+tab":
		f.prev()
		return formNone
	case "down":
		if !area {
			f.next()
			return formNone
		}
	case "up":
		if !area {
			f.prev()
			return formNone
		}
	case "enter":
		if !area {
			if f.onLast() {
				return formSubmit
			}
			f.next()
			return formNone
		}
	}
	*f = f.update(msg)
	return formNone
}

func (m *Model) openCreate(title string) {
	m.flow = flow.New()
	m.createForm = newMainForm(model.TaskDraft{Date: m.today(), Title: title})
	m.subtaskErrs = nil
	if title != "" {
		m.createForm.focusField(2)
	}
	m.CurrentView = ViewCreate
	m.Status = StatusBar{Text: "new task"}
}

func (m Model) handleCreateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch navigateForm(&m.createForm, msg) {
	case formCancel:
		if m.flow != nil {
			m.flow.Abandon()
		}
		m.flow = nil
		m.CurrentView = ViewDashboard
		m.Status = StatusBar{Text: "draft discarded"}
		return m, nil
	case formSubmit:
		return m.submitCreate()
	}
	return m, nil
}

func (m Model) submitCreate() (tea.Model, tea.Cmd) {
	if m.flow == nil {
		m.flow = flow.New()
	}
	draft := draftFromMainForm(m.createForm)
	if err := m.flow.Edit(draft); err != nil {
		m.setError(err)
		return m, nil
	}
	m.createForm.clearErrors()

	if draft.SubtaskRadio == model.SubtaskChoiceYes {
		if err := m.flow.ContinueToSubtasks(); err != nil {
			m.showCreateErrors(err)
			return m, nil
		}
		m.subtaskIndex = 0
		m.subtaskErrs = nil
		m.subtaskForm = newSubtaskForm(m.flow.Draft().Subtasks[0])
		m.CurrentView = ViewSubtasks
		m.Status = StatusBar{Text: "add subtasks"}
		return m, nil
	}

	if m.store == nil {
		m.setError(errors.New("no store configured"))
		return m, nil
	}
	if _, err := m.flow.Submit(m.ctx, m.store); err != nil {
		m.showCreateErrors(err)
		return m, nil
	}
	return m.finishCreate(createdMsg)
}

func (m *Model) showCreateErrors(err error) {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		m.createForm.setErrors(verr.Errors.Fields(), "")
		if i := m.createForm.firstError(); i >= 0 {
			m.createForm.focusField(i)
		}
		m.Status = StatusBar{Text: "fix the highlighted fields", IsError: true}
		return
	}
	m.setError(err)
}

func (m Model) finishCreate(toast string) (tea.Model, tea.Cmd) {
	m.flow = nil
	m.subtaskErrs = nil
	m.Filter = ""
	m.reload()
	m.Cursor = clamp(len(m.Tasks)-1, len(m.Tasks))
	m.CurrentView = ViewTasks
	m.Status = StatusBar{Text: toast}
	return m, m.toast(toast)
}

func (m Model) renderCreate() string {
	return views.RenderForm(m.createForm.data("new task", "tab/enter next | left/right choose | ctrl+s save | esc discard"))
}

// saveSubtask writes the visible subtask form back into the draft.
func (m *Model) saveSubtask() error {
	return m.flow.SetSubtask(m.subtaskIndex, subtaskFromForm(m.subtaskForm))
}

func (m *Model) showSubtask(i int) {
	subtasks := m.flow.Draft().Subtasks
	m.subtaskIndex = clamp(i, len(subtasks))
	m.subtaskForm = newSubtaskForm(subtasks[m.subtaskIndex])
	m.subtaskForm.setErrors(subtaskFieldErrors(m.subtaskErrs[m.subtaskIndex]), "")
}

func (m Model) handleSubtaskKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.flow == nil {
		m.CurrentView = ViewDashboard
		return m, nil
	}
	switch msg.String() {
	case "ctrl+n":
		if err := m.saveSubtask(); err != nil {
			m.setError(err)
			return m, nil
		}
		i, err := m.flow.AddSubtask()
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.showSubtask(i)
		m.Status = StatusBar{Text: fmt.Sprintf("subtask %d added", i+1)}
		return m, nil
	case "ctrl+d":
		if err := m.flow.RemoveSubtask(m.subtaskIndex); err != nil {
			m.setError(err)
			return m, nil
		}
		m.subtaskErrs = nil
		m.showSubtask(m.subtaskIndex)
		m.Status = StatusBar{Text: "subtask removed"}
		return m, nil
	case "pgdown", "pgup":
		if err := m.saveSubtask(); err != nil {
			m.setError(err)
			return m, nil
		}
		step := 1
		if msg.String() == "pgup" {
			step = -1
		}
		m.showSubtask(m.subtaskIndex + step)
		return m, nil
	}

	switch navigateForm(&m.subtaskForm, msg) {
	case formCancel:
		if err := m.saveSubtask(); err != nil {
			m.setError(err)
			return m, nil
		}
		if err := m.flow.Back(); err != nil {
			m.setError(err)
			return m, nil
		}
		m.createForm = newMainForm(m.flow.Draft())
		m.CurrentView = ViewCreate
		return m, nil
	case formSubmit:
		return m.commitSubtasks()
	}
	return m, nil
}

func (m Model) commitSubtasks() (tea.Model, tea.Cmd) {
	if err := m.saveSubtask(); err != nil {
		m.setError(err)
		return m, nil
	}
	if m.store == nil {
		m.setError(errors.New("no store configured"))
		return m, nil
	}
	_, err := m.flow.Commit(m.ctx, m.store)
	if err == nil {
		return m.finishCreate(createdWithSubtasksMsg)
	}

	var verr *model.ValidationError
	if !errors.As(err, &verr) {
		m.setError(err)
		return m, nil
	}
	if !verr.Errors.MainEmpty() {
		if err := m.flow.Back(); err != nil {
			m.setError(err)
			return m, nil
		}
		m.createForm = newMainForm(m.flow.Draft())
		m.CurrentView = ViewCreate
		m.showCreateErrors(verr)
		return m, nil
	}
	m.subtaskErrs = verr.Errors.Subtasks
	first := -1
	for i := range m.flow.Draft().Subtasks {
		if _, ok := m.subtaskErrs[i]; ok {
			first = i
			break
		}
	}
	if first >= 0 {
		m.showSubtask(first)
		m.Status = StatusBar{Text: fmt.Sprintf("subtask %d has errors", first+1), IsError: true}
	}
	return m, nil
}

func (m Model) renderSubtasks() string {
	total := len(m.flow.Draft().Subtasks)
	title := fmt.Sprintf("subtask %d of %d for %q", m.subtaskIndex+1, total, m.flow.Draft().Title)
	return views.RenderForm(m.subtaskForm.data(title, "ctrl+n add | ctrl+d remove | pgup/pgdown switch | ctrl+s save task | esc back"))
}

func (m *Model) openEditor(id string) {
	if m.CurrentView != ViewEditor && m.CurrentView != ViewDetail {
		m.returnView = m.CurrentView
	}
	m.DetailID = id
	if m.store == nil {
		m.Missing = true
		m.CurrentView = ViewDetail
		return
	}
	task, ok := m.store.FindByID(m.ctx, id)
	if !ok {
		m.Missing = true
		m.CurrentView = ViewDetail
		return
	}
	m.Missing = false
	m.editForm = newEditForm(task)
	m.CurrentView = ViewEditor
}

func (m Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch navigateForm(&m.editForm, msg) {
	case formCancel:
		m.openDetail(m.DetailID)
		return m, nil
	case formSubmit:
		return m.submitEdit()
	}
	return m, nil
}

func (m Model) submitEdit() (tea.Model, tea.Cmd) {
	task, ok := m.store.FindByID(m.ctx, m.DetailID)
	if !ok {
		m.Missing = true
		m.CurrentView = ViewDetail
		return m, nil
	}
	task.Title = m.editForm.get("title")
	task.Description = m.editForm.get("description")
	task.Category = model.Category(m.editForm.get("category"))

	if _, err := m.store.Update(m.ctx, m.DetailID, task); err != nil {
		var verr *model.ValidationError
		switch {
		case errors.As(err, &verr):
			m.editForm.setErrors(verr.Errors.Fields(), "")
			if i := m.editForm.firstError(); i >= 0 {
				m.editForm.focusField(i)
			}
			m.Status = StatusBar{Text: "fix the highlighted fields", IsError: true}
		case errors.Is(err, store.ErrNotFound):
			m.Missing = true
			m.CurrentView = ViewDetail
		default:
			m.setError(err)
		}
		return m, nil
	}
	m.reload()
	m.openDetail(m.DetailID)
	m.Status = StatusBar{Text: updatedMsg}
	return m, m.toast(updatedMsg)
}

func (m Model) renderEditor() string {
	return views.RenderForm(m.editForm.data("edit task "+m.DetailID, "tab/enter next | ctrl+s save | esc cancel"))
}
