package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/views"
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldArea
	fieldChoice
)

// formField keys match the flattened keys of model.TaskErrors.Fields so
// validation messages land on the right input.
type formField struct {
	key     string
	label   string
	kind    fieldKind
	input   textinput.Model
	area    textarea.Model
	options []string
	choice  int
	err     string
}

type form struct {
	fields []formField
	focus  int
}

func newTextField(key, label, value string) formField {
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = 256
	in.Width = 48
	in.SetValue(value)
	return formField{key: key, label: label, kind: fieldText, input: in, choice: -1}
}

func newAreaField(key, label, value string) formField {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.SetWidth(48)
	ta.SetHeight(3)
	ta.SetValue(value)
	return formField{key: key, label: label, kind: fieldArea, area: ta, choice: -1}
}

func newChoiceField(key, label string, options []string, value string) formField {
	f := formField{key: key, label: label, kind: fieldChoice, options: options, choice: -1}
	for i, opt := range options {
		if opt == value {
			f.choice = i
		}
	}
	return f
}

func (f formField) value() string {
	switch f.kind {
	case fieldText:
		return f.input.Value()
	case fieldArea:
		return f.area.Value()
	default:
		if f.choice < 0 || f.choice >= len(f.options) {
			return ""
		}
		return f.options[f.choice]
	}
}

func (f formField) view() string {
	switch f.kind {
	case fieldText:
		return f.input.View()
	case fieldArea:
		return f.area.View()
	default:
		if f.choice < 0 {
			return "< select with left/right >"
		}
		return fmt.Sprintf("< %s >", f.options[f.choice])
	}
}

func newForm(fields ...formField) form {
	f := form{fields: fields}
	f.focusField(0)
	return f
}

func (f *form) focusField(i int) {
	if len(f.fields) == 0 {
		return
	}
	f.focus = (i + len(f.fields)) % len(f.fields)
	for j := range f.fields {
		f.fields[j].input.Blur()
		f.fields[j].area.Blur()
	}
	switch cur := &f.fields[f.focus]; cur.kind {
	case fieldText:
		cur.input.Focus()
	case fieldArea:
		cur.area.Focus()
	}
}

func (f *form) next() { f.focusField(f.focus + 1) }
func (f *form) prev() { f.focusField(f.focus - 1) }

func (f form) focused() formField {
	return f.fields[f.focus]
}

func (f form) onLast() bool {
	return f.focus == len(f.fields)-1
}

func (f form) get(key string) string {
	for _, field := range f.fields {
		if field.key == key {
			return field.value()
		}
	}
	return ""
}

// setErrors assigns messages from a flattened error map; keys are looked up
// as prefix+field key.
func (f *form) setErrors(errs map[string]string, prefix string) {
	for i := range f.fields {
		f.fields[i].err = errs[prefix+f.fields[i].key]
	}
}

func (f *form) clearErrors() {
	f.setErrors(nil, "")
}

func (f *form) firstError() int {
	for i, field := range f.fields {
		if field.err != "" {
			return i
		}
	}
	return -1
}

// update routes a key to the focused field.
func (f form) update(msg tea.KeyMsg) form {
	cur := &f.fields[f.focus]
	switch cur.kind {
	case fieldChoice:
		switch msg.String() {
		case "right", "l", " ":
			cur.choice = (cur.choice + 1) % len(cur.options)
		case "left", "h":
			if cur.choice <= 0 {
				cur.choice = len(cur.options) - 1
			} else {
				cur.choice--
			}
		}
	case fieldArea:
		cur.area, _ = cur.area.Update(msg)
	default:
		cur.input, _ = cur.input.Update(msg)
	}
	return f
}

func (f form) data(title, hint string) views.FormData {
	out := views.FormData{Title: title, Hint: hint}
	for i, field := range f.fields {
		out.Fields = append(out.Fields, views.FormFieldData{
			Label:   field.label,
			View:    field.view(),
			Error:   field.err,
			Focused: i == f.focus,
		})
	}
	return out
}

func categoryOptions() []string {
	out := make([]string, 0, len(model.Categories()))
	for _, c := range model.Categories() {
		out = append(out, string(c))
	}
	return out
}

func subtaskCategoryOptions() []string {
	out := make([]string, 0, len(model.SubtaskCategories()))
	for _, c := range model.SubtaskCategories() {
		out = append(out, string(c))
	}
	return out
}

func newMainForm(d model.TaskDraft) form {
	return newForm(
		newTextField("date", "Date", d.Date),
		newTextField("title", "Title", d.Title),
		newAreaField("description", "Description", d.Description),
		newChoiceField("category", "Category", categoryOptions(), string(d.Category)),
		newChoiceField("subtaskRadio", "Add subtasks?", []string{string(model.SubtaskChoiceYes), string(model.SubtaskChoiceNo)}, string(d.SubtaskRadio)),
	)
}

func draftFromMainForm(f form) model.TaskDraft {
	return model.TaskDraft{
		Date:         f.get("date"),
		Title:        f.get("title"),
		Description:  f.get("description"),
		Category:     model.Category(f.get("category")),
		SubtaskRadio: model.SubtaskChoice(f.get("subtaskRadio")),
	}
}

func newSubtaskForm(s model.Subtask) form {
	return newForm(
		newTextField("title", "Subtask title", s.Title),
		newAreaField("description", "Subtask description", s.Description),
		newChoiceField("category", "Subtask category", subtaskCategoryOptions(), string(s.Category)),
		newTextField("status", "Status", s.Status),
	)
}

func subtaskFromForm(f form) model.Subtask {
	return model.Subtask{
		Title:       f.get("title"),
		Description: f.get("description"),
		Category:    model.SubtaskCategory(f.get("category")),
		Status:      f.get("status"),
	}
}

func newEditForm(t model.Task) form {
	return newForm(
		newTextField("title", "Title", t.Title),
		newAreaField("description", "Description", t.Description),
		newChoiceField("category", "Category", categoryOptions(), string(t.Category)),
	)
}

func subtaskFieldErrors(e model.SubtaskErrors) map[string]string {
	out := map[string]string{}
	put := func(k, v string) {
		if v != "" {
			out[k] = v
		}
	}
	put("title", e.Title)
	put("description", e.Description)
	put("category", e.Category)
	put("status", e.Status)
	return out
}
