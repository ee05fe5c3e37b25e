package model

import (
	"fmt"
	"sort"
	"strings"
)

const (
	msgDateRequired        = "* Date is Required"
	msgTitleRequired       = "* Title Required"
	msgDescriptionRequired = "* Description Required"
	msgCategoryRequired    = "* Please select any one category"
	msgChoiceRequired      = "* Please select a option"

	msgSubtaskCategoryRequired = "* Please select category"
	msgSubtaskStatusRequired   = "* Please enter the status of your subtask"
)

// SubtaskErrors holds one message per invalid subtask field. An empty field
// means that field is valid.
type SubtaskErrors struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Status      string `json:"status,omitempty"`
}

func (e SubtaskErrors) Empty() bool {
	return e == SubtaskErrors{}
}

func (e SubtaskErrors) fields(prefix string, out map[string]string) {
	put := func(name, msg string) {
		if msg != "" {
			out[prefix+name] = msg
		}
	}
	put("title", e.Title)
	put("description", e.Description)
	put("category", e.Category)
	put("status", e.Status)
}

// TaskErrors holds one message per invalid task field plus per-subtask errors
// keyed by position.
type TaskErrors struct {
	Date         string                `json:"date,omitempty"`
	Title        string                `json:"title,omitempty"`
	Description  string                `json:"description,omitempty"`
	Category     string                `json:"category,omitempty"`
	SubtaskRadio string                `json:"subtaskRadio,omitempty"`
	Subtasks     map[int]SubtaskErrors `json:"subtasks,omitempty"`
}

// Empty reports whether the task and all of its subtasks are valid.
func (e TaskErrors) Empty() bool {
	return e.MainEmpty() && len(e.Subtasks) == 0
}

// MainEmpty ignores subtask errors.
func (e TaskErrors) MainEmpty() bool {
	return e.Date == "" && e.Title == "" && e.Description == "" && e.Category == "" && e.SubtaskRadio == ""
}

// Fields flattens the errors into form-style keys such as "title" or
// "subtasks.1.status".
func (e TaskErrors) Fields() map[string]string {
	out := make(map[string]string)
	put := func(name, msg string) {
		if msg != "" {
			out[name] = msg
		}
	}
	put("date", e.Date)
	put("title", e.Title)
	put("description", e.Description)
	put("category", e.Category)
	put("subtaskRadio", e.SubtaskRadio)
	for i, se := range e.Subtasks {
		se.fields(fmt.Sprintf("subtasks.%d.", i), out)
	}
	return out
}

// ValidationError is returned by store mutations when a record is incomplete.
type ValidationError struct {
	Errors TaskErrors
}

func (e *ValidationError) Error() string {
	fields := e.Errors.Fields()
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.TrimSpace(strings.TrimPrefix(fields[k], "*"))))
	}
	return "model: invalid task: " + strings.Join(parts, "; ")
}

func ValidateSubtask(s Subtask) SubtaskErrors {
	var out SubtaskErrors
	if strings.TrimSpace(s.Title) == "" {
		out.Title = msgTitleRequired
	}
	if strings.TrimSpace(s.Description) == "" {
		out.Description = msgDescriptionRequired
	}
	if !s.Category.IsValid() {
		out.Category = msgSubtaskCategoryRequired
	}
	if strings.TrimSpace(s.Status) == "" {
		out.Status = msgSubtaskStatusRequired
	}
	return out
}

// ValidateMain checks only the task's own fields.
func ValidateMain(d TaskDraft) TaskErrors {
	var out TaskErrors
	if strings.TrimSpace(d.Date) == "" {
		out.Date = msgDateRequired
	}
	if strings.TrimSpace(d.Title) == "" {
		out.Title = msgTitleRequired
	}
	if strings.TrimSpace(d.Description) == "" {
		out.Description = msgDescriptionRequired
	}
	if !d.Category.IsValid() {
		out.Category = msgCategoryRequired
	}
	if !d.SubtaskRadio.IsValid() {
		out.SubtaskRadio = msgChoiceRequired
	}
	return out
}

// ValidateDraft checks the task's fields and each subtask independently.
func ValidateDraft(d TaskDraft) TaskErrors {
	out := ValidateMain(d)
	for i, s := range d.Subtasks {
		if se := ValidateSubtask(s); !se.Empty() {
			if out.Subtasks == nil {
				out.Subtasks = make(map[int]SubtaskErrors)
			}
			out.Subtasks[i] = se
		}
	}
	return out
}

func ValidateTask(t Task) TaskErrors {
	return ValidateDraft(t.Draft())
}
