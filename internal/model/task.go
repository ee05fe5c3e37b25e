package model

import "strings"

type Category string

const (
	CategoryImportant    Category = "Important"
	CategoryNotImportant Category = "Not Important"
	CategoryUrgent       Category = "Urgent"
	CategoryNotUrgent    Category = "Not Urgent"
	CategoryCompleted    Category = "Completed"
	CategoryNotCompleted Category = "Not Completed"
	CategoryFavourites   Category = "Favourites"
)

// Categories returns every task category in display order.
func Categories() []Category {
	return []Category{
		CategoryImportant,
		CategoryNotImportant,
		CategoryUrgent,
		CategoryNotUrgent,
		CategoryCompleted,
		CategoryNotCompleted,
		CategoryFavourites,
	}
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryImportant, CategoryNotImportant, CategoryUrgent, CategoryNotUrgent,
		CategoryCompleted, CategoryNotCompleted, CategoryFavourites:
		return true
	default:
		return false
	}
}

// ParseCategory matches s against the task categories ignoring case and
// surrounding whitespace.
func ParseCategory(s string) (Category, bool) {
	trimmed := strings.TrimSpace(s)
	for _, c := range Categories() {
		if strings.EqualFold(string(c), trimmed) {
			return c, true
		}
	}
	return Category(trimmed), false
}

type SubtaskCategory string

const (
	SubtaskCategoryBasic   SubtaskCategory = "Basic"
	SubtaskCategoryComplex SubtaskCategory = "Complex"
)

func SubtaskCategories() []SubtaskCategory {
	return []SubtaskCategory{SubtaskCategoryBasic, SubtaskCategoryComplex}
}

func (c SubtaskCategory) IsValid() bool {
	switch c {
	case SubtaskCategoryBasic, SubtaskCategoryComplex:
		return true
	default:
		return false
	}
}

func ParseSubtaskCategory(s string) (SubtaskCategory, bool) {
	trimmed := strings.TrimSpace(s)
	for _, c := range SubtaskCategories() {
		if strings.EqualFold(string(c), trimmed) {
			return c, true
		}
	}
	return SubtaskCategory(trimmed), false
}

// SubtaskChoice records whether a task was created with subtasks.
type SubtaskChoice string

const (
	SubtaskChoiceYes SubtaskChoice = "yes"
	SubtaskChoiceNo  SubtaskChoice = "no"
)

func (c SubtaskChoice) IsValid() bool {
	switch c {
	case SubtaskChoiceYes, SubtaskChoiceNo:
		return true
	default:
		return false
	}
}

type Subtask struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    SubtaskCategory `json:"category"`
	Status      string          `json:"status"`
}

// Task is the persisted record. The JSON layout is the on-disk slot format
// and must not change without a migration.
type Task struct {
	ID           string        `json:"id"`
	Date         string        `json:"date"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Category     Category      `json:"category"`
	SubtaskRadio SubtaskChoice `json:"subtaskRadio"`
	Subtasks     []Subtask     `json:"subtasks,omitempty"`
}

// TaskDraft is a task that has not been assigned an id yet.
type TaskDraft struct {
	Date         string        `json:"date"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Category     Category      `json:"category"`
	SubtaskRadio SubtaskChoice `json:"subtaskRadio"`
	Subtasks     []Subtask     `json:"subtasks,omitempty"`
}

func (d TaskDraft) Task(id string) Task {
	return Task{
		ID:           id,
		Date:         d.Date,
		Title:        d.Title,
		Description:  d.Description,
		Category:     d.Category,
		SubtaskRadio: d.SubtaskRadio,
		Subtasks:     cloneSubtasks(d.Subtasks),
	}
}

func (t Task) Draft() TaskDraft {
	return TaskDraft{
		Date:         t.Date,
		Title:        t.Title,
		Description:  t.Description,
		Category:     t.Category,
		SubtaskRadio: t.SubtaskRadio,
		Subtasks:     cloneSubtasks(t.Subtasks),
	}
}

// HasSubtasks reports whether the task is flagged for subtasks and carries at
// least one.
func (t Task) HasSubtasks() bool {
	return t.SubtaskRadio == SubtaskChoiceYes && len(t.Subtasks) > 0
}

// Clone returns a deep copy so callers can mutate subtasks freely.
func (t Task) Clone() Task {
	t.Subtasks = cloneSubtasks(t.Subtasks)
	return t
}

func cloneSubtasks(in []Subtask) []Subtask {
	if len(in) == 0 {
		return nil
	}
	out := make([]Subtask, len(in))
	copy(out, in)
	return out
}
