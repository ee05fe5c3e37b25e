package store

import (
	"strings"

	"github.com/sandeepkv93/taskboard/internal/model"
)

const (
	DefaultRecentLimit  = 3
	DefaultPreviewLimit = 2
)

type CategoryCount struct {
	Category model.Category `json:"category"`
	Count    int            `json:"count"`
}

// CategoryPreview is the header menu entry for one category.
type CategoryPreview struct {
	Category model.Category `json:"category"`
	Count    int            `json:"count"`
	Titles   []string       `json:"titles"`
	More     int            `json:"more"`
}

type Summary struct {
	Total        int             `json:"total"`
	WithSubtasks int             `json:"withSubtasks"`
	Recent       []model.Task    `json:"recent"`
	Categories   []CategoryCount `json:"categories"`
}

// Matches reports whether query occurs in the task's title, description,
// category or date, or in any subtask title or description. Text fields are
// compared case-insensitively.
func Matches(t model.Task, query string) bool {
	q := strings.ToLower(query)
	if containsFold(t.Title, q) || containsFold(t.Description, q) || containsFold(string(t.Category), q) {
		return true
	}
	if strings.Contains(t.Date, q) {
		return true
	}
	for _, st := range t.Subtasks {
		if containsFold(st.Title, q) || containsFold(st.Description, q) {
			return true
		}
	}
	return false
}

func containsFold(s, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(s), lowerQuery)
}

// Search returns matching tasks in collection order. A blank query matches
// nothing.
func Search(tasks []model.Task, query string) []model.Task {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	out := make([]model.Task, 0)
	for _, t := range tasks {
		if Matches(t, query) {
			out = append(out, t)
		}
	}
	return out
}

func FilterByCategory(tasks []model.Task, c model.Category) []model.Task {
	out := make([]model.Task, 0)
	for _, t := range tasks {
		if t.Category == c {
			out = append(out, t)
		}
	}
	return out
}

// Tally counts tasks per category, covering every category in display order.
func Tally(tasks []model.Task) []CategoryCount {
	counts := make(map[model.Category]int, len(tasks))
	for _, t := range tasks {
		counts[t.Category]++
	}
	out := make([]CategoryCount, 0, len(model.Categories()))
	for _, c := range model.Categories() {
		out = append(out, CategoryCount{Category: c, Count: counts[c]})
	}
	return out
}

// Recent returns the last n tasks, newest first.
func Recent(tasks []model.Task, n int) []model.Task {
	if n <= 0 || len(tasks) == 0 {
		return []model.Task{}
	}
	if n > len(tasks) {
		n = len(tasks)
	}
	out := make([]model.Task, 0, n)
	for i := len(tasks) - 1; i >= len(tasks)-n; i-- {
		out = append(out, tasks[i])
	}
	return out
}

// CountWithSubtasks counts tasks flagged for subtasks.
func CountWithSubtasks(tasks []model.Task) int {
	n := 0
	for _, t := range tasks {
		if t.SubtaskRadio == model.SubtaskChoiceYes {
			n++
		}
	}
	return n
}

// Previews lists, per category, the first limit titles and how many more
// tasks the category holds.
func Previews(tasks []model.Task, limit int) []CategoryPreview {
	if limit < 0 {
		limit = 0
	}
	out := make([]CategoryPreview, 0, len(model.Categories()))
	for _, c := range model.Categories() {
		in := FilterByCategory(tasks, c)
		p := CategoryPreview{Category: c, Count: len(in), Titles: []string{}}
		for i, t := range in {
			if i >= limit {
				break
			}
			p.Titles = append(p.Titles, t.Title)
		}
		p.More = len(in) - len(p.Titles)
		out = append(out, p)
	}
	return out
}

func Summarize(tasks []model.Task, recentLimit int) Summary {
	return Summary{
		Total:        len(tasks),
		WithSubtasks: CountWithSubtasks(tasks),
		Recent:       Recent(tasks, recentLimit),
		Categories:   Tally(tasks),
	}
}
