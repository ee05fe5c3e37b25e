package views

import (
	"fmt"
	"strings"
)

type TaskRow struct {
	Ref      string
	ID       string
	Title    string
	Category string
	Date     string
	Subtasks int
	Selected bool
}

type CategoryCountData struct {
	Name  string
	Count int
}

type DashboardData struct {
	Total        int
	WithSubtasks int
	Categories   []CategoryCountData
	Recent       []TaskRow
	SearchView   string
	Query        string
	Results      []TaskRow
}

type TaskListData struct {
	Filter string
	Rows   []TaskRow
}

type SubtaskData struct {
	Title       string
	Description string
	Category    string
	Status      string
}

type DetailData struct {
	ID              string
	Date            string
	Title           string
	Category        string
	SubtaskChoice   string
	DescriptionView string
	Subtasks        []SubtaskData
}

type FormFieldData struct {
	Label   string
	View    string
	Error   string
	Focused bool
}

type FormData struct {
	Title  string
	Hint   string
	Fields []FormFieldData
}

type MenuEntryData struct {
	Name     string
	Count    int
	Titles   []string
	More     int
	Selected bool
}

type MenuData struct {
	Entries []MenuEntryData
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderDashboard(data DashboardData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("dashboard") + "\n")
	b.WriteString(fmt.Sprintf("total tasks: %d | with subtasks: %d\n", data.Total, data.WithSubtasks))

	b.WriteString("\ncategories:\n")
	for _, c := range data.Categories {
		b.WriteString(fmt.Sprintf("  %-14s %d\n", c.Name, c.Count))
	}

	b.WriteString("\nsearch: " + data.SearchView + "\n")
	if strings.TrimSpace(data.Query) != "" {
		if len(data.Results) == 0 {
			b.WriteString(mutedStyle.Render("  (no matches)") + "\n")
		}
		for _, row := range data.Results {
			b.WriteString(renderTaskRow(row) + "\n")
		}
		return strings.TrimSpace(b.String())
	}

	b.WriteString("\nrecent:\n")
	if len(data.Recent) == 0 {
		b.WriteString(mutedStyle.Render("  (no tasks yet, press n to create one)") + "\n")
	}
	for _, row := range data.Recent {
		b.WriteString(renderTaskRow(row) + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderTaskList(data TaskListData) string {
	var b strings.Builder
	filter := data.Filter
	if filter == "" {
		filter = "all"
	}
	b.WriteString(titleStyle.Render(fmt.Sprintf("tasks (category: %s)", filter)) + "\n")
	b.WriteString("actions: [enter]open [e]edit [d]delete [c]category [esc]back\n")
	if len(data.Rows) == 0 {
		b.WriteString(mutedStyle.Render("  (no tasks)"))
		return b.String()
	}
	for _, row := range data.Rows {
		b.WriteString(renderTaskRow(row) + "\n")
	}
	return strings.TrimSpace(b.String())
}

func renderTaskRow(row TaskRow) string {
	cursor := " "
	if row.Selected {
		cursor = ">"
	}
	line := fmt.Sprintf("%s %s %s [%s] %s", cursor, row.Ref, row.Title, row.Category, row.Date)
	if row.Subtasks > 0 {
		line += fmt.Sprintf(" (%d subtasks)", row.Subtasks)
	}
	return line
}

func RenderDetail(data DetailData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(data.Title) + "\n")
	b.WriteString(fmt.Sprintf("id: %s\n", data.ID))
	b.WriteString(fmt.Sprintf("date: %s\n", data.Date))
	b.WriteString(fmt.Sprintf("category: %s\n", data.Category))
	b.WriteString(fmt.Sprintf("has subtasks: %s\n", data.SubtaskChoice))
	b.WriteString("actions: [e]edit [d]delete [j/k]scroll [esc]back\n")
	b.WriteString("\ndescription:\n")
	b.WriteString(data.DescriptionView + "\n")

	if len(data.Subtasks) > 0 {
		b.WriteString("\nsubtasks:\n")
		for i, st := range data.Subtasks {
			b.WriteString(fmt.Sprintf("%d. %s [%s] status: %s\n", i+1, st.Title, st.Category, st.Status))
			if st.Description != "" {
				b.WriteString("   " + st.Description + "\n")
			}
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderNotFound(id string) string {
	return fmt.Sprintf("%s\nno task has id %q\npress esc to go back", titleStyle.Render("Task not found"), id)
}

func RenderForm(data FormData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(data.Title) + "\n")
	if data.Hint != "" {
		b.WriteString(mutedStyle.Render(data.Hint) + "\n")
	}
	for _, f := range data.Fields {
		marker := " "
		if f.Focused {
			marker = ">"
		}
		b.WriteString(fmt.Sprintf("\n%s %s:\n", marker, f.Label))
		b.WriteString("  " + strings.ReplaceAll(f.View, "\n", "\n  ") + "\n")
		if f.Error != "" {
			b.WriteString("  " + errorStyle.Render(f.Error) + "\n")
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderCategoryMenu(data MenuData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("categories") + "\n")
	b.WriteString("actions: [j/k]move [enter]open [esc]back\n")
	for _, e := range data.Entries {
		cursor := " "
		if e.Selected {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s (%d)\n", cursor, e.Name, e.Count))
		for _, title := range e.Titles {
			b.WriteString("    - " + title + "\n")
		}
		if e.More > 0 {
			b.WriteString(fmt.Sprintf("    +%d more\n", e.More))
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("[%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
