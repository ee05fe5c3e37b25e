package views

import (
	"strings"
	"testing"
)

func TestRenderDashboardShowsRecentOrResults(t *testing.T) {
	data := DashboardData{
		Total:        2,
		WithSubtasks: 1,
		Categories:   []CategoryCountData{{Name: "Urgent", Count: 2}},
		Recent:       []TaskRow{{Ref: "#1", Title: "Buy milk", Category: "Urgent", Date: "2024-03-01", Selected: true}},
	}
	out := RenderDashboard(data)
	for _, want := range []string{"total tasks: 2 | with subtasks: 1", "Urgent", "recent:", "> #1 Buy milk [Urgent]"} {
		if !strings.Contains(out, want) {
			t.Fatalf("dashboard missing %q:\n%s", want, out)
		}
	}

	data.Query = "bread"
	out = RenderDashboard(data)
	if !strings.Contains(out, "(no matches)") || strings.Contains(out, "recent:") {
		t.Fatalf("expected empty search results instead of recent:\n%s", out)
	}
}

func TestRenderTaskListEmpty(t *testing.T) {
	out := RenderTaskList(TaskListData{Filter: "Completed"})
	if !strings.Contains(out, "category: Completed") || !strings.Contains(out, "(no tasks)") {
		t.Fatalf("unexpected empty list render:\n%s", out)
	}
}

func TestRenderDetailListsSubtasks(t *testing.T) {
	out := RenderDetail(DetailData{
		ID:            "abc",
		Title:         "Plan trip",
		Category:      "Important",
		SubtaskChoice: "yes",
		Subtasks: []SubtaskData{
			{Title: "flights", Category: "Basic", Status: "open", Description: "compare prices"},
		},
	})
	for _, want := range []string{"id: abc", "has subtasks: yes", "1. flights [Basic] status: open", "compare prices"} {
		if !strings.Contains(out, want) {
			t.Fatalf("detail missing %q:\n%s", want, out)
		}
	}
}

func TestRenderFormShowsErrors(t *testing.T) {
	out := RenderForm(FormData{
		Title: "new task",
		Fields: []FormFieldData{
			{Label: "Title", View: "", Error: "* Title Required", Focused: true},
			{Label: "Category", View: "Urgent"},
		},
	})
	if !strings.Contains(out, "> Title:") || !strings.Contains(out, "* Title Required") {
		t.Fatalf("form missing focused field or error:\n%s", out)
	}
}

func TestRenderCategoryMenuOverflow(t *testing.T) {
	out := RenderCategoryMenu(MenuData{Entries: []MenuEntryData{
		{Name: "Urgent", Count: 3, Titles: []string{"a", "b"}, More: 1, Selected: true},
		{Name: "Completed"},
	}})
	for _, want := range []string{"> Urgent (3)", "- a", "- b", "+1 more", "  Completed (0)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("menu missing %q:\n%s", want, out)
		}
	}
}

func TestRenderAppSinglePaneWhenNoSidebar(t *testing.T) {
	out := RenderApp(AppData{
		Header:       "taskboard",
		LeftPane:     "body",
		StatusLine:   "ready",
		Notification: "[INFO] Task has been created",
		Footer:       "keys",
	})
	for _, want := range []string{"taskboard", "body", "ready", "Task has been created", "keys"} {
		if !strings.Contains(out, want) {
			t.Fatalf("app missing %q:\n%s", want, out)
		}
	}
}

func TestRenderMarkdownEmpty(t *testing.T) {
	if got := RenderMarkdown("   "); got != "" {
		t.Fatalf("expected empty markdown render, got %q", got)
	}
}
