// Package mcp serves the task store as MCP tools over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/store"
)

const Version = "0.1.0"

// NewServer registers one tool per store operation.
func NewServer(s *store.Store, now func() time.Time) *server.MCPServer {
	if now == nil {
		now = time.Now
	}
	srv := server.NewMCPServer("taskboard", Version)

	srv.AddTool(mcp.NewTool("list_tasks",
		mcp.WithDescription("List tasks in creation order, optionally limited to one category."),
		mcp.WithString("category", mcp.Description("Category name, e.g. 'Urgent' or 'Not Completed'")),
	), listTasksHandler(s))

	srv.AddTool(mcp.NewTool("get_task",
		mcp.WithDescription("Get a single task by id."),
		mcp.WithString("id", mcp.Description("Task id"), mcp.Required()),
	), getTaskHandler(s))

	srv.AddTool(mcp.NewTool("create_task",
		mcp.WithDescription("Create a task. Every field is required; subtasks are optional."),
		mcp.WithString("title", mcp.Description("Task title"), mcp.Required()),
		mcp.WithString("description", mcp.Description("Task description"), mcp.Required()),
		mcp.WithString("category", mcp.Description("One of: "+categoryList()), mcp.Required()),
		mcp.WithString("date", mcp.Description("Task date, defaults to today (YYYY-MM-DD)")),
		mcp.WithString("subtasks", mcp.Description(`JSON array of {"title","description","category":"Basic|Complex","status"}`)),
	), createTaskHandler(s, now))

	srv.AddTool(mcp.NewTool("update_task",
		mcp.WithDescription("Update fields of an existing task. Omitted fields keep their value."),
		mcp.WithString("id", mcp.Description("Task id"), mcp.Required()),
		mcp.WithString("title", mcp.Description("New title")),
		mcp.WithString("description", mcp.Description("New description")),
		mcp.WithString("category", mcp.Description("New category")),
		mcp.WithString("date", mcp.Description("New date")),
	), updateTaskHandler(s))

	srv.AddTool(mcp.NewTool("delete_task",
		mcp.WithDescription("Delete a task. Deleting an unknown id succeeds."),
		mcp.WithString("id", mcp.Description("Task id"), mcp.Required()),
	), deleteTaskHandler(s))

	srv.AddTool(mcp.NewTool("search_tasks",
		mcp.WithDescription("Case-insensitive search over titles, descriptions, categories, dates and subtasks."),
		mcp.WithString("query", mcp.Description("Search text"), mcp.Required()),
	), searchTasksHandler(s))

	srv.AddTool(mcp.NewTool("summary",
		mcp.WithDescription("Totals, tasks with subtasks, per-category counts and the most recent tasks."),
	), summaryHandler(s))

	return srv
}

// Serve starts the MCP server on stdio.
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

func categoryList() string {
	names := make([]string, 0, len(model.Categories()))
	for _, c := range model.Categories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}

// errorResult turns store errors into tool errors. Validation failures list
// every field message so the caller can fix all of them at once.
func errorResult(err error) *mcp.CallToolResult {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		fields := verr.Errors.Fields()
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		lines := make([]string, 0, len(keys))
		for _, k := range keys {
			lines = append(lines, fmt.Sprintf("%s: %s", k, fields[k]))
		}
		return mcp.NewToolResultError("validation failed\n" + strings.Join(lines, "\n"))
	}
	if errors.Is(err, store.ErrNotFound) {
		return mcp.NewToolResultError("Task not found")
	}
	return mcp.NewToolResultError(err.Error())
}

func listTasksHandler(s *store.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw := strings.TrimSpace(mcp.ParseString(request, "category", ""))
		if raw == "" {
			return jsonResult(map[string]any{"tasks": s.List(ctx)})
		}
		c, ok := model.ParseCategory(raw)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("unknown category '%s', expected one of: %s", raw, categoryList())), nil
		}
		return jsonResult(map[string]any{"tasks": s.FilterByCategory(ctx, c)})
	}
}

func getTaskHandler(s *store.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := mcp.ParseString(request, "id", "")
		task, ok := s.FindByID(ctx, id)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("Task with id '%s' not found", id)), nil
		}
		return jsonResult(task)
	}
}

func createTaskHandler(s *store.Store, now func() time.Time) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		d := model.TaskDraft{
			Date:         mcp.ParseString(request, "date", ""),
			Title:        mcp.ParseString(request, "title", ""),
			Description:  mcp.ParseString(request, "description", ""),
			SubtaskRadio: model.SubtaskChoiceNo,
		}
		if strings.TrimSpace(d.Date) == "" {
			d.Date = now().Format(time.DateOnly)
		}
		d.Category, _ = model.ParseCategory(mcp.ParseString(request, "category", ""))

		if raw := strings.TrimSpace(mcp.ParseString(request, "subtasks", "")); raw != "" {
			if err := json.Unmarshal([]byte(raw), &d.Subtasks); err != nil {
				return mcp.NewToolResultError("subtasks must be a JSON array: " + err.Error()), nil
			}
			if len(d.Subtasks) > 0 {
				d.SubtaskRadio = model.SubtaskChoiceYes
			}
		}

		task, err := s.Create(ctx, d)
		if err != nil {
			return errorResult(err), nil
		}
		return jsonResult(task)
	}
}

func updateTaskHandler(s *store.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := mcp.ParseString(request, "id", "")
		task, ok := s.FindByID(ctx, id)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("Task with id '%s' not found", id)), nil
		}

		args, _ := request.Params.Arguments.(map[string]any)
		if v, ok := args["title"].(string); ok {
			task.Title = v
		}
		if v, ok := args["description"].(string); ok {
			task.Description = v
		}
		if v, ok := args["date"].(string); ok {
			task.Date = v
		}
		if v, ok := args["category"].(string); ok {
			task.Category, _ = model.ParseCategory(v)
		}

		updated, err := s.Update(ctx, id, task)
		if err != nil {
			return errorResult(err), nil
		}
		return jsonResult(updated)
	}
}

func deleteTaskHandler(s *store.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := mcp.ParseString(request, "id", "")
		if err := s.Remove(ctx, id); err != nil {
			return errorResult(err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Task '%s' deleted", id)), nil
	}
}

func searchTasksHandler(s *store.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := mcp.ParseString(request, "query", "")
		tasks := s.Search(ctx, query)
		if tasks == nil {
			tasks = []model.Task{}
		}
		return jsonResult(map[string]any{"tasks": tasks})
	}
}

func summaryHandler(s *store.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(s.Summary(ctx, store.DefaultRecentLimit))
	}
}
