package web

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/storage"
	"github.com/sandeepkv93/taskboard/internal/store"
)

func newTestServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	s, err := store.Open(context.Background(), storage.NewMemoryBackend())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return NewServer(s, zerolog.Nop()), s
}

func do(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func validDraft(title string, c model.Category) model.TaskDraft {
	return model.TaskDraft{
		Date:         "2024-03-01",
		Title:        title,
		Description:  "details",
		Category:     c,
		SubtaskRadio: model.SubtaskChoiceNo,
	}
}

func TestCreateAndGetTask(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/tasks", validDraft("Buy milk", model.CategoryUrgent))
	require.Equal(t, http.StatusCreated, rec.Code)
	var created model.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Buy milk", created.Title)

	rec = do(t, srv, http.MethodGet, "/api/tasks/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got model.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, created, got)
}

func TestCreateValidationReturnsFieldErrors(t *testing.T) {
	srv, s := newTestServer(t)

	d := validDraft("", model.CategoryUrgent)
	d.SubtaskRadio = model.SubtaskChoiceYes
	d.Subtasks = []model.Subtask{
		{Title: "a", Description: "b", Category: model.SubtaskCategoryBasic, Status: "open"},
		{Title: "c", Description: "d", Category: model.SubtaskCategoryBasic},
	}
	rec := do(t, srv, http.MethodPost, "/api/tasks", d)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "* Title Required", resp.Errors["title"])
	assert.Equal(t, "* Please enter the status of your subtask", resp.Errors["subtasks.1.status"])
	assert.NotContains(t, resp.Errors, "subtasks.0.status")
	assert.Empty(t, s.List(context.Background()))
}

func TestCreateRejectsMalformedJSON(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/tasks", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUnknownTask(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := do(t, srv, http.MethodGet, "/api/tasks/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateTask(t *testing.T) {
	srv, s := newTestServer(t)
	ctx := context.Background()
	a, err := s.Create(ctx, validDraft("a", model.CategoryUrgent))
	require.NoError(t, err)
	b, err := s.Create(ctx, validDraft("b", model.CategoryUrgent))
	require.NoError(t, err)

	edit := a
	edit.ID = "ignored"
	edit.Title = "a2"
	rec := do(t, srv, http.MethodPut, "/api/tasks/"+a.ID, edit)
	require.Equal(t, http.StatusOK, rec.Code)

	got, ok := s.FindByID(ctx, a.ID)
	require.True(t, ok)
	assert.Equal(t, "a2", got.Title)
	other, ok := s.FindByID(ctx, b.ID)
	require.True(t, ok)
	assert.Equal(t, b, other)

	rec = do(t, srv, http.MethodPut, "/api/tasks/missing", edit)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	edit.Category = "Someday"
	rec = do(t, srv, http.MethodPut, "/api/tasks/"+a.ID, edit)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestDeleteIsIdempotent(t *testing.T) {
	srv, s := newTestServer(t)
	task, err := s.Create(context.Background(), validDraft("a", model.CategoryUrgent))
	require.NoError(t, err)

	for range 2 {
		rec := do(t, srv, http.MethodDelete, "/api/tasks/"+task.ID, nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}
	assert.Empty(t, s.List(context.Background()))
}

func TestListFilterAndSearch(t *testing.T) {
	srv, s := newTestServer(t)
	ctx := context.Background()
	for _, d := range []model.TaskDraft{
		validDraft("Buy milk", model.CategoryUrgent),
		validDraft("Read book", model.CategoryFavourites),
		validDraft("Buy bread", model.CategoryUrgent),
	} {
		_, err := s.Create(ctx, d)
		require.NoError(t, err)
	}

	var tasks []model.Task
	rec := do(t, srv, http.MethodGet, "/api/tasks?category=urgent", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tasks))
	assert.Len(t, tasks, 2)

	rec = do(t, srv, http.MethodGet, "/api/tasks?category=Someday", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/search?q=MILK", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0].Title)

	rec = do(t, srv, http.MethodGet, "/api/search?q=", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestSummaryAndCategories(t *testing.T) {
	srv, s := newTestServer(t)
	ctx := context.Background()
	for _, title := range []string{"a", "b", "c", "d"} {
		_, err := s.Create(ctx, validDraft(title, model.CategoryUrgent))
		require.NoError(t, err)
	}

	var summary store.Summary
	rec := do(t, srv, http.MethodGet, "/api/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 4, summary.Total)
	require.Len(t, summary.Recent, 3)
	assert.Equal(t, "d", summary.Recent[0].Title)

	var previews []store.CategoryPreview
	rec = do(t, srv, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &previews))
	require.Len(t, previews, len(model.Categories()))
	for _, p := range previews {
		if p.Category == model.CategoryUrgent {
			assert.Equal(t, 4, p.Count)
			assert.Equal(t, []string{"a", "b"}, p.Titles)
			assert.Equal(t, 2, p.More)
		}
	}
}
