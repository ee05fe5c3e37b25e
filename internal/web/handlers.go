package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/store"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Errors map[string]string `json:"errors,omitempty"`
}

func (s *Server) fail(c *gin.Context, err error) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, errorResponse{
			Error:  "validation failed",
			Errors: verr.Errors.Fields(),
		})
	case errors.Is(err, store.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, errorResponse{Error: "task not found"})
	case errors.Is(err, store.ErrClosed):
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
	default:
		s.logger.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func nonNil(tasks []model.Task) []model.Task {
	if tasks == nil {
		return []model.Task{}
	}
	return tasks
}

func (s *Server) handleList(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("category"))
	if raw == "" {
		c.JSON(http.StatusOK, nonNil(s.store.List(c)))
		return
	}
	category, ok := model.ParseCategory(raw)
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: "unknown category: " + raw})
		return
	}
	c.JSON(http.StatusOK, nonNil(s.store.FilterByCategory(c, category)))
}

func (s *Server) handleCreate(c *gin.Context) {
	var draft model.TaskDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		s.logger.Debug().Err(err).Msg("failed to bind json")
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: "invalid json body"})
		return
	}
	task, err := s.store.Create(c, draft)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.logger.Info().Str("task_id", task.ID).Msg("created task")
	c.JSON(http.StatusCreated, task)
}

func (s *Server) handleGet(c *gin.Context) {
	task, ok := s.store.FindByID(c, c.Param("id"))
	if !ok {
		s.fail(c, store.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, task)
}

// handleUpdate replaces the whole record. The id in the path wins over any
// id in the body.
func (s *Server) handleUpdate(c *gin.Context) {
	var task model.Task
	if err := c.ShouldBindJSON(&task); err != nil {
		s.logger.Debug().Err(err).Msg("failed to bind json")
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: "invalid json body"})
		return
	}
	updated, err := s.store.Update(c, c.Param("id"), task)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.logger.Info().Str("task_id", updated.ID).Msg("updated task")
	c.JSON(http.StatusOK, updated)
}

func (s *Server) handleDelete(c *gin.Context) {
	if err := s.store.Remove(c, c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleSearch(c *gin.Context) {
	c.JSON(http.StatusOK, nonNil(s.store.Search(c, c.Query("q"))))
}

func (s *Server) handleSummary(c *gin.Context) {
	summary := s.store.Summary(c, s.recentLimit)
	summary.Recent = nonNil(summary.Recent)
	c.JSON(http.StatusOK, summary)
}

func (s *Server) handleCategories(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Previews(c, s.previewLimit))
}
