// Package taskstub is an in-memory stand-in for the Primind Tasks API.
package taskstub

import (
	"encoding/base64"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

const defaultQueue = "default"

type Handler struct {
	storage *TaskStorage
}

func NewHandler(storage *TaskStorage) *Handler {
	return &Handler{storage: storage}
}

func (h *Handler) Register(r gin.IRoutes) {
	r.POST("/tasks", h.HandleCreate)
	r.POST("/tasks/:queue", h.HandleCreate)
	r.DELETE("/tasks/:queue/:name", h.HandleDelete)
	r.GET("/tasks", h.HandleList)
}

// POST /tasks[/:queue]
func (h *Handler) HandleCreate(c *gin.Context) {
	if status := h.storage.consumeFailure(); status != 0 {
		h.storage.countCreate()
		c.JSON(status, gin.H{"error": "injected failure"})
		return
	}

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	body, err := base64.StdEncoding.DecodeString(req.Task.HTTPRequest.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be base64"})
		return
	}

	now := time.Now().UTC().Truncate(time.Second)
	scheduleTime := now
	if req.Task.ScheduleTime != "" {
		scheduleTime, err = time.Parse(time.RFC3339, req.Task.ScheduleTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scheduleTime"})
			return
		}
	}

	queue := c.Param("queue")
	if queue == "" {
		queue = defaultQueue
	}

	task := &Task{
		Queue:        queue,
		Name:         req.Task.Name,
		URL:          req.Task.HTTPRequest.URL,
		Body:         body,
		Headers:      req.Task.HTTPRequest.Headers,
		ScheduleTime: scheduleTime,
		CreateTime:   now,
	}
	if !h.storage.Add(task) {
		c.JSON(http.StatusConflict, gin.H{"error": "task already exists"})
		return
	}

	slog.Debug("stub task created",
		slog.String("queue", queue),
		slog.String("name", task.Name),
	)

	c.JSON(http.StatusCreated, taskResponse{
		Name:         task.Name,
		ScheduleTime: task.ScheduleTime.Format(time.RFC3339),
		CreateTime:   task.CreateTime.Format(time.RFC3339),
	})
}

// DELETE /tasks/:queue/:name
func (h *Handler) HandleDelete(c *gin.Context) {
	if status := h.storage.consumeFailure(); status != 0 {
		c.JSON(status, gin.H{"error": "injected failure"})
		return
	}

	if !h.storage.Delete(c.Param("name")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

// GET /tasks
func (h *Handler) HandleList(c *gin.Context) {
	tasks := h.storage.List()

	resp := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		resp = append(resp, taskResponse{
			Name:         t.Name,
			ScheduleTime: t.ScheduleTime.Format(time.RFC3339),
			CreateTime:   t.CreateTime.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, gin.H{"tasks": resp, "count": len(resp)})
}

// NewServer starts a stub server that is closed when the test ends.
func NewServer(t *testing.T) (*httptest.Server, *TaskStorage) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	storage := NewTaskStorage()
	r := gin.New()
	NewHandler(storage).Register(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return srv, storage
}
