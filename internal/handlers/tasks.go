package handlers

import (
	"errors"
	"net/http"

	"task-board/backend/internal/models"
	"task-board/backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type TaskHandler struct {
	db          *gorm.DB
	taskService services.TaskService
}

func NewTaskHandler(db *gorm.DB, taskService services.TaskService) *TaskHandler {
	return &TaskHandler{db: db, taskService: taskService}
}

// AddTask handles POST /addtasks.
func (h *TaskHandler) AddTask(c *gin.Context) {
	var input struct {
		Title       string          `json:"title"`
		Description string          `json:"description"`
		Category    models.Category `json:"category"`
		OwnerID     string          `json:"userId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Title == "" || input.Category == "" || input.OwnerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title, category, and userId are required"})
		return
	}

	task, err := h.taskService.CreateTask(h.db, services.CreateTaskInput{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		OwnerID:     input.OwnerID,
	})
	if err != nil {
		// The create surface reports store failures as 400, matching the
		// upstream API contract.
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, task)
}

// GetTasks handles GET /tasksget?userId=… and returns the owner's tasks
// ascending by order. An owner with no tasks gets an empty array.
func (h *TaskHandler) GetTasks(c *gin.Context) {
	ownerID := c.Query("userId")

	tasks, err := h.taskService.ListTasks(h.db, ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// UpdateTask handles PUT /tasks/:id. Only fields present in the body are
// merged; an absent order never resets the stored one.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	var input struct {
		Title       *string          `json:"title"`
		Description *string          `json:"description"`
		Category    *models.Category `json:"category"`
		Order       *int             `json:"order"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskService.UpdateTask(h.db, id, services.UpdateTaskInput{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Order:       input.Order,
	})
	if err != nil {
		handleTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask handles DELETE /tasks/:id. Deleting an id that does not exist
// still succeeds; the route always confirms.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "invalid task id"})
		return
	}

	if err := h.taskService.DeleteTask(h.db, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

func handleTaskError(c *gin.Context, err error) {
	var verr *models.ValidationError
	switch {
	case errors.Is(err, models.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
