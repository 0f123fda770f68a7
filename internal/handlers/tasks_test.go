package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"task-board/backend/internal/handlers"
	"task-board/backend/internal/models"
	"task-board/backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type MockTaskService struct {
	shouldReturnError bool
	returnNotFound    bool
	tasks             []models.Task
	lastUpdate        services.UpdateTaskInput
}

func (m *MockTaskService) CreateTask(db *gorm.DB, input services.CreateTaskInput) (models.Task, error) {
	if m.shouldReturnError {
		return models.Task{}, gorm.ErrInvalidData
	}
	task := models.Task{
		ID:          uuid.Must(uuid.NewV4()),
		OwnerID:     input.OwnerID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Order:       len(m.tasks) + 1,
	}
	m.tasks = append(m.tasks, task)
	return task, nil
}

func (m *MockTaskService) ListTasks(db *gorm.DB, ownerID string) ([]models.Task, error) {
	if m.shouldReturnError {
		return nil, gorm.ErrInvalidData
	}
	owned := []models.Task{}
	for _, task := range m.tasks {
		if task.OwnerID == ownerID {
			owned = append(owned, task)
		}
	}
	return owned, nil
}

func (m *MockTaskService) UpdateTask(db *gorm.DB, id uuid.UUID, input services.UpdateTaskInput) (models.Task, error) {
	if m.shouldReturnError {
		return models.Task{}, gorm.ErrInvalidData
	}
	if m.returnNotFound {
		return models.Task{}, models.ErrTaskNotFound
	}
	m.lastUpdate = input
	return models.Task{ID: id, Title: "Updated Task", Category: models.CategoryDone, Order: 1}, nil
}

func (m *MockTaskService) DeleteTask(db *gorm.DB, id uuid.UUID) error {
	if m.shouldReturnError {
		return gorm.ErrInvalidData
	}
	return nil
}

func setupTaskHandler() (*MockTaskService, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	mockService := &MockTaskService{}
	handler := handlers.NewTaskHandler(nil, mockService)
	router := gin.New()

	router.POST("/addtasks", handler.AddTask)
	router.GET("/tasksget", handler.GetTasks)
	router.PUT("/tasks/:id", handler.UpdateTask)
	router.DELETE("/tasks/:id", handler.DeleteTask)

	return mockService, router
}

func TestAddTask(t *testing.T) {
	_, router := setupTaskHandler()

	body, _ := json.Marshal(map[string]interface{}{
		"title":    "Write docs",
		"category": "todo",
		"userId":   "u1",
	})
	req, _ := http.NewRequest("POST", "/addtasks", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, w.Code)
	}

	var task models.Task
	if err := json.Unmarshal(w.Body.Bytes(), &task); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if task.Order != 1 {
		t.Errorf("expected assigned order 1, got %d", task.Order)
	}
	if task.OwnerID != "u1" {
		t.Errorf("expected owner u1, got %q", task.OwnerID)
	}
}

func TestAddTaskMissingFields(t *testing.T) {
	_, router := setupTaskHandler()

	cases := []map[string]interface{}{
		{"category": "todo", "userId": "u1"},
		{"title": "x", "userId": "u1"},
		{"title": "x", "category": "todo"},
	}
	for _, body := range cases {
		payload, _ := json.Marshal(body)
		req, _ := http.NewRequest("POST", "/addtasks", bytes.NewBuffer(payload))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status %d for %v, got %d", http.StatusBadRequest, body, w.Code)
		}
	}
}

func TestAddTaskInvalidJSON(t *testing.T) {
	_, router := setupTaskHandler()

	req, _ := http.NewRequest("POST", "/addtasks", bytes.NewBuffer([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestAddTaskStoreError(t *testing.T) {
	mockService, router := setupTaskHandler()
	mockService.shouldReturnError = true

	body, _ := json.Marshal(map[string]interface{}{
		"title":    "Write docs",
		"category": "todo",
		"userId":   "u1",
	})
	req, _ := http.NewRequest("POST", "/addtasks", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d on store error, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestGetTasks(t *testing.T) {
	mockService, router := setupTaskHandler()
	mockService.tasks = []models.Task{
		{ID: uuid.Must(uuid.NewV4()), OwnerID: "u1", Title: "A", Category: models.CategoryTodo, Order: 1},
		{ID: uuid.Must(uuid.NewV4()), OwnerID: "u1", Title: "B", Category: models.CategoryTodo, Order: 2},
		{ID: uuid.Must(uuid.NewV4()), OwnerID: "u2", Title: "C", Category: models.CategoryTodo, Order: 1},
	}

	req, _ := http.NewRequest("GET", "/tasksget?userId=u1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var tasks []models.Task
	if err := json.Unmarshal(w.Body.Bytes(), &tasks); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(tasks) != 2 {
		t.Errorf("expected 2 tasks for u1, got %d", len(tasks))
	}
}

func TestGetTasksEmptyOwner(t *testing.T) {
	_, router := setupTaskHandler()

	req, _ := http.NewRequest("GET", "/tasksget?userId=nobody", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if body := w.Body.String(); body != "[]" {
		t.Errorf("expected empty array, got %q", body)
	}
}

func TestGetTasksStoreError(t *testing.T) {
	mockService, router := setupTaskHandler()
	mockService.shouldReturnError = true

	req, _ := http.NewRequest("GET", "/tasksget?userId=u1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}

func TestUpdateTask(t *testing.T) {
	mockService, router := setupTaskHandler()

	id := uuid.Must(uuid.NewV4())
	body, _ := json.Marshal(map[string]interface{}{"category": "done"})
	req, _ := http.NewRequest("PUT", "/tasks/"+id.String(), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	if mockService.lastUpdate.Order != nil {
		t.Error("order was not in the request body and must not reach the service")
	}
	if mockService.lastUpdate.Category == nil || *mockService.lastUpdate.Category != models.CategoryDone {
		t.Error("expected category update to reach the service")
	}
}

func TestUpdateTaskWithExplicitOrder(t *testing.T) {
	mockService, router := setupTaskHandler()

	id := uuid.Must(uuid.NewV4())
	body, _ := json.Marshal(map[string]interface{}{"order": 7})
	req, _ := http.NewRequest("PUT", "/tasks/"+id.String(), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if mockService.lastUpdate.Order == nil || *mockService.lastUpdate.Order != 7 {
		t.Error("expected explicit order to reach the service verbatim")
	}
}

func TestUpdateTaskNotFound(t *testing.T) {
	mockService, router := setupTaskHandler()
	mockService.returnNotFound = true

	id := uuid.Must(uuid.NewV4())
	body, _ := json.Marshal(map[string]interface{}{"title": "x"})
	req, _ := http.NewRequest("PUT", "/tasks/"+id.String(), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestDeleteTask(t *testing.T) {
	_, router := setupTaskHandler()

	id := uuid.Must(uuid.NewV4())
	req, _ := http.NewRequest("DELETE", "/tasks/"+id.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
}

func TestDeleteTaskStoreError(t *testing.T) {
	mockService, router := setupTaskHandler()
	mockService.shouldReturnError = true

	id := uuid.Must(uuid.NewV4())
	req, _ := http.NewRequest("DELETE", "/tasks/"+id.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}
