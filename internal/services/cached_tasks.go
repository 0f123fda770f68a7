package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"task-board/backend/internal/cache"
	"task-board/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

const ownerTasksTTL = 15 * time.Minute

// CachedTaskService caches each owner's ordered task list and drops that
// owner's entry on every mutation, so a client re-fetching after a change
// notification always sees state at least as fresh as the mutation that
// triggered it. Cache failures degrade to the database silently.
type CachedTaskService struct {
	taskService TaskService
	cache       cache.Cache
}

func NewCachedTaskService(taskService TaskService, cacheInstance cache.Cache) *CachedTaskService {
	return &CachedTaskService{taskService: taskService, cache: cacheInstance}
}

func ownerTasksKey(ownerID string) string {
	return fmt.Sprintf("owner_tasks:%s", ownerID)
}

func (s *CachedTaskService) CreateTask(db *gorm.DB, input CreateTaskInput) (models.Task, error) {
	task, err := s.taskService.CreateTask(db, input)
	if err != nil {
		return models.Task{}, err
	}

	s.invalidateOwner(task.OwnerID)
	return task, nil
}

func (s *CachedTaskService) ListTasks(db *gorm.DB, ownerID string) ([]models.Task, error) {
	key := ownerTasksKey(ownerID)

	var cached []models.Task
	if err := s.cache.Get(key, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		log.Printf("tasks: cache read for %s failed: %v", key, err)
	}

	tasks, err := s.taskService.ListTasks(db, ownerID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(key, tasks, ownerTasksTTL); err != nil {
		log.Printf("tasks: cache write for %s failed: %v", key, err)
	}
	return tasks, nil
}

func (s *CachedTaskService) UpdateTask(db *gorm.DB, id uuid.UUID, input UpdateTaskInput) (models.Task, error) {
	task, err := s.taskService.UpdateTask(db, id, input)
	if err != nil {
		return models.Task{}, err
	}

	s.invalidateOwner(task.OwnerID)
	return task, nil
}

func (s *CachedTaskService) DeleteTask(db *gorm.DB, id uuid.UUID) error {
	// Look the task up first; after the delete there is no row left to
	// tell us which owner's cache entry to drop.
	var ownerID string
	var task models.Task
	if err := db.Where("id = ?", id).First(&task).Error; err == nil {
		ownerID = task.OwnerID
	}

	if err := s.taskService.DeleteTask(db, id); err != nil {
		return err
	}

	if ownerID != "" {
		s.invalidateOwner(ownerID)
	}
	return nil
}

func (s *CachedTaskService) invalidateOwner(ownerID string) {
	if err := s.cache.Delete(ownerTasksKey(ownerID)); err != nil {
		log.Printf("tasks: cache invalidation for owner %s failed: %v", ownerID, err)
	}
}
