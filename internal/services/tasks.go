package services

import (
	"fmt"
	"log"

	"task-board/backend/internal/models"
	"task-board/backend/internal/monitoring"
	"task-board/backend/internal/notify"
	"task-board/backend/internal/repositories"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type CreateTaskInput struct {
	Title       string
	Description string
	Category    models.Category
	OwnerID     string
}

// UpdateTaskInput uses pointers so that an omitted field is distinguishable
// from a zero value. In particular an omitted Order leaves the stored order
// untouched, while an explicit Order is applied verbatim ("move this task
// to this position").
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Category    *models.Category
	Order       *int
}

type TaskService interface {
	CreateTask(db *gorm.DB, input CreateTaskInput) (models.Task, error)
	ListTasks(db *gorm.DB, ownerID string) ([]models.Task, error)
	UpdateTask(db *gorm.DB, id uuid.UUID, input UpdateTaskInput) (models.Task, error)
	DeleteTask(db *gorm.DB, id uuid.UUID) error
}

type TaskServiceImpl struct {
	repo      repositories.TaskRepository
	publisher notify.Publisher
}

func NewTaskService(repo repositories.TaskRepository, publisher notify.Publisher) *TaskServiceImpl {
	return &TaskServiceImpl{repo: repo, publisher: publisher}
}

// assignOrder appends the new task to the end of the owner's sequence:
// previous maximum + 1, or 1 for an owner with no tasks. Two concurrent
// creates for the same owner can read the same maximum and assign the same
// order value. That race is a known, accepted limitation; the ordered list
// stays deterministic because ties are broken by creation time and id.
func (s *TaskServiceImpl) assignOrder(db *gorm.DB, ownerID string) (int, error) {
	top, found, err := s.repo.FindTopOrder(db, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to read top order: %w", err)
	}
	if !found {
		return 1, nil
	}
	return top + 1, nil
}

func (s *TaskServiceImpl) CreateTask(db *gorm.DB, input CreateTaskInput) (models.Task, error) {
	order, err := s.assignOrder(db, input.OwnerID)
	if err != nil {
		return models.Task{}, err
	}

	id, err := uuid.NewV4()
	if err != nil {
		return models.Task{}, err
	}

	task := models.Task{
		ID:          id,
		OwnerID:     input.OwnerID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Order:       order,
	}
	if err := s.repo.Insert(db, &task); err != nil {
		return models.Task{}, err
	}

	s.notifyChanged()
	return task, nil
}

func (s *TaskServiceImpl) ListTasks(db *gorm.DB, ownerID string) ([]models.Task, error) {
	return s.repo.ListByOwnerOrdered(db, ownerID)
}

func (s *TaskServiceImpl) UpdateTask(db *gorm.DB, id uuid.UUID, input UpdateTaskInput) (models.Task, error) {
	fields := map[string]interface{}{}

	if input.Title != nil {
		if *input.Title == "" {
			return models.Task{}, &models.ValidationError{Field: "title", Message: "title cannot be empty"}
		}
		if len(*input.Title) > models.TitleMaxLen {
			return models.Task{}, &models.ValidationError{Field: "title", Message: fmt.Sprintf("title exceeds %d characters", models.TitleMaxLen)}
		}
		fields["title"] = *input.Title
	}
	if input.Description != nil {
		if len(*input.Description) > models.DescriptionMaxLen {
			return models.Task{}, &models.ValidationError{Field: "description", Message: fmt.Sprintf("description exceeds %d characters", models.DescriptionMaxLen)}
		}
		fields["description"] = *input.Description
	}
	if input.Category != nil {
		if !input.Category.Valid() {
			return models.Task{}, &models.ValidationError{Field: "category", Message: "category must be one of todo, InProgress, done"}
		}
		fields["category"] = *input.Category
	}
	if input.Order != nil {
		fields["task_order"] = *input.Order
	}

	task, err := s.repo.UpdateByID(db, id, fields)
	if err != nil {
		return models.Task{}, err
	}

	s.notifyChanged()
	return task, nil
}

func (s *TaskServiceImpl) DeleteTask(db *gorm.DB, id uuid.UUID) error {
	if err := s.repo.DeleteByID(db, id); err != nil {
		return err
	}

	s.notifyChanged()
	return nil
}

// notifyChanged runs after the persistence call succeeded, never before.
// The publish is fire-and-forget: a bus failure is logged, not surfaced,
// so a mutation never fails because nobody could be told about it.
func (s *TaskServiceImpl) notifyChanged() {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(); err != nil {
		log.Printf("tasks: failed to publish change notification: %v", err)
		return
	}
	monitoring.RecordNotification()
}
