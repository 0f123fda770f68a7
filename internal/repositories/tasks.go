package repositories

import (
	"errors"

	"task-board/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// TaskRepository is the persistent task collection. It knows nothing about
// order assignment; callers decide what order value a task gets.
type TaskRepository interface {
	Insert(db *gorm.DB, task *models.Task) error
	FindByID(db *gorm.DB, id uuid.UUID) (models.Task, error)
	FindByOwner(db *gorm.DB, ownerID string) ([]models.Task, error)
	FindTopOrder(db *gorm.DB, ownerID string) (int, bool, error)
	UpdateByID(db *gorm.DB, id uuid.UUID, fields map[string]interface{}) (models.Task, error)
	DeleteByID(db *gorm.DB, id uuid.UUID) error
	ListByOwnerOrdered(db *gorm.DB, ownerID string) ([]models.Task, error)
	CountByOwner(db *gorm.DB, ownerID string) (int64, error)
}

type GormTaskRepository struct{}

func NewTaskRepository() *GormTaskRepository {
	return &GormTaskRepository{}
}

func (r *GormTaskRepository) Insert(db *gorm.DB, task *models.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}
	return db.Create(task).Error
}

func (r *GormTaskRepository) FindByID(db *gorm.DB, id uuid.UUID) (models.Task, error) {
	var task models.Task
	err := db.Where("id = ?", id).First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Task{}, models.ErrTaskNotFound
	}
	return task, err
}

func (r *GormTaskRepository) FindByOwner(db *gorm.DB, ownerID string) ([]models.Task, error) {
	var tasks []models.Task
	err := db.Where("user_id = ?", ownerID).Find(&tasks).Error
	return tasks, err
}

// FindTopOrder reports the highest order value among the owner's tasks.
// The second return is false when the owner has no tasks at all.
func (r *GormTaskRepository) FindTopOrder(db *gorm.DB, ownerID string) (int, bool, error) {
	var task models.Task
	err := db.Where("user_id = ?", ownerID).Order("task_order DESC").First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return task.Order, true, nil
}

// UpdateByID merges fields into the stored record and returns the result.
// Callers build the fields map from explicitly supplied input only, so an
// omitted order can never be nulled out. id, user_id and created_at are
// immutable and must not appear in fields.
func (r *GormTaskRepository) UpdateByID(db *gorm.DB, id uuid.UUID, fields map[string]interface{}) (models.Task, error) {
	var task models.Task
	if err := db.Where("id = ?", id).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, models.ErrTaskNotFound
		}
		return models.Task{}, err
	}

	if len(fields) > 0 {
		if err := db.Model(&task).Updates(fields).Error; err != nil {
			return models.Task{}, err
		}
	}

	err := db.Where("id = ?", id).First(&task).Error
	return task, err
}

// DeleteByID removes the record. Deleting an id that does not exist is a
// no-op, mirroring the upstream API's delete semantics. Sibling order
// values are never renumbered; gaps are permitted.
func (r *GormTaskRepository) DeleteByID(db *gorm.DB, id uuid.UUID) error {
	return db.Where("id = ?", id).Delete(&models.Task{}).Error
}

// ListByOwnerOrdered returns the owner's tasks ascending by order. Ties
// (possible under the concurrent-create race) are broken by creation time,
// then id, so the sort is deterministic.
func (r *GormTaskRepository) ListByOwnerOrdered(db *gorm.DB, ownerID string) ([]models.Task, error) {
	tasks := []models.Task{}
	err := db.Where("user_id = ?", ownerID).
		Order("task_order ASC").
		Order("created_at ASC").
		Order("id ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *GormTaskRepository) CountByOwner(db *gorm.DB, ownerID string) (int64, error) {
	var count int64
	err := db.Model(&models.Task{}).Where("user_id = ?", ownerID).Count(&count).Error
	return count, err
}
