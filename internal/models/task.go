package models

import (
	"fmt"
	"time"

	"github.com/gofrs/uuid"
)

type Category string

const (
	CategoryTodo       Category = "todo"
	CategoryInProgress Category = "InProgress"
	CategoryDone       Category = "done"
)

const (
	TitleMaxLen       = 50
	DescriptionMaxLen = 200
)

func (c Category) Valid() bool {
	switch c {
	case CategoryTodo, CategoryInProgress, CategoryDone:
		return true
	}
	return false
}

// Task is one unit of work on an owner's board. Order positions the task
// within that owner's sequence only; order values of different owners are
// not comparable. ID, OwnerID and CreatedAt never change after creation.
type Task struct {
	ID          uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	OwnerID     string    `json:"userId" gorm:"column:user_id;index;not null"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	Category    Category  `json:"category" gorm:"not null"`
	Order       int       `json:"order" gorm:"column:task_order;not null"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (t *Task) Validate() error {
	if t.Title == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if len(t.Title) > TitleMaxLen {
		return &ValidationError{Field: "title", Message: fmt.Sprintf("title exceeds %d characters", TitleMaxLen)}
	}
	if len(t.Description) > DescriptionMaxLen {
		return &ValidationError{Field: "description", Message: fmt.Sprintf("description exceeds %d characters", DescriptionMaxLen)}
	}
	if !t.Category.Valid() {
		return &ValidationError{Field: "category", Message: "category must be one of todo, InProgress, done"}
	}
	if t.OwnerID == "" {
		return &ValidationError{Field: "userId", Message: "userId is required"}
	}
	return nil
}
