package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const (
	TaskStatusStarted    = "started"
	TaskStatusInProgress = "in-progress"
	TaskStatusCompleted  = "completed"
)

// User. Password and RefreshToken never serialize; every handler that returns
// a user relies on that.
type User struct {
	ID           uuid.UUID      `json:"id"`
	Email        string         `json:"email"`
	FullName     string         `json:"fullName"`
	Password     string         `json:"-"`
	RefreshToken sql.NullString `json:"-"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// Task belongs to exactly one user, fixed at creation.
type Task struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	TaskName    string    `json:"taskName"`
	TaskDetails string    `json:"taskDetails"`
	TaskStatus  string    `json:"taskStatus"`
	DueDate     time.Time `json:"dueDate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
