package entity

import (
	"strings"
	"time"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusDone       TaskStatus = "done"
	StatusCompleted  TaskStatus = "completed"
)

// Statuses lists every value accepted by the tasks.status CHECK constraint.
var Statuses = []TaskStatus{StatusPending, StatusInProgress, StatusDone, StatusCompleted}

// ParseStatus normalizes raw input into a TaskStatus.
// The older "in progress" spelling is accepted and stored as in_progress.
func ParseStatus(raw string) (TaskStatus, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "in progress" {
		s = string(StatusInProgress)
	}
	for _, st := range Statuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// Task belongs to exactly one user; UserID never changes after creation.
type Task struct {
	ID          string
	Title       string
	Description string
	Status      TaskStatus
	UserID      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
