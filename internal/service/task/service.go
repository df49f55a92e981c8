package task

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taskflow/api/internal/domain"
	"github.com/taskflow/api/internal/repository"
)

// ErrForbidden rejects an operation on a task owned by somebody else. It is
// distinct from repository.ErrNotFound: handlers answer 403 for a task that
// exists but is not the caller's and 404 for one that does not exist.
var ErrForbidden = errors.New("task: not owned by caller")

// Service performs ownership-scoped task operations.
type Service struct {
	tasks  repository.TaskRepository
	logger *slog.Logger
}

// New constructs a Service.
func New(tasks repository.TaskRepository, logger *slog.Logger) Service {
	return Service{tasks: tasks, logger: logger}
}

// CreateInput carries fields for a new task. Status and Priority are
// optional and default to "pending" and "medium".
type CreateInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
}

// Create stores a new task owned by userID.
func (s Service) Create(ctx context.Context, userID string, input CreateInput) (*domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domain.Invalid("title", "title is required")
	}
	status := input.Status
	if status == "" {
		status = domain.TaskStatusPending
	}
	if !domain.ValidTaskStatus(status) {
		return nil, domain.Invalid("status", "unknown status value")
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.TaskPriorityMedium
	}
	if !domain.ValidTaskPriority(priority) {
		return nil, domain.Invalid("priority", "unknown priority value")
	}

	now := time.Now().UTC()
	task := &domain.Task{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Description: input.Description,
		Status:      status,
		Priority:    priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.tasks.CreateTask(ctx, task); err != nil {
		return nil, err
	}
	s.logger.Info("task created", "task_id", task.ID, "user_id", userID)
	return task, nil
}

// List returns the caller's tasks, newest first.
func (s Service) List(ctx context.Context, userID string) ([]domain.Task, error) {
	return s.tasks.ListTasksByUser(ctx, userID)
}

// Update applies a partial update to a task after the ownership check.
func (s Service) Update(ctx context.Context, userID, taskID string, patch domain.TaskPatch) (*domain.Task, error) {
	task, err := s.authorize(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, domain.Invalid("title", "title is required")
		}
		task.Title = title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Status != nil {
		if !domain.ValidTaskStatus(*patch.Status) {
			return nil, domain.Invalid("status", "unknown status value")
		}
		task.Status = *patch.Status
	}
	if patch.Priority != nil {
		if !domain.ValidTaskPriority(*patch.Priority) {
			return nil, domain.Invalid("priority", "unknown priority value")
		}
		task.Priority = *patch.Priority
	}
	if err := s.tasks.UpdateTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes a task after the ownership check.
func (s Service) Delete(ctx context.Context, userID, taskID string) error {
	if _, err := s.authorize(ctx, userID, taskID); err != nil {
		return err
	}
	if err := s.tasks.DeleteTask(ctx, taskID); err != nil {
		return err
	}
	s.logger.Info("task deleted", "task_id", taskID, "user_id", userID)
	return nil
}

// authorize loads the task and enforces the single-owner policy.
func (s Service) authorize(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	task, err := s.tasks.GetTaskByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !task.OwnedBy(userID) {
		return nil, ErrForbidden
	}
	return task, nil
}
