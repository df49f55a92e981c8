package task

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/taskflow/api/internal/domain"
	"github.com/taskflow/api/internal/repository"
)

type taskRepoMock struct {
	byID    map[string]domain.Task
	updated *domain.Task
	deleted []string
}

func newTaskRepoMock(tasks ...domain.Task) *taskRepoMock {
	m := &taskRepoMock{byID: make(map[string]domain.Task)}
	for _, t := range tasks {
		m.byID[t.ID] = t
	}
	return m
}

func (m *taskRepoMock) CreateTask(ctx context.Context, task *domain.Task) error {
	m.byID[task.ID] = *task
	return nil
}

func (m *taskRepoMock) GetTaskByID(ctx context.Context, id string) (*domain.Task, error) {
	if t, ok := m.byID[id]; ok {
		copied := t
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (m *taskRepoMock) ListTasksByUser(ctx context.Context, userID string) ([]domain.Task, error) {
	out := make([]domain.Task, 0)
	for _, t := range m.byID {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *taskRepoMock) UpdateTask(ctx context.Context, task *domain.Task) error {
	if _, ok := m.byID[task.ID]; !ok {
		return repository.ErrNotFound
	}
	task.UpdatedAt = time.Now().UTC()
	m.byID[task.ID] = *task
	m.updated = task
	return nil
}

func (m *taskRepoMock) DeleteTask(ctx context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.byID, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreateAppliesDefaults(t *testing.T) {
	repo := newTaskRepoMock()
	svc := New(repo, newLogger())

	created, err := svc.Create(context.Background(), "user-1", CreateInput{Title: "Buy milk"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Status != domain.TaskStatusPending {
		t.Fatalf("expected default status %q, got %q", domain.TaskStatusPending, created.Status)
	}
	if created.Priority != domain.TaskPriorityMedium {
		t.Fatalf("expected default priority %q, got %q", domain.TaskPriorityMedium, created.Priority)
	}
	if created.UserID != "user-1" {
		t.Fatalf("task not bound to creator: %+v", created)
	}
	if created.ID == "" {
		t.Fatalf("expected generated task id")
	}
}

func TestCreateValidation(t *testing.T) {
	svc := New(newTaskRepoMock(), newLogger())
	cases := []struct {
		name  string
		input CreateInput
	}{
		{"missing title", CreateInput{}},
		{"blank title", CreateInput{Title: "   "}},
		{"bad status", CreateInput{Title: "x", Status: "archived"}},
		{"bad priority", CreateInput{Title: "x", Priority: "urgent"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), "user-1", tc.input)
			var vErr *domain.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestUpdateAppliesPatchForOwner(t *testing.T) {
	existing := domain.Task{
		ID:          "task-1",
		UserID:      "user-1",
		Title:       "Buy milk",
		Description: "2 liters",
		Status:      domain.TaskStatusPending,
		Priority:    domain.TaskPriorityMedium,
	}
	repo := newTaskRepoMock(existing)
	svc := New(repo, newLogger())

	status := domain.TaskStatusCompleted
	updated, err := svc.Update(context.Background(), "user-1", "task-1", domain.TaskPatch{Status: &status})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != domain.TaskStatusCompleted {
		t.Fatalf("status not applied: %+v", updated)
	}
	if updated.Title != "Buy milk" || updated.Description != "2 liters" {
		t.Fatalf("unpatched fields mutated: %+v", updated)
	}
}

func TestUpdateRejectsNonOwner(t *testing.T) {
	repo := newTaskRepoMock(domain.Task{ID: "task-1", UserID: "user-1", Title: "Buy milk"})
	svc := New(repo, newLogger())

	title := "hijacked"
	if _, err := svc.Update(context.Background(), "user-2", "task-1", domain.TaskPatch{Title: &title}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if repo.updated != nil {
		t.Fatalf("task mutated despite denial")
	}
}

func TestUpdateMissingTask(t *testing.T) {
	svc := New(newTaskRepoMock(), newLogger())
	title := "x"
	if _, err := svc.Update(context.Background(), "user-1", "missing", domain.TaskPatch{Title: &title}); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateRejectsBlankTitle(t *testing.T) {
	repo := newTaskRepoMock(domain.Task{ID: "task-1", UserID: "user-1", Title: "Buy milk"})
	svc := New(repo, newLogger())

	blank := "  "
	_, err := svc.Update(context.Background(), "user-1", "task-1", domain.TaskPatch{Title: &blank})
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteEnforcesOwnership(t *testing.T) {
	repo := newTaskRepoMock(domain.Task{ID: "task-1", UserID: "user-1", Title: "Buy milk"})
	svc := New(repo, newLogger())

	if err := svc.Delete(context.Background(), "user-2", "task-1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), "user-1", "task-1"); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != "task-1" {
		t.Fatalf("unexpected delete calls: %v", repo.deleted)
	}
	if err := svc.Delete(context.Background(), "user-1", "task-1"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
