package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Tomlord1122/todo-app/internal/domain"
	"github.com/Tomlord1122/todo-app/internal/repository"
)

// CreateTaskRequest holds the data needed to create a new task.
// Title is a pointer so a missing field can be told apart from an empty one;
// only the former is rejected.
type CreateTaskRequest struct {
	Title       *string `json:"title"`
	Description string  `json:"description"`
	Completed   bool    `json:"completed"`
}

// UpdateTaskRequest holds the fields of an update. Omitted (or null) fields
// are left untouched.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// TaskResponse is the representation of a task returned to callers.
type TaskResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// TaskService defines the operations for managing tasks.
type TaskService interface {
	// ListTasks returns every task ordered by ascending id.
	ListTasks(ctx context.Context) ([]TaskResponse, error)
	GetTask(ctx context.Context, id uint) (*TaskResponse, error)
	CreateTask(ctx context.Context, req CreateTaskRequest) (*TaskResponse, error)
	// UpdateTask applies the present fields of req to the task with the given id.
	UpdateTask(ctx context.Context, id uint, req UpdateTaskRequest) (*TaskResponse, error)
	DeleteTask(ctx context.Context, id uint) error
}

type taskService struct {
	repo repository.TaskRepository
}

func NewTaskService(repo repository.TaskRepository) TaskService {
	return &taskService{repo: repo}
}

func (s *taskService) ListTasks(ctx context.Context) ([]TaskResponse, error) {
	tasks, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	responses := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, toResponse(task))
	}
	return responses, nil
}

func (s *taskService) GetTask(ctx context.Context, id uint) (*TaskResponse, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.classify("get", id, err)
	}
	resp := toResponse(*task)
	return &resp, nil
}

func (s *taskService) CreateTask(ctx context.Context, req CreateTaskRequest) (*TaskResponse, error) {
	if req.Title == nil {
		return nil, ErrTitleRequired
	}

	task := &domain.Task{
		Title:       *req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	resp := toResponse(*task)
	return &resp, nil
}

func (s *taskService) UpdateTask(ctx context.Context, id uint, req UpdateTaskRequest) (*TaskResponse, error) {
	task, err := s.repo.Update(ctx, id, domain.TaskChanges{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		return nil, s.classify("update", id, err)
	}
	resp := toResponse(*task)
	return &resp, nil
}

func (s *taskService) DeleteTask(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.classify("delete", id, err)
	}
	return nil
}

// classify turns a repository miss into ErrTaskNotFound and wraps anything else.
func (s *taskService) classify(op string, id uint, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s task %d: %w", op, id, ErrTaskNotFound)
	}
	return fmt.Errorf("%s task %d: %w", op, id, err)
}

func toResponse(task domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
	}
}
