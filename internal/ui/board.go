// Package ui renders the task list and turns form actions into API calls.
package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/Tomlord1122/todo-app/internal/client"
)

// ErrEmptyTitle is returned by Add when the title is blank; no call is made.
var ErrEmptyTitle = errors.New("title is empty")

// TaskAPI is the subset of the API client the board needs.
type TaskAPI interface {
	List(ctx context.Context) ([]client.Task, error)
	Create(ctx context.Context, t client.NewTask) (*client.Task, error)
	Update(ctx context.Context, id uint, patch client.TaskPatch) (*client.Task, error)
	Delete(ctx context.Context, id uint) error
}

// Board owns the in-memory task list shown to the user. Each action issues
// one API call and then updates the list, either from the call's response
// (merge) or from a full list fetch (refetch). A failed call is logged and
// leaves the board as it was.
type Board struct {
	api     TaskAPI
	refetch bool

	mu    sync.Mutex
	tasks []client.Task
}

func NewBoard(api TaskAPI, refetch bool) *Board {
	return &Board{api: api, refetch: refetch, tasks: []client.Task{}}
}

// Tasks returns a copy of the current list.
func (b *Board) Tasks() []client.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]client.Task(nil), b.tasks...)
}

// Load replaces the list with a fresh fetch.
func (b *Board) Load(ctx context.Context) error {
	tasks, err := b.api.List(ctx)
	if err != nil {
		return logged("fetching tasks", err)
	}

	b.mu.Lock()
	b.tasks = tasks
	b.mu.Unlock()
	return nil
}

// Add creates a task from title and description. It returns nil once the
// task exists on the server, even if the follow-up refetch fails; the
// created record is then merged so it is not submitted twice.
func (b *Board) Add(ctx context.Context, title, description string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}

	created, err := b.api.Create(ctx, client.NewTask{Title: title, Description: description})
	if err != nil {
		return logged("adding task", err)
	}

	if b.refetch && b.Load(ctx) == nil {
		return nil
	}

	b.mu.Lock()
	b.tasks = append(b.tasks, *created)
	b.mu.Unlock()
	return nil
}

// Toggle flips the completed flag of the task with the given id.
func (b *Board) Toggle(ctx context.Context, id uint) error {
	current, ok := b.find(id)
	if !ok {
		return logged("updating task", fmt.Errorf("task %d is not on the board", id))
	}

	completed := !current.Completed
	updated, err := b.api.Update(ctx, id, client.TaskPatch{Completed: &completed})
	if err != nil {
		return logged("updating task", err)
	}

	if b.refetch {
		return b.Load(ctx)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.tasks {
		if b.tasks[i].ID == id {
			b.tasks[i] = *updated
		}
	}
	return nil
}

// Delete removes the task with the given id.
func (b *Board) Delete(ctx context.Context, id uint) error {
	if err := b.api.Delete(ctx, id); err != nil {
		return logged("deleting task", err)
	}

	if b.refetch {
		return b.Load(ctx)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	kept := make([]client.Task, 0, len(b.tasks))
	for _, task := range b.tasks {
		if task.ID != id {
			kept = append(kept, task)
		}
	}
	b.tasks = kept
	return nil
}

func (b *Board) find(id uint) (client.Task, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, task := range b.tasks {
		if task.ID == id {
			return task, true
		}
	}
	return client.Task{}, false
}

func logged(action string, err error) error {
	log.Printf("Error %s: %v", action, err)
	return fmt.Errorf("%s: %w", action, err)
}
