package ui_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tomlord1122/todo-app/internal/client"
	"github.com/Tomlord1122/todo-app/internal/config"
	"github.com/Tomlord1122/todo-app/internal/repository"
	"github.com/Tomlord1122/todo-app/internal/server"
	"github.com/Tomlord1122/todo-app/internal/service"
	"github.com/Tomlord1122/todo-app/internal/ui"
)

var errNetwork = errors.New("network unreachable")

// flakyAPI forwards to a real client until fail is set.
type flakyAPI struct {
	next     ui.TaskAPI
	fail     bool
	failList bool
	calls    int
}

func (f *flakyAPI) List(ctx context.Context) ([]client.Task, error) {
	f.calls++
	if f.fail || f.failList {
		return nil, errNetwork
	}
	return f.next.List(ctx)
}

func (f *flakyAPI) Create(ctx context.Context, t client.NewTask) (*client.Task, error) {
	f.calls++
	if f.fail {
		return nil, errNetwork
	}
	return f.next.Create(ctx, t)
}

func (f *flakyAPI) Update(ctx context.Context, id uint, p client.TaskPatch) (*client.Task, error) {
	f.calls++
	if f.fail {
		return nil, errNetwork
	}
	return f.next.Update(ctx, id, p)
}

func (f *flakyAPI) Delete(ctx context.Context, id uint) error {
	f.calls++
	if f.fail {
		return errNetwork
	}
	return f.next.Delete(ctx, id)
}

// newAPIServer starts the task API over an in-memory repository.
func newAPIServer(t *testing.T) string {
	t.Helper()
	repo := repository.NewMemoryTaskRepository()
	handler := server.NewServer(config.API{AllowedOrigins: []string{"*"}}, service.NewTaskService(repo), repo).Handler
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return ts.URL
}

func newFlaky(t *testing.T) *flakyAPI {
	return &flakyAPI{next: client.New(newAPIServer(t), 5*time.Second)}
}

func titles(tasks []client.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.Title)
	}
	return out
}

func TestBoard_Actions(t *testing.T) {
	for _, refetch := range []bool{false, true} {
		name := "merge"
		if refetch {
			name = "refetch"
		}
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			board := ui.NewBoard(newFlaky(t), refetch)

			require.NoError(t, board.Load(ctx))
			assert.Empty(t, board.Tasks())

			require.NoError(t, board.Add(ctx, "Buy milk", ""))
			require.NoError(t, board.Add(ctx, "Walk dog", "before lunch"))
			assert.Equal(t, []string{"Buy milk", "Walk dog"}, titles(board.Tasks()))

			first := board.Tasks()[0]
			require.NoError(t, board.Toggle(ctx, first.ID))
			assert.Equal(t, client.Task{ID: first.ID, Title: "Buy milk", Completed: true}, board.Tasks()[0])
			assert.False(t, board.Tasks()[1].Completed)

			require.NoError(t, board.Toggle(ctx, first.ID))
			assert.False(t, board.Tasks()[0].Completed)

			require.NoError(t, board.Delete(ctx, first.ID))
			assert.Equal(t, []string{"Walk dog"}, titles(board.Tasks()))
		})
	}
}

func TestBoard_AddIgnoresBlankTitle(t *testing.T) {
	api := newFlaky(t)
	board := ui.NewBoard(api, false)

	err := board.Add(context.Background(), "   ", "desc")
	assert.ErrorIs(t, err, ui.ErrEmptyTitle)
	assert.Zero(t, api.calls, "no call for a blank title")
	assert.Empty(t, board.Tasks())
}

func TestBoard_FailuresLeaveStateUnchanged(t *testing.T) {
	ctx := context.Background()
	api := newFlaky(t)
	board := ui.NewBoard(api, false)
	require.NoError(t, board.Add(ctx, "keep", ""))
	before := board.Tasks()
	id := before[0].ID

	api.fail = true

	assert.ErrorIs(t, board.Load(ctx), errNetwork)
	assert.ErrorIs(t, board.Add(ctx, "lost", ""), errNetwork)
	assert.ErrorIs(t, board.Toggle(ctx, id), errNetwork)
	assert.ErrorIs(t, board.Delete(ctx, id), errNetwork)

	assert.Equal(t, before, board.Tasks())
}

func TestBoard_AddKeepsCreatedTaskWhenRefetchFails(t *testing.T) {
	ctx := context.Background()
	api := newFlaky(t)
	board := ui.NewBoard(api, true)
	require.NoError(t, board.Add(ctx, "first", ""))

	api.failList = true
	require.NoError(t, board.Add(ctx, "second", ""), "the task exists on the server")
	assert.Equal(t, []string{"first", "second"}, titles(board.Tasks()))

	api.failList = false
	require.NoError(t, board.Load(ctx))
	assert.Equal(t, []string{"first", "second"}, titles(board.Tasks()), "no duplicate was created")
}

func TestBoard_ToggleUnknownTask(t *testing.T) {
	api := newFlaky(t)
	board := ui.NewBoard(api, false)

	require.Error(t, board.Toggle(context.Background(), 12))
	assert.Zero(t, api.calls)
}

func TestBoard_NotFoundFromAPI(t *testing.T) {
	ctx := context.Background()
	api := newFlaky(t)
	board := ui.NewBoard(api, false)
	require.NoError(t, board.Add(ctx, "shared", ""))
	id := board.Tasks()[0].ID

	// someone else deletes the task first
	require.NoError(t, api.next.Delete(ctx, id))

	err := board.Delete(ctx, id)
	assert.True(t, client.IsNotFound(err))
	assert.Len(t, board.Tasks(), 1)

	require.NoError(t, board.Load(ctx))
	assert.Empty(t, board.Tasks())
}
