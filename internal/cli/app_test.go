package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "task-manager/internal/errors"
)

func TestApp_Run(t *testing.T) {
	t.Run("no arguments returns usage", func(t *testing.T) {
		app := setupTestApp(t)

		err := app.Run(context.Background(), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "usage: tm add")
	})

	t.Run("unknown command", func(t *testing.T) {
		app := setupTestApp(t)

		err := app.Run(context.Background(), []string{"start", "x"})
		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInvalidInput))
	})

	t.Run("dispatches to the named command", func(t *testing.T) {
		app := setupTestApp(t)

		require.NoError(t, app.Run(context.Background(), []string{"list"}))
		assert.Equal(t, "No tasks found\n", app.out.String())
	})
}

func TestApp_LoadTasksOnce(t *testing.T) {
	app := setupTestApp(t)
	ctx := context.Background()

	require.NoError(t, app.loadTasks(ctx))
	app.seed(t, [3]string{"late arrival", "d", "2024-01-01"})
	require.NoError(t, app.loadTasks(ctx))

	// the working set reflects the store as of the first load
	assert.Equal(t, 0, app.tasks.Len())
}

func TestApp_ResolvePosition(t *testing.T) {
	app := setupTestApp(t)
	app.seed(t,
		[3]string{"a", "a", "2024-01-01"},
		[3]string{"b", "b", "2024-01-02"},
	)
	require.NoError(t, app.loadTasks(context.Background()))

	index, err := app.resolvePosition("2")
	require.NoError(t, err)
	assert.Equal(t, 1, index)

	_, err = app.resolvePosition("x")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInvalidInput))

	_, err = app.resolvePosition("3")
	assert.Error(t, err)
}

func TestCommandRegistry(t *testing.T) {
	app := setupTestApp(t)
	registry := NewCommandRegistry(app.App)

	for _, name := range []string{"add", "list", "show", "edit", "delete", "output"} {
		_, ok := registry.commands[name]
		assert.True(t, ok, "command %q not registered", name)
	}

	called := false
	registry.Register("ping", commandFunc(func(ctx context.Context, args []string) error {
		called = true
		assert.Equal(t, []string{"a"}, args)
		return nil
	}))
	require.NoError(t, registry.Execute(context.Background(), "ping", []string{"a"}))
	assert.True(t, called)

	assert.Contains(t, registry.GetUsage(), "tm output format=csv|pdf")
}

type commandFunc func(ctx context.Context, args []string) error

func (f commandFunc) Execute(ctx context.Context, args []string) error { return f(ctx, args) }
