package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"task-manager/internal/config"
	"task-manager/internal/domain"
	apperrors "task-manager/internal/errors"
	"task-manager/internal/repository/sqlite"
	"task-manager/internal/services"
)

// testApp bundles an App backed by a real database file with its output buffer
type testApp struct {
	*App
	out  *bytes.Buffer
	repo *sqlite.SQLiteRepository
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.NewConfig()
	cfg.Database.Dir = t.TempDir()
	return cfg
}

func setupTestApp(t *testing.T) *testApp {
	return setupTestAppWithInput(t, "")
}

func setupTestAppWithInput(t *testing.T, input string) *testApp {
	t.Helper()
	cfg := newTestConfig(t)

	repo, err := sqlite.NewWithLogger(cfg.GetDatabasePath(), quietLogger())
	require.NoError(t, err)

	out := &bytes.Buffer{}
	app := NewAppWithConfig(services.NewTaskList(repo, quietLogger()), cfg).
		WithIO(strings.NewReader(input), out)
	app.logger = quietLogger()

	return &testApp{App: app, out: out, repo: repo}
}

// seed inserts rows directly through the store, bypassing the app
func (ta *testApp) seed(t *testing.T, rows ...[3]string) {
	t.Helper()
	for _, r := range rows {
		_, err := ta.repo.CreateTask(context.Background(), r[0], r[1], r[2])
		require.NoError(t, err)
	}
}

// reopen returns a fresh app on the same database, as a new invocation would see it
func (ta *testApp) reopen(t *testing.T) *testApp {
	t.Helper()
	out := &bytes.Buffer{}
	app := NewAppWithConfig(services.NewTaskList(ta.repo, quietLogger()), ta.config).
		WithIO(strings.NewReader(""), out)
	app.logger = quietLogger()
	return &testApp{App: app, out: out, repo: ta.repo}
}

func testDBPath(t *testing.T) string {
	return filepath.Join(t.TempDir(), "Tasks.db")
}

// failingTaskList is a TaskListController whose store always fails
type failingTaskList struct {
	tasks []domain.Task
	err   error
}

func newFailingTaskList(tasks ...domain.Task) *failingTaskList {
	return &failingTaskList{
		tasks: tasks,
		err:   apperrors.NewStorageError("open database", errors.New("disk I/O error")),
	}
}

func (f *failingTaskList) Load(context.Context) error { return nil }

func (f *failingTaskList) Add(context.Context, string, string, string) (int64, error) {
	return 0, f.err
}

func (f *failingTaskList) Edit(context.Context, int64, int, string, string, string) (bool, error) {
	return false, f.err
}

func (f *failingTaskList) RemoveAt(context.Context, int) error { return f.err }

func (f *failingTaskList) Tasks() []domain.Task {
	return append([]domain.Task(nil), f.tasks...)
}

func (f *failingTaskList) At(position int) (domain.Task, error) {
	if position < 0 || position >= len(f.tasks) {
		return domain.Task{}, apperrors.NewInvalidInputError("position", position, "position is out of range")
	}
	return f.tasks[position], nil
}

func (f *failingTaskList) Len() int { return len(f.tasks) }

var _ services.TaskListController = (*failingTaskList)(nil)
