package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"task-manager/internal/config"
	"task-manager/internal/errors"
	"task-manager/internal/logging"
	"task-manager/internal/services"
	"task-manager/internal/validation"
)

// App represents the main CLI application
type App struct {
	tasks        services.TaskListController
	config       *config.Config
	validator    *validation.TaskValidator
	errorHandler *ErrorHandler
	logger       logrus.FieldLogger
	registry     *CommandRegistry

	in  io.Reader
	out io.Writer

	loaded bool
}

// OpenTaskList builds the task list for the environment selected by TM_ENV
func OpenTaskList(cfg *config.Config) (services.TaskListController, error) {
	repo, err := config.NewRepositoryFactory(config.GetEnvironment(), cfg).CreateRepository()
	if err != nil {
		return nil, err
	}
	return services.NewServiceContainer(repo, logging.Logger()).TaskList, nil
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(tasks services.TaskListController) *App {
	return NewAppWithConfig(tasks, config.NewConfig())
}

// NewAppWithConfig creates a new CLI application instance with configuration
func NewAppWithConfig(tasks services.TaskListController, cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	app := &App{
		tasks:        tasks,
		config:       cfg,
		validator:    validation.NewTaskValidatorWithConfig(cfg),
		errorHandler: NewErrorHandler(),
		logger:       logging.Logger().WithField("component", "cli"),
		in:           os.Stdin,
		out:          os.Stdout,
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// WithIO replaces the streams commands read from and print to
func (a *App) WithIO(in io.Reader, out io.Writer) *App {
	if in != nil {
		a.in = in
	}
	if out != nil {
		a.out = out
	}
	return a
}

// Run executes the CLI application with the given arguments
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("command", "", a.registry.GetUsage())
	}

	return a.registry.Execute(ctx, args[0], args[1:])
}

// loadTasks reads the store once per invocation
func (a *App) loadTasks(ctx context.Context) error {
	if a.loaded {
		return nil
	}
	if err := a.tasks.Load(ctx); err != nil {
		return a.fail("load tasks", err)
	}
	a.loaded = true
	return nil
}

// resolvePosition turns a 1-based position typed by the user into an index
func (a *App) resolvePosition(arg string) (int, error) {
	position, err := strconv.Atoi(arg)
	if err != nil {
		return 0, errors.NewInvalidInputError("position", arg, "position must be a number")
	}
	return a.validator.ValidatePosition(position, a.tasks.Len())
}

// fail logs errors worth keeping and converts err to a user-facing message
func (a *App) fail(operation string, err error) error {
	if errors.ShouldLogError(err) {
		a.logger.WithError(err).WithField("code", errors.GetErrorCode(err)).Error(operation + " failed")
	}
	return a.errorHandler.Handle(operation, err)
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}
