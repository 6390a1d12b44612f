package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"task-manager/internal/config"
	"task-manager/internal/logging"
	"task-manager/internal/services"
)

// TaskListOpener builds the task list once configuration is final
type TaskListOpener func(cfg *config.Config) (services.TaskListController, error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	app    *App
	config *config.Config
	open   TaskListOpener
}

// NewRootCommand creates the root cobra command with global flags. The task
// list is opened after flags are applied, so flags can move the database.
func NewRootCommand(cfg *config.Config, open TaskListOpener) *RootCommand {
	if open == nil {
		open = OpenTaskList
	}
	root := &RootCommand{
		config: cfg,
		open:   open,
	}

	root.cmd = &cobra.Command{
		Use:   "tm",
		Short: "A command-line personal task tracker",
		Long: `Task Manager (tm) keeps a list of tasks with a title, a description and a
due date, stored in a local SQLite database and shown in due-date order.

EXAMPLES:
  tm add "Buy milk" "2%" 2024-05-01        # Add a task
  tm list                                  # List tasks, earliest due date first
  tm show 1                                # Show every field of the first task
  tm edit 1 "Buy milk" "oat" 2024-05-02    # Replace the first task's fields
  tm delete 2                              # Delete the second task
  tm delete                                # Pick a task to delete interactively
  tm output format=pdf file=tasks.pdf      # Export to PDF

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables > .env file > defaults

    TM_ENV                                 development, testing or production (default)
    TM_DB_DIR                              Database directory (default: ~/.tm)
    TM_DB_FILENAME                         Database filename (default: Tasks.db)
    TM_DB_DIR_PERMISSIONS                  Database directory mode, octal (default: 0755)
    TM_VALIDATION_TITLE_MAX                Max title length (default: 255)
    TM_VALIDATION_DESCRIPTION_MAX          Max description length (default: 2000)
    TM_LOG_LEVEL                           Log level (default: warn)
    TM_LOG_FORMAT                          text or json (default: text)
    TM_DEBUG                               Any value forces debug logging
    TM_APP_TIMEOUT                         Per-command timeout (default: 30s)
    TM_OUTPUT_DEFAULT_FORMAT               csv or pdf (default: csv)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.setup(cmd)
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Command exposes the underlying cobra command
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// ExecuteContext runs the root command with a parent context
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("db-dir", "", "Database directory (overrides TM_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides TM_DB_FILENAME)")
	flags.Int("title-max-length", 0, "Maximum title length (overrides TM_VALIDATION_TITLE_MAX)")
	flags.Int("description-max-length", 0, "Maximum description length (overrides TM_VALIDATION_DESCRIPTION_MAX)")
	flags.String("log-level", "", "Log level (overrides TM_LOG_LEVEL)")
	flags.String("log-format", "", "Log format, text or json (overrides TM_LOG_FORMAT)")
	flags.Duration("app-timeout", 0, "Per-command timeout (overrides TM_APP_TIMEOUT)")
	flags.String("output-format", "", "Default export format (overrides TM_OUTPUT_DEFAULT_FORMAT)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	run := func(newHandler func(*App) Command, timeoutFactor time.Duration) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout()*timeoutFactor)
			defer cancel()

			return newHandler(r.app).Execute(ctx, args)
		}
	}

	addCmd := &cobra.Command{
		Use:   "add <title> <description> <due-date>",
		Short: "Add a task",
		Long: `Add a task. The due date must be written as YYYY-MM-DD.

Example:
  tm add "Buy milk" "2%" 2024-05-01`,
		Args: cobra.ExactArgs(3),
		RunE: run(func(a *App) Command { return NewAddCommand(a) }, 1),
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks by due date",
		Long:  "List every task, earliest due date first. Tasks due on the same day keep the order they were added in.",
		Args:  cobra.NoArgs,
		RunE:  run(func(a *App) Command { return NewListCommand(a) }, 1),
	}

	showCmd := &cobra.Command{
		Use:   "show <position>",
		Short: "Show a task",
		Long:  "Show the title, description and due date of the task at a position printed by tm list.",
		Args:  cobra.ExactArgs(1),
		RunE:  run(func(a *App) Command { return NewShowCommand(a) }, 1),
	}

	editCmd := &cobra.Command{
		Use:   "edit <position> <title> <description> <due-date>",
		Short: "Replace a task's fields",
		Long: `Replace every field of the task at a position printed by tm list.

Example:
  tm edit 1 "Buy milk" "oat" 2024-05-02`,
		Args: cobra.ExactArgs(4),
		RunE: run(func(a *App) Command { return NewEditCommand(a) }, 1),
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [position]",
		Short: "Delete a task",
		Long: `Delete the task at a position printed by tm list.

Without a position you are prompted to pick a task from a numbered list.
This operation cannot be undone.`,
		Args: cobra.MaximumNArgs(1),
		// interactive selection may need longer
		RunE: run(func(a *App) Command { return NewDeleteCommand(a) }, 2),
	}

	outputCmd := &cobra.Command{
		Use:   "output [format=csv|pdf] [file=path]",
		Short: "Export tasks",
		Long: `Export tasks in due-date order.

Supported formats:
  csv - Comma-separated values with an ID,Title,Description,Due Date header
  pdf - A4 document listing one task per line

Without file= the export is written to standard output.

Examples:
  tm output format=csv > tasks.csv
  tm output format=pdf file=tasks.pdf`,
		Args: cobra.MaximumNArgs(2),
		RunE: run(func(a *App) Command { return NewOutputCommand(a) }, 1),
	}

	r.cmd.AddCommand(
		addCmd,
		listCmd,
		showCmd,
		editCmd,
		deleteCmd,
		outputCmd,
	)
}

// setup applies flag overrides, configures logging and opens the task list
func (r *RootCommand) setup(cmd *cobra.Command) error {
	if err := r.getConfigFromFlags(); err != nil {
		return err
	}
	if err := r.config.Validate(); err != nil {
		return err
	}

	logging.Init(r.config.Logging.Level, r.config.Logging.Format, cmd.ErrOrStderr())

	tasks, err := r.open(r.config)
	if err != nil {
		return NewErrorHandler().Handle("open task database", err)
	}

	r.app = NewAppWithConfig(tasks, r.config).WithIO(cmd.InOrStdin(), cmd.OutOrStdout())
	return nil
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 30 * time.Second
}

// getConfigFromFlags updates the configuration with values from command-line flags
func (r *RootCommand) getConfigFromFlags() error {
	if r.config == nil {
		return fmt.Errorf("configuration not initialized")
	}

	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	if flags.Changed("db-dir") {
		v, _ := flags.GetString("db-dir")
		overrides.DBDir = &v
	}
	if flags.Changed("db-filename") {
		v, _ := flags.GetString("db-filename")
		overrides.DBFilename = &v
	}
	if flags.Changed("title-max-length") {
		v, _ := flags.GetInt("title-max-length")
		overrides.TitleMaxLength = &v
	}
	if flags.Changed("description-max-length") {
		v, _ := flags.GetInt("description-max-length")
		overrides.DescriptionMaxLength = &v
	}
	if flags.Changed("log-level") {
		v, _ := flags.GetString("log-level")
		overrides.LogLevel = &v
	}
	if flags.Changed("log-format") {
		v, _ := flags.GetString("log-format")
		overrides.LogFormat = &v
	}
	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &v
	}
	if flags.Changed("output-format") {
		v, _ := flags.GetString("output-format")
		overrides.OutputDefaultFormat = &v
	}

	r.config.ApplyOverrides(overrides)
	return nil
}
