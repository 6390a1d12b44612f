package config

import (
	"fmt"
	"os"
	"path/filepath"

	apperrors "task-manager/internal/errors"
	"task-manager/internal/repository/sqlite"
)

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// GetEnvironment determines the current environment from TM_ENV.
// Anything unrecognised is treated as production.
func GetEnvironment() Environment {
	switch Environment(os.Getenv("TM_ENV")) {
	case Development:
		return Development
	case Testing:
		return Testing
	default:
		return Production
	}
}

// RepositoryFactory creates repository instances based on environment
type RepositoryFactory struct {
	env    Environment
	config *Config
}

// NewRepositoryFactory creates a new repository factory for the given environment
func NewRepositoryFactory(env Environment, config *Config) *RepositoryFactory {
	return &RepositoryFactory{env: env, config: config}
}

// CreateRepository creates a repository instance based on the current environment
func (rf *RepositoryFactory) CreateRepository() (sqlite.Repository, error) {
	switch rf.env {
	case Development:
		return rf.createDevelopmentRepository()
	case Testing:
		return CreateTestRepository()
	default:
		return CreateRepository(rf.config)
	}
}

// createDevelopmentRepository uses a database file in the working directory
func (rf *RepositoryFactory) createDevelopmentRepository() (sqlite.Repository, error) {
	filename := "Tasks.db"
	if rf.config != nil {
		filename = rf.config.Database.Filename
	}

	repo, err := sqlite.New(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize development database: %w", err)
	}
	return repo, nil
}

// CreateRepository creates a repository at the configured path, creating
// the database directory first if needed.
func CreateRepository(config *Config) (sqlite.Repository, error) {
	if err := EnsureDatabaseDir(config); err != nil {
		return nil, err
	}

	repo, err := sqlite.New(config.GetDatabasePath())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return repo, nil
}

// CreateTestRepository creates a repository on a fresh file in a temporary
// directory. The store opens a new connection per operation, so an
// in-memory database would not survive between calls.
func CreateTestRepository() (sqlite.Repository, error) {
	dir, err := os.MkdirTemp("", "tm-test-")
	if err != nil {
		return nil, apperrors.NewStorageError("create test database directory", err)
	}

	repo, err := sqlite.New(filepath.Join(dir, "Tasks.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}

	return repo, nil
}

// EnsureDatabaseDir creates the database directory with the configured permissions
func EnsureDatabaseDir(config *Config) error {
	dir := config.Database.Dir
	if err := os.MkdirAll(dir, os.FileMode(config.Database.DirPermissions)); err != nil {
		if os.IsPermission(err) {
			permErr := apperrors.NewPermissionError("create database directory", dir)
			permErr.Cause = err
			return permErr
		}
		return apperrors.NewStorageError("create database directory", err)
	}
	return nil
}
