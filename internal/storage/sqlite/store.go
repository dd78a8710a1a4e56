package sqlite

import (
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/obliviraorg/edumentor/internal/constants"
	"github.com/obliviraorg/edumentor/internal/logger"
	"github.com/obliviraorg/edumentor/internal/migration"
	"github.com/obliviraorg/edumentor/internal/models"
	"github.com/obliviraorg/edumentor/migrations"
)

// SessionDSN returns a fresh in-memory database name so that stores never share state.
func SessionDSN() string {
	return fmt.Sprintf(constants.SessionDSNFormat, constants.AppName+"-"+uuid.NewString())
}

type Store struct {
	path     string
	db       *sql.DB
	defaults models.Settings
}

// NewStore returns a store for dsn. Settings seeded on Init come from defaults.
func NewStore(dsn string, defaults models.Settings) *Store {
	return &Store{
		path:     dsn,
		defaults: defaults,
	}
}

func (s *Store) Init() error {
	if err := s.open(); err != nil {
		return err
	}

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := s.seed(); err != nil {
		return fmt.Errorf("failed to seed session: %w", err)
	}
	return nil
}

// Load initializes the store on first use. An in-memory session has nothing to reopen.
func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}
	return s.Init()
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) open() error {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// An in-memory database lives as long as its connection.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	s.db = db
	return nil
}

func (s *Store) runMigrations() error {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}

	_, err = migration.NewRunner(s.db, subFS).ApplyMigrations(func(msg string) {
		logger.Debug(msg)
	})
	return err
}

// seed stores default settings and the starter subjects on an empty session.
func (s *Store) seed() error {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM settings").Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		if err := s.SaveSettings(s.defaults); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	if err := s.db.QueryRow("SELECT COUNT(*) FROM subjects").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, subject := range DefaultSubjects() {
		if err := s.AddSubject(subject); err != nil {
			return err
		}
	}
	return nil
}

// DefaultSubjects is the starter list a new session opens with.
func DefaultSubjects() []models.Subject {
	return []models.Subject{
		{ID: uuid.NewString(), Name: "Mathematics", Priority: models.PriorityHigh},
		{ID: uuid.NewString(), Name: "Physics", Priority: models.PriorityMedium},
	}
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// GetDB returns the underlying database connection, nil before Init.
func (s *Store) GetDB() *sql.DB {
	return s.db
}
