package storage

import "github.com/obliviraorg/edumentor/internal/models"

// Provider holds the state of one planning session.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Subjects, kept in insertion order
	AddSubject(models.Subject) error
	GetSubject(id string) (models.Subject, error)
	GetAllSubjects() ([]models.Subject, error)
	UpdateSubject(models.Subject) error
	DeleteSubject(id string) error

	// Exams
	AddExam(models.Exam) error
	GetAllExams() ([]models.Exam, error)
	DeleteExam(id string) error

	// Generated plans. Saving replaces the previous plan of the same kind.
	SaveWeeklySchedule(models.WeeklySchedule) error
	GetWeeklySchedule() (models.WeeklySchedule, error)
	SaveRoutine(models.Routine) error
	GetRoutine() (models.Routine, error)

	// Utils
	GetConfigPath() string
}
