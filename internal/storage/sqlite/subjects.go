package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/obliviraorg/edumentor/internal/models"
)

func (s *Store) AddSubject(subject models.Subject) error {
	_, err := s.db.Exec(`
		INSERT INTO subjects (id, name, priority, position)
		VALUES (?, ?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM subjects))`,
		subject.ID, subject.Name, string(subject.Priority))
	return err
}

func (s *Store) GetSubject(id string) (models.Subject, error) {
	var subject models.Subject
	var priority string
	err := s.db.QueryRow("SELECT id, name, priority FROM subjects WHERE id = ?", id).
		Scan(&subject.ID, &subject.Name, &priority)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Subject{}, fmt.Errorf("subject %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return models.Subject{}, err
	}
	subject.Priority = models.Priority(priority)
	return subject, nil
}

// GetAllSubjects returns subjects in the order they were added.
func (s *Store) GetAllSubjects() ([]models.Subject, error) {
	rows, err := s.db.Query("SELECT id, name, priority FROM subjects ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subjects := []models.Subject{}
	for rows.Next() {
		var subject models.Subject
		var priority string
		if err := rows.Scan(&subject.ID, &subject.Name, &priority); err != nil {
			return nil, err
		}
		subject.Priority = models.Priority(priority)
		subjects = append(subjects, subject)
	}
	return subjects, rows.Err()
}

// UpdateSubject changes name and priority; the position is kept.
func (s *Store) UpdateSubject(subject models.Subject) error {
	res, err := s.db.Exec("UPDATE subjects SET name = ?, priority = ? WHERE id = ?",
		subject.Name, string(subject.Priority), subject.ID)
	if err != nil {
		return err
	}
	return requireRow(res, "subject", subject.ID)
}

func (s *Store) DeleteSubject(id string) error {
	res, err := s.db.Exec("DELETE FROM subjects WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res, "subject", id)
}

func requireRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, models.ErrNotFound)
	}
	return nil
}
