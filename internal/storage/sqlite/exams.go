package sqlite

import (
	"time"

	"github.com/obliviraorg/edumentor/internal/models"
)

func (s *Store) AddExam(exam models.Exam) error {
	_, err := s.db.Exec(`
		INSERT INTO exams (id, name, subject, date, days_until, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		exam.ID, exam.Name, exam.Subject, exam.Date, exam.DaysUntil, exam.CreatedAt.Format(time.RFC3339Nano))
	return err
}

// GetAllExams returns exams in the order they were entered.
func (s *Store) GetAllExams() ([]models.Exam, error) {
	rows, err := s.db.Query("SELECT id, name, subject, date, days_until, created_at FROM exams ORDER BY rowid")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exams := []models.Exam{}
	for rows.Next() {
		var exam models.Exam
		var createdAt string
		if err := rows.Scan(&exam.ID, &exam.Name, &exam.Subject, &exam.Date, &exam.DaysUntil, &createdAt); err != nil {
			return nil, err
		}
		if exam.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, err
		}
		exams = append(exams, exam)
	}
	return exams, rows.Err()
}

func (s *Store) DeleteExam(id string) error {
	res, err := s.db.Exec("DELETE FROM exams WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res, "exam", id)
}
