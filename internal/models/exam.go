package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/obliviraorg/edumentor/internal/constants"
	"github.com/obliviraorg/edumentor/internal/utils"
)

type Urgency string

const (
	UrgencyUrgent   Urgency = "urgent"
	UrgencySoon     Urgency = "soon"
	UrgencyUpcoming Urgency = "upcoming"
)

type Exam struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Subject   string    `json:"subject,omitempty"`
	Date      string    `json:"date"`       // YYYY-MM-DD format
	DaysUntil int       `json:"days_until"` // fixed at creation
	CreatedAt time.Time `json:"created_at"`
}

// NewExam builds an exam entry and freezes DaysUntil relative to now.
// The date is read in now's location.
func NewExam(id, name, subject, date string, now time.Time) (Exam, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Exam{}, fmt.Errorf("exam: %w", ErrEmptyName)
	}
	days, err := utils.DaysUntil(date, now)
	if err != nil {
		return Exam{}, fmt.Errorf("%w: %q (use %s)", ErrInvalidExamDate, date, "YYYY-MM-DD")
	}
	return Exam{
		ID:        id,
		Name:      name,
		Subject:   strings.TrimSpace(subject),
		Date:      date,
		DaysUntil: days,
		CreatedAt: now,
	}, nil
}

// Urgency buckets the exam the way the planner colours it.
func (e Exam) Urgency() Urgency {
	switch {
	case e.DaysUntil <= constants.UrgentExamDays:
		return UrgencyUrgent
	case e.DaysUntil <= constants.SoonExamDays:
		return UrgencySoon
	default:
		return UrgencyUpcoming
	}
}

// WithinWindow reports whether the exam is close enough to intensify study.
func (e Exam) WithinWindow() bool {
	return e.DaysUntil <= constants.ExamWindowDays
}
