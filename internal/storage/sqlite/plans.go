package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/obliviraorg/edumentor/internal/models"
)

// SaveWeeklySchedule replaces the stored weekly schedule.
func (s *Store) SaveWeeklySchedule(schedule models.WeeklySchedule) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM weekly_schedules"); err != nil {
		return fmt.Errorf("failed to clear weekly schedule: %w", err)
	}

	res, err := tx.Exec("INSERT INTO weekly_schedules (daily_hours, generated_at) VALUES (?, ?)",
		schedule.DailyHours, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to insert weekly schedule: %w", err)
	}
	scheduleID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO schedule_items (schedule_id, day_index, day, position, start_min, duration_min, subject_id, subject, type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for dayIdx, day := range schedule.Days {
		// A day with no items still needs a row to keep its label.
		if len(day.Items) == 0 {
			if _, err := stmt.Exec(scheduleID, dayIdx, day.Day, -1, 0, 0, "", "", ""); err != nil {
				return err
			}
			continue
		}
		for pos, item := range day.Items {
			if _, err := stmt.Exec(scheduleID, dayIdx, day.Day, pos, item.Start, item.DurationMin,
				item.SubjectID, item.Subject, string(item.Type)); err != nil {
				return fmt.Errorf("failed to insert %s item %d: %w", day.Day, pos, err)
			}
		}
	}
	return tx.Commit()
}

// GetWeeklySchedule returns the last saved weekly schedule.
func (s *Store) GetWeeklySchedule() (models.WeeklySchedule, error) {
	var schedule models.WeeklySchedule
	var scheduleID int64
	err := s.db.QueryRow("SELECT id, daily_hours FROM weekly_schedules ORDER BY id DESC LIMIT 1").
		Scan(&scheduleID, &schedule.DailyHours)
	if errors.Is(err, sql.ErrNoRows) {
		return models.WeeklySchedule{}, fmt.Errorf("weekly schedule: %w", models.ErrNotFound)
	}
	if err != nil {
		return models.WeeklySchedule{}, err
	}

	rows, err := s.db.Query(`
		SELECT day_index, day, position, start_min, duration_min, subject_id, subject, type
		FROM schedule_items WHERE schedule_id = ? ORDER BY day_index, position`, scheduleID)
	if err != nil {
		return models.WeeklySchedule{}, err
	}
	defer rows.Close()

	schedule.Days = []models.DaySchedule{}
	for rows.Next() {
		var dayIdx, pos int
		var day, typ string
		var item models.ScheduleItem
		if err := rows.Scan(&dayIdx, &day, &pos, &item.Start, &item.DurationMin, &item.SubjectID, &item.Subject, &typ); err != nil {
			return models.WeeklySchedule{}, err
		}
		for len(schedule.Days) <= dayIdx {
			schedule.Days = append(schedule.Days, models.DaySchedule{Items: []models.ScheduleItem{}})
		}
		schedule.Days[dayIdx].Day = day
		if pos < 0 {
			continue
		}
		item.Type = models.ActivityType(typ)
		schedule.Days[dayIdx].Items = append(schedule.Days[dayIdx].Items, item)
	}
	return schedule, rows.Err()
}

// SaveRoutine replaces the stored routine.
func (s *Store) SaveRoutine(routine models.Routine) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM routines"); err != nil {
		return fmt.Errorf("failed to clear routine: %w", err)
	}

	res, err := tx.Exec("INSERT INTO routines (exam_adjusted, study_hours, leisure_hours, generated_at) VALUES (?, ?, ?, ?)",
		routine.ExamAdjusted, routine.StudyHours, routine.LeisureHours, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to insert routine: %w", err)
	}
	routineID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO routine_blocks (routine_id, position, block_id, activity, start_min, end_min, type)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for pos, b := range routine.Blocks {
		if _, err := stmt.Exec(routineID, pos, b.ID, b.Activity, b.Start, b.End, string(b.Type)); err != nil {
			return fmt.Errorf("failed to insert block %s: %w", b.ID, err)
		}
	}
	return tx.Commit()
}

// GetRoutine returns the last saved routine.
func (s *Store) GetRoutine() (models.Routine, error) {
	var routine models.Routine
	var routineID int64
	err := s.db.QueryRow("SELECT id, exam_adjusted, study_hours, leisure_hours FROM routines ORDER BY id DESC LIMIT 1").
		Scan(&routineID, &routine.ExamAdjusted, &routine.StudyHours, &routine.LeisureHours)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Routine{}, fmt.Errorf("routine: %w", models.ErrNotFound)
	}
	if err != nil {
		return models.Routine{}, err
	}

	rows, err := s.db.Query(`
		SELECT block_id, activity, start_min, end_min, type
		FROM routine_blocks WHERE routine_id = ? ORDER BY position`, routineID)
	if err != nil {
		return models.Routine{}, err
	}
	defer rows.Close()

	routine.Blocks = []models.TimeBlock{}
	for rows.Next() {
		var b models.TimeBlock
		var typ string
		if err := rows.Scan(&b.ID, &b.Activity, &b.Start, &b.End, &typ); err != nil {
			return models.Routine{}, err
		}
		b.Type = models.BlockType(typ)
		routine.Blocks = append(routine.Blocks, b)
	}
	return routine, rows.Err()
}
